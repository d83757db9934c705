// params.go — привязка параметров пути и запроса через oapi-codegen runtime.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// bindPathInt читает обязательный целочисленный параметр пути (style=simple).
func bindPathInt(r *http.Request, name string) (int, error) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	return v, err
}

// bindOptionalQuery читает необязательный строковый параметр запроса (style=form).
// Возвращает nil, если параметр не передан.
func bindOptionalQuery(r *http.Request, name string) (*string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, err
	}
	return v, nil
}
