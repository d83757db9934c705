// openapi.go — отдача OpenAPI контракта по /swagger/openapi.json.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIHandler отдаёт заранее сериализованный OpenAPI документ.
type OpenAPIHandler struct {
	body []byte
}

// NewOpenAPIHandler сериализует документ один раз при старте.
func NewOpenAPIHandler(doc *openapi3.T) (*OpenAPIHandler, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации OpenAPI документа: %w", err)
	}
	return &OpenAPIHandler{body: body}, nil
}

// GetDocument обрабатывает GET /swagger/openapi.json.
func (h *OpenAPIHandler) GetDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)
}
