// cors.go — middleware CORS на базе rs/cors: разрешённые origins
// из конфигурации, любые методы и заголовки, preflight отвечает 204.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS возвращает middleware, выставляющий заголовки Access-Control-*.
// allowedOrigins содержит "*" — разрешён любой origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:       []string{"*"},
		ExposedHeaders:       []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:               600,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return c.Handler
}
