// handler.go — APIHandler собирает доменные handlers и регистрирует
// маршруты в chi-роутере.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// APIHandler — единая точка регистрации всех endpoints.
type APIHandler struct {
	people  *PeopleHandler
	apiLogs *ApiLogsHandler
	health  *HealthHandler
	openapi *OpenAPIHandler
	metrics http.Handler
}

// NewAPIHandler создаёт единый handler для всех endpoints.
// metrics — обработчик /metrics (promhttp).
func NewAPIHandler(
	people *PeopleHandler,
	apiLogs *ApiLogsHandler,
	health *HealthHandler,
	openapi *OpenAPIHandler,
	metrics http.Handler,
) *APIHandler {
	return &APIHandler{
		people:  people,
		apiLogs: apiLogs,
		health:  health,
		openapi: openapi,
		metrics: metrics,
	}
}

// Register монтирует маршруты в роутер.
func (h *APIHandler) Register(r chi.Router) {
	r.Route("/api/people", func(r chi.Router) {
		r.Get("/", h.people.GetAll)
		r.Post("/", h.people.Add)
		r.Get("/stream", h.people.GetAllStream)
		r.Get("/download", h.people.Download)
		r.Get("/download-stream", h.people.DownloadStream)
		r.Post("/seed/{count}", h.people.Seed)
		r.Get("/{id}", h.people.GetByID)
		r.Put("/{id}", h.people.Update)
		r.Delete("/{id}", h.people.Delete)
	})
	r.Get("/api/apilogs", h.apiLogs.GetAllLogs)

	r.Get("/health/live", h.health.HealthLive)
	r.Get("/health/ready", h.health.HealthReady)
	r.Method(http.MethodGet, "/metrics", h.metrics)
	r.Get("/swagger/openapi.json", h.openapi.GetDocument)
}
