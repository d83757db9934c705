// apilogs.go — HTTP handler журнала вызовов.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/iamhitya/apilogdemo/internal/api/errors"
	"github.com/iamhitya/apilogdemo/internal/domain/model"
	"github.com/iamhitya/apilogdemo/internal/service"
)

// ApiLogsHandler — обработчик GET /api/apilogs.
type ApiLogsHandler struct { //nolint:revive // имя повторяет путь /api/apilogs
	logs   *service.CallLogService
	logger *slog.Logger
}

// NewApiLogsHandler создаёт обработчик журнала вызовов.
func NewApiLogsHandler(logs *service.CallLogService, logger *slog.Logger) *ApiLogsHandler {
	return &ApiLogsHandler{
		logs:   logs,
		logger: logger.With(slog.String("component", "apilogs_handler")),
	}
}

// GetAllLogs обрабатывает GET /api/apilogs?method=M.
// M — имя операции без учёта регистра; неизвестное имя отклоняется с 400.
func (h *ApiLogsHandler) GetAllLogs(w http.ResponseWriter, r *http.Request) {
	raw, err := bindOptionalQuery(r, "method")
	if err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный параметр method: %s", err.Error()))
		return
	}

	filter := ""
	if raw != nil && *raw != "" {
		m, ok := model.ParseApiMethod(*raw)
		if !ok {
			apierrors.ValidationError(w, fmt.Sprintf("Неизвестный метод %q", *raw))
			return
		}
		filter = string(m)
	}

	logs, err := h.logs.GetLogs(filter)
	if err != nil {
		h.logger.Error("Ошибка чтения журнала вызовов", slog.String("error", err.Error()))
		apierrors.InternalError(w, msgInternal)
		return
	}
	if logs == nil {
		logs = []model.CallLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
