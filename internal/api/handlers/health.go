// health.go — обработчики health endpoints для Kubernetes probes.
package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/iamhitya/apilogdemo/internal/config"
)

const (
	statusOK       = "ok"
	statusFail     = "fail"
	statusDegraded = "degraded"
	serviceName    = "apilogdemo"
)

// HealthHandler реализует health endpoints: /health/live, /health/ready.
type HealthHandler struct {
	version string
	// dataDir — директория JSON-документов (проверка записи)
	dataDir string
	// filesDir — директория вложений (отсутствие не блокирует готовность)
	filesDir string
}

// NewHealthHandler создаёт обработчик health endpoints.
func NewHealthHandler(dataDir, filesDir string) *HealthHandler {
	return &HealthHandler{
		version:  config.Version,
		dataDir:  dataDir,
		filesDir: filesDir,
	}
}

// HealthLive обрабатывает GET /health/live.
// Возвращает 200, если процесс жив. Не проверяет зависимости.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"status":    statusOK,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"service":   serviceName,
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthReady обрабатывает GET /health/ready.
// Проверяет: запись в директорию данных, наличие директории вложений.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	overallStatus := statusOK
	httpStatus := http.StatusOK

	fsCheck := h.checkDataDir()
	if fsCheck["status"] != statusOK {
		overallStatus = statusFail
		httpStatus = http.StatusServiceUnavailable
	}

	// Без вложений GetAll отдаёт пустые байты, сервис работоспособен
	filesCheck := h.checkFilesDir()
	if filesCheck["status"] != statusOK && overallStatus != statusFail {
		overallStatus = statusDegraded
	}

	resp := map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"service":   serviceName,
		"checks": map[string]any{
			"data_dir":    fsCheck,
			"attachments": filesCheck,
		},
	}
	writeJSON(w, httpStatus, resp)
}

// checkDataDir проверяет доступность директории данных на запись.
func (h *HealthHandler) checkDataDir() map[string]any {
	testFile := filepath.Join(h.dataDir, ".health_check")
	if err := os.WriteFile(testFile, []byte("ok"), 0o600); err != nil {
		return map[string]any{
			"status":  statusFail,
			"message": "Директория данных недоступна для записи: " + err.Error(),
		}
	}
	_ = os.Remove(testFile)

	return map[string]any{
		"status": statusOK,
	}
}

// checkFilesDir проверяет, что директория вложений существует.
func (h *HealthHandler) checkFilesDir() map[string]any {
	info, err := os.Stat(h.filesDir)
	if err != nil {
		return map[string]any{
			"status":  statusFail,
			"message": "Директория вложений недоступна: " + err.Error(),
		}
	}
	if !info.IsDir() {
		return map[string]any{
			"status":  statusFail,
			"message": "Путь вложений не является директорией",
		}
	}
	return map[string]any{
		"status": statusOK,
	}
}
