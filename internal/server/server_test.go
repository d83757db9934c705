package server

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iamhitya/apilogdemo/internal/api/handlers"
	"github.com/iamhitya/apilogdemo/internal/api/openapi"
	"github.com/iamhitya/apilogdemo/internal/config"
	"github.com/iamhitya/apilogdemo/internal/domain/model"
	"github.com/iamhitya/apilogdemo/internal/service"
	"github.com/iamhitya/apilogdemo/internal/storage/attachment"
	"github.com/iamhitya/apilogdemo/internal/storage/jsonfile"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// testConfig возвращает конфигурацию с временными директориями.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:                8080,
		DataDir:             t.TempDir(),
		PeopleFile:          "people.json",
		LogsFile:            "apiLogs.json",
		FilesDir:            t.TempDir(),
		FileLocking:         true,
		AttachmentCacheSize: 8,
		AttachmentCacheTTL:  time.Minute,
		CORSAllowedOrigins:  []string{"*"},
		CompressionLevel:    5,
		LogLevel:            slog.LevelError,
		LogFormat:           "text",
		HTTPReadTimeout:     time.Second,
		HTTPWriteTimeout:    time.Second,
		HTTPIdleTimeout:     time.Second,
		ShutdownTimeout:     time.Second,
	}
}

// newTestRouter собирает роутер так же, как main.
func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logger := testLogger()

	peopleDoc, err := jsonfile.New[model.Person](cfg.PeoplePath(), cfg.FileLocking)
	if err != nil {
		t.Fatalf("ошибка создания документа людей: %v", err)
	}
	logsDoc, err := jsonfile.New[model.CallLog](cfg.LogsPath(), cfg.FileLocking)
	if err != nil {
		t.Fatalf("ошибка создания журнала: %v", err)
	}
	sampler := attachment.NewSampler(cfg.FilesDir, cfg.AttachmentCacheSize, cfg.AttachmentCacheTTL, logger)
	peopleSvc := service.NewPeopleService(peopleDoc, sampler, logger)
	callLogSvc := service.NewCallLogService(logsDoc, logger)

	doc, err := openapi.Load(t.Context())
	if err != nil {
		t.Fatalf("ошибка загрузки OpenAPI: %v", err)
	}
	openapiHandler, err := handlers.NewOpenAPIHandler(doc)
	if err != nil {
		t.Fatalf("ошибка сериализации OpenAPI: %v", err)
	}

	api := handlers.NewAPIHandler(
		handlers.NewPeopleHandler(peopleSvc, callLogSvc, logger),
		handlers.NewApiLogsHandler(callLogSvc, logger),
		handlers.NewHealthHandler(cfg.DataDir, cfg.FilesDir),
		openapiHandler,
		promhttp.Handler(),
	)
	return NewRouter(cfg, logger, api)
}

func TestNew_Timeouts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = 9123
	cfg.HTTPWriteTimeout = 7 * time.Second

	srv := New(cfg, testLogger(), handlers.NewAPIHandler(nil, nil, nil, nil, http.NotFoundHandler()))
	if srv.httpServer.Addr != ":9123" {
		t.Errorf("Addr: ожидалось :9123, получено %q", srv.httpServer.Addr)
	}
	if srv.httpServer.WriteTimeout != 7*time.Second {
		t.Errorf("WriteTimeout: ожидалось 7s, получено %v", srv.httpServer.WriteTimeout)
	}
	if srv.httpServer.TLSConfig != nil {
		t.Error("TLSConfig: без сертификата ожидался nil")
	}

	cfg.TLSCert, cfg.TLSKey = "/tmp/tls.crt", "/tmp/tls.key"
	srv = New(cfg, testLogger(), handlers.NewAPIHandler(nil, nil, nil, nil, http.NotFoundHandler()))
	if srv.httpServer.TLSConfig == nil {
		t.Error("TLSConfig: ожидалась настройка TLS")
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	ts := httptest.NewServer(newTestRouter(t, cfg))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/people/seed/5", "application/json", nil)
	if err != nil {
		t.Fatalf("ошибка запроса: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("seed: ожидалось 200, получено %d", resp.StatusCode)
	}

	// Потоковая выдача через реальный сервер и все middleware
	resp, err = http.Get(ts.URL + "/api/people/stream")
	if err != nil {
		t.Fatalf("ошибка запроса: %v", err)
	}
	defer resp.Body.Close()

	var people []model.Person
	if err := json.NewDecoder(resp.Body).Decode(&people); err != nil {
		t.Fatalf("ошибка декодирования потока: %v", err)
	}
	if len(people) != 5 {
		t.Errorf("ожидалось 5 записей, получено %d", len(people))
	}

	raw, err := os.ReadFile(filepath.Join(cfg.DataDir, "apiLogs.json"))
	if err != nil {
		t.Fatalf("журнал не создан: %v", err)
	}
	if !strings.Contains(string(raw), `"GetAllStream"`) {
		t.Errorf("в журнале нет GetAllStream: %s", raw)
	}
}

func TestRouter_Gzip(t *testing.T) {
	cfg := testConfig(t)
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/people", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding: ожидалось gzip, получено %q", got)
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("ошибка gzip: %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ошибка чтения gzip: %v", err)
	}
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("тело: ожидалось [], получено %s", body)
	}
}

func TestRouter_CompressionDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.CompressionLevel = 0
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/people", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "" {
		t.Errorf("Content-Encoding: ожидалось пусто, получено %q", got)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, testConfig(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/people/1", nil)
	req.Header.Set("Origin", "http://client.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight: ожидалось 204, получено %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin: ожидалось '*', получено %q", got)
	}
}

func TestRouter_MetricsAndOpenAPI(t *testing.T) {
	router := newTestRouter(t, testConfig(t))

	// Запрос, чтобы HTTP-метрика появилась в выдаче
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics: ожидалось 200, получено %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ald_http_requests_total") {
		t.Error("/metrics: нет ald_http_requests_total")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/openapi.json", nil))
	if w.Code != http.StatusOK {
		t.Errorf("/swagger/openapi.json: ожидалось 200, получено %d", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("ожидалось 404, получено %d", w.Code)
	}
}
