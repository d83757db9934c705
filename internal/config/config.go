// Пакет config — загрузка и валидация конфигурации ApiLogDemo
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации ApiLogDemo.
type Config struct {
	// Порт HTTP-сервера
	Port int
	// Директория JSON-документов (people.json, apiLogs.json)
	DataDir string
	// Имя документа людей внутри DataDir
	PeopleFile string
	// Имя журнала вызовов внутри DataDir
	LogsFile string
	// Директория файлов-вложений
	FilesDir string
	// Мьютекс на документ вокруг read-modify-write.
	// false воспроизводит гонки исходного поведения (last writer wins).
	FileLocking bool
	// Размер LRU-кэша вложений (0 — кэш выключен)
	AttachmentCacheSize int
	// TTL записи кэша вложений
	AttachmentCacheTTL time.Duration
	// Разрешённые CORS origins ("*" — любые)
	CORSAllowedOrigins []string
	// Уровень gzip-сжатия ответов (0 — выключено)
	CompressionLevel int
	// Путь к TLS сертификату (опционально)
	TLSCert string
	// Путь к TLS приватному ключу (опционально)
	TLSKey string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// Таймауты HTTP-сервера
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// PeoplePath возвращает полный путь к документу людей.
func (c *Config) PeoplePath() string {
	return filepath.Join(c.DataDir, c.PeopleFile)
}

// LogsPath возвращает полный путь к журналу вызовов.
func (c *Config) LogsPath() string {
	return filepath.Join(c.DataDir, c.LogsFile)
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}

	// ALD_PORT — порт HTTP-сервера (по умолчанию 8080)
	port, err := getEnvInt("ALD_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("ALD_PORT: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("ALD_PORT: значение %d вне допустимого диапазона 1-65535", port)
	}
	cfg.Port = port

	cfg.DataDir = getEnvDefault("ALD_DATA_DIR", "Data")

	// Имена документов — только имя файла, без пути
	cfg.PeopleFile = getEnvDefault("ALD_PEOPLE_FILE", "people.json")
	if filepath.Base(cfg.PeopleFile) != cfg.PeopleFile {
		return nil, fmt.Errorf("ALD_PEOPLE_FILE: ожидается имя файла без пути, получено %q", cfg.PeopleFile)
	}
	cfg.LogsFile = getEnvDefault("ALD_LOGS_FILE", "apiLogs.json")
	if filepath.Base(cfg.LogsFile) != cfg.LogsFile {
		return nil, fmt.Errorf("ALD_LOGS_FILE: ожидается имя файла без пути, получено %q", cfg.LogsFile)
	}
	if cfg.PeopleFile == cfg.LogsFile {
		return nil, fmt.Errorf("ALD_PEOPLE_FILE и ALD_LOGS_FILE не могут совпадать (%q)", cfg.PeopleFile)
	}

	cfg.FilesDir = getEnvDefault("ALD_FILES_DIR", "Files")

	cfg.FileLocking, err = getEnvBool("ALD_FILE_LOCKING", true)
	if err != nil {
		return nil, fmt.Errorf("ALD_FILE_LOCKING: %w", err)
	}

	// ALD_ATTACHMENT_CACHE_SIZE — размер кэша вложений (по умолчанию 64, 0 — выключен)
	cfg.AttachmentCacheSize, err = getEnvInt("ALD_ATTACHMENT_CACHE_SIZE", 64)
	if err != nil {
		return nil, fmt.Errorf("ALD_ATTACHMENT_CACHE_SIZE: %w", err)
	}
	if cfg.AttachmentCacheSize < 0 {
		return nil, fmt.Errorf("ALD_ATTACHMENT_CACHE_SIZE: значение не может быть отрицательным")
	}

	cfg.AttachmentCacheTTL, err = getEnvDuration("ALD_ATTACHMENT_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("ALD_ATTACHMENT_CACHE_TTL: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(getEnvDefault("ALD_CORS_ALLOWED_ORIGINS", "*"))

	// ALD_COMPRESSION_LEVEL — уровень gzip (по умолчанию 5)
	cfg.CompressionLevel, err = getEnvInt("ALD_COMPRESSION_LEVEL", 5)
	if err != nil {
		return nil, fmt.Errorf("ALD_COMPRESSION_LEVEL: %w", err)
	}
	if cfg.CompressionLevel < 0 || cfg.CompressionLevel > 9 {
		return nil, fmt.Errorf("ALD_COMPRESSION_LEVEL: значение %d вне диапазона 0-9", cfg.CompressionLevel)
	}

	// ALD_TLS_CERT / ALD_TLS_KEY — задаются вместе или не задаются
	cfg.TLSCert = getEnvDefault("ALD_TLS_CERT", "")
	cfg.TLSKey = getEnvDefault("ALD_TLS_KEY", "")
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, fmt.Errorf("ALD_TLS_CERT и ALD_TLS_KEY должны быть заданы вместе")
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("ALD_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("ALD_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("ALD_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("ALD_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	cfg.HTTPReadTimeout, err = getEnvDuration("ALD_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("ALD_HTTP_READ_TIMEOUT: %w", err)
	}

	// ALD_HTTP_WRITE_TIMEOUT — с запасом для потоковой выгрузки (по умолчанию 5m)
	cfg.HTTPWriteTimeout, err = getEnvDuration("ALD_HTTP_WRITE_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("ALD_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("ALD_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("ALD_HTTP_IDLE_TIMEOUT: %w", err)
	}

	cfg.ShutdownTimeout, err = getEnvDuration("ALD_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("ALD_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1m, 5m)", val)
	}
	if d < 0 {
		return 0, fmt.Errorf("длительность не может быть отрицательной: %q", val)
	}
	return d, nil
}

// splitList разбивает список через запятую, отбрасывая пустые элементы.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
