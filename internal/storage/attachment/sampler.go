// Пакет attachment — выбор случайного файла-вложения из директории.
//
// При каждом чтении полного списка людей каждой записи подставляется
// содержимое случайного файла из ALD_FILES_DIR. Ошибки чтения никогда
// не доходят до вызывающего: вместо содержимого подставляется пустой срез.
// Прочитанные файлы кэшируются в LRU с TTL (hashicorp/golang-lru/v2/expirable).
package attachment

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики вложений.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ald_attachment_cache_hits_total",
		Help: "Общее количество попаданий в кэш вложений.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ald_attachment_cache_misses_total",
		Help: "Общее количество промахов кэша вложений.",
	})
	readErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ald_attachment_read_errors_total",
		Help: "Количество ошибок чтения файлов-вложений (заменены пустым содержимым).",
	})
)

// Sampler — источник случайных вложений.
type Sampler struct {
	dir    string
	cache  *expirable.LRU[string, []byte] // nil — кэш выключен
	intn   func(n int) int
	logger *slog.Logger
}

// NewSampler создаёт источник вложений для директории dir.
// cacheSize <= 0 отключает кэш: каждый файл читается с диска при каждом обращении.
func NewSampler(dir string, cacheSize int, ttl time.Duration, logger *slog.Logger) *Sampler {
	s := &Sampler{
		dir:    dir,
		intn:   rand.IntN,
		logger: logger.With(slog.String("component", "attachment_sampler")),
	}
	if cacheSize > 0 {
		s.cache = expirable.NewLRU[string, []byte](cacheSize, nil, ttl)
	}
	return s
}

// Dir возвращает директорию вложений.
func (s *Sampler) Dir() string {
	return s.dir
}

// Files возвращает обычные файлы директории (не рекурсивно).
// Отсутствующая или нечитаемая директория — пустой список.
func (s *Sampler) Files() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Не удалось прочитать директорию вложений",
				slog.String("dir", s.dir),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	return files
}

// Pick выбирает случайный файл из files и возвращает его содержимое.
// Пустой files или ошибка чтения — пустой срез (не nil).
func (s *Sampler) Pick(files []string) []byte {
	if len(files) == 0 {
		return []byte{}
	}

	path := files[s.intn(len(files))]
	data, err := s.read(path)
	if err != nil {
		readErrorsTotal.Inc()
		s.logger.Debug("Ошибка чтения вложения, подставлено пустое содержимое",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return []byte{}
	}
	return data
}

// read читает файл целиком, используя кэш при наличии.
func (s *Sampler) read(path string) ([]byte, error) {
	if s.cache == nil {
		return os.ReadFile(path)
	}

	if data, ok := s.cache.Get(path); ok {
		cacheHitsTotal.Inc()
		return data, nil
	}
	cacheMissesTotal.Inc()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s.cache.Add(path, data)
	return data, nil
}
