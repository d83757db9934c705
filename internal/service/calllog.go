// calllog.go — журнал вызовов API с вычисляемой версией.
//
// Журнал только дополняется: AddLog читает документ, добавляет запись
// и перезаписывает документ целиком. Чтение (GetLogs) никогда не изменяет
// файл: поле Version вычисляется заново для каждой выборки.
package service

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iamhitya/apilogdemo/internal/domain/model"
	"github.com/iamhitya/apilogdemo/internal/storage/jsonfile"
)

// callLogsRecordedTotal — количество записей, добавленных в журнал.
var callLogsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ald_call_logs_recorded_total",
		Help: "Общее количество записей, добавленных в журнал вызовов",
	},
	[]string{"method"},
)

// CallLogService — журнал вызовов поверх JSON-документа.
type CallLogService struct {
	doc    *jsonfile.Document[model.CallLog]
	logger *slog.Logger
}

// NewCallLogService создаёт сервис журнала вызовов.
func NewCallLogService(doc *jsonfile.Document[model.CallLog], logger *slog.Logger) *CallLogService {
	return &CallLogService{
		doc:    doc,
		logger: logger.With(slog.String("component", "call_log_service")),
	}
}

// AddLog добавляет запись в конец журнала. Version не сохраняется.
// Без дедупликации, ограничения размера и ротации.
func (s *CallLogService) AddLog(entry model.CallLog) error {
	entry.Version = nil

	err := s.doc.Update(func(logs []model.CallLog) ([]model.CallLog, bool, error) {
		return append(logs, entry), true, nil
	})
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал вызовов: %w", err)
	}

	callLogsRecordedTotal.WithLabelValues(entry.Method).Inc()
	return nil
}

// GetLogs возвращает записи журнала. Непустой method оставляет только записи
// с совпадающим (без учёта регистра) именем операции. Версии назначаются
// после фильтрации, то есть относительно возвращаемой выборки.
func (s *CallLogService) GetLogs(method string) ([]model.CallLog, error) {
	logs, err := s.doc.Load()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала вызовов: %w", err)
	}

	if method != "" {
		logs = slices.DeleteFunc(logs, func(l model.CallLog) bool {
			return !strings.EqualFold(l.Method, method)
		})
	}

	AssignVersions(logs)
	return logs, nil
}

// AssignVersions группирует записи по точному значению RecordCount,
// упорядочивает группы по возрастанию и назначает версии 1, 2, ... по группам.
// Все записи одной группы получают одинаковую версию; порядок записей
// в срезе не меняется.
func AssignVersions(logs []model.CallLog) {
	counts := make([]float64, 0, len(logs))
	for _, l := range logs {
		counts = append(counts, l.RecordCount)
	}
	slices.Sort(counts)
	counts = slices.Compact(counts)

	versions := make(map[float64]int, len(counts))
	for i, c := range counts {
		versions[c] = i + 1
	}

	for i := range logs {
		v := versions[logs[i].RecordCount]
		logs[i].Version = &v
	}
}
