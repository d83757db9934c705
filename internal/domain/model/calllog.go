package model

import (
	"strings"
	"time"
)

// ApiMethod — логическое имя операции, под которым вызов попадает в журнал.
type ApiMethod string //nolint:revive // имя совпадает со значением в журнале

const (
	MethodGetAll         ApiMethod = "GetAll"
	MethodGetAllStream   ApiMethod = "GetAllStream"
	MethodDownload       ApiMethod = "Download"
	MethodDownloadStream ApiMethod = "DownloadStream"
	MethodGetByID        ApiMethod = "GetById"
	MethodAdd            ApiMethod = "Add"
	MethodUpdate         ApiMethod = "Update"
	MethodDelete         ApiMethod = "Delete"
	MethodSeed           ApiMethod = "Seed"
)

// ApiMethods — все известные операции в порядке объявления.
var ApiMethods = []ApiMethod{
	MethodGetAll,
	MethodGetAllStream,
	MethodDownload,
	MethodDownloadStream,
	MethodGetByID,
	MethodAdd,
	MethodUpdate,
	MethodDelete,
	MethodSeed,
}

// ParseApiMethod возвращает операцию по имени без учёта регистра.
func ParseApiMethod(s string) (ApiMethod, bool) {
	for _, m := range ApiMethods {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return "", false
}

// CallLog — запись журнала вызовов API. Соответствует элементу массива apiLogs.json.
type CallLog struct {
	// Method — логическое имя операции (GetAll, Add, ...)
	Method string `json:"method"`

	// Endpoint — путь запроса
	Endpoint string `json:"endpoint"`

	// Timestamp — момент записи (UTC)
	Timestamp time.Time `json:"timestamp"`

	// RecordCount — количество элементов в результате операции
	RecordCount float64 `json:"record_count"`

	// ExecutionTimeMs — длительность операции в миллисекундах
	ExecutionTimeMs float64 `json:"execution_time_ms"`

	// Version — ранг группы RecordCount в текущей выборке.
	// Вычисляется при чтении, на диск всегда пишется null.
	Version *int `json:"version"`
}
