// people.go — HTTP handlers хранилища людей.
// Каждый вызов замеряется и записывается в журнал вызовов.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/iamhitya/apilogdemo/internal/api/errors"
	"github.com/iamhitya/apilogdemo/internal/domain/model"
	"github.com/iamhitya/apilogdemo/internal/service"
)

const (
	msgPersonNotFound   = "Person not found."
	msgPersonAdded      = "Person added successfully."
	msgPersonUpdated    = "Person updated successfully."
	msgPersonDeleted    = "Person deleted successfully."
	msgSeedCountInvalid = "Count must be greater than zero."
	msgInternal         = "Внутренняя ошибка сервера"

	peopleDownloadName = "people.json"
	maxPersonBodyBytes = 1 << 20
)

// CallRecorder — приёмник записей журнала вызовов.
type CallRecorder interface {
	AddLog(entry model.CallLog) error
}

var _ CallRecorder = (*service.CallLogService)(nil)

// PeopleHandler — обработчик endpoints /api/people.
type PeopleHandler struct {
	people   *service.PeopleService
	recorder CallRecorder
	logger   *slog.Logger
	// seedIntn — источник случайности для Seed (nil — math/rand/v2)
	seedIntn func(n int) int
}

// NewPeopleHandler создаёт обработчик людей.
func NewPeopleHandler(people *service.PeopleService, recorder CallRecorder, logger *slog.Logger) *PeopleHandler {
	return &PeopleHandler{
		people:   people,
		recorder: recorder,
		logger:   logger.With(slog.String("component", "people_handler")),
	}
}

// record записывает вызов в журнал. Ошибка записи журнала не влияет на ответ.
func (h *PeopleHandler) record(r *http.Request, method model.ApiMethod, start time.Time, itemCount float64) {
	elapsed := time.Since(start)
	entry := model.CallLog{
		Method:          string(method),
		Endpoint:        r.URL.Path,
		Timestamp:       time.Now().UTC(),
		RecordCount:     itemCount,
		ExecutionTimeMs: float64(elapsed) / float64(time.Millisecond),
	}
	if err := h.recorder.AddLog(entry); err != nil {
		h.logger.Warn("Не удалось записать вызов в журнал",
			slog.String("method", entry.Method),
			slog.String("endpoint", entry.Endpoint),
			slog.String("error", err.Error()),
		)
	}
}

// internalError логирует ошибку сервиса и отвечает 500.
func (h *PeopleHandler) internalError(w http.ResponseWriter, method model.ApiMethod, err error) {
	h.logger.Error("Ошибка операции",
		slog.String("method", string(method)),
		slog.String("error", err.Error()),
	)
	apierrors.InternalError(w, msgInternal)
}

// GetAll обрабатывает GET /api/people.
func (h *PeopleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res, err := h.people.GetAll()
	h.record(r, model.MethodGetAll, start, res.ItemCount)
	if err != nil {
		h.internalError(w, model.MethodGetAll, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Payload)
}

// GetAllStream обрабатывает GET /api/people/stream.
// Каждый элемент массива отправляется клиенту отдельным чанком.
func (h *PeopleHandler) GetAllStream(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stream := newArrayStream(w, chunkedJSONHeaders, false, true)

	sent, err := h.people.ForEach(r.Context(), func(p model.Person) error {
		return stream.Write(p)
	})
	if err == nil {
		err = stream.Close()
	}
	h.record(r, model.MethodGetAllStream, start, float64(sent))

	if err != nil {
		if !stream.Started() {
			h.internalError(w, model.MethodGetAllStream, err)
			return
		}
		// Тело уже отправляется: ответ об ошибке невозможен
		h.logger.Warn("Потоковая передача прервана",
			slog.Int("sent", sent),
			slog.String("error", err.Error()),
		)
	}
}

// Download обрабатывает GET /api/people/download.
// Коллекция сериализуется целиком и отдаётся файлом people.json.
func (h *PeopleHandler) Download(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res, err := h.people.GetAll()
	var data []byte
	if err == nil {
		data, err = json.Marshal(res.Payload)
	}
	h.record(r, model.MethodDownload, start, 0)
	if err != nil {
		h.internalError(w, model.MethodDownload, err)
		return
	}

	attachmentHeaders(peopleDownloadName)(w.Header())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DownloadStream обрабатывает GET /api/people/download-stream.
// Форматированный JSON пишется в ответ по мере чтения, без сборки в памяти.
func (h *PeopleHandler) DownloadStream(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stream := newArrayStream(w, attachmentHeaders(peopleDownloadName), true, false)

	sent, err := h.people.ForEach(r.Context(), func(p model.Person) error {
		return stream.Write(p)
	})
	if err == nil {
		err = stream.Close()
	}
	h.record(r, model.MethodDownloadStream, start, 0)

	if err != nil {
		if !stream.Started() {
			h.internalError(w, model.MethodDownloadStream, err)
			return
		}
		h.logger.Warn("Потоковая выгрузка прервана",
			slog.Int("sent", sent),
			slog.String("error", err.Error()),
		)
	}
}

// GetByID обрабатывает GET /api/people/{id}.
func (h *PeopleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathInt(r, "id")
	if err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный id: %s", err.Error()))
		return
	}

	start := time.Now()
	res, err := h.people.GetByID(id)
	h.record(r, model.MethodGetByID, start, res.ItemCount)
	if err != nil {
		h.internalError(w, model.MethodGetByID, err)
		return
	}
	if res.Payload == nil {
		apierrors.NotFound(w, msgPersonNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res.Payload)
}

// Add обрабатывает POST /api/people.
func (h *PeopleHandler) Add(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePerson(w, r)
	if !ok {
		return
	}

	start := time.Now()
	res, err := h.people.Add(p)
	h.record(r, model.MethodAdd, start, res.ItemCount)
	if err != nil {
		h.internalError(w, model.MethodAdd, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgPersonAdded})
}

// Update обрабатывает PUT /api/people/{id}.
func (h *PeopleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathInt(r, "id")
	if err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный id: %s", err.Error()))
		return
	}
	p, ok := decodePerson(w, r)
	if !ok {
		return
	}

	start := time.Now()
	res, err := h.people.Update(id, p)
	h.record(r, model.MethodUpdate, start, res.ItemCount)
	if err != nil {
		h.internalError(w, model.MethodUpdate, err)
		return
	}
	if !res.Payload {
		apierrors.NotFound(w, msgPersonNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgPersonUpdated})
}

// Delete обрабатывает DELETE /api/people/{id}.
func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathInt(r, "id")
	if err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный id: %s", err.Error()))
		return
	}

	start := time.Now()
	res, err := h.people.Delete(id)
	h.record(r, model.MethodDelete, start, res.ItemCount)
	if err != nil {
		h.internalError(w, model.MethodDelete, err)
		return
	}
	if !res.Payload {
		apierrors.NotFound(w, msgPersonNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgPersonDeleted})
}

// Seed обрабатывает POST /api/people/seed/{count}.
// count <= 0 отклоняется до обращения к хранилищу. В обоих случаях вызов
// журналируется с record_count 0.
func (h *PeopleHandler) Seed(w http.ResponseWriter, r *http.Request) {
	count, err := bindPathInt(r, "count")
	if err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный count: %s", err.Error()))
		return
	}

	start := time.Now()
	if count <= 0 {
		h.record(r, model.MethodSeed, start, 0)
		apierrors.ValidationError(w, msgSeedCountInvalid)
		return
	}

	// Ответ Seed — сообщение, а не коллекция: record_count 0
	res, err := h.people.AddRange(service.RandomPeople(count, h.seedIntn))
	h.record(r, model.MethodSeed, start, 0)
	if err != nil {
		h.internalError(w, model.MethodSeed, err)
		return
	}

	added := len(res.Payload)
	writeJSON(w, http.StatusOK, seedResponse{
		Message: fmt.Sprintf("%d people added.", added),
		Added:   added,
	})
}

// messageResponse — тело успешного ответа мутаций.
type messageResponse struct {
	Message string `json:"message"`
}

// seedResponse — тело ответа Seed.
type seedResponse struct {
	Message string `json:"message"`
	Added   int    `json:"added"`
}

// decodePerson разбирает тело запроса. При ошибке отвечает 400 и возвращает false.
func decodePerson(w http.ResponseWriter, r *http.Request) (model.Person, bool) {
	var p model.Person
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPersonBodyBytes))
	if err := dec.Decode(&p); err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректное тело запроса: %s", err.Error()))
		return model.Person{}, false
	}
	return p, true
}

// writeJSON вспомогательная функция для записи JSON-ответа.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
