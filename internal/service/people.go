// people.go — сервис хранилища людей.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iamhitya/apilogdemo/internal/domain/model"
	"github.com/iamhitya/apilogdemo/internal/storage/attachment"
	"github.com/iamhitya/apilogdemo/internal/storage/jsonfile"
)

// PeopleTotal — количество записей в people.json после последней операции.
var PeopleTotal = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ald_people_total",
	Help: "Количество записей в хранилище людей",
})

// AttachmentSource — источник случайных вложений для GetAll.
type AttachmentSource interface {
	Files() []string
	Pick(files []string) []byte
}

var _ AttachmentSource = (*attachment.Sampler)(nil)

// PeopleService — CRUD над JSON-документом людей.
// Каждая операция читает документ целиком; мутации перезаписывают его целиком.
type PeopleService struct {
	doc         *jsonfile.Document[model.Person]
	attachments AttachmentSource
	logger      *slog.Logger
}

// NewPeopleService создаёт сервис людей.
func NewPeopleService(
	doc *jsonfile.Document[model.Person],
	attachments AttachmentSource,
	logger *slog.Logger,
) *PeopleService {
	return &PeopleService{
		doc:         doc,
		attachments: attachments,
		logger:      logger.With(slog.String("component", "people_service")),
	}
}

// GetAll возвращает всех людей. Каждой записи независимо подставляется
// случайное вложение.
func (s *PeopleService) GetAll() (Result[[]model.Person], error) {
	people, err := s.doc.Load()
	if err != nil {
		return Result[[]model.Person]{}, fmt.Errorf("ошибка чтения людей: %w", err)
	}
	PeopleTotal.Set(float64(len(people)))

	files := s.attachments.Files()
	for i := range people {
		people[i].Attachment = s.attachments.Pick(files)
	}

	return collectionResult(people), nil
}

// ForEach передаёт записи в fn по одной, подставляя вложение непосредственно
// перед передачей. Прерывается при отмене ctx или ошибке fn.
// Возвращает количество переданных записей.
func (s *PeopleService) ForEach(ctx context.Context, fn func(model.Person) error) (int, error) {
	people, err := s.doc.Load()
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения людей: %w", err)
	}

	files := s.attachments.Files()
	sent := 0
	for _, p := range people {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		p.Attachment = s.attachments.Pick(files)
		if err := fn(p); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

// GetByID возвращает запись по id или nil, если запись не найдена.
func (s *PeopleService) GetByID(id int) (Result[*model.Person], error) {
	people, err := s.doc.Load()
	if err != nil {
		return Result[*model.Person]{}, fmt.Errorf("ошибка чтения людей: %w", err)
	}

	for i := range people {
		if people[i].ID == id {
			return singleResult(&people[i]), nil
		}
	}
	return singleResult[*model.Person](nil), nil
}

// Add назначает записи id = max(id)+1 (или 1 для пустого хранилища)
// и сохраняет её. Вложение не сохраняется.
func (s *PeopleService) Add(p model.Person) (Result[model.Person], error) {
	err := s.doc.Update(func(people []model.Person) ([]model.Person, bool, error) {
		p.ID = nextID(people)
		p.Attachment = nil
		people = append(people, p)
		PeopleTotal.Set(float64(len(people)))
		return people, true, nil
	})
	if err != nil {
		return Result[model.Person]{}, fmt.Errorf("ошибка добавления: %w", err)
	}

	s.logger.Debug("Запись добавлена", slog.Int("id", p.ID))
	return singleResult(p), nil
}

// AddRange добавляет записи одним циклом read-modify-write:
// один расчёт следующего id, последовательные id, одна запись на диск.
func (s *PeopleService) AddRange(batch []model.Person) (Result[[]model.Person], error) {
	added := make([]model.Person, 0, len(batch))
	if len(batch) == 0 {
		return collectionResult(added), nil
	}

	err := s.doc.Update(func(people []model.Person) ([]model.Person, bool, error) {
		id := nextID(people)
		for _, p := range batch {
			p.ID = id
			p.Attachment = nil
			id++
			people = append(people, p)
			added = append(added, p)
		}
		PeopleTotal.Set(float64(len(people)))
		return people, true, nil
	})
	if err != nil {
		return Result[[]model.Person]{}, fmt.Errorf("ошибка пакетного добавления: %w", err)
	}

	s.logger.Debug("Записи добавлены",
		slog.Int("count", len(added)),
		slog.Int("first_id", added[0].ID),
	)
	return collectionResult(added), nil
}

// Update перезаписывает name, age и city записи с указанным id.
// Возвращает false без записи на диск, если запись не найдена.
func (s *PeopleService) Update(id int, values model.Person) (Result[bool], error) {
	found := false
	err := s.doc.Update(func(people []model.Person) ([]model.Person, bool, error) {
		for i := range people {
			if people[i].ID == id {
				people[i].ApplyValues(values)
				found = true
				return people, true, nil
			}
		}
		return people, false, nil
	})
	if err != nil {
		return Result[bool]{}, fmt.Errorf("ошибка обновления %d: %w", id, err)
	}

	return singleResult(found), nil
}

// Delete удаляет запись с указанным id.
// Возвращает false без записи на диск, если запись не найдена.
func (s *PeopleService) Delete(id int) (Result[bool], error) {
	found := false
	err := s.doc.Update(func(people []model.Person) ([]model.Person, bool, error) {
		for i := range people {
			if people[i].ID == id {
				found = true
				people = append(people[:i], people[i+1:]...)
				PeopleTotal.Set(float64(len(people)))
				return people, true, nil
			}
		}
		return people, false, nil
	})
	if err != nil {
		return Result[bool]{}, fmt.Errorf("ошибка удаления %d: %w", id, err)
	}

	return singleResult(found), nil
}

// nextID возвращает max(id)+1 или 1 для пустой коллекции.
func nextID(people []model.Person) int {
	if len(people) == 0 {
		return 1
	}
	maxID := people[0].ID
	for _, p := range people[1:] {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
