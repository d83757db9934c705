// Пакет model — доменные модели ApiLogDemo.
// Person — запись справочника людей, CallLog — телеметрия вызова API.
// Структуры используются и как формат JSON-документов на диске,
// и как формат HTTP-ответов.
package model

// Person — запись хранилища людей. Соответствует элементу массива people.json.
type Person struct {
	// ID — уникальный идентификатор, назначается хранилищем (max+1, начиная с 1)
	ID int `json:"id"`

	// Name — имя и фамилия
	Name string `json:"name"`

	// Age — возраст в годах
	Age int `json:"age"`

	// City — город проживания
	City string `json:"city"`

	// Attachment — случайный файл-вложение, подставляется только при чтении
	// полного списка. nil не сериализуется (people.json, GetById),
	// пустой срез в ответе списка отдаётся как "".
	Attachment []byte `json:"attachment,omitzero"`
}

// ApplyValues переносит изменяемые поля (name, age, city) из src.
// ID и Attachment не затрагиваются.
func (p *Person) ApplyValues(src Person) {
	p.Name = src.Name
	p.Age = src.Age
	p.City = src.City
}
