// Пакет service — бизнес-логика ApiLogDemo.
// PeopleService — CRUD над people.json, CallLogService — журнал вызовов
// над apiLogs.json с вычисляемым полем Version.
package service

// Result — результат операции сервиса вместе с количеством элементов,
// которое попадает в журнал вызовов как record_count.
// Для коллекций ItemCount равен длине коллекции, для одиночных значений — 0.
type Result[T any] struct {
	Payload   T
	ItemCount float64
}

// collectionResult оборачивает коллекцию.
func collectionResult[T any](items []T) Result[[]T] {
	return Result[[]T]{Payload: items, ItemCount: float64(len(items))}
}

// singleResult оборачивает одиночное значение.
func singleResult[T any](v T) Result[T] {
	return Result[T]{Payload: v}
}
