// Пакет jsonfile — JSON-документ на диске, содержащий массив записей.
//
// Каждая мутация — полный цикл read-modify-write: документ читается
// целиком, изменяется в памяти и перезаписывается целиком.
// Запись атомарна: JSON → temp файл → fsync → rename.
// Отсутствующий файл эквивалентен пустой коллекции.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrMalformed — файл существует, но не является JSON-массивом записей.
var ErrMalformed = errors.New("некорректный JSON-документ")

// UpdateFunc изменяет коллекцию в памяти. Возвращает новую коллекцию и
// признак необходимости записи. При write == false файл не перезаписывается.
type UpdateFunc[T any] func(items []T) (result []T, write bool, err error)

// lockSuffix — суффикс lock-файла рядом с документом.
const lockSuffix = ".lock"

// Document — JSON-документ с массивом записей типа T.
// При locking == true чтение и read-modify-write сериализуются мьютексом
// документа и flock() на {path}.lock (между процессами с общей директорией);
// при locking == false конкурентные Update могут терять изменения
// (last writer wins).
type Document[T any] struct {
	path    string
	locking bool
	mu      sync.Mutex
}

// New создаёт документ по указанному пути. Родительская директория
// создаётся, если не существует. Сам файл не создаётся до первой записи.
func New[T any](path string, locking bool) (*Document[T], error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}

	return &Document[T]{path: path, locking: locking}, nil
}

// Path возвращает путь к файлу документа.
func (d *Document[T]) Path() string {
	return d.path
}

// Load читает всю коллекцию. Для отсутствующего файла возвращает пустой срез.
func (d *Document[T]) Load() ([]T, error) {
	unlock, err := d.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return d.read()
}

// Save перезаписывает документ целиком.
func (d *Document[T]) Save(items []T) error {
	unlock, err := d.lock()
	if err != nil {
		return err
	}
	defer unlock()

	return d.write(items)
}

// Update выполняет read-modify-write. Ошибка fn возвращается как есть,
// файл при этом не изменяется.
func (d *Document[T]) Update(fn UpdateFunc[T]) error {
	unlock, err := d.lock()
	if err != nil {
		return err
	}
	defer unlock()

	items, err := d.read()
	if err != nil {
		return err
	}

	result, write, err := fn(items)
	if err != nil {
		return err
	}
	if !write {
		return nil
	}

	return d.write(result)
}

// lock захватывает мьютекс документа и lock-файл. При locking == false
// ничего не делает.
func (d *Document[T]) lock() (func(), error) {
	if !d.locking {
		return func() {}, nil
	}

	d.mu.Lock()
	release, err := lockFile(d.path + lockSuffix)
	if err != nil {
		d.mu.Unlock()
		return nil, err
	}

	return func() {
		release()
		d.mu.Unlock()
	}, nil
}

// read читает и десериализует документ.
func (d *Document[T]) read() ([]T, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("ошибка чтения %s: %w", d.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformed, d.path, err)
	}
	// "null" в файле эквивалентен пустой коллекции
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// write атомарно записывает документ на диск.
// Паттерн: temp файл с уникальным именем → fsync → atomic rename.
func (d *Document[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации %s: %w", d.path, err)
	}

	// Уникальное имя: без блокировки несколько писателей не мешают друг другу
	tmpPath := d.path + "." + uuid.NewString() + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка записи: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, d.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return nil
}
