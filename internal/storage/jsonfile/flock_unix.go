//go:build unix

package jsonfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile захватывает эксклюзивный flock() на path, ожидая освобождения.
// Возвращает функцию снятия блокировки.
func lockFile(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o640)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть lock-файл %s: %w", path, err)
	}

	fd := int(f.Fd())
	for {
		err = unix.Flock(fd, unix.LOCK_EX)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("не удалось захватить lock-файл %s: %w", path, err)
	}

	return func() {
		_ = unix.Flock(fd, unix.LOCK_UN)
		_ = f.Close()
	}, nil
}
