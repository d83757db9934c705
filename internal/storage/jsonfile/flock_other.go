//go:build !unix

package jsonfile

// lockFile без flock(): межпроцессная блокировка не поддерживается,
// остаётся только мьютекс документа.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
