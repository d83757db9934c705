// stream.go — поэлементная запись JSON-массива в HTTP-ответ.
// Заголовки отправляются при первом элементе или при закрытии, поэтому
// ошибку чтения хранилища ещё можно вернуть обычным ответом 500.
package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"net/http"
)

// streamBufferSize — размер буфера между encoder'ом и ответом.
const streamBufferSize = 16 << 10

// arrayStream пишет JSON-массив в ответ по одному элементу.
type arrayStream struct {
	w      http.ResponseWriter
	rc     *http.ResponseController
	buf    *bufio.Writer
	header func(http.Header)
	// indent — форматированный вывод (отступ два пробела)
	indent bool
	// flushEach — отправлять чанк клиенту после каждого элемента
	flushEach bool

	started bool
	count   int
}

func newArrayStream(w http.ResponseWriter, header func(http.Header), indent, flushEach bool) *arrayStream {
	return &arrayStream{
		w:         w,
		rc:        http.NewResponseController(w),
		buf:       bufio.NewWriterSize(w, streamBufferSize),
		header:    header,
		indent:    indent,
		flushEach: flushEach,
	}
}

// Started сообщает, ушли ли заголовки ответа клиенту.
func (s *arrayStream) Started() bool {
	return s.started
}

// Write добавляет элемент в массив.
func (s *arrayStream) Write(v any) error {
	if err := s.start(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if s.indent {
		data, err = json.MarshalIndent(v, "  ", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if s.count > 0 {
		if err := s.buf.WriteByte(','); err != nil {
			return err
		}
	}
	if s.indent {
		if _, err := s.buf.WriteString("\n  "); err != nil {
			return err
		}
	}
	if _, err := s.buf.Write(data); err != nil {
		return err
	}
	s.count++

	if s.flushEach {
		return s.flush()
	}
	return nil
}

// Close завершает массив и отправляет остаток буфера.
func (s *arrayStream) Close() error {
	if err := s.start(); err != nil {
		return err
	}
	end := "]"
	if s.indent && s.count > 0 {
		end = "\n]"
	}
	if _, err := s.buf.WriteString(end); err != nil {
		return err
	}
	return s.flush()
}

func (s *arrayStream) start() error {
	if s.started {
		return nil
	}
	s.started = true
	if s.header != nil {
		s.header(s.w.Header())
	}
	s.w.WriteHeader(http.StatusOK)
	if err := s.buf.WriteByte('['); err != nil {
		return err
	}
	if s.flushEach {
		// Заголовки уходят клиенту сразу
		return s.flush()
	}
	return nil
}

func (s *arrayStream) flush() error {
	if err := s.buf.Flush(); err != nil {
		return err
	}
	if err := s.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}

// chunkedJSONHeaders — заголовки потоковой выдачи без буферизации прокси.
func chunkedJSONHeaders(h http.Header) {
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Accel-Buffering", "no")
}

// attachmentHeaders возвращает заголовки JSON-файла для скачивания.
func attachmentHeaders(filename string) func(http.Header) {
	return func(h http.Header) {
		h.Set("Content-Type", "application/json")
		h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
}
