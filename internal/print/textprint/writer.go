package textprint

import (
	"bufio"
	"fmt"
	"io"

	"github.com/stealthrocket/kmc/internal/stream"
)

type WriterOption[T any] func(*writer[T])

// Format sets the fmt format used to print values, the default is "%v\n".
func Format[T any](s string) WriterOption[T] {
	return func(w *writer[T]) { w.format = s }
}

// Separator sets a string written between consecutive values.
func Separator[T any](s string) WriterOption[T] {
	return func(w *writer[T]) { w.separator = s }
}

// NewWriter returns a writer printing one value per line to w. The output is
// buffered until the writer is closed.
func NewWriter[T any](w io.Writer, opts ...WriterOption[T]) stream.WriteCloser[T] {
	lw := &writer[T]{output: bufio.NewWriter(w), format: "%v\n"}
	for _, opt := range opts {
		opt(lw)
	}
	return lw
}

type writer[T any] struct {
	output    *bufio.Writer
	format    string
	separator string
	written   bool
}

func (w *writer[T]) Write(values []T) (int, error) {
	for n, v := range values {
		if w.written && w.separator != "" {
			if _, err := w.output.WriteString(w.separator); err != nil {
				return n, err
			}
		}
		if _, err := fmt.Fprintf(w.output, w.format, v); err != nil {
			return n, err
		}
		w.written = true
	}
	return len(values), nil
}

func (w *writer[T]) Close() error {
	return w.output.Flush()
}
