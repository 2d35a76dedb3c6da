// Package jsonprint writes streams of values as indented JSON.
package jsonprint

import (
	"encoding/json"
	"io"

	"github.com/stealthrocket/kmc/internal/stream"
)

func newEncoder(w io.Writer) *json.Encoder {
	e := json.NewEncoder(w)
	e.SetEscapeHTML(false)
	e.SetIndent("", "  ")
	return e
}

// NewWriter returns a writer encoding each value as a separate JSON document.
func NewWriter[T any](w io.Writer) stream.WriteCloser[T] {
	return writer[T]{newEncoder(w)}
}

type writer[T any] struct{ encoder *json.Encoder }

func (w writer[T]) Write(values []T) (int, error) {
	for n := range values {
		if err := w.encoder.Encode(values[n]); err != nil {
			return n, err
		}
	}
	return len(values), nil
}

func (w writer[T]) Close() error { return nil }

// NewListWriter returns a writer encoding all the values written to it as a
// single JSON array. Nothing is output until the writer is closed.
func NewListWriter[T any](w io.Writer) stream.WriteCloser[T] {
	return &listWriter[T]{encoder: newEncoder(w), values: []T{}}
}

type listWriter[T any] struct {
	encoder *json.Encoder
	values  []T
	closed  bool
}

func (w *listWriter[T]) Write(values []T) (int, error) {
	w.values = append(w.values, values...)
	return len(values), nil
}

func (w *listWriter[T]) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.encoder.Encode(w.values)
}
