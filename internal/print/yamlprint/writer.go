// Package yamlprint writes streams of values as YAML.
package yamlprint

import (
	"io"

	"github.com/stealthrocket/kmc/internal/stream"
	"gopkg.in/yaml.v3"
)

func newEncoder(w io.Writer) *yaml.Encoder {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	return e
}

// NewWriter returns a writer encoding each value as a separate YAML document.
func NewWriter[T any](w io.Writer) stream.WriteCloser[T] {
	return writer[T]{newEncoder(w)}
}

type writer[T any] struct{ encoder *yaml.Encoder }

func (w writer[T]) Write(values []T) (int, error) {
	for i := range values {
		if err := w.encoder.Encode(values[i]); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

func (w writer[T]) Close() error {
	err := w.encoder.Close()
	// Closing an encoder which did not write any document is not an error.
	if err != nil && err.Error() == `yaml: expected STREAM-START` {
		err = nil
	}
	return err
}

// NewListWriter returns a writer encoding all the values written to it as a
// single YAML sequence. Nothing is output until the writer is closed.
func NewListWriter[T any](w io.Writer) stream.WriteCloser[T] {
	return &listWriter[T]{encoder: newEncoder(w), values: []T{}}
}

type listWriter[T any] struct {
	encoder *yaml.Encoder
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
	if err := w.encoder.Encode(w.values); err != nil {
		return err
	}
	return w.encoder.Close()
}
