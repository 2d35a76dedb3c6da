// Package stream is a library of generic types designed to work on streams of
// values, such as the commands of a transcript or the rows of a table.
package stream

import "io"

// Reader is an interface implemented by types that produce a stream of values
// of type T.
//
// Reader is like io.Reader for values of any type: Read fills values and
// returns how many were produced, the error is io.EOF at the end of the
// stream. A call may return values along with an error.
type Reader[T any] interface {
	Read(values []T) (int, error)
}

// Writer is an interface implemented by types that consume a stream of values
// of type T.
type Writer[T any] interface {
	Write(values []T) (int, error)
}

// WriteCloser is a Writer which must be closed to flush the values written to
// it. Output formatters commonly buffer values until they are closed.
type WriteCloser[T any] interface {
	Writer[T]
	io.Closer
}

// NewReader returns a Reader producing a copy of values.
func NewReader[T any](values ...T) Reader[T] {
	return &sliceReader[T]{values: append([]T(nil), values...)}
}

type sliceReader[T any] struct{ values []T }

func (r *sliceReader[T]) Read(values []T) (int, error) {
	n := copy(values, r.values)
	r.values = r.values[n:]
	if len(r.values) == 0 {
		return n, io.EOF
	}
	return n, nil
}

// ReadAll reads values from r until the end of the stream. Values read before
// an error are returned with it, io.EOF is not reported.
func ReadAll[T any](r Reader[T]) ([]T, error) {
	values := make([]T, 0, 16)
	for {
		if len(values) == cap(values) {
			values = append(values, make([]T, len(values))...)[:len(values)]
		}
		n, err := r.Read(values[len(values):cap(values)])
		values = values[:len(values)+n]
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return values, err
		}
	}
}
