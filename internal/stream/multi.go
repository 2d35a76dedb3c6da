package stream

import (
	"io"
	"slices"
)

// MultiReader returns a Reader producing the values of each reader in
// sequence. It is the equivalent of io.MultiReader for streams of values.
//
// Readers which reach the end of their stream without producing values are
// skipped.
func MultiReader[T any](readers ...Reader[T]) Reader[T] {
	return &multiReader[T]{readers: slices.Clone(readers)}
}

type multiReader[T any] struct {
	readers []Reader[T]
}

func (m *multiReader[T]) Read(values []T) (n int, err error) {
	for n < len(values) && len(m.readers) > 0 {
		rn, err := m.readers[0].Read(values[n:])
		n += rn
		switch {
		case err == io.EOF:
			m.readers[0] = nil
			m.readers = m.readers[1:]
		case err != nil:
			return n, err
		case rn == 0:
			return n, nil
		}
	}
	if len(m.readers) == 0 {
		return n, io.EOF
	}
	return n, nil
}
