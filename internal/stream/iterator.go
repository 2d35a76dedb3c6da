package stream

import "io"

const iteratorBufferSize = 64

// maxEmptyReads is the number of consecutive empty reads after which an
// Iterator gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// Iterator reads the values of a Reader one at a time.
//
//	it := stream.Iter(r)
//	for it.Next() {
//		v := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T any] struct {
	base Reader[T]
	err  error
	off  int
	len  int
	buf  []T
}

// Iter returns an iterator over the values of r.
func Iter[T any](r Reader[T]) *Iterator[T] {
	return &Iterator[T]{base: r}
}

// Values reads the remaining values of it.
func Values[T any](it *Iterator[T]) ([]T, error) {
	var values []T
	for it.Next() {
		values = append(values, it.Value())
	}
	return values, it.Err()
}

// Reset positions it at the start of r, retaining its buffer.
func (it *Iterator[T]) Reset(r Reader[T]) {
	it.base, it.err = r, nil
	it.off, it.len = 0, 0
	clear(it.buf)
}

// Next advances to the next value, it returns false when the reader reached
// the end of the stream or failed.
func (it *Iterator[T]) Next() bool {
	if it.off++; it.off < it.len {
		return true
	}
	return it.fill()
}

func (it *Iterator[T]) fill() bool {
	if it.base == nil || it.err != nil {
		return false
	}
	if it.buf == nil {
		it.buf = make([]T, iteratorBufferSize)
	}
	for i := 0; i < maxEmptyReads; i++ {
		n, err := it.base.Read(it.buf)
		it.err, it.off, it.len = err, 0, n
		if n > 0 {
			return true
		}
		if err != nil {
			return false
		}
	}
	it.err = io.ErrNoProgress
	return false
}

// Value returns the current value. It must only be called after Next returned
// true.
func (it *Iterator[T]) Value() T {
	return it.buf[it.off]
}

// Err returns the error that stopped the iterator, nil at the end of the
// stream.
func (it *Iterator[T]) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}
