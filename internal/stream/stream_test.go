package stream_test

import (
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/stealthrocket/kmc/internal/assert"
	"github.com/stealthrocket/kmc/internal/stream"
)

func TestReadAll(t *testing.T) {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	reader := stream.NewReader(values...)

	read, err := stream.ReadAll(reader)
	assert.OK(t, err)
	assert.EqualAll(t, read, values)
}

func TestConvertReader(t *testing.T) {
	r := stream.ConvertReader(stream.NewReader("1", "2", "3"), strconv.Atoi)
	values, err := stream.ReadAll(r)
	assert.OK(t, err)
	assert.EqualAll(t, values, []int{1, 2, 3})

	r = stream.ConvertReader(stream.NewReader("1", "x", "3"), strconv.Atoi)
	values, err = stream.ReadAll(r)
	assert.Equal(t, len(values), 1)
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestMultiReader(t *testing.T) {
	r := stream.MultiReader(
		stream.NewReader(1, 2),
		stream.NewReader(3),
		stream.NewReader(4, 5, 6),
	)
	values, err := stream.ReadAll(r)
	assert.OK(t, err)
	assert.EqualAll(t, values, []int{1, 2, 3, 4, 5, 6})

	r = stream.MultiReader(
		chunks([][]int{{1}, {}, {2, 3}}),
		chunks([][]int{}),
		chunks([][]int{{4}}),
	)
	values, err = stream.ReadAll(r)
	assert.OK(t, err)
	assert.EqualAll(t, values, []int{1, 2, 3, 4})

	_, err = stream.MultiReader[int]().Read(make([]int, 1))
	assert.Equal(t, err, io.EOF)
}
