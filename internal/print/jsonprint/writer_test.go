package jsonprint_test

import (
	"bytes"
	"testing"

	"github.com/stealthrocket/kmc/internal/assert"
	"github.com/stealthrocket/kmc/internal/print/jsonprint"
)

type entry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

var entries = []entry{
	{Name: ".", Kind: "directory"},
	{Name: "<file>", Kind: "regular"},
}

func TestWriteNothing(t *testing.T) {
	b := new(bytes.Buffer)
	w := jsonprint.NewWriter[entry](b)
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), "")
}

func TestWriteValues(t *testing.T) {
	b := new(bytes.Buffer)
	w := jsonprint.NewWriter[entry](b)
	_, err := w.Write(entries)
	assert.OK(t, err)
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), `{
  "name": ".",
  "kind": "directory"
}
{
  "name": "<file>",
  "kind": "regular"
}
`)
}

func TestListWriteNothing(t *testing.T) {
	b := new(bytes.Buffer)
	w := jsonprint.NewListWriter[entry](b)
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), "[]\n")
}

func TestListWriteValues(t *testing.T) {
	b := new(bytes.Buffer)
	w := jsonprint.NewListWriter[entry](b)
	_, err := w.Write(entries[:1])
	assert.OK(t, err)
	_, err = w.Write(entries[1:])
	assert.OK(t, err)
	assert.Equal(t, b.String(), "")
	assert.OK(t, w.Close())
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), `[
  {
    "name": ".",
    "kind": "directory"
  },
  {
    "name": "<file>",
    "kind": "regular"
  }
]
`)
}
