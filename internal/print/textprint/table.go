package textprint

import (
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/stealthrocket/kmc/internal/stream"
	"golang.org/x/exp/slices"
)

type TableOption[T any] func(*tableWriter[T])

// Header enables or disables the line of column names, it is enabled by
// default.
func Header[T any](enable bool) TableOption[T] {
	return func(t *tableWriter[T]) { t.header = enable }
}

// OrderBy sorts the rows with the less function before they are written.
func OrderBy[T any](less func(T, T) bool) TableOption[T] {
	return func(t *tableWriter[T]) { t.orderBy = less }
}

// NewTableWriter returns a writer printing values of the struct type T as the
// rows of a table written to w when the writer is closed.
//
// The exported fields of T are the columns of the table. Columns are named by
// the "text" struct tag, or by the field name if the tag is missing. Fields
// tagged with "-" are omitted.
func NewTableWriter[T any](w io.Writer, opts ...TableOption[T]) stream.WriteCloser[T] {
	t := &tableWriter[T]{output: w, header: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type tableWriter[T any] struct {
	output  io.Writer
	values  []T
	header  bool
	orderBy func(T, T) bool
}

type column struct {
	name   string
	encode encodeFunc
}

func columnsOf(t reflect.Type) []column {
	var columns []column
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("text"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = strings.ToUpper(f.Name)
		}
		encode := encodeFuncOf(f.Type)
		index := f.Index
		columns = append(columns, column{
			name: name,
			encode: func(w io.Writer, v reflect.Value) error {
				return encode(w, v.FieldByIndex(index))
			},
		})
	}
	return columns
}

func (t *tableWriter[T]) Write(values []T) (int, error) {
	t.values = append(t.values, values...)
	return len(values), nil
}

func (t *tableWriter[T]) Close() error {
	if t.orderBy != nil {
		slices.SortStableFunc(t.values, t.orderBy)
	}

	rowType := reflect.TypeOf((*T)(nil)).Elem()
	deref := rowType.Kind() == reflect.Pointer
	if deref {
		rowType = rowType.Elem()
	}
	columns := columnsOf(rowType)

	tw := tabwriter.NewWriter(t.output, 0, 4, 2, ' ', 0)
	writeCell := func(s string) error {
		_, err := io.WriteString(tw, s)
		return err
	}

	if t.header {
		for _, c := range columns {
			if err := writeCell(c.name + "\t"); err != nil {
				return err
			}
		}
		if err := writeCell("\n"); err != nil {
			return err
		}
	}

	for i := range t.values {
		v := reflect.ValueOf(&t.values[i]).Elem()
		if deref {
			v = v.Elem()
		}
		for _, c := range columns {
			if err := c.encode(tw, v); err != nil {
				return err
			}
			if err := writeCell("\t"); err != nil {
				return err
			}
		}
		if err := writeCell("\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
