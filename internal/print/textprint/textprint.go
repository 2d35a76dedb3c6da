// Package textprint writes streams of values in human readable text, as
// tables or one value per line.
package textprint

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"
)

type encodeFunc func(io.Writer, reflect.Value) error

var (
	timeType          = reflect.TypeOf(time.Time{})
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func encodeTime(w io.Writer, v reflect.Value) error {
	t := v.Interface().(time.Time)
	if t.IsZero() {
		_, err := io.WriteString(w, "-")
		return err
	}
	_, err := io.WriteString(w, t.Format(time.RFC3339))
	return err
}

func encodeStringer(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, v.Interface().(fmt.Stringer).String())
	return err
}

func encodeTextMarshaler(w io.Writer, v reflect.Value) error {
	b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func encodeBool(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, strconv.FormatBool(v.Bool()))
	return err
}

func encodeInt(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, strconv.FormatInt(v.Int(), 10))
	return err
}

func encodeUint(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, strconv.FormatUint(v.Uint(), 10))
	return err
}

func encodeString(w io.Writer, v reflect.Value) error {
	s := v.String()
	if s == "" {
		s = "-"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Byte slices are printed in hexadecimal, names and paths are strings.
func encodeBytes(w io.Writer, v reflect.Value) error {
	_, err := fmt.Fprintf(w, "%x", v.Bytes())
	return err
}

func encodeFuncOf(t reflect.Type) encodeFunc {
	switch {
	case t == timeType:
		return encodeTime
	case t.Implements(stringerType):
		return encodeStringer
	case t.Implements(textMarshalerType):
		return encodeTextMarshaler
	}
	switch t.Kind() {
	case reflect.Bool:
		return encodeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encodeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return encodeUint
	case reflect.String:
		return encodeString
	case reflect.Pointer:
		return encodeFuncOfPointer(t.Elem())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return encodeBytes
		}
		return encodeFuncOfSlice(t.Elem())
	default:
		panic("cannot encode values of type " + t.String())
	}
}

func encodeFuncOfPointer(t reflect.Type) encodeFunc {
	encode := encodeFuncOf(t)
	return func(w io.Writer, v reflect.Value) error {
		if v.IsNil() {
			_, err := io.WriteString(w, "-")
			return err
		}
		return encode(w, v.Elem())
	}
}

func encodeFuncOfSlice(t reflect.Type) encodeFunc {
	encode := encodeFuncOf(t)
	return func(w io.Writer, v reflect.Value) error {
		for i, n := 0, v.Len(); i < n; i++ {
			if i != 0 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if err := encode(w, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
}
