package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Nullable is a configuration value which may be set to null, for example to
// turn off logging with "level: null".
type Nullable[T any] struct {
	value T
	set   bool
}

func NullableValue[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, set: true}
}

// Value returns the value and whether it was set to something other than null.
func (v Nullable[T]) Value() (T, bool) {
	return v.value, v.set
}

func (v Nullable[T]) MarshalJSON() ([]byte, error) {
	if v.set {
		return json.Marshal(v.value)
	}
	return []byte("null"), nil
}

func (v Nullable[T]) MarshalYAML() (any, error) {
	if v.set {
		return v.value, nil
	}
	return nil, nil
}

func (v *Nullable[T]) UnmarshalJSON(b []byte) error {
	*v = Nullable[T]{}
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &v.value); err != nil {
		return err
	}
	v.set = true
	return nil
}

func (v *Nullable[T]) UnmarshalYAML(node *yaml.Node) error {
	*v = Nullable[T]{}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}
	if err := node.Decode(&v.value); err != nil {
		return err
	}
	v.set = true
	return nil
}
