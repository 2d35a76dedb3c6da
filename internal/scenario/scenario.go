// Package scenario reads and writes sequences of commands in YAML.
//
// A scenario is a list of steps, each step is a mapping naming the command
// with the "op" key and its arguments with the other keys:
//
//   - op: openat
//     dirfd: 3
//     path: /tmp/x
//     flags: CREAT|WRONLY
//     mode: USER_READ|USER_WRITE
//   - op: close
//     fd: 3
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/stealthrocket/kmc/command"
	"gopkg.in/yaml.v3"
)

// Step is a single command of a scenario.
type Step struct {
	Command command.Command
}

// Load reads a scenario from r.
func Load(r io.Reader) ([]Step, error) {
	var steps []Step
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&steps); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return steps, nil
}

// Commands returns the commands of the steps.
func Commands(steps []Step) []command.Command {
	commands := make([]command.Command, len(steps))
	for i, step := range steps {
		commands[i] = step.Command
	}
	return commands
}

// Name returns the name of the command of s.
func (s Step) Name() string { return command.NameOf(s.Command) }

func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: scenario step must be a mapping", node.Line)
	}

	var op string
	args := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: node.Line, Column: node.Column}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == "op" {
			op = value.Value
			continue
		}
		args.Content = append(args.Content, key, value)
	}
	if op == "" {
		return fmt.Errorf("line %d: scenario step has no op", node.Line)
	}

	d, ok := command.Lookup(op)
	if !ok {
		return fmt.Errorf("line %d: unknown command: %q", node.Line, op)
	}
	c := d.New()
	fields := fieldNames(reflect.TypeOf(c).Elem())
	for i := 0; i < len(args.Content); i += 2 {
		key := args.Content[i]
		if _, ok := fields[key.Value]; !ok {
			return fmt.Errorf("line %d: field %s not found in %s command", key.Line, key.Value, op)
		}
	}
	if err := args.Decode(c); err != nil {
		return fmt.Errorf("line %d: %s: %w", node.Line, op, err)
	}
	s.Command = c
	return nil
}

func (s Step) MarshalYAML() (any, error) {
	var node yaml.Node
	if err := node.Encode(s.Command); err != nil {
		return nil, err
	}
	if node.Kind != yaml.MappingNode {
		node = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	op := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "op"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Name()},
	}
	node.Content = append(op, node.Content...)
	return &node, nil
}

func (s Step) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(s.Command)
	if err != nil {
		return nil, err
	}
	name, _ := json.Marshal(s.Name())
	b = bytes.TrimPrefix(b, []byte("{"))
	if string(b) != "}" {
		b = append([]byte{','}, b...)
	}
	return append(append([]byte(`{"op":`), name...), b...), nil
}

// String returns a single line representation of the step, for example:
//
//	openat dirfd=3 path="/tmp/x" flags=WRONLY|CREAT mode=USER_READ|USER_WRITE
func (s Step) String() string {
	w := new(strings.Builder)
	w.WriteString(s.Name())

	v := reflect.ValueOf(s.Command).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		value := v.Field(i).Interface()
		if path, ok := value.(command.Path); ok {
			fmt.Fprintf(w, " %s=%q", fieldName(f), path.String())
		} else {
			fmt.Fprintf(w, " %s=%v", fieldName(f), value)
		}
	}
	return w.String()
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "" {
		name = strings.ToLower(f.Name)
	}
	return name
}

func fieldNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			names[fieldName(f)] = struct{}{}
		}
	}
	return names
}
