package command

import (
	"reflect"
	"strings"

	"golang.org/x/exp/slices"
)

// Descriptor describes a command type.
type Descriptor struct {
	Name string
	ID   ID
	// Alternate is true for command types sharing the identifier of another
	// command type which was registered first.
	Alternate bool
	// New returns a pointer to a zero value of the command type.
	New func() Command
}

var descriptors []Descriptor

func init() {
	for _, newCommand := range []func() Command{
		func() Command { return new(Getcwd) },
		func() Command { return new(Dup) },
		func() Command { return new(Mkdirat) },
		func() Command { return new(Unlinkat) },
		func() Command { return new(Linkat) },
		func() Command { return new(Chdir) },
		func() Command { return new(Openat) },
		func() Command { return new(Close) },
		func() Command { return new(Getdents) },
		func() Command { return new(Fstat) },
		func() Command { return new(Mprotect) },
		func() Command { return new(Brk) },
		func() Command { return new(Sbrk) },
		func() Command { return new(Munmap) },
		func() Command { return new(Mmap) },
	} {
		c := newCommand()
		id := c.CommandID()
		descriptors = append(descriptors, Descriptor{
			Name:      NameOf(c),
			ID:        id,
			Alternate: len(ByID(id)) > 0,
			New:       newCommand,
		})
	}
}

// NameOf returns the name of the command type of c, which is the lower-case
// name of the system call.
func NameOf(c Command) string {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// Commands returns the descriptors of all command types.
func Commands() []Descriptor { return slices.Clone(descriptors) }

// Lookup returns the descriptor of the command type with the given name.
func Lookup(name string) (Descriptor, bool) {
	i := slices.IndexFunc(descriptors, func(d Descriptor) bool { return d.Name == name })
	if i < 0 {
		return Descriptor{}, false
	}
	return descriptors[i], true
}

// ByID returns the descriptors of command types with the given identifier,
// the primary one first.
func ByID(id ID) []Descriptor {
	var found []Descriptor
	for _, d := range descriptors {
		if d.ID == id {
			found = append(found, d)
		}
	}
	return found
}

func primary(id ID) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}
