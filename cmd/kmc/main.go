//go:build !harness && !checker

// Command kmc encodes and decodes the commands exchanged by a checker and a
// harness. It needs both directions, so it is only built without role tags.
package main

import (
	"context"
	"os"

	"github.com/stealthrocket/kmc/internal/cmd"
)

func main() {
	os.Exit(cmd.Root(context.Background(), os.Args[1:]...))
}
