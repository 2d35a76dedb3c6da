package cmd

import (
	"context"
)

const unknownCommand = `kmc %s: unknown command
For a list of commands available, run 'kmc help'`

func unknown(ctx context.Context, cmd string) error {
	return usageError(unknownCommand, cmd)
}
