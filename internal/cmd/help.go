package cmd

import (
	"context"
	"fmt"
)

const helpUsage = `
Usage:	kmc <command> [options]

Checker Commands:
   encode   Encode a scenario of commands to a transcript
   decode   Decode the commands of a transcript

Record Commands:
   dirents  Decode a buffer of directory entries
   stat     Decode a buffer of file status records
   probe    Capture and decode records from the kernel of this host

Other Commands:
   config   View or edit the kmc configuration
   help     Show usage information about kmc commands
   version  Show the kmc version information

Global Options:
   -c, --config path  Path to the kmc configuration file (overrides KMCCONFIG)
   -v, --verbose      Enable debug logs

For a description of each command, run 'kmc help <command>'.`

func help(ctx context.Context, args []string) error {
	flagSet := newFlagSet("kmc help", helpUsage)
	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}

	var cmd string
	var msg string

	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "config":
		msg = configUsage
	case "decode":
		msg = decodeUsage
	case "dirents":
		msg = direntsUsage
	case "encode":
		msg = encodeUsage
	case "help", "":
		msg = helpUsage
	case "probe":
		msg = probeUsage
	case "stat":
		msg = statUsage
	case "version":
		msg = versionUsage
	default:
		return usageError("kmc help %s: unknown command", cmd)
	}

	fmt.Println(msg)
	return nil
}
