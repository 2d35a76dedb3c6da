package cmd

// Notes on program structure
// --------------------------
//
// kmc uses subcommands to invoke specific functionalities of the program. Each
// subcommand is implemented by a function named after the command, in a file
// of the same name (e.g. the "help" command is implemented by the help
// function in help.go).
//
// The usage message for each command is declared by a constant starting with
// the command name and followed by the suffix "Usage". For example, the usage
// message for the "help" command is declared by the constant helpUsage.
//
// The usage message contains a "Usage:	kmc <command>" section presenting the
// structure of the command. Note the tabulation separating "Usage:" and "kmc".

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stealthrocket/kmc/internal/config"
	"github.com/stealthrocket/kmc/internal/print/human"
	"github.com/stealthrocket/kmc/internal/print/jsonprint"
	"github.com/stealthrocket/kmc/internal/print/yamlprint"
	"github.com/stealthrocket/kmc/internal/stream"
	"golang.org/x/exp/slices"
)

const rootUsage = `kmc - kernel model check command toolkit

   kmc encodes the commands that a checker sends to a harness, decodes them,
   and inspects the raw records that the kernel returns for directory entries
   and file status.

Example:

   $ kmc encode -o session.kmct scenario.yaml
   $ kmc decode session.kmct
   openat dirfd=3 path="/tmp/x" flags=WRONLY|CREAT mode=USER_READ|USER_WRITE
   ...

For a list of commands available, run 'kmc help'.`

// ExitCode is an error type returned from command functions to indicate the
// exit code that should be returned by the program.
type ExitCode int

func (e ExitCode) Error() string {
	return fmt.Sprintf("exit: %d", e)
}

// usage is an error type returned from command functions to indicate a usage
// error.
//
// Usage errors cause the program to exit with status code 2.
type usage string

func usageError(msg string, args ...any) error {
	return usage(fmt.Sprintf(msg, args...))
}

func (e usage) Error() string {
	return string(e)
}

var (
	// Options shared by all commands.
	configPath human.Path
	verbose    bool
)

// Root is the kmc entrypoint, it returns the exit code of the program.
func Root(ctx context.Context, args ...string) int {
	configPath, verbose = "", false
	defer func(path human.Path) { config.Path = path }(config.Path)

	flagSet := newFlagSet("kmc", helpUsage)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if args = flagSet.Args(); len(args) == 0 {
		fmt.Println(rootUsage)
		return 0
	}

	cmd, args := args[0], args[1:]

	var err error
	switch cmd {
	case "config":
		err = configure(ctx, args)
	case "decode":
		err = decode(ctx, args)
	case "dirents":
		err = dirents(ctx, args)
	case "encode":
		err = encode(ctx, args)
	case "help":
		err = help(ctx, args)
	case "probe":
		err = probeDir(ctx, args)
	case "stat":
		err = stat(ctx, args)
	case "version":
		err = version(ctx, args)
	default:
		err = unknown(ctx, cmd)
	}

	switch e := err.(type) {
	case nil:
		return 0
	case ExitCode:
		return int(e)
	case usage:
		fmt.Fprintf(os.Stderr, "%s\n", e)
		return 2
	default:
		fmt.Fprintf(os.Stderr, "ERR: kmc %s: %s\n", cmd, err)
		return 1
	}
}

// setup loads the configuration and attaches the logger to the returned
// context.
func setup(ctx context.Context, cmd string) (context.Context, *config.Config, error) {
	if configPath != "" {
		config.Path = configPath
	}
	c, err := config.Load()
	if err != nil {
		return ctx, nil, err
	}
	level := c.LogLevel()
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("cmd", cmd).
		Logger()
	return logger.WithContext(ctx), c, nil
}

func setEnum[T ~string](enum *T, typ string, value string, options ...string) error {
	for _, option := range options {
		if option == value {
			*enum = T(option)
			return nil
		}
	}
	return fmt.Errorf("unsupported %s: %q (not one of %s)", typ, value, strings.Join(options, ", "))
}

type outputFormat string

func (o outputFormat) String() string {
	return string(o)
}

func (o *outputFormat) Set(value string) error {
	return setEnum(o, "output format", value, "text", "json", "yaml")
}

// orDefault returns o, or the configured output format if o was not set.
func (o outputFormat) orDefault(c *config.Config) (outputFormat, error) {
	if o != "" {
		return o, nil
	}
	if err := o.Set(c.Output); err != nil {
		return "", fmt.Errorf("configuration: %w", err)
	}
	return o, nil
}

// newWriter returns a writer for values of type T in the output format. The
// text writer is provided by the caller since each command presents values
// differently.
func newWriter[T any](w io.Writer, format outputFormat, text func(io.Writer) stream.WriteCloser[T]) stream.WriteCloser[T] {
	switch format {
	case "json":
		return jsonprint.NewWriter[T](w)
	case "yaml":
		return yamlprint.NewWriter[T](w)
	default:
		return text(w)
	}
}

func newFlagSet(cmd, usage string) *flag.FlagSet {
	usage = strings.TrimSpace(usage)
	flagSet := flag.NewFlagSet(cmd, flag.ContinueOnError)
	flagSet.Usage = func() { fmt.Println(usage) }
	customVar(flagSet, &configPath, "c", "config")
	boolVar(flagSet, &verbose, "v", "verbose")
	return flagSet
}

// parseFlags is a greedy parser which consumes all options known to f and
// returns the remaining arguments.
//
// Asking for help returns ExitCode(0) after the usage was printed, other
// parsing errors return ExitCode(2).
func parseFlags(f *flag.FlagSet, args []string) ([]string, error) {
	var unknownArgs []string
	for {
		if err := f.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, ExitCode(0)
			}
			return nil, ExitCode(2)
		}
		if args = f.Args(); len(args) == 0 {
			return unknownArgs, nil
		}
		i := slices.IndexFunc(args, func(s string) bool {
			return strings.HasPrefix(s, "-") && s != "-"
		})
		if i < 0 {
			i = len(args)
		}
		unknownArgs = append(unknownArgs, args[:i]...)
		args = args[i:]
	}
}

func boolVar(f *flag.FlagSet, dst *bool, name string, alias ...string) {
	f.BoolVar(dst, name, *dst, "")
	for _, name := range alias {
		f.BoolVar(dst, name, *dst, "")
	}
}

func intVar(f *flag.FlagSet, dst *int, name string, alias ...string) {
	f.IntVar(dst, name, *dst, "")
	for _, name := range alias {
		f.IntVar(dst, name, *dst, "")
	}
}

func customVar(f *flag.FlagSet, dst flag.Value, name string, alias ...string) {
	f.Var(dst, name, "")
	for _, name := range alias {
		f.Var(dst, name, "")
	}
}
