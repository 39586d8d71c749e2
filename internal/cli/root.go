// Package cli implements the trackers command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/trackers/pkg/trackers"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag names.
const (
	flagConfigDir = "config-dir"
	flagBackend   = "backend"
	flagLogLevel  = "log-level"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
}

// exitCodeError carries the process exit code for err.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func userError(err error) error { return &exitCodeError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitCodeError{code: exitSysError, err: err} }

// NewRootCmd creates the top-level "trackers" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:     "trackers",
		Short:   "Console record trackers",
		Long:    "Trackers runs small menu-driven record keepers: an inventory,\na lending library, a gradebook, and a task list.",
		Version: trackers.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, flagConfigDir, "", "configuration directory (default: platform config dir)")
	pf.String(flagBackend, "", "record store backend: memory or sqlite")
	pf.String(flagLogLevel, "", "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	for _, t := range trackerCommands {
		root.AddCommand(newTrackerCmd(flags, t))
	}

	return root
}

// Execute runs the root command against the process streams and exits with
// the appropriate code. No signal handler is installed, so an interrupt ends
// the process even while a prompt is waiting for input.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(errOut, "Error:", err)
	return exitCode(err)
}

// exitCode maps err to a process exit code. Errors without an explicit code
// come from argument parsing and count as user errors.
func exitCode(err error) int {
	var ce *exitCodeError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
