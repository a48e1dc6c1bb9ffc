package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumeq/lumeq/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	DBPath string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{}

	cmd := &cobra.Command{
		Use:   "trace [run-id]",
		Short: "List stored runs or replay one run's event list",
		Long: `Trace inspects a run database written by generate --db. Without a
run id it lists all stored runs, newest first. With a run id it loads that
run's event list and prints it like generate would.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTraceList(cmd, opts, rootOpts)
			}
			return runTraceShow(cmd, args[0], opts, rootOpts)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "run database path (required)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runTraceList(cmd *cobra.Command, opts *TraceOptions, rootOpts *RootOptions) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	db, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening run database", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	if rootOpts.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no runs stored")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %-20s %6d events  %s\n",
			run.ID, run.Program, run.EventCount, run.CreatedAt)
	}
	return nil
}

func runTraceShow(cmd *cobra.Command, id string, opts *TraceOptions, rootOpts *RootOptions) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	db, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening run database", err)
	}
	defer db.Close()

	run, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitCommandError, "looking up run", err)
		}
		return WrapExitError(ExitFailure, "looking up run", err)
	}

	list, err := db.LoadEvents(cmd.Context(), id)
	if err != nil {
		return WrapExitError(ExitFailure, "loading events", err)
	}
	formatter.VerboseLog("run %s: program %q, %d events, hash %s",
		run.ID, run.Program, run.EventCount, run.Hash)

	return writeEventList(formatter, list)
}
