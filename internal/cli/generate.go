package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumeq/lumeq/internal/eventlist"
	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/feedback"
	"github.com/lumeq/lumeq/internal/ir"
	"github.com/lumeq/lumeq/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	SetupPath   string
	DBPath      string
	Start       int64
	MaxEvents   int
	ExpandLoops bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <program.yaml>",
		Short: "Generate the event list for a program",
		Long: `Generate walks a fully-timed program tree and emits its flat event list.

The program is validated structurally first; with --setup, branch timing
against measured feedback latencies is verified as well. The event list is
printed as canonical JSON (--format json) or a readable trace (--format
text), and optionally persisted to a run database with --db.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts, rootOpts)
		},
	}

	cmd.Flags().StringVar(&opts.SetupPath, "setup", "", "device setup file (CUE) for branch timing verification")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "persist the run to this SQLite database")
	cmd.Flags().Int64Var(&opts.Start, "start", 0, "absolute start time of the program in tinysamples")
	cmd.Flags().IntVar(&opts.MaxEvents, "max-events", 0, "truncate the event list after this many events (0 = unbounded)")
	cmd.Flags().BoolVar(&opts.ExpandLoops, "expand-loops", false, "expand compressed loops into shadow iterations")

	return cmd
}

func runGenerate(cmd *cobra.Command, programPath string, opts *GenerateOptions, rootOpts *RootOptions) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	name, root, err := LoadProgram(programPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading program", err)
	}
	formatter.VerboseLog("loaded program %q from %s", name, programPath)

	if errs := ir.Validate(root); len(errs) > 0 {
		details := make([]string, len(errs))
		for i, ve := range errs {
			details[i] = ve.Error()
		}
		formatter.Error("invalid_program", fmt.Sprintf("%d validation error(s)", len(errs)), details)
		return &ExitError{Code: ExitFailure, Message: "program validation failed"}
	}

	settings := eventlist.DefaultSettings()
	if opts.SetupPath != "" {
		signals, tinySample, err := LoadSetup(opts.SetupPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading setup", err)
		}
		settings.TinySample = tinySample
		resolver := &feedback.Resolver{
			Acquires:   feedback.BuildRegistry(root),
			Signals:    signals,
			Model:      feedback.DefaultLatencyModel(),
			TinySample: tinySample,
		}
		if err := resolver.VerifyTree(root); err != nil {
			formatter.Error("branch_timing", err.Error(), nil)
			return &ExitError{Code: ExitFailure, Message: "branch timing verification failed"}
		}
		formatter.VerboseLog("branch timing verified against %s", opts.SetupPath)
	}

	list, err := eventlist.Generate(root, eventlist.Options{
		Start:       opts.Start,
		MaxEvents:   opts.MaxEvents,
		ExpandLoops: opts.ExpandLoops,
		Settings:    settings,
	})
	if err != nil {
		formatter.Error("generation", err.Error(), nil)
		return &ExitError{Code: ExitFailure, Message: "event generation failed"}
	}
	formatter.VerboseLog("generated %d events", len(list))

	if opts.DBPath != "" {
		db, err := store.Open(opts.DBPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening run database", err)
		}
		defer db.Close()
		run, err := db.SaveRun(cmd.Context(), store.Run{
			Program:     name,
			MaxEvents:   opts.MaxEvents,
			ExpandLoops: opts.ExpandLoops,
		}, list)
		if err != nil {
			return WrapExitError(ExitCommandError, "saving run", err)
		}
		formatter.VerboseLog("saved run %s (hash %s)", run.ID, run.Hash)
	}

	return writeEventList(formatter, list)
}

// writeEventList prints an event list in the formatter's configured format:
// canonical JSON for machine consumption, or one line per event for reading.
func writeEventList(f *OutputFormatter, list events.List) error {
	if f.Format == "json" {
		raw, err := events.MarshalListCanonical(list)
		if err != nil {
			return WrapExitError(ExitFailure, "encoding event list", err)
		}
		fmt.Fprintln(f.Writer, string(raw))
		return nil
	}
	for _, ev := range list {
		fmt.Fprintln(f.Writer, formatEvent(ev))
	}
	return nil
}

// formatEvent renders one event as a fixed-width trace line.
func formatEvent(ev events.Event) string {
	line := fmt.Sprintf("%10d  #%-5d %-28s", ev.Time, ev.ID, ev.Type)
	if ev.SectionName != "" {
		line += " section=" + ev.SectionName
	}
	if ev.Signal != "" {
		line += " signal=" + ev.Signal
	}
	if ev.ChainElementID > 0 {
		line += fmt.Sprintf(" chain=%d", ev.ChainElementID)
	}
	return line
}
