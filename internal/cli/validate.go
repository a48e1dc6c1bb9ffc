package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumeq/lumeq/internal/ir"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <program.yaml>",
		Short: "Check a program's structural preconditions",
		Long: `Validate loads a program and reports every structural violation at once:
unresolved lengths, child spans outside their parent, malformed loops,
matches and acquire groups. A valid program exits with code 0.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], rootOpts)
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, programPath string, rootOpts *RootOptions) error {
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

	errs := ir.Validate(root)
	if len(errs) == 0 {
		return formatter.Success(map[string]any{"program": name, "valid": true})
	}

	if rootOpts.Format == "json" {
		type violation struct {
			Path    string `json:"path"`
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		details := make([]violation, len(errs))
		for i, ve := range errs {
			details[i] = violation{Path: ve.Path, Code: ve.Code, Message: ve.Message}
		}
		formatter.Error("invalid_program", fmt.Sprintf("%d validation error(s)", len(errs)), details)
	} else {
		for _, ve := range errs {
			fmt.Fprintln(formatter.Writer, ve.Error())
		}
	}
	return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d validation error(s)", len(errs))}
}
