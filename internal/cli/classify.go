package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/valu/internal/payload"
	"github.com/roach88/valu/internal/value"
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [payload]",
		Short: "Classify a raw payload into a typed value",
		Long: `Classify a raw payload and print its kind and value.

The payload is taken from the argument, or read from stdin when omitted.
Rules apply in order: true/false, null, numeric literal, quoted string,
then JSON object or array. Anything else is a PARSE_ERROR.

Example:
  valu classify 3.14
  valu classify '{"b": 1, "a": [true, null]}' --format json
  echo '[1,2,3]' | valu classify --sorted`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runClassify(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			_ = formatter.Error("COMMAND_ERROR", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to read stdin", err)
		}
		text = string(data)
		formatter.VerboseLog("Read %d byte(s) from stdin", len(data))
	}

	var popts []payload.Option
	if opts.Sorted {
		popts = append(popts, payload.WithOrdering(value.SortedOrder))
	}

	v, err := payload.ToValue(text, popts...)
	if err != nil {
		return reportValueError(formatter, "classification failed", err)
	}
	slog.Debug("classify complete", "kind", value.KindOf(v))

	return formatter.Value(v)
}
