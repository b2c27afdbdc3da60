package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/valu/internal/codec"
	"github.com/roach88/valu/internal/payload"
	"github.com/roach88/valu/internal/value"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Canonical bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a JSON, YAML or CUE document",
		Long: `Load a document and re-render it.

The input format is chosen by extension: .json, .yaml/.yml or .cue.
Output is indented JSON, or YAML with --format yaml. --canonical emits
RFC 8785 canonical JSON instead.

Example:
  valu convert config.yaml
  valu convert schema.cue --format yaml
  valu convert payload.json --canonical`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Canonical, "canonical", false, "emit canonical JSON (RFC 8785)")

	return cmd
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	v, err := loadDocument(path)
	if err != nil {
		return reportValueError(formatter, fmt.Sprintf("failed to load %s", path), err)
	}
	formatter.VerboseLog("Loaded %s (%s)", path, value.KindOf(v))

	if opts.Sorted {
		v = value.Reorder(v, value.SortedOrder)
	}
	if err := formatter.Document(v, opts.Canonical); err != nil {
		return reportValueError(formatter, "failed to render", err)
	}
	return nil
}

// loadDocument decodes path according to its extension.
func loadDocument(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	slog.Debug("loading document", "path", path, "format", ext, "bytes", len(data))

	switch ext {
	case ".json":
		return payload.DecodeStructural(data)
	case ".yaml", ".yml":
		return codec.FromYAML(data)
	case ".cue":
		return codec.FromCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (want .json, .yaml, .yml or .cue)", ext)
	}
}
