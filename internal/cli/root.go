package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/seqtree/internal/logger"
	"github.com/leandrodaf/seqtree/internal/options"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	LogFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the seqtree CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "seqtree",
		Short: "seqtree - melodic variation trees",
		Long: `Grow a binary tree of melodic variants from a trunk sequence.

Each level applies a randomly chosen transposition, inversion, reversal or
mutation to its parent; every left root-to-leaf path is rendered as one
playable sequence.`,
		SilenceErrors: true, // main prints what the formatter did not
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file instead of stderr")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewDevicesCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewTransformCommand(opts))

	return cmd
}

// clientOptions resolves the SDK options shared by every command. Logs stay at warn level
// unless --verbose is set.
func (o *RootOptions) clientOptions(extra ...contracts.Option) (contracts.ClientOptions, error) {
	level := contracts.WarnLevel
	if o.Verbose {
		level = contracts.DebugLevel
	}
	opts := []contracts.Option{
		contracts.WithLogger(logger.NewZapLogger()),
		contracts.WithLogLevel(level),
	}
	if o.LogFile != "" {
		opts = append(opts, contracts.WithLogFile(o.LogFile))
	}
	return options.Apply(append(opts, extra...)...)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // keeps JSON on stdout intact
		Verbose:   o.Verbose,
	}
}
