package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/seqtree/internal/config"
	"github.com/leandrodaf/seqtree/internal/transform"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

type transformOptions struct {
	kind    string
	steps   []string
	seed    uint64
	realize bool
	state   stateFlags
}

// TransformResult is the output of transform.
type TransformResult struct {
	Kind  string           `json:"kind"`
	Input []contracts.Step `json:"input"`
	Steps []contracts.Step `json:"steps"`
}

func (r TransformResult) String() string {
	return fmt.Sprintf("%s\n  in:  %s\n  out: %s", r.Kind, formatSteps(r.Input), formatSteps(r.Steps))
}

// NewTransformCommand creates the transform command.
func NewTransformCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &transformOptions{}

	kinds := make([]string, 0, len(transform.Kinds)+1)
	for _, k := range append([]transform.Kind{transform.KindRandom}, transform.Kinds...) {
		kinds = append(kinds, k.String())
	}

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Apply one operator to a sequence",
		Long: `Apply a single transformation to a sequence and print the result.

This is one step of tree growth: useful to hear what an operator does to a
phrase before growing a whole tree from it.

  seqtree transform --kind inversion --steps C4,E4,G4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", transform.KindRandom.String(), "operator ("+strings.Join(kinds, "|")+")")
	cmd.Flags().StringSliceVar(&opts.steps, "steps", nil, "input steps, e.g. C4,E4/0.5,-,G4")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for the operator's random choices")
	cmd.Flags().BoolVar(&opts.realize, "realize", false, "render the result with the sequence controls")
	opts.state.bind(cmd, false)
	_ = cmd.MarkFlagRequired("steps")

	return cmd
}

func runTransform(rootOpts *RootOptions, opts *transformOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	kind, err := transform.ParseKind(opts.kind)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
	}
	steps, err := parseSteps(opts.steps)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
	}

	file := config.NewRequestFile()
	file.Trunk = steps
	file.State.Length = len(steps)
	opts.state.apply(cmd, file)

	var extra []contracts.Option
	if cmd.Flags().Changed("seed") {
		extra = append(extra, contracts.WithSeed(opts.seed))
	}
	o, err := rootOpts.clientOptions(extra...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
	}
	req, err := file.Request(o.Notes, o.Random)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
	}

	seq := transform.New(req.Trunk, req.State, &transform.Env{Notes: o.Notes, Random: o.Random})
	out, err := seq.Transform(kind)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err)
	}
	if opts.realize {
		out = out.Realize()
	}
	o.Logger.Debug("Sequence transformed", o.Logger.Field().String("kind", kind.String()))

	return formatter.Success(TransformResult{Kind: kind.String(), Input: req.Trunk, Steps: out.Steps()})
}
