package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/seqtree/internal/config"
	"github.com/leandrodaf/seqtree/internal/theory"
	"github.com/leandrodaf/seqtree/internal/worker"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// restToken marks a rest in --steps.
const restToken = "-"

// stateFlags are the sequence controls shared by generate, record and transform.
type stateFlags struct {
	height    int
	length    int
	order     string
	transpose int
	slew      float64
	repeat    int
}

func (s *stateFlags) bind(cmd *cobra.Command, withHeight bool) {
	f := cmd.Flags()
	if withHeight {
		f.IntVar(&s.height, "height", config.Branches.Init, "number of branch levels below the trunk")
	}
	f.IntVar(&s.length, "length", config.Length.Init, "steps of each sequence kept when rendering")
	f.StringVar(&s.order, "order", string(contracts.OrderForward), "playback order (forward|backward|pendulum|random)")
	f.IntVar(&s.transpose, "transpose", config.Transpose.Init, "semitones added to every rendered step")
	f.Float64Var(&s.slew, "slew", 0, "slew stamped on every rendered step (0 to 1 in 0.1 steps)")
	f.IntVar(&s.repeat, "repeat", config.Repeat.Init, "times each rendered sequence is repeated")
}

// apply overwrites the controls of file whose flags were set on the command line.
func (s *stateFlags) apply(cmd *cobra.Command, file *config.RequestFile) {
	f := cmd.Flags()
	if f.Changed("height") {
		file.Height = s.height
	}
	if f.Changed("length") {
		file.State.Length = s.length
	}
	if f.Changed("order") {
		file.State.Order = contracts.Order(s.order)
	}
	if f.Changed("transpose") {
		file.State.Transpose = s.transpose
	}
	if f.Changed("slew") {
		file.State.Slew = s.slew
	}
	if f.Changed("repeat") {
		file.State.Repeat = s.repeat
	}
}

// outputFlags select what part of the result is printed.
type outputFlags struct {
	id   string
	seed uint64
	path int
	tree bool
}

func (o *outputFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.id, "id", "", "request id (generated when empty)")
	f.Uint64Var(&o.seed, "seed", 0, "seed for a reproducible tree")
	f.IntVar(&o.path, "path", 0, "print only this path (1-based); 0 prints all")
	f.BoolVar(&o.tree, "tree", false, "include the full tree in JSON output")
}

type generateOptions struct {
	request string
	scale   string
	steps   []string
	state   stateFlags
	output  outputFlags
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Grow a variation tree and print its paths",
		Long: `Grow a variation tree from a trunk and print the rendered paths.

The trunk comes from --steps, from the trunk of a --request file, or is drawn
from --scale. Steps are written NOTE[/DURATION], with "-" for a rest:

  seqtree generate --height 3 --steps C4,E4/0.5,-,G4 --order pendulum

Flags given on the command line override the values of a request file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.request, "request", "", "YAML request file")
	cmd.Flags().StringVar(&opts.scale, "scale", config.DefaultScale,
		"scale a default trunk is drawn from, optionally after a tonic like D3 ("+strings.Join(theory.Scales(), ", ")+", "+theory.RandomScale+")")
	cmd.Flags().StringSliceVar(&opts.steps, "steps", nil, "trunk steps, e.g. C4,E4/0.5,-,G4")
	opts.state.bind(cmd, true)
	opts.output.bind(cmd)

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *generateOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	file := config.NewRequestFile()
	if opts.request != "" {
		loaded, err := config.LoadRequest(opts.request)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
		}
		file = loaded
		formatter.VerboseLog("Loaded request %s", opts.request)
	}

	if cmd.Flags().Changed("scale") {
		file.Scale = opts.scale
	}
	if len(opts.steps) > 0 {
		trunk, err := parseSteps(opts.steps)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
		}
		file.Trunk = trunk
	}
	opts.state.apply(cmd, file)

	return generateTree(rootOpts, cmd, file, &opts.output)
}

// generateTree runs file through a worker and prints the result.
func generateTree(rootOpts *RootOptions, cmd *cobra.Command, file *config.RequestFile, out *outputFlags) error {
	formatter := rootOpts.formatter(cmd)

	if cmd.Flags().Changed("seed") {
		file.Seed = &out.seed
	}
	if cmd.Flags().Changed("id") {
		file.ID = out.id
	}

	var extra []contracts.Option
	if file.Seed != nil {
		extra = append(extra, contracts.WithSeed(*file.Seed))
	}
	o, err := rootOpts.clientOptions(extra...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
	}

	req, err := file.Request(o.Notes, o.Random)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest, err)
	}

	w := worker.New(&o)
	resp := w.Generate(req)
	_ = w.Stop() // its only fault, a recovered panic, is already in resp.Err
	if err := resp.Err; err != nil {
		code := string(worker.CodeOf(err))
		if code == "" {
			code = ErrCodeGeneric
		}
		exitCode := ExitFailure
		if worker.IsInvalidRequest(err) {
			exitCode = ExitCommandError
		}
		return formatter.Fail(exitCode, code, err)
	}
	formatter.VerboseLog("Request %s: %d nodes, %d paths", resp.RequestID, resp.Root.Count(), len(resp.Paths))

	result, err := newGenerateResult(req, resp, out)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodePathOutOfRange, err)
	}
	return formatter.Success(result)
}

// parseSteps reads NOTE[/DURATION] tokens. A missing duration is one beat.
func parseSteps(tokens []string) ([]contracts.Step, error) {
	steps := make([]contracts.Step, 0, len(tokens))
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		note, dur, hasDur := strings.Cut(token, "/")
		step := contracts.Step{Duration: config.DefaultStepDuration, ID: len(steps)}
		if note != restToken {
			step.Note = contracts.NoteName(note)
		}
		if hasDur {
			d, err := strconv.ParseFloat(dur, 64)
			if err != nil {
				return nil, fmt.Errorf("step %d %q: invalid duration: %w", i+1, token, err)
			}
			step.Duration = d
		}
		steps = append(steps, step)
	}
	if len(steps) == 0 {
		return nil, errors.New("no steps given")
	}
	return steps, nil
}

// NumberedPath is one rendered path with its 1-based number.
type NumberedPath struct {
	Number int              `json:"number"`
	Steps  []contracts.Step `json:"steps"`
}

// GenerateResult is the output of generate and record.
type GenerateResult struct {
	RequestID string                  `json:"request_id"`
	Height    int                     `json:"height"`
	Nodes     int                     `json:"nodes"`
	PathCount int                     `json:"path_count"`
	State     contracts.SequenceState `json:"state"`
	Paths     []NumberedPath          `json:"paths"`
	Root      *contracts.TreeNode     `json:"root,omitempty"`
}

func newGenerateResult(req contracts.GenerationRequest, resp contracts.GenerationResponse, out *outputFlags) (GenerateResult, error) {
	result := GenerateResult{
		RequestID: resp.RequestID,
		Height:    req.Height,
		Nodes:     resp.Root.Count(),
		PathCount: len(resp.Paths),
		State:     req.State,
	}
	if out.tree {
		result.Root = resp.Root
	}

	if out.path != 0 {
		steps, err := resp.Path(out.path)
		if err != nil {
			return GenerateResult{}, err
		}
		result.Paths = []NumberedPath{{Number: out.path, Steps: steps}}
		return result, nil
	}

	result.Paths = make([]NumberedPath, len(resp.Paths))
	for i, steps := range resp.Paths {
		result.Paths[i] = NumberedPath{Number: i + 1, Steps: steps}
	}
	return result, nil
}

// String renders the result as text, one path per line.
func (r GenerateResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "height: %d\nnodes: %d\npaths: %d\n", r.Height, r.Nodes, r.PathCount)
	fmt.Fprintf(&b, "state: length=%d order=%s transpose=%d slew=%g repeat=%d\n",
		r.State.Length, r.State.Order, r.State.Transpose, r.State.Slew, r.State.Repeat)
	for _, p := range r.Paths {
		fmt.Fprintf(&b, "\n%d: %s", p.Number, formatSteps(p.Steps))
	}
	return b.String()
}

func formatSteps(steps []contracts.Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		note := string(s.Note)
		if s.IsRest() {
			note = restToken
		}
		parts[i] = fmt.Sprintf("%s/%g", note, s.Duration)
	}
	return strings.Join(parts, " ")
}
