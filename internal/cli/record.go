package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/leandrodaf/seqtree/internal/config"
	"github.com/leandrodaf/seqtree/internal/recorder"
	"github.com/leandrodaf/seqtree/sdk/contracts"
	"github.com/leandrodaf/seqtree/sdk/midi"
)

// eventBuffer is the capacity of the channel capture clients deliver into.
const eventBuffer = 64

type recordOptions struct {
	device  int
	steps   int
	tempo   int
	channel int
	timeout time.Duration
	state   stateFlags
	output  outputFlags
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &recordOptions{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a trunk from a MIDI input and grow a tree from it",
		Long: `Play a trunk on a MIDI input device and grow a variation tree from it.

Recording stops after --steps steps, after --timeout, or on Ctrl-C. Held
time is converted to beats at --tempo and rounded to quarter beats; silences
of a quarter beat or more become rests.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.device, "device", 0, "input device id (see devices)")
	cmd.Flags().IntVar(&opts.steps, "steps", config.StepNumber, "number of trunk steps to record")
	cmd.Flags().IntVar(&opts.tempo, "tempo", config.Tempo.Init, "tempo in beats per minute")
	cmd.Flags().IntVar(&opts.channel, "channel", recorder.AnyChannel, "zero-based MIDI channel; -1 listens on all")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop recording after this long; 0 waits for all steps")
	opts.state.bind(cmd, true)
	opts.output.bind(cmd)

	return cmd
}

func runRecord(rootOpts *RootOptions, opts *recordOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	if !config.Tempo.Contains(opts.tempo) {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidRequest,
			fmt.Errorf("%w: tempo %d not in [%d, %d]", config.ErrOutOfRange, opts.tempo, config.Tempo.Min, config.Tempo.Max))
	}

	o, err := rootOpts.clientOptions()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err)
	}
	client, err := midi.NewMIDIClient(contracts.WithLogger(o.Logger), contracts.WithLogLevel(o.LogLevel))
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDevice, err)
	}
	if err := client.SelectDevice(opts.device); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDevice, multierr.Append(err, client.Stop()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	events := make(chan contracts.MIDI, eventBuffer)
	client.StartCapture(events)
	formatter.VerboseLog("Recording %d steps from device %d at %d bpm", opts.steps, opts.device, opts.tempo)

	rec := recorder.New(o.Logger, recorder.Config{
		Steps:    opts.steps,
		Tempo:    float64(opts.tempo),
		Quantize: recorder.DefaultConfig().Quantize,
		Channel:  opts.channel,
	})
	trunk, recErr := rec.Record(ctx, events)
	if err := client.Stop(); err != nil {
		o.Logger.Warn("Failed to stop capture", o.Logger.Field().Error("error", err))
	}
	if recErr != nil {
		return formatter.Fail(ExitFailure, ErrCodeRecording, recErr)
	}
	formatter.VerboseLog("Recorded %d steps", len(trunk))

	file := config.NewRequestFile()
	file.Trunk = trunk
	file.State.Length = len(trunk)
	opts.state.apply(cmd, file)

	return generateTree(rootOpts, cmd, file, &opts.output)
}
