// Package recorder turns note messages captured from a MIDI input into trunk steps.
package recorder

import (
	"context"
	"errors"
	"math"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/seqtree/internal/theory"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// ErrNothingRecorded is returned when capture ends before any note was played.
var ErrNothingRecorded = errors.New("no notes recorded")

// AnyChannel accepts notes on every MIDI channel.
const AnyChannel = -1

// Config controls how played notes map onto steps.
type Config struct {
	Steps    int     // Recording ends once this many steps are complete.
	Tempo    float64 // Beats per minute used to convert held time into durations.
	Quantize float64 // Durations round to multiples of this many beats.
	Channel  int     // Zero-based channel to listen on, or AnyChannel.
}

// DefaultConfig records eight steps at 120 bpm on any channel, quantized to quarter beats.
func DefaultConfig() Config {
	return Config{Steps: 8, Tempo: 120, Quantize: 0.25, Channel: AnyChannel}
}

// Recorder accumulates steps from a stream of captured messages. Silences between notes
// that last at least one quantum become rests.
type Recorder struct {
	logger contracts.Logger
	cfg    Config

	steps   []contracts.Step
	open    map[uint8]int // key -> index of the step awaiting its note end
	started map[uint8]uint64
	lastEnd uint64
}

// New returns a recorder for cfg.
func New(logger contracts.Logger, cfg Config) *Recorder {
	def := DefaultConfig()
	if cfg.Steps <= 0 {
		cfg.Steps = def.Steps
	}
	if cfg.Tempo <= 0 {
		cfg.Tempo = def.Tempo
	}
	if cfg.Quantize <= 0 {
		cfg.Quantize = def.Quantize
	}
	return &Recorder{
		logger:  logger,
		cfg:     cfg,
		open:    make(map[uint8]int),
		started: make(map[uint8]uint64),
	}
}

// Record reads events until Steps steps are complete, the channel closes or ctx is done.
// Whatever was recorded is returned; notes still held get one quantum.
func (r *Recorder) Record(ctx context.Context, events <-chan contracts.MIDI) ([]contracts.Step, error) {
	for !r.complete() {
		select {
		case <-ctx.Done():
			return r.finish(ctx.Err())
		case ev, ok := <-events:
			if !ok {
				return r.finish(nil)
			}
			r.Feed(ev)
		}
	}
	return r.finish(nil)
}

// Feed applies one captured message.
func (r *Recorder) Feed(ev contracts.MIDI) {
	var ch, key, vel uint8
	msg := gomidi.Message(ev.Raw())

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if !r.listening(ch) || len(r.steps) >= r.cfg.Steps {
			return
		}
		if _, held := r.open[key]; held {
			return
		}
		if r.lastEnd > 0 && len(r.open) == 0 && ev.Timestamp > r.lastEnd {
			if gap := r.beats(ev.Timestamp - r.lastEnd); gap > 0 && len(r.steps) < r.cfg.Steps-1 {
				r.steps = append(r.steps, contracts.Step{Duration: gap, ID: len(r.steps)})
			}
		}
		r.open[key] = len(r.steps)
		r.started[key] = ev.Timestamp
		r.steps = append(r.steps, contracts.Step{
			Note: theory.FromMIDI(int(key), false),
			ID:   len(r.steps),
		})
		r.logger.Debug("Note recorded",
			r.logger.Field().Uint8("key", key),
			r.logger.Field().Uint8("velocity", vel))

	case msg.GetNoteEnd(&ch, &key):
		if !r.listening(ch) {
			return
		}
		idx, held := r.open[key]
		if !held {
			return
		}
		var elapsed uint64
		if start := r.started[key]; ev.Timestamp > start {
			elapsed = ev.Timestamp - start
		}
		r.steps[idx].Duration = max(r.beats(elapsed), r.cfg.Quantize)
		delete(r.open, key)
		delete(r.started, key)
		r.lastEnd = ev.Timestamp
	}
}

// Steps returns the steps recorded so far.
func (r *Recorder) Steps() []contracts.Step {
	out := make([]contracts.Step, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *Recorder) complete() bool {
	return len(r.steps) >= r.cfg.Steps && len(r.open) == 0
}

func (r *Recorder) listening(ch uint8) bool {
	return r.cfg.Channel == AnyChannel || int(ch) == r.cfg.Channel
}

// beats converts a nanosecond span to quantized beats.
func (r *Recorder) beats(ns uint64) float64 {
	beat := time.Minute.Seconds() / r.cfg.Tempo
	raw := time.Duration(ns).Seconds() / beat
	return math.Round(raw/r.cfg.Quantize) * r.cfg.Quantize
}

func (r *Recorder) finish(cause error) ([]contracts.Step, error) {
	for key, idx := range r.open {
		r.steps[idx].Duration = r.cfg.Quantize
		delete(r.open, key)
	}
	if len(r.steps) == 0 {
		if cause != nil {
			return nil, errors.Join(ErrNothingRecorded, cause)
		}
		return nil, ErrNothingRecorded
	}
	r.logger.Info("Trunk recorded", r.logger.Field().Int("steps", len(r.steps)))
	return r.Steps(), nil
}
