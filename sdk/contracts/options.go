package contracts

import "math/rand/v2"

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to keep.
}

// Allows reports whether a message with the given command passes the filter.
// A nil filter allows everything.
func (f *MIDIEventFilter) Allows(command MIDICommand) bool {
	if f == nil {
		return true
	}
	for _, allowed := range f.Commands {
		if command == allowed {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions configures both the generator and the capture client.
type ClientOptions struct {
	Logger          Logger           // Logger for requests, operators and capture.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	Random          Random           // Source for every random choice made while generating.
	Notes           NoteProvider     // Note theory used by the operators.
	QueueSize       int              // Number of requests that may wait for the worker.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends log output to a file instead of the console.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithRandom replaces the random source, typically with a seeded one.
func WithRandom(r Random) Option {
	return func(opts *ClientOptions) {
		opts.Random = r
	}
}

// WithSeed makes every random choice reproducible from seed.
func WithSeed(seed uint64) Option {
	return func(opts *ClientOptions) {
		opts.Random = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithNoteProvider replaces the note theory implementation.
func WithNoteProvider(p NoteProvider) Option {
	return func(opts *ClientOptions) {
		opts.Notes = p
	}
}

// WithQueueSize sets how many requests may be pending before Submit blocks.
func WithQueueSize(n int) Option {
	return func(opts *ClientOptions) {
		opts.QueueSize = n
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the capture client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the capture client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}
