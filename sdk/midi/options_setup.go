package midi

import (
	"github.com/leandrodaf/seqtree/internal/options"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// applyDefaultOptions fills unset options. Capture keeps only note messages unless the
// caller installs its own filter, since nothing downstream reads other commands.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	o, err := options.Apply(opts...)
	if err != nil {
		return contracts.ClientOptions{}, err
	}
	if o.MIDIEventFilter == nil {
		o.MIDIEventFilter = &contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}
	}
	return o, nil
}
