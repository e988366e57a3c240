package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/leandrodaf/seqtree/sdk/contracts"
	"github.com/leandrodaf/seqtree/sdk/midi"
)

// DeviceList is the output of devices.
type DeviceList []contracts.DeviceInfo

func (l DeviceList) String() string {
	if len(l) == 0 {
		return "no MIDI input devices"
	}
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d  %s", d.ID, d.Name)
		if d.Manufacturer != "" {
			fmt.Fprintf(&b, " (%s)", d.Manufacturer)
		}
	}
	return b.String()
}

// NewDevicesCommand creates the devices command.
func NewDevicesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "devices",
		Short:         "List MIDI input devices a trunk can be recorded from",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevices(rootOpts, cmd)
		},
	}
}

func runDevices(rootOpts *RootOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)

	o, err := rootOpts.clientOptions()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err)
	}
	client, err := midi.NewMIDIClient(contracts.WithLogger(o.Logger), contracts.WithLogLevel(o.LogLevel))
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDevice, err)
	}

	devices, err := client.ListDevices()
	if err = multierr.Append(err, client.Stop()); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDevice, err)
	}
	return formatter.Success(DeviceList(devices))
}
