package cmd

import (
	"github.com/spf13/cobra"

	"modctl/internal/config"
	"modctl/internal/driver"
	"modctl/pkg/logging"
)

// newDriverCmd runs the terminal driver standalone, emitting the event
// protocol on stdout. This is the separate-process deployment of the
// driver and a handy way to inspect what the consumer would see.
func newDriverCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "driver",
		Short:  "Run the terminal driver, emitting event lines on stdout",
		Long: `Owns the terminal in raw mode and emits one line per event:

  S:<width>x<height>   resize
  K:<escaped-bytes>    keypress
  M:<text>             control-change line from the control stream
  Q:                   shutdown

The terminal is restored on exit, including on signals.`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.InitForCLI(logging.LevelWarn, cmd.ErrOrStderr())
			d := driver.New(driver.Options{
				ControlDevice: cfg.Driver.ControlDevice,
				PollInterval:  cfg.Driver.PollInterval.Std(),
			})
			return d.Run(cmd.Context())
		},
	}
}
