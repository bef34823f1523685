package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dj0le/whisper/internal/capture"
)

func NewDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List available audio input devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := capture.Initialize(); err != nil {
				return fmt.Errorf("initializing audio subsystem: %w", err)
			}
			defer capture.Terminate()

			devices, err := capture.ListDevices()
			if err != nil {
				return fmt.Errorf("listing devices: %w", err)
			}

			if len(devices) == 0 {
				fmt.Println("No input devices found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tNAME\tCHANNELS\tSAMPLE RATE\t")
			for _, d := range devices {
				marker := ""
				if d.IsDefault {
					marker = " (default)"
				}
				fmt.Fprintf(w, "%d\t%s%s\t%d\t%.0f\t\n",
					d.Index, d.Name, marker, d.MaxInputChannels, d.DefaultSampleRate)
			}
			return w.Flush()
		},
	}

	return cmd
}
