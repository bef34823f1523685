package cli

import (
	"github.com/spf13/cobra"

	"github.com/dj0le/whisper/internal/version"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "whisper-mic",
		Short: "Live microphone transcription",
		Long:  "Captures microphone audio, segments it into utterances, and transcribes them locally with whisper.cpp. Transcripts are printed and copied to the clipboard.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewListenCmd())
	rootCmd.AddCommand(NewDevicesCmd())

	return rootCmd
}
