package cli

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dj0le/whisper/internal/config"
	"github.com/dj0le/whisper/internal/metrics"
	"github.com/dj0le/whisper/internal/session"
	"github.com/dj0le/whisper/internal/version"
)

func NewListenCmd() *cobra.Command {
	var (
		configPath  string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Transcribe microphone audio until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger := initLogger(cfg.Logging)
			logger.Info("Starting",
				slog.String("version", version.Version),
				slog.Bool("interactive", interactive),
				slog.Int("input_sample_rate", cfg.Audio.InputSampleRate),
				slog.Int("target_sample_rate", cfg.Audio.TargetSampleRate),
				slog.String("model_path", cfg.Transcription.ModelPath),
			)

			var m *metrics.Metrics
			if cfg.Metrics.Enabled {
				m = metrics.NewMetrics()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return session.New(cfg, interactive, logger, m).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Toggle recording from the terminal instead of transcribing continuously")

	return cmd
}
