package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/quizclick/internal/report"
	"github.com/jackzampolin/quizclick/internal/screen"
)

var captureCmd = &cobra.Command{
	Use:   "capture [file]",
	Short: "Capture the configured region once and save it as PNG",
	Long: `Capture the configured screen region and save it, to check the region
covers the whole question before starting a run.

Without a file argument the image goes to ~/.quizclick/captures/.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, h, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		if err := cfg.Screen.Region.Validate(); err != nil {
			return fmt.Errorf("screen.region: %w", err)
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path = h.CapturePath(time.Now())
		}

		img, err := screen.NewScreenshotCapturer().Capture(cmd.Context(), cfg.Screen.Region)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create capture directory: %w", err)
		}
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return fmt.Errorf("failed to write capture: %w", err)
		}

		return report.OutputTo(os.Stdout, output, map[string]any{
			"path":   path,
			"region": cfg.Screen.Region,
			"bytes":  len(img),
		})
	},
}
