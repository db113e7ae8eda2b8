package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/quizclick/internal/report"
)

type checkResult struct {
	ConfigFile  string   `json:"config_file" yaml:"config_file"`
	BaseURL     string   `json:"base_url" yaml:"base_url"`
	VisionModel string   `json:"vision_model" yaml:"vision_model"`
	AnswerModel string   `json:"answer_model" yaml:"answer_model"`
	Available   []string `json:"available_models" yaml:"available_models"`
	Missing     []string `json:"missing_models,omitempty" yaml:"missing_models,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate config and credentials against the inference endpoint",
	Long: `Validate the configuration, then list the models available on the
configured endpoint and report whether the vision and answer models are
among them. Nothing is captured or clicked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		client := newClient(cfg)
		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("list models at %s: %w", client.BaseURL(), err)
		}

		res := checkResult{
			ConfigFile:  mgr.ConfigFileUsed(),
			BaseURL:     client.BaseURL(),
			VisionModel: cfg.Vision.Model,
			AnswerModel: cfg.Answer.Model,
			Available:   models,
		}
		for _, m := range []string{cfg.Vision.Model, cfg.Answer.Model} {
			if !slices.Contains(models, m) {
				res.Missing = append(res.Missing, m)
			}
		}

		if err := report.OutputTo(os.Stdout, output, res); err != nil {
			return err
		}
		if len(res.Missing) > 0 {
			return fmt.Errorf("models not offered by endpoint: %v", res.Missing)
		}
		return nil
	},
}
