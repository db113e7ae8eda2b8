package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/quizclick/internal/config"
	"github.com/jackzampolin/quizclick/internal/llmcall"
	"github.com/jackzampolin/quizclick/internal/pipeline"
	"github.com/jackzampolin/quizclick/internal/prompts"
	"github.com/jackzampolin/quizclick/internal/prompts/answer"
	"github.com/jackzampolin/quizclick/internal/prompts/vision"
	"github.com/jackzampolin/quizclick/internal/providers"
	"github.com/jackzampolin/quizclick/internal/report"
	"github.com/jackzampolin/quizclick/internal/screen"
)

var (
	runCycles int
	runPace   time.Duration
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer questions until the cycle limit is reached",
	Long: `Run the answer loop.

One activation click focuses the quiz window, then each cycle captures the
screen region, reads the question, picks an answer, prints it and clicks it.
The first failure stops the run with a non-zero exit.

Reports go to stdout; logs go to stderr.

Examples:
  quizclick run                  # 100 cycles with the configured layout
  quizclick run --cycles 1       # answer a single question
  quizclick run --dry-run        # read and answer, log clicks instead of clicking
  quizclick run -o json          # JSON reports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, _, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		if cmd.Flags().Changed("cycles") {
			cfg.Loop.MaxCycles = runCycles
		}
		if cmd.Flags().Changed("pace") {
			cfg.Loop.Pace = runPace
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		table, err := cfg.CoordinateTable()
		if err != nil {
			return err
		}

		resolver := prompts.NewResolver(cfg.PromptOverrides(), logger)
		vision.RegisterPrompts(resolver)
		answer.RegisterPrompts(resolver)
		if err := resolver.Validate(); err != nil {
			return err
		}

		client := newClient(cfg)
		recorder := llmcall.NewRecorder(logger)

		extractor := pipeline.NewVisionExtractor(client, modelConfig(cfg.Vision), resolver, recorder)
		selector, err := pipeline.NewAnswerSelector(client, modelConfig(cfg.Answer), resolver, recorder)
		if err != nil {
			return err
		}

		var clicker screen.Clicker = screen.NewRobotClicker()
		if runDryRun {
			clicker = &screen.DryRunClicker{Logger: logger}
		}

		runner, err := pipeline.NewRunner(pipeline.Config{
			MaxCycles:         cfg.Loop.MaxCycles,
			Region:            cfg.Screen.Region,
			Activation:        cfg.Screen.Activation,
			Pace:              cfg.Loop.Pace,
			Table:             table,
			InferenceAttempts: cfg.Loop.InferenceAttempts,
			RetryDelay:        cfg.Loop.RetryDelay,
		}, pipeline.Deps{
			Capturer:  screen.NewScreenshotCapturer(),
			Clicker:   clicker,
			Extractor: extractor,
			Selector:  selector,
			Reporter:  report.NewWriter(os.Stdout, output),
			Recorder:  recorder,
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		_, err = runner.Run(ctx)
		return err
	},
}

func init() {
	runCmd.Flags().IntVar(&runCycles, "cycles", 0, "number of questions to answer (default from config, 100)")
	runCmd.Flags().DurationVar(&runPace, "pace", 0, "pause after each answer click (default from config, 300ms)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "log clicks instead of injecting them")
}

// newClient creates the inference client shared by both roles.
func newClient(cfg *config.Config) *providers.OpenAIClient {
	return providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:            cfg.ResolveAPIKey(),
		BaseURL:           cfg.Provider.BaseURL,
		DefaultModel:      cfg.Answer.Model,
		MaxRetries:        0,
		RequestsPerMinute: float64(cfg.Provider.RequestsPerMinute),
	})
}

func modelConfig(m config.ModelCfg) pipeline.ModelConfig {
	return pipeline.ModelConfig{
		Model:          m.Model,
		Temperature:    m.Temperature,
		MaxTokens:      m.MaxTokens,
		Timeout:        m.Timeout,
		ResponseFormat: m.ResponseFormat,
	}
}
