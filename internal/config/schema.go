package config

import (
	"time"

	"github.com/jackzampolin/quizclick/internal/screen"
)

// Config holds quizclick configuration.
// Read from: ./config.yaml or ~/.quizclick/config.yaml
type Config struct {
	Provider ProviderCfg                  `mapstructure:"provider" yaml:"provider"`
	Vision   ModelCfg                     `mapstructure:"vision" yaml:"vision"`
	Answer   ModelCfg                     `mapstructure:"answer" yaml:"answer"`
	Screen   ScreenCfg                    `mapstructure:"screen" yaml:"screen"`
	Loop     LoopCfg                      `mapstructure:"loop" yaml:"loop"`
	Prompts  map[string]map[string]string `mapstructure:"prompts" yaml:"prompts,omitempty"` // Overrides: prompts.<group>.<name>
	Log      LogCfg                       `mapstructure:"log" yaml:"log"`
}

// ProviderCfg configures the OpenAI-compatible endpoint shared by both roles.
type ProviderCfg struct {
	BaseURL           string `mapstructure:"base_url" yaml:"base_url"`
	APIKey            string `mapstructure:"api_key" yaml:"api_key"`                         // API key (supports ${ENV_VAR} syntax)
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"` // 0 disables the limiter
}

// ModelCfg configures one inference role.
type ModelCfg struct {
	Model          string        `mapstructure:"model" yaml:"model"`
	Temperature    float64       `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens" yaml:"max_tokens"`           // 0 = provider default
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`                 // 0 = client default
	ResponseFormat string        `mapstructure:"response_format" yaml:"response_format"` // "", json_object, json_schema
}

// ScreenCfg holds the capture region and click targets.
type ScreenCfg struct {
	Region      screen.Region           `mapstructure:"region" yaml:"region"`
	Activation  screen.Point            `mapstructure:"activation" yaml:"activation"`
	Coordinates map[string]screen.Point `mapstructure:"coordinates" yaml:"coordinates"` // Label -> point
}

// LoopCfg bounds the run.
type LoopCfg struct {
	MaxCycles         int           `mapstructure:"max_cycles" yaml:"max_cycles"`
	Pace              time.Duration `mapstructure:"pace" yaml:"pace"`
	InferenceAttempts int           `mapstructure:"inference_attempts" yaml:"inference_attempts"` // 1 = fail fast
	RetryDelay        time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
}

// LogCfg configures logging.
type LogCfg struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}
