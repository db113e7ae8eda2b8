package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/quizclick/internal/providers"
	"github.com/jackzampolin/quizclick/internal/quiz"
	"github.com/jackzampolin/quizclick/internal/screen"
)

// EnvPrefix prefixes environment overrides, e.g. QUIZCLICK_LOOP_MAX_CYCLES.
const EnvPrefix = "QUIZCLICK"

// Manager loads configuration once at startup. The coordinate table must not
// change during a run, so there is no hot reload.
type Manager struct {
	mu     sync.RWMutex
	v      *viper.Viper
	config *Config
}

// NewManager creates a new config manager and loads the config.
// searchDirs are used when cfgFile is empty.
func NewManager(cfgFile string, searchDirs ...string) (*Manager, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	cm := &Manager{v: viper.New()}

	if err := cm.initViper(cfgFile, searchDirs); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string, searchDirs []string) error {
	v := cm.v
	for _, entry := range DefaultEntries() {
		v.SetDefault(entry.Key, entry.Value)
	}

	// Environment variables with QUIZCLICK_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}

	// Try to read config file (not required unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the loaded configuration.
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFileUsed returns the path of the file that was read, if any.
func (cm *Manager) ConfigFileUsed() string {
	return cm.v.ConfigFileUsed()
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// referencedEnvVars lists the ${ENV_VAR} names in value.
func referencedEnvVars(value string) []string {
	var names []string
	for _, m := range envVarPattern.FindAllStringSubmatch(value, -1) {
		names = append(names, m[1])
	}
	return names
}

// ResolveAPIKey returns the API key with env references expanded.
func (c *Config) ResolveAPIKey() string {
	return strings.TrimSpace(ResolveEnvVars(c.Provider.APIKey))
}

// Validate checks the config is usable for a run.
// A missing credential names the variable it should come from.
func (c *Config) Validate() error {
	var errs []error

	if c.ResolveAPIKey() == "" {
		if vars := referencedEnvVars(c.Provider.APIKey); len(vars) > 0 {
			errs = append(errs, fmt.Errorf("provider.api_key is empty: set %s", strings.Join(vars, ", ")))
		} else {
			errs = append(errs, fmt.Errorf("provider.api_key is empty: set %s or provider.api_key", APIKeyEnvVar))
		}
	}
	if c.Provider.BaseURL == "" {
		errs = append(errs, errors.New("provider.base_url is required"))
	}
	if c.Provider.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("provider.requests_per_minute must not be negative"))
	}
	if c.Vision.Model == "" {
		errs = append(errs, errors.New("vision.model is required"))
	}
	if c.Answer.Model == "" {
		errs = append(errs, errors.New("answer.model is required"))
	}
	switch c.Answer.ResponseFormat {
	case "", providers.ResponseFormatJSONObject, providers.ResponseFormatJSONSchema:
	default:
		errs = append(errs, fmt.Errorf("answer.response_format %q must be empty, json_object or json_schema", c.Answer.ResponseFormat))
	}
	if err := c.Screen.Region.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("screen.region: %w", err))
	}
	if _, err := c.CoordinateTable(); err != nil {
		errs = append(errs, fmt.Errorf("screen.coordinates: %w", err))
	}
	if c.Loop.MaxCycles <= 0 {
		errs = append(errs, fmt.Errorf("loop.max_cycles must be positive, got %d", c.Loop.MaxCycles))
	}
	if c.Loop.Pace < 0 {
		errs = append(errs, errors.New("loop.pace must not be negative"))
	}
	if c.Loop.InferenceAttempts < 0 {
		errs = append(errs, errors.New("loop.inference_attempts must not be negative"))
	}

	return errors.Join(errs...)
}

// CoordinateTable builds the label-to-point table from screen.coordinates.
// Keys are case-insensitive.
func (c *Config) CoordinateTable() (*screen.CoordinateTable, error) {
	points := make(map[quiz.Label]screen.Point, len(c.Screen.Coordinates))
	for key, p := range c.Screen.Coordinates {
		label, err := quiz.ParseLabel(strings.ToUpper(strings.TrimSpace(key)))
		if err != nil {
			return nil, err
		}
		points[label] = p
	}
	return screen.NewCoordinateTable(points)
}

// Redacted returns a copy safe to print: the resolved API key is masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Prompts = make(map[string]map[string]string, len(c.Prompts))
	for group, names := range c.Prompts {
		out.Prompts[group] = make(map[string]string, len(names))
		for k, v := range names {
			out.Prompts[group][k] = v
		}
	}
	out.Screen.Coordinates = make(map[string]screen.Point, len(c.Screen.Coordinates))
	for k, v := range c.Screen.Coordinates {
		out.Screen.Coordinates[strings.ToUpper(k)] = v
	}
	if len(referencedEnvVars(c.Provider.APIKey)) == 0 && c.Provider.APIKey != "" {
		out.Provider.APIKey = mask(c.Provider.APIKey)
	}
	return &out
}

func mask(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****" + secret[len(secret)-4:]
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(defaultTree())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# quizclick configuration
# API keys use ${ENV_VAR} syntax to reference environment variables
# Set the key in your shell: export ` + APIKeyEnvVar + `=xxx
# Prompt overrides go under "prompts", keyed by group and name:
#   prompts:
#     vision:
#       system: "..."

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

// PromptOverrides flattens prompts.<group>.<name> into resolver keys.
func (c *Config) PromptOverrides() map[string]string {
	out := make(map[string]string)
	for group, names := range c.Prompts {
		for name, text := range names {
			out[group+"."+name] = text
		}
	}
	return out
}
