package prompts

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Resolver resolves prompts with config-level overrides.
type Resolver struct {
	embedded  map[string]EmbeddedPrompt
	overrides map[string]string
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewResolver creates a new prompt resolver. overrides maps prompt keys to
// replacement template text; empty values are ignored.
func NewResolver(overrides map[string]string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	o := make(map[string]string, len(overrides))
	for k, v := range overrides {
		if strings.TrimSpace(v) != "" {
			o[k] = v
		}
	}
	return &Resolver{
		embedded:  make(map[string]EmbeddedPrompt),
		overrides: o,
		logger:    logger,
	}
}

// Register registers an embedded prompt.
func (r *Resolver) Register(prompt EmbeddedPrompt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prompt.Hash == "" {
		prompt.Hash = HashText(prompt.Text)
	}
	if prompt.Variables == nil {
		prompt.Variables = ExtractVariables(prompt.Text)
	}

	r.embedded[prompt.Key] = prompt
	r.logger.Debug("registered embedded prompt", "key", prompt.Key, "vars", prompt.Variables)
}

// Resolve returns the override for key if one is set, otherwise the embedded default.
func (r *Resolver) Resolve(key string) (*ResolvedPrompt, error) {
	r.mu.RLock()
	embedded, ok := r.embedded[key]
	override, hasOverride := r.overrides[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", key)
	}

	if hasOverride {
		vars := ExtractVariables(override)
		if missing := missingVariables(embedded.Variables, vars); len(missing) > 0 {
			r.logger.Warn("prompt override drops template variables", "key", key, "missing", missing)
		}
		return &ResolvedPrompt{
			Key:        key,
			Text:       override,
			Variables:  vars,
			IsOverride: true,
			Hash:       HashText(override),
		}, nil
	}

	return &ResolvedPrompt{
		Key:       key,
		Text:      embedded.Text,
		Variables: embedded.Variables,
		Hash:      embedded.Hash,
	}, nil
}

// Validate checks every override targets a registered prompt.
func (r *Resolver) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var unknown []string
	for key := range r.overrides {
		if _, ok := r.embedded[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown prompt override keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// AllEmbedded returns all registered embedded prompts sorted by key.
func (r *Resolver) AllEmbedded() []EmbeddedPrompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]EmbeddedPrompt, 0, len(r.embedded))
	for _, p := range r.embedded {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

func missingVariables(want, have []string) []string {
	set := make(map[string]bool, len(have))
	for _, v := range have {
		set[v] = true
	}
	var missing []string
	for _, v := range want {
		if !set[v] {
			missing = append(missing, v)
		}
	}
	return missing
}
