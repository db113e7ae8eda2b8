package llmcall

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jackzampolin/quizclick/internal/providers"
)

// Recorder keeps the calls of a single run and logs each one.
type Recorder struct {
	mu     sync.Mutex
	calls  []*Call
	logger *slog.Logger
}

// NewRecorder creates a new LLM call recorder.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger}
}

// Record captures the outcome of an LLM call.
func (r *Recorder) Record(result *providers.ChatResult, opts RecordOptions) *Call {
	call := FromChatResult(result, opts)
	r.RecordCall(call)
	return call
}

// RecordCall captures an already-constructed Call.
func (r *Recorder) RecordCall(call *Call) {
	if r == nil || call == nil {
		return
	}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()

	attrs := []any{
		"call_id", call.ID,
		"cycle", call.Cycle,
		"role", call.Role,
		"model", call.Model,
		"prompt_key", call.PromptKey,
		"latency_ms", call.LatencyMs,
		"input_tokens", call.InputTokens,
		"output_tokens", call.OutputTokens,
	}
	if !call.Success {
		r.logger.Warn("llm call failed", append(attrs, "error", call.Error)...)
		return
	}
	r.logger.Debug("llm call", attrs...)
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []*Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Summary aggregates recorded calls.
type Summary struct {
	Calls        int            `json:"calls" yaml:"calls"`
	Failed       int            `json:"failed" yaml:"failed"`
	InputTokens  int            `json:"input_tokens" yaml:"input_tokens"`
	OutputTokens int            `json:"output_tokens" yaml:"output_tokens"`
	Latency      time.Duration  `json:"latency" yaml:"latency"`
	ByRole       map[string]int `json:"by_role" yaml:"by_role"`
}

// Summary returns totals over all recorded calls.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{ByRole: make(map[string]int)}
	for _, c := range r.calls {
		s.Calls++
		if !c.Success {
			s.Failed++
		}
		s.InputTokens += c.InputTokens
		s.OutputTokens += c.OutputTokens
		s.Latency += time.Duration(c.LatencyMs) * time.Millisecond
		s.ByRole[c.Role]++
	}
	return s
}
