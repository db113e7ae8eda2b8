package llmcall

import (
	"testing"
	"time"

	"github.com/jackzampolin/quizclick/internal/providers"
)

func TestFromChatResult(t *testing.T) {
	temp := 0.1
	result := &providers.ChatResult{
		Content:          "B",
		PromptTokens:     12,
		CompletionTokens: 3,
		TotalTime:        250 * time.Millisecond,
		Provider:         "openai",
		ModelUsed:        "qwen-plus",
		Success:          true,
	}

	call := FromChatResult(result, RecordOptions{
		RunID:       "run-1",
		Cycle:       2,
		Role:        RoleAnswer,
		PromptKey:   "answer.user",
		Temperature: &temp,
	})

	if call.ID == "" {
		t.Error("expected generated ID")
	}
	if call.LatencyMs != 250 {
		t.Errorf("LatencyMs = %d, want 250", call.LatencyMs)
	}
	if call.Cycle != 2 || call.Role != RoleAnswer || call.Model != "qwen-plus" {
		t.Errorf("unexpected call: %+v", call)
	}
	if call.Error != "" {
		t.Errorf("unexpected error on success: %q", call.Error)
	}

	if FromChatResult(nil, RecordOptions{}) != nil {
		t.Error("expected nil for nil result")
	}
}

func TestRecorder_Summary(t *testing.T) {
	r := NewRecorder(nil)

	r.Record(&providers.ChatResult{Success: true, PromptTokens: 100, CompletionTokens: 20, TotalTime: time.Second}, RecordOptions{Role: RoleVision})
	r.Record(&providers.ChatResult{Success: true, PromptTokens: 50, CompletionTokens: 10, TotalTime: time.Second}, RecordOptions{Role: RoleAnswer})
	r.Record(&providers.ChatResult{Success: false, ErrorMessage: "boom"}, RecordOptions{Role: RoleAnswer})
	r.Record(nil, RecordOptions{})

	s := r.Summary()
	if s.Calls != 3 || s.Failed != 1 {
		t.Errorf("Calls=%d Failed=%d", s.Calls, s.Failed)
	}
	if s.InputTokens != 150 || s.OutputTokens != 30 {
		t.Errorf("tokens = %d/%d", s.InputTokens, s.OutputTokens)
	}
	if s.Latency != 2*time.Second {
		t.Errorf("Latency = %s", s.Latency)
	}
	if s.ByRole[RoleAnswer] != 2 || s.ByRole[RoleVision] != 1 {
		t.Errorf("ByRole = %v", s.ByRole)
	}
	if len(r.Calls()) != 3 {
		t.Errorf("Calls() len = %d", len(r.Calls()))
	}
	if r.Calls()[2].Error != "boom" {
		t.Errorf("expected recorded error")
	}
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	r.RecordCall(&Call{})
}
