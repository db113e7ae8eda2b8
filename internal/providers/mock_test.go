package providers

import (
	"context"
	"testing"
)

func TestMockClient_ServesResponsesInOrder(t *testing.T) {
	client := NewMockClient("first", "second")
	ctx := context.Background()

	for _, want := range []string{"first", "second", "second"} {
		result, err := client.Chat(ctx, &ChatRequest{Messages: []Message{{Role: "user", Content: "x"}}})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != want {
			t.Errorf("Content = %q, want %q", result.Content, want)
		}
	}
	if client.RequestCount() != 3 {
		t.Errorf("RequestCount = %d, want 3", client.RequestCount())
	}
}

func TestMockClient_FailAfter(t *testing.T) {
	client := NewMockClient("ok")
	client.FailAfter = 1
	ctx := context.Background()

	if _, err := client.Chat(ctx, &ChatRequest{}); err != nil {
		t.Fatalf("first request should succeed: %v", err)
	}
	if _, err := client.Chat(ctx, &ChatRequest{}); err == nil {
		t.Fatal("second request should fail")
	}
}
