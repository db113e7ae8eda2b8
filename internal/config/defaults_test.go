package config

import "testing"

func TestDefaultEntries(t *testing.T) {
	entries := DefaultEntries()

	if len(entries) == 0 {
		t.Fatal("DefaultEntries() returned empty slice")
	}

	// Verify required keys exist
	requiredKeys := []string{
		"provider.base_url",
		"provider.api_key",
		"vision.model",
		"answer.model",
		"answer.timeout",
		"screen.region.left",
		"screen.activation.x",
		"screen.coordinates.d.y",
		"loop.max_cycles",
		"loop.pace",
		"loop.inference_attempts",
	}

	keys := make(map[string]bool)
	for _, e := range entries {
		if keys[e.Key] {
			t.Errorf("duplicate key: %s", e.Key)
		}
		keys[e.Key] = true
		if e.Description == "" {
			t.Errorf("key %s has no description", e.Key)
		}
	}

	for _, key := range requiredKeys {
		if !keys[key] {
			t.Errorf("DefaultEntries() missing required key: %s", key)
		}
	}
}

func TestDefaultTree(t *testing.T) {
	tree := defaultTree()

	loop, ok := tree["loop"].(map[string]any)
	if !ok {
		t.Fatal("expected loop section")
	}
	if loop["max_cycles"] != 100 {
		t.Errorf("expected max_cycles 100, got %v", loop["max_cycles"])
	}

	coords := tree["screen"].(map[string]any)["coordinates"].(map[string]any)
	if len(coords) != 4 {
		t.Errorf("expected 4 coordinates, got %d", len(coords))
	}
}
