package prompts

import (
	"strings"
	"testing"
)

func TestResolver_EmbeddedDefault(t *testing.T) {
	r := NewResolver(nil, nil)
	r.Register(EmbeddedPrompt{Key: "a.user", Text: "Hello {{.Name}}"})

	got, err := r.Resolve("a.user")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.IsOverride {
		t.Error("expected embedded default")
	}
	if got.Text != "Hello {{.Name}}" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Hash != HashText("Hello {{.Name}}") {
		t.Error("hash mismatch")
	}
}

func TestResolver_Override(t *testing.T) {
	r := NewResolver(map[string]string{"a.user": "Bonjour {{.Name}}", "b.system": "  "}, nil)
	r.Register(EmbeddedPrompt{Key: "a.user", Text: "Hello {{.Name}}"})
	r.Register(EmbeddedPrompt{Key: "b.system", Text: "system"})

	got, err := r.Resolve("a.user")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !got.IsOverride || got.Text != "Bonjour {{.Name}}" {
		t.Errorf("unexpected resolution: %+v", got)
	}

	// Blank overrides fall back to the default.
	got, err = r.Resolve("b.system")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.IsOverride {
		t.Error("blank override should be ignored")
	}
}

func TestResolver_UnknownKey(t *testing.T) {
	r := NewResolver(nil, nil)
	if _, err := r.Resolve("nope"); err == nil {
		t.Fatal("expected error")
	}
}

func TestResolver_Validate(t *testing.T) {
	r := NewResolver(map[string]string{"typo.user": "x"}, nil)
	r.Register(EmbeddedPrompt{Key: "a.user", Text: "x"})

	err := r.Validate()
	if err == nil || !strings.Contains(err.Error(), "typo.user") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestExtractVariables(t *testing.T) {
	got := ExtractVariables("{{.B}} {{ .A }} {{.B}} {{.Book.Title}}")
	want := []string{"A", "B", "Book.Title"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRender(t *testing.T) {
	got, err := Render("k", "x={{.X}}", map[string]int{"X": 1})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "x=1" {
		t.Errorf("got %q", got)
	}
	if _, err := Render("k", "{{.X", nil); err == nil {
		t.Error("expected parse error")
	}
}
