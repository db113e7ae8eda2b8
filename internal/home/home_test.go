package home

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-quizclick")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-quizclick" {
			t.Errorf("expected path /tmp/test-quizclick, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-quizclick")

	t.Run("ConfigPath", func(t *testing.T) {
		expected := "/tmp/test-quizclick/config.yaml"
		if dir.ConfigPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ConfigPath())
		}
	})

	t.Run("CapturePath", func(t *testing.T) {
		at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
		expected := "/tmp/test-quizclick/captures/capture_20240309_140507.png"
		if got := dir.CapturePath(at); got != expected {
			t.Errorf("expected %s, got %s", expected, got)
		}
	})
}

func TestDir_EnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	quizDir := filepath.Join(tmpDir, "quizclick-test")

	dir, err := New(quizDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dir.Exists() {
		t.Error("expected directory to not exist yet")
	}

	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	if !dir.Exists() {
		t.Error("expected directory to exist")
	}
	if _, err := os.Stat(dir.CapturesPath()); err != nil {
		t.Errorf("expected captures dir: %v", err)
	}
	if dir.ConfigExists() {
		t.Error("expected no config file yet")
	}

	if err := os.WriteFile(dir.ConfigPath(), []byte("loop: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !dir.ConfigExists() {
		t.Error("expected config file to exist")
	}
}
