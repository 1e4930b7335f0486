package exercise

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeFile creates a file (and parent directories) with trivial content.
func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("print('ok')\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDiscover(t *testing.T) {
	t.Run("lexicographic order across topics", func(t *testing.T) {
		root := t.TempDir()
		// Created out of order on purpose.
		writeFile(t, filepath.Join(root, "01_variables", "variables2.py"))
		writeFile(t, filepath.Join(root, "00_intro", "intro1.py"))
		writeFile(t, filepath.Join(root, "01_variables", "variables1.py"))

		got, err := Discover(root)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		want := []string{
			filepath.Join(root, "00_intro", "intro1.py"),
			filepath.Join(root, "01_variables", "variables1.py"),
			filepath.Join(root, "01_variables", "variables2.py"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Discover order = %v, want %v", got, want)
		}
	})

	t.Run("idempotent without file changes", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a", "one.py"))
		writeFile(t, filepath.Join(root, "b", "two.py"))

		first, err := Discover(root)
		if err != nil {
			t.Fatalf("first Discover failed: %v", err)
		}
		second, err := Discover(root)
		if err != nil {
			t.Fatalf("second Discover failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Discover not idempotent: %v vs %v", first, second)
		}
	})

	t.Run("filters non-python and junk files", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a", "keep.py"))
		writeFile(t, filepath.Join(root, "a", "README.md"))
		writeFile(t, filepath.Join(root, "a", ".DS_Store"))
		writeFile(t, filepath.Join(root, "__pycache__", "cached.py"))
		writeFile(t, filepath.Join(root, ".git", "hooked.py"))

		got, err := Discover(root)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		want := []string{filepath.Join(root, "a", "keep.py")}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Discover = %v, want %v", got, want)
		}
	})

	t.Run("missing root yields empty result", func(t *testing.T) {
		got, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("empty tree is valid", func(t *testing.T) {
		got, err := Discover(t.TempDir())
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected zero exercises, got %v", got)
		}
	})
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escapes open bracket", "list[0] = [1]", `list\[0] = \[1]`},
		{"plain text untouched", "hello", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExerciseName(t *testing.T) {
	ex := &Exercise{Path: filepath.Join("ws", "exercises", "00_intro", "intro1.py")}
	if ex.Name() != "intro1.py" {
		t.Errorf("Name = %q, want intro1.py", ex.Name())
	}
	if ex.Done() {
		t.Error("zero-value exercise must not be Done")
	}
}
