package internal

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsDebugMode(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"TRUE", true},
		{"0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Setenv("DETECT_COLUMNS_DEBUG", tt.value)
		if got := IsDebugMode(); got != tt.want {
			t.Errorf("IsDebugMode() with %q = %v; want %v", tt.value, got, tt.want)
		}
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.hocr", "")
	a := writeFile(t, dir, "a.hocr", "")
	nested := writeFile(t, dir, "vol1/p1/c.hocr", "")
	writeFile(t, dir, "notes.txt", "")

	got, err := ExpandInputs([]string{filepath.Join(dir, "**", "*.hocr"), b})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{a, b, nested}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestExpandInputs_NoMatch(t *testing.T) {
	_, err := ExpandInputs([]string{filepath.Join(t.TempDir(), "*.hocr")})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got %v", err)
	}
}
