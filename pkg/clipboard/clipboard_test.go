package clipboard

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	c := New()

	if !c.tmux || !c.system || !c.osc52 {
		t.Error("Default settings should enable all targets")
	}
	if c.output != os.Stderr {
		t.Error("Default output should be os.Stderr")
	}
}

func TestOSC52Sequence(t *testing.T) {
	tests := []struct {
		text     string
		tmux     bool
		expected string
	}{
		{"Smith John", false, "\033]52;c;U21pdGggSm9obg==\007"},
		{"Smith John", true, "\033Ptmux;\033\033]52;c;U21pdGggSm9obg==\007\033\\"},
		{"", false, "\033]52;c;\007"},
	}

	for _, tt := range tests {
		if got := osc52Sequence(tt.text, tt.tmux); got != tt.expected {
			t.Errorf("osc52Sequence(%q, %v): Expected %q, got %q", tt.text, tt.tmux, tt.expected, got)
		}
	}
}

func TestCopyOSC52Only(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer

	c := New(WithTmux(false), WithSystem(false), WithOutput(&buf))
	if err := c.Copy("Adams Mary, dressmaker"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := osc52Sequence("Adams Mary, dressmaker", false)
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestCopyAllTargetsFail(t *testing.T) {
	c := New(WithTmux(false), WithOSC52(false))
	c.lookup = func(string) (string, error) { return "", errors.New("not found") }

	err := c.Copy("text")
	if !errors.Is(err, ErrNoSystemTool) {
		t.Errorf("Expected ErrNoSystemTool, got %v", err)
	}
}

func TestCopyPartialFailure(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithTmux(false), WithOutput(&buf))
	c.lookup = func(string) (string, error) { return "", errors.New("not found") }

	if err := c.Copy("text"); err != nil {
		t.Errorf("Expected no error when OSC52 succeeded, got %v", err)
	}
}

func TestSystemTools(t *testing.T) {
	if got := systemTools("darwin"); !reflect.DeepEqual(got, []string{"pbcopy"}) {
		t.Errorf("Expected [pbcopy], got %v", got)
	}
	if got := systemTools("linux"); !reflect.DeepEqual(got, []string{"wl-copy", "xclip", "xsel"}) {
		t.Errorf("Expected [wl-copy xclip xsel], got %v", got)
	}
	if got := systemTools("plan9"); got != nil {
		t.Errorf("Expected no tools, got %v", got)
	}
}

func TestSystemToolLookup(t *testing.T) {
	c := New()
	c.lookup = func(name string) (string, error) {
		if name == "xsel" || name == "pbcopy" || name == "clip" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	tool := c.systemTool()
	if tool == "" {
		t.Skip("no clipboard tools for this platform")
	}
	if tool != "xsel" && tool != "pbcopy" && tool != "clip" {
		t.Errorf("Expected the first installed tool, got %q", tool)
	}
}
