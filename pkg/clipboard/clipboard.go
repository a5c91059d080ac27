package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoSystemTool is returned when no clipboard command is installed
var ErrNoSystemTool = errors.New("no system clipboard tool available")

// Option configures a Clipboard
type Option func(*Clipboard)

// Clipboard copies text to the tmux buffer, the system clipboard and the
// terminal through OSC52, as enabled
type Clipboard struct {
	tmux   bool
	system bool
	osc52  bool
	output io.Writer
	lookup func(string) (string, error)
}

// New creates a Clipboard with every target enabled
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		tmux:   true,
		system: true,
		osc52:  true,
		output: os.Stderr,
		lookup: exec.LookPath,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTmux enables/disables tmux buffer copying
func WithTmux(enabled bool) Option {
	return func(c *Clipboard) {
		c.tmux = enabled
	}
}

// WithSystem enables/disables system clipboard copying
func WithSystem(enabled bool) Option {
	return func(c *Clipboard) {
		c.system = enabled
	}
}

// WithOSC52 enables/disables OSC52 terminal copying
func WithOSC52(enabled bool) Option {
	return func(c *Clipboard) {
		c.osc52 = enabled
	}
}

// WithOutput sets the terminal the OSC52 sequence is written to
func WithOutput(w io.Writer) Option {
	return func(c *Clipboard) {
		c.output = w
	}
}

// Copy writes text to every enabled target. It fails only when all of them
// failed.
func (c *Clipboard) Copy(text string) error {
	var errs []error
	copied := false

	try := func(target string, fn func(string) error) {
		if err := fn(text); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
			return
		}
		copied = true
	}

	if c.tmux && inTmux() {
		try("tmux", c.copyToTmux)
	}
	if c.system {
		try("system", c.copyToSystem)
	}
	if c.osc52 {
		try("osc52", c.copyWithOSC52)
	}

	if copied {
		return nil
	}
	return errors.Join(errs...)
}

func (c *Clipboard) copyToTmux(text string) error {
	cmd := exec.Command("tmux", "load-buffer", "-")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func (c *Clipboard) copyToSystem(text string) error {
	tool := c.systemTool()
	if tool == "" {
		return ErrNoSystemTool
	}

	cmd := exec.Command(tool)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func (c *Clipboard) copyWithOSC52(text string) error {
	_, err := io.WriteString(c.output, osc52Sequence(text, inTmux()))
	return err
}

// systemTool returns the first installed clipboard command
func (c *Clipboard) systemTool() string {
	for _, tool := range systemTools(runtime.GOOS) {
		if _, err := c.lookup(tool); err == nil {
			return tool
		}
	}
	return ""
}

// osc52Sequence returns the escape sequence setting the clipboard to text,
// wrapped in a DCS passthrough inside tmux
func osc52Sequence(text string, tmux bool) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if tmux {
		return "\033Ptmux;\033\033]52;c;" + encoded + "\007\033\\"
	}
	return "\033]52;c;" + encoded + "\007"
}

func inTmux() bool {
	return os.Getenv("TMUX") != ""
}

func systemTools(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"pbcopy"}
	case "linux", "freebsd", "openbsd":
		return []string{"wl-copy", "xclip", "xsel"}
	case "windows":
		return []string{"clip"}
	default:
		return nil
	}
}
