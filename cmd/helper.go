// nolint:errcheck
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	titleStyle       = color.New(color.Bold, color.FgHiWhite)
	commandStyle     = color.New(color.FgHiGreen)
	descriptionStyle = color.New(color.FgHiCyan)
	exampleStyle     = color.New(color.FgHiCyan)
	flagStyle        = color.New(color.Bold, color.FgHiCyan)
)

var HelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}` + titleStyle.Sprintf("GitHub:") + color.New(color.FgYellow).Sprintln(
	"		https://github.com/nypl-spacetime/hocr-detect-columns",
)

// Mode describes an output mode in the usage text
type Mode struct {
	Name        string
	Description string
}

func rpad(s string, padding int) string {
	template := fmt.Sprintf("%%-%ds", padding)
	return fmt.Sprintf(template, s)
}

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

var (
	reWithShort = regexp.MustCompile(`^( {2,})(-[a-zA-Z]), (--[a-zA-Z0-9-]+)(.*)$`)
	reLongOnly  = regexp.MustCompile(`^( {2,})(--[a-zA-Z0-9-]+)(.*)$`)
)

func colorFlags(raw string) []byte {
	var out bytes.Buffer

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case reWithShort.MatchString(line):
			m := reWithShort.FindStringSubmatch(line)
			indent, shortFlag, longFlag, rest := m[1], m[2], m[3], m[4]
			out.WriteString(indent)
			flagStyle.Fprint(&out, shortFlag)
			out.WriteString(", ")
			out.WriteString(longFlag)
			out.WriteString(rest)

		case reLongOnly.MatchString(line):
			m := reLongOnly.FindStringSubmatch(line)
			indent, longFlag, rest := m[1], m[2], m[3]
			out.WriteString(indent)
			flagStyle.Fprint(&out, longFlag)
			out.WriteString(rest)

		default:
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}

	return out.Bytes()
}

// ColorUsageFunc returns a cobra usage function that prints the usage line,
// examples, flags and the given output modes in color
func ColorUsageFunc(modes []Mode) func(w io.Writer, cmd *cobra.Command) error {
	return func(w io.Writer, cmd *cobra.Command) error {
		buf := &bytes.Buffer{}

		titleStyle.Fprint(buf, "Usage:")
		if cmd.Runnable() {
			fmt.Fprint(buf, "\n  ")
			commandStyle.Fprint(buf, cmd.UseLine())
		}

		if cmd.HasExample() {
			fmt.Fprint(buf, "\n\n")
			titleStyle.Fprint(buf, "Examples:")
			fmt.Fprint(buf, "\n")
			exampleStyle.Fprint(buf, cmd.Example)
		}

		if cmd.HasAvailableLocalFlags() {
			fmt.Fprint(buf, "\n\n")
			titleStyle.Fprint(buf, "Flags:")
			fmt.Fprint(buf, "\n")
			buf.Write(colorFlags(trimRightSpace(cmd.LocalFlags().FlagUsages())))
		}

		if len(modes) > 0 {
			padding := 0
			for _, mode := range modes {
				padding = max(padding, len(mode.Name))
			}

			fmt.Fprint(buf, "\n")
			titleStyle.Fprint(buf, "Modes:")
			for _, mode := range modes {
				fmt.Fprint(buf, "\n  ")
				commandStyle.Fprint(buf, rpad(mode.Name, padding))
				fmt.Fprint(buf, "   ")
				descriptionStyle.Fprint(buf, mode.Description)
			}
		}

		fmt.Fprintln(buf)

		_, err := w.Write(buf.Bytes())
		return err
	}
}
