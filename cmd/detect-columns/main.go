package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nypl-spacetime/hocr-detect-columns/cmd"
	"github.com/nypl-spacetime/hocr-detect-columns/internal"
	"github.com/nypl-spacetime/hocr-detect-columns/internal/logger"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/layout"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/render"
)

const (
	appName     = "detect-columns"
	defaultSize = 4096
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var modes = []cmd.Mode{
	{Name: render.ModeLog, Description: "Colored report of columns and linked lines (default)"},
	{Name: render.ModeJSON, Description: "The full analysis as a JSON document"},
	{Name: render.ModeNDJSON, Description: "One JSON record per line, easier to stream"},
	{Name: render.ModeHTML, Description: "HTML visualization of the line boxes"},
	{Name: render.ModeLines, Description: "Complete lines of text, one per line"},
}

func init() {
	logFilePath := logger.DefaultPath()
	if _, err := logger.InitLogger(logFilePath, os.Getenv(logger.EnvLevel)); err != nil {
		// logging must never end up in the output
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}

	// Initialize crash reporting
	crashFilePath := filepath.Join(filepath.Dir(logFilePath), "crash")
	if f, err := os.Create(crashFilePath); err == nil {
		_ = debug.SetCrashOutput(f, debug.CrashOptions{})
	}
}

// AppConfig holds the command line flags
type AppConfig struct {
	mode        string
	configPath  string
	output      string
	columns     int
	minLines    int
	charWidth   int
	sortColumns bool
	workers     int
	view        bool
	showVersion bool
}

// overrides returns the layout values set on the command line
func (c *AppConfig) overrides(flags *pflag.FlagSet) layout.Overrides {
	var o layout.Overrides
	if flags.Changed("columns") {
		o.ColumnCount = &c.columns
	}
	if flags.Changed("min-lines") {
		o.MinLinesPerColumn = &c.minLines
	}
	if flags.Changed("char-width") {
		o.CharacterWidth = &c.charWidth
	}
	if flags.Changed("sort-columns") {
		o.SortColumns = &c.sortColumns
	}
	if flags.Changed("workers") {
		o.Workers = &c.workers
	}
	return o
}

// openOutput returns the writer for the output flag, stdout when empty
func openOutput(target string) (*bufio.Writer, func() error, error) {
	if target == "" {
		w := bufio.NewWriterSize(os.Stdout, defaultSize)
		return w, w.Flush, nil
	}

	file, err := os.Create(target)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}

	w := bufio.NewWriterSize(file, defaultSize)
	return w, func() error {
		return errors.Join(w.Flush(), file.Close())
	}, nil
}

// runApp runs the main application logic
func runApp(ctx context.Context, config *AppConfig, flags *pflag.FlagSet, args []string) error {
	if config.showVersion {
		fmt.Printf("%s version: %s\n", appName, FullVersion)
		return nil
	}

	configPath := config.configPath
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	fileConfig, err := LoadConfigFromFile(configPath, config.configPath != "")
	if err != nil {
		return err
	}

	cfg := layout.Merge(layout.DefaultConfig(), fileConfig.Layout.Apply(config.overrides(flags)))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	opts, err := fileConfig.RenderOptions()
	if err != nil {
		return err
	}

	renderer, err := render.New(config.mode, opts)
	if err != nil {
		return err
	}

	paths, err := internal.ExpandInputs(args)
	if err != nil {
		return err
	}
	slog.Info("starting", "version", FullVersion, "inputs", len(paths), "mode", config.mode, "config", fmt.Sprintf("%+v", cfg))

	analyzer := layout.NewAnalyzer(layout.WithConfig(cfg))
	docs := make([]render.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := internal.AnalyzeFile(ctx, analyzer, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	if config.view {
		return internal.NewViewer(docs, opts).Run()
	}

	if config.output != "" {
		color.NoColor = true
	}
	w, closeOutput, err := openOutput(config.output)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := renderer.Render(w, doc); err != nil {
			closeOutput() // nolint: errcheck
			return fmt.Errorf("writing %s output for %s: %w", config.mode, doc.Source, err)
		}
	}

	return closeOutput()
}

func main() {
	config := &AppConfig{}

	rootCmd := &cobra.Command{
		Use:   appName + " [flags] <file.hocr|pattern>...",
		Short: "Detect columns and reconnect indented lines in hOCR files",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Detects text columns in hOCR files and joins wrapped and indented lines into complete lines. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Example: "  detect-columns scan.hocr\n" +
			"  detect-columns -m ndjson -o entries.ndjson 'directories/**/*.hocr'\n" +
			"  detect-columns --columns 3 --view page-12.hocr",
		Args: func(c *cobra.Command, args []string) error {
			if config.showVersion || len(args) > 0 {
				return nil
			}
			return errors.New("requires at least one hOCR file")
		},
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runApp(c.Context(), config, c.Flags(), args)
		},
	}

	defaults := layout.DefaultConfig()
	rootCmd.Flags().StringVarP(&config.mode, "mode", "m", render.ModeLog, "Output mode")
	rootCmd.Flags().StringVarP(&config.configPath, "config", "c", "", "Path to a TOML or JSON configuration file")
	rootCmd.Flags().StringVarP(&config.output, "output", "o", "", "File to write output to instead of stdout")
	rootCmd.Flags().IntVar(&config.columns, "columns", defaults.ColumnCount, "Number of columns on each page")
	rootCmd.Flags().IntVar(&config.minLines, "min-lines", defaults.MinLinesPerColumn, "Lines each column must exceed before lines are linked")
	rootCmd.Flags().IntVar(&config.charWidth, "char-width", defaults.CharacterWidth, "Distance in pixels within which a line belongs to a column")
	rootCmd.Flags().BoolVar(&config.sortColumns, "sort-columns", defaults.SortColumns, "Number columns from left to right instead of by size")
	rootCmd.Flags().IntVar(&config.workers, "workers", defaults.Workers, "Pages analyzed at once, 0 for one per CPU")
	rootCmd.Flags().BoolVar(&config.view, "view", false, "Browse the pages in an interactive terminal viewer")
	rootCmd.Flags().BoolVarP(&config.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	usage := cmd.ColorUsageFunc(modes)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage(c.OutOrStderr(), c)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Error executing command", "error", err)
		stop()
		os.Exit(1)
	}
}
