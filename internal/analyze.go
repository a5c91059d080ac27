package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/hocr"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/layout"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/render"
)

// AnalyzeFile reads an hOCR file and analyzes all of its pages
func AnalyzeFile(ctx context.Context, analyzer *layout.Analyzer, path string) (render.Document, error) {
	start := time.Now()

	pages, err := hocr.ReadFile(path)
	if err != nil {
		return render.Document{}, err
	}
	slog.Info("read hOCR", "path", path, "pages", len(pages))

	layouts, err := analyzer.AnalyzeDocument(ctx, pages)
	if err != nil {
		return render.Document{}, fmt.Errorf("analyzing %s: %w", path, err)
	}

	for i, pl := range layouts {
		logPageLayout(path, pages[i], pl, analyzer.Config())
	}
	slog.Info("analyzed hOCR", "path", path, "duration_ms", time.Since(start).Milliseconds())

	return render.NewDocument(path, analyzer.Config(), pages, layouts), nil
}

func logPageLayout(path string, page hocr.Page, pl layout.PageLayout, cfg layout.Config) {
	switch {
	case pl.Columns == nil:
		slog.Debug("column detection skipped",
			"path", path,
			"page", page.Number,
			"lines", len(page.Lines),
			"min_lines", cfg.ColumnCount*cfg.MinLinesPerColumn,
			"clusters", cfg.ClusterCount(),
		)
	case !pl.MinLinesPerColumn:
		slog.Debug("layout not trusted, lines left unlinked",
			"path", path,
			"page", page.Number,
			"columns", pl.Columns,
			"lines_per_column", pl.LinesPerColumn,
		)
	default:
		slog.Debug("page layout",
			"path", path,
			"page", page.Number,
			"columns", pl.Columns,
			"lines_per_column", pl.LinesPerColumn,
		)
	}
}
