package layout

import (
	"errors"
	"fmt"
	"runtime"
)

// Layout Configuration Constants

// Defaults for Config
const (
	// DefaultColumnCount is the number of text columns expected on a page
	DefaultColumnCount = 2

	// DefaultMinLinesPerColumn is the number of classified lines a column must
	// exceed before the page layout is trusted for linking
	DefaultMinLinesPerColumn = 5

	// DefaultCharacterWidth is the tolerance in pixels for snapping a line's
	// x origin to a column anchor
	DefaultCharacterWidth = 15
)

// Clustering Configuration
const (
	// ClustersPerColumn is the number of clusters reserved per column: one for
	// the column itself and one for its indented continuation lines
	ClustersPerColumn = 2

	// NoiseClusters is the number of extra clusters that absorb headers, page
	// numbers and other lines outside the columns
	NoiseClusters = 4
)

// Annotation sentinels
const (
	// NoColumn marks a line that was not classified into a column
	NoColumn = -1

	// NoLink marks a missing previous or next line link
	NoLink = -1
)

// Config holds the parameters of the layout analysis
type Config struct {
	ColumnCount       int  `json:"columnCount" toml:"column_count"`               // Expected number of columns
	MinLinesPerColumn int  `json:"minLinesPerColumn" toml:"min_lines_per_column"` // Lines each column must exceed
	CharacterWidth    int  `json:"characterWidth" toml:"character_width"`         // Anchor snapping tolerance in pixels
	SortColumns       bool `json:"sortColumns" toml:"sort_columns"`               // Number columns left to right instead of by size
	Workers           int  `json:"workers,omitempty" toml:"workers"`              // Pages analysed concurrently; 0 means one per CPU
}

// Overrides holds optional replacements for Config fields. A nil field keeps
// the default.
type Overrides struct {
	ColumnCount       *int  `json:"columnCount" toml:"column_count"`
	MinLinesPerColumn *int  `json:"minLinesPerColumn" toml:"min_lines_per_column"`
	CharacterWidth    *int  `json:"characterWidth" toml:"character_width"`
	SortColumns       *bool `json:"sortColumns" toml:"sort_columns"`
	Workers           *int  `json:"workers" toml:"workers"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() Config {
	return Config{
		ColumnCount:       DefaultColumnCount,
		MinLinesPerColumn: DefaultMinLinesPerColumn,
		CharacterWidth:    DefaultCharacterWidth,
		SortColumns:       false,
		Workers:           0,
	}
}

// Merge returns defaults with every non-nil override applied, field by field
func Merge(defaults Config, overrides Overrides) Config {
	merged := defaults

	if overrides.ColumnCount != nil {
		merged.ColumnCount = *overrides.ColumnCount
	}
	if overrides.MinLinesPerColumn != nil {
		merged.MinLinesPerColumn = *overrides.MinLinesPerColumn
	}
	if overrides.CharacterWidth != nil {
		merged.CharacterWidth = *overrides.CharacterWidth
	}
	if overrides.SortColumns != nil {
		merged.SortColumns = *overrides.SortColumns
	}
	if overrides.Workers != nil {
		merged.Workers = *overrides.Workers
	}

	return merged
}

// Apply returns o with every field set in other replacing its own
func (o Overrides) Apply(other Overrides) Overrides {
	if other.ColumnCount != nil {
		o.ColumnCount = other.ColumnCount
	}
	if other.MinLinesPerColumn != nil {
		o.MinLinesPerColumn = other.MinLinesPerColumn
	}
	if other.CharacterWidth != nil {
		o.CharacterWidth = other.CharacterWidth
	}
	if other.SortColumns != nil {
		o.SortColumns = other.SortColumns
	}
	if other.Workers != nil {
		o.Workers = other.Workers
	}
	return o
}

// Validate reports configuration values the analysis cannot work with
func (c Config) Validate() error {
	var errs []error
	if c.ColumnCount < 1 {
		errs = append(errs, fmt.Errorf("column count must be at least 1, got %d", c.ColumnCount))
	}
	if c.MinLinesPerColumn < 0 {
		errs = append(errs, fmt.Errorf("minimum lines per column must not be negative, got %d", c.MinLinesPerColumn))
	}
	if c.CharacterWidth < 0 {
		errs = append(errs, fmt.Errorf("character width must not be negative, got %d", c.CharacterWidth))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// ClusterCount returns the number of clusters the x origins are split into
func (c Config) ClusterCount() int {
	return c.ColumnCount*ClustersPerColumn + NoiseClusters
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
