package internal

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// ErrNoInput is returned when the input arguments match no files
var ErrNoInput = errors.New("no input files")

func IsDebugMode() bool {
	isDebug := strings.ToLower(os.Getenv("DETECT_COLUMNS_DEBUG"))
	if isDebug == "true" || isDebug == "1" {
		return true
	}
	return false
}

// ExpandInputs resolves the input arguments to file paths. Arguments may be
// plain paths or doublestar patterns such as "scans/**/*.hocr"; the matches
// of each pattern are sorted. Duplicates are dropped, keeping the first.
func ExpandInputs(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, arg := range args {
		matches, err := doublestar.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad input pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %q matches nothing", ErrNoInput, arg)
		}
		slices.Sort(matches)

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if info.IsDir() || seen[match] {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}

	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	return paths, nil
}
