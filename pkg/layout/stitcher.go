package layout

import "strings"

// Stitch computes the complete text of every chain head: a line with a next
// link and no previous link gets its chain's texts joined by JoinLines, a
// classified line without links gets its own text. All other lines get "".
func Stitch(texts []string, columnIndex, previous, next []int) []string {
	complete := make([]string, len(texts))

	for i := range texts {
		if previous[i] != NoLink {
			continue
		}

		switch {
		case next[i] != NoLink:
			complete[i] = JoinLines(chainTexts(texts, next, i))
		case columnIndex[i] != NoColumn:
			complete[i] = texts[i]
		}
	}

	return complete
}

// Chain returns the line indices of the chain starting at head, in order
func Chain(next []int, head int) []int {
	chain := []int{head}
	// a chain visits every line at most once
	for i := next[head]; i != NoLink && len(chain) <= len(next); i = next[i] {
		chain = append(chain, i)
	}
	return chain
}

func chainTexts(texts []string, next []int, head int) []string {
	chain := Chain(next, head)
	parts := make([]string, len(chain))
	for k, i := range chain {
		parts[k] = texts[i]
	}
	return parts
}

// JoinLines concatenates line texts into one text. A line ending in a hyphen
// is taken to break a word: the hyphen is dropped and the next line is
// appended directly. Otherwise lines are separated by a single space.
func JoinLines(parts []string) string {
	var joined string
	for _, part := range parts {
		if strings.HasSuffix(joined, "-") {
			joined = joined[:len(joined)-1] + part
		} else {
			joined += " " + part
		}
	}
	return strings.TrimSpace(joined)
}
