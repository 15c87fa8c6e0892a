package insight

import (
	"strings"
	"unicode"
)

// stringClassifier is one independent per-cell predicate. Classifiers receive
// the raw cell and its folded, trimmed projection and bump exactly one counter
// when they match. They run in a fixed order after the numeric parse.
type stringClassifier func(c *ColumnAnalysis, raw, folded string, nullLike NullLikeSet)

var stringClassifiers = []stringClassifier{
	classifyEmpty,
	classifyOnlyWhitespace,
	classifyNullLike,
}

// classifyEmpty matches on the raw, untrimmed cell. A whitespace-only cell is
// not empty; that case belongs to classifyOnlyWhitespace.
func classifyEmpty(c *ColumnAnalysis, raw, _ string, _ NullLikeSet) {
	if len(raw) == 0 {
		c.StringEmptyCount++
	}
}

func classifyOnlyWhitespace(c *ColumnAnalysis, raw, _ string, _ NullLikeSet) {
	if len(raw) > 0 && onlyWhitespace(raw) {
		c.StringOnlyWhitespaceCount++
	}
}

func classifyNullLike(c *ColumnAnalysis, _, folded string, nullLike NullLikeSet) {
	if nullLike.Contains(folded) {
		c.StringNullLikeCount++
	}
}

// onlyWhitespace reports whether s consists solely of whitespace runes
func onlyWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// foldTrim returns the case-folded, whitespace-trimmed projection of a cell,
// the form null-like matching is defined over.
func foldTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
