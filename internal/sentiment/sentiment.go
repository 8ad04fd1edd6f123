// Package sentiment defines the canonical label vocabulary and the mapping
// from raw model labels into it.
package sentiment

import "strings"

// Canonical labels. SST-2 checkpoints disagree on spelling
// (POSITIVE/NEGATIVE, LABEL_0/LABEL_1, pos/neg); everything downstream of
// Normalize sees only these.
const (
	Positive = "positive"
	Negative = "negative"
	Unknown  = "unknown"
)

// Normalize maps a raw model label to its canonical form. The mapping is
// case-insensitive and ignores surrounding whitespace.
//
// "neutral" collapses to Negative: the evaluation set is binary and mild
// texts are labeled negative there. Labels with no known alias pass through
// lowercased so unexpected model vocabularies stay visible in reports
// instead of being silently folded into a class.
func Normalize(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	switch label {
	case "positive", "pos", "label_1", "1":
		return Positive
	case "negative", "neg", "label_0", "0":
		return Negative
	case "neutral":
		return Negative
	case "":
		return Unknown
	}
	return label
}

// IsCanonical reports whether label is one of the two classes a gold sample
// may be labeled with.
func IsCanonical(label string) bool {
	return label == Positive || label == Negative
}
