package mytestx

import (
	"regexp"
	"strings"
)

var (
	// scoreMarkerRe matches parenthesized score annotations the exporter
	// leaves in question text, e.g. "(2đ)" or "(1,5 điểm)".
	scoreMarkerRe = regexp.MustCompile(`\(\s*\d+(?:[.,]\d+)?\s*đ(?:iểm)?\s*\)`)
	// partMarkerRe matches sub-part markers such as "(1)" or "(2.".
	partMarkerRe = regexp.MustCompile(`\(\d+[).]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

// Normalize cleans exported text for rendering: score-marker noise is
// removed, the three basic XML entities are unescaped, raw angle brackets
// are stripped, whitespace runs collapse to single spaces, and the result is
// trimmed. Question text and answer option text go through the same
// normalization. Normalize is idempotent.
func Normalize(s string) string {
	s = scoreMarkerRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitParts splits question text into sub-parts at "(<n>)" / "(<n>." marker
// boundaries, keeping each marker attached to the text that follows it.
// Empty parts are dropped. A result of two or more parts means the question
// is multi-part and needs one line per part.
func SplitParts(s string) []string {
	add := func(parts []string, seg string) []string {
		if t := strings.TrimSpace(seg); t != "" {
			parts = append(parts, t)
		}
		return parts
	}

	locs := partMarkerRe.FindAllStringIndex(s, -1)
	var parts []string
	prev := 0
	for _, loc := range locs {
		parts = add(parts, s[prev:loc[0]])
		prev = loc[0]
	}
	return add(parts, s[prev:])
}

// HasPartMarker reports whether a sub-part starts with its numeric marker.
func HasPartMarker(s string) bool {
	loc := partMarkerRe.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}
