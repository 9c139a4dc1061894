package match

import "strings"

// Source tags which collection a candidate came from, so callers can keep
// procurement and award matches apart for display.
type Source string

const (
	SourceProcurement Source = "procurement"
	SourceAward       Source = "award"
)

// Candidate pairs the text field a keyword is tested against with the record
// it belongs to.
type Candidate struct {
	Text   string
	Source Source
	Record any
}

// Matcher performs single-phrase containment matching. The zero value is
// case-sensitive.
type Matcher struct {
	CaseInsensitive bool
}

// Match returns the candidates whose text contains keyword, preserving input
// order. An empty keyword matches nothing — it must never match everything.
func (m Matcher) Match(keyword string, candidates []Candidate) []Candidate {
	if keyword == "" {
		return nil
	}

	needle := keyword
	if m.CaseInsensitive {
		needle = strings.ToLower(needle)
	}

	var matched []Candidate
	for _, cand := range candidates {
		text := cand.Text
		if m.CaseInsensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, needle) {
			matched = append(matched, cand)
		}
	}
	return matched
}
