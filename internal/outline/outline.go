// Package outline infers a document outline (title plus H1-H3 headings with
// page numbers) from low-level typographic signals: font size, weight,
// position, and line isolation. It carries no I/O and no shared state; each
// call owns its inputs and produces a fresh Outline.
package outline

import "math"

// Level is a heading depth in the final outline.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// levelForRank maps a prominence rank (0 = most prominent) to a Level.
var levelForRank = [...]Level{H1, H2, H3}

// Span is a contiguous run of rendered text sharing one font size and weight.
// Pages are 1-based. Y grows downward: the top of the page is 0, so spans
// within a page are ordered top-to-bottom by ascending Y. Spans are produced
// once by a source and never mutated here.
type Span struct {
	Text       string
	FontSize   float64
	Bold       bool
	Page       int
	Y          float64
	SoleOnLine bool
}

// valid reports whether a span is well-formed enough to participate in
// sampling and scoring. Malformed spans are a source contract violation;
// they are excluded rather than propagated as faults.
func (s Span) valid() bool {
	if math.IsNaN(s.FontSize) || math.IsInf(s.FontSize, 0) || s.FontSize <= 0 {
		return false
	}
	return s.Page >= 1
}

// StyleKey groups spans that look visually identical: font size rounded to
// the nearest half point, plus weight.
type StyleKey struct {
	Size float64
	Bold bool
}

// keyFor buckets a span's size so near-identical sizes share one style.
func keyFor(s Span) StyleKey {
	return StyleKey{Size: math.Round(s.FontSize*2) / 2, Bold: s.Bold}
}

// moreProminent orders styles by visual prominence: size first, bold breaking
// ties upward at equal size.
func (k StyleKey) moreProminent(other StyleKey) bool {
	if k.Size != other.Size {
		return k.Size > other.Size
	}
	return k.Bold && !other.Bold
}

// BodyProfile describes the dominant (body-text) style of a document.
// A zero Samples count is the sentinel for "no body style available";
// downstream stages then produce no heading candidates.
type BodyProfile struct {
	MedianSize float64
	StdDev     float64
	Samples    int
}

// Empty reports whether no spans were sampled.
func (p BodyProfile) Empty() bool { return p.Samples == 0 }

// Candidate is a span accepted as a potential heading, with its style key
// and confidence score. Candidates are ephemeral: produced by the scorer,
// consumed by the clusterer and the title pass.
type Candidate struct {
	Span  Span
	Key   StyleKey
	Score float64
}

// LevelMap is an ordered mapping from at most three distinct style keys to
// heading levels. Index 0 is the most prominent style and maps to H1.
type LevelMap []StyleKey

// LevelFor returns the heading level assigned to a style key.
func (m LevelMap) LevelFor(key StyleKey) (Level, bool) {
	for i, k := range m {
		if k == key {
			return levelForRank[i], true
		}
	}
	return "", false
}

// Entry is one heading in the final outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the title plus ordered heading entries produced per document.
type Outline struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"outline"`
}
