package outline

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// numberingPattern matches leading section numbering: "1.", "2.3", "A.",
// and spelled-out forms like "Appendix B" or "Chapter 12".
var numberingPattern = regexp.MustCompile(
	`^((\d{1,2}(\.\d{1,2})*\.?)|([A-Z]\.)|((Appendix|Chapter|Section)\s+[\w\d]))\s+`,
)

// scoreMax is the sum a span could reach if every positive signal fired.
// Scores are normalized against it before the acceptance threshold applies.
const scoreMax = 20.0

// textTraits are the content-pattern signals of a span's text.
type textTraits struct {
	allCaps    bool
	titleCase  bool
	endsPeriod bool // trailing "." is also a hard reject past 5 words
	endsClause bool // trailing "." or "," reads like running prose
	words      int
}

func analyzeText(text string) textTraits {
	words := len(strings.Fields(text))
	trimmed := strings.TrimRight(text, " \t")
	return textTraits{
		allCaps:    words > 0 && text == strings.ToUpper(text) && text != strings.ToLower(text),
		titleCase:  isTitleCase(text),
		endsPeriod: strings.HasSuffix(trimmed, "."),
		endsClause: strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, ","),
		words:      words,
	}
}

// isTitleCase reports whether every word starts with an upper-case letter
// without the whole text being shouted in caps.
func isTitleCase(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	if text == strings.ToUpper(text) {
		return false
	}
	for _, w := range fields {
		r := []rune(w)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func digitsOnly(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// rejectOutright is the hard gate no combination of bonuses should rescue:
// empty or digits-only text (bare page numbers), over-long text, and full
// sentences ending in terminal punctuation. It applies both to candidate
// scoring and to the assembly re-walk, so a page number or pull quote that
// happens to share a heading's style never reaches the outline.
func rejectOutright(text string, traits textTraits, cfg Config) bool {
	if text == "" || digitsOnly(text) {
		return true
	}
	if traits.words > cfg.MaxHeadingWords {
		return true
	}
	if traits.endsPeriod && traits.words > 5 {
		return true
	}
	return false
}

// scoreSpan classifies one span as heading candidate or not, returning a
// normalized confidence in [0, 1]. All signals fold into the one scalar so
// no single rule is a brittle cliff edge.
func scoreSpan(s Span, profile BodyProfile, cfg Config) (float64, bool) {
	if !s.valid() || profile.Empty() {
		return 0, false
	}
	text := strings.TrimSpace(s.Text)
	traits := analyzeText(text)
	if rejectOutright(text, traits, cfg) {
		return 0, false
	}

	large := s.FontSize > profile.MedianSize+cfg.SizeMargin*profile.StdDev
	boldAtBodySize := s.Bold && s.FontSize >= profile.MedianSize

	// A heading must show at least one strong visual characteristic.
	if !large && !boldAtBodySize && !traits.allCaps {
		return 0, false
	}

	var score float64
	if s.Bold {
		score += 6
	}
	if large {
		score += 4
	}
	if s.FontSize > profile.MedianSize+2.5 {
		score += 2
	}
	if traits.allCaps && traits.words < 10 {
		score += 3
	}
	if traits.titleCase {
		score += 2
	}
	if s.SoleOnLine {
		score += 2
	}
	if numberingPattern.MatchString(text) {
		score += 5
	}

	if traits.endsClause {
		score -= 3
	}
	if traits.words == 1 && !large && !traits.allCaps {
		score -= 2
	}
	if traits.words > 15 {
		score -= 2
	}

	normalized := math.Min(1, math.Max(0, score/scoreMax))
	return normalized, normalized >= cfg.AcceptThreshold
}

// headerTracker accumulates (text, Y band) recurrence across pages so that
// running headers and footers (identical text at the same vertical band on
// many pages) can be excluded from candidacy. State is local to one
// document pipeline run.
type headerTracker struct {
	bandPt   float64
	minPages int
	pages    map[headerKey]map[int]struct{}
}

type headerKey struct {
	text string
	band int
}

func newHeaderTracker(cfg Config) *headerTracker {
	return &headerTracker{
		bandPt:   cfg.HeaderBandPt,
		minPages: cfg.HeaderMinPages,
		pages:    make(map[headerKey]map[int]struct{}),
	}
}

func (t *headerTracker) key(s Span) headerKey {
	return headerKey{
		text: strings.TrimSpace(s.Text),
		band: int(math.Round(s.Y / t.bandPt)),
	}
}

// Observe records one span occurrence. Call it for every span before
// consulting Recurring.
func (t *headerTracker) Observe(s Span) {
	k := t.key(s)
	if k.text == "" {
		return
	}
	set, ok := t.pages[k]
	if !ok {
		set = make(map[int]struct{})
		t.pages[k] = set
	}
	set[s.Page] = struct{}{}
}

// Recurring reports whether the span's text repeats at the same vertical
// band on enough distinct pages to look like a running header or footer.
func (t *headerTracker) Recurring(s Span) bool {
	return len(t.pages[t.key(s)]) >= t.minPages
}

// scoreSpans runs the scorer over the whole span sequence, suppressing
// recurring headers, and returns the accepted candidates in document order.
func scoreSpans(spans []Span, profile BodyProfile, tracker *headerTracker, cfg Config) []Candidate {
	var candidates []Candidate
	for _, s := range spans {
		if s.valid() {
			tracker.Observe(s)
		}
	}
	for _, s := range spans {
		if !s.valid() || tracker.Recurring(s) {
			continue
		}
		score, ok := scoreSpan(s, profile, cfg)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{Span: s, Key: keyFor(s), Score: score})
	}
	return candidates
}
