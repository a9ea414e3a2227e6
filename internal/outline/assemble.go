package outline

import (
	"sort"
	"strings"
)

// assemble re-walks the original span sequence, keeps spans whose style is
// in the level map, deduplicates exact (level, text, page) repeats, and
// orders the result by (page, vertical position). It walks spans rather than
// candidates so position fidelity survives the scoring pass, but the hard
// rejects still apply: sharing a heading's style does not rescue a page
// number or a sentence the scorer would never accept.
func assemble(spans []Span, levels LevelMap, tracker *headerTracker, cfg Config) []Entry {
	type positioned struct {
		entry Entry
		y     float64
	}
	var kept []positioned

	for _, s := range spans {
		if !s.valid() || tracker.Recurring(s) {
			continue
		}
		text := strings.TrimSpace(s.Text)
		if rejectOutright(text, analyzeText(text), cfg) {
			continue
		}
		level, ok := levels.LevelFor(keyFor(s))
		if !ok {
			continue
		}
		kept = append(kept, positioned{
			entry: Entry{Level: level, Text: text, Page: s.Page},
			y:     s.Y,
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].entry.Page != kept[j].entry.Page {
			return kept[i].entry.Page < kept[j].entry.Page
		}
		return kept[i].y < kept[j].y
	})

	type dedupKey struct {
		level Level
		text  string
		page  int
	}
	seen := make(map[dedupKey]struct{})
	entries := make([]Entry, 0, len(kept))
	for _, p := range kept {
		k := dedupKey{p.entry.Level, p.entry.Text, p.entry.Page}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		entries = append(entries, p.entry)
	}
	return entries
}

// inferTitle picks the most prominent candidate on the first page: style
// rank first, then score, then vertical position. It never fails; a document
// with no first-page candidate gets the fallback sentinel.
func inferTitle(candidates []Candidate) string {
	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Span.Page != 1 || strings.TrimSpace(c.Span.Text) == "" {
			continue
		}
		if best == nil || betterTitle(c, best) {
			best = c
		}
	}
	if best == nil {
		return FallbackTitle
	}
	return strings.TrimSpace(best.Span.Text)
}

func betterTitle(a, b *Candidate) bool {
	if a.Key != b.Key {
		return a.Key.moreProminent(b.Key)
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Span.Y < b.Span.Y
}

// FallbackTitle is the deterministic title used when neither metadata nor
// the first page yields one.
const FallbackTitle = "Untitled"
