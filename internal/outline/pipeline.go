package outline

import "strings"

// Build runs the full heuristic pipeline over one document's spans: body
// style estimation, candidate scoring, style clustering, and assembly.
// metaTitle, when non-empty, is used verbatim and suppresses title
// inference. Build is pure and deterministic: the same spans and config
// always produce a deeply equal Outline, and degenerate inputs (no spans,
// uniform typography, one style) degrade to empty or partial outlines
// instead of errors.
func Build(spans []Span, metaTitle string, cfg Config) Outline {
	cfg = cfg.withDefaults()

	profile := EstimateBodyProfile(spans, cfg)
	tracker := newHeaderTracker(cfg)
	candidates := scoreSpans(spans, profile, tracker, cfg)
	levels := clusterStyles(candidates)

	title := strings.TrimSpace(metaTitle)
	if title == "" {
		title = inferTitle(candidates)
	}

	entries := assemble(spans, levels, tracker, cfg)

	// A metadata title often reappears as the first, most prominent heading;
	// an outline head duplicating it is noise. Inferred titles are exempt
	// since they were picked from the candidates and the match is expected.
	if metaTitle != "" && len(entries) > 0 &&
		strings.Contains(strings.ToLower(title), strings.ToLower(entries[0].Text)) {
		entries = entries[1:]
	}
	if entries == nil {
		entries = []Entry{}
	}

	return Outline{Title: title, Entries: entries}
}
