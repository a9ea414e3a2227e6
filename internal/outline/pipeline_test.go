package outline

import (
	"reflect"
	"testing"
)

// twoLevelDoc reproduces a small report: one chapter heading, fifty lines of
// body prose, one sub-heading.
func twoLevelDoc() []Span {
	spans := []Span{
		{Text: "1. Introduction", FontSize: 18, Bold: true, Page: 1, Y: 72, SoleOnLine: true},
	}
	for i := 0; i < 50; i++ {
		spans = append(spans, Span{
			Text: "This is body text.", FontSize: 12, Page: 1, Y: 100 + float64(i)*14,
		})
	}
	spans = append(spans, Span{
		Text: "1.1 Background", FontSize: 15, Bold: true, Page: 1, Y: 820, SoleOnLine: true,
	})
	return spans
}

func TestBuild_TwoLevelDocument(t *testing.T) {
	out := Build(twoLevelDoc(), "", Config{})

	want := []Entry{
		{Level: H1, Text: "1. Introduction", Page: 1},
		{Level: H2, Text: "1.1 Background", Page: 1},
	}
	if !reflect.DeepEqual(out.Entries, want) {
		t.Fatalf("expected %+v, got %+v", want, out.Entries)
	}
	if out.Title != "1. Introduction" {
		t.Errorf("expected inferred title from the most prominent candidate, got %q", out.Title)
	}
}

func TestBuild_RecurringFooterExcluded(t *testing.T) {
	// "Page 3" repeats at the same vertical band on every page while body
	// text is the same size; it must never surface as a heading.
	var spans []Span
	for page := 1; page <= 10; page++ {
		spans = append(spans, Span{Text: "Page 3", FontSize: 10, Page: page, Y: 800})
		for i := 0; i < 20; i++ {
			spans = append(spans, Span{Text: "body line", FontSize: 10, Page: page, Y: 80 + float64(i)*14})
		}
		spans = append(spans, Span{Text: "Chapter Heading", FontSize: 16, Bold: true, Page: page, Y: 40 + float64(page), SoleOnLine: true})
	}

	out := Build(spans, "Some Report", Config{})

	for _, e := range out.Entries {
		if e.Text == "Page 3" {
			t.Fatalf("recurring footer surfaced in outline: %+v", e)
		}
	}
}

func TestBuild_UniformDocumentYieldsEmptyOutline(t *testing.T) {
	// Scenario: every span is body-sized and plain; nothing passes the
	// prominence gate.
	var spans []Span
	for i := 0; i < 100; i++ {
		spans = append(spans, Span{Text: "uniform prose line", FontSize: 11, Page: 1 + i/40, Y: float64(i % 40 * 18)})
	}

	out := Build(spans, "", Config{})

	if len(out.Entries) != 0 {
		t.Fatalf("expected empty outline, got %+v", out.Entries)
	}
	if out.Title != FallbackTitle {
		t.Errorf("expected fallback title, got %q", out.Title)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	out := Build(nil, "", Config{})
	if out.Entries == nil {
		t.Fatal("entries must be an empty slice, not nil")
	}
	if len(out.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(out.Entries))
	}
	if out.Title != FallbackTitle {
		t.Errorf("expected deterministic fallback title, got %q", out.Title)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	spans := twoLevelDoc()
	first := Build(spans, "", Config{})
	second := Build(spans, "", Config{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical outlines, got %+v vs %+v", first, second)
	}
}

func TestBuild_MetadataTitleSuppressesInference(t *testing.T) {
	out := Build(twoLevelDoc(), "Supplied Title", Config{})
	if out.Title != "Supplied Title" {
		t.Errorf("expected metadata title to win, got %q", out.Title)
	}
}

func TestBuild_MetadataTitleDropsDuplicateHead(t *testing.T) {
	// When the supplied title repeats as the first heading, the duplicate
	// entry is dropped.
	out := Build(twoLevelDoc(), "1. Introduction", Config{})
	if len(out.Entries) != 1 || out.Entries[0].Text != "1.1 Background" {
		t.Fatalf("expected the duplicate head to be dropped, got %+v", out.Entries)
	}
}

func TestBuild_HeadingStyleAloneDoesNotAdmitRejectedText(t *testing.T) {
	// A bare page number and a full sentence share the H1 style here; neither
	// would ever pass the scorer, and matching a clustered style must not
	// smuggle them into the outline during assembly.
	spans := append(twoLevelDoc(),
		Span{Text: "42", FontSize: 18, Bold: true, Page: 2, Y: 72, SoleOnLine: true},
		Span{
			Text:     "This is a long bold quotation that continues on and ends with a period.",
			FontSize: 18, Bold: true, Page: 2, Y: 200,
		},
	)

	out := Build(spans, "", Config{})

	want := []Entry{
		{Level: H1, Text: "1. Introduction", Page: 1},
		{Level: H2, Text: "1.1 Background", Page: 1},
	}
	if !reflect.DeepEqual(out.Entries, want) {
		t.Fatalf("expected %+v, got %+v", want, out.Entries)
	}
}

func TestBuild_EntriesSortedAndUnique(t *testing.T) {
	var spans []Span
	// Headings interleaved out of visual order across pages, with one exact
	// duplicate.
	spans = append(spans,
		Span{Text: "Beta Section", FontSize: 16, Bold: true, Page: 2, Y: 300, SoleOnLine: true},
		Span{Text: "Alpha Chapter", FontSize: 20, Bold: true, Page: 1, Y: 72, SoleOnLine: true},
		Span{Text: "Beta Section", FontSize: 16, Bold: true, Page: 2, Y: 300, SoleOnLine: true},
		Span{Text: "Gamma Section", FontSize: 16, Bold: true, Page: 2, Y: 90, SoleOnLine: true},
	)
	for i := 0; i < 60; i++ {
		spans = append(spans, Span{Text: "prose", FontSize: 12, Page: 1 + i/30, Y: 100 + float64(i%30)*16})
	}

	out := Build(spans, "", Config{})

	seen := map[Entry]struct{}{}
	for i, e := range out.Entries {
		if _, dup := seen[e]; dup {
			t.Errorf("duplicate entry: %+v", e)
		}
		seen[e] = struct{}{}
		if i > 0 && e.Page < out.Entries[i-1].Page {
			t.Errorf("entries out of page order at %d: %+v", i, out.Entries)
		}
	}

	want := []string{"Gamma Section", "Beta Section"}
	var page2 []string
	for _, e := range out.Entries {
		if e.Page == 2 {
			page2 = append(page2, e.Text)
		}
	}
	if !reflect.DeepEqual(page2, want) {
		t.Errorf("page 2 entries not in vertical order: %v", page2)
	}
}

func TestBuild_MalformedSpansDoNotPoisonPipeline(t *testing.T) {
	spans := twoLevelDoc()
	spans = append(spans,
		Span{Text: "ghost", FontSize: -4, Page: 1, Y: 10},
		Span{Text: "off page", FontSize: 18, Bold: true, Page: 0, Y: 10},
	)

	out := Build(spans, "", Config{})

	for _, e := range out.Entries {
		if e.Text == "ghost" || e.Text == "off page" {
			t.Fatalf("malformed span surfaced: %+v", e)
		}
	}
	if len(out.Entries) != 2 {
		t.Errorf("expected the 2 well-formed headings, got %d", len(out.Entries))
	}
}
