package source

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/outliner/internal/outline"
)

// PDFSource extracts positioned text spans from PDF files.
type PDFSource struct{}

const (
	// rowTolerance is the Y distance within which two text fragments are
	// treated as the same rendered line.
	rowTolerance = 3.0
	// wordGapFraction of the font size is the minimum horizontal gap that
	// separates two words within a run.
	wordGapFraction = 0.3
	// defaultPageHeight (US Letter, points) is used when a page carries no
	// resolvable MediaBox.
	defaultPageHeight = 792.0
	// maxNativeDepth caps imported native table-of-contents levels.
	maxNativeDepth = 3
)

func (p *PDFSource) Load(r io.Reader, filename string) (*Document, error) {
	// The pdf library needs a ReadSeeker+size, so we go through a temp file.
	tmp, err := os.CreateTemp("", "outliner-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &Document{Title: metadataTitle(reader)}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		doc.Spans = append(doc.Spans, pageSpans(page, i)...)
	}

	if native := nativeOutline(reader, doc); native != nil {
		doc.Native = native
	}
	return doc, nil
}

// metadataTitle reads the Title entry of the trailer Info dictionary.
func metadataTitle(r *pdflib.Reader) string {
	defer func() { recover() }() // Malformed trailers are not our fault.
	title := r.Trailer().Key("Info").Key("Title")
	if title.IsNull() {
		return ""
	}
	return strings.TrimSpace(title.RawString())
}

// pageSpans converts one page's raw text fragments into ordered spans.
// Fragments are grouped into rendered lines by Y band, then merged into runs
// of identical style within each line.
func pageSpans(page pdflib.Page, pageNum int) []outline.Span {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}
	height := pageHeight(page)

	frags := make([]fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		if math.IsNaN(t.FontSize) || math.IsInf(t.FontSize, 0) || t.FontSize <= 0 {
			continue
		}
		frags = append(frags, fragment{Text: t, top: height - t.Y})
	}
	if len(frags) == 0 {
		return nil
	}

	sort.SliceStable(frags, func(i, j int) bool {
		if math.Abs(frags[i].top-frags[j].top) > rowTolerance {
			return frags[i].top < frags[j].top
		}
		return frags[i].X < frags[j].X
	})

	// Split into lines, then each line into same-style runs.
	var spans []outline.Span
	lineStart := 0
	for i := 1; i <= len(frags); i++ {
		if i < len(frags) && math.Abs(frags[i].top-frags[lineStart].top) <= rowTolerance {
			continue
		}
		line := frags[lineStart:i]
		runs := mergeRuns(line)
		for r := range runs {
			runs[r].Page = pageNum
			runs[r].SoleOnLine = len(runs) == 1
		}
		spans = append(spans, runs...)
		lineStart = i
	}
	return spans
}

// mergeRuns joins consecutive fragments of one line that share font size and
// weight into a single span, inserting spaces across word-sized gaps.
func mergeRuns(line []fragment) []outline.Span {
	var runs []outline.Span
	var text strings.Builder
	var cur fragment
	started := false

	flush := func() {
		if !started {
			return
		}
		s := strings.TrimSpace(text.String())
		if s != "" {
			runs = append(runs, outline.Span{
				Text:     s,
				FontSize: cur.FontSize,
				Bold:     boldFont(cur.Font),
				Y:        cur.top,
			})
		}
		text.Reset()
	}

	for _, f := range line {
		sameStyle := started &&
			math.Abs(f.FontSize-cur.FontSize) < 0.05 &&
			boldFont(f.Font) == boldFont(cur.Font)
		if !sameStyle {
			flush()
			cur = f
			started = true
			text.WriteString(f.S)
			continue
		}
		if gap := f.X - (cur.X + cur.W); gap > wordGapFraction*f.FontSize {
			text.WriteString(" ")
		}
		text.WriteString(f.S)
		cur.X, cur.W = f.X, f.W
	}
	flush()
	return runs
}

// fragment is one raw text element with its Y flipped to grow downward.
type fragment struct {
	pdflib.Text
	top float64
}

// boldFont infers weight from the font name; PDF has no portable bold flag.
func boldFont(font string) bool {
	f := strings.ToLower(font)
	return strings.Contains(f, "bold") || strings.Contains(f, "black") || strings.Contains(f, "heavy")
}

// pageHeight resolves the page's MediaBox height so Y can be flipped to grow
// downward. Falls back to US Letter when the box is missing or degenerate.
func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return defaultPageHeight
	}
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return defaultPageHeight
	}
	return h
}

// nativeOutline imports the document's built-in table of contents, when one
// exists, as a ready-made outline. The PDF outline tree does not carry page
// numbers directly, so each entry's page is resolved by locating its text
// among the extracted spans; unresolved entries inherit the previous entry's
// page so ordering stays monotonic. Levels deeper than three are discarded.
func nativeOutline(r *pdflib.Reader, doc *Document) *outline.Outline {
	defer func() { recover() }() // Outline trees can reference free objects.

	root := r.Outline()
	if len(root.Child) == 0 {
		return nil
	}

	pageByText := make(map[string]int)
	for _, s := range doc.Spans {
		key := normalizeHeading(s.Text)
		if _, ok := pageByText[key]; !ok && key != "" {
			pageByText[key] = s.Page
		}
	}

	var entries []outline.Entry
	lastPage := 1
	var walk func(items []pdflib.Outline, depth int)
	walk = func(items []pdflib.Outline, depth int) {
		if depth > maxNativeDepth {
			return
		}
		for _, item := range items {
			title := strings.TrimSpace(item.Title)
			if title != "" {
				page, ok := pageByText[normalizeHeading(title)]
				if !ok || page < lastPage {
					page = lastPage
				}
				lastPage = page
				entries = append(entries, outline.Entry{
					Level: outline.Level(fmt.Sprintf("H%d", depth)),
					Text:  title,
					Page:  page,
				})
			}
			walk(item.Child, depth+1)
		}
	}
	walk(root.Child, 1)

	if len(entries) == 0 {
		return nil
	}
	title := doc.Title
	if title == "" {
		title = outline.FallbackTitle
	}
	return &outline.Outline{Title: title, Entries: entries}
}

// normalizeHeading canonicalizes heading text for span lookup.
func normalizeHeading(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
