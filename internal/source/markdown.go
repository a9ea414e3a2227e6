package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/outliner/internal/outline"
)

// MarkdownSource imports explicit heading structure from Markdown files
// using goldmark. Markdown has no pages, so every entry reports page 1.
type MarkdownSource struct{}

func (p *MarkdownSource) Load(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var entries []outline.Entry
	title := ""
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxNativeDepth {
			continue
		}
		headingText := strings.TrimSpace(string(headingBytes(h, src)))
		if headingText == "" {
			continue
		}
		// The first top-level heading doubles as the document title.
		if title == "" && h.Level == 1 {
			title = headingText
		}
		entries = append(entries, outline.Entry{
			Level: outline.Level(fmt.Sprintf("H%d", h.Level)),
			Text:  headingText,
			Page:  1,
		})
	}

	doc := &Document{Title: title}
	if len(entries) > 0 {
		if title == "" {
			title = outline.FallbackTitle
		}
		doc.Native = &outline.Outline{Title: title, Entries: entries}
	}
	return doc, nil
}

// headingBytes collects the text content of a heading's inline children.
func headingBytes(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.Write(headingBytes(c, src))
		}
	}
	return buf.Bytes()
}
