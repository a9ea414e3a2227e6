package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/outliner/internal/outline"
)

// HTMLSource imports explicit heading structure (h1-h3) from HTML files.
// HTML has no pages, so every entry reports page 1.
type HTMLSource struct{}

func (p *HTMLSource) Load(r io.Reader, filename string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{Title: findTitle(root)}

	var entries []outline.Entry
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if level <= maxNativeDepth {
					if t := textContent(n); t != "" {
						entries = append(entries, outline.Entry{
							Level: outline.Level(fmt.Sprintf("H%d", level)),
							Text:  t,
							Page:  1,
						})
					}
				}
				return // Heading text already extracted; don't recurse.
			}
			// Chrome elements never carry document structure.
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	if len(entries) > 0 {
		title := doc.Title
		if title == "" {
			title = outline.FallbackTitle
		}
		doc.Native = &outline.Outline{Title: title, Entries: entries}
	}
	return doc, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
