// Package source loads input documents into the span/outline model. The PDF
// source yields positioned text spans for the heuristic pipeline; the markup
// sources (Markdown, HTML, DOCX) carry explicit heading structure and yield a
// ready-made native outline instead, bypassing the heuristics entirely.
//
// Conventions owed to the core: pages are 1-based, and spans within a page
// are ordered top-to-bottom (ascending Y, top of page = 0). Formats without
// pages report every heading on page 1.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
)

// Document is a loaded input document.
type Document struct {
	Title  string           // Metadata title; empty triggers title inference downstream.
	Spans  []outline.Span   // Positioned text spans (PDF only).
	Native *outline.Outline // Pre-built structure for formats with explicit headings.
}

// Source converts raw document bytes into a Document.
type Source interface {
	Load(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate source for a filename.
func ForFile(filename string) (Source, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// UsableNative reports whether a document carries a native outline the
// orchestrator should use verbatim instead of running the heuristics.
func (d *Document) UsableNative() bool {
	return d.Native != nil && len(d.Native.Entries) > 0
}
