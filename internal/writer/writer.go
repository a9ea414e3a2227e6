// Package writer serializes finished outlines to the output directory as
// pretty-printed JSON, one file per input document.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
)

// Writer persists outlines under a base directory.
type Writer struct {
	dir string
}

func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write serializes one outline as <basename>.json next to its siblings.
// The write goes through a temp file and rename so a crash never leaves a
// half-written result behind.
func (w *Writer) Write(inputName string, o outline.Outline) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	outPath := filepath.Join(w.dir, OutputName(inputName))

	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal outline: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(w.dir, ".outline-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write outline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close outline: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename outline: %w", err)
	}
	return outPath, nil
}

// OutputName maps an input filename to its result filename.
func OutputName(inputName string) string {
	base := filepath.Base(inputName)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".json"
}
