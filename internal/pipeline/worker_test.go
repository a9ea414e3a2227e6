package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/outliner/internal/config"
	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/writer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleMarkdown = `# User Guide

Some introductory prose.

## Installation

More prose here.

### From Source

Even more prose.
`

func TestWorker_MarkdownNativePath(t *testing.T) {
	dir := t.TempDir()
	w := NewWorker(discardLogger(), outline.DefaultConfig(), writer.New(dir), NewStats(time.Minute))

	job := NewJob("guide.md", "", []byte(sampleMarkdown))
	w.Process(job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors: %v)", StatusCompleted, job.Status, job.Snapshot().Errors)
	}
	if job.Method != MethodNative {
		t.Errorf("expected method %q, got %q", MethodNative, job.Method)
	}

	result := job.Result()
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Title != "User Guide" {
		t.Errorf("expected title %q, got %q", "User Guide", result.Title)
	}
	want := []outline.Entry{
		{Level: outline.H1, Text: "User Guide", Page: 1},
		{Level: outline.H2, Text: "Installation", Page: 1},
		{Level: outline.H3, Text: "From Source", Page: 1},
	}
	if len(result.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(result.Entries), result.Entries)
	}
	for i, e := range result.Entries {
		if e != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, e, want[i])
		}
	}

	if job.FileData() != nil {
		t.Error("expected upload bytes released after processing")
	}
	if _, err := os.Stat(filepath.Join(dir, "guide.json")); err != nil {
		t.Errorf("expected persisted result file: %v", err)
	}
}

func TestWorker_TitleOverride(t *testing.T) {
	w := NewWorker(discardLogger(), outline.DefaultConfig(), nil, nil)

	job := NewJob("guide.md", "Official Manual", []byte(sampleMarkdown))
	w.Process(job)

	result := job.Result()
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Title != "Official Manual" {
		t.Errorf("expected caller title to win, got %q", result.Title)
	}
}

func TestWorker_HeuristicFallbackWithoutNativeHeadings(t *testing.T) {
	w := NewWorker(discardLogger(), outline.DefaultConfig(), nil, NewStats(time.Minute))

	html := `<html><head><title>Plain Page</title></head><body><p>just prose</p></body></html>`
	job := NewJob("page.html", "", []byte(html))
	w.Process(job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q", StatusCompleted, job.Status)
	}
	if job.Method != MethodHeuristic {
		t.Errorf("expected method %q, got %q", MethodHeuristic, job.Method)
	}
	result := job.Result()
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Title != "Plain Page" {
		t.Errorf("expected document title %q, got %q", "Plain Page", result.Title)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected empty outline, got %+v", result.Entries)
	}
}

func TestWorker_UnsupportedExtensionFails(t *testing.T) {
	stats := NewStats(time.Minute)
	w := NewWorker(discardLogger(), outline.DefaultConfig(), nil, stats)

	job := NewJob("data.csv", "", []byte("a,b,c"))
	w.Process(job)

	if job.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, job.Status)
	}
	if len(job.Snapshot().Errors) == 0 {
		t.Error("expected an error recorded on the job")
	}
	if job.FileData() != nil {
		t.Error("expected upload bytes released after failure")
	}
	if snap := stats.Snapshot(); snap.Failed != 1 {
		t.Errorf("expected 1 failed run recorded, got %d", snap.Failed)
	}
}

func TestOrchestrator_SubmitAndProcess(t *testing.T) {
	cfg := config.Config{
		WorkerCount:  2,
		MaxQueueSize: 10,
		JobTTL:       time.Hour,
		StatsWindow:  time.Minute,
	}
	o := NewOrchestrator(cfg, discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("guide.md", "", []byte(sampleMarkdown))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.GetJob(job.ID) != job {
		t.Fatal("expected submitted job to be retrievable")
	}

	deadline := time.After(5 * time.Second)
	for job.Snapshot().Status != StatusCompleted {
		select {
		case <-deadline:
			t.Fatalf("job never completed, status %q", job.Snapshot().Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	if snap := o.Stats().Snapshot(); snap.Completed != 1 {
		t.Errorf("expected 1 completed run, got %d", snap.Completed)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{
		WorkerCount:  1,
		MaxQueueSize: 1,
		JobTTL:       time.Hour,
		StatsWindow:  time.Minute,
	}
	// Never started: nothing drains the queue.
	o := NewOrchestrator(cfg, discardLogger())

	if err := o.Submit(NewJob("a.md", "", nil)); err != nil {
		t.Fatalf("first submit should fit: %v", err)
	}
	overflow := NewJob("b.md", "", nil)
	if err := o.Submit(overflow); err == nil {
		t.Fatal("expected queue-full error")
	}
	if overflow.Status != StatusFailed {
		t.Errorf("expected overflow job marked failed, got %q", overflow.Status)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
