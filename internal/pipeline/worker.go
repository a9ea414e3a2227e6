package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/source"
	"github.com/dgallion1/outliner/internal/writer"
)

// Worker processes a single document job: load spans, take the native
// table-of-contents golden path when one exists, otherwise run the heuristic
// pipeline, then attach and optionally persist the result. Failures are
// local to the job; one malformed document never affects the others.
type Worker struct {
	log   *slog.Logger
	cfg   outline.Config
	out   *writer.Writer // nil disables result files.
	stats *Stats
}

func NewWorker(log *slog.Logger, cfg outline.Config, out *writer.Writer, stats *Stats) *Worker {
	return &Worker{log: log, cfg: cfg, out: out, stats: stats}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)
	start := time.Now()

	o, method, err := w.extract(job)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		job.ReleaseFileData()
		w.record(start, false)
		return
	}

	job.SetResult(o, method)
	job.ReleaseFileData()

	if w.out != nil {
		path, err := w.out.Write(job.Filename, o)
		if err != nil {
			// The result is still served from memory; only persistence failed.
			log.Warn("result write failed", "error", err)
			job.AddError(fmt.Sprintf("write: %s", err))
		} else {
			log.Info("result written", "path", path)
		}
	}

	job.SetStatus(StatusCompleted, "done")
	log.Info("extraction complete",
		"method", method,
		"entries", len(o.Entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	w.record(start, true)
}

func (w *Worker) extract(job *Job) (outline.Outline, Method, error) {
	job.SetStatus(StatusParsing, "parsing")

	src, err := source.ForFile(job.Filename)
	if err != nil {
		return outline.Outline{}, "", err
	}
	doc, err := src.Load(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		return outline.Outline{}, "", fmt.Errorf("load %s: %w", job.Filename, err)
	}

	// Caller-supplied title beats anything found in the document.
	metaTitle := job.Title
	if metaTitle == "" {
		metaTitle = doc.Title
	}

	// Golden path: a usable native table of contents is a lossless copy of
	// the author's structure, so the heuristics never run.
	if doc.UsableNative() {
		o := *doc.Native
		if metaTitle != "" {
			o.Title = metaTitle
		}
		return o, MethodNative, nil
	}

	job.SetStatus(StatusAnalyzing, "analyzing")
	return outline.Build(doc.Spans, metaTitle, w.cfg), MethodHeuristic, nil
}

func (w *Worker) record(start time.Time, ok bool) {
	if w.stats != nil {
		w.stats.Record(time.Since(start), ok)
	}
}
