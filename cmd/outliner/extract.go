package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/pipeline"
	"github.com/dgallion1/outliner/internal/source"
	"github.com/dgallion1/outliner/internal/writer"
)

func extractCmd() *cobra.Command {
	var out string
	var workers int
	var title string

	cmd := &cobra.Command{
		Use:   "extract <file|dir>...",
		Short: "Extract outlines from documents and write one JSON file per input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectInputs(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no supported documents found")
			}
			if title != "" && len(files) > 1 {
				return fmt.Errorf("--title applies to a single input, got %d", len(files))
			}
			if workers < 1 {
				workers = 1
			}

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			w := pipeline.NewWorker(log, outline.DefaultConfig(), writer.New(out), nil)

			jobs := make([]*pipeline.Job, 0, len(files))
			queue := make(chan *pipeline.Job)
			var wg sync.WaitGroup
			for wi := 0; wi < workers; wi++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for job := range queue {
						w.Process(job)
					}
				}()
			}

			var failed int
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					log.Error("read failed", "path", path, "error", err)
					failed++
					continue
				}
				job := pipeline.NewJob(filepath.Base(path), title, data)
				jobs = append(jobs, job)
				queue <- job
			}
			close(queue)
			wg.Wait()

			for _, job := range jobs {
				snap := job.Snapshot()
				if snap.Status != pipeline.StatusCompleted {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", snap.Filename, snap.Errors)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries (%s) -> %s\n",
					snap.Filename, snap.Entries, snap.Method,
					filepath.Join(out, writer.OutputName(snap.Filename)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(files))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory for outline JSON files")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of documents to process in parallel")
	cmd.Flags().StringVar(&title, "title", "", "override the document title (single input only)")
	return cmd
}

// collectInputs expands file and directory arguments into the list of
// supported documents, in argument order.
func collectInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if source.IsSupportedExtension(e.Name()) {
				files = append(files, filepath.Join(arg, e.Name()))
			}
		}
	}
	return files, nil
}
