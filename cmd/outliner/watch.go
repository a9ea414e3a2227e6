package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/pipeline"
	"github.com/dgallion1/outliner/internal/watch"
	"github.com/dgallion1/outliner/internal/writer"
)

func watchCmd() *cobra.Command {
	var in string
	var out string
	var workers int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and extract outlines from documents as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return fmt.Errorf("--in is required")
			}
			if workers < 1 {
				workers = 1
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))
			w := pipeline.NewWorker(log, outline.DefaultConfig(), writer.New(out), nil)

			queue := make(chan string, 64)
			var wg sync.WaitGroup
			for wi := 0; wi < workers; wi++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for path := range queue {
						data, err := os.ReadFile(path)
						if err != nil {
							log.Error("read failed", "path", path, "error", err)
							continue
						}
						w.Process(pipeline.NewJob(filepath.Base(path), "", data))
					}
				}()
			}

			watcher := watch.New(in, log, func(path string) {
				select {
				case queue <- path:
				default:
					log.Warn("queue full, dropping document", "path", path)
				}
			})
			err := watcher.Run(ctx)
			close(queue)
			wg.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "directory to watch for new documents")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory for outline JSON files")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of documents to process in parallel")
	return cmd
}
