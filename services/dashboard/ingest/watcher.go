// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow absorbs editor save bursts (many spreadsheet tools
// write the file several times in quick succession).
const debounceWindow = 500 * time.Millisecond

// CSVWatcher re-syncs the register whenever the configured CSV file
// changes on disk.
//
// The parent directory is watched rather than the file itself, because
// most editors replace the file on save (rename + create) which would
// drop a direct file watch.
type CSVWatcher struct {
	path    string
	syncer  *Syncer
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewCSVWatcher creates a watcher for the CSV register at path.
func NewCSVWatcher(path string, syncer *Syncer, logger *slog.Logger) (*CSVWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &CSVWatcher{path: path, syncer: syncer, watcher: w, logger: logger}, nil
}

// Run processes filesystem events until the context is cancelled.
// Call it in its own goroutine.
func (w *CSVWatcher) Run(ctx context.Context) {
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Debounce: (re)arm the timer, fire once the burst settles.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("csv watcher error", "error", err)
		case <-pending:
			result, err := w.syncer.SyncCSVFile(w.path)
			if err != nil {
				w.logger.Error("csv auto-sync failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("csv auto-sync completed",
				"path", w.path,
				"created", result.Created,
				"updated", result.Updated,
				"errors", len(result.Errors),
			)
		}
	}
}

// relevant reports whether the event touches the watched CSV file with
// an op that changes its contents.
func (w *CSVWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// Close stops the underlying filesystem watcher.
func (w *CSVWatcher) Close() error {
	return w.watcher.Close()
}
