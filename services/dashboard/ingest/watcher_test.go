// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWatcher_Relevant(t *testing.T) {
	syncer, _ := newTestSyncer(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "risk_register.csv")

	w, err := NewCSVWatcher(csvPath, syncer, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to watched file", fsnotify.Event{Name: csvPath, Op: fsnotify.Write}, true},
		{"create of watched file", fsnotify.Event{Name: csvPath, Op: fsnotify.Create}, true},
		{"rename of watched file", fsnotify.Event{Name: csvPath, Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: csvPath, Op: fsnotify.Chmod}, false},
		{"sibling file", fsnotify.Event{Name: filepath.Join(dir, "other.csv"), Op: fsnotify.Write}, false},
		{"unclean path still matches", fsnotify.Event{Name: filepath.Join(dir, ".", "risk_register.csv"), Op: fsnotify.Write}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestNewCSVWatcher_MissingParentDir(t *testing.T) {
	syncer, _ := newTestSyncer(t)

	_, err := NewCSVWatcher(filepath.Join(t.TempDir(), "missing", "f.csv"), syncer, slog.Default())
	assert.Error(t, err)
}
