// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of fsnotify events spreadsheet editors
// emit on save into a single reload.
const watchDebounce = 500 * time.Millisecond

// Watch reloads both datasets whenever the workbook changes on disk, until
// the context is cancelled. The watch is on the workbook's directory, not
// the file itself: editors typically save via rename, which would drop a
// file-level watch.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	target, err := filepath.Abs(s.cfg.WorkbookPath)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		stopDebounce := func() {
			if debounce != nil {
				debounce.Stop()
			}
		}
		defer stopDebounce()

		slog.Info("Watching workbook for changes", "workbook", target)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				stopDebounce()
				debounce = time.AfterFunc(watchDebounce, func() {
					slog.Info("Workbook changed, reloading", "workbook", target)
					s.Reload()
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("Workbook watcher error", "error", err)
			}
		}
	}()
	return nil
}
