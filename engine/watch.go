// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// ConfigWatcher reloads a config file when it changes.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	stopped chan struct{}
}

// WatchConfig calls fn with the reloaded config, or the error reading
// it, each time the file is written or replaced. fn is called from
// the watcher goroutine. The directory of the file is watched, so
// editors that replace the file are seen.
func WatchConfig(filename string, fn func(Config, error)) (*ConfigWatcher, error) {
	fn0 := filename
	filename, err := homedir.Expand(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	filename, err = filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(filename)); err != nil {
		w.Close()
		return nil, err
	}
	cw := &ConfigWatcher{watcher: w, done: make(chan struct{}), stopped: make(chan struct{})}
	go func() {
		defer close(cw.stopped)
		for {
			select {
			case <-cw.done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filename {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					slog.Info("config changed", "file", fn0)
					fn(OpenConfig(filename))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("config watcher", "file", fn0, "err", err)
			}
		}
	}()
	return cw, nil
}

// Close stops watching and waits for the watcher goroutine to end.
func (cw *ConfigWatcher) Close() error {
	close(cw.done)
	err := cw.watcher.Close()
	<-cw.stopped
	return err
}
