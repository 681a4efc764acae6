package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/simonhull/audiotag"
)

func newWatchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Print tags of FLAC and MP3 files as they are created or written",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w := newDirWatcher(args[0], a.cfg.Debounce, func(ctx context.Context, path string) {
				f, err := audiotag.OpenContext(ctx, path, a.openOptions()...)
				if err != nil {
					zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("open failed")
					return
				}
				defer f.Close()
				if err := render(out, a.cfg.Output, f); err != nil {
					zerolog.Ctx(ctx).Error().Err(err).Msg("render failed")
				}
			})
			return w.run(a.log.WithContext(cmd.Context()))
		},
	}
	cmd.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period after the last write before a file is read")
	return cmd
}

// dirWatcher reports audio files in one directory once writes to them settle.
type dirWatcher struct {
	dir    string
	delay  time.Duration
	handle func(ctx context.Context, path string)

	mu      sync.Mutex
	pending map[string]*time.Timer
	// serializes handle so output from different files does not interleave
	handleMu sync.Mutex
}

func newDirWatcher(dir string, delay time.Duration, handle func(ctx context.Context, path string)) *dirWatcher {
	return &dirWatcher{
		dir:     dir,
		delay:   delay,
		handle:  handle,
		pending: make(map[string]*time.Timer),
	}
}

// run blocks until ctx is done or the watcher fails.
func (w *dirWatcher) run(ctx context.Context) error {
	log := zerolog.Ctx(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	log.Info().Str("dir", w.dir).Msg("watching")

	defer w.stopAll()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isAudioFile(event.Name) {
				continue
			}
			log.Debug().Str("path", event.Name).Stringer("op", event.Op).Msg("change")
			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// schedule restarts the debounce timer for path.
func (w *dirWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.delay, func() {
		if !w.release(path, t) || ctx.Err() != nil {
			return
		}
		w.handleMu.Lock()
		defer w.handleMu.Unlock()
		w.handle(ctx, path)
	})
	w.pending[path] = t
}

// release drops the pending entry for path if it is still t. It reports
// false when a later schedule call has replaced t, whose own timer then
// handles the file.
func (w *dirWatcher) release(path string, t *time.Timer) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending[path] != t {
		return false
	}
	delete(w.pending, path)
	return true
}

func (w *dirWatcher) stopAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac", ".mp3":
		return true
	}
	return false
}
