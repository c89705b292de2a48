package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/krerkkiat/espanso-ontology/ontology"
)

// Watch runs the pipeline once, then regenerates the report whenever a file
// matched by pattern changes. Changes arriving within the debounce window
// coalesce into one regeneration. A failed regeneration is logged and the
// previous report is left in place; Watch itself returns only when ctx is
// cancelled or the watcher breaks.
func (p *Pipeline) Watch(ctx context.Context, pattern string) error {
	if err := p.Run(pattern); err != nil {
		return err
	}

	paths, err := ontology.ResolveInputs(pattern)
	if err != nil {
		return fmt.Errorf("resolve watch inputs: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories. Editors replace files rather than
	// writing in place, so watching the files themselves loses events.
	dirs := make(map[string]struct{})
	for _, path := range paths {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	p.logger.Info("watching for ontology changes",
		"pattern", pattern,
		"dirs", len(dirs),
		"debounce", p.cfg.Watch.GetDebounceDelay().String())

	debounce := p.cfg.Watch.GetDebounceDelay()
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !p.watchesPath(pattern, paths, event.Name) {
				continue
			}
			p.logger.Debug("ontology change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := p.Run(pattern); err != nil {
				p.logger.Error("regeneration failed, keeping previous report", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			p.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchesPath reports whether a changed path belongs to this run's inputs,
// either as one of the originally matched files or as a new match for the
// glob pattern.
func (p *Pipeline) watchesPath(pattern string, paths []string, changed string) bool {
	for _, path := range paths {
		if filepath.Clean(path) == filepath.Clean(changed) {
			return true
		}
	}
	matched, err := filepath.Match(filepath.Base(pattern), filepath.Base(changed))
	return err == nil && matched
}
