package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/knockback/oerror"
	"github.com/sirupsen/logrus"
)

// reloadDelay is the time waited after the last change to a settings file before it is reloaded. Editors
// often write a file in several steps.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the registry from the settings file at the path passed every time the file changes, until
// the context is cancelled. A reload that fails is logged and the previous settings stay in effect.
func Watch(ctx context.Context, path string, r *Registry, log *logrus.Logger) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("error resolving settings path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating settings watcher: %w", err)
	}
	// The directory is watched rather than the file, as editors may replace the file when saving.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("error watching settings: %w", err)
	}
	go watch(ctx, w, path, r, log)
	return nil
}

func watch(ctx context.Context, w *fsnotify.Watcher, path string, r *Registry, log *logrus.Logger) {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("settings watcher panic: %v", err)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("settings", path)
			})
			hub.Recover(oerror.New("%v", err))
			hub.Flush(time.Second * 5)
		}
	}()
	defer w.Close()

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			reload = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warnf("settings watcher: %v", err)
		case <-reload:
			reload = nil
			if err := r.Reload(path); err != nil {
				log.Errorf("failed reloading knockback settings, keeping previous settings: %v", err)
				continue
			}
			log.WithField("profiles", r.Snapshot().ProfileNames()).Infof("reloaded knockback settings from %s", path)
		}
	}
}
