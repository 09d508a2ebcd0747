package calculator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// changed reports whether ev touches the config file itself. Rename-over
// saves replace the inode, so the directory is what gets watched.
func changed(ev fsnotify.Event, file string) bool {
	if filepath.Clean(ev.Name) != file {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Watch hands a freshly loaded Config to onChange whenever the file at path
// is written or replaced. Bad configs are logged and dropped. It returns
// once ctx is done.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	file := filepath.Clean(path)
	dir := filepath.Dir(file)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := log.WithField("path", file)
	logger.Info("watching config")
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.WithField("err", err).Warn("config watcher")
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !changed(ev, file) {
				continue
			}
			// moved away: LoadConfig would hand back defaults
			if _, err := os.Stat(file); err != nil {
				logger.WithField("op", ev.Op.String()).Debug("config file gone, keeping previous")
				continue
			}
			cfg, err := LoadConfig(file)
			if err != nil {
				// a half-written file shows up here; the next write retries
				logger.WithField("err", err).Error("config reload failed, keeping previous")
				continue
			}
			logger.WithField("op", ev.Op.String()).Info("config reloaded")
			onChange(cfg)
		}
	}
}
