package profile

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/gethiox/midinames/internal/pkg/logger"
	"go.uber.org/zap"
)

// DetectChanges reports the name of every profile file written or created in dirs,
// until ctx is done.
func DetectChanges(ctx context.Context, dirs ...string) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher failed: %w", err)
	}

	for _, dir := range dirs {
		err = watcher.Add(dir)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching \"%s\" failed: %w", dir, err)
		}
	}

	var change = make(chan string)

	go func() {
		<-ctx.Done()
		err := watcher.Close()
		if err != nil {
			log.Info("closing watcher failed", logger.Warning, zap.Error(err))
		}
	}()

	go func() {
		defer close(change)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if _, ok := FormatFromFilename(event.Name); !ok {
					continue
				}
				log.Info("profile change detected", logger.Debug, zap.String("file", event.Name))
				select {
				case change <- event.Name:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Info("watcher error", logger.Warning, zap.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()

	return change, nil
}
