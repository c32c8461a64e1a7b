package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/gethiox/paralexui/internal/pkg/logger"
)

// DetectPanelChanges reports writes and creations of panel files in dirs.
// The channel is closed when ctx is done.
func DetectPanelChanges(ctx context.Context, dirs ...string) <-chan bool {
	var change = make(chan bool)

	go func() {
		defer close(change)
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Info(fmt.Sprintf("panel watcher failed: %v", err), logger.Warning)
			return
		}

		go func() {
			<-ctx.Done()
			err := watcher.Close()
			if err != nil {
				log.Info(fmt.Sprintf("closing watcher failed: %v", err), logger.Debug)
			}
		}()

		for _, path := range dirs {
			err = watcher.Add(path)
			if err != nil {
				log.Info(fmt.Sprintf("watching %s failed: %v", path, err), logger.Debug)
			}
		}

		for event := range watcher.Events {
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isPanelFile(event.Name) {
				continue
			}

			log.Info(fmt.Sprintf("panel change detected: %s", event.Name), logger.Info)
			select {
			case change <- true:
			case <-ctx.Done():
				return
			}
		}
	}()

	return change
}
