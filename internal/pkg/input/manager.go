package input

import (
	"context"
	"fmt"
	"time"

	"github.com/gethiox/paralexui/internal/pkg/logger"
	"go.uber.org/zap"
)

// MonitorPointers reports every pointer handler that appears in the system,
// including the ones present on start. The channel is closed when ctx is done.
func MonitorPointers(ctx context.Context, interval time.Duration) <-chan DeviceInfo {
	var devChan = make(chan DeviceInfo)

	var tracked = make(map[string]DeviceInfo)

	go func() {
		defer close(devChan)
		log.Info("Monitor new pointers engaged", logger.Debug)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			current, err := FindPointers()
			if err != nil {
				log.Info(fmt.Sprintf("pointer discovery failed: %v", err), logger.Warning)
			}

			fresh, missing := diffPointers(tracked, current)

			for _, d := range missing {
				log.Info("Pointer removed", zap.String("handler_name", d.Name), zap.String("handler_path", d.EventPath()), logger.Info)
				delete(tracked, d.EventPath())
			}

			for _, d := range fresh {
				log.Info("Pointer found", zap.String("handler_name", d.Name), zap.String("handler_path", d.EventPath()), logger.Info)
				tracked[d.EventPath()] = d
				select {
				case devChan <- d:
				case <-ctx.Done():
					log.Info("Monitor new pointers disengaged", logger.Debug)
					return
				}
			}

			select {
			case <-ctx.Done():
				log.Info("Monitor new pointers disengaged", logger.Debug)
				return
			case <-ticker.C:
			}
		}
	}()

	return devChan
}

func diffPointers(tracked map[string]DeviceInfo, current []DeviceInfo) (fresh, missing []DeviceInfo) {
	seen := make(map[string]bool, len(current))
	for _, d := range current {
		seen[d.EventPath()] = true
		if _, ok := tracked[d.EventPath()]; !ok {
			fresh = append(fresh, d)
		}
	}
	for path, d := range tracked {
		if !seen[path] {
			missing = append(missing, d)
		}
	}
	return fresh, missing
}
