package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gethiox/paralexui/internal/pkg/display"
)

var heart, randomChar = '❤', '░'

func fitLine(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func exitMessage(cfg display.Config, width int) [4]string {
	var buffer [4]string
	if cfg.CustomExitMessage() {
		for i, msg := range cfg.ExitMessage {
			buffer[i] = fitLine(msg, width)
		}
		return buffer
	}

	center := func(msg string) string {
		return fmt.Sprintf("%*s", -width, fmt.Sprintf("%*s", (width+len([]rune(msg)))/2, msg))
	}
	buffer[0] = strings.Repeat(" ", width)
	buffer[1] = center("see you soon")
	buffer[2] = center(fmt.Sprintf("%c paralex %c", randomChar, heart))
	buffer[3] = strings.Repeat(" ", width)
	return buffer
}

func screenLines(s Snapshot, width int) [4]string {
	v, ok := s.Focused()
	if !ok {
		var empty [4]string
		empty[0] = fitLine(s.Panel, width)
		empty[1] = fitLine("no knobs", width)
		return empty
	}
	return display.Screen(s.Panel, s.Focus, len(s.Views), v, width)
}

// GenerateDisplayData renders the latest snapshot at most once per frame
// interval and finishes with the exit message.
func GenerateDisplayData(ctx context.Context, wg *sync.WaitGroup, cfg display.Config, snapshots <-chan Snapshot) <-chan display.DisplayData {
	data := make(chan display.DisplayData)
	width := cfg.Width()

	go func() {
		defer wg.Done()
		defer close(data)

		ticker := time.NewTicker(cfg.FrameInterval())
		defer ticker.Stop()

		var latest Snapshot
		var pending bool

	root:
		for {
			select {
			case <-ctx.Done():
				break root
			case s, ok := <-snapshots:
				if !ok {
					break root
				}
				latest = s
				pending = true
			case <-ticker.C:
				if !pending {
					continue
				}
				pending = false
				select {
				case data <- display.DisplayData{Lines: screenLines(latest, width)}:
				case <-ctx.Done():
					break root
				}
			}
		}

		data <- display.DisplayData{
			Lines:   exitMessage(cfg, width),
			LastMsg: true,
		}
	}()

	return data
}
