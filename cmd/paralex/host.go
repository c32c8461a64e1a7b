package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/gethiox/paralexui/internal/pkg/input"
	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/panel"
	"github.com/gethiox/paralexui/internal/pkg/panel/config"
	"github.com/gethiox/paralexui/internal/pkg/utils"
	"go.uber.org/zap"
)

// command is run on the host goroutine, the only one touching the panel.
type command func(p *panel.Panel)

// Snapshot is what renderers get after every panel change.
type Snapshot struct {
	Panel string
	Focus int
	Views []panel.View
}

func (s Snapshot) Focused() (panel.View, bool) {
	if s.Focus < 0 || s.Focus >= len(s.Views) {
		return panel.View{}, false
	}
	return s.Views[s.Focus], true
}

type host struct {
	root    string
	name    string
	options panel.Options

	panel *panel.Panel
	sub   utils.Subscription
	dirty bool
}

func newHost(root, name string, options panel.Options) *host {
	return &host{root: root, name: name, options: options}
}

// load builds the configured panel, the current one stays in place when
// the new definition is broken.
func (h *host) load() error {
	configs, err := config.LoadPanelConfigs(h.root)
	if err != nil {
		return fmt.Errorf("panel configs load failed: %w", err)
	}

	pf, err := configs.FindPanel(h.name)
	if err != nil {
		return fmt.Errorf("[%s] %w", h.name, err)
	}

	p, err := panel.New(pf.Panel, h.options)
	if err != nil {
		return err
	}

	focus := 0
	if h.panel != nil {
		focus = h.panel.Focused()
		h.sub.Cancel()
		h.panel.Detach()
	}

	h.panel = p
	h.panel.Attach()
	h.panel.Focus(focus)
	h.sub = h.panel.OnChange(func(int) { h.dirty = true })
	h.dirty = true

	log.Info(fmt.Sprintf("panel loaded: %s", pf.ConfigFile), zap.String("panel", h.name), zap.String("config", pf.ConfigType), logger.Info)
	return nil
}

func (h *host) run(cmd command) {
	if h.panel == nil {
		return
	}
	cmd(h.panel)
}

func (h *host) snapshot() Snapshot {
	return Snapshot{Panel: h.panel.Name(), Focus: h.panel.Focused(), Views: h.panel.Views()}
}

func (h *host) close() {
	if h.panel == nil {
		return
	}
	h.sub.Cancel()
	h.panel.Detach()
	h.panel = nil
}

// runHost owns the panel until ctx is done: it applies commands, reloads the
// panel on config changes and publishes a snapshot after every change.
// snapshots is closed on exit, stop is called when no panel can be shown.
func runHost(ctx context.Context, wg *sync.WaitGroup, stop func(), h *host, commands <-chan command, snapshots chan<- Snapshot) {
	defer wg.Done()
	defer close(snapshots)

	changes := config.DetectPanelChanges(ctx, config.PanelDirs(h.root)...)

	err := h.load()
	if err != nil {
		log.Info(fmt.Sprintf("panel load failed: %s", err), logger.Error)
		stop()
		return
	}

	log.Info("Run host", logger.Debug)
root:
	for {
		if h.dirty {
			h.dirty = false
			select {
			case snapshots <- h.snapshot():
			case <-ctx.Done():
				break root
			}
		}

		select {
		case <-ctx.Done():
			break root
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			log.Info("handling panel change", logger.Debug)
			err := h.load()
			if err != nil {
				log.Info(fmt.Sprintf("panel reload failed, keeping current one: %s", err), logger.Warning)
			}
		case cmd := <-commands:
			h.run(cmd)
		}
	}

	h.close()
	log.Info("Exit host", logger.Debug)
}

// runPointers feeds samples of every pointer device into commands.
func runPointers(ctx context.Context, wg *sync.WaitGroup, cfg ParalexConfig, grab bool, commands chan<- command) {
	defer wg.Done()

	for d := range input.MonitorPointers(ctx, cfg.Paralex.DiscoveryRate) {
		samples, err := input.ReadPointer(ctx, d.EventPath(), knob.Point{}, grab)
		if err != nil {
			log.Info(fmt.Sprintf("failed to open pointer: %v", err), zap.String("handler_name", d.Name), logger.Warning)
			continue
		}

		wg.Add(1)
		go func(d input.DeviceInfo) {
			defer wg.Done()
			log.Info("Pointer connected", zap.String("handler_name", d.Name), logger.Info)
			for s := range samples {
				s := s
				select {
				case commands <- func(p *panel.Panel) { p.HandleSample(s) }:
				case <-ctx.Done():
				}
			}
			log.Info("Pointer disconnected", zap.String("handler_name", d.Name), logger.Info)
		}(d)
	}
}
