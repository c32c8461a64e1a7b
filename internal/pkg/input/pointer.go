// Package input turns evdev pointer devices into knob gesture samples.
package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PointerDecoder folds raw pointer events into drag samples. A press of the
// left button starts a gesture, motion reported between sync events changes
// it and the release ends it. Origin is the location of the press.
type PointerDecoder struct {
	Origin knob.Point

	pressed     bool
	moved       bool
	translation knob.Point
	mods        knob.Modifiers
}

func NewPointerDecoder(origin knob.Point) *PointerDecoder {
	return &PointerDecoder{Origin: origin}
}

// Pressed tells if a gesture is in progress.
func (d *PointerDecoder) Pressed() bool {
	return d.pressed
}

func (d *PointerDecoder) sample(phase knob.Phase) knob.Sample {
	return knob.Sample{
		Phase:       phase,
		Location:    knob.Point{X: d.Origin.X + d.translation.X, Y: d.Origin.Y + d.translation.Y},
		Translation: d.translation,
		Modifiers:   d.mods,
	}
}

func (d *PointerDecoder) modifier(mod knob.Modifiers, value int32) {
	if value == 0 {
		d.mods &^= mod
		return
	}
	d.mods |= mod
}

// Decode consumes one event and returns a sample when the event completes one.
func (d *PointerDecoder) Decode(ev evdev.InputEvent) (knob.Sample, bool) {
	switch ev.Type {
	case evdev.EV_KEY:
		if ev.Value == 2 { // repeat
			return knob.Sample{}, false
		}
		switch ev.Code {
		case evdev.BTN_LEFT:
			if ev.Value == 1 {
				if d.pressed {
					return knob.Sample{}, false
				}
				d.pressed = true
				d.moved = false
				d.translation = knob.Point{}
				return d.sample(knob.PhaseStarted), true
			}
			if !d.pressed {
				return knob.Sample{}, false
			}
			d.pressed = false
			d.moved = false
			return d.sample(knob.PhaseEnded), true
		case evdev.KEY_LEFTCTRL, evdev.KEY_RIGHTCTRL:
			d.modifier(knob.ModControl, ev.Value)
		case evdev.KEY_LEFTMETA, evdev.KEY_RIGHTMETA:
			d.modifier(knob.ModCommand, ev.Value)
		}
	case evdev.EV_REL:
		if !d.pressed {
			return knob.Sample{}, false
		}
		switch ev.Code {
		case evdev.REL_X:
			d.translation.X += float64(ev.Value)
			d.moved = true
		case evdev.REL_Y:
			d.translation.Y += float64(ev.Value)
			d.moved = true
		}
	case evdev.EV_SYN:
		if ev.Code != evdev.SYN_REPORT || !d.pressed || !d.moved {
			return knob.Sample{}, false
		}
		d.moved = false
		return d.sample(knob.PhaseChanged), true
	}
	return knob.Sample{}, false
}

// ReadPointer opens the evdev handler at path and streams decoded samples
// until ctx is done. The returned channel is closed when reading finishes.
func ReadPointer(ctx context.Context, path string, origin knob.Point, grab bool) (<-chan knob.Sample, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening handler failed: %v", err)
	}

	go func() {
		<-ctx.Done()
		err := dev.Close()
		if err != nil {
			log.Info(fmt.Sprintf("device close failed: %v", err), zap.String("handler_path", path), logger.Warning)
		}
	}()

	var samples = make(chan knob.Sample)

	go func() {
		defer close(samples)

		name, _ := dev.Name()
		name = strings.Trim(name, "\x00")

		if grab {
			_ = dev.Grab()
			log.Info("Grabbing pointer for exclusive usage", zap.String("handler_path", path), zap.String("handler_name", name), logger.Debug)
		}
		log.Info("Reading pointer events", zap.String("handler_path", path), zap.String("handler_name", name), logger.Debug)

		err := dev.NonBlock()
		if err != nil {
			log.Info(fmt.Sprintf("enabling non-blocking event reading mode failed: %v", err),
				zap.String("handler_path", path), zap.String("handler_name", name),
				logger.Warning,
			)
		}

		decoder := NewPointerDecoder(origin)
		for {
			event, err := dev.ReadOne()
			if err != nil {
				break
			}

			s, ok := decoder.Decode(*event)
			if !ok {
				continue
			}
			select {
			case samples <- s:
			case <-ctx.Done():
			}
		}

		if grab {
			log.Info("Ungrabbing pointer", zap.String("handler_path", path), zap.String("handler_name", name), logger.Debug)
			_ = dev.Ungrab()
		}
		log.Info("Reading pointer events finished", zap.String("handler_path", path), zap.String("handler_name", name), logger.Debug)
	}()

	return samples, nil
}
