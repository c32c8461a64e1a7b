package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/d2r2/go-hd44780"
)

// Size of a character LCD.
type Size struct {
	Type    hd44780.LcdType
	Columns int
	Rows    int
}

var sizes = map[string]Size{
	"16x2": {hd44780.LCD_16x2, 16, 2},
	"20x4": {hd44780.LCD_20x4, 20, 4},
}

// ParseSize accepts the "<columns>x<rows>" names of supported displays.
func ParseSize(s string) (Size, error) {
	size, ok := sizes[strings.ToLower(s)]
	if !ok {
		return Size{}, fmt.Errorf("unsupported screen type: %q", s)
	}
	return size, nil
}

// Config of the LCD mirroring the focused knob.
type Config struct {
	Enabled bool
	Size    Size
	Bus     int
	Address uint8
	// Interval is the shortest time between two frames
	Interval    time.Duration
	ExitMessage [4]string
}

// Width falls back to 20 columns when no size is set.
func (c Config) Width() int {
	if c.Size.Columns <= 0 {
		return 20
	}
	return c.Size.Columns
}

func (c Config) FrameInterval() time.Duration {
	if c.Interval <= 0 {
		return time.Second
	}
	return c.Interval
}

// CustomExitMessage reports whether any exit line was configured.
func (c Config) CustomExitMessage() bool {
	for _, v := range c.ExitMessage {
		if v != "" {
			return true
		}
	}
	return false
}
