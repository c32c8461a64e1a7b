package led

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/realbucksavage/openrgb-go"
	"github.com/stretchr/testify/assert"
)

func TestToLEDs(t *testing.T) {
	red, _ := colorful.Hex("#ff0000")
	white, _ := colorful.Hex("#ffffff")

	tests := []struct {
		name       string
		fills      []colorful.Color
		n, offset  int
		brightness float64
		expected   []openrgb.Color
	}{
		{
			name:       "full brightness",
			fills:      []colorful.Color{red, white},
			n:          3,
			brightness: 1,
			expected:   []openrgb.Color{{Red: 255}, {Red: 255, Green: 255, Blue: 255}, {}},
		},
		{
			name:       "offset drops overflow",
			fills:      []colorful.Color{red, white},
			n:          2,
			offset:     1,
			brightness: 1,
			expected:   []openrgb.Color{{}, {Red: 255}},
		},
		{
			name:       "dimmed",
			fills:      []colorful.Color{white},
			n:          1,
			brightness: 0.5,
			expected:   []openrgb.Color{{Red: 128, Green: 128, Blue: 128}},
		},
		{
			name:       "no leds",
			fills:      []colorful.Color{white},
			n:          0,
			brightness: 1,
			expected:   []openrgb.Color{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToLEDs(tt.fills, tt.n, tt.offset, tt.brightness))
		})
	}
}
