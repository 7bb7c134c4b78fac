package types

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is either the base white or a fully saturated hue at 50% lightness.
// The zero value is white.
type Color struct {
	Hue   float64
	Vivid bool
}

// White is the color of a fresh snake.
var White = Color{}

// Hue returns the vivid color for h degrees, wrapped into [0,360).
func Hue(h float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return Color{Hue: h, Vivid: true}
}

// RGB converts the color to 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	if !c.Vivid {
		return 255, 255, 255
	}
	return colorful.Hsl(c.Hue, 1, 0.5).RGB255()
}

func (c Color) String() string {
	if !c.Vivid {
		return "white"
	}
	return fmt.Sprintf("hsl(%.0f, 100%%, 50%%)", c.Hue)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
