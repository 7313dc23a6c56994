package render

import (
	"fmt"
	"image/color"
	"math"
)

// Palette modes.
const (
	PaletteSolid = "solid"
	PaletteSpeed = "speed"
)

// hueSteps quantises speed hues so the canvas can fill same-coloured particles in one pass.
const hueSteps = 32

// Palette decides the colour of each particle in a frame.
type Palette struct {
	Mode  string
	Solid color.RGBA
}

// ParsePalette returns the palette named by mode ("solid" or "speed").
func ParsePalette(mode string) (Palette, error) {
	switch mode {
	case "", PaletteSolid:
		return Palette{Mode: PaletteSolid, Solid: ParticleColor}, nil
	case PaletteSpeed:
		return Palette{Mode: PaletteSpeed, Solid: ParticleColor}, nil
	}
	return Palette{}, fmt.Errorf("render: unknown palette %q", mode)
}

// NeedsVelocity reports whether Colors reads the velocity arrays.
func (p Palette) NeedsVelocity() bool { return p.Mode == PaletteSpeed }

// Colors returns n colours. In speed mode the slowest particle of the
// frame is blue and the fastest red.
func (p Palette) Colors(n int, vx, vy []float64) []color.RGBA {
	out := make([]color.RGBA, n)
	if p.Mode != PaletteSpeed || len(vx) != n || len(vy) != n {
		for i := range out {
			out[i] = p.Solid
		}
		return out
	}

	speeds := make([]float64, n)
	maxSpeed := 0.0
	for i := range speeds {
		speeds[i] = math.Hypot(vx[i], vy[i])
		maxSpeed = math.Max(maxSpeed, speeds[i])
	}
	for i, s := range speeds {
		t := 0.0
		if maxSpeed > 0 {
			t = s / maxSpeed
		}
		t = math.Round(t*hueSteps) / hueSteps
		r, g, b := hsvToRGB(240*(1-t), 1, 1)
		out[i] = color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
	}
	return out
}

// hsvToRGB converts h in degrees and s, v in [0,1].
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
