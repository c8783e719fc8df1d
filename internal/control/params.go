// Package control owns the user tweakable parameters and the inputs that change them.
package control

import "github.com/go-gl/mathgl/mgl32"

const (
	MinTessellations = 0
	MaxTessellations = 8

	MinGradientType = 0
	MaxGradientType = 7

	MinSwayLevel = 0.0
	MaxSwayLevel = 1.0

	MinFrameThreshold = 0.1
	MaxFrameThreshold = 1.0

	// Step used by keyboard and slider style adjustments of the float params.
	FloatStep = 0.01
)

// Params is one consistent set of per-frame parameters.
type Params struct {
	Tessellations  int     `toml:"tessellations"`
	BaseColor      [3]int  `toml:"base_color"`
	GradientType   int     `toml:"gradient_type"`
	SwayLevel      float32 `toml:"sway_level"`
	FrameThreshold float32 `toml:"frame_threshold"`
}

func Defaults() Params {
	return Params{
		Tessellations:  5,
		BaseColor:      [3]int{51, 51, 51},
		GradientType:   6,
		SwayLevel:      0.15,
		FrameThreshold: 0.5,
	}
}

// Normalize clamps every field into its valid range.
func (p Params) Normalize() Params {
	p.Tessellations = clampInt(p.Tessellations, MinTessellations, MaxTessellations)
	for i := range p.BaseColor {
		p.BaseColor[i] = clampInt(p.BaseColor[i], 0, 255)
	}
	p.GradientType = clampInt(p.GradientType, MinGradientType, MaxGradientType)
	p.SwayLevel = mgl32.Clamp(p.SwayLevel, MinSwayLevel, MaxSwayLevel)
	p.FrameThreshold = mgl32.Clamp(p.FrameThreshold, MinFrameThreshold, MaxFrameThreshold)
	return p
}

// ColorVec converts 0-255 channels into a 0-1 RGBA vector with full opacity.
func ColorVec(c [3]int) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
		1,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
