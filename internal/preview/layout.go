package preview

import (
	"math"
	"strconv"
)

// breakpoints map minimum viewport widths to the share of the viewport a
// sized preview takes.
var breakpoints = []struct {
	minWidth int
	scale    float64
}{
	{1200, 0.5},
	{992, 0.6},
	{768, 0.7},
	{576, 0.8},
}

// Scale returns the layout scale factor for a viewport width.
func Scale(width int) float64 {
	for _, bp := range breakpoints {
		if width >= bp.minWidth {
			return bp.scale
		}
	}
	return 1.0
}

// SizedStyle lays out content of the given aspect ratio (width/height)
// inside vp. Landscape content is sized by width, portrait by height.
func SizedStyle(ratio float64, vp Viewport) Style {
	scale := Scale(vp.Width)

	var width, height float64
	if ratio >= 1 {
		width = math.Round(float64(vp.Width) * scale)
		height = width / ratio
	} else {
		heightScale := math.Min(scale*1.4, 1.0)
		height = math.Round(float64(vp.Height) * heightScale)
		width = height * ratio
	}

	return Style{
		"display": "flex",
		"width":   px(width),
		"height":  px(height),
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ValidRatio reports whether ratio can drive a layout.
func ValidRatio(ratio float64) bool {
	return ratio > 0 && !math.IsInf(ratio, 0) && !math.IsNaN(ratio)
}
