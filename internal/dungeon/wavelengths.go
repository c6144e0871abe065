package dungeon

import (
	"fmt"
	"math"
)

// computeWavelengths samples the smooth scalar style-biasing fields
// described in §4.3 step 1: sums of sinusoids of (cx,cy) with fixed
// frequencies, folded into [0,1], and a pure function of (cx,cy) alone (no
// RNG — the whole point is that neighboring chunks vary smoothly rather
// than jump randomly).
func computeWavelengths(cx, cy int) Wavelengths {
	x, y := float64(cx), float64(cy)
	return Wavelengths{
		Alpha:            fold(sinField(x, y, 0.071, 0.053, 0.0), sinField(x, y, 0.017, 0.029, 1.7)),
		Beta:             fold(sinField(x, y, 0.043, 0.061, 0.9), sinField(x, y, 0.011, 0.037, 2.4)),
		SpatialVariation: fold(sinField(x, y, 0.029, 0.019, 3.1), sinField(x, y, 0.005, 0.013, 0.4)),
	}
}

// sinField is one term of a 2D sinusoid field at fixed frequency and phase.
func sinField(x, y, freqX, freqY, phase float64) float64 {
	return math.Sin(x*freqX+y*freqY + phase)
}

// fold combines two sinusoid terms into a stable [0,1] scalar.
func fold(a, b float64) float64 {
	v := (a + b) / 2
	return (v + 1) / 2
}

// DescribeWavelengths renders the wavelengths as the debug "wavelengths"
// string list from §6.1 — one short description per field.
func DescribeWavelengths(w Wavelengths) []string {
	return []string{
		formatWavelength("alpha", w.Alpha),
		formatWavelength("beta", w.Beta),
		formatWavelength("spatial_variation", w.SpatialVariation),
	}
}

func formatWavelength(name string, v float64) string {
	return fmt.Sprintf("%s=%.3f", name, v)
}
