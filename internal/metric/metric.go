// Package metric maps a normalized RGB triple to the scalar a run measures.
package metric

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

// Mode selects the per-pixel formula. The numeric values are the indices
// accepted in configuration files.
type Mode uint8

const (
	Mean Mode = iota // (r+g+b)/3
	HSP              // perceptual luma weighting
	R
	G
	B
	H // hue, 0-1 (0 = red, 1/3 = green, 2/3 = blue)
	S // saturation, 0-1
	V // value, 0-1
)

// HSP luma coefficients.
const (
	hspR = 0.2126729
	hspG = 0.7151522
	hspB = 0.0721750
)

var modeNames = [...]string{
	Mean: "mean",
	HSP:  "hsp",
	R:    "r",
	G:    "g",
	B:    "b",
	H:    "h",
	S:    "s",
	V:    "v",
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

// ParseMode accepts a mode name (case-insensitive) or its index "0" to "7".
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if idx, err := strconv.Atoi(s); err == nil {
		if idx < 0 || idx >= len(modeNames) {
			return 0, fmt.Errorf("%w: mode index %d out of range 0-%d", fault.ErrConfig, idx, len(modeNames)-1)
		}
		return Mode(idx), nil
	}
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", fault.ErrConfig, s)
}

// Func is a per-pixel metric. Inputs are normalized and already weighted by
// alpha; the result is roughly in [0, 1].
type Func func(r, g, b float32) float32

// For returns the formula selected by m.
//
// Inputs and output of the returned Func are normalized to [0, 1] for
// integer sources:
//   - Mean: (r + g + b) / 3
//   - HSP: 0.2126729r + 0.7151522g + 0.0721750b
//   - R, G, B: the channel itself
//   - H: HSV hue divided by 360 (0 for grays)
//   - S: HSV saturation, 0 when the pixel is black
//   - V: HSV value, max(r, g, b)
//
// An m outside Mean..V fails with fault.ErrConfig.
func For(m Mode) (Func, error) {
	switch m {
	case Mean:
		return mean, nil
	case HSP:
		return hsp, nil
	case R:
		return func(r, _, _ float32) float32 { return r }, nil
	case G:
		return func(_, g, _ float32) float32 { return g }, nil
	case B:
		return func(_, _, b float32) float32 { return b }, nil
	case H:
		return hue, nil
	case S:
		return saturation, nil
	case V:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: invalid mode %d", fault.ErrConfig, uint8(m))
	}
}

func mean(r, g, b float32) float32 {
	return (r + g + b) / 3
}

func hsp(r, g, b float32) float32 {
	return hspR*r + hspG*g + hspB*b
}

func hsv(r, g, b float32) (h, s, v float64) {
	return colorful.Color{R: float64(r), G: float64(g), B: float64(b)}.Hsv()
}

// hue is 0 for achromatic pixels; Hsv already wraps negative angles into [0, 360).
func hue(r, g, b float32) float32 {
	h, _, _ := hsv(r, g, b)
	return float32(h / 360)
}

func saturation(r, g, b float32) float32 {
	_, s, _ := hsv(r, g, b)
	return float32(s)
}

func value(r, g, b float32) float32 {
	_, _, v := hsv(r, g, b)
	return float32(v)
}
