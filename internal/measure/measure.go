// Package measure reduces one pixel buffer to the mean of a metric.
package measure

import (
	"fmt"

	"github.com/ironsheep/lightness-curve/internal/fault"
	"github.com/ironsheep/lightness-curve/internal/metric"
	"github.com/ironsheep/lightness-curve/internal/pixel"
)

// Mean returns the arithmetic mean of mode's metric over every pixel of buf.
//
// Parameters:
//   - buf: the pixels to aggregate, usually already cropped to the ROI.
//   - mode: the per-pixel metric. Luminance buffers (Luma*, LumaA*) ignore
//     it and average the alpha-weighted luminance itself.
//
// Returns:
//   - float32: the mean, in [0, 1] for integer formats. Float formats are
//     averaged unchanged and may exceed 1.
//   - error: non-nil if mode is invalid or buf holds no pixels.
//
// The sum is accumulated in float32 in row-major order, so very large
// buffers carry the usual single-precision summation error.
//
// # Errors
//
//   - fault.ErrConfig if mode is not one of the eight defined modes
//   - fault.ErrROI if buf has zero width or height (never NaN)
//
// # Example
//
//	roi, err := buf.Crop(&pixel.Rect{X: 10, Y: 10, Width: 64, Height: 64})
//	if err != nil {
//	    return err
//	}
//	v, err := measure.Mean(roi, metric.HSP)
func Mean(buf *pixel.Buffer, mode metric.Mode) (float32, error) {
	fn, err := metric.For(mode)
	if err != nil {
		return 0, err
	}

	n := buf.Len()
	if n == 0 {
		return 0, fmt.Errorf("%w: no pixels to aggregate in %dx%d buffer", fault.ErrROI, buf.Width, buf.Height)
	}

	var sum float32
	if buf.Format.Gray() {
		err = buf.EachLuma(func(l float32) { sum += l })
	} else {
		err = buf.EachRGB(func(r, g, b float32) { sum += fn(r, g, b) })
	}
	if err != nil {
		return 0, err
	}
	return sum / float32(n), nil
}
