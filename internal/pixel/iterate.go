package pixel

import (
	"fmt"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

const (
	max8  = 255.0
	max16 = 65535.0
)

// EachLuma calls fn with the normalized, alpha-weighted luminance of every
// pixel in row-major order. It fails for colour formats.
func (b *Buffer) EachLuma(fn func(l float32)) error {
	switch b.Format {
	case Luma8:
		for y := 0; y < b.Height; y++ {
			row := b.Pix8[y*b.Stride : y*b.Stride+b.Width]
			for _, l := range row {
				fn(float32(l) / max8)
			}
		}
	case LumaA8:
		for y := 0; y < b.Height; y++ {
			row := b.Pix8[y*b.Stride : y*b.Stride+b.Width*2]
			for i := 0; i < len(row); i += 2 {
				fn(float32(row[i]) / max8 * (float32(row[i+1]) / max8))
			}
		}
	case Luma16:
		for y := 0; y < b.Height; y++ {
			row := b.Pix16[y*b.Stride : y*b.Stride+b.Width]
			for _, l := range row {
				fn(float32(l) / max16)
			}
		}
	case LumaA16:
		for y := 0; y < b.Height; y++ {
			row := b.Pix16[y*b.Stride : y*b.Stride+b.Width*2]
			for i := 0; i < len(row); i += 2 {
				fn(float32(row[i]) / max16 * (float32(row[i+1]) / max16))
			}
		}
	case RGB8, RGBA8, RGB16, RGBA16, RGB32F, RGBA32F:
		return fmt.Errorf("%w: %v has no luminance channel", fault.ErrUnsupportedFormat, b.Format)
	default:
		return fmt.Errorf("%w: %v", fault.ErrUnsupportedFormat, b.Format)
	}
	return nil
}

// EachRGB calls fn with the normalized, alpha-weighted (r, g, b) of every
// pixel in row-major order. It fails for luminance formats.
func (b *Buffer) EachRGB(fn func(r, g, b float32)) error {
	switch b.Format {
	case RGB8:
		for y := 0; y < b.Height; y++ {
			row := b.Pix8[y*b.Stride : y*b.Stride+b.Width*3]
			for i := 0; i < len(row); i += 3 {
				fn(float32(row[i])/max8, float32(row[i+1])/max8, float32(row[i+2])/max8)
			}
		}
	case RGBA8:
		for y := 0; y < b.Height; y++ {
			row := b.Pix8[y*b.Stride : y*b.Stride+b.Width*4]
			for i := 0; i < len(row); i += 4 {
				a := float32(row[i+3]) / max8
				fn(float32(row[i])/max8*a, float32(row[i+1])/max8*a, float32(row[i+2])/max8*a)
			}
		}
	case RGB16:
		for y := 0; y < b.Height; y++ {
			row := b.Pix16[y*b.Stride : y*b.Stride+b.Width*3]
			for i := 0; i < len(row); i += 3 {
				fn(float32(row[i])/max16, float32(row[i+1])/max16, float32(row[i+2])/max16)
			}
		}
	case RGBA16:
		for y := 0; y < b.Height; y++ {
			row := b.Pix16[y*b.Stride : y*b.Stride+b.Width*4]
			for i := 0; i < len(row); i += 4 {
				a := float32(row[i+3]) / max16
				fn(float32(row[i])/max16*a, float32(row[i+1])/max16*a, float32(row[i+2])/max16*a)
			}
		}
	case RGB32F:
		for y := 0; y < b.Height; y++ {
			row := b.Pix32[y*b.Stride : y*b.Stride+b.Width*3]
			for i := 0; i < len(row); i += 3 {
				fn(row[i], row[i+1], row[i+2])
			}
		}
	case RGBA32F:
		for y := 0; y < b.Height; y++ {
			row := b.Pix32[y*b.Stride : y*b.Stride+b.Width*4]
			for i := 0; i < len(row); i += 4 {
				a := row[i+3]
				fn(row[i]*a, row[i+1]*a, row[i+2]*a)
			}
		}
	case Luma8, LumaA8, Luma16, LumaA16:
		return fmt.Errorf("%w: %v has no colour channels", fault.ErrUnsupportedFormat, b.Format)
	default:
		return fmt.Errorf("%w: %v", fault.ErrUnsupportedFormat, b.Format)
	}
	return nil
}
