package pixel

import (
	"fmt"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

// Buffer is one decoded image in a single Format.
//
// Exactly one of Pix8, Pix16 or Pix32 is populated, chosen by the format's
// depth. Samples are interleaved per pixel in channel order (L, LA, RGB or
// RGBA) and rows start Stride samples apart.
type Buffer struct {
	Format Format
	Width  int
	Height int

	// Stride is the number of samples between the starts of adjacent rows.
	Stride int

	Pix8  []uint8
	Pix16 []uint16
	Pix32 []float32
}

// New allocates a zeroed, tightly packed buffer.
func New(f Format, width, height int) (*Buffer, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %v", fault.ErrUnsupportedFormat, f)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid buffer size %dx%d", width, height)
	}

	stride := width * f.Channels()
	b := &Buffer{Format: f, Width: width, Height: height, Stride: stride}
	switch f.Depth() {
	case Depth8:
		b.Pix8 = make([]uint8, stride*height)
	case Depth16:
		b.Pix16 = make([]uint16, stride*height)
	case Depth32F:
		b.Pix32 = make([]float32, stride*height)
	}
	return b, nil
}

// Len returns the number of pixels in the buffer.
func (b *Buffer) Len() int {
	return b.Width * b.Height
}

// offset returns the index of the first sample of pixel (x, y).
func (b *Buffer) offset(x, y int) int {
	return y*b.Stride + x*b.Format.Channels()
}

// Rect is a region of interest: its top-left pixel and its size.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Crop returns the part of b covered by r. A nil r returns b itself.
//
// The result is a view sharing b's samples and keeping its format. The
// region must lie inside the buffer and cover at least one pixel.
func (b *Buffer) Crop(r *Rect) (*Buffer, error) {
	if r == nil {
		return b, nil
	}

	// Compared without adding so huge origins cannot wrap around.
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 ||
		r.X > b.Width || r.Width > b.Width-r.X ||
		r.Y > b.Height || r.Height > b.Height-r.Y {
		return nil, fmt.Errorf("%w: region %v outside image bounds %dx%d",
			fault.ErrROI, r, b.Width, b.Height)
	}
	if r.Width == 0 || r.Height == 0 {
		return nil, fmt.Errorf("%w: region %v contains no pixels", fault.ErrROI, r)
	}

	view := *b
	view.Width = r.Width
	view.Height = r.Height

	start := b.offset(r.X, r.Y)
	switch b.Format.Depth() {
	case Depth8:
		view.Pix8 = b.Pix8[start:]
	case Depth16:
		view.Pix16 = b.Pix16[start:]
	case Depth32F:
		view.Pix32 = b.Pix32[start:]
	default:
		return nil, fmt.Errorf("%w: %v", fault.ErrUnsupportedFormat, b.Format)
	}
	return &view, nil
}
