package pixel

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/mdouchement/hdr"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

// Source samples kept from each decoded pixel, by target layout.
var (
	pickL    = []int{0}
	pickLA   = []int{0, 3}
	pickRGB  = []int{0, 1, 2}
	pickRGBA = []int{0, 1, 2, 3}
)

// FromImage copies a decoded image into a Buffer of the matching Format.
//
// Parameters:
//   - img: a decoded image. Its bounds may start anywhere; the Buffer is
//     always indexed from (0, 0).
//
// Returns:
//   - *Buffer: a tightly packed copy the caller owns exclusively.
//   - error: fault.ErrUnsupportedFormat if the image type has no Format.
//
// # Mapping
//
//   - *image.Gray -> Luma8, *image.Gray16 -> Luma16
//   - *image.NRGBA -> RGBA8, *image.NRGBA64 -> RGBA16
//   - *image.RGBA, *image.RGBA64 -> RGB8/RGB16 when opaque, otherwise
//     RGBA8/RGBA16 with the premultiplication undone
//   - *image.YCbCr, *image.CMYK -> RGB8
//   - *image.Paletted, *image.NYCbCrA -> RGB8 when opaque, otherwise RGBA8
//   - hdr.Image (Radiance HDR) -> RGB32F, linear values unchanged
//
// The image package has no grayscale+alpha type; decoders return those as
// NRGBA, so use FromGrayAlpha when the source is known to be LA.
//
// # Example
//
//	img, _ := imaging.Open("frame.png")
//	buf, err := pixel.FromImage(img)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(buf.Format, buf.Width, buf.Height)
func FromImage(img image.Image) (*Buffer, error) {
	switch src := img.(type) {
	case *image.Gray:
		return pack8(Luma8, src.Rect, src.Pix, src.Stride, 1, pickL)
	case *image.Gray16:
		return pack16(Luma16, src.Rect, src.Pix, src.Stride, 1, pickL)
	case *image.NRGBA:
		return pack8(RGBA8, src.Rect, src.Pix, src.Stride, 4, pickRGBA)
	case *image.NRGBA64:
		return pack16(RGBA16, src.Rect, src.Pix, src.Stride, 4, pickRGBA)
	case *image.RGBA:
		if src.Opaque() {
			return pack8(RGB8, src.Rect, src.Pix, src.Stride, 4, pickRGB)
		}
		n := imaging.Clone(src)
		return pack8(RGBA8, n.Rect, n.Pix, n.Stride, 4, pickRGBA)
	case *image.RGBA64:
		if src.Opaque() {
			return pack16(RGB16, src.Rect, src.Pix, src.Stride, 4, pickRGB)
		}
		n := image.NewNRGBA64(src.Rect)
		draw.Draw(n, n.Rect, src, src.Rect.Min, draw.Src)
		return pack16(RGBA16, n.Rect, n.Pix, n.Stride, 4, pickRGBA)
	case *image.YCbCr:
		n := imaging.Clone(src)
		return pack8(RGB8, n.Rect, n.Pix, n.Stride, 4, pickRGB)
	case *image.CMYK:
		// Adobe CMYK JPEGs decode to this type.
		n := imaging.Clone(src)
		return pack8(RGB8, n.Rect, n.Pix, n.Stride, 4, pickRGB)
	case *image.Paletted:
		return fromClone(src, src.Opaque())
	case *image.NYCbCrA:
		return fromClone(src, src.Opaque())
	case hdr.Image:
		return fromHDR(src)
	default:
		return nil, fmt.Errorf("%w: decoded image type %T", fault.ErrUnsupportedFormat, img)
	}
}

// FromGrayAlpha copies a grayscale+alpha image into a LumaA8 or LumaA16
// Buffer, keeping the first colour sample as luminance.
//
// Go decoders expand LA sources into *image.NRGBA (8-bit) or
// *image.NRGBA64 (16-bit) with R == G == B. Any other image type is
// passed to FromImage unchanged.
func FromGrayAlpha(img image.Image) (*Buffer, error) {
	switch src := img.(type) {
	case *image.NRGBA:
		return pack8(LumaA8, src.Rect, src.Pix, src.Stride, 4, pickLA)
	case *image.NRGBA64:
		return pack16(LumaA16, src.Rect, src.Pix, src.Stride, 4, pickLA)
	default:
		return FromImage(img)
	}
}

func fromClone(img image.Image, opaque bool) (*Buffer, error) {
	n := imaging.Clone(img)
	if opaque {
		return pack8(RGB8, n.Rect, n.Pix, n.Stride, 4, pickRGB)
	}
	return pack8(RGBA8, n.Rect, n.Pix, n.Stride, 4, pickRGBA)
}

// fromHDR copies linear RGB values. Radiance files carry no alpha.
func fromHDR(img hdr.Image) (*Buffer, error) {
	r := img.Bounds()
	b, err := New(RGB32F, r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cr, cg, cb, _ := img.HDRAt(r.Min.X+x, r.Min.Y+y).HDRRGBA()
			o := b.offset(x, y)
			b.Pix32[o], b.Pix32[o+1], b.Pix32[o+2] = float32(cr), float32(cg), float32(cb)
		}
	}
	return b, nil
}

// pack8 copies 8-bit pixels of srcCh samples each, keeping the source
// samples listed in picks. len(picks) must equal f.Channels().
func pack8(f Format, rect image.Rectangle, pix []uint8, stride, srcCh int, picks []int) (*Buffer, error) {
	b, err := New(f, rect.Dx(), rect.Dy())
	if err != nil {
		return nil, err
	}

	ch := f.Channels()
	for y := 0; y < b.Height; y++ {
		src := pix[y*stride : y*stride+b.Width*srcCh]
		dst := b.Pix8[y*b.Stride : (y+1)*b.Stride]
		for x := 0; x < b.Width; x++ {
			for c, s := range picks {
				dst[x*ch+c] = src[x*srcCh+s]
			}
		}
	}
	return b, nil
}

// pack16 is pack8 for big-endian 16-bit samples, as stored by the image package.
func pack16(f Format, rect image.Rectangle, pix []uint8, stride, srcCh int, picks []int) (*Buffer, error) {
	b, err := New(f, rect.Dx(), rect.Dy())
	if err != nil {
		return nil, err
	}

	ch := f.Channels()
	for y := 0; y < b.Height; y++ {
		src := pix[y*stride : y*stride+b.Width*srcCh*2]
		dst := b.Pix16[y*b.Stride : (y+1)*b.Stride]
		for x := 0; x < b.Width; x++ {
			for c, s := range picks {
				i := (x*srcCh + s) * 2
				dst[x*ch+c] = uint16(src[i])<<8 | uint16(src[i+1])
			}
		}
	}
	return b, nil
}
