package pixel

import (
	"bufio"
	"bytes"
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "github.com/mdouchement/hdr/codec/rgbe" // Register Radiance HDR format decoder
	_ "golang.org/x/image/bmp"                 // Register BMP format decoder
	_ "golang.org/x/image/tiff"                // Register TIFF format decoder
	_ "golang.org/x/image/webp"                // Register WebP format decoder

	"github.com/ironsheep/lightness-curve/internal/fault"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngGrayAlpha is the IHDR colour type of grayscale+alpha PNGs.
const pngGrayAlpha = 4

// Load decodes the image at path into a freshly allocated Buffer.
//
// Parameters:
//   - path: file path of a PNG, JPEG, GIF, BMP, TIFF, WebP or Radiance HDR
//     image.
//
// Returns:
//   - *Buffer: the decoded pixels in the Format matching the file's layout
//     (see FromImage). Grayscale+alpha PNGs become LumaA8 or LumaA16 and
//     Radiance files become RGB32F.
//   - error: non-nil if the file cannot be read or has no Format.
//
// EXIF orientation is ignored so pixels are measured as stored.
//
// # Errors
//
//   - fault.ErrDecode if the file cannot be opened or is not a valid image
//   - fault.ErrUnsupportedFormat if the decoded layout has no Format
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fault.ErrDecode, path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	grayAlpha := isGrayAlphaPNG(r)

	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fault.ErrDecode, path, err)
	}

	var buf *Buffer
	if grayAlpha {
		buf, err = FromGrayAlpha(img)
	} else {
		buf, err = FromImage(img)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// isGrayAlphaPNG peeks at the PNG signature and IHDR chunk without
// consuming them. IHDR is always the first chunk: length(4) type(4)
// width(4) height(4) depth(1) colour type(1).
func isGrayAlphaPNG(r *bufio.Reader) bool {
	h, err := r.Peek(26)
	if err != nil {
		return false
	}
	return bytes.Equal(h[:8], pngSignature) &&
		string(h[12:16]) == "IHDR" &&
		h[25] == pngGrayAlpha
}
