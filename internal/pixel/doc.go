// Package pixel holds decoded images in one of a closed set of sample layouts
// and walks them as normalized channel values.
//
// # Formats
//
// A Buffer is tagged by exactly one Format, the product of a channel layout
// (luminance, luminance+alpha, RGB, RGBA) and a sample depth (8-bit, 16-bit,
// 32-bit float). Ten combinations are supported:
//
//   - Luma8, LumaA8, RGB8, RGBA8
//   - Luma16, LumaA16, RGB16, RGBA16
//   - RGB32F, RGBA32F
//
// Decoded Go images are mapped onto this set once, by FromImage (or
// FromGrayAlpha for grayscale+alpha sources). Anything that does not map
// (bare alpha masks, uniform images, ...) fails with
// fault.ErrUnsupportedFormat.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. A Rect
// names its top-left pixel and its size; the covered pixels are
// [X, X+Width) by [Y, Y+Height).
//
// # Normalization
//
// 8-bit samples are divided by 255, 16-bit samples by 65535, and float
// samples are passed through unchanged. When the layout carries alpha,
// every colour or luminance channel is multiplied by the normalized alpha
// before it is handed to the caller, so a fully transparent pixel always
// reads as zero.
//
// # Ownership
//
// Buffers returned by FromImage and Load own their samples. Crop returns a
// view sharing them; neither the view nor the parent is modified by the
// iteration methods.
package pixel
