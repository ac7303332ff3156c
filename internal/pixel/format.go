package pixel

import "fmt"

// Format identifies the channel layout and sample depth of a Buffer.
type Format uint8

const (
	Luma8 Format = iota + 1
	LumaA8
	RGB8
	RGBA8
	Luma16
	LumaA16
	RGB16
	RGBA16
	RGB32F
	RGBA32F
)

// Depth is the storage type of one sample.
type Depth uint8

const (
	Depth8 Depth = iota + 1
	Depth16
	Depth32F
)

var formatNames = map[Format]string{
	Luma8:   "Luma8",
	LumaA8:  "LumaA8",
	RGB8:    "RGB8",
	RGBA8:   "RGBA8",
	Luma16:  "Luma16",
	LumaA16: "LumaA16",
	RGB16:   "RGB16",
	RGBA16:  "RGBA16",
	RGB32F:  "RGB32F",
	RGBA32F: "RGBA32F",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Valid reports whether f is one of the ten supported formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// Channels returns the number of samples per pixel.
func (f Format) Channels() int {
	switch f {
	case Luma8, Luma16:
		return 1
	case LumaA8, LumaA16:
		return 2
	case RGB8, RGB16, RGB32F:
		return 3
	case RGBA8, RGBA16, RGBA32F:
		return 4
	}
	return 0
}

// Depth returns the sample storage type.
func (f Format) Depth() Depth {
	switch f {
	case Luma8, LumaA8, RGB8, RGBA8:
		return Depth8
	case Luma16, LumaA16, RGB16, RGBA16:
		return Depth16
	case RGB32F, RGBA32F:
		return Depth32F
	}
	return 0
}

// Gray reports whether f is a luminance layout (with or without alpha).
func (f Format) Gray() bool {
	switch f {
	case Luma8, LumaA8, Luma16, LumaA16:
		return true
	}
	return false
}

// HasAlpha reports whether f carries an alpha channel.
func (f Format) HasAlpha() bool {
	switch f {
	case LumaA8, LumaA16, RGBA8, RGBA16, RGBA32F:
		return true
	}
	return false
}
