package pixel

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func collectRGB(t *testing.T, b *Buffer) [][3]float32 {
	t.Helper()
	var out [][3]float32
	if err := b.EachRGB(func(r, g, bl float32) { out = append(out, [3]float32{r, g, bl}) }); err != nil {
		t.Fatalf("EachRGB failed: %v", err)
	}
	return out
}

func TestEachRGB_Normalization(t *testing.T) {
	rgb8, _ := New(RGB8, 1, 1)
	copy(rgb8.Pix8, []uint8{255, 51, 0})

	rgb16, _ := New(RGB16, 1, 1)
	copy(rgb16.Pix16, []uint16{65535, 13107, 0})

	rgbf, _ := New(RGB32F, 1, 1)
	copy(rgbf.Pix32, []float32{1, 0.2, 0})

	for _, b := range []*Buffer{rgb8, rgb16, rgbf} {
		t.Run(b.Format.String(), func(t *testing.T) {
			px := collectRGB(t, b)
			if len(px) != 1 {
				t.Fatalf("visited %d pixels, want 1", len(px))
			}
			if !approx(px[0][0], 1) || !approx(px[0][1], 0.2) || px[0][2] != 0 {
				t.Errorf("got %v, want [1 0.2 0]", px[0])
			}
		})
	}
}

func TestEachRGB_FloatPassThrough(t *testing.T) {
	b, _ := New(RGB32F, 1, 1)
	copy(b.Pix32, []float32{1.5, -0.25, 0.5})

	px := collectRGB(t, b)
	if px[0] != [3]float32{1.5, -0.25, 0.5} {
		t.Errorf("float samples altered: got %v", px[0])
	}
}

func TestEachRGB_AlphaWeighting(t *testing.T) {
	rgba8, _ := New(RGBA8, 2, 1)
	copy(rgba8.Pix8, []uint8{
		255, 255, 255, 0, // transparent white
		200, 100, 50, 255, // opaque
	})

	rgba16, _ := New(RGBA16, 2, 1)
	copy(rgba16.Pix16, []uint16{
		65535, 65535, 65535, 0,
		52428, 26214, 13107, 65535,
	})

	rgbaf, _ := New(RGBA32F, 2, 1)
	copy(rgbaf.Pix32, []float32{
		1, 1, 1, 0,
		0.8, 0.4, 0.2, 1,
	})

	for _, b := range []*Buffer{rgba8, rgba16, rgbaf} {
		t.Run(b.Format.String(), func(t *testing.T) {
			px := collectRGB(t, b)
			if px[0] != [3]float32{0, 0, 0} {
				t.Errorf("transparent pixel: got %v, want zeros", px[0])
			}
			want := [3]float32{0.8, 0.4, 0.2}
			for c := range want {
				if math.Abs(float64(px[1][c]-want[c])) > 0.002 {
					t.Errorf("opaque pixel channel %d: got %v, want %v", c, px[1][c], want[c])
				}
			}
		})
	}
}

func TestEachRGB_HalfAlpha(t *testing.T) {
	b, _ := New(RGBA32F, 1, 1)
	copy(b.Pix32, []float32{0.8, 0.6, 0.4, 0.5})

	px := collectRGB(t, b)
	want := [3]float32{0.4, 0.3, 0.2}
	for c := range want {
		if !approx(px[0][c], want[c]) {
			t.Errorf("channel %d: got %v, want %v", c, px[0][c], want[c])
		}
	}
}

func TestEachLuma(t *testing.T) {
	luma8, _ := New(Luma8, 2, 1)
	copy(luma8.Pix8, []uint8{0, 255})

	lumaA8, _ := New(LumaA8, 2, 1)
	copy(lumaA8.Pix8, []uint8{255, 0, 255, 255})

	luma16, _ := New(Luma16, 2, 1)
	copy(luma16.Pix16, []uint16{0, 65535})

	lumaA16, _ := New(LumaA16, 2, 1)
	copy(lumaA16.Pix16, []uint16{65535, 0, 65535, 65535})

	for _, b := range []*Buffer{luma8, lumaA8, luma16, lumaA16} {
		t.Run(b.Format.String(), func(t *testing.T) {
			var got []float32
			if err := b.EachLuma(func(l float32) { got = append(got, l) }); err != nil {
				t.Fatalf("EachLuma failed: %v", err)
			}
			if len(got) != 2 || got[0] != 0 || got[1] != 1 {
				t.Errorf("got %v, want [0 1]", got)
			}
		})
	}
}

func TestEach_WrongFamily(t *testing.T) {
	gray, _ := New(Luma8, 1, 1)
	if err := gray.EachRGB(func(_, _, _ float32) {}); !errors.Is(err, fault.ErrUnsupportedFormat) {
		t.Errorf("EachRGB on Luma8: expected ErrUnsupportedFormat, got %v", err)
	}

	color, _ := New(RGB8, 1, 1)
	if err := color.EachLuma(func(float32) {}); !errors.Is(err, fault.ErrUnsupportedFormat) {
		t.Errorf("EachLuma on RGB8: expected ErrUnsupportedFormat, got %v", err)
	}

	bogus := &Buffer{Format: Format(42), Width: 1, Height: 1}
	if err := bogus.EachRGB(func(_, _, _ float32) {}); !errors.Is(err, fault.ErrUnsupportedFormat) {
		t.Errorf("EachRGB on invalid format: expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormat_Properties(t *testing.T) {
	tests := []struct {
		f        Format
		channels int
		depth    Depth
		gray     bool
		alpha    bool
	}{
		{Luma8, 1, Depth8, true, false},
		{LumaA8, 2, Depth8, true, true},
		{RGB8, 3, Depth8, false, false},
		{RGBA8, 4, Depth8, false, true},
		{Luma16, 1, Depth16, true, false},
		{LumaA16, 2, Depth16, true, true},
		{RGB16, 3, Depth16, false, false},
		{RGBA16, 4, Depth16, false, true},
		{RGB32F, 3, Depth32F, false, false},
		{RGBA32F, 4, Depth32F, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if !tt.f.Valid() {
				t.Error("format should be valid")
			}
			if tt.f.Channels() != tt.channels {
				t.Errorf("Channels: got %d, want %d", tt.f.Channels(), tt.channels)
			}
			if tt.f.Depth() != tt.depth {
				t.Errorf("Depth: got %d, want %d", tt.f.Depth(), tt.depth)
			}
			if tt.f.Gray() != tt.gray {
				t.Errorf("Gray: got %v, want %v", tt.f.Gray(), tt.gray)
			}
			if tt.f.HasAlpha() != tt.alpha {
				t.Errorf("HasAlpha: got %v, want %v", tt.f.HasAlpha(), tt.alpha)
			}
		})
	}
}
