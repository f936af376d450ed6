package colour

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

// stripeImage builds a width x height image of equal vertical stripes, one
// per colour.
func stripeImage(colors []color.RGBA, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stripe := width / len(colors)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := colors[min(x/stripe, len(colors)-1)]
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func testQuantizer(seed int64) *Quantizer {
	return NewQuantizer(rand.New(rand.NewSource(seed)))
}

func TestQuantizeTwoColourImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	img := stripeImage([]color.RGBA{red, blue}, 8, 8)

	q, err := testQuantizer(1).Quantize(context.Background(), img, 2)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	if !q.Converged() {
		t.Error("expected clustering to converge")
	}

	palette := q.Palette()
	if palette.Len() != 2 {
		t.Fatalf("Palette has %d colours, want 2", palette.Len())
	}

	// Clusters of identical pixels have exact means, so the quantized image
	// must reproduce the original exactly.
	out := q.Image()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := ToRGB(img.At(x, y))
			got := ToRGB(out.At(x, y))
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	for i, w := range palette.Weights {
		if w != 0.5 {
			t.Errorf("weight[%d] = %g, want 0.5", i, w)
		}
	}
}

func TestQuantizeAssignmentIsTotal(t *testing.T) {
	img := stripeImage([]color.RGBA{
		{R: 200, A: 255}, {G: 180, A: 255}, {B: 220, A: 255}, {R: 90, G: 90, B: 90, A: 255},
	}, 16, 4)

	q, err := testQuantizer(7).Quantize(context.Background(), img, 3)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	assignment := q.Assignment()
	if len(assignment) != 16*4 {
		t.Fatalf("assignment covers %d pixels, want %d", len(assignment), 16*4)
	}
	for i, a := range assignment {
		if a < 0 || a >= 3 {
			t.Fatalf("pixel %d assigned to cluster %d, want [0,3)", i, a)
		}
	}
}

func TestQuantizeDropsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	// Same colour, different alpha: quantization must treat them identically.
	img.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 25, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 100, G: 50, B: 25, A: 255})

	q, err := testQuantizer(3).Quantize(context.Background(), img, 1)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	out := q.Image()
	if got := ToRGB(out.At(0, 0)); got != (RGB{R: 100, G: 50, B: 25}) {
		t.Errorf("quantized pixel = %v, want rgb(100, 50, 25)", got)
	}
	if _, _, _, a := out.At(0, 0).RGBA(); a != 0xffff {
		t.Error("quantized output must be opaque")
	}
}

func TestQuantizeValidation(t *testing.T) {
	img := stripeImage([]color.RGBA{{R: 1, A: 255}}, 2, 2)

	tests := []struct {
		name string
		img  image.Image
		k    int
	}{
		{name: "nil image", img: nil, k: 2},
		{name: "zero colours", img: img, k: 0},
		{name: "too many colours", img: img, k: 300},
		{name: "more colours than pixels", img: img, k: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := testQuantizer(1).Quantize(context.Background(), tt.img, tt.k); err == nil {
				t.Error("Quantize() expected error, got nil")
			}
		})
	}
}

func TestQuantizeDeterministic(t *testing.T) {
	img := stripeImage([]color.RGBA{
		{R: 10, G: 200, B: 30, A: 255}, {R: 240, G: 12, B: 90, A: 255},
		{R: 128, G: 128, B: 128, A: 255}, {R: 33, G: 66, B: 99, A: 255},
	}, 20, 10)

	first, err := testQuantizer(42).Quantize(context.Background(), img, 3)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	second, err := testQuantizer(42).Quantize(context.Background(), img, 3)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	a, b := first.Assignment(), second.Assignment()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("assignment diverged at pixel %d: %d vs %d", i, a[i], b[i])
		}
	}

	pa, pb := first.Palette().ToHex(), second.Palette().ToHex()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("palette diverged at %d: %s vs %s", i, pa[i], pb[i])
		}
	}
}

func TestQuantizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := stripeImage([]color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}}, 4, 4)
	if _, err := testQuantizer(1).Quantize(ctx, img, 2); err == nil {
		t.Error("Quantize() expected cancellation error, got nil")
	}
}

func TestExtractPaletteUniqueShortcut(t *testing.T) {
	img := stripeImage([]color.RGBA{
		{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255},
	}, 9, 3)

	// Fewer distinct colours than requested: return them without clustering.
	palette, err := testQuantizer(1).ExtractPalette(context.Background(), img, 8)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v", err)
	}

	if palette.Len() != 3 {
		t.Errorf("Palette has %d colours, want 3", palette.Len())
	}
}

func TestExtractPaletteWeights(t *testing.T) {
	// Three distinct colours clustered down to two, so the weighted
	// clustering path runs rather than the unique-colour shortcut.
	img := stripeImage([]color.RGBA{
		{R: 250, A: 255}, {R: 245, G: 5, A: 255}, {B: 250, A: 255},
	}, 12, 10)

	palette, err := testQuantizer(5).ExtractPalette(context.Background(), img, 2)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v", err)
	}

	if palette.Len() != 2 {
		t.Fatalf("Palette has %d colours, want 2", palette.Len())
	}

	var total float64
	for _, w := range palette.Weights {
		total += w
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("weights sum to %g, want 1", total)
	}
}

func TestSamplePixels(t *testing.T) {
	small := stripeImage([]color.RGBA{{R: 1, A: 255}}, 10, 10)
	if got := len(samplePixels(small, 1000)); got != 100 {
		t.Errorf("small image sampled %d pixels, want all 100", got)
	}

	large := stripeImage([]color.RGBA{{R: 1, A: 255}}, 200, 200)
	if got := len(samplePixels(large, 1000)); got > 1000 {
		t.Errorf("large image sampled %d pixels, want at most 1000", got)
	}
}

func TestNormalizedCentroids(t *testing.T) {
	img := stripeImage([]color.RGBA{
		{R: 255, G: 255, B: 255, A: 255}, {A: 255},
	}, 4, 2)

	q, err := testQuantizer(9).Quantize(context.Background(), img, 2)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	for i, c := range q.NormalizedCentroids() {
		for d, v := range c {
			if v < 0 || v > 1 {
				t.Errorf("centroid %d channel %d = %g, want [0,1]", i, d, v)
			}
		}
	}
}

func TestNormalizedPoint(t *testing.T) {
	p := NormalizedPoint(color.RGBA{R: 255, G: 0, B: 51, A: 255})
	want := []float64{1, 0, 0.2}
	for d := range want {
		if diff := p[d] - want[d]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("channel %d = %g, want %g", d, p[d], want[d])
		}
	}
}

func TestRoundChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{in: 0, want: 0},
		{in: 127.4, want: 127},
		{in: 127.5, want: 128},
		{in: 255, want: 255},
		{in: 300, want: 255},
		{in: -4, want: 0},
	}

	for _, tt := range tests {
		if got := roundChannel(tt.in); got != tt.want {
			t.Errorf("roundChannel(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
