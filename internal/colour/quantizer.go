// Package colour provides colour quantization and palette types built on the
// k-means clustering engine.
package colour

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/jmylchreest/pigment/internal/cluster"
)

// Quantizer reduces an image's colour palette by clustering its pixels in
// RGB space and repainting each pixel with its cluster's mean colour.
//
// The random source drives k-means++ seeding and must be supplied by the
// caller; a fixed seed makes runs fully reproducible.
type Quantizer struct {
	// MaxIterations caps the refinement loop. Zero means the engine default.
	MaxIterations int

	// Tolerance is the per-centroid convergence bound. Zero means the
	// engine default.
	Tolerance float64

	// MaxSamples limits how many pixels ExtractPalette feeds to the
	// clustering engine. Quantize always uses every pixel so the
	// reconstruction covers the whole image.
	MaxSamples int

	rng *rand.Rand
}

// DefaultMaxSamples is the pixel sampling budget for palette-only extraction.
const DefaultMaxSamples = 5000

// NewQuantizer creates a Quantizer with default settings and the given
// random source.
func NewQuantizer(rng *rand.Rand) *Quantizer {
	return &Quantizer{
		MaxIterations: cluster.DefaultMaxIterations,
		Tolerance:     cluster.DefaultTolerance,
		MaxSamples:    DefaultMaxSamples,
		rng:           rng,
	}
}

// Quantized is the outcome of quantizing one image: the cluster result plus
// enough geometry to rebuild the image.
type Quantized struct {
	bounds image.Rectangle
	result *cluster.Result
}

// Quantize clusters every pixel of img into k colours.
// The alpha channel is dropped; quantization operates purely on RGB.
func (q *Quantizer) Quantize(ctx context.Context, img image.Image, k int) (*Quantized, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", k)
	}
	if k > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", k)
	}

	dataset := pixelDataset(img)
	if len(dataset) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}
	if k > len(dataset) {
		return nil, fmt.Errorf("colour count %d exceeds pixel count %d", k, len(dataset))
	}

	result, err := cluster.Fit(ctx, dataset, q.clusterConfig(k))
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	return &Quantized{
		bounds: img.Bounds(),
		result: result,
	}, nil
}

// ExtractPalette extracts a k-colour palette with relative pixel weights.
// Large images are grid-sampled down to MaxSamples pixels first. When the
// image holds fewer distinct colours than requested, those colours are
// returned as-is without clustering.
func (q *Quantizer) ExtractPalette(ctx context.Context, img image.Image, k int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", k)
	}

	pixels := samplePixels(img, q.MaxSamples)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	unique := uniqueColours(pixels)
	if k >= len(unique) {
		return NewPalette(unique), nil
	}

	dataset := make([]cluster.Point, len(pixels))
	for i, c := range pixels {
		dataset[i] = pointFromColour(c)
	}

	result, err := cluster.Fit(ctx, dataset, q.clusterConfig(k))
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	colors := make([]color.Color, len(result.Centroids))
	for i, c := range result.Centroids {
		colors[i] = roundColour(c)
	}

	weights := make([]float64, k)
	for _, a := range result.Assignment {
		weights[a]++
	}
	total := float64(len(result.Assignment))
	for i := range weights {
		weights[i] /= total
	}

	return NewPaletteWithWeights(colors, weights), nil
}

func (q *Quantizer) clusterConfig(k int) cluster.Config {
	return cluster.Config{
		K:             k,
		MaxIterations: q.MaxIterations,
		Tolerance:     q.Tolerance,
		Rand:          q.rng,
	}
}

// Palette returns the quantized colours with their pixel-share weights.
func (q *Quantized) Palette() *Palette {
	colors := make([]color.Color, len(q.result.Centroids))
	for i, c := range q.result.Centroids {
		colors[i] = roundColour(c)
	}

	weights := make([]float64, len(q.result.Centroids))
	for _, a := range q.result.Assignment {
		weights[a]++
	}
	total := float64(len(q.result.Assignment))
	for i := range weights {
		weights[i] /= total
	}

	return NewPaletteWithWeights(colors, weights)
}

// Assignment maps each pixel index (row-major within the image bounds) to
// its cluster index.
func (q *Quantized) Assignment() []int {
	return q.result.Assignment
}

// Iterations returns how many refinement iterations the clustering ran.
func (q *Quantized) Iterations() int {
	return q.result.Iterations
}

// Converged reports whether the clustering stabilised within tolerance.
func (q *Quantized) Converged() bool {
	return q.result.Converged
}

// Image rebuilds the image with every pixel painted in its cluster's
// rounded centroid colour.
func (q *Quantized) Image() *image.RGBA {
	out := image.NewRGBA(q.bounds)

	colors := make([]color.RGBA, len(q.result.Centroids))
	for i, c := range q.result.Centroids {
		colors[i] = roundColour(c)
	}

	i := 0
	for y := q.bounds.Min.Y; y < q.bounds.Max.Y; y++ {
		for x := q.bounds.Min.X; x < q.bounds.Max.X; x++ {
			out.SetRGBA(x, y, colors[q.result.Assignment[i]])
			i++
		}
	}
	return out
}

// NormalizedCentroids returns the centroids scaled to [0, 1] per channel,
// for visualization consumers that work in unit coordinates.
func (q *Quantized) NormalizedCentroids() []cluster.Point {
	normalized := make([]cluster.Point, len(q.result.Centroids))
	for i, c := range q.result.Centroids {
		n := make(cluster.Point, len(c))
		for d, v := range c {
			n[d] = v / 255.0
		}
		normalized[i] = n
	}
	return normalized
}

// NormalizedPoint returns a colour's RGB coordinates scaled to [0, 1].
func NormalizedPoint(c color.Color) cluster.Point {
	rgb := ToRGB(c)
	return cluster.Point{
		float64(rgb.R) / 255.0,
		float64(rgb.G) / 255.0,
		float64(rgb.B) / 255.0,
	}
}

// pixelDataset converts every pixel to a 3-dimensional RGB point, in
// row-major order.
func pixelDataset(img image.Image) []cluster.Point {
	bounds := img.Bounds()
	dataset := make([]cluster.Point, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dataset = append(dataset, pointFromColour(img.At(x, y)))
		}
	}
	return dataset
}

func pointFromColour(c color.Color) cluster.Point {
	rgb := ToRGB(c)
	return cluster.Point{float64(rgb.R), float64(rgb.G), float64(rgb.B)}
}

// roundColour rounds a float centroid to an opaque 8-bit colour.
func roundColour(p cluster.Point) color.RGBA {
	return color.RGBA{
		R: roundChannel(p[0]),
		G: roundChannel(p[1]),
		B: roundChannel(p[2]),
		A: 255,
	}
}

func roundChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// samplePixels collects pixels from the image, grid-sampling large images
// down to roughly maxSamples for performance.
func samplePixels(img image.Image, maxSamples int) []color.Color {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}

	if totalPixels <= maxSamples {
		pixels := make([]color.Color, 0, totalPixels)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, img.At(x, y))
			}
		}
		return pixels
	}

	// Step over a grid sized to land near the sampling budget.
	step := max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)

	pixels := make([]color.Color, 0, maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, img.At(x, y))
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}

	return pixels
}

// uniqueColours returns the distinct colours among the pixels, in first-seen
// order.
func uniqueColours(pixels []color.Color) []color.Color {
	unique := make([]color.Color, 0, len(pixels))
	seen := make(map[RGB]bool)
	for _, p := range pixels {
		rgb := ToRGB(p)
		if !seen[rgb] {
			unique = append(unique, p)
			seen[rgb] = true
		}
	}
	return unique
}
