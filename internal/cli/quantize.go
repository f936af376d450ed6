// Package cli provides the command-line interface for Pigment.
package cli

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/pigment/internal/cluster"
	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/image"
	"github.com/spf13/cobra"
)

var (
	// Quantize command flags
	quantizeColours     int
	quantizeOutput      string
	quantizeMaxIter     int
	quantizeTolerance   float64
	quantizeSeed        int64
	quantizeShowPalette bool
)

// quantizeCmd represents the quantize command
var quantizeCmd = &cobra.Command{
	Use:   "quantize <image>",
	Short: "Reduce an image to a fixed number of colours",
	Long: `Reduce an image's colour palette by clustering its pixels with k-means
and repainting every pixel with its cluster's representative colour.

Every pixel is fed to the clustering engine, so the written image is an
exact reconstruction under the reduced palette.

Supported input formats: JPEG, PNG, GIF, WebP
Output formats: PNG, JPEG (chosen from the output file extension)

Examples:
  # Quantize to 8 colours (default), writing wallpaper-quantized.png
  pigment quantize wallpaper.jpg

  # Quantize to 4 colours with an explicit output path
  pigment quantize -c 4 -o posterized.png wallpaper.jpg

  # Reproducible run with a fixed seed, printing the palette used
  pigment quantize --seed 42 --palette wallpaper.png

  # Trade quality for speed with a smaller iteration budget
  pigment quantize --max-iterations 10 wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runQuantize,
}

func init() {
	quantizeCmd.Flags().IntVarP(&quantizeColours, "colours", "c", 8, "number of colours to quantize to (1-256)")
	quantizeCmd.Flags().StringVarP(&quantizeOutput, "output", "o", "", "output image file (default: <input>-quantized.png)")
	quantizeCmd.Flags().IntVar(&quantizeMaxIter, "max-iterations", cluster.DefaultMaxIterations, "maximum clustering iterations")
	quantizeCmd.Flags().Float64Var(&quantizeTolerance, "tolerance", cluster.DefaultTolerance, "per-centroid convergence tolerance")
	quantizeCmd.Flags().Int64Var(&quantizeSeed, "seed", 0, "random seed for reproducible runs (default: time-based)")
	quantizeCmd.Flags().BoolVar(&quantizeShowPalette, "palette", false, "print the quantized palette to stdout")
}

// runQuantize executes the quantize command.
func runQuantize(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	logger := newLogger(cmd)

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	img, err := image.NewSmartLoader().Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	quantizer := colour.NewQuantizer(newRunRand(cmd.Flags(), "seed", logger))
	quantizer.MaxIterations = quantizeMaxIter
	quantizer.Tolerance = quantizeTolerance

	logger.Debug("quantizing", "colours", quantizeColours,
		"max_iterations", quantizeMaxIter, "tolerance", quantizeTolerance)
	quantized, err := quantizer.Quantize(cmd.Context(), img, quantizeColours)
	if err != nil {
		return fmt.Errorf("failed to quantize image: %w", err)
	}
	logger.Debug("quantization finished",
		"iterations", quantized.Iterations(), "converged", quantized.Converged())

	if !quantized.Converged() {
		logger.Warn("clustering did not converge within the iteration budget; output is usable but may be off-optimum",
			"iterations", quantized.Iterations())
	}

	outputPath := quantizeOutput
	if outputPath == "" {
		outputPath = defaultOutputPath(imagePath)
	}

	if err := image.Save(outputPath, quantized.Image()); err != nil {
		return fmt.Errorf("failed to save quantized image: %w", err)
	}

	fmt.Printf("Wrote %s (%d colours, %d iterations)\n",
		outputPath, quantizeColours, quantized.Iterations())

	if quantizeShowPalette {
		output, err := formatPalette(quantized.Palette(), "hex", true)
		if err != nil {
			return err
		}
		fmt.Print(output)
	}

	return nil
}

// defaultOutputPath derives the output file name from the input path:
// "wallpaper.jpg" becomes "wallpaper-quantized.png". URLs write next to the
// working directory under the remote file's name.
func defaultOutputPath(inputPath string) string {
	if image.IsURL(inputPath) {
		if u, err := url.Parse(inputPath); err == nil {
			base := filepath.Base(u.Path)
			ext := filepath.Ext(base)
			if name := strings.TrimSuffix(base, ext); name != "" && name != "." && name != "/" {
				return name + "-quantized.png"
			}
		}
		return "quantized.png"
	}

	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "-quantized.png"
}
