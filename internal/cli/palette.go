// Package cli provides the command-line interface for Pigment.
package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/image"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Palette command flags
	paletteColours     int
	paletteFormat      string
	paletteOutput      string
	paletteShowPreview bool
	paletteSeed        int64
	paletteSamples     int
)

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract a colour palette from an image using k-means clustering.

The palette command analyses an image and reports its dominant colours
together with the share of pixels each colour covers. You can control
the number of colours and the output format.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 8 colours (default) from an image
  pigment palette wallpaper.jpg

  # Extract 5 colours with terminal previews
  pigment palette --preview --colours 5 wallpaper.png

  # Extract colours and output as JSON
  pigment palette --format json wallpaper.jpg

  # Reproducible extraction with a fixed seed
  pigment palette --seed 42 wallpaper.jpg

  # Extract from a remote image
  pigment palette https://example.com/wallpaper.png`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().IntVarP(&paletteColours, "colours", "c", 8, "number of colours to extract (1-256)")
	paletteCmd.Flags().StringVarP(&paletteFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	paletteCmd.Flags().StringVarP(&paletteOutput, "output", "o", "", "output file (default: stdout)")
	paletteCmd.Flags().BoolVar(&paletteShowPreview, "preview", false, "show colour previews in terminal")
	paletteCmd.Flags().Int64Var(&paletteSeed, "seed", 0, "random seed for reproducible runs (default: time-based)")
	paletteCmd.Flags().IntVar(&paletteSamples, "sample", colour.DefaultMaxSamples, "pixel sampling budget for large images")
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, args []string) error {
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
	quantizer.MaxSamples = paletteSamples

	logger.Debug("extracting palette", "colours", paletteColours)
	palette, err := quantizer.ExtractPalette(cmd.Context(), img, paletteColours)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	logger.Debug("palette extracted", "colours", palette.Len())

	output, err := formatPalette(palette, paletteFormat, paletteShowPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return writeOutput(output, paletteOutput, logger)
}

// newRunRand builds the run's random source from the named seed flag.
// An unset flag means a time-based seed; the chosen seed is logged so any
// run can be replayed.
func newRunRand(fs *pflag.FlagSet, flag string, logger hclog.Logger) *rand.Rand {
	seed, _ := fs.GetInt64(flag)
	if !fs.Changed(flag) {
		seed = time.Now().UnixNano()
	}
	logger.Debug("random seed", "seed", seed)
	return rand.New(rand.NewSource(seed))
}

// writeOutput writes the formatted output to a file or stdout.
func writeOutput(output, path string, logger hclog.Logger) error {
	if path == "" {
		fmt.Print(output)
		return nil
	}

	logger.Debug("writing output", "path", path)
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview && colour.SupportsANSIColours() {
			output += colour.FormatColourWithPreview(rgb, 8) + "\n"
		} else {
			output += rgb.Hex() + "\n"
		}
	}
	return output
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview && colour.SupportsANSIColours() {
			output += colour.FormatColourWithPreview(rgb, 8) + "  " + rgb.String() + "\n"
		} else {
			output += rgb.String() + "\n"
		}
	}
	return output
}
