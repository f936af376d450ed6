package cli

import (
	"image/color"
	"strings"
	"testing"

	"github.com/jmylchreest/pigment/internal/colour"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "jpg input",
			input: "wallpaper.jpg",
			want:  "wallpaper-quantized.png",
		},
		{
			name:  "png input with directory",
			input: "/home/user/pics/photo.png",
			want:  "/home/user/pics/photo-quantized.png",
		},
		{
			name:  "no extension",
			input: "image",
			want:  "image-quantized.png",
		},
		{
			name:  "url input",
			input: "https://example.com/images/wall.png",
			want:  "wall-quantized.png",
		},
		{
			name:  "url without file name",
			input: "https://example.com/",
			want:  "quantized.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutputPath(tt.input); got != tt.want {
				t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPalette(t *testing.T) {
	palette := colour.NewPalette([]color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 0, B: 255, A: 255},
	})

	t.Run("hex", func(t *testing.T) {
		got, err := formatPalette(palette, "hex", false)
		if err != nil {
			t.Fatalf("formatPalette() error = %v", err)
		}
		if got != "#ff0000\n#0000ff\n" {
			t.Errorf("formatPalette() = %q", got)
		}
	})

	t.Run("rgb", func(t *testing.T) {
		got, err := formatPalette(palette, "rgb", false)
		if err != nil {
			t.Fatalf("formatPalette() error = %v", err)
		}
		if got != "rgb(255, 0, 0)\nrgb(0, 0, 255)\n" {
			t.Errorf("formatPalette() = %q", got)
		}
	})

	t.Run("json", func(t *testing.T) {
		got, err := formatPalette(palette, "json", false)
		if err != nil {
			t.Fatalf("formatPalette() error = %v", err)
		}
		if !strings.Contains(got, `"count": 2`) || !strings.Contains(got, `"#ff0000"`) {
			t.Errorf("formatPalette() json output missing fields: %q", got)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if _, err := formatPalette(palette, "yaml", false); err == nil {
			t.Error("formatPalette() expected error for unsupported format")
		}
	})
}
