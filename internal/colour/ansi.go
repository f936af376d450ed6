// Package colour provides colour quantization and palette types built on the
// k-means clustering engine.
package colour

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	block := strings.Repeat(" ", width)

	return bgColour + block + ansiReset
}

// FormatColourWithPreview formats a colour with its preview and hex code.
func FormatColourWithPreview(rgb RGB, width int) string {
	return fmt.Sprintf("%s %s", ColourPreview(rgb, width), rgb.Hex())
}

// SupportsANSIColours reports whether stdout is a terminal that can be
// expected to render ANSI colour codes. Pipes and redirected output get
// plain text.
func SupportsANSIColours() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ColourString returns text coloured with the given foreground colour when
// ANSI output is supported, plain text otherwise.
func ColourString(rgb RGB, text string) string {
	if !SupportsANSIColours() {
		return text
	}

	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	return fgColour + text + ansiReset
}
