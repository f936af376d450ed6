// Pigment - a colour quantizer for images
//
// Pigment reduces an image's colour palette by clustering similar pixel
// colours with k-means and repainting each pixel with its cluster's
// representative colour.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/pigment/internal/cli"
)

func main() {
	cli.Execute()
}
