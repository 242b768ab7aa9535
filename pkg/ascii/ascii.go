// Package ascii converts an avatar image into ASCII art for the profile
// cards. The image is grayscaled, resized to a character grid, and mapped
// through a 10-step brightness ramp.
package ascii

import (
	"fmt"
	"image"
	"os"
	"strings"

	// Avatar files are PNG or JPEG.
	_ "image/jpeg"
	_ "image/png"

	"github.com/tmih06/profilegen/pkg/logger"
	"golang.org/x/image/draw"
)

var asciiLog = logger.New("ascii:render")

// ramp maps brightness to characters, darkest first.
const ramp = " .:-=+*#%@"

// FromFile renders the image at path as ASCII art with the given character
// grid size.
func FromFile(path string, width, height int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open avatar image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar image %s: %w", path, err)
	}
	asciiLog.Printf("Decoded %s avatar %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return FromImage(img, width, height), nil
}

// FromImage renders img as ASCII art with the given character grid size.
func FromImage(img image.Image, width, height int) []string {
	if width < 1 || height < 1 {
		return nil
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	lines := make([]string, 0, height)
	var row strings.Builder
	for y := 0; y < height; y++ {
		row.Reset()
		for x := 0; x < width; x++ {
			row.WriteByte(charFor(gray.GrayAt(x, y).Y))
		}
		lines = append(lines, row.String())
	}
	return lines
}

// charFor maps a brightness value to its ramp character.
func charFor(brightness uint8) byte {
	idx := int(brightness) * len(ramp) / 256
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
