package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// maxColorGrid bounds the side of a colour grid.
const maxColorGrid = 64

// CellColor is the colour of one grid cell and its grayscale counterpart,
// formatted as CSS rgb() values.
type CellColor struct {
	Full string `json:"full"`
	Gray string `json:"gray"`
}

// Colorize decodes a JPEG or PNG image and downsamples it to size×size cells.
// Colours are returned row-major.
func Colorize(r io.Reader, size int) ([]CellColor, error) {
	if size < 1 || size > maxColorGrid {
		return nil, fmt.Errorf("grid size must be between 1 and %d, got %d", maxColorGrid, size)
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, errors.New("empty image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	colors := make([]CellColor, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dst.RGBAAt(x, y)
			gray := uint8(math.Round(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)))
			colors = append(colors, CellColor{
				Full: fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B),
				Gray: fmt.Sprintf("rgb(%d, %d, %d)", gray, gray, gray),
			})
		}
	}
	return colors, nil
}
