package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorizeGrayMatchesLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 6), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	colors, err := Colorize(&buf, 8)
	require.NoError(t, err)
	require.Len(t, colors, 64)

	for i, c := range colors {
		var r, g, b, gray, g2, b2 int
		_, err := fmt.Sscanf(c.Full, "rgb(%d, %d, %d)", &r, &g, &b)
		require.NoError(t, err, c.Full)
		_, err = fmt.Sscanf(c.Gray, "rgb(%d, %d, %d)", &gray, &g2, &b2)
		require.NoError(t, err, c.Gray)

		want := int(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
		assert.Equal(t, want, gray, "cell %d", i)
		assert.Equal(t, gray, g2)
		assert.Equal(t, gray, b2)
	}

	// Red grows left to right.
	var left, right int
	fmt.Sscanf(colors[0].Full, "rgb(%d,", &left)
	fmt.Sscanf(colors[7].Full, "rgb(%d,", &right)
	assert.Less(t, left, right)
}

func TestColorizeErrors(t *testing.T) {
	_, err := Colorize(strings.NewReader("not an image"), 10)
	assert.Error(t, err)

	_, err = Colorize(strings.NewReader(""), 0)
	assert.Error(t, err)

	_, err = Colorize(strings.NewReader(""), maxColorGrid+1)
	assert.Error(t, err)
}
