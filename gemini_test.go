package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWords(t *testing.T) {
	words, err := parseWords(`["sunset", "Beach", "palm tree", "sky", "go", "BEACH", "42"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"SUNSET", "BEACH", "PALMTREE", "SKY"}, words)
}

func TestParseWordsErrors(t *testing.T) {
	cases := map[string]string{
		"empty":      "   ",
		"not json":   "Here are some words: sun, sea",
		"wrong type": `{"words": ["sun"]}`,
		"no usable":  `["a", "to", "12"]`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseWords(text)
			assert.True(t, errors.Is(err, ErrNoWords), "got %v", err)
		})
	}
}

func TestNewGeminiClientDisabled(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), &Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestExtractWordsIntegration(t *testing.T) {
	cfg := &Config{
		ProjectID: os.Getenv("GCP_PROJECT_ID"),
		Region:    os.Getenv("GCP_REGION"),
		APIKey:    os.Getenv("GEMINI_API_KEY"),
	}
	if cfg.ProjectID == "" && cfg.APIKey == "" {
		t.Skip("GCP_PROJECT_ID and GEMINI_API_KEY not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, cfg)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	// A sky-blue top over a sandy bottom: a crude beach.
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := color.RGBA{R: 120, G: 180, B: 240, A: 255}
			if y >= 40 {
				c = color.RGBA{R: 230, G: 200, B: 140, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}

	words, err := client.ExtractWords(ctx, buf.Bytes(), "image/png")
	if err != nil {
		t.Fatalf("extract words: %v", err)
	}
	for _, w := range words {
		if len(w) < 3 {
			t.Fatalf("word %q shorter than 3 letters", w)
		}
	}
	t.Logf("Extracted %d words: %v", len(words), words)
}
