package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bodul/wordsearch/wordsearch"
)

const wordsPrompt = `Analyze this image and provide 15-25 relevant words that describe objects, colors, themes, emotions, and concepts in the image.
The words should be suitable for a word search puzzle, so prefer single words between 3 and 10 letters long.
Return the result as a JSON array of strings, like ["word1", "word2", "word3"].`

// ErrNoWords is returned when the model's answer yields no usable word.
var ErrNoWords = errors.New("could not derive words from the image")

// WordSource turns an image into candidate puzzle words.
type WordSource interface {
	ExtractWords(ctx context.Context, imageData []byte, mimeType string) ([]string, error)
}

// ExtractWords sends an image to Gemini and returns normalized uppercase words.
func (g *GeminiClient) ExtractWords(ctx context.Context, imageData []byte, mimeType string) ([]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: wordsPrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.4)),
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseWords(resp.Text())
}

// parseWords decodes a JSON array of strings and normalizes it.
func parseWords(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty gemini response", ErrNoWords)
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: parse words JSON: %v\nraw response: %s", ErrNoWords, err, text)
	}

	words := wordsearch.NormalizeWords(raw)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no word of %d+ letters in %d candidates", ErrNoWords, wordsearch.MinWordLength, len(raw))
	}
	return words, nil
}
