package main

import (
	"time"

	"github.com/bodul/wordsearch/wordsearch"
)

// PuzzleRecord is a generated puzzle as stored and served by the API.
type PuzzleRecord struct {
	ID         string                `json:"id"`
	Difficulty wordsearch.Difficulty `json:"difficulty"`
	Size       int                   `json:"size"`
	CreatedAt  time.Time             `json:"created_at"`
	*wordsearch.Puzzle
}
