package wordsearch

import (
	"fmt"
	"strings"
)

// Difficulty names a size/word-count tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
)

// Tier maps a difficulty to a grid size and an accepted word-count range.
type Tier struct {
	Size      int  `json:"size" yaml:"size"`
	MinWords  int  `json:"min_words" yaml:"min_words"`
	MaxWords  int  `json:"max_words" yaml:"max_words"`
	Diagonals bool `json:"diagonals" yaml:"diagonals"`
}

// Tiers is the difficulty policy, keyed by difficulty.
type Tiers map[Difficulty]Tier

// DefaultTiers returns the stock policy: easy is 10×10 with 5-10 straight
// words, medium is 15×15 with 10-20 words and diagonals.
func DefaultTiers() Tiers {
	return Tiers{
		Easy:   {Size: 10, MinWords: 5, MaxWords: 10},
		Medium: {Size: 15, MinWords: 10, MaxWords: 20, Diagonals: true},
	}
}

// Lookup returns the tier for d, matched case-insensitively.
func (t Tiers) Lookup(d Difficulty) (Tier, bool) {
	tier, ok := t[Difficulty(strings.ToLower(string(d)))]
	return tier, ok
}

// Validate checks every tier for a usable size and range.
func (t Tiers) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("no difficulty tiers defined")
	}
	for d, tier := range t {
		if tier.Size < 1 {
			return fmt.Errorf("tier %s: size must be at least 1, got %d", d, tier.Size)
		}
		if tier.MinWords < 1 || tier.MaxWords < tier.MinWords {
			return fmt.Errorf("tier %s: invalid word range %d-%d", d, tier.MinWords, tier.MaxWords)
		}
	}
	return nil
}

// CheckCount returns nil when n words fit the tier, otherwise an error
// telling the player how many words to add or remove.
func (t Tier) CheckCount(n int) error {
	switch {
	case n < t.MinWords:
		return fmt.Errorf("add %d more %s", t.MinWords-n, plural(t.MinWords-n))
	case n > t.MaxWords:
		return fmt.Errorf("remove %d %s", n-t.MaxWords, plural(n-t.MaxWords))
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "word"
	}
	return "words"
}
