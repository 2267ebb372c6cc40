// Package tokens estimates token counts for file contents, for the
// status display and post-generation summary.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator estimates the token count of a piece of text.
type Estimator interface {
	Estimate(text string) int
}

// Simple approximates tokens as bytes/4, which is close enough for
// English text and needs no model data.
type Simple struct{}

// Estimate returns len(text)/4.
func (Simple) Estimate(text string) int {
	return len(text) / 4
}

// Tiktoken counts tokens with the tiktoken library for a specific
// encoding.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktoken creates a Tiktoken estimator for the given encoding name,
// e.g. "cl100k_base".
func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported tiktoken encoding %s: %w", encoding, err)
	}
	return &Tiktoken{encoding: enc}, nil
}

// Estimate returns the exact token count under the configured encoding.
func (t *Tiktoken) Estimate(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// ForName selects an estimator by flag value: "simple" or "tiktoken".
func ForName(name string) (Estimator, error) {
	switch name {
	case "", "simple":
		return Simple{}, nil
	case "tiktoken":
		return NewTiktoken("cl100k_base")
	default:
		return nil, fmt.Errorf("unknown token estimator: %s", name)
	}
}
