package threatmodel

import (
	tiktoken "github.com/pkoukk/tiktoken-go"
)

// TokenCounter measures text size in model tokens for budgeting agent
// responses
type TokenCounter struct {
	encoder *tiktoken.Tiktoken
}

// NewTokenCounter creates a counter backed by the cl100k_base encoding.
// On encoder initialization failure the counter is still usable and
// falls back to approximation.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return &TokenCounter{encoder: nil}, err
	}
	return &TokenCounter{encoder: enc}, nil
}

// CountTokens returns the token count of text, approximating with
// character count / 4 when no encoder is available
func (tc *TokenCounter) CountTokens(text string) int {
	if tc == nil || tc.encoder == nil {
		return len(text) / 4
	}
	return len(tc.encoder.Encode(text, nil, nil))
}
