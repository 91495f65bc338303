package threatmodel

import (
	"testing"
)

func TestNewTokenCounter_Success(t *testing.T) {
	counter, err := NewTokenCounter()

	if err != nil {
		t.Fatalf("NewTokenCounter() failed: %v", err)
	}
	if counter == nil {
		t.Fatal("NewTokenCounter() returned nil counter")
	}
}

func TestTokenCounter_CountTokens_SimpleText(t *testing.T) {
	counter, err := NewTokenCounter()
	if err != nil {
		t.Fatalf("NewTokenCounter() failed: %v", err)
	}

	text := "Publicly exposed service"
	count := counter.CountTokens(text)

	// A three word phrase lands around 3-5 tokens
	if count < 1 || count > 8 {
		t.Errorf("CountTokens(%q) = %d, expected a small positive count", text, count)
	}
}

func TestTokenCounter_CountTokens_EmptyString(t *testing.T) {
	counter, err := NewTokenCounter()
	if err != nil {
		t.Fatalf("NewTokenCounter() failed: %v", err)
	}

	if count := counter.CountTokens(""); count != 0 {
		t.Errorf("CountTokens(\"\") = %d, expected 0", count)
	}
}

// TestTokenCounter_FallbackApproximation tests the character-based
// estimate used when no encoder is available
func TestTokenCounter_FallbackApproximation(t *testing.T) {
	counter := &TokenCounter{encoder: nil}

	text := "0123456789abcdef"
	if count := counter.CountTokens(text); count != len(text)/4 {
		t.Errorf("CountTokens(%q) = %d, expected %d", text, count, len(text)/4)
	}
}

// TestTokenCounter_NilReceiver tests that a nil counter still estimates
func TestTokenCounter_NilReceiver(t *testing.T) {
	var counter *TokenCounter

	if count := counter.CountTokens("12345678"); count != 2 {
		t.Errorf("CountTokens on nil counter = %d, expected 2", count)
	}
}
