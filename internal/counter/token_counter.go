package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// the cl100k_base encoding is loaded once per process and shared by every TokenCounter
var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
	encodingErr  error
)

func loadEncoding() (*tiktoken.Tiktoken, error) {
	encodingOnce.Do(func() {
		slog.Debug("Loading cl100k_base encoding")
		encoding, encodingErr = tiktoken.GetEncoding("cl100k_base")
	})
	return encoding, encodingErr
}

// TokenCounter counts cl100k_base tokens. It is safe for concurrent use.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.Mutex
}

// NewTokenCounter creates a TokenCounter, failing when the encoding cannot be loaded.
func NewTokenCounter() (Counter, error) {
	enc, err := loadEncoding()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}
	return &TokenCounter{encoding: enc}, nil
}

// Count returns the number of tokens in text.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.Lock()
	tokens := tc.encoding.Encode(text, nil, nil)
	tc.mu.Unlock()

	slog.Debug("Token count calculated", "textLength", len(text), "tokenCount", len(tokens))
	return len(tokens)
}

// Name returns the name of this counting method (for logging and debugging).
func (tc *TokenCounter) Name() string {
	return "tokens (cl100k_base)"
}
