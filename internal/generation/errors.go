package generation

import (
	"errors"
	"fmt"
)

// QuotaMessage is shown to users once retries are exhausted.
const QuotaMessage = "Limite de cota excedido. Para uso ilimitado, configure sua própria chave API nas configurações."

// Sentinel errors for text generation.
var (
	ErrQuotaExceeded = errors.New(QuotaMessage)
	ErrNoAPIKey      = errors.New("generation API key not configured")
	ErrGeneration    = errors.New("text generation failed")
	ErrInvalidStage  = errors.New("lesson stage must be between 1 and 5")
)

// RateLimitedError is a retryable quota or rate-limit rejection.
type RateLimitedError struct {
	StatusCode int
	Err        error
}

func (e *RateLimitedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rate limited (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitedError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err is worth retrying after a backoff.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}
