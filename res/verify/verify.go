package verify

import (
	"context"
	"errors"
)

// ErrVerificationFailed means the challenge token did not pass; the caller
// should surface a retryable error, not a crash.
var ErrVerificationFailed = errors.New("verify: human verification failed")

// Verifier is the bot-verification collaborator checked once at submit time.
// A nil Verifier disables the check.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}
