package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"opalclean-api/res/verify"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// verifier implements the Verifier interface against Cloudflare Turnstile
type verifier struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
	logger     *zap.Logger
}

// siteverifyResponse is Turnstile's response shape
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// New creates a Turnstile-backed verifier
func New(secret string, timeout time.Duration, logger *zap.Logger) verify.Verifier {
	return &verifier{
		secret:     secret,
		verifyURL:  defaultVerifyURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Verify checks a challenge token with Turnstile. Network or API failures are
// returned as-is so callers can distinguish outages from rejected tokens.
func (v *verifier) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("siteverify returned status %d: %s", resp.StatusCode, string(body))
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode siteverify response: %w", err)
	}

	if !result.Success {
		v.logger.Info("turnstile rejected token", zap.Strings("error_codes", result.ErrorCodes))
		return verify.ErrVerificationFailed
	}
	return nil
}
