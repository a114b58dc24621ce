package sidemail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"opalclean-api/res/mail"
	"opalclean-api/res/store"
)

// SidemailService implements the MailService interface using Sidemail API
type SidemailService struct {
	apiKey      string
	apiBaseURL  string
	fromAddress string
	adminInbox  string
	logger      *zap.Logger
	httpClient  *http.Client
}

// New creates a new Sidemail service instance
func New(apiKey, apiURL, fromAddress, adminInbox string, timeout time.Duration, logger *zap.Logger) mail.MailService {
	return &SidemailService{
		apiKey:      apiKey,
		apiBaseURL:  apiURL,
		fromAddress: fromAddress,
		adminInbox:  adminInbox,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// SidemailEmailPayload represents the payload for sending templated email via Sidemail API
type SidemailEmailPayload struct {
	FromAddress   string            `json:"fromAddress"`
	ToAddress     string            `json:"toAddress"`
	TemplateName  string            `json:"templateName"`
	TemplateProps map[string]string `json:"templateProps,omitempty"`
}

// SidemailEmailResponse represents the response from the Sidemail email API
type SidemailEmailResponse struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SendBookingConfirmation sends the booking confirmation to the customer.
// If no API key is configured, this method returns nil (graceful degradation).
func (s *SidemailService) SendBookingConfirmation(ctx context.Context, quote *store.Quote) error {
	if s.apiKey == "" {
		s.logger.Info("Sidemail API key not configured, skipping booking confirmation")
		return nil
	}

	if err := s.validateEmail(quote.Email); err != nil {
		return fmt.Errorf("booking confirmation failed: %w", err)
	}

	payload := SidemailEmailPayload{
		FromAddress:   s.fromAddress,
		ToAddress:     s.sanitizeInput(quote.Email),
		TemplateName:  "booking-confirmation",
		TemplateProps: s.bookingProps(quote),
	}

	return s.sendEmail(ctx, payload, fmt.Sprintf("booking confirmation for %s", quote.ID))
}

// SendAdminCopy sends a copy of the booking to the office inbox.
// If no API key or admin inbox is configured, this method returns nil.
func (s *SidemailService) SendAdminCopy(ctx context.Context, quote *store.Quote) error {
	if s.apiKey == "" || s.adminInbox == "" {
		s.logger.Info("Sidemail admin inbox not configured, skipping admin copy")
		return nil
	}

	payload := SidemailEmailPayload{
		FromAddress:   s.fromAddress,
		ToAddress:     s.adminInbox,
		TemplateName:  "booking-admin-copy",
		TemplateProps: s.bookingProps(quote),
	}

	return s.sendEmail(ctx, payload, fmt.Sprintf("admin copy for %s", quote.ID))
}

// bookingProps flattens a quote into template properties
func (s *SidemailService) bookingProps(quote *store.Quote) map[string]string {
	scheduled := quote.PreferredDate
	if quote.SameDay {
		scheduled = "same-day"
	}
	return map[string]string{
		"bookingId":     quote.ID,
		"customerName":  s.sanitizeInput(quote.FirstName + " " + quote.LastName),
		"service":       quote.ServiceID,
		"address":       s.sanitizeInput(fmt.Sprintf("%s, %s %s", quote.Address, quote.Suburb, quote.Postcode)),
		"scheduledDate": scheduled,
		"scheduledTime": s.sanitizeInput(quote.PreferredTime),
		"total":         formatCents(quote.TotalPrice),
		"savings":       formatCents(quote.Savings),
	}
}

// sendEmail posts a templated email to Sidemail, retrying transient failures
// with exponential backoff. Delivery problems never fail the booking itself;
// callers decide whether to log or propagate.
func (s *SidemailService) sendEmail(ctx context.Context, payload SidemailEmailPayload, operation string) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)

	return backoff.Retry(func() error {
		url := fmt.Sprintf("%s/email", s.apiBaseURL)
		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("error creating request: %w", err))
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.apiKey)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("error sending request: %w", err)
		}
		defer resp.Body.Close()

		return s.handleSidemailResponse(resp, operation)
	}, retryPolicy)
}

// handleSidemailResponse handles and validates responses from the Sidemail email API
func (s *SidemailService) handleSidemailResponse(resp *http.Response, operation string) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	var response SidemailEmailResponse
	if err := json.Unmarshal(body, &response); err != nil {
		s.logger.Warn("could not parse Sidemail response", zap.Error(err), zap.String("operation", operation))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := fmt.Errorf("sidemail API returned status %d: %s", resp.StatusCode, s.sanitizeResponseBody(string(body)))
		// Client errors will not improve on retry
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	s.logger.Info("email sent", zap.String("operation", operation), zap.String("status", response.Status))
	return nil
}

// validateEmail validates an email address format using Go's built-in mail parser.
// Returns an error if the email address is malformed or empty.
func (s *SidemailService) validateEmail(email string) error {
	_, err := netmail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	return nil
}

// sanitizeInput sanitizes user input to prevent injection attacks by removing
// control characters, null bytes, and trimming whitespace.
func (s *SidemailService) sanitizeInput(input string) string {
	cleaned := strings.ReplaceAll(input, "\x00", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\n", "")
	return strings.TrimSpace(cleaned)
}

// sanitizeResponseBody sanitizes response body for safe inclusion in error messages
func (s *SidemailService) sanitizeResponseBody(body string) string {
	const maxLength = 200
	sanitized := s.sanitizeInput(body)

	if len(sanitized) > maxLength {
		return sanitized[:maxLength] + "..."
	}
	return sanitized
}

// formatCents renders an integer cent amount as dollars for email templates
func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
