package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"opalclean-api/res/notification"
	"opalclean-api/res/store"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// slackMessage represents the structure of a Slack message
type slackMessage struct {
	Text string `json:"text"`
}

// New creates a new NotificationService instance
func New(webhookURL string, timeout time.Duration, logger *zap.Logger) notification.NotificationService {
	return &notificationService{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// NotifyNewBooking sends a notification to Slack when a booking is submitted
func (s *notificationService) NotifyNewBooking(ctx context.Context, quote *store.Quote) error {
	// If webhook URL is not configured, skip notification silently
	if s.webhookURL == "" {
		s.logger.Info("Slack webhook URL not configured, skipping notification")
		return nil
	}

	scheduled := quote.PreferredDate
	if quote.SameDay {
		scheduled = "SAME DAY"
	}
	message := slackMessage{
		Text: fmt.Sprintf(":sparkles: New booking %s: %s, %d bed, %s %s, %s %s, total $%d.%02d",
			quote.ID, quote.ServiceID, quote.Bedrooms, quote.Suburb, quote.Postcode,
			scheduled, quote.PreferredTime, quote.TotalPrice/100, quote.TotalPrice%100),
	}

	return s.sendToSlack(ctx, message)
}

// NotifyBookingCancelled sends a notification to Slack when a booking is cancelled
func (s *notificationService) NotifyBookingCancelled(ctx context.Context, quote *store.Quote) error {
	// If webhook URL is not configured, skip notification silently
	if s.webhookURL == "" {
		s.logger.Info("Slack webhook URL not configured, skipping notification")
		return nil
	}

	message := slackMessage{
		Text: fmt.Sprintf(":x: Booking cancelled: %s (%s %s, %s)",
			quote.ID, quote.FirstName, quote.LastName, quote.Suburb),
	}

	return s.sendToSlack(ctx, message)
}

// sendToSlack is a helper method to send messages to Slack
func (s *notificationService) sendToSlack(ctx context.Context, message slackMessage) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create slack request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack API returned non-OK status %d: %s", resp.StatusCode, string(body))
	}

	s.logger.Debug("sent Slack message")
	return nil
}
