package notification

import (
	"context"

	"opalclean-api/res/store"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	// NotifyNewBooking sends a notification when a booking is submitted
	NotifyNewBooking(ctx context.Context, quote *store.Quote) error
	// NotifyBookingCancelled sends a notification when a booking is cancelled
	NotifyBookingCancelled(ctx context.Context, quote *store.Quote) error
}
