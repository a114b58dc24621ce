package mail

import (
	"context"

	"opalclean-api/res/store"
)

// MailService defines the interface for email operations
type MailService interface {
	// SendBookingConfirmation sends the booking confirmation to the customer
	SendBookingConfirmation(ctx context.Context, quote *store.Quote) error

	// SendAdminCopy sends a copy of the booking to the office inbox
	SendAdminCopy(ctx context.Context, quote *store.Quote) error
}
