package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"opalclean-api/res/catalog"
	"opalclean-api/res/mail"
	"opalclean-api/res/notification"
	"opalclean-api/res/pricing"
	"opalclean-api/res/store"
	"opalclean-api/res/wizard"
)

// bookingSubmitter turns a completed wizard state into a persisted quote.
// The price is recomputed server-side from the catalog and frozen onto the
// quote row, never trusted from the client.
type bookingSubmitter struct {
	store        store.Store
	catalog      *catalog.Catalog
	mail         mail.MailService
	notification notification.NotificationService
	logger       *zap.Logger
}

// NewBookingSubmitter builds the submitter wired into the wizard engine.
// Mail and notification may be nil; only persistence is load-bearing.
func NewBookingSubmitter(s store.Store, cat *catalog.Catalog, m mail.MailService, n notification.NotificationService, logger *zap.Logger) wizard.Submitter {
	return &bookingSubmitter{
		store:        s,
		catalog:      cat,
		mail:         m,
		notification: n,
		logger:       logger,
	}
}

func (b *bookingSubmitter) Submit(ctx context.Context, state *wizard.State) (string, error) {
	breakdown := pricing.ComputeBreakdown(state, b.catalog)

	extrasJSON, err := json.Marshal(state.Extras)
	if err != nil {
		return "", fmt.Errorf("failed to encode extras: %w", err)
	}

	extrasPrice := 0
	for _, line := range breakdown.Lines {
		extrasPrice += line.Amount
	}

	quote := &store.Quote{
		ID: fmt.Sprintf("qte_%s", xid.New().String()),

		ServiceID:    state.ServiceID,
		PropertyType: state.PropertyType,
		Bedrooms:     state.Bedrooms,
		Bathrooms:    state.Bathrooms,
		Furnished:    string(state.Furnished),

		Extras:         string(extrasJSON),
		BundleSelected: state.BundleSelected,

		FirstName: state.FirstName,
		LastName:  state.LastName,
		Email:     state.Email,
		Phone:     state.Phone,
		Address:   state.Address,
		Suburb:    state.Suburb,
		Postcode:  state.Postcode,

		PreferredDate: state.PreferredDate,
		PreferredTime: state.PreferredTime,
		SameDay:       state.SameDay,
		Comments:      state.Comments,

		BasePrice:        breakdown.BasePrice,
		ExtrasPrice:      extrasPrice,
		SameDaySurcharge: breakdown.SameDaySurcharge,
		ComboDiscount:    breakdown.ComboDiscount,
		TotalPrice:       breakdown.Total,
		ListTotal:        breakdown.ListTotal,
		Savings:          breakdown.Savings,

		Status: store.QuoteStatusNew,
	}

	if err := b.store.Quotes().Create(ctx, quote); err != nil {
		return "", fmt.Errorf("failed to save quote: %w", err)
	}

	// Confirmation mail and the office alert are follow-ups: the booking is
	// already saved, so failures here are logged rather than surfaced.
	if b.mail != nil {
		if err := b.mail.SendBookingConfirmation(ctx, quote); err != nil {
			b.logger.Error("failed to send booking confirmation",
				zap.String("quoteId", quote.ID),
				zap.Error(err))
		}
		if err := b.mail.SendAdminCopy(ctx, quote); err != nil {
			b.logger.Error("failed to send admin copy",
				zap.String("quoteId", quote.ID),
				zap.Error(err))
		}
	}
	if b.notification != nil {
		if err := b.notification.NotifyNewBooking(ctx, quote); err != nil {
			b.logger.Error("failed to send booking notification",
				zap.String("quoteId", quote.ID),
				zap.Error(err))
		}
	}

	return quote.ID, nil
}
