package store

import (
	"context"
	"time"
)

// QuoteStatus tracks a submitted booking through the admin workflow
type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "new"       // Submitted, awaiting office review
	QuoteStatusConfirmed QuoteStatus = "confirmed" // Office confirmed with the customer
	QuoteStatusCompleted QuoteStatus = "completed" // Clean performed
	QuoteStatusCancelled QuoteStatus = "cancelled" // Cancelled by customer or office
)

// Quote is a submitted booking: a snapshot of the wizard state plus the
// pricing frozen at submission time, so later catalog changes never rewrite
// what the customer was shown.
type Quote struct {
	ID string `gorm:"primaryKey;size:50;unique"`

	// Service and property
	ServiceID    string `gorm:"size:50;not null;index:idx_quote_service"`
	PropertyType string `gorm:"size:30"`
	Bedrooms     int    `gorm:"not null;default:0"`
	Bathrooms    int    `gorm:"not null;default:0"`
	Furnished    string `gorm:"size:10"`

	// Selected extras
	Extras         string `gorm:"type:text"` // JSON map of add-on id -> quantity
	BundleSelected bool   `gorm:"not null;default:false"`

	// Contact
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;index:idx_quote_email"`
	Phone     string `gorm:"size:30;not null"`
	Address   string `gorm:"size:255;not null"`
	Suburb    string `gorm:"size:100;not null;index:idx_quote_suburb"`
	Postcode  string `gorm:"size:4;not null"`

	// Scheduling
	PreferredDate string `gorm:"size:10"` // YYYY-MM-DD; empty for same-day bookings
	PreferredTime string `gorm:"size:20;not null"`
	SameDay       bool   `gorm:"not null;default:false;index:idx_quote_same_day"`
	Comments      string `gorm:"type:text"`

	// Pricing frozen at submission time, in cents
	BasePrice        int `gorm:"not null;default:0"`
	ExtrasPrice      int `gorm:"not null;default:0"`
	SameDaySurcharge int `gorm:"not null;default:0"`
	ComboDiscount    int `gorm:"not null;default:0"`
	TotalPrice       int `gorm:"not null"`
	ListTotal        int `gorm:"not null"`
	Savings          int `gorm:"not null;default:0"`

	// Workflow
	Status      QuoteStatus `gorm:"size:20;not null;default:'new';index:idx_quote_status"`
	Cleaner     *Cleaner    `gorm:"foreignKey:CleanerID"`
	CleanerID   *string     `gorm:"size:50;index:idx_quote_cleaner"`
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index:idx_quote_created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

// QuoteFilters contains filter options for listing quotes
type QuoteFilters struct {
	Status    *QuoteStatus
	ServiceID *string
	Suburb    *string
	SameDay   *bool
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
	OrderBy   string // e.g., "created_at DESC"
}

// QuoteStats is the roll-up behind the admin dashboard tiles
type QuoteStats struct {
	Total        int64
	ByStatus     map[QuoteStatus]int64
	Revenue      int64 // Sum of TotalPrice over non-cancelled quotes, cents
	SameDayCount int64
}

// QuoteStore defines the data access interface for submitted quotes
type QuoteStore interface {
	// Create inserts a new quote
	Create(ctx context.Context, quote *Quote) error

	// Get retrieves a quote by ID
	Get(ctx context.Context, id string) (*Quote, error)

	// ListAll retrieves quotes with filters (for admin)
	ListAll(ctx context.Context, filters QuoteFilters) ([]*Quote, error)

	// Count counts quotes matching the filters
	Count(ctx context.Context, filters QuoteFilters) (int64, error)

	// UpdateStatus moves a quote through the workflow, stamping the
	// matching timestamp
	UpdateStatus(ctx context.Context, id string, status QuoteStatus) error

	// AssignCleaner sets the cleaner responsible for a quote
	AssignCleaner(ctx context.Context, quoteID, cleanerID string) error

	// Stats aggregates the dashboard roll-up for quotes created since the
	// given time
	Stats(ctx context.Context, since time.Time) (*QuoteStats, error)
}
