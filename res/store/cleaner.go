package store

import (
	"context"
	"time"
)

// Cleaner is a staff member who can be assigned to bookings
type Cleaner struct {
	ID        string `gorm:"primaryKey;size:50;unique"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;unique"`
	Phone     string `gorm:"size:30"`
	Suburb    string `gorm:"size:100"` // Home base for rough routing
	Notes     string `gorm:"type:text"`
	IsActive  bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

// CleanerUpdate carries optional field updates; nil means leave unchanged
type CleanerUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Suburb    *string
	Notes     *string
	IsActive  *bool
}

// CleanerStore defines the data access interface for cleaners
type CleanerStore interface {
	// Create inserts a new cleaner
	Create(ctx context.Context, cleaner *Cleaner) error

	// Get retrieves a cleaner by ID
	Get(ctx context.Context, id string) (*Cleaner, error)

	// GetMany retrieves several cleaners at once; results keep the order of
	// ids, with nil holes for misses. Implementations may batch.
	GetMany(ctx context.Context, ids []string) ([]*Cleaner, error)

	// List retrieves cleaners, optionally only active ones
	List(ctx context.Context, activeOnly bool) ([]*Cleaner, error)

	// Update applies a partial update to a cleaner
	Update(ctx context.Context, id string, update CleanerUpdate) (*Cleaner, error)

	// Delete removes a cleaner
	Delete(ctx context.Context, id string) error
}
