package wizard

// Furnished captures the furnished/empty question asked for the
// end-of-lease service.
type Furnished string

const (
	FurnishedUnset Furnished = ""
	FurnishedYes   Furnished = "furnished"
	FurnishedEmpty Furnished = "empty"
)

// SectionNone means no section is expanded (accordion fully collapsed)
const SectionNone = -1

// The ordered, fixed list of wizard sections. A section may only be opened
// once the section immediately before it is complete.
const (
	SectionService = iota
	SectionPropertyDetails
	SectionAddOns
	SectionContactSchedule
	SectionCount
)

// State is the single mutable aggregate behind the booking wizard.
// There is exactly one writer (the reducer) and any number of pure readers.
// Quantity zero is never stored in Extras; removal deletes the key.
type State struct {
	ServiceID string `json:"serviceId"`

	// Set while the service-change confirmation gate is up. Confirming
	// replaces the whole state; cancelling clears this field only.
	PendingServiceID string `json:"pendingServiceId,omitempty"`

	PropertyType string    `json:"propertyType"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Furnished    Furnished `json:"furnished"`

	Extras         map[string]int `json:"extras"` // add-on id -> quantity; absent key == not selected
	BundleSelected bool           `json:"bundleSelected"`

	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Suburb        string `json:"suburb"`
	Postcode      string `json:"postcode"`
	PreferredDate string `json:"preferredDate"` // YYYY-MM-DD; empty for same-day bookings
	PreferredTime string `json:"preferredTime"`
	SameDay       bool   `json:"sameDay"`
	Comments      string `json:"comments"`

	OpenSection int    `json:"openSection"`
	Submitting  bool   `json:"submitting"`
	Completed   bool   `json:"completed"`
	BookingID   string `json:"bookingId,omitempty"`
}

// NewState returns a fresh wizard state with the first section open
func NewState() State {
	return State{
		Extras:      map[string]int{},
		OpenSection: SectionService,
	}
}

// Quantity returns the selected quantity for an add-on, zero when absent
func (s *State) Quantity(addOnID string) int {
	return s.Extras[addOnID]
}

// HasEnteredData reports whether the user has entered anything beyond the
// service choice. Selecting a different service while this holds must raise
// the confirmation gate instead of silently replacing state.
func (s *State) HasEnteredData() bool {
	return s.PropertyType != "" ||
		s.Bedrooms > 0 ||
		s.Bathrooms > 0 ||
		s.Furnished != FurnishedUnset ||
		len(s.Extras) > 0 ||
		s.BundleSelected ||
		s.FirstName != "" || s.LastName != "" || s.Email != "" || s.Phone != "" ||
		s.Address != "" || s.Suburb != "" || s.Postcode != "" ||
		s.PreferredDate != ""
}

// cloneExtras copies the selection map so reducer outputs never alias the
// input state's map.
func cloneExtras(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
