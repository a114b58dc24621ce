package wizard

import (
	"strings"

	"opalclean-api/res/catalog"
)

// SectionVisible reports whether a section is shown at all for the current
// state. Quote-only services skip the property and add-ons sections entirely.
func SectionVisible(s *State, section int, cat *catalog.Catalog) bool {
	if section < 0 || section >= SectionCount {
		return false
	}
	if section == SectionPropertyDetails || section == SectionAddOns {
		if svc := cat.Service(s.ServiceID); svc != nil && svc.Mode == catalog.PricingModeQuoteOnly {
			return false
		}
	}
	return true
}

// SectionComplete evaluates a section's completion predicate. Hidden sections
// auto-complete so they never block forward navigation.
func SectionComplete(s *State, section int, cat *catalog.Catalog) bool {
	if !SectionVisible(s, section, cat) {
		return true
	}

	switch section {
	case SectionService:
		return s.ServiceID != ""

	case SectionPropertyDetails:
		if s.PropertyType == "" || s.Bedrooms <= 0 {
			return false
		}
		if s.ServiceID == catalog.ServiceEndOfLease && s.Furnished == FurnishedUnset {
			return false
		}
		return true

	case SectionAddOns:
		// Optional section, always complete
		return true

	case SectionContactSchedule:
		return s.FirstName != "" && s.LastName != "" &&
			strings.Contains(s.Email, "@") &&
			len(s.Phone) >= 8 &&
			s.Address != "" && s.Suburb != "" &&
			len(s.Postcode) == 4 &&
			(s.PreferredDate != "" || s.SameDay) &&
			s.PreferredTime != ""
	}
	return false
}

// CanOpenSection reports whether a section may be expanded: the first section
// is always open-able, every later one is gated on its predecessor's
// completion predicate.
func CanOpenSection(s *State, section int, cat *catalog.Catalog) bool {
	if section < 0 || section >= SectionCount {
		return false
	}
	if !SectionVisible(s, section, cat) {
		return false
	}
	if section == 0 {
		return true
	}
	return SectionComplete(s, section-1, cat)
}

// FirstIncompleteSection returns the earliest section whose completion
// predicate fails, and whether such a section exists. Submission opens this
// section instead of proceeding.
func FirstIncompleteSection(s *State, cat *catalog.Catalog) (int, bool) {
	for section := 0; section < SectionCount; section++ {
		if !SectionComplete(s, section, cat) {
			return section, true
		}
	}
	return 0, false
}

// nextVisibleSection returns the index of the first visible section after the
// given one, or SectionNone when there is none.
func nextVisibleSection(s *State, after int, cat *catalog.Catalog) int {
	for section := after + 1; section < SectionCount; section++ {
		if SectionVisible(s, section, cat) {
			return section
		}
	}
	return SectionNone
}
