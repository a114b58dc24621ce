package wizard

import (
	"opalclean-api/res/catalog"
)

// Reduce is the wizard's only transition function: pure, total, and safe to
// call on every input event. It returns the next state plus the side effect
// the caller must perform (submission is the only one). The input state is
// never mutated.
func Reduce(s State, a Action, cat *catalog.Catalog) (State, Effect) {
	// While a submission is in flight only its outcome may change the state.
	// This flag, not UI disabling, is the double-submit guard.
	if s.Submitting && !a.Internal() {
		return s, EffectNone
	}
	// A completed wizard only accepts a full restart
	if s.Completed && a.Type != ActionStartOver {
		return s, EffectNone
	}

	switch a.Type {
	case ActionSelectService:
		return reduceSelectService(s, a.ServiceID, cat), EffectNone

	case ActionConfirmServiceChange:
		if s.PendingServiceID == "" {
			return s, EffectNone
		}
		return freshStateForService(s.PendingServiceID, cat), EffectNone

	case ActionCancelServiceChange:
		s.PendingServiceID = ""
		return s, EffectNone

	case ActionSetPropertyType:
		s.PropertyType = a.Value
		return s, EffectNone

	case ActionSetBedrooms:
		if a.Number < 0 {
			return s, EffectNone
		}
		s.Bedrooms = a.Number
		s.Extras = reclampRoomExtras(s.Extras, s.Bedrooms, cat)
		return s, EffectNone

	case ActionSetBathrooms:
		if a.Number < 0 {
			return s, EffectNone
		}
		s.Bathrooms = a.Number
		return s, EffectNone

	case ActionSetFurnished:
		furnished := Furnished(a.Value)
		if furnished != FurnishedYes && furnished != FurnishedEmpty {
			return s, EffectNone
		}
		s.Furnished = furnished
		if furnished == FurnishedEmpty {
			s.Extras = purgeFurnishedExtras(s.Extras, cat)
		}
		return s, EffectNone

	case ActionSetExtra:
		return reduceSetExtra(s, a.AddOnID, a.Quantity, cat), EffectNone

	case ActionToggleBundle:
		return reduceToggleBundle(s, a.Flag, cat), EffectNone

	case ActionSetContact:
		return reduceSetContact(s, a.Field, a.Value), EffectNone

	case ActionSetSameDay:
		s.SameDay = a.Flag
		return s, EffectNone

	case ActionOpenSection:
		return reduceOpenSection(s, a.Number, cat), EffectNone

	case ActionContinue:
		if s.OpenSection == SectionNone {
			return s, EffectNone
		}
		s.OpenSection = nextVisibleSection(&s, s.OpenSection, cat)
		return s, EffectNone

	case ActionBeginSubmit:
		if section, failing := FirstIncompleteSection(&s, cat); failing {
			s.OpenSection = section
			return s, EffectNone
		}
		s.Submitting = true
		return s, EffectSubmit

	case actionSubmitSucceeded:
		s.Submitting = false
		s.Completed = true
		s.BookingID = a.bookingID
		return s, EffectNone

	case actionSubmitFailed:
		// State is preserved so the user can retry without re-entering data
		s.Submitting = false
		return s, EffectNone

	case ActionStartOver:
		return NewState(), EffectNone
	}

	return s, EffectNone
}

// reduceSelectService handles the service step. Re-selecting the current
// service is a no-op; selecting with entered data raises the confirmation
// gate instead of silently discarding it, whether or not a service was
// already chosen.
func reduceSelectService(s State, serviceID string, cat *catalog.Catalog) State {
	if serviceID == s.ServiceID || cat.Service(serviceID) == nil {
		return s
	}
	if s.HasEnteredData() {
		s.PendingServiceID = serviceID
		return s
	}
	return freshStateForService(serviceID, cat)
}

// freshStateForService replaces the whole state with one carrying only the
// newly chosen service, opening the next visible section.
func freshStateForService(serviceID string, cat *catalog.Catalog) State {
	next := NewState()
	next.ServiceID = serviceID
	next.OpenSection = nextVisibleSection(&next, SectionService, cat)
	return next
}

func reduceSetExtra(s State, addOnID string, quantity int, cat *catalog.Catalog) State {
	addOn := cat.AddOn(addOnID)
	if addOn == nil {
		return s
	}
	// Bundle members are subsumed while the bundle is selected
	if s.BundleSelected && cat.Bundle.Includes(addOnID) {
		return s
	}
	// Furnished-only extras are not selectable on an empty property
	if addOn.RequiresFurnished && s.Furnished == FurnishedEmpty {
		return s
	}

	extras := cloneExtras(s.Extras)
	if quantity <= 0 {
		delete(extras, addOnID)
		s.Extras = extras
		return s
	}

	switch {
	case addOn.Unit == catalog.UnitFlat:
		quantity = 1
	default:
		if quantity < addOn.MinQty {
			quantity = addOn.MinQty
		}
		if quantity > addOn.MaxQty {
			quantity = addOn.MaxQty
		}
	}
	extras[addOnID] = quantity
	s.Extras = extras
	return s
}

func reduceToggleBundle(s State, on bool, cat *catalog.Catalog) State {
	if on == s.BundleSelected {
		return s
	}
	s.BundleSelected = on
	if on {
		// Selecting the bundle subsumes its members; they are removed, not
		// suspended, so toggling the bundle off cannot resurrect them.
		extras := cloneExtras(s.Extras)
		for _, id := range cat.Bundle.AddOnIDs {
			delete(extras, id)
		}
		s.Extras = extras
	}
	return s
}

func reduceSetContact(s State, field, value string) State {
	switch field {
	case FieldFirstName:
		s.FirstName = value
	case FieldLastName:
		s.LastName = value
	case FieldEmail:
		s.Email = value
	case FieldPhone:
		s.Phone = value
	case FieldAddress:
		s.Address = value
	case FieldSuburb:
		s.Suburb = value
	case FieldPostcode:
		s.Postcode = value
	case FieldPreferredDate:
		s.PreferredDate = value
	case FieldPreferredTime:
		s.PreferredTime = value
	case FieldComments:
		s.Comments = value
	}
	return s
}

// reduceOpenSection applies single-open accordion semantics: opening the
// already-open section collapses it, opening another closes the current one,
// and a section can only open once its predecessor is complete.
func reduceOpenSection(s State, section int, cat *catalog.Catalog) State {
	if section == s.OpenSection {
		s.OpenSection = SectionNone
		return s
	}
	if !CanOpenSection(&s, section, cat) {
		return s
	}
	s.OpenSection = section
	return s
}

// reclampRoomExtras re-clamps every selected room-typed add-on to
// min(bedrooms, addon.max) after a bedroom-count change. A clamp to zero
// removes the entry.
func reclampRoomExtras(extras map[string]int, bedrooms int, cat *catalog.Catalog) map[string]int {
	out := cloneExtras(extras)
	for id := range out {
		addOn := cat.AddOn(id)
		if addOn == nil || addOn.Unit != catalog.UnitPerRoom {
			continue
		}
		quantity := bedrooms
		if quantity > addOn.MaxQty {
			quantity = addOn.MaxQty
		}
		if quantity <= 0 {
			delete(out, id)
			continue
		}
		out[id] = quantity
	}
	return out
}

// purgeFurnishedExtras drops every furnished-only extra when the property is
// marked empty.
func purgeFurnishedExtras(extras map[string]int, cat *catalog.Catalog) map[string]int {
	out := cloneExtras(extras)
	for id := range out {
		if addOn := cat.AddOn(id); addOn != nil && addOn.RequiresFurnished {
			delete(out, id)
		}
	}
	return out
}
