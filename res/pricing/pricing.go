package pricing

import (
	"opalclean-api/res/catalog"
	"opalclean-api/res/wizard"
)

// Line is one displayable row of the price summary. Amounts are in cents.
type Line struct {
	AddOnID    string `json:"addOnId,omitempty"`
	Label      string `json:"label"`
	Quantity   int    `json:"quantity"`
	ListAmount int    `json:"listAmount"`
	Amount     int    `json:"amount"`
	Bundle     bool   `json:"bundle,omitempty"`
}

// Breakdown is the full price projection of a wizard state. All amounts are
// in cents. It is recomputed from scratch on every state change; caching is
// never a correctness requirement.
type Breakdown struct {
	BasePrice     int    `json:"basePrice"`
	BaseListPrice int    `json:"baseListPrice"`
	Lines         []Line `json:"lines"`

	SameDaySurcharge int `json:"sameDaySurcharge"`
	ComboDiscount    int `json:"comboDiscount"`

	Total     int `json:"total"`
	ListTotal int `json:"listTotal"`
	Savings   int `json:"savings"`
}

// ComputeBreakdown projects a wizard state onto a price breakdown.
// Deterministic and side-effect-free; absent or invalid selections simply
// contribute zero, so it is total over all possible states and safe to call
// on every keystroke. It never mutates the state it reads.
func ComputeBreakdown(s *wizard.State, cat *catalog.Catalog) Breakdown {
	var b Breakdown

	if tier := cat.TierFor(s.ServiceID, s.Bedrooms); tier != nil {
		b.BasePrice = tier.DiscountedPrice
		b.BaseListPrice = tier.ListPrice
	}

	extrasTotal := 0
	extrasListTotal := 0

	if s.BundleSelected {
		extrasTotal += cat.Bundle.BundlePrice
		extrasListTotal += cat.Bundle.ListTotal
		b.Lines = append(b.Lines, Line{
			Label:      cat.Bundle.Name,
			Quantity:   1,
			ListAmount: cat.Bundle.ListTotal,
			Amount:     cat.Bundle.BundlePrice,
			Bundle:     true,
		})
	}

	// Iterate the catalog, not the selection map, so line order and therefore
	// the whole breakdown is deterministic for identical inputs.
	for _, addOn := range cat.AddOns {
		quantity := s.Extras[addOn.ID]
		if quantity <= 0 {
			continue
		}
		// The bundle takes precedence for pricing and display: members still
		// present in the selection map are excluded, never double-charged.
		// Clearing the map itself is the state machine's job, not ours.
		if s.BundleSelected && cat.Bundle.Includes(addOn.ID) {
			continue
		}
		extrasTotal += addOn.DiscountedPrice * quantity
		extrasListTotal += addOn.ListPrice * quantity
		b.Lines = append(b.Lines, Line{
			AddOnID:    addOn.ID,
			Label:      addOn.Name,
			Quantity:   quantity,
			ListAmount: addOn.ListPrice * quantity,
			Amount:     addOn.DiscountedPrice * quantity,
		})
	}

	// The cupboard combo discount never stacks with the bundle
	if !s.BundleSelected {
		if status := CupboardComboStatus(s.Extras); status.HasDiscount {
			b.ComboDiscount = status.Amount
		}
	}

	if s.SameDay {
		b.SameDaySurcharge = catalog.SameDaySurcharge
	}

	b.Total = b.BasePrice + extrasTotal + b.SameDaySurcharge - b.ComboDiscount
	// The surcharge is never discounted, so it lands on both totals
	b.ListTotal = b.BaseListPrice + extrasListTotal + b.SameDaySurcharge
	if savings := b.ListTotal - b.Total; savings > 0 {
		b.Savings = savings
	}

	return b
}

// ComboStatus describes the inside/outside cupboard pair. The three outcomes
// are mutually exclusive: both selected (discount active), exactly one
// selected (suggest completing the pair), neither (nothing to show).
type ComboStatus struct {
	HasDiscount bool   `json:"hasDiscount"`
	MissingSide string `json:"missingSide,omitempty"` // add-on id of the unselected half
	Amount      int    `json:"amount"`                // cents
}

// CupboardComboStatus inspects just the two cupboard add-on quantities
func CupboardComboStatus(extras map[string]int) ComboStatus {
	inside := extras[catalog.AddOnCabinetsInside] > 0
	outside := extras[catalog.AddOnCabinetsOutside] > 0

	switch {
	case inside && outside:
		return ComboStatus{HasDiscount: true, Amount: catalog.ComboDiscount}
	case inside:
		return ComboStatus{MissingSide: catalog.AddOnCabinetsOutside, Amount: catalog.ComboDiscount}
	case outside:
		return ComboStatus{MissingSide: catalog.AddOnCabinetsInside, Amount: catalog.ComboDiscount}
	}
	return ComboStatus{}
}
