package pricing

import (
	"reflect"
	"testing"

	"opalclean-api/res/catalog"
	"opalclean-api/res/wizard"
)

func residentialState(bedrooms int) wizard.State {
	s := wizard.NewState()
	s.ServiceID = catalog.ServiceResidential
	s.PropertyType = "house"
	s.Bedrooms = bedrooms
	return s
}

func TestBasicQuote(t *testing.T) {
	cat := catalog.Default()
	s := residentialState(3)

	b := ComputeBreakdown(&s, cat)

	if b.BasePrice != 19700 || b.BaseListPrice != 21900 {
		t.Errorf("base = %d/%d, want 19700/21900", b.BasePrice, b.BaseListPrice)
	}
	if b.Total != 19700 {
		t.Errorf("total = %d, want the 3-bedroom discounted tier price 19700", b.Total)
	}
	if b.Savings != 21900-19700 {
		t.Errorf("savings = %d, want %d", b.Savings, 21900-19700)
	}
	if len(b.Lines) != 0 {
		t.Errorf("expected no extra lines, got %d", len(b.Lines))
	}
}

func TestIdempotentPricing(t *testing.T) {
	cat := catalog.Default()
	s := residentialState(3)
	s.Extras = map[string]int{
		catalog.AddOnOven:        2,
		catalog.AddOnCarpetSteam: 3,
	}
	s.SameDay = true

	first := ComputeBreakdown(&s, cat)
	second := ComputeBreakdown(&s, cat)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("breakdowns differ for identical inputs:\n%+v\n%+v", first, second)
	}
}

func TestComboDiscount(t *testing.T) {
	cat := catalog.Default()
	s := residentialState(3)
	s.Extras = map[string]int{
		catalog.AddOnCabinetsInside:  1,
		catalog.AddOnCabinetsOutside: 1,
	}

	b := ComputeBreakdown(&s, cat)

	if b.ComboDiscount != catalog.ComboDiscount {
		t.Errorf("combo discount = %d, want %d", b.ComboDiscount, catalog.ComboDiscount)
	}
	want := 19700 + 4000 + 3100 - catalog.ComboDiscount
	if b.Total != want {
		t.Errorf("total = %d, want %d", b.Total, want)
	}
}

func TestComboDiscountNeverStacksWithBundle(t *testing.T) {
	cat := catalog.Default()
	s := residentialState(3)
	s.BundleSelected = true
	s.Extras = map[string]int{
		catalog.AddOnCabinetsInside:  1,
		catalog.AddOnCabinetsOutside: 1,
	}

	b := ComputeBreakdown(&s, cat)

	if b.ComboDiscount != 0 {
		t.Errorf("combo discount must not apply while the bundle is selected, got %d", b.ComboDiscount)
	}
}

func TestBundleExclusivity(t *testing.T) {
	cat := catalog.Default()
	s := residentialState(3)
	s.BundleSelected = true
	// Stale member quantities in the map must not add line items
	s.Extras = map[string]int{
		catalog.AddOnCarpetSteam: 3,
		catalog.AddOnOven:        1,
	}

	b := ComputeBreakdown(&s, cat)

	for _, line := range b.Lines {
		if cat.Bundle.Includes(line.AddOnID) {
			t.Errorf("bundle member %q contributed a separate line item", line.AddOnID)
		}
	}
	want := 19700 + cat.Bundle.BundlePrice + 4400
	if b.Total != want {
		t.Errorf("total = %d, want %d", b.Total, want)
	}
}

func TestBundleBeatsItemizedMembers(t *testing.T) {
	cat := catalog.Default()

	bundled := residentialState(3)
	bundled.BundleSelected = true

	itemized := residentialState(3)
	itemized.Extras = map[string]int{}
	for _, id := range cat.Bundle.AddOnIDs {
		itemized.Extras[id] = 1
	}

	bundledTotal := ComputeBreakdown(&bundled, cat).Total
	itemizedTotal := ComputeBreakdown(&itemized, cat).Total

	if bundledTotal >= itemizedTotal {
		t.Errorf("bundle total %d must be below itemized total %d", bundledTotal, itemizedTotal)
	}
	if diff := itemizedTotal - bundledTotal; diff != cat.Bundle.Savings(cat) {
		t.Errorf("bundle advantage = %d, want %d", diff, cat.Bundle.Savings(cat))
	}
}

func TestSameDaySurcharge(t *testing.T) {
	cat := catalog.Default()
	s := residentialState(3)
	s.Extras = map[string]int{catalog.AddOnOven: 1}

	plain := ComputeBreakdown(&s, cat)
	s.SameDay = true
	sameDay := ComputeBreakdown(&s, cat)

	if diff := sameDay.Total - plain.Total; diff != catalog.SameDaySurcharge {
		t.Errorf("same-day total delta = %d, want %d", diff, catalog.SameDaySurcharge)
	}
	if diff := sameDay.ListTotal - plain.ListTotal; diff != catalog.SameDaySurcharge {
		t.Errorf("same-day list total delta = %d, want %d", diff, catalog.SameDaySurcharge)
	}
	// The surcharge is not discounted, so savings must not move
	if sameDay.Savings != plain.Savings {
		t.Errorf("savings changed with same-day: %d vs %d", sameDay.Savings, plain.Savings)
	}
}

func TestCatalogMissesContributeZero(t *testing.T) {
	cat := catalog.Default()

	s := residentialState(99) // no matching tier
	s.Extras = map[string]int{
		"retired-add-on":   2,
		catalog.AddOnOven: 1,
	}

	b := ComputeBreakdown(&s, cat)

	if b.BasePrice != 0 || b.BaseListPrice != 0 {
		t.Errorf("unmatched bedroom count must contribute zero base, got %d/%d", b.BasePrice, b.BaseListPrice)
	}
	if b.Total != 4400 {
		t.Errorf("total = %d, want only the known add-on 4400", b.Total)
	}
	for _, line := range b.Lines {
		if line.AddOnID == "retired-add-on" {
			t.Error("unknown add-on id produced a line item")
		}
	}
}

func TestSavingsFlooredAtZero(t *testing.T) {
	cat := catalog.Default()

	// Quote-only service with a same-day flag: list and total are both just
	// the surcharge, so raw savings is zero and must stay zero.
	s := wizard.NewState()
	s.ServiceID = catalog.ServicePostConstruction
	s.SameDay = true

	b := ComputeBreakdown(&s, cat)
	if b.Savings != 0 {
		t.Errorf("savings = %d, want 0", b.Savings)
	}
	if b.Total != catalog.SameDaySurcharge || b.ListTotal != catalog.SameDaySurcharge {
		t.Errorf("totals = %d/%d, want surcharge only", b.Total, b.ListTotal)
	}
}

func TestCupboardComboStatus(t *testing.T) {
	cases := []struct {
		name   string
		extras map[string]int
		want   ComboStatus
	}{
		{
			name: "both selected",
			extras: map[string]int{
				catalog.AddOnCabinetsInside:  1,
				catalog.AddOnCabinetsOutside: 1,
			},
			want: ComboStatus{HasDiscount: true, Amount: catalog.ComboDiscount},
		},
		{
			name:   "inside only",
			extras: map[string]int{catalog.AddOnCabinetsInside: 1},
			want:   ComboStatus{MissingSide: catalog.AddOnCabinetsOutside, Amount: catalog.ComboDiscount},
		},
		{
			name:   "outside only",
			extras: map[string]int{catalog.AddOnCabinetsOutside: 1},
			want:   ComboStatus{MissingSide: catalog.AddOnCabinetsInside, Amount: catalog.ComboDiscount},
		},
		{
			name:   "neither",
			extras: map[string]int{catalog.AddOnOven: 1},
			want:   ComboStatus{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CupboardComboStatus(tc.extras)
			if got != tc.want {
				t.Errorf("status = %+v, want %+v", got, tc.want)
			}
		})
	}
}
