package catalog

import "testing"

func TestDefaultCatalogIntegrity(t *testing.T) {
	cat := Default()

	for _, id := range cat.Bundle.AddOnIDs {
		addOn := cat.AddOn(id)
		if addOn == nil {
			t.Errorf("bundle references unknown add-on %q", id)
			continue
		}
		if !addOn.BundleIncluded {
			t.Errorf("bundle member %q is not flagged BundleIncluded", id)
		}
	}

	for _, addOn := range cat.AddOns {
		if addOn.BundleIncluded && !cat.Bundle.Includes(addOn.ID) {
			t.Errorf("add-on %q flagged BundleIncluded but missing from bundle", addOn.ID)
		}
		if addOn.Unit == UnitFlat && (addOn.MinQty != 1 || addOn.MaxQty != 1) {
			t.Errorf("flat add-on %q must have quantity bounds 1..1, got %d..%d", addOn.ID, addOn.MinQty, addOn.MaxQty)
		}
		if addOn.MinQty > addOn.MaxQty {
			t.Errorf("add-on %q has min quantity %d above max %d", addOn.ID, addOn.MinQty, addOn.MaxQty)
		}
		if addOn.DiscountedPrice > addOn.ListPrice {
			t.Errorf("add-on %q discounted price exceeds list price", addOn.ID)
		}
	}

	// The cupboard combo pair must exist and stay outside the bundle, so the
	// combo discount and the bundle can never overlap.
	for _, id := range []string{AddOnCabinetsInside, AddOnCabinetsOutside} {
		if cat.AddOn(id) == nil {
			t.Fatalf("combo add-on %q missing from catalog", id)
		}
		if cat.Bundle.Includes(id) {
			t.Errorf("combo add-on %q must not be a bundle member", id)
		}
	}
}

func TestBundleCheaperThanItemized(t *testing.T) {
	cat := Default()

	if savings := cat.Bundle.Savings(cat); savings <= 0 {
		t.Errorf("bundle price must beat the itemized discounted sum, savings = %d", savings)
	}
	if cat.Bundle.BundlePrice >= cat.Bundle.ListTotal {
		t.Errorf("bundle price %d must be below its list total %d", cat.Bundle.BundlePrice, cat.Bundle.ListTotal)
	}
}

func TestTierFor(t *testing.T) {
	cat := Default()

	tier := cat.TierFor(ServiceResidential, 3)
	if tier == nil {
		t.Fatal("expected a 3-bedroom residential tier")
	}
	if tier.ListPrice != 21900 || tier.DiscountedPrice != 19700 {
		t.Errorf("3-bedroom residential tier = %d/%d, want 21900/19700", tier.ListPrice, tier.DiscountedPrice)
	}
	if !tier.MostPopular {
		t.Error("3-bedroom residential tier should be flagged most popular")
	}

	if cat.TierFor(ServiceResidential, 12) != nil {
		t.Error("expected no tier for 12 bedrooms")
	}
	if cat.TierFor(ServiceOffice, 3) != nil {
		t.Error("hourly services must not have size tiers")
	}
	if cat.TierFor("unknown", 3) != nil {
		t.Error("expected no tier for unknown service")
	}
}

func TestStaticFilters(t *testing.T) {
	cat := Default()

	popular := cat.MostPopularAddOns()
	if len(popular) == 0 {
		t.Fatal("expected a non-empty most-popular list")
	}
	for _, addOn := range popular {
		if cat.AddOn(addOn.ID) == nil {
			t.Errorf("most-popular add-on %q not in catalog", addOn.ID)
		}
	}

	if recs := cat.RecommendedForService(ServiceResidential); recs != nil {
		t.Errorf("residential service should carry no recommendations, got %d", len(recs))
	}
	recs := cat.RecommendedForService(ServiceEndOfLease)
	if len(recs) == 0 {
		t.Fatal("end-of-lease service should carry recommendations")
	}
	for _, addOn := range recs {
		if !addOn.EOLRecommended {
			t.Errorf("recommended add-on %q is not flagged EOLRecommended", addOn.ID)
		}
	}
}
