package catalog

// Service identifiers
const (
	ServiceResidential      = "residential"
	ServiceEndOfLease       = "end-of-lease"
	ServiceOffice           = "office"
	ServicePostConstruction = "post-construction"
	ServiceCarpetOnly       = "carpet-only"
)

// Add-on identifiers referenced by the rules engine
const (
	AddOnOven            = "oven"
	AddOnFridge          = "fridge"
	AddOnCabinetsInside  = "cabinets-inside"
	AddOnCabinetsOutside = "cabinets-outside"
	AddOnWindowsInside   = "windows-inside"
	AddOnBlinds          = "blinds"
	AddOnWallWash        = "wall-wash"
	AddOnCarpetSteam     = "carpet-steam"
	AddOnBalcony         = "balcony"
	AddOnGarage          = "garage"
	AddOnUpholstery      = "upholstery"
	AddOnMattress        = "mattress"
)

// Fixed pricing rules, in cents
const (
	// ComboDiscount is taken off the total when both cupboard add-ons are
	// selected and the bundle is not.
	ComboDiscount = 1000

	// SameDaySurcharge is added to the total (never the list total) for
	// same-day bookings.
	SameDaySurcharge = 3000
)

// Default returns the standard catalog. Call once at process start; the
// returned value is treated as immutable for the life of the session.
func Default() *Catalog {
	return &Catalog{
		Services: []ServiceOffering{
			{ID: ServiceResidential, Name: "Residential Cleaning", Mode: PricingModeInstant},
			{ID: ServiceEndOfLease, Name: "End of Lease Cleaning", Mode: PricingModeInstant},
			{ID: ServiceOffice, Name: "Office & Commercial Cleaning", Mode: PricingModeHourly, BaseRate: 5900},
			{ID: ServicePostConstruction, Name: "Post-Construction Cleaning", Mode: PricingModeQuoteOnly},
			{ID: ServiceCarpetOnly, Name: "Carpet Cleaning Only", Mode: PricingModeQuoteOnly},
		},
		Tiers: map[string][]SizeTier{
			ServiceResidential: {
				{Bedrooms: 1, ListPrice: 14900, DiscountedPrice: 13400},
				{Bedrooms: 2, ListPrice: 18900, DiscountedPrice: 17000},
				{Bedrooms: 3, ListPrice: 21900, DiscountedPrice: 19700, MostPopular: true},
				{Bedrooms: 4, ListPrice: 25900, DiscountedPrice: 23300},
				{Bedrooms: 5, ListPrice: 29900, DiscountedPrice: 26900},
			},
			ServiceEndOfLease: {
				{Bedrooms: 1, ListPrice: 32900, DiscountedPrice: 29600},
				{Bedrooms: 2, ListPrice: 39900, DiscountedPrice: 35900},
				{Bedrooms: 3, ListPrice: 47900, DiscountedPrice: 43100, MostPopular: true},
				{Bedrooms: 4, ListPrice: 56900, DiscountedPrice: 51200},
				{Bedrooms: 5, ListPrice: 65900, DiscountedPrice: 59300},
			},
		},
		AddOns: []AddOnService{
			{ID: AddOnOven, Name: "Oven Clean", ListPrice: 4900, DiscountedPrice: 4400,
				Unit: UnitPerAppliance, MinQty: 1, MaxQty: 2, Category: "Kitchen", EOLRecommended: true},
			{ID: AddOnFridge, Name: "Fridge Clean", ListPrice: 3900, DiscountedPrice: 3500,
				Unit: UnitPerAppliance, MinQty: 1, MaxQty: 2, Category: "Kitchen"},
			{ID: AddOnCabinetsInside, Name: "Inside Cupboards", ListPrice: 4500, DiscountedPrice: 4000,
				Unit: UnitFlat, MinQty: 1, MaxQty: 1, Category: "Kitchen", EOLRecommended: true},
			{ID: AddOnCabinetsOutside, Name: "Outside Cupboards", ListPrice: 3500, DiscountedPrice: 3100,
				Unit: UnitFlat, MinQty: 1, MaxQty: 1, Category: "Kitchen"},
			{ID: AddOnWindowsInside, Name: "Interior Windows", ListPrice: 1000, DiscountedPrice: 900,
				Unit: UnitPerUnit, MinQty: 1, MaxQty: 20, Category: "Windows"},
			{ID: AddOnBlinds, Name: "Blind Dusting", ListPrice: 1500, DiscountedPrice: 1300,
				Unit: UnitPerUnit, MinQty: 1, MaxQty: 15, Category: "Windows", EOLRecommended: true, BundleIncluded: true},
			{ID: AddOnWallWash, Name: "Wall Washing", ListPrice: 3500, DiscountedPrice: 3100,
				Unit: UnitPerRoom, MinQty: 1, MaxQty: 6, Category: "Rooms", EOLRecommended: true, BundleIncluded: true},
			{ID: AddOnCarpetSteam, Name: "Carpet Steam Clean", ListPrice: 4000, DiscountedPrice: 3600,
				Unit: UnitPerRoom, MinQty: 1, MaxQty: 6, Category: "Rooms", EOLRecommended: true, BundleIncluded: true},
			{ID: AddOnBalcony, Name: "Balcony Clean", ListPrice: 3900, DiscountedPrice: 3500,
				Unit: UnitFlat, MinQty: 1, MaxQty: 1, Category: "Outdoor"},
			{ID: AddOnGarage, Name: "Garage Sweep", ListPrice: 4500, DiscountedPrice: 4000,
				Unit: UnitFlat, MinQty: 1, MaxQty: 1, Category: "Outdoor"},
			{ID: AddOnUpholstery, Name: "Upholstery & Couch Clean", ListPrice: 8900, DiscountedPrice: 8000,
				Unit: UnitFlat, MinQty: 1, MaxQty: 1, Category: "Furnishings", RequiresFurnished: true},
			{ID: AddOnMattress, Name: "Mattress Steam", ListPrice: 3900, DiscountedPrice: 3500,
				Unit: UnitPerUnit, MinQty: 1, MaxQty: 5, Category: "Furnishings", RequiresFurnished: true},
		},
		Bundle: BundlePackage{
			ID:          "bond-back-bundle",
			Name:        "Bond Back Bundle",
			AddOnIDs:    []string{AddOnCarpetSteam, AddOnWallWash, AddOnBlinds},
			BundlePrice: 6900,
			ListTotal:   9000,
		},
	}
}
