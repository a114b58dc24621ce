package catalog

// PricingMode describes how a service offering is priced
type PricingMode string

const (
	PricingModeInstant   PricingMode = "instant"    // Priced up-front from size tiers
	PricingModeHourly    PricingMode = "hourly"     // Priced per hour, quoted on site
	PricingModeQuoteOnly PricingMode = "quote-only" // No instant price, contact details only
)

// ServiceOffering is one of the fixed catalog of service kinds.
// Reference data: created once at process start, never mutated.
type ServiceOffering struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Mode     PricingMode `json:"mode"`
	BaseRate int         `json:"baseRate,omitempty"` // Cents; hourly rate for hourly services, 0 otherwise
}

// SizeTier is a bedroom-count price point for services priced by property size.
// All amounts are in cents.
type SizeTier struct {
	Bedrooms        int  `json:"bedrooms"`
	ListPrice       int  `json:"listPrice"`
	DiscountedPrice int  `json:"discountedPrice"`
	MostPopular     bool `json:"mostPopular"`
}

// UnitOfSale describes how an add-on's quantity is counted
type UnitOfSale string

const (
	UnitFlat         UnitOfSale = "flat"          // Always quantity 1
	UnitPerAppliance UnitOfSale = "per-appliance" // Ovens, fridges
	UnitPerRoom      UnitOfSale = "per-room"      // Tracks the property's bedroom count
	UnitPerUnit      UnitOfSale = "per-unit"      // Windows, blinds, mattresses
)

// AddOnService is an optional extra purchasable alongside the base service.
// All amounts are in cents.
type AddOnService struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	ListPrice       int        `json:"listPrice"`
	DiscountedPrice int        `json:"discountedPrice"`
	Unit            UnitOfSale `json:"unit"`
	MinQty          int        `json:"minQty"` // Flat items are always 1..1
	MaxQty          int        `json:"maxQty"`
	Category        string     `json:"category"`

	EOLRecommended    bool `json:"eolRecommended"`    // Suggested for the end-of-lease service
	BundleIncluded    bool `json:"bundleIncluded"`    // Member of the pre-configured bundle
	RequiresFurnished bool `json:"requiresFurnished"` // Hidden when the property is empty
}

// BundlePackage is the single pre-configured add-on bundle, sold at a combined
// price below the sum of its members' individual prices.
type BundlePackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AddOnIDs    []string `json:"addOnIds"`
	BundlePrice int      `json:"bundlePrice"` // Cents
	ListTotal   int      `json:"listTotal"`   // Cents
}

// Includes reports whether the add-on id is a member of the bundle
func (b *BundlePackage) Includes(addOnID string) bool {
	for _, id := range b.AddOnIDs {
		if id == addOnID {
			return true
		}
	}
	return false
}

// Savings is the bundle's advantage over buying each member individually
// at its discounted price.
func (b *BundlePackage) Savings(c *Catalog) int {
	sum := 0
	for _, id := range b.AddOnIDs {
		if addOn := c.AddOn(id); addOn != nil {
			sum += addOn.DiscountedPrice
		}
	}
	return sum - b.BundlePrice
}

// Catalog groups the immutable reference data supplied to every pricing and
// rules function. It does not change mid-session.
type Catalog struct {
	Services []ServiceOffering     `json:"services"`
	Tiers    map[string][]SizeTier `json:"tiers"` // Keyed by service id; only instant services have tiers
	AddOns   []AddOnService        `json:"addOns"`
	Bundle   BundlePackage         `json:"bundle"`
}

// Service looks up a service offering by id. Returns nil on a miss.
func (c *Catalog) Service(id string) *ServiceOffering {
	for i := range c.Services {
		if c.Services[i].ID == id {
			return &c.Services[i]
		}
	}
	return nil
}

// AddOn looks up an add-on by id. Returns nil on a miss.
func (c *Catalog) AddOn(id string) *AddOnService {
	for i := range c.AddOns {
		if c.AddOns[i].ID == id {
			return &c.AddOns[i]
		}
	}
	return nil
}

// TierFor returns the size tier matching the bedroom count for a service,
// or nil when the service has no tiers or no tier matches.
func (c *Catalog) TierFor(serviceID string, bedrooms int) *SizeTier {
	tiers := c.Tiers[serviceID]
	for i := range tiers {
		if tiers[i].Bedrooms == bedrooms {
			return &tiers[i]
		}
	}
	return nil
}

// mostPopularAddOnIDs is the hardcoded allowlist behind the "most popular"
// rail on the add-ons step.
var mostPopularAddOnIDs = []string{
	AddOnOven,
	AddOnCarpetSteam,
	AddOnWindowsInside,
	AddOnFridge,
}

// MostPopularAddOns filters the catalog down to the hardcoded most-popular
// allowlist, preserving allowlist order. Safe to precompute once per render.
func (c *Catalog) MostPopularAddOns() []AddOnService {
	var out []AddOnService
	for _, id := range mostPopularAddOnIDs {
		if addOn := c.AddOn(id); addOn != nil {
			out = append(out, *addOn)
		}
	}
	return out
}

// RecommendedForService returns the add-ons nudged for a given service.
// Only the end-of-lease service carries recommendations.
func (c *Catalog) RecommendedForService(serviceID string) []AddOnService {
	if serviceID != ServiceEndOfLease {
		return nil
	}
	var out []AddOnService
	for _, addOn := range c.AddOns {
		if addOn.EOLRecommended {
			out = append(out, addOn)
		}
	}
	return out
}
