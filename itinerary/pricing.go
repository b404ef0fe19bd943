package itinerary

import (
	"encoding/json"
	"log"
	"strings"

	"yatra/models"
)

// pricingTier is one party-size band as the admin frontend sends it.
// MaxPax is nil for the open-ended 10+ band.
type pricingTier struct {
	MinPax         int     `json:"min_pax"`
	MaxPax         *int    `json:"max_pax"`
	PricePerPerson float64 `json:"price_per_person"`
}

// parsePricingTiers accepts a JSON array or a JSON-encoded string of one.
// A malformed value yields no tiers rather than an error; the pricing then
// keeps its prior values, matching create/update semantics.
func parsePricingTiers(value string) []pricingTier {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			log.Printf("failed to parse pricing_tiers: %v", err)
			return nil
		}
		trimmed = inner
	}

	var tiers []pricingTier
	if err := json.Unmarshal([]byte(trimmed), &tiers); err != nil {
		log.Printf("failed to parse pricing_tiers: %v", err)
		return nil
	}
	return tiers
}

// mapPricingTiers folds tiers into a pricing struct. Only the five exact
// bands are recognized: (1,1) (2,2) (3,5) (6,9) (10,nil); anything else is
// silently dropped. Bands not mentioned keep their value from base.
func mapPricingTiers(tiers []pricingTier, base models.Pricing) models.Pricing {
	pricing := base
	for _, tier := range tiers {
		switch {
		case tier.MinPax == 1 && tier.MaxPax != nil && *tier.MaxPax == 1:
			pricing.Solo = tier.PricePerPerson
		case tier.MinPax == 2 && tier.MaxPax != nil && *tier.MaxPax == 2:
			pricing.TwoPax = tier.PricePerPerson
		case tier.MinPax == 3 && tier.MaxPax != nil && *tier.MaxPax == 5:
			pricing.ThreeToFivePax = tier.PricePerPerson
		case tier.MinPax == 6 && tier.MaxPax != nil && *tier.MaxPax == 9:
			pricing.SixToNinePax = tier.PricePerPerson
		case tier.MinPax == 10 && tier.MaxPax == nil:
			pricing.TenPaxAbove = tier.PricePerPerson
		}
	}
	return pricing
}
