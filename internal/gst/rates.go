package gst

import "strings"

// Category identifies a product category used for rate and margin defaults.
type Category string

// Known categories. Anything else resolves through the fallback defaults.
const (
	CategoryGrocery     Category = "grocery"
	CategoryElectronics Category = "electronics"
	CategoryPharmacy    Category = "pharmacy"
	CategoryClothing    Category = "clothing"
	CategoryHardware    Category = "hardware"
	CategoryStationery  Category = "stationery"
	CategoryRestaurant  Category = "restaurant"
	CategoryDairy       Category = "dairy"
	CategoryBeverages   Category = "beverages"
	CategorySnacks      Category = "snacks"
	CategoryPersonal    Category = "personal"
	CategoryHousehold   Category = "household"
	CategoryAutomobile  Category = "automobile"
	CategoryLuxury      Category = "luxury"
	CategoryUnknown     Category = ""
)

// DefaultRatePercent is the catch-all GST slab applied when neither a keyword
// nor a category default matches.
const DefaultRatePercent = 18

// KeywordRate binds a product-name keyword to a GST rate percent.
type KeywordRate struct {
	Keyword     string
	RatePercent float64
}

// Resolver determines the GST rate for a product from injected lookup tables.
// Keyword matching is first-match substring containment over the lower-cased
// product name, so table order is part of the contract. The short "ev"
// keyword also matches inside unrelated words ("never", "seven"); that is a
// known quirk of the stock table kept for compatibility.
type Resolver struct {
	Keywords []KeywordRate
	Category map[Category]float64
	Fallback float64
}

// DefaultKeywordRates returns the stock keyword table in its canonical order.
// Several keywords are substrings of each other ("ev" / "electric vehicle",
// "cigar" / "cigarette"), so reordering entries changes resolution results.
func DefaultKeywordRates() []KeywordRate {
	return []KeywordRate{
		// 0% exempt essentials
		{"milk", 0}, {"curd", 0}, {"egg", 0}, {"bread", 0}, {"vegetable", 0},
		{"fruit", 0}, {"grain", 0}, {"salt", 0}, {"flour", 0}, {"rice", 0},
		{"wheat", 0}, {"dal", 0}, {"fresh", 0},

		// 5% essentials
		{"butter", 5}, {"ghee", 5}, {"cheese", 5}, {"paneer", 5}, {"oil", 5},
		{"tea", 5}, {"coffee", 5}, {"sugar", 5}, {"spice", 5}, {"sweet", 5},
		{"footwear", 5}, {"shoe", 5}, {"sandal", 5},
		{"ev", 5}, {"electric vehicle", 5},

		// 12% pharma
		{"medicine", 12},

		// 18% electronics and personal care
		{"mobile", 18},
		{"soap", 18}, {"shampoo", 18}, {"paste", 18}, {"hair", 18}, {"cream", 18},
		{"tv", 28}, {"television", 28}, {"fridge", 28}, {"refrigerator", 28},
		{"monitor", 18}, {"laptop", 18}, {"computer", 18}, {"camera", 18},
		{"printer", 18}, {"cable", 18}, {"fan", 18}, {"light", 18},

		// 28% durables
		{"ac", 28}, {"conditioner", 28}, {"car", 28}, {"bike", 28},
		{"paint", 28}, {"cement", 28}, {"tobacco", 28},

		// 40% sin and luxury goods
		{"aerated", 40}, {"soda", 40}, {"cigarette", 40}, {"cigar", 40},
		{"luxury car", 40}, {"yacht", 40}, {"aircraft", 40},
	}
}

// DefaultCategoryRates returns the stock category GST defaults, used only
// when no keyword matches.
func DefaultCategoryRates() map[Category]float64 {
	return map[Category]float64{
		CategoryGrocery:     5,
		CategoryElectronics: 18,
		CategoryPharmacy:    12,
		CategoryClothing:    18,
		CategoryHardware:    18,
		CategoryStationery:  12,
		CategoryRestaurant:  5,
		CategoryDairy:       5, // milk itself is 0 via keyword
		CategoryBeverages:   18,
		CategorySnacks:      18,
		CategoryPersonal:    18,
		CategoryHousehold:   18,
		CategoryAutomobile:  28,
		CategoryLuxury:      40,
	}
}

// DefaultResolver builds a resolver over the stock tables.
func DefaultResolver() Resolver {
	return Resolver{
		Keywords: DefaultKeywordRates(),
		Category: DefaultCategoryRates(),
		Fallback: DefaultRatePercent,
	}
}

// Rate resolves the GST rate percent for a product. Keyword match wins over
// the category default, which wins over the fallback. Always returns a rate.
func (r Resolver) Rate(category Category, productName string) float64 {
	name := strings.ToLower(productName)
	if name != "" {
		for _, kw := range r.Keywords {
			if strings.Contains(name, kw.Keyword) {
				return kw.RatePercent
			}
		}
	}
	if category != CategoryUnknown {
		if rate, ok := r.Category[category]; ok {
			return rate
		}
	}
	return r.Fallback
}
