package gst

import "math"

// DefaultMarginPercent applies when a category has no margin entry.
const DefaultMarginPercent = 15

// Pricer derives suggested selling prices from cost prices using
// category-specific markup percentages.
type Pricer struct {
	Margins       map[Category]float64
	DefaultMargin float64
}

// DefaultCategoryMargins returns the stock markup table. These are margins,
// not tax rates; the two tables are unrelated.
func DefaultCategoryMargins() map[Category]float64 {
	return map[Category]float64{
		CategoryGrocery:     10,
		CategoryDairy:       25,
		CategoryBeverages:   8,
		CategorySnacks:      30,
		CategoryPersonal:    15,
		CategoryHousehold:   20,
		CategoryClothing:    20,
		CategoryElectronics: 15,
		CategoryPharmacy:    20,
		CategoryRestaurant:  30,
		CategoryHardware:    20,
		CategoryStationery:  25,
	}
}

// DefaultPricer builds a pricer over the stock margin table.
func DefaultPricer() Pricer {
	return Pricer{Margins: DefaultCategoryMargins(), DefaultMargin: DefaultMarginPercent}
}

// SuggestSellingPrice returns cost plus the category margin, rounded to two
// decimals. Non-positive cost yields 0.
func (p Pricer) SuggestSellingPrice(costPrice float64, category Category) float64 {
	if costPrice <= 0 || math.IsNaN(costPrice) {
		return 0
	}
	margin, ok := p.Margins[category]
	if !ok {
		margin = p.DefaultMargin
	}
	return RoundRupees(costPrice + costPrice*margin/100)
}

// RoundRupees rounds to two decimal places, half away from zero, matching
// the display formatting of amounts elsewhere in the system. Margins below
// half a paisa vanish here, so a suggested price can equal the cost.
func RoundRupees(amount float64) float64 {
	return math.Round(amount*100) / 100
}
