package catalog

import (
	"strings"

	"github.com/smartdukaan/backend-dukaan/internal/gst"
)

// StandardProduct is a well-known kirana item used to auto-fill the product
// form when the shopkeeper types a recognisable name.
type StandardProduct struct {
	Keywords []string
	Name     string
	Category gst.Category
	Unit     string
}

// StandardProducts is the built-in autofill table. Keyword matching is
// case-insensitive and first match wins, so more specific entries must come
// before generic ones within a group.
var StandardProducts = []StandardProduct{
	// Grocery
	{Keywords: []string{"basmati", "rice"}, Name: "Basmati Rice (5kg)", Category: gst.CategoryGrocery, Unit: "packet"},
	{Keywords: []string{"sona", "masoori", "everyday rice"}, Name: "Sona Masoori Rice (5kg)", Category: gst.CategoryGrocery, Unit: "packet"},
	{Keywords: []string{"atta", "wheat flour"}, Name: "Whole Wheat Atta (10kg)", Category: gst.CategoryGrocery, Unit: "packet"},
	{Keywords: []string{"sugar", "refined"}, Name: "Sugar (Refined)", Category: gst.CategoryGrocery, Unit: "kg"},
	{Keywords: []string{"oil", "sunflower", "ricebran"}, Name: "Refined Cooking Oil (1L)", Category: gst.CategoryGrocery, Unit: "liter"},
	{Keywords: []string{"toor", "arhar", "dal"}, Name: "Toor Dal", Category: gst.CategoryGrocery, Unit: "kg"},
	{Keywords: []string{"chana", "chickpeas"}, Name: "Chana Dal", Category: gst.CategoryGrocery, Unit: "kg"},
	{Keywords: []string{"salt", "iodized"}, Name: "Iodized Salt", Category: gst.CategoryGrocery, Unit: "kg"},

	// Dairy
	{Keywords: []string{"milk", "toned", "fresh"}, Name: "Milk (Fresh/Toned)", Category: gst.CategoryDairy, Unit: "liter"},
	{Keywords: []string{"ghee"}, Name: "Ghee", Category: gst.CategoryDairy, Unit: "kg"},
	{Keywords: []string{"paneer"}, Name: "Paneer (200g)", Category: gst.CategoryDairy, Unit: "packet"},
	{Keywords: []string{"curd", "dahi"}, Name: "Curd (500g)", Category: gst.CategoryDairy, Unit: "packet"},
	{Keywords: []string{"butter"}, Name: "Butter (Unsalted, 250g)", Category: gst.CategoryDairy, Unit: "packet"},
	{Keywords: []string{"milk powder"}, Name: "Milk Powder (1kg)", Category: gst.CategoryDairy, Unit: "kg"},
	{Keywords: []string{"cheese", "slice"}, Name: "Cheese Slices (200g)", Category: gst.CategoryDairy, Unit: "packet"},
	{Keywords: []string{"flavoured milk", "tetra"}, Name: "Flavoured Milk (200ml)", Category: gst.CategoryDairy, Unit: "packet"},

	// Beverages
	{Keywords: []string{"tea", "chai"}, Name: "Tea Packet", Category: gst.CategoryBeverages, Unit: "kg"},
	{Keywords: []string{"coffee", "instant"}, Name: "Instant Coffee (100g)", Category: gst.CategoryBeverages, Unit: "box"},
	{Keywords: []string{"green tea", "tea bags"}, Name: "Green Tea Bags (25s)", Category: gst.CategoryBeverages, Unit: "box"},
	{Keywords: []string{"juice", "fruit"}, Name: "Fruit Juice (1L)", Category: gst.CategoryBeverages, Unit: "liter"},
	{Keywords: []string{"soft drink", "soda"}, Name: "Soft Drink (2L)", Category: gst.CategoryBeverages, Unit: "piece"},
	{Keywords: []string{"water", "mineral"}, Name: "Mineral Water (1L)", Category: gst.CategoryBeverages, Unit: "liter"},
	{Keywords: []string{"energy", "drink"}, Name: "Energy Drink (250ml)", Category: gst.CategoryBeverages, Unit: "piece"},
	{Keywords: []string{"health drink", "horlicks", "bournvita"}, Name: "Health Drink (500g)", Category: gst.CategoryBeverages, Unit: "packet"},

	// Snacks
	{Keywords: []string{"chips", "potato"}, Name: "Potato Chips", Category: gst.CategorySnacks, Unit: "packet"},
	{Keywords: []string{"biscuit", "family"}, Name: "Biscuits (Family Pack 300g)", Category: gst.CategorySnacks, Unit: "packet"},
	{Keywords: []string{"namkeen", "bhujia"}, Name: "Namkeen (200g)", Category: gst.CategorySnacks, Unit: "packet"},
	{Keywords: []string{"chocolate", "bar"}, Name: "Chocolate Bar (50g)", Category: gst.CategorySnacks, Unit: "piece"},
	{Keywords: []string{"cookie"}, Name: "Cookies (200g)", Category: gst.CategorySnacks, Unit: "packet"},
	{Keywords: []string{"noodle", "maggi"}, Name: "Instant Noodles", Category: gst.CategorySnacks, Unit: "packet"},
	{Keywords: []string{"popcorn"}, Name: "Popcorn (100g)", Category: gst.CategorySnacks, Unit: "packet"},
	{Keywords: []string{"peanut"}, Name: "Roasted Peanuts (200g)", Category: gst.CategorySnacks, Unit: "packet"},

	// Personal care
	{Keywords: []string{"soap", "bath"}, Name: "Bath Soap (75g)", Category: gst.CategoryPersonal, Unit: "piece"},
	{Keywords: []string{"shampoo"}, Name: "Shampoo (180ml)", Category: gst.CategoryPersonal, Unit: "piece"},
	{Keywords: []string{"toothpaste"}, Name: "Toothpaste (100g)", Category: gst.CategoryPersonal, Unit: "piece"},
	{Keywords: []string{"toothbrush"}, Name: "Toothbrush", Category: gst.CategoryPersonal, Unit: "piece"},
	{Keywords: []string{"deodorant", "spray"}, Name: "Deodorant (150ml)", Category: gst.CategoryPersonal, Unit: "piece"},
	{Keywords: []string{"handwash"}, Name: "Handwash (500ml)", Category: gst.CategoryPersonal, Unit: "piece"},
	{Keywords: []string{"blade", "shaving"}, Name: "Shaving Blades (5s)", Category: gst.CategoryPersonal, Unit: "packet"},
	{Keywords: []string{"sanitary", "pads"}, Name: "Sanitary Pads (8s)", Category: gst.CategoryPersonal, Unit: "packet"},

	// Household
	{Keywords: []string{"detergent", "powder"}, Name: "Detergent Powder (1kg)", Category: gst.CategoryHousehold, Unit: "kg"},
	{Keywords: []string{"dishwash", "liquid"}, Name: "Dishwash Liquid (500ml)", Category: gst.CategoryHousehold, Unit: "piece"},
	{Keywords: []string{"toilet", "cleaner"}, Name: "Toilet Cleaner (500ml)", Category: gst.CategoryHousehold, Unit: "piece"},
	{Keywords: []string{"floor", "cleaner", "phenyl"}, Name: "Floor Cleaner (1L)", Category: gst.CategoryHousehold, Unit: "liter"},
	{Keywords: []string{"coil", "mosquito"}, Name: "Mosquito Coil (10s)", Category: gst.CategoryHousehold, Unit: "packet"},
	{Keywords: []string{"garbage", "bin", "liner"}, Name: "Garbage Bags (50s)", Category: gst.CategoryHousehold, Unit: "packet"},
	{Keywords: []string{"foil", "aluminium"}, Name: "Aluminium Foil (10m)", Category: gst.CategoryHousehold, Unit: "piece"},
	{Keywords: []string{"bulb", "led"}, Name: "LED Bulb", Category: gst.CategoryHousehold, Unit: "piece"},
}

// FindStandardProduct returns the first standard product whose keywords
// appear in the given name. The bool reports whether a match was found.
func FindStandardProduct(name string) (StandardProduct, bool) {
	if strings.TrimSpace(name) == "" {
		return StandardProduct{}, false
	}
	lower := strings.ToLower(name)
	for _, p := range StandardProducts {
		for _, keyword := range p.Keywords {
			if strings.Contains(lower, keyword) {
				return p, true
			}
		}
	}
	return StandardProduct{}, false
}
