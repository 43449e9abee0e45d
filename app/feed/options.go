package feed

import (
	"strings"

	"github.com/samber/lo"
)

// Regions lists supported region codes, the first one is the default.
var Regions = []string{"us", "gb", "in", "au"}

// Categories lists supported categories, empty means all of them.
var Categories = []string{"", "business", "entertainment", "health", "science", "sports", "technology"}

var regionNames = map[string]string{
	"us": "USA",
	"gb": "UK",
	"in": "India",
	"au": "Australia",
}

// RegionName returns a human readable name of the region.
func RegionName(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return code
}

// CategoryName returns a human readable name of the category.
func CategoryName(cat string) string {
	if cat == "" {
		return "All"
	}
	return strings.ToUpper(cat[:1]) + cat[1:]
}

// ValidRegion reports whether the region code is supported.
func ValidRegion(code string) bool { return lo.Contains(Regions, code) }

// ValidCategory reports whether the category is supported.
func ValidCategory(cat string) bool { return lo.Contains(Categories, cat) }

// NextRegion returns the region following the given one, wrapping around.
func NextRegion(code string) string { return next(Regions, code) }

// NextCategory returns the category following the given one, wrapping around.
func NextCategory(cat string) string { return next(Categories, cat) }

func next(list []string, cur string) string {
	idx := lo.IndexOf(list, cur)
	return list[(idx+1)%len(list)]
}
