package pricing

import "strings"

// Categories are independent capability flags derived from the product name.
// They are not mutually exclusive: "PENDON MAS OJALES" is banner-like and a
// grommet banner at the same time, and each flag gates its own surcharge.
type Categories struct {
	BannerLike      bool
	StreetBanner    bool
	GrommetBanner   bool
	ReflectiveVinyl bool
	Microperforated bool
}

// Classify tests the product name against the category predicates.
// Comparisons are case-sensitive; catalog names are stored uppercase.
func Classify(name string) Categories {
	return Categories{
		BannerLike:      strings.Contains(name, "PENDON") || name == "PENDONES" || strings.Contains(name, "BANNER"),
		StreetBanner:    name == "PASACALLES",
		GrommetBanner:   name == "PENDON MAS OJALES",
		ReflectiveVinyl: name == "IMPRESIÓN EN VINILO REFLECTIVO",
		Microperforated: name == "VINILO MICROPERFORADO",
	}
}
