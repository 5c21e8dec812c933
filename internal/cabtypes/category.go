package cabtypes

import "strings"

// Known car categories, most specific names first so "Innova Crysta" is not
// swallowed by "Innova".
var categoryKeywords = []string{
	"Innova Crysta",
	"Innova",
	"Urbenia",
	"Minibus",
	"Tempo",
	"SUV",
	"Sedan",
}

// DeriveCategory maps a car option's name and description to a coarse
// vehicle category. Returns "" when nothing matches; callers default the
// category themselves.
func DeriveCategory(name, description string) string {
	haystack := strings.ToLower(name + " " + description)
	for _, keyword := range categoryKeywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return keyword
		}
	}
	return ""
}
