package query

import (
	"sort"
	"strings"

	"github.com/lodnet/luach/internal/models"
)

// Quote glyphs stripped during normalization; Hebrew geresh/gershayim and
// their ASCII stand-ins are used interchangeably in the source documents.
var quoteGlyphs = strings.NewReplacer(`"`, "", "'", "", "׳", "", "״", "", "‘", "", "’", "", "“", "", "”", "")

// Normalize produces the de-duplication key for city and profession
// values: trimmed, lowercased, quote glyphs stripped, whitespace collapsed.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = quoteGlyphs.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// SplitProfessions splits a profession field on commas into individual
// specialties.
func SplitProfessions(profession string) []string {
	if profession == "" {
		return nil
	}
	parts := strings.FieldsFunc(profession, func(r rune) bool {
		return r == ',' || r == '،'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FilterProfessionals keeps records matching the given city and
// profession under normalized comparison; a profession matches when any
// of the record's comma-separated specialties matches.
func FilterProfessionals(items []models.Professional, city, profession string) []models.Professional {
	normCity := Normalize(city)
	normProfession := Normalize(profession)

	filtered := make([]models.Professional, 0, len(items))
	for _, item := range items {
		if city != "" && Normalize(item.City) != normCity {
			continue
		}
		if profession != "" {
			matched := false
			for _, p := range SplitProfessions(item.Profession) {
				if Normalize(p) == normProfession {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// distinctNormalized keeps one original-cased representative per
// normalized key, sorted.
func distinctNormalized(values []string) []string {
	seen := map[string]string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := Normalize(v)
		if _, ok := seen[key]; !ok {
			seen[key] = v
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ProfessionalCities returns the distinct city values.
func ProfessionalCities(items []models.Professional) []string {
	var cities []string
	for _, item := range items {
		if item.City != "" {
			cities = append(cities, item.City)
		}
	}
	return distinctNormalized(cities)
}

// Professions returns the distinct individual specialties.
func Professions(items []models.Professional) []string {
	var professions []string
	for _, item := range items {
		professions = append(professions, SplitProfessions(item.Profession)...)
	}
	return distinctNormalized(professions)
}
