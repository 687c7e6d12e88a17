package hebtext

import (
	"sort"
	"strings"
)

// Gazetteer of city names recognised in listing text.
var cities = []string{
	"ירושלים", "תל אביב", "חיפה", "באר שבע", "ראשון לציון", "פתח תקווה", "אשדוד", "נתניה",
	"בני ברק", "חולון", "רמת גן", "אשקלון", "בת ים", "רחובות", "הרצליה", "כפר סבא",
	"חדרה", "בית שמש", "מודיעין", "רעננה", "לוד", "רמלה", "גבעתיים", "נהריה", "עכו",
	"קריית גת", "אילת", "עפולה", "נצרת", "כרמיאל", "טבריה", "צפת", "דימונה",
	"אלעד", "ביתר עילית", "מודיעין עילית", "עמנואל", "קריית ספר",
	"אריאל", "מעלה אדומים", "גבעת זאב", "אפרת", "קרית ארבע",
}

// Apartment and real-estate category labels, including both geresh glyph
// variants that appear in document names.
var apartmentCategories = []string{
	"דירות להשכרה", "דירות למכירה", "דירות", "נדל״ן", "נדל\"ן", "נדל״ן בלוד",
}

func init() {
	// Longest-first so a compound name is matched before a shorter name it
	// contains (e.g. מודיעין עילית before מודיעין).
	sort.SliceStable(cities, func(i, j int) bool {
		return len([]rune(cities[i])) > len([]rune(cities[j]))
	})
}

// DetectCity returns the first gazetteer city contained in text, or "".
func DetectCity(text string) string {
	if text == "" {
		return ""
	}
	for _, city := range cities {
		if strings.Contains(text, city) {
			return city
		}
	}
	return ""
}

// IsApartmentCategory reports whether topic names an apartment or
// real-estate category. The containment test runs both ways so loosely
// punctuated variants of a label still match.
func IsApartmentCategory(topic string) bool {
	if topic == "" {
		return false
	}
	for _, cat := range apartmentCategories {
		if strings.Contains(topic, cat) || strings.Contains(cat, topic) {
			return true
		}
	}
	return false
}
