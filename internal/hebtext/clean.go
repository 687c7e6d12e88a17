package hebtext

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips tags, decodes HTML entities and collapses whitespace.
func CleanHTML(input string) string {
	cleaned := htmlTagRegex.ReplaceAllString(input, " ")
	cleaned = html.UnescapeString(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.TrimSpace(cleaned)
}

// Boilerplate, navigation and promotional phrases that must never surface
// as headlines.
var navTerms = []string{
	// Navigation
	"חדשות", "ראשי", "צור קשר", "אודות", "חיפוש", "תפריט",
	"הרשם", "התחבר", "שלח", "קרא עוד", "לקריאה",
	// Social
	"facebook", "youtube", "telegram", "instagram", "twitter", "tiktok",
	// Categories
	"חב\"ד בארץ", "חב\"ד בעולם", "גלריות", "שמחות", "מבצעים",
	"כלכלה", "נדל\"ן", "פיננסים", "טכנולוגי", "רכב", "מגזין",
	"טורים", "פרויקטים", "לוח", "בארץ", "בעולם",
	// Promotional / CTA (not articles)
	"הוסיפו", "הוסף", "פרסמו", "פרסם", "שלחו", "העלו", "הגישו",
	"האירוע שלכם", "הכתבה שלכם", "המודעה שלכם", "התמונה שלכם",
	"לפרסום", "להוספה", "להעלאה", "להגשה", "לשליחה",
	"הירשמו", "הצטרפו", "הרשמה", "הצטרפות",
	"לחצו כאן", "קליק", "לחץ",
	"פרסום באתר", "מודעה באתר", "שידור חי",
}

const minHeadlineLen = 15

// IsNavigationText rejects headline candidates that are site chrome,
// social-media labels or calls-to-action, and anything too short to be a
// real headline.
func IsNavigationText(text string) bool {
	lower := strings.ToLower(text)
	if utf8.RuneCountInString(lower) < minHeadlineLen {
		return true
	}
	for _, term := range navTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
