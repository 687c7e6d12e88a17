package docparse

import (
	"regexp"
	"strings"

	"github.com/lodnet/luach/internal/models"
)

var (
	professionalStart   = regexp.MustCompile(`(?m)^##\s*\d+`)
	professionalHeading = regexp.MustCompile(`^##\s*(\d+)`)
	professionalStrip   = regexp.MustCompile(`^##\s*\d+\s*`)

	// Israeli landline or mobile number, loosely matched.
	phonePattern = regexp.MustCompile(`0\d{1,2}[-\s]?\d{7,8}|05\d[-\s]?\d{3}[-\s]?\d{4}`)

	// A colon-free name line may still carry the שם label word.
	nameLabelPrefix = regexp.MustCompile(`^שם\s+`)
)

// Labeled-field extraction rules, tried in order per line. The first rule
// that matches a line claims it; a field keeps its first confident value.
var fieldRules = []struct {
	field string
	match *regexp.Regexp
	strip *regexp.Regexp
}{
	{"name", regexp.MustCompile(`^שם[:\s]`), regexp.MustCompile(`^שם[:\s]*`)},
	{"city", regexp.MustCompile(`^עיר[:\s]`), regexp.MustCompile(`^עיר[:\s]*`)},
	{"profession", regexp.MustCompile(`^מקצוע[:\s]`), regexp.MustCompile(`^מקצוע[:\s]*`)},
	{"phone", regexp.MustCompile(`^(?:טלפון|נייד|פלאפון)[:\s]`), regexp.MustCompile(`^(?:טלפון|נייד|פלאפון)[:\s]*`)},
}

// ParseProfessionals splits the professionals document on numbered `## <n>`
// headings and extracts labeled fields from each section, with unlabeled
// fallbacks for documents that skip the field labels.
func ParseProfessionals(content string) []models.Professional {
	var professionals []models.Professional

	for _, section := range splitAt(professionalStart, content) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		heading := professionalHeading.FindStringSubmatch(section)
		if heading == nil {
			continue
		}
		number := heading[1]
		body := strings.TrimSpace(professionalStrip.ReplaceAllString(section, ""))

		professionals = append(professionals, parseSection(body, number))
	}

	return professionals
}

func parseSection(body, number string) models.Professional {
	fields := map[string]string{}
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	for _, line := range lines {
		// The first line without a colon is taken as the name before any
		// labeled rule runs.
		if fields["name"] == "" && !strings.Contains(line, ":") {
			fields["name"] = strings.TrimSpace(nameLabelPrefix.ReplaceAllString(line, ""))
			continue
		}

		labeled := false
		for _, rule := range fieldRules {
			if rule.match.MatchString(line) {
				if fields[rule.field] == "" {
					fields[rule.field] = strings.TrimSpace(rule.strip.ReplaceAllString(line, ""))
				}
				labeled = true
				break
			}
		}
		if labeled {
			continue
		}

		if fields["phone"] == "" {
			if m := phonePattern.FindString(line); m != "" {
				fields["phone"] = m
				continue
			}
		}

		// Unlabeled fallback: a leftover line fills name, then profession.
		if fields["profession"] == "" && fields["city"] == "" && fields["phone"] == "" {
			if fields["name"] == "" {
				fields["name"] = line
			} else {
				fields["profession"] = line
			}
		}
	}

	name := fields["name"]
	if name == "" && len(lines) > 0 {
		name = lines[0]
	}
	if name == "" {
		name = "בעל מקצוע " + number
	}

	return models.Professional{
		ID:         "professional-" + number,
		Number:     number,
		Name:       name,
		City:       fields["city"],
		Profession: fields["profession"],
		Phone:      fields["phone"],
	}
}
