// Package docparse turns exported plain-text documents into discrete
// listing and professional records.
package docparse

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/utils"
)

const titleMaxLen = 60

var headingStart = regexp.MustCompile(`(?m)^## `)
var headingLine = regexp.MustCompile(`^## .+\n?`)

// splitAt slices content into segments starting at each match of re,
// keeping any preamble before the first match as segment 0 so that
// segment indices stay stable.
func splitAt(re *regexp.Regexp, content string) []string {
	locs := re.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return []string{content}
	}
	var sections []string
	if locs[0][0] > 0 {
		sections = append(sections, content[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, content[loc[0]:end])
	}
	return sections
}

// ParseListings splits a category document into listings at each `## `
// heading. The listing id is `<docID>-<segmentIndex>`; it is stable across
// re-fetches of unchanged content but shifts if segments are reordered
// upstream, which is accepted because the document is the source of truth.
func ParseListings(content, topic, docID string, now time.Time) []models.Listing {
	var listings []models.Listing

	sections := splitAt(headingStart, content)
	for i, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if !strings.HasPrefix(section, "## ") {
			continue
		}

		body := strings.TrimSpace(headingLine.ReplaceAllString(section, ""))
		if body == "" {
			continue
		}

		title := ""
		for _, line := range strings.Split(body, "\n") {
			if strings.TrimSpace(line) != "" {
				title = utils.Truncate(line, titleMaxLen)
				break
			}
		}
		if title == "" {
			continue
		}

		listings = append(listings, models.Listing{
			ID:       fmt.Sprintf("%s-%d", docID, i),
			Title:    title,
			Content:  body,
			Topic:    topic,
			Date:     now,
			ImageURL: PlaceholderImage(topic),
		})
	}

	return listings
}

// Themed placeholder colors and icons per topic; the client substitutes
// these when a source supplies no image.
var topicStyles = map[string]struct{ bg, icon string }{
	"דירות":       {"4A90A4", "🏠"},
	"דירה":        {"4A90A4", "🏠"},
	"משרות":       {"7B68A6", "💼"},
	"משרה":        {"7B68A6", "💼"},
	"רכבים":       {"5D8AA8", "🚗"},
	"רכב":         {"5D8AA8", "🚗"},
	"ריהוט":       {"A67B5B", "🪑"},
	"אלקטרוניקה":  {"708090", "📱"},
	"ביגוד":       {"C08081", "👔"},
	"ספרים":       {"8B7355", "📚"},
	"כללי":        {"6B8E6B", "📦"},
}

// PlaceholderImage returns a themed placeholder image URL for a topic.
func PlaceholderImage(topic string) string {
	style, ok := topicStyles[topic]
	if !ok {
		style = struct{ bg, icon string }{"81B29A", "📦"}
	}
	return "https://placehold.co/800x400/" + style.bg + "/ffffff?text=" + url.QueryEscape(style.icon)
}
