// Package query implements pure filtering and distinct-value derivation
// over the currently cached collections.
package query

import (
	"sort"

	"github.com/lodnet/luach/internal/hebtext"
	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/utils"
)

const summaryMaxLen = 150

// FilterListings keeps items whose topic and city match exactly. Empty
// filter values match everything.
func FilterListings(items []models.Listing, topic, city string) []models.Listing {
	filtered := make([]models.Listing, 0, len(items))
	for _, item := range items {
		if topic != "" && item.Topic != topic {
			continue
		}
		if city != "" && item.City != city {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Summaries strips full content for list views, deriving a summary from a
// truncated content prefix when the source supplied none.
func Summaries(items []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(items))
	for _, item := range items {
		if item.Summary == "" && item.Content != "" {
			item.Summary = utils.Truncate(item.Content, summaryMaxLen)
		}
		item.Content = ""
		out = append(out, item)
	}
	return out
}

// Topics returns the distinct topic values in insertion order.
func Topics(items []models.Listing) []string {
	seen := map[string]bool{}
	topics := []string{}
	for _, item := range items {
		if !seen[item.Topic] {
			seen[item.Topic] = true
			topics = append(topics, item.Topic)
		}
	}
	return topics
}

// Cities returns the distinct, sorted city values over apartment-category
// items, optionally restricted to one topic.
func Cities(items []models.Listing, topic string) []string {
	seen := map[string]bool{}
	cities := []string{}
	for _, item := range items {
		if topic != "" && item.Topic != topic {
			continue
		}
		if !hebtext.IsApartmentCategory(item.Topic) {
			continue
		}
		if item.City == "" || seen[item.City] {
			continue
		}
		seen[item.City] = true
		cities = append(cities, item.City)
	}
	sort.Strings(cities)
	return cities
}

// FindListing returns the listing with the given id, or false.
func FindListing(items []models.Listing, id string) (models.Listing, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Listing{}, false
}
