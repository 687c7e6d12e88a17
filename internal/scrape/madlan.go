package scrape

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lodnet/luach/internal/logger"
	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/utils"
)

const (
	madlanURL         = "https://www.madlan.co.il/for-sale/%D7%91%D7%A2%D7%9C-%D7%94%D7%AA%D7%A0%D7%99%D7%90-%D7%9C%D7%95%D7%93-%D7%99%D7%A9%D7%A8%D7%90%D7%9C"
	realEstateItemCap = 10
)

// Property attributes embedded as JSON in the listings page.
var propertyPattern = regexp.MustCompile(`"address":"([^"]+)"[^}]*?"beds":([\d.]+)[^}]*?"floor":"?(\d+)"?[^}]*?"area":(\d+)[^}]*?"price":(\d+)`)

type property struct {
	address string
	beds    float64
	floor   int
	area    int
	price   int
}

func extractProperties(html string) []property {
	var properties []property
	seen := map[string]bool{}

	for _, m := range propertyPattern.FindAllStringSubmatch(html, -1) {
		if len(properties) >= realEstateItemCap {
			break
		}
		address := m[1]
		if seen[address] {
			continue
		}
		seen[address] = true

		beds, _ := strconv.ParseFloat(m[2], 64)
		floor, _ := strconv.Atoi(m[3])
		area, _ := strconv.Atoi(m[4])
		price, _ := strconv.Atoi(m[5])
		if price <= 0 {
			continue
		}
		properties = append(properties, property{address, beds, floor, area, price})
	}

	return properties
}

// groupDigits formats a price with thousands separators.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

// RealEstate scrapes the local for-sale listings page.
func (s *Scraper) RealEstate(ctx context.Context) ([]models.Listing, error) {
	html, err := s.fetchHTML(ctx, madlanURL, desktopUserAgent)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("real estate fetch failed")
		return nil, nil
	}

	now := s.now()
	var listings []models.Listing
	for _, p := range extractProperties(html) {
		price := groupDigits(p.price)
		beds := strconv.FormatFloat(p.beds, 'f', -1, 64)
		listings = append(listings, models.Listing{
			ID:      utils.StableID("realestate", p.address),
			Title:   p.address,
			Summary: fmt.Sprintf(`%s חדרים | קומה %d | %d מ"ר | ₪%s`, beds, p.floor, p.area, price),
			Content: fmt.Sprintf("כתובת: %s\n\nמחיר: ₪%s\nחדרים: %s\nקומה: %d\nשטח: %d מ\"ר",
				p.address, price, beds, p.floor, p.area),
			Topic: "נדל״ן בלוד",
			Date:  now,
		})
	}

	logger.Get().Info().Int("listings", len(listings)).Msg("real estate fetched")
	return listings, nil
}
