// Package scrape holds the source-specific adapters that fetch fixed
// external pages and regex-extract headlines or article content. Every
// adapter caps its own request volume and degrades to an empty result on
// failure so one broken source never aborts the aggregation.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lodnet/luach/internal/hebtext"
	"github.com/lodnet/luach/internal/logger"
	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/utils"
)

const (
	newsBotUserAgent = "Mozilla/5.0 (compatible; NewsBot/1.0)"
	desktopUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

	headlineMinLen = 20
	headlineMaxLen = 80
	summaryMaxLen  = 150
)

type Scraper struct {
	http *resty.Client
	now  func() time.Time
}

func New() *Scraper {
	return &Scraper{
		http: resty.New().
			SetTimeout(20 * time.Second).
			SetHeader("Accept", "text/html"),
		now: time.Now,
	}
}

func (s *Scraper) fetchHTML(ctx context.Context, url, userAgent string) (string, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", userAgent).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), url)
	}
	return string(resp.Body()), nil
}

var headlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<a[^>]*href="([^"]+)"[^>]*>([^<]{20,120})</a>`),
	regexp.MustCompile(`(?i)<h[123][^>]*>([^<]{20,120})</h[123]>`),
}

type headline struct {
	title string
	link  string
}

// extractHeadlines pulls headline text and links out of raw homepage HTML.
// Candidates pass the navigation-text filter and a minimum length check;
// duplicate titles within one fetch are suppressed.
func extractHeadlines(html, baseURL string, limit int) []headline {
	var items []headline
	seen := map[string]bool{}

	for _, pattern := range headlinePatterns {
		for _, m := range pattern.FindAllStringSubmatch(html, -1) {
			if len(items) >= limit {
				break
			}
			link := baseURL
			raw := m[1]
			if len(m) > 2 {
				link = m[1]
				raw = m[2]
			}
			title := hebtext.CleanHTML(raw)
			if hebtext.IsNavigationText(title) {
				continue
			}
			if link != "" && !strings.HasPrefix(link, "http") {
				if strings.HasPrefix(link, "/") {
					link = baseURL + link
				} else {
					link = baseURL + "/" + link
				}
			}
			if len([]rune(title)) <= headlineMinLen || seen[title] {
				continue
			}
			seen[title] = true
			items = append(items, headline{title: utils.Truncate(title, headlineMaxLen), link: link})
		}
	}

	return items
}

// headlines fetches one news homepage and extracts external-link items.
func (s *Scraper) headlines(ctx context.Context, pageURL, baseURL, sourceName string, limit int) []models.Listing {
	html, err := s.fetchHTML(ctx, pageURL, newsBotUserAgent)
	if err != nil {
		logger.Get().Warn().Err(err).Str("source", sourceName).Msg("headline fetch failed")
		return nil
	}

	now := s.now()
	var items []models.Listing
	for _, h := range extractHeadlines(html, baseURL, limit) {
		items = append(items, models.Listing{
			Title:      h.title,
			Summary:    fmt.Sprintf("מקור: %s | לחץ לקריאת הכתבה המלאה", sourceName),
			Link:       h.link,
			Date:       now,
			IsExternal: true,
		})
	}
	return items
}

// ChabadNews fetches headlines from the two community news sources
// concurrently and merges them under one topic.
func (s *Scraper) ChabadNews(ctx context.Context) ([]models.Listing, error) {
	type result struct {
		order int
		items []models.Listing
	}
	results := make(chan result, 2)

	go func() {
		results <- result{0, s.headlines(ctx, "https://col.org.il/main", "https://col.org.il", "חב״ד און ליין", 5)}
	}()
	go func() {
		results <- result{1, s.headlines(ctx, "https://chabadupdates.com/", "https://chabadupdates.com", "עדכוני חב\"ד", 5)}
	}()

	parts := make([][]models.Listing, 2)
	for i := 0; i < 2; i++ {
		r := <-results
		parts[r.order] = r.items
	}

	merged := append(parts[0], parts[1]...)
	if len(merged) > 10 {
		merged = merged[:10]
	}

	for i := range merged {
		merged[i].ID = utils.StableID("chabad", merged[i].Title)
		merged[i].Topic = "חדשות חב״ד"
		if merged[i].Content == "" {
			// Ensure content exists for the article view.
			merged[i].Content = merged[i].Summary
		}
	}
	return merged, nil
}
