package scrape

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/lodnet/luach/internal/hebtext"
	"github.com/lodnet/luach/internal/logger"
	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/utils"
)

const (
	bizznessBase     = "https://bizzness.net/"
	bizznessLinkCap  = 20
	bizznessFetchCap = 16
)

var (
	bizznessLinkPattern = regexp.MustCompile(`(?i)<a\s+href="(https://bizzness\.net/[^"]+/)"[^>]*>\s*<img[^>]+data-lazy-src="([^"]+)"`)
	entryContentRegion  = regexp.MustCompile(`(?s)<div class="row entry-content">(.*?)</div><!-- \.entry-content -->`)
	paragraphPattern    = regexp.MustCompile(`<p>([^<]+)</p>`)
	fallbackParagraph   = regexp.MustCompile(`<p>([^<]{50,500})</p>`)
)

type articleLink struct {
	url      string
	imageURL string
}

// extractBizznessLinks pulls article URLs and thumbnails from the homepage,
// skipping category and author navigation pages.
func extractBizznessLinks(html string) []articleLink {
	var links []articleLink
	seen := map[string]bool{}

	for _, m := range bizznessLinkPattern.FindAllStringSubmatch(html, -1) {
		if len(links) >= bizznessLinkCap {
			break
		}
		articleURL, imageURL := m[1], m[2]
		if strings.Contains(articleURL, "/category/") || strings.Contains(articleURL, "/author/") {
			continue
		}
		if seen[articleURL] {
			continue
		}
		seen[articleURL] = true
		links = append(links, articleLink{url: articleURL, imageURL: imageURL})
	}

	return links
}

// extractArticleBody pulls body paragraphs out of an article page via the
// template's entry-content container, with a first-substantial-paragraph
// fallback when the container pattern misses.
func extractArticleBody(html string) string {
	if region := entryContentRegion.FindStringSubmatch(html); region != nil {
		var paragraphs []string
		for _, p := range paragraphPattern.FindAllStringSubmatch(region[1], -1) {
			cleaned := hebtext.CleanHTML(p[1])
			if len([]rune(cleaned)) > 20 {
				paragraphs = append(paragraphs, cleaned)
			}
		}
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}

	if m := fallbackParagraph.FindStringSubmatch(html); m != nil {
		return hebtext.CleanHTML(m[1])
	}
	return ""
}

// titleFromSlug derives an article title from its URL path.
func titleFromSlug(articleURL string) string {
	slug := strings.TrimSuffix(strings.TrimPrefix(articleURL, bizznessBase), "/")
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}
	return strings.ReplaceAll(slug, "-", " ")
}

func (s *Scraper) fetchBizznessArticle(ctx context.Context, link articleLink) *models.Listing {
	title := titleFromSlug(link.url)
	if hebtext.IsNavigationText(title) || len([]rune(title)) < 10 {
		return nil
	}

	html, err := s.fetchHTML(ctx, link.url, desktopUserAgent)
	if err != nil {
		logger.Get().Warn().Err(err).Str("url", link.url).Msg("article fetch failed")
		return nil
	}

	content := extractArticleBody(html)
	if len([]rune(content)) < 30 {
		return nil
	}

	return &models.Listing{
		Title:    utils.Truncate(title, headlineMaxLen),
		Summary:  utils.Truncate(content, summaryMaxLen),
		Content:  content,
		ImageURL: link.imageURL,
		Date:     s.now(),
	}
}

// EconomyNews fetches the economy source homepage and then each linked
// article page sequentially, bounded by a fixed cap.
func (s *Scraper) EconomyNews(ctx context.Context) ([]models.Listing, error) {
	html, err := s.fetchHTML(ctx, bizznessBase, desktopUserAgent)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("economy homepage fetch failed")
		return nil, nil
	}

	links := extractBizznessLinks(html)
	if len(links) > bizznessFetchCap {
		links = links[:bizznessFetchCap]
	}

	var articles []models.Listing
	for _, link := range links {
		article := s.fetchBizznessArticle(ctx, link)
		if article == nil {
			continue
		}
		article.ID = utils.StableID("economy", article.Title)
		article.Topic = "חדשות כלכלה"
		articles = append(articles, *article)
	}

	logger.Get().Info().Int("articles", len(articles)).Msg("economy news fetched")
	return articles, nil
}
