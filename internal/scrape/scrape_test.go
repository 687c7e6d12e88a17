package scrape

import (
	"strings"
	"testing"
)

const homepageHTML = `
<nav><a href="/about">אודות האתר שלנו ועוד מידע כללי</a></nav>
<div class="feed">
<a href="/article/1">ראש העיר הכריז על פתיחת מרכז קהילתי בשכונה הצפונית</a>
<a href="https://mirror.example/1">ראש העיר הכריז על פתיחת מרכז קהילתי בשכונה הצפונית</a>
</div>
<h2>תושבי השכונה התכנסו לערב התרמה גדול במרכז הקהילתי</h2>
`

func TestExtractHeadlines(t *testing.T) {
	items := extractHeadlines(homepageHTML, "https://news.example", 5)
	if len(items) != 2 {
		t.Fatalf("got %d headlines, want 2: %+v", len(items), items)
	}

	if items[0].title != "ראש העיר הכריז על פתיחת מרכז קהילתי בשכונה הצפונית" {
		t.Errorf("first title = %q", items[0].title)
	}
	if items[0].link != "https://news.example/article/1" {
		t.Errorf("relative link not resolved: %q", items[0].link)
	}

	// Heading matches carry no link of their own.
	if items[1].link != "https://news.example" {
		t.Errorf("heading link = %q", items[1].link)
	}
}

func TestExtractHeadlinesLimit(t *testing.T) {
	items := extractHeadlines(homepageHTML, "https://news.example", 1)
	if len(items) != 1 {
		t.Fatalf("got %d headlines, want 1", len(items))
	}
}

func TestExtractHeadlinesFiltersNavigation(t *testing.T) {
	for _, h := range extractHeadlines(homepageHTML, "https://news.example", 10) {
		if strings.Contains(h.title, "אודות") {
			t.Errorf("navigation text surfaced as headline: %q", h.title)
		}
	}
}
