package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lodnet/luach/internal/cache"
	"github.com/lodnet/luach/internal/config"
	"github.com/lodnet/luach/internal/drive"
	"github.com/lodnet/luach/internal/middleware"
	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/store"
)

func fixedListings(items ...models.Listing) *cache.Dataset[models.Listing] {
	return cache.NewDataset("test-listings", time.Hour, func(ctx context.Context) ([]models.Listing, error) {
		return items, nil
	})
}

func fixedAds(items ...models.Ad) *cache.Dataset[models.Ad] {
	return cache.NewDataset("test-ads", time.Hour, func(ctx context.Context) ([]models.Ad, error) {
		return items, nil
	})
}

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()

	submissions, err := store.NewFileStore(filepath.Join(t.TempDir(), "submissions.json"))
	if err != nil {
		t.Fatal(err)
	}
	sessions := store.NewSessionStore(time.Hour)

	data := Datasets{
		Articles: fixedListings(
			models.Listing{ID: "doc1-1", Title: "דירה בלוד", Topic: "דירות להשכרה", City: "לוד", Content: "דירת 3 חדרים מרווחת"},
			models.Listing{ID: "doc2-1", Title: "דרוש נהג", Topic: "דרושים", Content: "משרה מלאה"},
		),
		BannerAds: fixedAds(
			models.Ad{ID: "ad-1", ImageURL: "https://img/1", Position: models.PositionTop},
			models.Ad{ID: "ad-2", ImageURL: "https://img/2", Position: models.PositionSide},
		),
		PageAds:       fixedAds(),
		Professionals: cache.NewDataset("test-professionals", time.Hour, func(ctx context.Context) ([]models.Professional, error) { return nil, nil }),
		ChabadNews:    fixedListings(models.Listing{ID: "chabad-1", Title: "חדשה", Topic: "חדשות חב״ד"}),
		EconomyNews:   fixedListings(),
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	handlers := NewHandlers(cfg, data, drive.New(cfg), submissions, sessions)
	SetupRoutes(app, handlers, sessions)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func TestGetArticles(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var articles []models.Listing
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Content != "" {
		t.Error("list view leaked full content")
	}
	if articles[0].Summary == "" {
		t.Error("list view missing derived summary")
	}
}

func TestGetArticlesFiltered(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/articles?topic=%D7%93%D7%A8%D7%95%D7%A9%D7%99%D7%9D", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var articles []models.Listing
	json.NewDecoder(resp.Body).Decode(&articles)
	if len(articles) != 1 || articles[0].ID != "doc2-1" {
		t.Errorf("filtered articles = %+v", articles)
	}
}

func TestGetArticleByID(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	resp, _ := doJSON(t, app, http.MethodGet, "/api/articles/doc1-1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("existing article status = %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/articles/missing", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing article status = %d", resp.StatusCode)
	}
	if body["error"] != "Article not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestGetAdsPositionFilter(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/ads?position=top", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var ads []models.Ad
	json.NewDecoder(resp.Body).Decode(&ads)
	if len(ads) != 1 || ads[0].ID != "ad-1" {
		t.Errorf("filtered ads = %+v", ads)
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t, &config.Config{AdminPassword: "secret"})

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/login", "", fiber.Map{"password": "secret"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Error("login returned no token")
	}

	resp, body = doJSON(t, app, http.MethodPost, "/api/admin/login", "", fiber.Map{"password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad password status = %d", resp.StatusCode)
	}
	if body["error"] != "Invalid password" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/login", "", fiber.Map{"password": "anything"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Admin password not configured" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAdminEndpointsRequireSession(t *testing.T) {
	app := newTestApp(t, &config.Config{AdminPassword: "secret"})

	resp, body := doJSON(t, app, http.MethodGet, "/api/admin/submissions", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %v", body["error"])
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/admin/submissions", "bogus-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bogus token status = %d", resp.StatusCode)
	}
}

func TestSubmissionModerationFlow(t *testing.T) {
	app := newTestApp(t, &config.Config{AdminPassword: "secret"})

	// Submit is public.
	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/submit", "", fiber.Map{
		"category": "דירות להשכרה",
		"title":    "דירה חדשה",
		"content":  "דירת 4 חדרים",
		"contact":  "050-1234567",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d", resp.StatusCode)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("submit returned no id")
	}

	_, body = doJSON(t, app, http.MethodPost, "/api/admin/login", "", fiber.Map{"password": "secret"})
	token, _ := body["token"].(string)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/admin/submissions", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}

	// Without a write credential, approval hands back formatted content.
	resp, body = doJSON(t, app, http.MethodPost, "/api/admin/submissions/"+id+"/approve", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}
	if published, _ := body["published"].(bool); published {
		t.Error("published = true without a write credential")
	}
	formatted, _ := body["formattedContent"].(string)
	if formatted != "## דירה חדשה\nדירת 4 חדרים\n\nליצירת קשר: 050-1234567" {
		t.Errorf("formattedContent = %q", formatted)
	}

	// Approval consumed the submission.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/admin/submissions/"+id, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("delete after approve status = %d", resp.StatusCode)
	}
}

func TestSubmitValidation(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/submit", "", fiber.Map{"title": "חסר"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Missing required fields" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, &config.Config{AdminPassword: "secret"})

	_, body := doJSON(t, app, http.MethodPost, "/api/admin/login", "", fiber.Map{"password": "secret"})
	token, _ := body["token"].(string)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/logout", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}

	// The token is revoked.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/admin/submissions", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d", resp.StatusCode)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/nope", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Endpoint not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestGetAllNewsDoesNotMutateCachedSlices(t *testing.T) {
	// The cached chabad slice deliberately has spare capacity behind it,
	// guarded by a sentinel element.
	backing := make([]models.Listing, 2)
	backing[0] = models.Listing{ID: "chabad-1", Title: "חדשה", Topic: "חדשות חב״ד"}
	backing[1] = models.Listing{ID: "sentinel"}

	submissions, err := store.NewFileStore(filepath.Join(t.TempDir(), "submissions.json"))
	if err != nil {
		t.Fatal(err)
	}
	sessions := store.NewSessionStore(time.Hour)
	cfg := &config.Config{}

	data := Datasets{
		Articles:  fixedListings(),
		BannerAds: fixedAds(),
		PageAds:   fixedAds(),
		Professionals: cache.NewDataset("test-professionals", time.Hour, func(ctx context.Context) ([]models.Professional, error) {
			return nil, nil
		}),
		ChabadNews: cache.NewDataset("test-chabad", time.Hour, func(ctx context.Context) ([]models.Listing, error) {
			return backing[:1], nil
		}),
		EconomyNews: fixedListings(models.Listing{ID: "economy-1", Topic: "חדשות כלכלה"}),
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	SetupRoutes(app, NewHandlers(cfg, data, drive.New(cfg), submissions, sessions), sessions)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		var news []models.Listing
		if err := json.NewDecoder(resp.Body).Decode(&news); err != nil {
			t.Fatal(err)
		}
		if len(news) != 2 || news[0].ID != "chabad-1" || news[1].ID != "economy-1" {
			t.Fatalf("request %d combined news = %+v", i, news)
		}
	}

	if backing[1].ID != "sentinel" {
		t.Errorf("combined response wrote into the cached slice's backing array: %+v", backing[1])
	}
}

func TestGetNews(t *testing.T) {
	app := newTestApp(t, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/news/chabad", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var news []models.Listing
	json.NewDecoder(resp.Body).Decode(&news)
	if len(news) != 1 || news[0].Topic != "חדשות חב״ד" {
		t.Errorf("chabad news = %+v", news)
	}
}
