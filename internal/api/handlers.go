package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/lodnet/luach/internal/cache"
	"github.com/lodnet/luach/internal/config"
	"github.com/lodnet/luach/internal/drive"
	"github.com/lodnet/luach/internal/logger"
	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/query"
	"github.com/lodnet/luach/internal/store"
)

// Datasets are the cached collections served by the API.
type Datasets struct {
	Articles      *cache.Dataset[models.Listing]
	BannerAds     *cache.Dataset[models.Ad]
	PageAds       *cache.Dataset[models.Ad]
	Professionals *cache.Dataset[models.Professional]
	ChabadNews    *cache.Dataset[models.Listing]
	EconomyNews   *cache.Dataset[models.Listing]
}

type Handlers struct {
	cfg         *config.Config
	data        Datasets
	drive       *drive.Client
	submissions store.SubmissionStore
	sessions    *store.SessionStore
	validate    *validator.Validate
}

func NewHandlers(cfg *config.Config, data Datasets, driveClient *drive.Client, submissions store.SubmissionStore, sessions *store.SessionStore) *Handlers {
	return &Handlers{
		cfg:         cfg,
		data:        data,
		drive:       driveClient,
		submissions: submissions,
		sessions:    sessions,
		validate:    validator.New(),
	}
}

// HealthCheck handles GET /api/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GetArticles handles GET /api/articles?topic=&city=
func (h *Handlers) GetArticles(c *fiber.Ctx) error {
	articles, err := h.data.Articles.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	filtered := query.FilterListings(articles, c.Query("topic"), c.Query("city"))
	return c.JSON(query.Summaries(filtered))
}

// GetTopics handles GET /api/articles/topics
func (h *Handlers) GetTopics(c *fiber.Ctx) error {
	articles, err := h.data.Articles.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(query.Topics(articles))
}

// GetCities handles GET /api/articles/cities?topic=
func (h *Handlers) GetCities(c *fiber.Ctx) error {
	articles, err := h.data.Articles.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(query.Cities(articles, c.Query("topic")))
}

// GetArticleByID handles GET /api/articles/:id
func (h *Handlers) GetArticleByID(c *fiber.Ctx) error {
	articles, err := h.data.Articles.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	article, ok := query.FindListing(articles, c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Article not found"})
	}
	return c.JSON(article)
}

// RefreshArticles handles POST /api/articles/refresh
func (h *Handlers) RefreshArticles(c *fiber.Ctx) error {
	articles, err := h.data.Articles.ForceRefresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message":     "Cache refreshed",
		"count":       len(articles),
		"nextRefresh": h.data.Articles.ExpiresAt().Format(time.RFC3339),
	})
}

// CacheStatus handles GET /api/articles/cache/status
func (h *Handlers) CacheStatus(c *fiber.Ctx) error {
	status := h.data.Articles.Status()
	return c.JSON(fiber.Map{
		"cached":           status.Cached,
		"articlesCount":    status.Items,
		"topicsCount":      len(query.Topics(h.data.Articles.Peek())),
		"ageMinutes":       status.AgeMinutes,
		"expiresInMinutes": status.ExpiresInMinutes,
		"lastFetch":        status.LastFetch,
	})
}

// GetChabadNews handles GET /api/news/chabad
func (h *Handlers) GetChabadNews(c *fiber.Ctx) error {
	news, err := h.data.ChabadNews.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(news)
}

// GetEconomyNews handles GET /api/news/economy
func (h *Handlers) GetEconomyNews(c *fiber.Ctx) error {
	news, err := h.data.EconomyNews.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(news)
}

// GetAllNews handles GET /api/news
func (h *Handlers) GetAllNews(c *fiber.Ctx) error {
	chabad, err := h.data.ChabadNews.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	economy, err := h.data.EconomyNews.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// The cached slices are shared across requests; never append into them.
	combined := make([]models.Listing, 0, len(chabad)+len(economy))
	combined = append(combined, chabad...)
	combined = append(combined, economy...)
	return c.JSON(combined)
}

// GetAds handles GET /api/ads?position=
func (h *Handlers) GetAds(c *fiber.Ctx) error {
	ads, err := h.data.BannerAds.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if position := c.Query("position"); position != "" {
		filtered := make([]models.Ad, 0, len(ads))
		for _, ad := range ads {
			if ad.Position == position {
				filtered = append(filtered, ad)
			}
		}
		ads = filtered
	}
	return c.JSON(ads)
}

// GetPageAds handles GET /api/ads/page
func (h *Handlers) GetPageAds(c *fiber.Ctx) error {
	ads, err := h.data.PageAds.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ads)
}

// RefreshAds handles POST /api/ads/refresh
func (h *Handlers) RefreshAds(c *fiber.Ctx) error {
	banner, err := h.data.BannerAds.ForceRefresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	page, err := h.data.PageAds.ForceRefresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message":        "Ads cache refreshed",
		"bannerAdsCount": len(banner),
		"pageAdsCount":   len(page),
	})
}

// GetProfessionals handles GET /api/professionals?city=&profession=
func (h *Handlers) GetProfessionals(c *fiber.Ctx) error {
	professionals, err := h.data.Professionals.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(query.FilterProfessionals(professionals, c.Query("city"), c.Query("profession")))
}

// GetProfessionalCities handles GET /api/professionals/cities
func (h *Handlers) GetProfessionalCities(c *fiber.Ctx) error {
	professionals, err := h.data.Professionals.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(query.ProfessionalCities(professionals))
}

// GetProfessions handles GET /api/professionals/professions
func (h *Handlers) GetProfessions(c *fiber.Ctx) error {
	professionals, err := h.data.Professionals.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(query.Professions(professionals))
}

// RefreshProfessionals handles POST /api/professionals/refresh
func (h *Handlers) RefreshProfessionals(c *fiber.Ctx) error {
	professionals, err := h.data.Professionals.ForceRefresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": "Cache refreshed",
		"count":   len(professionals),
	})
}

// Login handles POST /api/admin/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if h.cfg.AdminPassword == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Admin password not configured"})
	}
	if req.Password != h.cfg.AdminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid password"})
	}

	return c.JSON(fiber.Map{"token": h.sessions.Create()})
}

// Logout handles POST /api/admin/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if token, ok := c.Locals("token").(string); ok {
		h.sessions.Delete(token)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

type submitRequest struct {
	Category string `json:"category" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Contact  string `json:"contact"`
}

// Submit handles POST /api/admin/submit (public, unauthenticated)
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	submission := models.NewSubmission(req.Category, req.Title, req.Content, req.Contact, time.Now())
	if err := h.submissions.Add(c.Context(), submission); err != nil {
		logger.Get().Error().Err(err).Msg("adding submission failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit"})
	}

	return c.JSON(fiber.Map{"message": "Submission received", "id": submission.ID})
}

// ListSubmissions handles GET /api/admin/submissions
func (h *Handlers) ListSubmissions(c *fiber.Ctx) error {
	submissions, err := h.submissions.List(c.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("listing submissions failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}
	return c.JSON(submissions)
}

// ApproveSubmission handles POST /api/admin/submissions/:id/approve.
// With a write credential the content is appended to the category document
// automatically; otherwise the formatted text is returned for manual copy.
func (h *Handlers) ApproveSubmission(c *fiber.Ctx) error {
	submission, err := h.submissions.Get(c.Context(), c.Params("id"))
	if err == store.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve submission"})
	}

	formatted := "## " + submission.Title + "\n" + submission.Content
	if submission.Contact != "" {
		formatted += "\n\nליצירת קשר: " + submission.Contact
	}

	if h.drive.CanWrite() {
		if err := h.publishToCategoryDoc(c.Context(), submission.Category, formatted); err != nil {
			logger.Get().Error().Err(err).Str("category", submission.Category).Msg("failed to publish to document store")
			// Fall back to manual copy.
		} else {
			if err := h.submissions.Delete(c.Context(), submission.ID); err != nil {
				logger.Get().Error().Err(err).Str("id", submission.ID).Msg("deleting published submission failed")
			}
			return c.JSON(fiber.Map{
				"message":   "המודעה אושרה ופורסמה בהצלחה!",
				"published": true,
				"category":  submission.Category,
			})
		}
	}

	if err := h.submissions.Delete(c.Context(), submission.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve submission"})
	}

	return c.JSON(fiber.Map{
		"message":          "Submission approved",
		"published":        false,
		"category":         submission.Category,
		"formattedContent": formatted,
		"instructions":     "העתק את התוכן למסמך \"" + submission.Category + "\" בגוגל דרייב",
	})
}

func (h *Handlers) publishToCategoryDoc(ctx context.Context, category, text string) error {
	docs, err := h.drive.Docs(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc.Name == category {
			return h.drive.AppendText(ctx, doc.ID, text)
		}
	}
	return store.ErrNotFound
}

// DeleteSubmission handles DELETE /api/admin/submissions/:id
func (h *Handlers) DeleteSubmission(c *fiber.Ctx) error {
	err := h.submissions.Delete(c.Context(), c.Params("id"))
	if err == store.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete submission"})
	}
	return c.JSON(fiber.Map{"message": "Submission deleted"})
}
