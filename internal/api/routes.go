package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lodnet/luach/internal/middleware"
	"github.com/lodnet/luach/internal/store"
)

// SetupRoutes wires every endpoint under /api. Static article routes are
// registered before the :id catch-all.
func SetupRoutes(app *fiber.App, h *Handlers, sessions *store.SessionStore) {
	api := app.Group("/api")

	api.Get("/health", h.HealthCheck)

	articles := api.Group("/articles")
	articles.Get("/", h.GetArticles)
	articles.Get("/topics", h.GetTopics)
	articles.Get("/cities", h.GetCities)
	articles.Get("/cache/status", h.CacheStatus)
	articles.Post("/refresh", h.RefreshArticles)
	articles.Get("/:id", h.GetArticleByID)

	news := api.Group("/news")
	news.Get("/", h.GetAllNews)
	news.Get("/chabad", h.GetChabadNews)
	news.Get("/economy", h.GetEconomyNews)

	ads := api.Group("/ads")
	ads.Get("/", h.GetAds)
	ads.Get("/page", h.GetPageAds)
	ads.Post("/refresh", h.RefreshAds)

	professionals := api.Group("/professionals")
	professionals.Get("/", h.GetProfessionals)
	professionals.Get("/cities", h.GetProfessionalCities)
	professionals.Get("/professions", h.GetProfessions)
	professionals.Post("/refresh", h.RefreshProfessionals)

	auth := middleware.RequireSession(sessions)
	admin := api.Group("/admin")
	admin.Post("/login", h.Login)
	admin.Post("/submit", h.Submit)
	admin.Post("/logout", auth, h.Logout)
	admin.Get("/submissions", auth, h.ListSubmissions)
	admin.Post("/submissions/:id/approve", auth, h.ApproveSubmission)
	admin.Delete("/submissions/:id", auth, h.DeleteSubmission)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Endpoint not found"})
	})
}
