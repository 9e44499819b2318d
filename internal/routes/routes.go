package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
	Booking      *handlers.BookingHandler
	Rating       *handlers.RatingHandler
	Notification *handlers.NotificationHandler
	WebSocket    *handlers.WebSocketHandler
	Customer     *handlers.CustomerHandler
	Provider     *handlers.ProviderHandler
	Listing      *handlers.ListingHandler
	Category     *handlers.CategoryHandler
	Contact      *handlers.ContactHandler
	FAQ          *handlers.FAQHandler
	Article      *handlers.ArticleHandler
	Legal        *handlers.LegalHandler
	Health       *handlers.HealthHandler
	DataInit     *handlers.DataInitHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h *Handlers) {
	adminOnly := []fiber.Handler{middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg)}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/ws-notifications", h.WebSocket.Upgrade, h.WebSocket.Serve())

	// General rate limit: 60 req/min per IP
	general := limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	// Booking keeps its historical path outside /api
	booking := app.Group("/booking", general)
	booking.Post("/create", h.Booking.Create)
	booking.Get("/", h.Booking.List)
	booking.Get("/customer/:id", h.Booking.ByCustomer)
	booking.Get("/provider/:id", h.Booking.ByProvider)
	booking.Get("/provider-made/:id", h.Booking.ByProviderBooker)
	booking.Get("/service/:id", h.Booking.ByService)
	booking.Get("/status/:status", h.Booking.ByStatus)
	booking.Put("/cancel/:id", h.Booking.Cancel)
	booking.Put("/complete/:id", h.Booking.Complete)
	booking.Get("/:id", h.Booking.Get)
	booking.Put("/:id", h.Booking.Update)
	booking.Delete("/:id", h.Booking.Delete)

	api := app.Group("/api", general)

	api.Get("/health", h.Health.Check)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	// Auth: stricter limit, 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register/customer", h.Auth.RegisterCustomer)
	auth.Post("/register/provider", h.Auth.RegisterProvider)
	auth.Post("/verify-email", h.Auth.VerifyEmail)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Post("/resend-otp", h.Auth.ResendOTP)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", h.Auth.Logout)

	// Public admin endpoints are registered before the protected group so
	// its middleware never runs for them.
	api.Post("/admin/login", h.Admin.Login)
	api.Post("/admin/init", h.Admin.Init)

	admin := api.Group("/admin", adminOnly...)
	admin.Get("/customers", h.Admin.Customers)
	admin.Get("/providers", h.Admin.Providers)
	admin.Get("/services", h.Admin.Services)
	admin.Get("/statistics", h.Admin.Statistics)
	admin.Post("/customer/:customerId/promote-admin", h.Admin.PromoteCustomer)
	admin.Post("/customer/:customerId/demote-admin", h.Admin.DemoteCustomer)
	admin.Post("/customer/:customerId/verify", h.Admin.VerifyCustomer)
	admin.Post("/customer/:customerId/unverify", h.Admin.UnverifyCustomer)
	admin.Post("/provider/:providerId/promote-admin", h.Admin.PromoteProvider)
	admin.Post("/provider/:providerId/demote-admin", h.Admin.DemoteProvider)
	admin.Post("/provider/:providerId/verify", h.Admin.VerifyProvider)
	admin.Post("/provider/:providerId/unverify", h.Admin.UnverifyProvider)
	admin.Get("/:id", h.Admin.Get)

	// Seeding creates accounts with a known password, so only admins may run it.
	initGroup := api.Group("/init")
	initGroup.Get("/services-count", h.DataInit.ServicesCount)
	initGroup.Post("/demo-data", append(adminOnly, h.DataInit.DemoData)...)

	rating := api.Group("/rating")
	rating.Post("/create", h.Rating.Create)
	rating.Get("/service/:id/average", h.Rating.Average)
	rating.Get("/service/:id", h.Rating.ByService)
	rating.Get("/booking/:id", h.Rating.ByBooking)
	rating.Delete("/:id", h.Rating.Delete)

	notifications := api.Group("/notifications")
	notifications.Post("/", h.Notification.Create)
	notifications.Get("/user/:email/unread/count", h.Notification.UnreadCount)
	notifications.Get("/user/:email/unread", h.Notification.Unread)
	notifications.Get("/user/:email/recent", h.Notification.Recent)
	notifications.Get("/user/:email", h.Notification.ListForUser)
	notifications.Put("/user/:email/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/cleanup", append(adminOnly, h.Notification.Cleanup)...)
	notifications.Delete("/:id", h.Notification.Delete)

	customer := api.Group("/customer")
	customer.Get("/", h.Customer.List)
	customer.Get("/email/:email", h.Customer.ByEmail)
	customer.Get("/:id", h.Customer.Get)
	customer.Put("/:id", h.Customer.Update)
	customer.Post("/:id/update-password", h.Customer.UpdatePassword)
	customer.Post("/:id/upload-image", h.Customer.UploadImage)
	customer.Get("/:id/image-check", h.Customer.ImageCheck)
	customer.Delete("/:id", h.Customer.Delete)

	provider := api.Group("/provider")
	provider.Get("/", h.Provider.List)
	provider.Get("/nearby", h.Provider.Nearby)
	provider.Get("/verified/all", h.Provider.Verified)
	provider.Get("/unverified/all", h.Provider.Unverified)
	provider.Get("/email/:email", h.Provider.ByEmail)
	provider.Get("/:id", h.Provider.Get)
	provider.Put("/:id/verify", append(adminOnly, h.Provider.Verify)...)
	provider.Put("/:id/reject", append(adminOnly, h.Provider.Reject)...)
	provider.Put("/:id", h.Provider.Update)
	provider.Post("/:id/upload-image", h.Provider.UploadImage)
	provider.Get("/:id/image-check", h.Provider.ImageCheck)
	provider.Delete("/:id", h.Provider.Delete)

	api.Get("/search", h.Provider.Search)
	api.Get("/search/city", h.Provider.SearchByCity)
	api.Get("/search/service", h.Provider.SearchByService)
	api.Get("/search/service-city", h.Provider.SearchByServiceAndCity)
	api.Get("/dropdown/cities", h.Provider.Cities)
	api.Get("/dropdown/services", h.Provider.ServiceTypes)
	api.Get("/dropdown/areas", h.Provider.Areas)

	services := api.Group("/services")
	services.Get("/", h.Listing.ListActive)
	services.Post("/", h.Listing.Create)
	services.Get("/search", h.Listing.Search)
	services.Get("/by-category", h.Listing.ByCategoryAndCity)
	services.Get("/search-by-name", h.Listing.ByNameAndCity)
	services.Get("/provider/:providerId", h.Listing.ByProvider)
	services.Get("/category/:categoryId", h.Listing.ByCategory)
	services.Get("/location/:city/all", h.Listing.ByCity)
	services.Get("/location/:city/:state/category/:categoryId", h.Listing.ByLocationAndCategory)
	services.Get("/location/:city/:state", h.Listing.ByLocation)
	services.Get("/:id", h.Listing.Get)
	services.Put("/:id", h.Listing.Update)
	services.Delete("/:id", h.Listing.Delete)

	category := api.Group("/category")
	category.Get("/", h.Category.List)
	category.Post("/", h.Category.Create)
	category.Get("/name/:name", h.Category.ByName)
	category.Get("/:id", h.Category.Get)
	category.Put("/:id", h.Category.Update)
	category.Delete("/:id", h.Category.Delete)

	contact := api.Group("/contact")
	contact.Get("/", h.Contact.List)
	contact.Post("/", h.Contact.Create)
	contact.Get("/unresolved", h.Contact.Unresolved)
	contact.Get("/resolved", h.Contact.Resolved)
	contact.Get("/email/:email", h.Contact.ByEmail)
	contact.Get("/:id", h.Contact.Get)
	contact.Put("/:id/resolve", h.Contact.Resolve)
	contact.Put("/:id", h.Contact.Update)
	contact.Delete("/:id", h.Contact.Delete)

	faq := api.Group("/faq")
	faq.Get("/", h.FAQ.List)
	faq.Post("/", h.FAQ.Create)
	faq.Get("/active", h.FAQ.Active)
	faq.Get("/category/:category", h.FAQ.ByCategory)
	faq.Get("/:id", h.FAQ.Get)
	faq.Put("/:id/activate", h.FAQ.Activate)
	faq.Put("/:id/deactivate", h.FAQ.Deactivate)
	faq.Put("/:id", h.FAQ.Update)
	faq.Delete("/:id", h.FAQ.Delete)

	articles := api.Group("/articles")
	articles.Get("/", h.Article.List)
	articles.Post("/", h.Article.Create)
	articles.Get("/published", h.Article.Published)
	articles.Get("/search", h.Article.Search)
	articles.Get("/category/:category", h.Article.ByCategory)
	articles.Get("/:id", h.Article.Get)
	articles.Put("/:id/publish", h.Article.Publish)
	articles.Put("/:id/unpublish", h.Article.Unpublish)
	articles.Put("/:id", h.Article.Update)
	articles.Delete("/:id", h.Article.Delete)
}
