package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/travelhub/backend/internal/infrastructure/cache"
	"github.com/travelhub/backend/internal/interfaces/http/handler"
	"github.com/travelhub/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler of the API
type Handlers struct {
	Auth         *handler.AuthHandler
	Tenant       *handler.TenantHandler
	Tour         *handler.TourHandler
	Taxonomy     *handler.TaxonomyHandler
	Offer        *handler.OfferHandler
	Availability *handler.AvailabilityHandler
	Booking      *handler.BookingHandler
	Review       *handler.ReviewHandler
	Wishlist     *handler.WishlistHandler
	Hero         *handler.HeroHandler
	Blog         *handler.BlogHandler
	Media        *handler.MediaHandler
	SEO          *handler.SEOHandler
	Webhook      *handler.WebhookHandler
	System       *handler.SystemHandler
}

// RateLimits configures the request limits of the API. A nil Counter
// disables rate limiting.
type RateLimits struct {
	Counter      cache.Counter
	Requests     int
	Window       time.Duration
	AuthRequests int
	AuthWindow   time.Duration
}

// RegisterRoutes mounts the storefront and admin API under /api and the
// crawler and health endpoints at the root. The engine must already carry
// tenant resolution and authentication.
func RegisterRoutes(engine *gin.Engine, h Handlers, limits RateLimits) {
	engine.GET("/robots.txt", h.SEO.Robots)
	engine.GET("/sitemap.xml", h.SEO.Sitemap)
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine)
	if limits.Counter != nil {
		r.Use(middleware.RateLimit(limits.Counter, limits.Requests, limits.Window))
	}

	r.Register(publicRoutes(h)).
		Register(authRoutes(h, limits)).
		Register(customerRoutes(h)).
		Register(adminRoutes(h)).
		Register(tenantAdminRoutes(h))
	r.Setup()
}

func publicRoutes(h Handlers) *DomainGroup {
	public := NewDomainGroup("public", "")
	public.GET("/tenant/config", h.Tenant.GetConfig)

	public.GET("/tours/public", h.Tour.ListPublic)
	public.GET("/tours/public/:slug", h.Tour.GetPublic)
	public.GET("/tours/:id/offers", h.Offer.ForTour)
	public.GET("/tours/:id/availability", h.Availability.Calendar)
	public.GET("/tours/:id/reviews", h.Review.ListForTour)
	public.POST("/offers/verify-promo", h.Offer.VerifyPromo)

	public.GET("/categories", h.Taxonomy.ListCategories)
	public.GET("/destinations", h.Taxonomy.ListDestinations)

	public.GET("/hero", h.Hero.ListActive)
	public.GET("/blog", h.Blog.ListPublished)
	public.GET("/blog/:slug", h.Blog.GetPublished)
	public.POST("/blog/:slug/like", h.Blog.Like)

	public.POST("/webhooks/stripe", h.Webhook.Stripe)
	return public
}

func authRoutes(h Handlers, limits RateLimits) *DomainGroup {
	auth := NewDomainGroup("auth", "/auth")
	if limits.Counter != nil && limits.AuthRequests > 0 {
		auth.Use(middleware.RateLimitByKey(limits.Counter, limits.AuthRequests, limits.AuthWindow, func(c *gin.Context) string {
			return "auth:" + middleware.ClientKey(c)
		}))
	}
	auth.POST("/register", middleware.RequireStoredTenant(), h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", middleware.RequireAuth(), h.Auth.Logout)
	auth.GET("/me", middleware.RequireAuth(), h.Auth.Me)
	return auth
}

func customerRoutes(h Handlers) *DomainGroup {
	customer := NewDomainGroup("customer", "").
		Use(middleware.RequireStoredTenant(), middleware.RequireAuth())

	customer.POST("/bookings", h.Booking.Checkout)
	customer.GET("/bookings/mine", h.Booking.ListMine)
	customer.GET("/bookings/:id", h.Booking.Get)
	customer.POST("/bookings/:id/cancel", h.Booking.Cancel)

	customer.POST("/reviews", h.Review.Create)

	customer.GET("/wishlist", h.Wishlist.List)
	customer.POST("/wishlist", h.Wishlist.Toggle)
	return customer
}

func adminRoutes(h Handlers) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").
		Use(middleware.RequireStoredTenant(), middleware.RequireAdmin())

	tours := admin.Group("tours", "/tours")
	tours.GET("", h.Tour.List)
	tours.POST("", h.Tour.Create)
	tours.GET("/:id", h.Tour.Get)
	tours.PUT("/:id", h.Tour.Update)
	tours.DELETE("/:id", h.Tour.Delete)
	tours.POST("/:id/publish", h.Tour.Publish)
	tours.POST("/:id/unpublish", h.Tour.Unpublish)
	tours.GET("/:id/availability", h.Availability.AdminCalendar)
	tours.PUT("/:id/availability/:date", h.Availability.UpsertDay)
	tours.DELETE("/:id/availability/:date", h.Availability.DeleteDay)
	tours.PUT("/:id/availability/:date/stop-sale", h.Availability.SetStopSale)
	tours.PUT("/:id/availability/:date/block", h.Availability.BlockSlot)
	tours.PUT("/:id/availability/:date/extra-capacity", h.Availability.SetExtraCapacity)

	admin.POST("/categories", h.Taxonomy.CreateCategory)
	admin.PUT("/categories/:id", h.Taxonomy.UpdateCategory)
	admin.DELETE("/categories/:id", h.Taxonomy.DeleteCategory)
	admin.POST("/destinations", h.Taxonomy.CreateDestination)
	admin.PUT("/destinations/:id", h.Taxonomy.UpdateDestination)
	admin.DELETE("/destinations/:id", h.Taxonomy.DeleteDestination)

	offers := admin.Group("offers", "/offers")
	offers.GET("", h.Offer.List)
	offers.POST("", h.Offer.Create)
	offers.GET("/:id", h.Offer.Get)
	offers.PUT("/:id", h.Offer.Update)
	offers.DELETE("/:id", h.Offer.Delete)

	stopSales := admin.Group("stop-sales", "/stop-sales")
	stopSales.GET("", h.Availability.ListStopSales)
	stopSales.POST("", h.Availability.CreateStopSale)
	stopSales.PUT("/:id", h.Availability.UpdateStopSale)
	stopSales.DELETE("/:id", h.Availability.DeleteStopSale)

	bookings := admin.Group("bookings", "/bookings")
	bookings.GET("", h.Booking.List)
	bookings.GET("/reference/:reference", h.Booking.GetByReference)
	bookings.GET("/:id", h.Booking.Get)
	bookings.POST("/:id/confirm", h.Booking.Confirm)
	bookings.POST("/:id/cancel", h.Booking.Cancel)
	bookings.POST("/:id/refund", h.Booking.Refund)
	bookings.POST("/:id/complete", h.Booking.Complete)

	reviews := admin.Group("reviews", "/reviews")
	reviews.GET("", h.Review.List)
	reviews.POST("/:id/approve", h.Review.Approve)
	reviews.POST("/:id/reject", h.Review.Reject)
	reviews.DELETE("/:id", h.Review.Delete)

	hero := admin.Group("hero", "/hero")
	hero.GET("", h.Hero.List)
	hero.POST("", h.Hero.Create)
	hero.PUT("/order", h.Hero.Reorder)
	hero.PUT("/:id", h.Hero.Update)
	hero.DELETE("/:id", h.Hero.Delete)

	blog := admin.Group("blog", "/blog")
	blog.GET("", h.Blog.List)
	blog.POST("", h.Blog.Create)
	blog.GET("/:id", h.Blog.Get)
	blog.PUT("/:id", h.Blog.Update)
	blog.DELETE("/:id", h.Blog.Delete)

	uploads := admin.Group("uploads", "/uploads")
	uploads.POST("/presign", h.Media.Presign)
	uploads.POST("/attach", h.Media.Attach)
	return admin
}

// tenantAdminRoutes manage the tenants themselves. They do not need a
// stored tenant so the first brand can be created from a fresh install.
func tenantAdminRoutes(h Handlers) *DomainGroup {
	tenants := NewDomainGroup("tenants", "/admin/tenants").
		Use(middleware.RequireSuperAdmin())

	tenants.GET("", h.Tenant.List)
	tenants.POST("", h.Tenant.Create)
	tenants.GET("/:id", h.Tenant.Get)
	tenants.PUT("/:id", h.Tenant.Update)
	tenants.POST("/:id/default", h.Tenant.SetDefault)
	return tenants
}
