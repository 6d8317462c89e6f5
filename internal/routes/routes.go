package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/srinibas-vastra/backend/internal/config"
	"github.com/srinibas-vastra/backend/internal/handlers"
	"github.com/srinibas-vastra/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	auth fiber.Handler,
	healthHandler *handlers.HealthHandler,
	productHandler *handlers.ProductHandler,
	userHandler *handlers.UserHandler,
	addressHandler *handlers.AddressHandler,
	cartHandler *handlers.CartHandler,
	sellerHandler *handlers.SellerHandler,
	uploadHandler *handlers.UploadHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Storefront catalog is public; reviews require a signed-in buyer.
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)
	api.Post("/products/:id/reviews", auth, middleware.EnsureUser(db), productHandler.CreateReview)

	user := api.Group("/user", auth, middleware.EnsureUser(db))
	user.Get("/me", userHandler.Me)
	user.Get("/profile", userHandler.GetProfile)
	user.Post("/profile", userHandler.UpdateProfile)
	user.Get("/address", addressHandler.List)
	user.Post("/address", addressHandler.Create)
	user.Put("/address", addressHandler.Update)
	user.Delete("/address", addressHandler.Delete)
	user.Get("/cart", cartHandler.Get)
	user.Post("/cart", cartHandler.AddItem)
	user.Patch("/cart", cartHandler.UpdateItem)
	user.Delete("/cart", cartHandler.RemoveItem)

	seller := api.Group("/seller", auth, middleware.EnsureUser(db))
	seller.Get("/me", sellerHandler.Me)
	seller.Post("/apply", sellerHandler.Apply)
	seller.Post("/upload-doc", uploadHandler.UploadDoc)
	seller.Post("/upload-image", uploadHandler.UploadImage)
	seller.Get("/products", sellerHandler.ListProducts)
	seller.Post("/products", sellerHandler.CreateProduct)
	seller.Patch("/products/:id", sellerHandler.UpdateProduct)
	seller.Delete("/products/:id", sellerHandler.DeleteProduct)

	admin := api.Group("/admin", auth, middleware.EnsureUser(db), middleware.AdminRequired(db, cfg))
	admin.Get("/sellers", adminHandler.ListSellers)
	admin.Post("/sellers", adminHandler.ActOnSeller)
}
