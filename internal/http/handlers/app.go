package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "tradenook/internal/log"
	"tradenook/web"
)

const LoginWindow = 10 * time.Minute

// NewApp builds the storefront app. Extra middleware runs after request ids
// are assigned and before any route.
func NewApp(d *Deps, middleware ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: ErrorHandler,
		BodyLimit:    int(d.Uploads.MaxBytes) + 1<<20,
	})

	app.Use(requestid.New())
	for _, mw := range middleware {
		app.Use(mw)
	}
	// seed listings hotlink their photos
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	app.Use(Session(d.Sessions))

	d.Mount(app)
	return app
}

// Mount registers every page and API route, then the 404 fallback.
func (d *Deps) Mount(app *fiber.App) {
	app.Get("/", d.Search.Home)
	app.Get("/product/:id", d.Products.Detail)
	app.Get("/media/*", Media(d.Uploads.MediaDir))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")
	api.Get("/categories", d.Categories.List)

	api.Get("/products", d.Products.List)
	api.Post("/products", d.Products.Create)
	api.Get("/products/:id", d.Products.Get)
	api.Put("/products/:id/pay", d.Products.Pay)
	api.Put("/products/:id/sold", d.Products.MarkSold)
	api.Delete("/products/:id", d.Products.Delete)

	api.Get("/me", d.Auth.Me)
	api.Get("/me/listings", RequireUser(d.Sessions), d.Products.Mine)

	api.Post("/auth/register", d.Auth.Register)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        d.LoginAttempts,
		Expiration: LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.Auth.Login)
	api.Post("/auth/logout", d.Auth.Logout)

	api.Get("/users", RequireAdmin(d.Sessions), d.Admin.Users)
	api.Get("/users/:id", d.Admin.User)
	api.Put("/users/:id/ban", RequireAdmin(d.Sessions), d.Admin.Ban)
	api.Put("/users/:id/unban", RequireAdmin(d.Sessions), d.Admin.Unban)

	api.Post("/uploads", RequireUser(d.Sessions), d.Uploads.Upload)

	app.Use(NotFound)
}
