package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/hilgaap/inventori-api/internal/handler"    // import the handlers that implement business logic
	"github.com/hilgaap/inventori-api/internal/middleware" // import middleware for rate limiting, JWT auth and role enforcement
	"github.com/hilgaap/inventori-api/internal/model"      // role names for the admin gate
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check
// for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the three unauthenticated auth endpoints. Each
// one sits behind the rate limiter keyed by its own endpoint label, so a
// client exhausting the login quota can still refresh an existing
// session. The request logger uses the same labels.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter middleware.Limiter) {
	g := e.Group("/auth")
	g.POST("/register", a.Register,
		middleware.RateLimit(limiter, "auth-register"), middleware.RequestLogger("auth-register"))
	g.POST("/login", a.Login,
		middleware.RateLimit(limiter, "auth-login"), middleware.RequestLogger("auth-login"))
	g.POST("/refresh", a.Refresh,
		middleware.RateLimit(limiter, "auth-refresh"), middleware.RequestLogger("auth-refresh"))
}

// RegisterAPI registers the protected resource endpoints. Every route
// requires a valid access token; create/delete on products and the whole
// user surface additionally require the ADMIN role. Product reads and
// partial updates are open to any authenticated user.
func RegisterAPI(e *echo.Echo, p *handler.ProductHandler, u *handler.UserHandler, jwtSecret string) {
	auth := e.Group("", middleware.JWTAuth(jwtSecret))
	admin := middleware.RequireRole(model.RoleAdmin)

	auth.GET("/products", p.List, middleware.RequestLogger("products-list"))
	auth.GET("/products/:id", p.Get, middleware.RequestLogger("product-detail"))
	auth.PUT("/products/:id", p.Update, middleware.RequestLogger("product-update"))
	auth.POST("/products", p.Create, admin, middleware.RequestLogger("products-create"))
	auth.DELETE("/products/:id", p.Delete, admin, middleware.RequestLogger("product-delete"))

	auth.GET("/users", u.List, admin, middleware.RequestLogger("users-list"))
	auth.POST("/users", u.Create, admin, middleware.RequestLogger("users-create"))
	auth.PUT("/users", u.Update, admin, middleware.RequestLogger("users-update"))
	auth.DELETE("/users", u.Delete, admin, middleware.RequestLogger("users-delete"))
}
