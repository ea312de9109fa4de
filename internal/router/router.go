package router

import (
	"github.com/labstack/echo/v4"

	"github.com/moviemetrics/movie-metrics/internal/handler"
	"github.com/moviemetrics/movie-metrics/internal/middleware"
	"github.com/moviemetrics/movie-metrics/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Movies  *handler.MovieHandler
	Reviews *handler.ReviewHandler
	Catalog *handler.CatalogHandler
	Health  *handler.HealthHandler
}

// Register wires all routes onto the Echo instance. Public endpoints
// are the health check and the auth pair; everything under /api
// requires a valid token plus the route's one required authority.
//
// The response cache is a per-route middleware placed after the
// authority check, never in front of the group: a cache hit must not
// short-circuit authentication or authorization. Identity-dependent
// reads (the caller's own reviews) stay uncached because the key is
// the URL alone.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	e.GET("/healthz", h.Health.Check)

	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtSecret))

	registerUsers(api, h.Users)
	registerMovies(api, h.Movies, cache)
	registerReviews(api, h.Reviews, cache)
	registerCatalog(api, h.Catalog, cache)
}

func registerUsers(g *echo.Group, h *handler.UserHandler) {
	g.GET("/users", h.List, middleware.RequireAuthority(model.PermDisplayUsers))
	g.GET("/users/:id", h.Get, middleware.RequireAuthority(model.PermDisplayUsers))
	g.GET("/users/email/:email", h.GetByEmail, middleware.RequireAuthority(model.PermDisplayUsers))
	g.POST("/users", h.Create, middleware.RequireAuthority(model.PermCreateUsers))
	g.PATCH("/users/:id", h.Update, middleware.RequireAuthority(model.PermUpdateUsers))
	g.DELETE("/users/:id", h.Delete, middleware.RequireAuthority(model.PermDeleteUsers))
}

func registerMovies(g *echo.Group, h *handler.MovieHandler, cache echo.MiddlewareFunc) {
	g.GET("/movies", h.List, middleware.RequireAuthority(model.PermDisplayMovies), cache)
	g.GET("/movies/:id", h.Get, middleware.RequireAuthority(model.PermDisplayMovies), cache)
	g.GET("/movies/title/:title", h.GetByTitle, middleware.RequireAuthority(model.PermDisplayMovies), cache)
	g.POST("/movies", h.Create, middleware.RequireAuthority(model.PermCreateMovies))
	g.PATCH("/movies/:id", h.Update, middleware.RequireAuthority(model.PermUpdateMovies))
	g.DELETE("/movies/:id", h.Delete, middleware.RequireAuthority(model.PermDeleteMovies))
}

func registerReviews(g *echo.Group, h *handler.ReviewHandler, cache echo.MiddlewareFunc) {
	g.GET("/reviews", h.List, middleware.RequireAuthority(model.PermDisplayReviews), cache)
	g.GET("/reviews/:id", h.Get, middleware.RequireAuthority(model.PermDisplayReviews), cache)
	g.GET("/reviews/of/:movieId", h.ListOfMovie, middleware.RequireAuthority(model.PermDisplayReviews), cache)
	g.GET("/reviews/from/:userId", h.ListOfUser, middleware.RequireAuthority(model.PermDisplayReviews), cache)
	g.GET("/reviews/own", h.ListOwn, middleware.RequireAuthority(model.PermDisplayReviews))
	g.POST("/reviews/of/:movieId", h.Create, middleware.RequireAuthority(model.PermCreateReviews))
	g.PATCH("/reviews/:id", h.Update, middleware.RequireAuthority(model.PermUpdateReviews))
	g.PATCH("/reviews/own/:id", h.UpdateOwn, middleware.RequireAuthority(model.PermUpdateOwnReviews))
	g.DELETE("/reviews/:id", h.Delete, middleware.RequireAuthority(model.PermDeleteReviews))
	g.DELETE("/reviews/own/:id", h.DeleteOwn, middleware.RequireAuthority(model.PermDeleteOwnReviews))
}

func registerCatalog(g *echo.Group, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g.GET("/genres", h.ListGenres, middleware.RequireAuthority(model.PermDisplayMovies), cache)
	g.GET("/classifications", h.ListClassifications, middleware.RequireAuthority(model.PermDisplayMovies), cache)
	g.GET("/roles", h.ListRoles, middleware.RequireAuthority(model.PermCreateUsers), cache)
	g.GET("/permissions", h.ListPermissions, middleware.RequireAuthority(model.PermCreateUsers), cache)
}
