package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-blog-api/internal/handler"
	"github.com/iliyamo/movie-blog-api/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to any feature group.
// Currently it exposes only a health check for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. The register and login
// endpoints sit behind the rate limiter so credential guessing is throttled;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.Use(rateLimit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPosts registers the blog post routes. Reads are public and served
// through the response cache; every mutation requires a valid access token.
func RegisterPosts(e *echo.Echo, p *handler.PostHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/v1/posts", p.ListPosts, cache)
	e.GET("/v1/posts/:id", p.GetPost, cache)

	auth := e.Group("/v1/posts")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.POST("", p.CreatePost)
	auth.PUT("/:id", p.UpdatePost)
	auth.DELETE("/:id", p.DeletePost)
}
