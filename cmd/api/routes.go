package main

import (
	"context"
	"net/http"

	"blog-platform/internal/httpapi"
	"blog-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
// The engine must already run auth.Authenticate so principals are installed.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, ready func(context.Context) error) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/token", h.CreateAccessToken)
		api.POST("/login", h.Login)
		api.POST("/signup", h.Signup)

		api.GET("/articles", h.ListArticles)
		api.GET("/articles/:id", h.GetArticle)
	}

	// Session routes need an identity, whatever its authorities.
	session := api.Group("")
	session.Use(rbac.RequireAuthenticated())
	{
		session.DELETE("/token", h.Logout)
		session.GET("/me", h.Me)
	}

	// Article writes need a user authority. Author checks happen in the service.
	writers := api.Group("/articles")
	writers.Use(rbac.RequireAnyAuthority(rbac.AuthorityUser))
	{
		writers.POST("", h.CreateArticle)
		writers.PUT("/:id", h.UpdateArticle)
		writers.DELETE("/:id", h.DeleteArticle)
	}
}
