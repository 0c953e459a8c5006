package main

import (
	"callbridge/internal/auth"
	"callbridge/internal/crm"
	"callbridge/internal/httpapi"
	"callbridge/internal/rbac"
	"callbridge/internal/webhook"

	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	webhook webhook.Handler
	auth    *auth.Manager
	repo    crm.Repository
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, deps routeDeps) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Vendor webhook (public by contract: the vendor calls unauthenticated).
	// Any method is accepted; non-POST is a validation ping.
	r.Any("/webhooks/ringcentral/call", deps.webhook.HandleCallEvent)

	// internal read API
	h := httpapi.Handlers{
		Auth: deps.auth,
		Repo: deps.repo,
	}

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", h.Login)

		protected := v1.Group("/")
		protected.Use(auth.RequireAccessToken(deps.auth))
		protected.Use(rbac.RequireAnyRole(rbac.RoleAdmin, rbac.RoleAgent))
		{
			protected.GET("/communications", h.ListCommunications)
			protected.GET("/communications/:id", h.GetCommunication)
		}
	}
}
