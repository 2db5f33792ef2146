package auth

import (
	"leave-portal/internal/middleware"
	"leave-portal/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", handler.Login)
		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)

		// Account provisioning is an admin task; employees never self-register.
		auth.POST("/register",
			middleware.AuthMiddleware(),
			rbac.Authorize(enforcer, "employee", "manage"),
			handler.Register,
		)
	}
}
