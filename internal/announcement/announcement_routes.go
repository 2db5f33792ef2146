package announcement

import (
	"leave-portal/internal/middleware"
	"leave-portal/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	announcements := r.Group("/announcements")
	announcements.Use(middleware.AuthMiddleware())
	{
		announcements.GET("", rbac.Authorize(enforcer, "announcement", "read"), handler.GetAll)
		announcements.GET("/:id", rbac.Authorize(enforcer, "announcement", "read"), handler.GetById)
		announcements.POST("", rbac.Authorize(enforcer, "announcement", "manage"), handler.Create)
		announcements.PUT("/:id", rbac.Authorize(enforcer, "announcement", "manage"), handler.Update)
		announcements.DELETE("/:id", rbac.Authorize(enforcer, "announcement", "manage"), handler.Delete)
	}
}
