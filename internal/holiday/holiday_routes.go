package holiday

import (
	"leave-portal/internal/middleware"
	"leave-portal/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", rbac.Authorize(enforcer, "holiday", "read"), handler.GetAll)
		holidays.POST("", rbac.Authorize(enforcer, "holiday", "manage"), handler.Create)
		holidays.PUT("/:id", rbac.Authorize(enforcer, "holiday", "manage"), handler.Update)
		holidays.DELETE("/:id", rbac.Authorize(enforcer, "holiday", "manage"), handler.Delete)
	}
}
