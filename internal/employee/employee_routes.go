package employee

import (
	"leave-portal/internal/middleware"
	"leave-portal/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", rbac.Authorize(enforcer, "employee", "manage"), handler.GetAll)
		employees.GET("/:id", rbac.Authorize(enforcer, "employee", "manage"), handler.GetById)
		employees.POST("", rbac.Authorize(enforcer, "employee", "manage"), handler.Create)
		employees.PUT("/:id", rbac.Authorize(enforcer, "employee", "manage"), handler.Update)
		employees.DELETE("/:id", rbac.Authorize(enforcer, "employee", "manage"), handler.Delete)
	}

	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	{
		teams.GET("", handler.GetTeams)
		teams.POST("", rbac.Authorize(enforcer, "employee", "manage"), handler.CreateTeam)
	}
}
