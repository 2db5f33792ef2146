package report

import (
	"leave-portal/internal/middleware"
	"leave-portal/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/leaves", rbac.Authorize(enforcer, "report", "read"), handler.Leaves)
		reports.GET("/leaves/export", rbac.Authorize(enforcer, "report", "read"), handler.LeavesCSV)
	}
}
