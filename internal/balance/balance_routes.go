package balance

import (
	"leave-portal/internal/middleware"
	"leave-portal/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", rbac.Authorize(enforcer, "balance", "read"), handler.GetMine)
		balances.GET("/:employee_id", rbac.Authorize(enforcer, "balance", "read"), handler.GetByEmployee)
	}
}
