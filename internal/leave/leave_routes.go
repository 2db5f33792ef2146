package leave

import (
	"leave-portal/internal/middleware"
	"leave-portal/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", rbac.Authorize(enforcer, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", rbac.Authorize(enforcer, "leave", "read"), handler.GetById)
		leaves.POST("",
			rbac.Authorize(enforcer, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.PUT("/:id", rbac.Authorize(enforcer, "leave", "update"), handler.Update)
		leaves.DELETE("/:id", rbac.Authorize(enforcer, "leave", "delete"), handler.Delete)
		leaves.POST("/:id/approve", rbac.Authorize(enforcer, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", rbac.Authorize(enforcer, "leave", "approve"), handler.Reject)
	}

	// No auth middleware: the signed token in ?t= carries the authorization.
	r.GET("/leaves/actions", handler.EmailAction)
}
