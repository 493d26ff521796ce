package leave

import (
	"go-attendance/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("/:employee_id", h.GetSummary)
		leaves.POST("", middleware.Authorize(enforcer, "leave", "write"), h.Record)
	}
}
