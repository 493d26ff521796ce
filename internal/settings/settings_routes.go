package settings

import (
	"go-attendance/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	location := r.Group("/settings/location")
	location.Use(middleware.AuthMiddleware())
	{
		location.GET("", middleware.Authorize(enforcer, "settings", "read"), h.Get)
		location.POST("", middleware.Authorize(enforcer, "settings", "write"), h.Save)
	}
}
