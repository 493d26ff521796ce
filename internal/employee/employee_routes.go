package employee

import (
	"go-attendance/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(enforcer, "employee", "read"), h.List)
		employees.GET("/:employee_id", middleware.Authorize(enforcer, "employee", "read"), h.Get)
		employees.POST("", middleware.Authorize(enforcer, "employee", "write"), h.Create)
		employees.PUT("/:employee_id", middleware.Authorize(enforcer, "employee", "write"), h.Update)
		employees.DELETE("/:employee_id", middleware.Authorize(enforcer, "employee", "write"), h.Delete)
	}
}
