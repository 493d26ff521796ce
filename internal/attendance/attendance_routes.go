package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer, rdb *redis.Client) {
	// Marking is driven by recognition kiosks, not logged-in admins, so it
	// sits outside the auth group behind rate limiting and idempotency.
	r.POST("/attendance/mark",
		middleware.RateLimit(),
		middleware.Idempotency(rdb),
		h.Mark,
	)

	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.GET("/working-hours/:employee_id/:date", h.WorkingHours)
		attendance.GET("/summary", middleware.Authorize(enforcer, "attendance", "read"), h.Summary)
		attendance.GET("/trends", middleware.Authorize(enforcer, "attendance", "read"), h.Trends)
		attendance.GET("/recent", middleware.Authorize(enforcer, "attendance", "read"), h.RecentActivity)
	}
}
