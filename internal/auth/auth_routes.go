package auth

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/auth/login", middleware.RateLimitByIP(rate.Limit(1), 5), h.Login)
}
