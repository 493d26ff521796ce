package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/employee"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/middleware"
	"go-attendance/internal/recognition"
	"go-attendance/internal/report"
	"go-attendance/internal/settings"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerModules wires repositories, services and routes. Everything the
// API serves hangs off this function.
func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	enforcer *casbin.Enforcer,
	logger *zap.Logger,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	attendanceRepo := attendance.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	encoder := recognition.NewHTTPEncoder(faceServiceURL(), logger)
	encodingCache := recognition.NewEncodingCache(func(ctx context.Context) ([]recognition.Encoding, error) {
		rows, err := employeeRepo.ListEncodings(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := make([]recognition.Encoding, 0, len(rows))
		for _, row := range rows {
			out = append(out, recognition.Encoding{
				EmployeeID: row.ID,
				Code:       row.Code,
				Name:       row.Name,
				Data:       row.FaceEncoding,
				UpdatedAt:  row.UpdatedAt,
			})
		}
		return out, nil
	}, redisClient, logger)

	warmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := encodingCache.Warm(warmCtx); err != nil {
		logger.Warn("encoding cache warmup failed", zap.Error(err))
	}

	attendanceService := attendance.NewService(sqlDB, attendanceRepo, settingsRepo, leaveRepo, outboxRepo, logger)
	settingsService := settings.NewService(settingsRepo, logger)
	leaveService := leave.NewService(leaveRepo, attendanceRepo, logger)
	employeeService := employee.NewService(sqlDB, employeeRepo, encoder, encodingCache, outboxRepo, logger)
	reportService := report.NewService(attendanceService, logger)
	authService := auth.NewService(logger)

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, auth.NewHandler(authService))
	attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService), enforcer, redisClient)
	settings.RegisterRoutes(api, settings.NewHandler(settingsService), enforcer)
	leave.RegisterRoutes(api, leave.NewHandler(leaveService), enforcer)
	employee.RegisterRoutes(api, employee.NewHandler(employeeService), enforcer)
	report.RegisterRoutes(api, report.NewHandler(reportService), enforcer)

	return nil
}

func faceServiceURL() string {
	if url := os.Getenv("FACE_SERVICE_URL"); url != "" {
		return url
	}
	return "http://localhost:8500"
}
