package app

import (
	"os"

	"go-attendance/internal/attendance"
	"go-attendance/internal/employee"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	rbacinfra "go-attendance/internal/rbac/infra"
	"go-attendance/internal/settings"
	"go-attendance/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module on the
// router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&attendance.AttendanceRecord{},
		&settings.LocationSetting{},
		&leave.LeaveHistory{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	enforcer, err := rbacinfra.NewEnforcer()
	if err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient, enforcer, zap.L())
}
