package app

import (
	"os"

	"leave-portal/internal/announcement"
	"leave-portal/internal/auth"
	"leave-portal/internal/balance"
	"leave-portal/internal/employee"
	"leave-portal/internal/holiday"
	"leave-portal/internal/leave"
	"leave-portal/internal/middleware"
	"leave-portal/internal/report"
	"leave-portal/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// LoadEnv reads .env if present; in deployed environments the variables come
// from the platform and the file does not exist.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		zap.L().Info("no .env file, using process environment")
	}
}

func ConnectDatabase() (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
}

func ConnectRedis() (*redis.Client, error) {
	return connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
}

// Migrate applies the schema. The outbox table is raw DDL; it is not a gorm
// entity because the repositories address it with SQL directly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Team{},
		&employee.Employee{},
		&auth.User{},
		&balance.Balance{},
		&leave.Leave{},
		&holiday.Holiday{},
		&announcement.Announcement{},
	); err != nil {
		return err
	}

	return db.Exec(`
CREATE TABLE IF NOT EXISTS outbox_events (
    id UUID PRIMARY KEY,
    request_id TEXT,
    aggregate_type TEXT NOT NULL,
    aggregate_id UUID NOT NULL,
    event_type TEXT NOT NULL,
    topic TEXT NOT NULL,
    payload JSONB NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    retry_count INT NOT NULL DEFAULT 0,
    error_message TEXT,
    next_retry_at TIMESTAMPTZ,
    processed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
    ON outbox_events (status, created_at);
`).Error
}

func SetupRouter(reg *Registry) *gin.Engine {
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(zap.L()))
	r.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	auth.RegisterRoutes(v1, reg.AuthHandler, reg.Enforcer)
	employee.RegisterRoutes(v1, reg.EmployeeHandler, reg.Enforcer)
	leave.RegisterRoutes(v1, reg.LeaveHandler, reg.Enforcer, reg.RDB)
	balance.RegisterRoutes(v1, reg.BalanceHandler, reg.Enforcer)
	holiday.RegisterRoutes(v1, reg.HolidayHandler, reg.Enforcer)
	announcement.RegisterRoutes(v1, reg.AnnouncementHandler, reg.Enforcer)
	report.RegisterRoutes(v1, reg.ReportHandler, reg.Enforcer)

	return r
}
