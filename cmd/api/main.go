package main

import (
	"leave-portal/internal/app"
	"leave-portal/internal/bootstrap"

	"go.uber.org/zap"
)

func main() {
	logger := bootstrap.NewLogger()
	defer logger.Sync()

	app.LoadEnv()

	db, err := app.ConnectDatabase()
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	rdb, err := app.ConnectRedis()
	if err != nil {
		logger.Warn("redis unavailable, caching and idempotency disabled", zap.Error(err))
		rdb = nil
	}

	if err := app.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	reg, err := app.BuildRegistry(db, rdb, logger)
	if err != nil {
		logger.Fatal("registry build failed", zap.Error(err))
	}

	router := app.SetupRouter(reg)
	if err := bootstrap.StartHTTPServer(router, bootstrap.DefaultServerConfig(), logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}
