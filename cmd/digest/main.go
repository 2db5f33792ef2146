package main

import (
	"context"
	"time"

	"leave-portal/internal/app"
	"leave-portal/internal/bootstrap"
	"leave-portal/internal/digest"
	"leave-portal/internal/employee"
	"leave-portal/internal/leave"
	"leave-portal/internal/mailer"

	"go.uber.org/zap"
)

// One-shot binary, run from cron each morning.
func main() {
	logger := bootstrap.NewLogger()
	defer logger.Sync()

	app.LoadEnv()

	db, err := app.ConnectDatabase()
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	svc := digest.NewService(
		leave.NewRepository(db),
		employee.NewRepository(db),
		mailer.NewSMTPMailer(logger),
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	today := time.Now().Truncate(24 * time.Hour)
	if err := svc.SendDaily(ctx, today); err != nil {
		logger.Fatal("daily digest failed", zap.Error(err))
	}
}
