package main

import (
	"os"
	"strings"

	"leave-portal/internal/app"
	"leave-portal/internal/bootstrap"
	"leave-portal/internal/employee"
	"leave-portal/internal/events"
	"leave-portal/internal/leave"
	"leave-portal/internal/mailer"
	"leave-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
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

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: strings.Split(os.Getenv("KAFKA_BROKERS"), ","),
		GroupID: "leave-portal-notifications",
		Topic:   events.LeaveLifecycleTopic,
	})
	defer reader.Close()

	consumer := notification.NewConsumer(
		reader,
		employee.NewRepository(db),
		leave.NewActionTokenSigner(os.Getenv("LEAVE_TOKEN_SECRET")),
		mailer.NewSMTPMailer(logger),
		os.Getenv("PORTAL_BASE_URL"),
		logger,
	)

	ctx, cancel := bootstrap.SignalContext()
	defer cancel()

	if err := consumer.Run(ctx); err != nil {
		logger.Fatal("consumer exited with error", zap.Error(err))
	}
}
