package main

import (
	"os"
	"strings"
	"time"

	"leave-portal/internal/app"
	"leave-portal/internal/bootstrap"
	"leave-portal/internal/messaging/kafka"
	"leave-portal/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// The worker ships committed outbox rows to Kafka. It is the only process
// that writes to the broker, so the API stays up when Kafka is down.
func main() {
	logger := bootstrap.NewLogger()
	defer logger.Sync()

	app.LoadEnv()

	db, err := app.ConnectDatabase()
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	brokers := strings.Split(os.Getenv("KAFKA_BROKERS"), ",")
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	defer writer.Close()

	ctx, cancel := bootstrap.SignalContext()
	defer cancel()

	producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(db), writer, logger, 3*time.Second)
}
