package config

import (
	"os"

	"github.com/joho/godotenv"
)

// RelayConfig holds configuration for the SOS relay service.
// This is a minimal config that only includes what the relay needs.
type RelayConfig struct {
	DatabaseURL  string
	RabbitMQURL  string
	SOSQueueName string
}

func LoadRelayConfig() *RelayConfig {
	_ = godotenv.Load()

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	sosQueueName := os.Getenv("SOS_QUEUE_NAME")
	if sosQueueName == "" {
		sosQueueName = "sos-alerts"
	}

	return &RelayConfig{
		DatabaseURL:  dbURL,
		RabbitMQURL:  rabbitURL,
		SOSQueueName: sosQueueName,
	}
}
