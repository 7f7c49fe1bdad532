package config

import (
	"os"
	"strings"
)

// Server captures process-level configuration. Everything is env-driven so
// main stays lean; empty backend URLs mean "not configured" and the process
// runs entirely on its in-memory fallback stores.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	AuditTopic    string
	PublicBaseURL string
	JWTSigningKey string
}

// MailQueueKey is the Redis list holding queued resume emails.
const MailQueueKey = "surveyor:mailqueue"

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("SURVEYOR_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "surveyor.audit"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaBrokers:  brokers,
		AuditTopic:    topic,
		PublicBaseURL: strings.TrimRight(baseURL, "/"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
	}
}
