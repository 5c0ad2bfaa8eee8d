package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort string

	// DBHost selects the storage: empty keeps everything in memory.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PricingServiceURL     string
	PricingServiceTimeout time.Duration

	KafkaHost              string
	KafkaOrderChangedTopic string

	// Cron schedules with a seconds field. Empty disables the job.
	PricingJobSchedule     string
	OutboxRelayJobSchedule string
}

// UsesDatabase reports whether PostgreSQL storage is configured.
func (c Config) UsesDatabase() bool {
	return c.DBHost != ""
}

// DSN returns the PostgreSQL connection string in key=value form, understood by both pgx
// and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
