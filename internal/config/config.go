// Package config provides configuration structures and validation for the ledger
// binaries. Values come from an env file, the environment and built-in defaults,
// covering the HTTP server, PostgreSQL, the Kafka import pipeline and the worker pool.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the settings of every binary. Only the sections a binary uses
// are validated, see SectionsFor.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	WorkerPool  WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// KafkaConfig contains Kafka configuration for the entry import pipeline
type KafkaConfig struct {
	Brokers           string // Comma separated host:port list
	ImportTopic       string
	NumPartitions     int // Number of partitions for topics
	ReplicationFactor int // Replication factor for topics
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	StartOffset       int64
	DLQTopic          string // Topic for Dead Letter Queue
}

// BrokerList splits Brokers, dropping blanks
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Connections kept open while idle
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	RunMigrations   bool          // Apply embedded migrations on startup
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of workers in the pool
}

// Section is a configuration block a binary depends on
type Section uint8

const (
	SectionServer Section = 1 << iota
	SectionImportProducer
	SectionImportConsumer
	SectionPostgres
	SectionWorkerPool

	SectionAll = SectionServer | SectionImportProducer | SectionImportConsumer | SectionPostgres | SectionWorkerPool
)

// binarySections lists what each binary reads; names not listed validate every section
var binarySections = map[string]Section{
	"api_gateway":     SectionServer | SectionImportProducer | SectionPostgres,
	"entry_processor": SectionImportConsumer | SectionPostgres | SectionWorkerPool,
	"ledgerctl":       SectionPostgres,
}

// SectionsFor returns the sections validated for the named binary
func SectionsFor(name string) Section {
	if sections, ok := binarySections[name]; ok {
		return sections
	}
	return SectionAll
}

func (s Section) has(section Section) bool { return s&section != 0 }

// validate checks the sections in use and reports every violation at once
func (c *Config) validate(sections Section) error {
	var validationErrors []string

	// Every binary shuts down on a deadline
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}

	if sections.has(SectionServer) {
		validationErrors = append(validationErrors, c.Server.violations()...)
	}
	if sections.has(SectionImportProducer) || sections.has(SectionImportConsumer) {
		validationErrors = append(validationErrors, c.Kafka.commonViolations()...)
	}
	if sections.has(SectionImportConsumer) {
		validationErrors = append(validationErrors, c.Kafka.consumerViolations()...)
	}
	if sections.has(SectionPostgres) {
		validationErrors = append(validationErrors, c.Postgres.violations()...)
	}
	if sections.has(SectionWorkerPool) && c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}

func (s ServerConfig) violations() []string {
	var v []string
	if s.Port <= 0 {
		v = append(v, "SERVER_PORT must be greater than 0")
	}
	if s.ReadTimeout <= 0 {
		v = append(v, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if s.WriteTimeout <= 0 {
		v = append(v, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if s.IdleTimeout <= 0 {
		v = append(v, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}
	return v
}

func (k KafkaConfig) commonViolations() []string {
	var v []string
	if len(k.BrokerList()) == 0 {
		v = append(v, "KAFKA_BROKERS is required")
	}
	if k.ImportTopic == "" {
		v = append(v, "KAFKA_IMPORT_TOPIC is required")
	}
	if k.NumPartitions <= 0 {
		v = append(v, "KAFKA_NUM_PARTITIONS must be greater than 0")
	}
	if k.ReplicationFactor <= 0 {
		v = append(v, "KAFKA_REPLICATION_FACTOR must be greater than 0")
	}
	if k.MaxWait <= 0 {
		v = append(v, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
	}
	return v
}

// consumerViolations leaves KAFKA_DLQ_TOPIC optional; an empty topic disables the DLQ
func (k KafkaConfig) consumerViolations() []string {
	var v []string
	if k.ConsumerGroup == "" {
		v = append(v, "KAFKA_CONSUMER_GROUP is required")
	}
	if k.MinBytes <= 0 {
		v = append(v, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
	}
	if k.MaxBytes < k.MinBytes {
		v = append(v, "KAFKA_CONSUMER_MAX_BYTES must not be less than KAFKA_CONSUMER_MIN_BYTES")
	}
	if k.DLQTopic != "" && k.DLQTopic == k.ImportTopic {
		v = append(v, "KAFKA_DLQ_TOPIC must differ from KAFKA_IMPORT_TOPIC")
	}
	return v
}

func (p PostgresConfig) violations() []string {
	var v []string
	if p.URL == "" {
		v = append(v, "POSTGRES_URL is required")
	}
	if p.MaxConns <= 0 {
		v = append(v, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if p.MinConns < 0 || p.MinConns > p.MaxConns {
		v = append(v, "POSTGRES_MIN_CONNS must be between 0 and POSTGRES_MAX_CONNS")
	}
	if p.ConnMaxLifetime <= 0 {
		v = append(v, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if p.ConnMaxIdleTime <= 0 {
		v = append(v, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	return v
}
