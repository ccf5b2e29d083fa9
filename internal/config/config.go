package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	UserConfigCollection       string `json:"mongo_user_config_collection"`
	ReminderSettingsCollection string `json:"mongo_reminder_settings_collection"`
	ConsentCollection          string `json:"mongo_consent_collection"`
	AuditLogsCollection        string `json:"mongo_audit_logs_collection"`

	// Localization configuration
	DefaultLocale         string        `json:"default_locale"`
	LegalDocumentCacheTTL time.Duration `json:"legal_document_cache_ttl"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	// Audit configuration
	AuditLogsEnabled bool `json:"audit_logs_enabled"`
	AuditWorkerCount int  `json:"audit_worker_count"`
	AuditBufferSize  int  `json:"audit_buffer_size"`

	// Auth configuration
	AdminGroup string `json:"admin_group"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	legalCacheTTL, err := time.ParseDuration(getEnvOrDefault("LEGAL_DOCUMENT_CACHE_TTL", "6h"))
	if err != nil {
		return fmt.Errorf("invalid LEGAL_DOCUMENT_CACHE_TTL: %w", err)
	}

	auditWorkers, err := strconv.Atoi(getEnvOrDefault("AUDIT_WORKER_COUNT", "2"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_WORKER_COUNT: %w", err)
	}

	auditBuffer, err := strconv.Atoi(getEnvOrDefault("AUDIT_BUFFER_SIZE", "100"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_BUFFER_SIZE: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "journal"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		UserConfigCollection:       getEnvOrDefault("MONGODB_USER_CONFIG_COLLECTION", "user_config"),
		ReminderSettingsCollection: getEnvOrDefault("MONGODB_REMINDER_SETTINGS_COLLECTION", "reminder_settings"),
		ConsentCollection:          getEnvOrDefault("MONGODB_CONSENT_COLLECTION", "consent_records"),
		AuditLogsCollection:        getEnvOrDefault("MONGODB_AUDIT_LOGS_COLLECTION", "audit_logs"),

		// Localization configuration
		DefaultLocale:         getEnvOrDefault("DEFAULT_LOCALE", "en"),
		LegalDocumentCacheTTL: legalCacheTTL,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),

		// Audit configuration
		AuditLogsEnabled: getEnvOrDefault("AUDIT_LOGS_ENABLED", "true") == "true",
		AuditWorkerCount: auditWorkers,
		AuditBufferSize:  auditBuffer,

		// Auth configuration
		AdminGroup: getEnvOrDefault("ADMIN_GROUP", "journal-admin"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
