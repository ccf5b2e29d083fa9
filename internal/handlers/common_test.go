package handlers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/redisclient"
)

// TestMain starts shared MongoDB and Redis containers for the package. When
// containers cannot start, config.MongoDB stays nil and the endpoint tests
// skip themselves.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	_ = logging.InitLogger()

	ctx := context.Background()

	config.AppConfig = &config.Config{
		UserConfigCollection:       "test_user_config",
		ReminderSettingsCollection: "test_reminder_settings",
		ConsentCollection:          "test_consent_records",
		AuditLogsCollection:        "test_audit_logs",
		DefaultLocale:              "en",
		RedisTTL:                   time.Hour,
		LegalDocumentCacheTTL:      time.Hour,
	}

	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		fmt.Fprintf(os.Stderr, "mongo container unavailable, endpoint tests will skip: %v\n", err)
		os.Exit(m.Run())
	}

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis container unavailable, endpoint tests will skip: %v\n", err)
		_ = mongoContainer.Terminate(ctx)
		os.Exit(m.Run())
	}

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get mongo connection string: %v\n", err)
		os.Exit(1)
	}
	redisURI, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis connection string: %v\n", err)
		os.Exit(1)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to mongo: %v\n", err)
		os.Exit(1)
	}
	config.MongoDB = client.Database("journal_test")

	redisOpts, err := goredis.ParseURL(redisURI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse redis URI: %v\n", err)
		os.Exit(1)
	}
	config.Redis = redisclient.NewClient(goredis.NewClient(redisOpts))

	code := m.Run()

	_ = client.Disconnect(ctx)
	_ = mongoContainer.Terminate(ctx)
	_ = redisContainer.Terminate(ctx)
	os.Exit(code)
}

// requireDatabases skips a test when the shared containers are not running
func requireDatabases(t *testing.T) {
	t.Helper()
	if config.MongoDB == nil || config.Redis == nil {
		t.Skip("MongoDB/Redis not initialized")
	}
}

// cleanupUserData drops the per-user collections and cache keys between tests
func cleanupUserData(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, pattern := range []string{"user_config:*", "legal:*"} {
		keys, _ := config.Redis.Keys(ctx, pattern).Result()
		if len(keys) > 0 {
			config.Redis.Del(ctx, keys...)
		}
	}
	_ = config.MongoDB.Collection(config.AppConfig.UserConfigCollection).Drop(ctx)
	_ = config.MongoDB.Collection(config.AppConfig.ReminderSettingsCollection).Drop(ctx)
	_ = config.MongoDB.Collection(config.AppConfig.ConsentCollection).Drop(ctx)
}
