package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := ensureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisOpts, err := redis.ParseURL(AppConfig.RedisURI)
	if err != nil {
		// URI may be a bare host:port
		redisOpts = &redis.Options{Addr: AppConfig.RedisURI}
	}
	redisOpts.Password = AppConfig.RedisPassword
	redisOpts.DB = AppConfig.RedisDB
	redisOpts.DialTimeout = 5 * time.Second
	redisOpts.ReadTimeout = 3 * time.Second
	redisOpts.WriteTimeout = 3 * time.Second
	redisOpts.PoolSize = 10
	redisOpts.MinIdleConns = 5

	// Wrap with traced client
	Redis = redisclient.NewClient(redis.NewClient(redisOpts))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks sensitive information in MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	return "mongodb://****:****@" + uri[at+1:]
}

// ensureIndexes creates required indexes if they don't exist
func ensureIndexes() error {
	logger := zap.L().Named("database")
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ensureUniqueIndex(ctx, logger, AppConfig.UserConfigCollection, "user_id_1",
		bson.D{{Key: "user_id", Value: 1}}); err != nil {
		return err
	}

	if err := ensureUniqueIndex(ctx, logger, AppConfig.ReminderSettingsCollection, "user_id_1",
		bson.D{{Key: "user_id", Value: 1}}); err != nil {
		return err
	}

	if err := ensureUniqueIndex(ctx, logger, AppConfig.ConsentCollection, "user_id_1_document_1",
		bson.D{{Key: "user_id", Value: 1}, {Key: "document", Value: 1}}); err != nil {
		return err
	}

	if err := ensureAuditLogsIndex(ctx, logger); err != nil {
		return err
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureUniqueIndex creates a unique index when it is not already present
func ensureUniqueIndex(ctx context.Context, logger *zap.Logger, collectionName, indexName string, keys bson.D) error {
	collection := MongoDB.Collection(collectionName)

	exists, err := indexExists(ctx, collection, indexName)
	if err != nil {
		logger.Error("failed to list indexes",
			zap.String("collection", collectionName),
			zap.Error(err))
		return err
	}
	if exists {
		logger.Debug("index already exists",
			zap.String("collection", collectionName),
			zap.String("index", indexName))
		return nil
	}

	indexModel := mongo.IndexModel{
		Keys: keys,
		Options: options.Index().
			SetName(indexName).
			SetUnique(true),
	}

	_, err = collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		// Another instance may have created it concurrently
		if mongo.IsDuplicateKeyError(err) {
			logger.Info("index already exists (created by another instance)",
				zap.String("collection", collectionName))
			return nil
		}
		logger.Error("failed to create index",
			zap.String("collection", collectionName),
			zap.String("index", indexName),
			zap.Error(err))
		return err
	}

	logger.Info("created collection index",
		zap.String("collection", collectionName),
		zap.String("index", indexName))
	return nil
}

// ensureAuditLogsIndex creates the timestamp index used by audit queries
func ensureAuditLogsIndex(ctx context.Context, logger *zap.Logger) error {
	collection := MongoDB.Collection(AppConfig.AuditLogsCollection)

	exists, err := indexExists(ctx, collection, "user_id_1_timestamp_-1")
	if err != nil {
		logger.Error("failed to list audit_logs indexes", zap.Error(err))
		return err
	}
	if exists {
		return nil
	}

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().
			SetName("user_id_1_timestamp_-1"),
	}

	_, err = collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		logger.Error("failed to create audit_logs index", zap.Error(err))
		return err
	}

	logger.Info("created audit_logs collection index")
	return nil
}

func indexExists(ctx context.Context, collection *mongo.Collection, name string) (bool, error) {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return false, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if n, ok := index["name"].(string); ok && n == name {
			return true, nil
		}
	}
	return false, nil
}
