package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource" json:"resource"`
	ResourceID string             `bson:"resource_id" json:"resource_id"`
	OldValue   interface{}        `bson:"old_value,omitempty" json:"old_value,omitempty"`
	NewValue   interface{}        `bson:"new_value,omitempty" json:"new_value,omitempty"`
	IPAddress  string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata   map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Audit constants
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"

	AuditResourceUserConfig       = "user_config"
	AuditResourceReminderSettings = "reminder_settings"
	AuditResourceConsent          = "consent"
)

// AuditContext contains context information for audit logging
type AuditContext struct {
	UserID    string
	IPAddress string
	UserAgent string
	RequestID string
}

// AuditWorker manages asynchronous audit logging
type AuditWorker struct {
	auditChan chan AuditLog
	workers   int
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

var (
	auditWorker *AuditWorker
	once        sync.Once
)

// InitAuditWorker initializes the audit worker
func InitAuditWorker(workers int, bufferSize int) {
	once.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		auditWorker = &AuditWorker{
			auditChan: make(chan AuditLog, bufferSize),
			workers:   workers,
			ctx:       ctx,
			cancel:    cancel,
		}
		auditWorker.start()
	})
}

// start starts the audit worker pool
func (aw *AuditWorker) start() {
	aw.wg.Add(aw.workers)

	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.auditChan)))
}

// processAuditLogs drains the channel and flushes entries in batches
func (aw *AuditWorker) processAuditLogs() {
	batchTicker := time.NewTicker(100 * time.Millisecond)
	defer batchTicker.Stop()

	var batch []AuditLog
	batchSize := 100

	for {
		select {
		case auditLog, ok := <-aw.auditChan:
			if !ok {
				if len(batch) > 0 {
					aw.flushBatch(batch)
				}
				return
			}
			batch = append(batch, auditLog)

			if len(batch) >= batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-batchTicker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// flushBatch persists a batch of audit logs with a single bulk write
func (aw *AuditWorker) flushBatch(batch []AuditLog) {
	if len(batch) == 0 {
		return
	}

	logger := logging.Logger.With(
		zap.Int("batch_size", len(batch)),
		zap.String("operation", "audit_batch_insert"),
	)

	var operations []mongo.WriteModel
	for _, entry := range batch {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(entry))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.BulkWrite().SetOrdered(false)

	result, err := config.MongoDB.Collection(config.AppConfig.AuditLogsCollection).BulkWrite(ctx, operations, opts)
	if err != nil {
		logger.Error("failed to insert audit log batch", zap.Error(err))
		return
	}

	logger.Debug("audit log batch inserted",
		zap.Int64("inserted", result.InsertedCount))
}

// Stop stops the audit worker
func (aw *AuditWorker) Stop() {
	if aw != nil {
		aw.cancel()
		close(aw.auditChan)
		aw.wg.Wait()
	}
}

// GetAuditWorker returns the global audit worker instance
func GetAuditWorker() *AuditWorker {
	return auditWorker
}

// LogAuditEvent logs an audit event to the audit collection asynchronously
func LogAuditEvent(ctx context.Context, auditCtx AuditContext, action, resource, resourceID string, oldValue, newValue interface{}, metadata map[string]string) error {
	if !config.AppConfig.AuditLogsEnabled {
		return nil
	}

	if auditWorker == nil {
		return logAuditEventSync(ctx, auditCtx, action, resource, resourceID, oldValue, newValue, metadata)
	}

	auditLog := AuditLog{
		UserID:     auditCtx.UserID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldValue,
		NewValue:   newValue,
		IPAddress:  auditCtx.IPAddress,
		UserAgent:  auditCtx.UserAgent,
		RequestID:  auditCtx.RequestID,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}

	// Never block the request path on audit logging
	select {
	case auditWorker.auditChan <- auditLog:
		return nil
	default:
		logging.Logger.Warn("audit channel full, falling back to synchronous logging",
			zap.String("user_id", auditCtx.UserID),
			zap.String("action", action))
		return logAuditEventSync(ctx, auditCtx, action, resource, resourceID, oldValue, newValue, metadata)
	}
}

// logAuditEventSync logs an audit event synchronously (fallback method)
func logAuditEventSync(ctx context.Context, auditCtx AuditContext, action, resource, resourceID string, oldValue, newValue interface{}, metadata map[string]string) error {
	logger := logging.Logger.With(
		zap.String("user_id", auditCtx.UserID),
		zap.String("action", action),
		zap.String("resource", resource),
	)

	auditLog := AuditLog{
		UserID:     auditCtx.UserID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldValue,
		NewValue:   newValue,
		IPAddress:  auditCtx.IPAddress,
		UserAgent:  auditCtx.UserAgent,
		RequestID:  auditCtx.RequestID,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := config.MongoDB.Collection(config.AppConfig.AuditLogsCollection).InsertOne(dbCtx, auditLog)
	if err != nil {
		logger.Error("failed to insert audit log", zap.Error(err))
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// LogOnboardingCompletion logs an onboarding completion audit event
func LogOnboardingCompletion(ctx context.Context, auditCtx AuditContext, choice string, permissionGranted bool) error {
	metadata := map[string]string{
		"operation": "onboarding_completion",
		"choice":    choice,
	}

	return LogAuditEvent(ctx, auditCtx, AuditActionUpdate, AuditResourceUserConfig, auditCtx.UserID,
		nil, map[string]interface{}{
			"has_completed_onboarding": true,
			"permission_granted":       permissionGranted,
		}, metadata)
}

// LogReminderSettingsUpdate logs a reminder settings update audit event
func LogReminderSettingsUpdate(ctx context.Context, auditCtx AuditContext, oldSettings, newSettings interface{}) error {
	metadata := map[string]string{
		"operation": "reminder_settings_update",
	}

	return LogAuditEvent(ctx, auditCtx, AuditActionUpdate, AuditResourceReminderSettings, auditCtx.UserID, oldSettings, newSettings, metadata)
}

// LogConsentRecorded logs a consent record audit event
func LogConsentRecorded(ctx context.Context, auditCtx AuditContext, document, locale, version string) error {
	metadata := map[string]string{
		"operation": "consent_recorded",
		"document":  document,
		"locale":    locale,
		"version":   version,
	}

	return LogAuditEvent(ctx, auditCtx, AuditActionCreate, AuditResourceConsent, auditCtx.UserID, nil, nil, metadata)
}

// GetAuditContextFromGin builds an audit context from a request
func GetAuditContextFromGin(c *gin.Context, userID string) AuditContext {
	return AuditContext{
		UserID:    userID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString("RequestID"),
	}
}
