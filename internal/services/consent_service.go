package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/i18n"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/observability"
	"github.com/mindpage/app-journal/internal/utils"
)

// ConsentService records which legal document versions a user accepted. The
// accepted version is the document's effective date, taken from the catalog
// at acceptance time.
type ConsentService struct {
	catalog *i18n.Catalog
	logger  *logging.SafeLogger
}

// NewConsentService creates a new consent service
func NewConsentService(catalog *i18n.Catalog, logger *logging.SafeLogger) *ConsentService {
	return &ConsentService{
		catalog: catalog,
		logger:  logger,
	}
}

// RecordConsent upserts a consent record for a document. Re-accepting a
// document replaces the previous record, keeping one row per user and
// document under the unique index.
func (s *ConsentService) RecordConsent(ctx context.Context, userID string, req models.RecordConsentRequest) (*models.ConsentRecord, error) {
	doc, ok := s.catalog.Document(req.Locale, req.Document)
	if !ok {
		return nil, fmt.Errorf("document %q locale %q: %w", req.Document, req.Locale, models.ErrDocumentNotFound)
	}

	locale := req.Locale
	if resolved, ok := s.catalog.Resolve(req.Locale); ok {
		locale = resolved
	}

	record := models.ConsentRecord{
		UserID:     userID,
		Document:   req.Document,
		Locale:     locale,
		Version:    doc.EffectiveDate,
		AcceptedAt: time.Now(),
	}

	collection := config.MongoDB.Collection(config.AppConfig.ConsentCollection)
	update := bson.M{
		"$set": bson.M{
			"locale":      record.Locale,
			"version":     record.Version,
			"accepted_at": record.AcceptedAt,
		},
		"$setOnInsert": bson.M{
			"user_id":  userID,
			"document": req.Document,
		},
	}
	filter := bson.M{"user_id": userID, "document": req.Document}

	_, err := utils.UpsertOneWithTimeout(ctx, collection, filter, update, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("record_consent", "error").Inc()
		s.logger.Error("failed to record consent",
			zap.String("user_id", observability.MaskUserID(userID)),
			zap.String("document", string(req.Document)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to record consent: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("record_consent", "success").Inc()

	s.logger.Info("recorded consent",
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.String("document", string(req.Document)),
		zap.String("version", record.Version))
	return &record, nil
}

// GetConsentStatus lists the consent records of a user
func (s *ConsentService) GetConsentStatus(ctx context.Context, userID string) (*models.ConsentStatusResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.ConsentCollection)

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list consents: %w", err)
	}
	defer cursor.Close(ctx)

	consents := []models.ConsentRecord{}
	if err := cursor.All(ctx, &consents); err != nil {
		return nil, fmt.Errorf("failed to decode consents: %w", err)
	}

	return &models.ConsentStatusResponse{Consents: consents}, nil
}
