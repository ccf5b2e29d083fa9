package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/i18n"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
)

func setupConsentServiceTest(t *testing.T) (*ConsentService, func()) {
	requireDatabases(t)

	catalog, err := i18n.NewCatalog("en")
	require.NoError(t, err)

	ctx := context.Background()
	service := NewConsentService(catalog, logging.Logger)

	return service, func() {
		_ = config.MongoDB.Collection(config.AppConfig.ConsentCollection).Drop(ctx)
	}
}

func TestRecordConsent(t *testing.T) {
	service, cleanup := setupConsentServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	record, err := service.RecordConsent(ctx, "user-1", models.RecordConsentRequest{
		Document: models.LegalDocumentTermsOfService,
		Locale:   "pt-BR",
	})
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", record.Locale)
	assert.Equal(t, "1º de março de 2026", record.Version)

	status, err := service.GetConsentStatus(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, status.Consents, 1)
	assert.Equal(t, models.LegalDocumentTermsOfService, status.Consents[0].Document)
}

func TestRecordConsentReplacesPrevious(t *testing.T) {
	service, cleanup := setupConsentServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	_, err := service.RecordConsent(ctx, "user-1", models.RecordConsentRequest{
		Document: models.LegalDocumentPrivacyPolicy,
		Locale:   "en",
	})
	require.NoError(t, err)

	second, err := service.RecordConsent(ctx, "user-1", models.RecordConsentRequest{
		Document: models.LegalDocumentPrivacyPolicy,
		Locale:   "pt-BR",
	})
	require.NoError(t, err)

	status, err := service.GetConsentStatus(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, status.Consents, 1)
	assert.Equal(t, second.Locale, status.Consents[0].Locale)
}

func TestRecordConsentUnknownDocument(t *testing.T) {
	service, cleanup := setupConsentServiceTest(t)
	defer cleanup()

	_, err := service.RecordConsent(context.Background(), "user-1", models.RecordConsentRequest{
		Document: models.LegalDocumentKind("cookie_policy"),
		Locale:   "en",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
}

func TestGetConsentStatusEmpty(t *testing.T) {
	service, cleanup := setupConsentServiceTest(t)
	defer cleanup()

	status, err := service.GetConsentStatus(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, status.Consents)
}
