package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/i18n"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/observability"
	"github.com/mindpage/app-journal/internal/render"
)

// LegalDocumentService renders localized legal documents, caching the
// rendered node list per document and locale.
type LegalDocumentService struct {
	catalog *i18n.Catalog
	logger  *logging.SafeLogger
}

// NewLegalDocumentService creates a new legal document service
func NewLegalDocumentService(catalog *i18n.Catalog, logger *logging.SafeLogger) *LegalDocumentService {
	return &LegalDocumentService{
		catalog: catalog,
		logger:  logger,
	}
}

func legalCacheKey(kind models.LegalDocumentKind, locale string) string {
	return fmt.Sprintf("legal:%s:%s", kind, locale)
}

// Render returns the rendered node list for a document and locale. A locale
// with no valid document yields the loading placeholder, never an error; the
// client retries or switches locale. Loading responses are not cached.
func (s *LegalDocumentService) Render(ctx context.Context, kind models.LegalDocumentKind, locale string) (*models.RenderedDocumentResponse, error) {
	switch kind {
	case models.LegalDocumentPrivacyPolicy, models.LegalDocumentTermsOfService:
	default:
		return nil, fmt.Errorf("kind %q: %w", kind, models.ErrUnknownDocumentKind)
	}

	resolved, ok := s.catalog.Resolve(locale)
	if !ok {
		observability.DocumentRenders.WithLabelValues(string(kind), locale, "loading").Inc()
		return s.loadingResponse(kind, locale), nil
	}

	cacheKey := legalCacheKey(kind, resolved)
	cached, err := config.Redis.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var resp models.RenderedDocumentResponse
		if unmarshalErr := json.Unmarshal([]byte(cached), &resp); unmarshalErr == nil {
			observability.CacheHits.WithLabelValues("legal_document_hit").Inc()
			return &resp, nil
		} else {
			s.logger.Warn("failed to unmarshal cached rendered document",
				zap.String("cache_key", cacheKey), zap.Error(unmarshalErr))
		}
	}
	observability.CacheHits.WithLabelValues("legal_document_miss").Inc()

	doc, ok := s.catalog.Document(resolved, kind)
	if !ok {
		observability.DocumentRenders.WithLabelValues(string(kind), resolved, "loading").Inc()
		return s.loadingResponse(kind, resolved), nil
	}

	labels := render.Labels{
		EffectiveDate:  s.catalog.Translate(resolved, "legal.effective_date"),
		LastUpdated:    s.catalog.Translate(resolved, "legal.last_updated"),
		ImportantNotes: s.catalog.Translate(resolved, "legal.important_notes"),
	}

	resp := &models.RenderedDocumentResponse{
		Document: kind,
		Locale:   resolved,
		Loading:  false,
		Nodes:    render.RenderDocument(doc, labels),
	}

	if data, err := json.Marshal(resp); err == nil {
		config.Redis.Set(ctx, cacheKey, string(data), config.AppConfig.LegalDocumentCacheTTL)
	}

	observability.DocumentRenders.WithLabelValues(string(kind), resolved, "rendered").Inc()
	return resp, nil
}

// NegotiateLocale picks a catalog locale from an Accept-Language header
func (s *LegalDocumentService) NegotiateLocale(acceptLanguage string) string {
	return s.catalog.Negotiate(acceptLanguage)
}

// Locales lists the locales with a complete document set
func (s *LegalDocumentService) Locales() *models.LocalesResponse {
	return &models.LocalesResponse{
		Default: s.catalog.DefaultLocale(),
		Locales: s.catalog.Locales(),
	}
}

// InvalidateCache drops every cached render for a document kind, for use
// after a content update ships
func (s *LegalDocumentService) InvalidateCache(ctx context.Context, kind models.LegalDocumentKind) {
	pattern := fmt.Sprintf("legal:%s:*", kind)
	keys, err := config.Redis.Keys(ctx, pattern).Result()
	if err != nil {
		s.logger.Warn("failed to list rendered document cache keys", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		config.Redis.Del(ctx, keys...)
	}
}

func (s *LegalDocumentService) loadingResponse(kind models.LegalDocumentKind, locale string) *models.RenderedDocumentResponse {
	return &models.RenderedDocumentResponse{
		Document: kind,
		Locale:   locale,
		Loading:  true,
		Nodes:    render.RenderLoading(),
	}
}
