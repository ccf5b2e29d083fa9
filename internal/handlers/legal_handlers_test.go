package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindpage/app-journal/internal/i18n"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/services"
)

func setupLegalRouter(t *testing.T) *gin.Engine {
	requireDatabases(t)
	t.Cleanup(func() { cleanupUserData(t) })

	catalog, err := i18n.NewCatalog("en")
	require.NoError(t, err)

	h := NewLegalHandlers(services.NewLegalDocumentService(catalog, logging.Logger), logging.Logger)

	router := gin.New()
	v1 := router.Group("/v1")
	v1.GET("/legal/privacy-policy", h.GetPrivacyPolicy)
	v1.GET("/legal/terms-of-service", h.GetTermsOfService)
	v1.GET("/legal/locales", h.GetLocales)
	return router
}

func getRenderedDocument(t *testing.T, router *gin.Engine, path string, headers map[string]string) (*httptest.ResponseRecorder, models.RenderedDocumentResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.RenderedDocumentResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestGetPrivacyPolicyDefaultLocale(t *testing.T) {
	router := setupLegalRouter(t)

	w, resp := getRenderedDocument(t, router, "/v1/legal/privacy-policy", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.False(t, resp.Loading)
	assert.Equal(t, "en", resp.Locale)
	require.NotEmpty(t, resp.Nodes)
	assert.Equal(t, models.NodeTitle, resp.Nodes[0].Kind)
	assert.Equal(t, "Privacy Policy", resp.Nodes[0].Text)
}

func TestGetTermsOfServiceQueryLocale(t *testing.T) {
	router := setupLegalRouter(t)

	w, resp := getRenderedDocument(t, router, "/v1/legal/terms-of-service?locale=pt-BR", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "pt-BR", resp.Locale)
	require.NotEmpty(t, resp.Nodes)
	assert.Equal(t, "Termos de Serviço", resp.Nodes[0].Text)
}

func TestGetPrivacyPolicyAcceptLanguage(t *testing.T) {
	router := setupLegalRouter(t)

	w, resp := getRenderedDocument(t, router, "/v1/legal/privacy-policy", map[string]string{
		"Accept-Language": "pt-BR,pt;q=0.9,en;q=0.8",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "pt-BR", resp.Locale)
	assert.False(t, resp.Loading)
}

func TestGetPrivacyPolicyAbsentLocale(t *testing.T) {
	router := setupLegalRouter(t)

	w, resp := getRenderedDocument(t, router, "/v1/legal/privacy-policy?locale=fr-FR", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, resp.Loading)
	require.Len(t, resp.Nodes, 1)
	assert.Equal(t, models.NodeLoading, resp.Nodes[0].Kind)
}

func TestGetLocales(t *testing.T) {
	router := setupLegalRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/legal/locales", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LocalesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.Default)
	assert.Equal(t, []string{"en", "pt-BR"}, resp.Locales)
}
