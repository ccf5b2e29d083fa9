package e2e_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

// TestLegalDocuments exercises the public legal document endpoints
func TestLegalDocuments(t *testing.T) {
	baseURL := getBaseURL(t)
	client := &http.Client{Timeout: 10 * time.Second}

	getDocument := func(t *testing.T, path string) map[string]interface{} {
		t.Helper()
		resp, err := client.Get(baseURL + path)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var data map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		return data
	}

	t.Run("PrivacyPolicyDefaultLocale", func(t *testing.T) {
		data := getDocument(t, "/legal/privacy-policy")

		if data["loading"] != false {
			t.Error("Expected a fully rendered document")
		}
		nodes, ok := data["nodes"].([]interface{})
		if !ok || len(nodes) == 0 {
			t.Fatal("Response missing rendered nodes")
		}
	})

	t.Run("TermsOfServiceLocalized", func(t *testing.T) {
		data := getDocument(t, "/legal/terms-of-service?locale=pt-BR")

		if data["locale"] != "pt-BR" {
			t.Errorf("Expected locale pt-BR, got %v", data["locale"])
		}
	})

	t.Run("UnsupportedLocaleReturnsLoading", func(t *testing.T) {
		data := getDocument(t, "/legal/privacy-policy?locale=fr-FR")

		if data["loading"] != true {
			t.Error("Expected loading placeholder for unsupported locale")
		}
	})

	t.Run("Locales", func(t *testing.T) {
		data := getDocument(t, "/legal/locales")

		if _, ok := data["default"].(string); !ok {
			t.Error("Response missing 'default' field")
		}
		locales, ok := data["locales"].([]interface{})
		if !ok || len(locales) == 0 {
			t.Error("Response missing 'locales' field")
		}
	})
}
