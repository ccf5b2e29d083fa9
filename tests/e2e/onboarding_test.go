package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// TestOnboardingWorkflow tests the complete onboarding and reminder workflow
func TestOnboardingWorkflow(t *testing.T) {
	baseURL := getBaseURL(t)
	token := getAuthToken(t)
	userID := getTestUserID(t)
	client := &http.Client{Timeout: 30 * time.Second}

	doRequest := func(t *testing.T, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
		t.Helper()

		var body io.Reader
		if payload != nil {
			data, err := json.Marshal(payload)
			if err != nil {
				t.Fatalf("Failed to marshal payload: %v", err)
			}
			body = bytes.NewBuffer(data)
		}

		req, err := http.NewRequest(method, baseURL+path, body)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		var data map[string]interface{}
		raw, _ := io.ReadAll(resp.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &data); err != nil {
				t.Fatalf("Failed to decode response: %v. Body: %s", err, string(raw))
			}
		}
		return resp, data
	}

	t.Run("GetOnboardingState", func(t *testing.T) {
		resp, data := doRequest(t, "GET", "/users/"+userID+"/onboarding", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		if _, ok := data["has_completed_onboarding"]; !ok {
			t.Error("Response missing 'has_completed_onboarding' field")
		}
	})

	t.Run("CompleteOnboardingSkip", func(t *testing.T) {
		resp, data := doRequest(t, "POST", "/users/"+userID+"/onboarding/complete",
			map[string]interface{}{"choice": "skip"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		if data["has_completed_onboarding"] != true {
			t.Error("Expected onboarding to be completed")
		}
		if data["next_screen"] != "journal_home" {
			t.Errorf("Expected next_screen 'journal_home', got %v", data["next_screen"])
		}
	})

	t.Run("UpdateReminderSettings", func(t *testing.T) {
		resp, data := doRequest(t, "PUT", "/users/"+userID+"/reminder",
			map[string]interface{}{"enabled": true, "hour": 21, "minute": 30})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		if data["hour"] != float64(21) || data["minute"] != float64(30) {
			t.Errorf("Unexpected reminder time: %v:%v", data["hour"], data["minute"])
		}
	})

	t.Run("RecordConsent", func(t *testing.T) {
		resp, data := doRequest(t, "POST", "/users/"+userID+"/consent",
			map[string]interface{}{"document": "privacy_policy", "locale": "en"})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", resp.StatusCode)
		}
		if data["version"] == "" {
			t.Error("Consent record missing document version")
		}
	})

	t.Run("GetConsentStatus", func(t *testing.T) {
		resp, data := doRequest(t, "GET", "/users/"+userID+"/consent", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		consents, ok := data["consents"].([]interface{})
		if !ok || len(consents) == 0 {
			t.Error("Expected at least one consent record")
		}
	})

	t.Run("RejectsOtherUser", func(t *testing.T) {
		resp, _ := doRequest(t, "GET", "/users/"+userID+"-other/onboarding", nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", resp.StatusCode)
		}
	})
}
