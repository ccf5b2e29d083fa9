package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expectedStatus int) {
	t.Helper()
	if resp.StatusCode != expectedStatus {
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, expectedStatus, resp.StatusCode,
			"Unexpected status code. Response body: %s", string(body))
	}
}

// AssertJSONResponse validates response is valid JSON and returns parsed body
func AssertJSONResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	var result map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "Response is not valid JSON: %s", string(body))

	return result
}

// AssertHealthy checks if health endpoint returns healthy status
func AssertHealthy(t *testing.T, client *APIClient) {
	t.Helper()

	resp, err := client.Get("/health")
	require.NoError(t, err, "Failed to call health endpoint")
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)

	body := AssertJSONResponse(t, resp)
	status, ok := body["status"].(string)
	require.True(t, ok, "Health response missing 'status' field")
	assert.Equal(t, "healthy", status, "Service is not healthy")
}

// AssertFieldExists checks if a field exists in JSON response
func AssertFieldExists(t *testing.T, data map[string]interface{}, field string) {
	t.Helper()
	_, exists := data[field]
	assert.True(t, exists, "Expected field '%s' not found in response", field)
}

// AssertRenderedDocument checks a legal document response is fully rendered
// in the expected locale
func AssertRenderedDocument(t *testing.T, data map[string]interface{}, locale string) {
	t.Helper()

	loading, ok := data["loading"].(bool)
	require.True(t, ok, "Document response missing 'loading' field")
	assert.False(t, loading, "Document is still in loading state")

	assert.Equal(t, locale, data["locale"], "Unexpected document locale")

	nodes, ok := data["nodes"].([]interface{})
	require.True(t, ok, "Document response missing 'nodes' field")
	assert.NotEmpty(t, nodes, fmt.Sprintf("Document has no rendered nodes for locale %s", locale))
}
