package ai

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"amdchat/pkg/config"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(rt roundTripperFunc) *http.Client {
	return &http.Client{Transport: rt}
}

func newHTTPResponse(req *http.Request, status int, contentType string, body []byte) *http.Response {
	resp := &http.Response{
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	return resp
}

func newJSONBodyResponse(req *http.Request, status int, body string) *http.Response {
	return newHTTPResponse(req, status, "application/json", []byte(body))
}

func testOpenRouterConfig(apiURL string) config.OpenRouterConfig {
	return config.OpenRouterConfig{
		APIKey:            "test-key",
		APIURL:            apiURL,
		Model:             "test-model",
		XTitle:            "AMD ChatBot Support",
		APITimeoutSeconds: 5,
	}
}

func newRoundTripProvider(t *testing.T, rt roundTripperFunc) *OpenRouterProvider {
	t.Helper()
	provider, err := newOpenRouterProviderWithHTTPClient(testOpenRouterConfig("https://openrouter.test/api/v1"), newTestClient(rt))
	if err != nil {
		t.Fatalf("newOpenRouterProviderWithHTTPClient() error: %v", err)
	}
	return provider
}

func readBody(t *testing.T, req *http.Request) string {
	t.Helper()
	if req.Body == nil {
		return ""
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read request body: %v", err)
	}
	return strings.TrimSpace(string(data))
}
