// Package testutil holds small helpers shared by HTTP-level tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func NewTestRequest(method, path string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, path, body)
}

// NewTestRequestWithJSON encodes payload as the request body.
func NewTestRequestWithJSON(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithBearer adds a session token the way API clients send it.
func WithBearer(req *http.Request, token string) *http.Request {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func ParseJSONResponse(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("parse response %q: %v", body, err)
	}
	return out
}

func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d (body %q)", want, rr.Code, rr.Body.String())
	}
}

func AssertJSONContains(t *testing.T, body []byte, key string, want any) {
	t.Helper()
	got := ParseJSONResponse(t, body)
	if got[key] != want {
		t.Fatalf("expected %s=%v, got %v", key, want, got[key])
	}
}

func RandomUUID() uuid.UUID {
	return uuid.New()
}

// RandomMemberName returns a join-safe name that will not collide across tests.
func RandomMemberName() string {
	return "member-" + uuid.NewString()[:8]
}

func RandomEmail() string {
	return fmt.Sprintf("%s@example.com", uuid.NewString()[:8])
}
