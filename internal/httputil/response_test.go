package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		extras       map[string]interface{}
		requestID    string
		wantType     string
		wantInstance string
		wantExtra    string
	}{
		{
			name:     "plain problem",
			status:   http.StatusBadRequest,
			wantType: "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.1",
		},
		{
			name:      "serialization problem with extras",
			status:    http.StatusUnprocessableEntity,
			extras:    map[string]interface{}{"node_type": "mystery", "status": "ignored"},
			wantType:  "https://datatracker.ietf.org/doc/html/rfc4918#section-11.2",
			wantExtra: "mystery",
		},
		{
			name:         "request id becomes instance",
			status:       http.StatusInternalServerError,
			requestID:    "8d3c0a57-6f64-4b8e-9c53-3f0b3f1a2b11",
			wantType:     "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.1",
			wantInstance: "urn:request:8d3c0a57-6f64-4b8e-9c53-3f0b3f1a2b11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if tt.requestID != "" {
				rec.Header().Set("X-Request-ID", tt.requestID)
			}

			RespondErrorWithExtras(rec, tt.status, "detail", tt.extras)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != problemContentType {
				t.Errorf("Content-Type = %q", ct)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["type"] != tt.wantType {
				t.Errorf("type = %v, want %s", body["type"], tt.wantType)
			}
			if body["status"] != float64(tt.status) {
				t.Errorf("status member = %v, extras must not override it", body["status"])
			}
			if tt.wantInstance != "" && body["instance"] != tt.wantInstance {
				t.Errorf("instance = %v, want %s", body["instance"], tt.wantInstance)
			}
			if tt.wantExtra != "" && body["node_type"] != tt.wantExtra {
				t.Errorf("node_type = %v, want %s", body["node_type"], tt.wantExtra)
			}
		})
	}
}

func TestRespondError_DelegatesToExtras(t *testing.T) {
	plain := httptest.NewRecorder()
	RespondError(plain, http.StatusRequestEntityTooLarge, "too big")

	withNil := httptest.NewRecorder()
	RespondErrorWithExtras(withNil, http.StatusRequestEntityTooLarge, "too big", nil)

	if plain.Body.String() != withNil.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", plain.Body.String(), withNil.Body.String())
	}
}
