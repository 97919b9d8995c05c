package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientTranslateNormalizesTarget(t *testing.T) {
	var got translateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translatedText":"मिट्टी"}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	out, err := client.Translate(context.Background(), "soil", "hi")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "मिट्टी" {
		t.Errorf("translation = %q", out)
	}
	if got.Source != "auto" || got.Target != "hi" || got.Q != "soil" {
		t.Errorf("request = %+v", got)
	}
}

func TestClientTranslateUnknownTargetFallsBackToEnglish(t *testing.T) {
	var got translateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"translatedText":"soil"}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Translate(context.Background(), "soil", "xx"); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got.Target != "en" {
		t.Errorf("target = %q, want en", got.Target)
	}
}

func TestClientTranslateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Translate(context.Background(), "soil", "hi"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestClientDetectPicksHighestConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"language":"mr","confidence":34.0},{"language":"hi","confidence":92.5}]`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	det, err := client.Detect(context.Background(), "मिट्टी परीक्षण")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.Language != "hi" || det.Confidence != 92.5 {
		t.Errorf("detection = %+v", det)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatal("expected an error for an empty URL")
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hi", "hi"},
		{"ta", "ta"},
		{"xx", "en"},
		{"", "en"},
	}
	for _, tc := range tests {
		if got := NormalizeLanguageCode(tc.in); got != tc.want {
			t.Errorf("NormalizeLanguageCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
