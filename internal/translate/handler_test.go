package translate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"krishi-backend/internal/translate"
)

type echoTranslator struct {
	err error
}

func (e echoTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "[" + target + "]" + text, nil
}

func (e echoTranslator) Detect(ctx context.Context, text string) (translate.Detection, error) {
	if e.err != nil {
		return translate.Detection{}, e.err
	}
	return translate.Detection{Language: "hi", Confidence: 92.5}, nil
}

func newTranslateRouter(t *testing.T, tr translate.Translator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	translate.NewHandler(tr).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestLanguagesEndpoint(t *testing.T) {
	router := newTranslateRouter(t, echoTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/translation/languages", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var langs []translate.Language
	if err := json.NewDecoder(resp.Body).Decode(&langs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(langs) != 9 {
		t.Fatalf("len = %d, want 9", len(langs))
	}
	if langs[0].Code != "en" || langs[1].Code != "hi" {
		t.Errorf("unexpected ordering: %+v", langs[:2])
	}
}

func TestTranslateEndpoint(t *testing.T) {
	router := newTranslateRouter(t, echoTranslator{})

	resp := postJSON(t, router, "/api/v1/translation/translate", gin.H{
		"text":           "soil health",
		"targetLanguage": "hi",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Translation string `json:"translation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Translation != "[hi]soil health" {
		t.Errorf("translation = %q", out.Translation)
	}
}

func TestTranslateEndpointValidation(t *testing.T) {
	router := newTranslateRouter(t, echoTranslator{})

	for name, payload := range map[string]gin.H{
		"missing text":   {"targetLanguage": "hi"},
		"missing target": {"text": "soil"},
		"blank text":     {"text": "  ", "targetLanguage": "hi"},
	} {
		resp := postJSON(t, router, "/api/v1/translation/translate", payload)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, resp.Code)
		}
	}
}

func TestTranslateEndpointUpstreamFailure(t *testing.T) {
	router := newTranslateRouter(t, echoTranslator{err: fmt.Errorf("down")})

	resp := postJSON(t, router, "/api/v1/translation/translate", gin.H{
		"text":           "soil",
		"targetLanguage": "hi",
	})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.Code)
	}
}

func TestTranslateObjectEndpoint(t *testing.T) {
	router := newTranslateRouter(t, echoTranslator{})

	resp := postJSON(t, router, "/api/v1/translation/translate-object", gin.H{
		"targetLanguage": "ta",
		"data": gin.H{
			"disease":    "Late Blight",
			"confidence": 91,
			"steps":      []any{"Drain the field"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["disease"] != "[ta]Late Blight" {
		t.Errorf("disease = %v", out["disease"])
	}
	if out["confidence"] != 91.0 {
		t.Errorf("confidence = %v, want untouched 91", out["confidence"])
	}
	steps, ok := out["steps"].([]any)
	if !ok || len(steps) != 1 || steps[0] != "[ta]Drain the field" {
		t.Errorf("steps = %v", out["steps"])
	}
}

func TestDetectLanguageEndpoint(t *testing.T) {
	router := newTranslateRouter(t, echoTranslator{})

	resp := postJSON(t, router, "/api/v1/translation/detect-language", gin.H{
		"text": "मिट्टी परीक्षण",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var det translate.Detection
	if err := json.NewDecoder(resp.Body).Decode(&det); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if det.Language != "hi" || det.Confidence != 92.5 {
		t.Errorf("detection = %+v", det)
	}
}

func TestDetectLanguageRequiresText(t *testing.T) {
	router := newTranslateRouter(t, echoTranslator{})

	resp := postJSON(t, router, "/api/v1/translation/detect-language", gin.H{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
