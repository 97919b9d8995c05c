package translate

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"krishi-backend/internal/shared/server/respond"
)

// Handler exposes the translation proxy endpoints.
type Handler struct {
	tr Translator
}

func NewHandler(tr Translator) *Handler {
	return &Handler{tr: tr}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/translation/languages", h.languages)
	rg.POST("/translation/translate", h.translateText)
	rg.POST("/translation/translate-object", h.translateObject)
	rg.POST("/translation/detect-language", h.detectLanguage)
}

func (h *Handler) languages(c *gin.Context) {
	respond.OK(c, SupportedLanguages)
}

type translateTextRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

func (h *Handler) translateText(c *gin.Context) {
	var req translateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.TargetLanguage) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text and targetLanguage are required", nil)
		return
	}

	translation, err := h.tr.Translate(c.Request.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "Translation failed", nil)
		return
	}
	respond.OK(c, gin.H{"translation": translation})
}

type translateObjectRequest struct {
	Data           json.RawMessage `json:"data"`
	TargetLanguage string          `json:"targetLanguage"`
}

func (h *Handler) translateObject(c *gin.Context) {
	var req translateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.Data) == 0 || strings.TrimSpace(req.TargetLanguage) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "data and targetLanguage are required", nil)
		return
	}

	var value any
	if err := json.Unmarshal(req.Data, &value); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "data must be valid JSON", nil)
		return
	}

	translated, err := TranslateValue(c.Request.Context(), h.tr, value, req.TargetLanguage)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "Translation failed", nil)
		return
	}
	respond.OK(c, translated)
}

type detectLanguageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) detectLanguage(c *gin.Context) {
	var req detectLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	detection, err := h.tr.Detect(c.Request.Context(), req.Text)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "Language detection failed", nil)
		return
	}
	respond.OK(c, detection)
}
