package disease

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"krishi-backend/internal/shared/server/respond"
)

const maxImageBytes = 10 << 20

// Handler exposes the crop disease endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crops/detect-disease", h.detect)
	rg.GET("/crops/detections", h.history)
}

type detectionResponse struct {
	ID                 string        `json:"id"`
	Disease            string        `json:"disease"`
	Confidence         float64       `json:"confidence"`
	Description        string        `json:"description"`
	Treatment          string        `json:"treatment"`
	PreventiveMeasures []string      `json:"preventiveMeasures"`
	Alternatives       []Alternative `json:"alternativeDiagnoses,omitempty"`
}

type historyItem struct {
	ID                 string   `json:"id"`
	Disease            string   `json:"disease"`
	Confidence         float64  `json:"confidence"`
	Description        string   `json:"description"`
	Treatment          string   `json:"treatment"`
	PreventiveMeasures []string `json:"preventiveMeasures"`
	DetectedAt         string   `json:"detectedAt"`
}

func (h *Handler) detect(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No image uploaded", nil)
		return
	}
	defer file.Close()

	det, diag, err := h.svc.Detect(c.Request.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrUnsupportedImage.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Error processing image", nil)
		return
	}

	respond.OK(c, detectionResponse{
		ID:                 det.ID,
		Disease:            det.DiseaseName,
		Confidence:         det.Confidence,
		Description:        det.Description,
		Treatment:          det.Treatment,
		PreventiveMeasures: det.PreventiveMeasures,
		Alternatives:       diag.Alternatives,
	})
}

func (h *Handler) history(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be an integer", nil)
			return
		}
		limit = parsed
	}

	detections, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch detection history", nil)
		return
	}

	items := make([]historyItem, 0, len(detections))
	for _, d := range detections {
		items = append(items, historyItem{
			ID:                 d.ID,
			Disease:            d.DiseaseName,
			Confidence:         d.Confidence,
			Description:        d.Description,
			Treatment:          d.Treatment,
			PreventiveMeasures: d.PreventiveMeasures,
			DetectedAt:         d.CreatedAt.Format(time.RFC3339),
		})
	}
	respond.OK(c, gin.H{"detections": items})
}
