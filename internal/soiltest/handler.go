package soiltest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"krishi-backend/internal/extract"
	"krishi-backend/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

// Handler exposes the soil test endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/soil-tests", h.upload)
	rg.GET("/soil-tests/:userId", h.latest)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file uploaded", nil)
		return
	}
	defer file.Close()

	userID := strings.TrimSpace(c.PostForm("userId"))
	if userID == "" {
		userID = "anonymous"
	}
	c.Set("userId", userID)

	rec, err := h.svc.Ingest(c.Request.Context(), userID, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrUnsupportedType.Error(), nil)
		case errors.Is(err, extract.ErrDecode):
			respond.Error(c, http.StatusInternalServerError, "extraction_error", "Failed to read the uploaded image", nil)
		case errors.Is(err, extract.ErrExtract):
			respond.Error(c, http.StatusInternalServerError, "extraction_error", "Failed to extract text from the document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process soil test file", nil)
		}
		return
	}
	c.Set("soilTestId", rec.ID)

	respond.OK(c, UploadResponse{
		Message:  "Soil test data extracted and saved successfully",
		SoilData: toSoilData(rec),
		ID:       rec.ID,
	})
}

func (h *Handler) latest(c *gin.Context) {
	userID := c.Param("userId")
	c.Set("userId", userID)

	rec, err := h.svc.Latest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", ErrNotFound.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch soil test data", nil)
		return
	}

	respond.OK(c, toSoilData(rec))
}
