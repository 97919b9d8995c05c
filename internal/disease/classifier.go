package disease

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Classifier produces a diagnosis for a crop photo on local disk.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) (Diagnosis, error)
}

// HTTPClassifier calls an external model server that scores plant disease
// labels for an uploaded image.
type HTTPClassifier struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClassifier constructs a classifier against the given model server URL.
func NewHTTPClassifier(baseURL string) (*HTTPClassifier, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("DISEASE_MODEL_URL is required")
	}
	return &HTTPClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type predictResponse struct {
	Predictions []struct {
		Label       string  `json:"label"`
		Probability float64 `json:"probability"`
	} `json:"predictions"`
	Error string `json:"error,omitempty"`
}

// Classify uploads the image to the model server and maps its top-scored
// labels to guidance. The runner-up labels become alternative diagnoses.
func (c *HTTPClassifier) Classify(ctx context.Context, imagePath string) (Diagnosis, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return Diagnosis{}, fmt.Errorf("open crop image: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return Diagnosis{}, fmt.Errorf("build model request: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return Diagnosis{}, fmt.Errorf("build model request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Diagnosis{}, fmt.Errorf("build model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return Diagnosis{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Diagnosis{}, fmt.Errorf("model server request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Diagnosis{}, fmt.Errorf("read model response: %w", err)
	}

	var out predictResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Diagnosis{}, fmt.Errorf("decode model response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return Diagnosis{}, fmt.Errorf("model server returned status %d: %s", resp.StatusCode, msg)
	}
	if len(out.Predictions) == 0 {
		return Diagnosis{}, fmt.Errorf("model server returned no predictions")
	}

	preds := out.Predictions
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Probability > preds[j].Probability
	})

	diag := detailsFor(preds[0].Label)
	diag.Confidence = math.Round(preds[0].Probability * 100)

	limit := len(preds)
	if limit > 3 {
		limit = 3
	}
	for _, p := range preds[1:limit] {
		diag.Alternatives = append(diag.Alternatives, Alternative{
			Disease:     FormatLabel(p.Label),
			Probability: math.Round(p.Probability * 100),
		})
	}
	return diag, nil
}

var _ Classifier = (*HTTPClassifier)(nil)
