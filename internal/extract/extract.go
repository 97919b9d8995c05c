package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrDecode reports that an uploaded image could not be decoded.
	ErrDecode = errors.New("image decode failed")
	// ErrExtract reports that no text could be extracted from the document.
	ErrExtract = errors.New("text extraction failed")
)

// Recognizer runs OCR over a single image file. Implementations must not
// share engine state across calls; each Recognize owns its own session.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Extractor produces plain text from an uploaded soil test document.
type Extractor struct {
	OCR Recognizer
}

// New builds an extractor backed by a per-call tesseract session.
func New(lang string) *Extractor {
	return &Extractor{OCR: &tesseractRecognizer{lang: lang}}
}

// Text extracts the document's text. Dispatch is closed over two kinds:
// a .pdf path reads the embedded text layer directly, anything else is
// treated as a raster image and run through preprocessing plus OCR.
func (e *Extractor) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return e.fromPDF(path)
	}
	return e.fromImage(ctx, path)
}

// fromPDF reads the PDF's embedded text streams. Scanned PDFs carrying no
// text layer are an explicit unsupported case and fail here rather than
// being silently passed on as empty text.
func (e *Extractor) fromPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %v", ErrExtract, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse pdf: %v", ErrExtract, err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrExtract, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrExtract, err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: pdf has no extractable text layer", ErrExtract)
	}
	return text, nil
}

// fromImage preprocesses the photo and OCRs the processed artifact. The
// processed sibling is removed on every path once recognition has consumed it.
func (e *Extractor) fromImage(ctx context.Context, path string) (string, error) {
	processedPath, err := preprocessImage(path)
	if err != nil {
		return "", err
	}
	defer os.Remove(processedPath)

	text, err := e.OCR.Recognize(ctx, processedPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtract, err)
	}
	return normalize(text), nil
}
