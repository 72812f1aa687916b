package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// OCRTimeout caps how long a single extraction may run. After it the scan
// is treated as failed and can be retried.
const OCRTimeout = 30 * time.Second

// Extraction is the result of one OCR pass over an ID document.
type Extraction struct {
	Confidence float64           `json:"confidence"`
	Fields     map[string]string `json:"fields"`
}

// Extractor extracts structured fields from an ID-document image.
type Extractor interface {
	ExtractFields(ctx context.Context, imageURL string) (*Extraction, error)
}

// ErrOCRTimeout marks an extraction that exceeded OCRTimeout.
var ErrOCRTimeout = errors.New("ocr extraction timed out")

type httpExtractor struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewOCRExtractor builds the extractor from OCR_API_URL / OCR_API_KEY.
func NewOCRExtractor() Extractor {
	return &httpExtractor{
		apiURL: os.Getenv("OCR_API_URL"),
		apiKey: os.Getenv("OCR_API_KEY"),
		client: &http.Client{},
	}
}

func (e *httpExtractor) ExtractFields(ctx context.Context, imageURL string) (*Extraction, error) {
	if e.apiURL == "" {
		return nil, errors.New("OCR_API_URL not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, OCRTimeout)
	defer cancel()

	body, _ := json.Marshal(map[string]string{"imageUrl": imageURL})
	req, err := http.NewRequestWithContext(ctx, "POST", e.apiURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, ErrOCRTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ocr extraction failed: %s", resp.Status)
	}

	var out Extraction
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Fields == nil {
		out.Fields = map[string]string{}
	}
	return &out, nil
}
