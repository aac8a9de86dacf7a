package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

const (
	httpTimeout = 60 * time.Second
	maxBodySize = 16 << 20
	maxEdge     = 1200
)

// Client calls the external image worker and normalizes its output into
// platform-ready PNG bytes.
type Client struct {
	workerURL  string
	apiKey     string
	httpClient *http.Client
}

func NewClient(workerURL, apiKey string) *Client {
	return &Client{
		workerURL:  workerURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: httpTimeout},
	}
}

// Enabled reports whether an image worker is configured.
func (c *Client) Enabled() bool {
	return c.workerURL != ""
}

func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if c.workerURL == "" {
		return nil, pkgError.GenerationError("image worker is not configured")
	}

	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, pkgError.GenerationError(fmt.Sprintf("encode image request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.workerURL, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgError.GenerationError(fmt.Sprintf("build image request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgError.GenerationError(fmt.Sprintf("image worker request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgError.GenerationError(fmt.Sprintf("image worker returned status %d", resp.StatusCode))
	}

	var parsed struct {
		Image string `json:"image"` // base64
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&parsed); err != nil {
		return nil, pkgError.GenerationError(fmt.Sprintf("decode image response: %v", err))
	}
	if parsed.Image == "" {
		return nil, pkgError.GenerationError("image worker returned no image")
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Image)
	if err != nil {
		return nil, pkgError.GenerationError(fmt.Sprintf("decode image payload: %v", err))
	}

	normalized, err := normalize(raw)
	if err != nil {
		// Ship the original bytes if re-encoding fails.
		logrus.WithError(err).Warn("[IMAGEGEN] Could not normalize image, using raw bytes")
		return raw, nil
	}
	return normalized, nil
}

// normalize bounds the image to maxEdge on its longest side and re-encodes
// it as PNG.
func normalize(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
