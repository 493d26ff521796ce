package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPEncoder talks to the face-model sidecar over its JSON API. The
// sidecar owns the heavy model; this process only ships pixels in and
// embeddings out.
type HTTPEncoder struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPEncoder(baseURL string, logger ...*zap.Logger) *HTTPEncoder {
	l := zap.L().Named("recognition.encoder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recognition.encoder")
	}
	return &HTTPEncoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  l,
	}
}

type encodeRequest struct {
	Image []byte `json:"image"`
}

type encodeResponse struct {
	Encoding []byte `json:"encoding"`
	Faces    int    `json:"faces"`
}

func (e *HTTPEncoder) Encode(ctx context.Context, image []byte) ([]byte, error) {
	body, err := json.Marshal(encodeRequest{Image: image})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/encode", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnprocessableEntity:
		return nil, ErrNoFace
	default:
		return nil, fmt.Errorf("encode request: unexpected status %d", resp.StatusCode)
	}

	var out encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Faces == 0 || len(out.Encoding) == 0 {
		return nil, ErrNoFace
	}
	if out.Faces > 1 {
		e.logger.Warn("multiple faces in registration photo, using first", zap.Int("faces", out.Faces))
	}
	return out.Encoding, nil
}
