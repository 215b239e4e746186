// Package external implements the client for the cadastral data provider.
// A provider "not found" is a normal, loggable outcome; an unreachable
// provider or unexpected status aborts the pipeline instead.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cadastr/internal/common"
)

// Status classifies a completed provider call.
type Status string

const (
	StatusFound    Status = "Success"
	StatusNotFound Status = "NotFound"
)

// Result is the classified outcome of one provider call. Payload holds the
// provider response serialized to JSON, ready to be stored as-is.
type Result struct {
	Status  Status
	Payload string
}

// Client performs a single outbound lookup against the provider.
type Client interface {
	Lookup(ctx context.Context, cadastralNumber string, latitude, longitude float64) (*Result, error)
}

type lookupRequest struct {
	CadastralNumber string  `json:"cadastral_number"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type notFoundResponse struct {
	CadastralNumber string `json:"cadastral_number"`
	Status          Status `json:"status"`
	Message         string `json:"message"`
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a provider client with a bounded per-call timeout,
// so a stalled provider surfaces as unavailable instead of hanging the
// request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Lookup posts the query to the provider and classifies the outcome:
// 200 is Found, 404 is NotFound (with a synthesized loggable payload),
// anything else wraps common.ErrExternalUnavailable. Exactly one attempt.
func (c *HTTPClient) Lookup(ctx context.Context, cadastralNumber string, latitude, longitude float64) (*Result, error) {

	body, err := json.Marshal(lookupRequest{
		CadastralNumber: cadastralNumber,
		Latitude:        latitude,
		Longitude:       longitude,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", common.ErrExternalUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mock_query/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", common.ErrExternalUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: reading response: %v", common.ErrExternalUnavailable, err)
		}

		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return nil, fmt.Errorf("%w: malformed response body: %v", common.ErrExternalUnavailable, err)
		}

		return &Result{Status: StatusFound, Payload: compact.String()}, nil

	case http.StatusNotFound:
		payload, err := json.Marshal(notFoundResponse{
			CadastralNumber: cadastralNumber,
			Status:          StatusNotFound,
			Message:         "External API could not find data",
		})
		if err != nil {
			return nil, fmt.Errorf("%w: encoding not-found payload: %v", common.ErrExternalUnavailable, err)
		}

		return &Result{Status: StatusNotFound, Payload: string(payload)}, nil

	default:
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrExternalUnavailable, resp.StatusCode)
	}
}
