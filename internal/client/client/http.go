package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/tpforum/internal/client/models"
	"github.com/dmitrijs2005/tpforum/internal/netx"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPClient calls the auth endpoint over HTTPS.
type HTTPClient struct {
	endpoint *url.URL
	hc       *http.Client
}

// NewHTTPClient validates endpointURL (see netx.ValidateEndpoint) and returns
// a client whose requests time out after timeout.
func NewHTTPClient(endpointURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := netx.ValidateEndpoint(endpointURL)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{endpoint: u, hc: &http.Client{Timeout: timeout}}, nil
}

// Authenticate POSTs req as JSON. A 2xx response must decode into a valid
// models.AuthResponse; anything else becomes *ServerError. Network and
// decoding failures of the error body are reported as ErrUnavailable.
func (c *HTTPClient) Authenticate(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er models.ErrorResponse
		if err := json.Unmarshal(raw, &er); err != nil {
			return nil, fmt.Errorf("%w: status %d with undecodable body", ErrUnavailable, resp.StatusCode)
		}
		return nil, &ServerError{Status: resp.StatusCode, Message: er.Error}
	}

	var ar models.AuthResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return nil, errors.Join(models.ErrMalformedResponse, err)
	}
	if err := ar.Validate(); err != nil {
		return nil, err
	}
	return &ar, nil
}
