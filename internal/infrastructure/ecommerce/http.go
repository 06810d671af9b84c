package ecommerce

import (
	"fmt"
	"io"
	"net/http"

	"github.com/marketops/backoffice/internal/domain/inventory"
)

// maxResponseSize is the maximum allowed response size from an upstream API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// doRequest executes req and returns the body of a successful response.
// Transport failures map to ErrSourceUnavailable, 401/403 to
// ErrSourceAuthFailed and any other status >= 400 to ErrSourceRequestFailed.
func doRequest(client *http.Client, req *http.Request) (*http.Response, []byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", inventory.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read response: %v", inventory.ErrSourceUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, fmt.Errorf("%w: HTTP %d", inventory.ErrSourceAuthFailed, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, nil, fmt.Errorf("%w: HTTP %d", inventory.ErrSourceUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, nil, fmt.Errorf("%w: HTTP %d", inventory.ErrSourceRequestFailed, resp.StatusCode)
	}

	return resp, body, nil
}
