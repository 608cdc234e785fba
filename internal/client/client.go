// Package client fetches detail records from sibling services over
// HTTP. Cross-service references are stored locally as raw ids; these
// clients resolve them at read time.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRemoteLookup is returned for every failure mode of a detail
// lookup: connection error, timeout, non-2xx status, or a body that
// does not decode. Callers degrade the same way regardless of cause,
// so the cause is only carried for logging.
var ErrRemoteLookup = errors.New("remote lookup failed")

// DefaultTimeout bounds a single lookup attempt. Retries are handled a
// layer up; this is per attempt, not per logical call.
const DefaultTimeout = 2 * time.Second

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(baseURL string, timeout time.Duration) httpClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// getByID fetches {baseURL}/{id} and decodes the JSON body into out.
func (c httpClient) getByID(ctx context.Context, id int, out any) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid id %d", ErrRemoteLookup, id)
	}

	url := fmt.Sprintf("%s/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteLookup, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d from %s", ErrRemoteLookup, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding body from %s: %v", ErrRemoteLookup, url, err)
	}

	return nil
}
