package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBody caps a fetched document so a bad source cannot exhaust memory.
const maxBody = 32 << 20

// GetBytes fetches url with a per-request timeout and returns the body.
// Non-2xx responses are errors.
func GetBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}
