package httpx

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

var (
	DefaultTimeout = 20 * time.Second
	// MaxBody caps remote image downloads.
	MaxBody int64 = 64 << 20
)

// Fetch downloads url and returns the body. Non-2xx responses are errors
// carrying a snippet of the body.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.Errorf("GET %s: %s (%d)", url, string(b), resp.StatusCode)
	}
	all, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}
	if int64(len(all)) > MaxBody {
		return nil, errors.Errorf("GET %s: body exceeds %d bytes", url, MaxBody)
	}
	return all, nil
}
