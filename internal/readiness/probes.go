package readiness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/store"
	"github.com/go-resty/resty/v2"
)

// DatabasePing returns a probe that issues a no-op round trip against the
// data store through the already-opened bootstrap connection.
func DatabasePing(db *store.DB) Probe {
	return func(ctx context.Context) error {
		return db.Ping(ctx)
	}
}

// NewHealthClient builds the HTTP client used to probe the supervised
// server's health surface.
func NewHealthClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)
}

// ServerHealth returns a probe that performs a GET against the server's
// health endpoint. Any transport error or non-2xx status counts as a failed
// attempt.
func ServerHealth(client *resty.Client, path string) Probe {
	return func(ctx context.Context) error {
		resp, err := client.R().
			SetContext(ctx).
			Get(path)
		if err != nil {
			return fmt.Errorf("health request: %w", err)
		}
		if !resp.IsSuccess() {
			return fmt.Errorf("health endpoint answered %s", resp.Status())
		}

		return nil
	}
}
