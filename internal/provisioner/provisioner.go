// Package provisioner pushes generated dashboard documents to the Grafana
// HTTP API. Resolving the audit-link placeholder inside the documents is a
// deployment concern and happens elsewhere; the documents are uploaded as-is.
package provisioner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	contentType   = "Content-Type"
	authorization = "Authorization"

	requestTimeout = 30 * time.Second
)

type Grafana struct {
	baseURL    string
	apiKey     string
	logger     *zap.Logger
	httpClient *http.Client
	// Grafana rate limits its provisioning API; bulk uploads are throttled
	// instead of retried.
	limiter *rate.Limiter
}

func NewClient(log *zap.Logger, url, apiKey string) *Grafana {
	return &Grafana{
		logger:  log,
		baseURL: url,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
}

// UploadDashboard creates or overwrites one dashboard from its serialized
// JSON form.
func (g *Grafana) UploadDashboard(ctx context.Context, dashboardJSON string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	url := fmt.Sprintf("%s/api/dashboards/db", g.baseURL)

	payload, err := json.Marshal(map[string]any{
		"dashboard": json.RawMessage(dashboardJSON),
		"overwrite": true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal upload payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(contentType, "application/json")
	req.Header.Set(authorization, "Bearer "+g.apiKey)

	g.logger.Debug("Uploading dashboard to Grafana", zap.String("url", url))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("HTTP request failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			g.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Error("Failed to read response body", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Error("API request failed", zap.String("url", url), zap.Int("status", resp.StatusCode), zap.String("response", string(body)))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	g.logger.Debug("Successfully uploaded dashboard", zap.Int("status", resp.StatusCode))
	return nil
}
