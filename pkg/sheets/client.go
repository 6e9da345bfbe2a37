// Package sheets forwards RSVP rows to a spreadsheet-backed webhook
// (typically a Google Apps Script web app bound to a sheet).
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apexadvisory/rsvp-api/pkg/httpclient"
	"github.com/apexadvisory/rsvp-api/pkg/logger"
	"github.com/apexadvisory/rsvp-api/pkg/metrics"
	"go.uber.org/zap"
)

// ErrWebhookNotConfigured is returned when no webhook URL was provided
var ErrWebhookNotConfigured = errors.New("storage webhook URL not configured")

// StatusError is returned when the webhook answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storage webhook returned status %d", e.StatusCode)
}

// Client posts rows to the storage webhook
type Client struct {
	webhookURL string
	httpClient httpclient.Client
}

// NewClient creates a storage webhook client
func NewClient(webhookURL string, httpClient httpclient.Client) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// AppendSubmission sends row as a JSON body. Any 2xx status counts as success.
func (c *Client) AppendSubmission(ctx context.Context, row any) error {
	if c.webhookURL == "" {
		metrics.StorageWebhookTotal.WithLabelValues("skipped").Inc()
		return ErrWebhookNotConfigured
	}

	start := time.Now()
	status := "error"
	defer func() {
		duration := metrics.MeasureDuration(start)
		metrics.StorageWebhookDuration.WithLabelValues(status).Observe(duration)
		metrics.StorageWebhookTotal.WithLabelValues(status).Inc()
		logger.LogAPICall(ctx, "storage_webhook", "append_submission", status, duration)
	}()

	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode storage webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create storage webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call storage webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Only the first 512 bytes of the body are kept
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		logger.Debug("Storage webhook rejected row",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(excerpt)))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(excerpt)}
	}

	status = "success"
	return nil
}
