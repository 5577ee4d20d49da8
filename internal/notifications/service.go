package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shade/internal/config"
)

const userAgent = "Shade-Go/0.1.0"

// Service defines the notification surface exposed to lifecycle components.
type Service interface {
	NotifyIngestCompleted(ctx context.Context, title string, derivatives int) error
	NotifyIngestSkipped(ctx context.Context, filename, reason string) error
	NotifyAssetDeleted(ctx context.Context, title string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
		ingest:   cfg.Notifications.Ingest,
		deletion: cfg.Notifications.Deletion,
		errors:   cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	ingest   bool
	deletion bool
	errors   bool
}

func (n *ntfyService) NotifyIngestCompleted(ctx context.Context, title string, derivatives int) error {
	if !n.ingest {
		return nil
	}
	title = strings.TrimSpace(title)
	data := payload{
		title:   "Shade - Ingest Complete",
		message: fmt.Sprintf("Ingested %s with %d grayscale derivatives", title, derivatives),
		tags:    []string{"shade", "ingest", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyIngestSkipped(ctx context.Context, filename, reason string) error {
	if !n.ingest {
		return nil
	}
	filename = strings.TrimSpace(filename)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unknown"
	}
	data := payload{
		title:   "Shade - Ingest Skipped",
		message: fmt.Sprintf("Skipped %s: %s", filename, reason),
		tags:    []string{"shade", "ingest", "skipped"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAssetDeleted(ctx context.Context, title string) error {
	if !n.deletion {
		return nil
	}
	title = strings.TrimSpace(title)
	data := payload{
		title:   "Shade - Asset Deleted",
		message: fmt.Sprintf("Removed %s and its derivatives", title),
		tags:    []string{"shade", "delete", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Shade - Error",
		message:  builder.String(),
		tags:     []string{"shade", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Shade - Test",
		message:  "Notification system test",
		tags:     []string{"shade", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyIngestCompleted(context.Context, string, int) error  { return nil }
func (noopService) NotifyIngestSkipped(context.Context, string, string) error { return nil }
func (noopService) NotifyAssetDeleted(context.Context, string) error          { return nil }
func (noopService) NotifyError(context.Context, error, string) error          { return nil }
func (noopService) TestNotification(context.Context) error                    { return nil }
