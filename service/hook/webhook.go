package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/go-errors-context"
)

// NewWebhook creates a new instance of the hook service that posts the events to an HTTP endpoint.
// An empty URL disables the notifications.
func NewWebhook(url model.HookURL) Webhook {
	return Webhook{
		url:    string(url),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Webhook implements the hook service on top of a plain HTTP endpoint.
type Webhook struct {
	url    string
	client *http.Client
}

// Notify posts the event to the configured endpoint.
func (s Webhook) Notify(ctx context.Context, e model.HookEvent) error {
	if s.url == "" {
		return nil
	}
	body, err := json.Marshal(e)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.hook.webhook.Notify: marshal"})
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.hook.webhook.Notify: new request"})
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.hook.webhook.Notify: do",
			Params: errors.Params{"event": e.Event},
		})
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("hook.Notify: unexpected status %d", resp.StatusCode)
	}
	return nil
}
