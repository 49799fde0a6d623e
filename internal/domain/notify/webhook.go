package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const metadataSource = "dragondrop"

// Version is stamped into outbound change payloads.
const Version = "2.0"

type webhookGateway struct {
	url    string
	client *http.Client
}

// NewWebhookGateway returns a chat-webhook Gateway. An empty URL yields the
// noop gateway.
func NewWebhookGateway(url string) Gateway {
	if url == "" {
		return noopGateway{}
	}
	return &webhookGateway{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

func (g *webhookGateway) Send(ctx context.Context, msg Message) Result {
	return postJSON(ctx, g.client, g.url, msg)
}

type webhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink returns a workflow-automation ChangeSink. An empty URL
// yields the noop sink.
func NewWebhookSink(url string) ChangeSink {
	if url == "" {
		return noopSink{}
	}
	return &webhookSink{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

func (s *webhookSink) Publish(ctx context.Context, change OrgChange) Result {
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now().UTC()
	}
	change.Metadata = Metadata{Source: metadataSource, Version: Version}
	return postJSON(ctx, s.client, s.url, change)
}

func postJSON(ctx context.Context, client *http.Client, url string, payload any) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("encode payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("webhook delivery failed: %v", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Success: false, Error: fmt.Sprintf("webhook returned status %d", resp.StatusCode)}
	}
	return Result{Success: true}
}
