package wecom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stockpulse/pkg/logx"
)

// ErrNoWebhook is returned by New when no webhook URL is configured.
var ErrNoWebhook = errors.New("wecom: webhook url is required")

const defaultTimeout = 10 * time.Second

// maxResponseBytes bounds how much of an error response body is read into
// the outcome detail.
const maxResponseBytes = 4 << 10

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config carries the client's explicit configuration. There is no ambient
// global state; construct a Client per endpoint.
type Config struct {
	// WebhookURL is the full group-robot webhook URL including its key.
	WebhookURL string
	// Timeout bounds a single delivery call. Defaults to 10s.
	Timeout time.Duration
}

// Client sends markdown messages to one webhook endpoint.
type Client struct {
	url     string
	timeout time.Duration
	http    HTTPClient
	log     logx.Logger
}

// New validates cfg and builds a Client. A nil httpc falls back to a plain
// *http.Client; pass a fake in tests.
func New(cfg Config, httpc HTTPClient, log logx.Logger) (*Client, error) {
	url := strings.TrimSpace(cfg.WebhookURL)
	if url == "" {
		return nil, ErrNoWebhook
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{url: url, timeout: timeout, http: httpc, log: log}, nil
}

type markdownBody struct {
	Content string `json:"content"`
}

type markdownPayload struct {
	MsgType  string       `json:"msgtype"`
	Markdown markdownBody `json:"markdown"`
}

type webhookResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Send delivers one markdown message and classifies the result. It makes
// exactly one attempt; transport errors are folded into the Outcome and
// never propagate, so a failed segment cannot abort its siblings.
func (c *Client) Send(ctx context.Context, text string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := markdownPayload{MsgType: "markdown", Markdown: markdownBody{Content: text}}
	body, err := json.Marshal(payload)
	if err != nil {
		return transportFailed(fmt.Sprintf("marshal payload: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return transportFailed(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("webhook call failed", logx.Err(err), logx.Int("bytes", len(text)))
		return transportFailed(err.Error())
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode/100 != 2 {
		c.log.Warn("webhook returned non-2xx",
			logx.Int("status", resp.StatusCode),
			logx.String("body", strings.TrimSpace(string(respBody))))
		return transportFailed(fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var wr webhookResponse
	if err := json.Unmarshal(respBody, &wr); err != nil {
		return transportFailed(fmt.Sprintf("decode response: %v", err))
	}
	if wr.ErrCode != 0 {
		c.log.Warn("webhook rejected message", logx.Int("errcode", wr.ErrCode), logx.String("errmsg", wr.ErrMsg))
		return remoteRejected(wr.ErrCode, wr.ErrMsg)
	}

	c.log.Debug("webhook message delivered", logx.Int("bytes", len(text)))
	return delivered()
}
