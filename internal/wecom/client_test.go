package wecom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockpulse/pkg/logx"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Config{WebhookURL: url}, nil, logx.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresURL(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{}, nil, logx.Nop()); !errors.Is(err, ErrNoWebhook) {
		t.Fatalf("err = %v, want ErrNoWebhook", err)
	}
}

func TestSendDelivered(t *testing.T) {
	t.Parallel()
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"errcode":0,"errmsg":"ok"}`))
	}))
	defer srv.Close()

	out := newTestClient(t, srv.URL).Send(context.Background(), "**hello**")
	if !out.Delivered() {
		t.Fatalf("outcome = %v, want delivered", out)
	}
	if gotBody["msgtype"] != "markdown" {
		t.Fatalf("msgtype = %v, want markdown", gotBody["msgtype"])
	}
	md, _ := gotBody["markdown"].(map[string]any)
	if md["content"] != "**hello**" {
		t.Fatalf("content = %v", md["content"])
	}
}

func TestSendRemoteRejected(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errcode":45009,"errmsg":"api freq out of limit"}`))
	}))
	defer srv.Close()

	out := newTestClient(t, srv.URL).Send(context.Background(), "x")
	if out.Status != StatusRemoteRejected {
		t.Fatalf("status = %v, want remote_rejected", out.Status)
	}
	if out.Code != 45009 || out.Detail != "api freq out of limit" {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestSendNon2xx(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	out := newTestClient(t, srv.URL).Send(context.Background(), "x")
	if out.Status != StatusTransportFailed {
		t.Fatalf("status = %v, want transport_failed", out.Status)
	}
}

func TestSendConnectionError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	out := newTestClient(t, srv.URL).Send(context.Background(), "x")
	if out.Status != StatusTransportFailed {
		t.Fatalf("status = %v, want transport_failed", out.Status)
	}
	if out.Detail == "" {
		t.Fatal("transport failure missing cause detail")
	}
}

func TestSendTimeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() { close(release); srv.Close() }()

	c, err := New(Config{WebhookURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, logx.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	start := time.Now()
	out := c.Send(context.Background(), "x")
	if out.Status != StatusTransportFailed {
		t.Fatalf("status = %v, want transport_failed", out.Status)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout not enforced")
	}
}

func TestSendMalformedResponse(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	out := newTestClient(t, srv.URL).Send(context.Background(), "x")
	if out.Status != StatusTransportFailed {
		t.Fatalf("status = %v, want transport_failed", out.Status)
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		out  Outcome
		want string
	}{
		{Outcome{Status: StatusDelivered}, "delivered"},
		{Outcome{Status: StatusRemoteRejected, Code: 40008, Detail: "invalid type"}, "remote_rejected: errcode=40008 invalid type"},
		{Outcome{Status: StatusTransportFailed, Detail: "timeout"}, "transport_failed: timeout"},
	}
	for _, tt := range tests {
		if got := tt.out.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
