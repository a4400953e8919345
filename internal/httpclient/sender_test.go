package httpclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/torosent/apiprobe/internal/config"
	"github.com/torosent/apiprobe/internal/httpclient"
	"github.com/torosent/apiprobe/internal/probe"
)

func testConfig(target string) *config.Config {
	return &config.Config{
		TargetURL: target,
		Prompt:    "ping",
		Requests:  1,
		Rate:      1,
		Timeout:   5 * time.Second,
	}
}

func newSender(t *testing.T, cfg *config.Config, timeout time.Duration, insecure bool) *httpclient.Sender {
	t.Helper()
	client := httpclient.NewClient(timeout, insecure)
	sender, err := httpclient.NewSender(cfg, client, nil)
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	return sender
}

func TestSenderSendsChatPayload(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[],"usage":{"total_tokens":42}}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Token = "secret-token"
	cfg.Extract = "usage.total_tokens"
	sender := newSender(t, cfg, 5*time.Second, false)

	out := sender.Send(context.Background())

	if out.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", out.Status, out.Detail)
	}
	if out.Latency <= 0 {
		t.Fatalf("expected a positive latency")
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("authorization header wrong: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type wrong: %q", gotContentType)
	}

	var decoded struct {
		Messages []map[string]string `json:"messages"`
		Stream   bool                `json:"stream"`
	}
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if len(decoded.Messages) != 1 || decoded.Messages[0]["content"] != "ping" {
		t.Fatalf("unexpected request body: %s", gotBody)
	}
	if decoded.Stream {
		t.Fatalf("stream must be disabled")
	}

	if out.Extract != "42" {
		t.Fatalf("expected extracted token count, got %q", out.Extract)
	}
}

// TestSenderErrorStatusIsStillAMeasurement ensures 4xx/5xx responses carry
// their real status and a valid latency, not the failure sentinel.
func TestSenderErrorStatusIsStillAMeasurement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	sender := newSender(t, testConfig(server.URL), 5*time.Second, false)
	out := sender.Send(context.Background())

	if out.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", out.Status)
	}
	if out.Failed() {
		t.Fatalf("an HTTP error response is not a probe failure")
	}
	if out.Latency <= 0 {
		t.Fatalf("expected a measured latency for the error response")
	}
}

func TestSenderTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	sender := newSender(t, testConfig(server.URL), 50*time.Millisecond, false)
	out := sender.Send(context.Background())

	if !out.Failed() {
		t.Fatalf("expected failure sentinel, got status %d", out.Status)
	}
	if out.Reason != probe.ReasonTimeout {
		t.Fatalf("expected timeout reason, got %s (%s)", out.Reason, out.Detail)
	}
}

func TestSenderConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	sender := newSender(t, testConfig(target), time.Second, false)
	out := sender.Send(context.Background())

	if !out.Failed() {
		t.Fatalf("expected failure sentinel, got status %d", out.Status)
	}
	if out.Reason != probe.ReasonConnection {
		t.Fatalf("expected connection reason, got %s (%s)", out.Reason, out.Detail)
	}
}

// TestSenderTLSVerification ensures an untrusted certificate is classified
// as a TLS failure by default, and succeeds once insecure mode is opted in.
func TestSenderTLSVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	strict := newSender(t, testConfig(server.URL), 5*time.Second, false)
	out := strict.Send(context.Background())
	if !out.Failed() || out.Reason != probe.ReasonTLS {
		t.Fatalf("expected TLS failure, got status %d reason %s", out.Status, out.Reason)
	}

	relaxed := newSender(t, testConfig(server.URL), 5*time.Second, true)
	out = relaxed.Send(context.Background())
	if out.Status != http.StatusOK {
		t.Fatalf("insecure client should reach the server, got %d (%s)", out.Status, out.Detail)
	}
}

func TestNewSenderValidation(t *testing.T) {
	client := httpclient.NewClient(time.Second, false)

	if _, err := httpclient.NewSender(nil, client, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}

	cfg := testConfig("")
	if _, err := httpclient.NewSender(cfg, client, nil); err == nil {
		t.Fatalf("expected error for empty target")
	}

	cfg = testConfig("http://localhost:8000")
	cfg.Prompt = " "
	if _, err := httpclient.NewSender(cfg, client, nil); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}
