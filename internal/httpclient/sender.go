package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/torosent/apiprobe/internal/config"
	"github.com/torosent/apiprobe/internal/extractor"
	"github.com/torosent/apiprobe/internal/probe"
	"github.com/torosent/apiprobe/internal/tracing"
)

// Sender issues one probe request per call and classifies the outcome.
// It performs no retries: each scheduled attempt is exactly one network call.
type Sender struct {
	client  *http.Client
	target  string
	token   string
	body    []byte
	extract string
	tracing *tracing.Provider
}

// NewSender builds a Sender from configuration. The request payload is
// constructed once; every attempt sends the same body.
func NewSender(cfg *config.Config, client *http.Client, tp *tracing.Provider) (*Sender, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}

	target := strings.TrimSpace(cfg.TargetURL)
	if target == "" {
		return nil, errors.New("target URL is required")
	}

	body, err := BuildRequestBody(cfg.Prompt)
	if err != nil {
		return nil, err
	}

	return &Sender{
		client:  client,
		target:  target,
		token:   strings.TrimSpace(cfg.Token),
		body:    body,
		extract: strings.TrimSpace(cfg.Extract),
		tracing: tp,
	}, nil
}

// Send issues one request and measures wall-clock time from just before the
// send until the full response body has been read. A response with any HTTP
// status is a completed attempt with a valid latency; only attempts that
// produced no response at all are classified as failures.
func (s *Sender) Send(ctx context.Context) probe.Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := tracing.StartRequestSpan(ctx, s.tracing.Tracer(), s.target)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.target, bytes.NewReader(s.body))
	if err != nil {
		tracing.EndSpan(span, err)
		return probe.Outcome{Status: probe.StatusFailed, Reason: probe.ReasonRequest, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if s.tracing.ShouldPropagate() {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		outcome := Classify(err, time.Since(start))
		tracing.EndSpan(span, err)
		return outcome
	}

	data, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	latency := time.Since(start)

	if readErr != nil {
		outcome := Classify(readErr, latency)
		tracing.EndSpan(span, readErr)
		return outcome
	}

	outcome := probe.Outcome{Status: resp.StatusCode, Latency: latency}
	if s.extract != "" {
		if value, ok := extractor.Extract(data, s.extract); ok {
			outcome.Extract = value
		}
	}

	tracing.EndSpan(span, nil,
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.Float64("apiprobe.latency_ms", float64(latency)/float64(time.Millisecond)),
	)
	return outcome
}
