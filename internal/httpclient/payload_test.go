package httpclient_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/torosent/apiprobe/internal/httpclient"
)

func TestBuildRequestBodyShape(t *testing.T) {
	body, err := httpclient.BuildRequestBody("Hello, world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Stream *bool `json:"stream"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}

	if len(decoded.Messages) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(decoded.Messages))
	}
	if decoded.Messages[0].Role != "user" {
		t.Fatalf("expected user role, got %q", decoded.Messages[0].Role)
	}
	if decoded.Messages[0].Content != "Hello, world" {
		t.Fatalf("prompt not carried: %q", decoded.Messages[0].Content)
	}
	// stream must be serialized explicitly as false, not omitted
	if decoded.Stream == nil || *decoded.Stream {
		t.Fatalf("stream must be present and false: %s", body)
	}
}

func TestBuildRequestBodyRejectsEmptyPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\t\n"} {
		if _, err := httpclient.BuildRequestBody(prompt); err == nil {
			t.Fatalf("expected error for prompt %q", prompt)
		}
	}
}

func TestBuildRequestBodyEscapesPrompt(t *testing.T) {
	body, err := httpclient.BuildRequestBody(`a "quoted" prompt with \ backslash`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !json.Valid(body) {
		t.Fatalf("body is not valid JSON: %s", body)
	}
	if strings.Contains(string(body), "\n") {
		t.Fatalf("body should be a single JSON document: %s", body)
	}
}
