// Package httpclient provides request construction, execution, and failure
// classification for the apiprobe tool.
//
// The [Sender] issues exactly one HTTP POST per call with the typed
// chat-completions payload built by [BuildRequestBody], measures end-to-end
// latency until the full response body is read, and classifies transport
// failures into the probe package's reason taxonomy via [Classify]:
// connection errors, TLS errors (with a plain-HTTP hint for local targets),
// timeouts, and everything else. A response with any HTTP status, including
// 4xx/5xx, is a completed attempt, not a failure.
//
// [NewClient] builds the underlying http.Client with a bounded timeout and
// optional, explicitly opted-in, insecure TLS for development targets.
package httpclient
