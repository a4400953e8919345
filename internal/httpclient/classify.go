package httpclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"time"

	"github.com/torosent/apiprobe/internal/probe"
)

// tlsHint is appended to TLS failure details; local development servers
// usually speak plain HTTP.
const tlsHint = "for localhost targets, use http:// instead of https://"

// Classify maps a transport-level error to a sentinel outcome. The measured
// elapsed time is carried on the outcome for the record stream, but it is
// not a true request latency and is excluded from aggregates downstream.
func Classify(err error, elapsed time.Duration) probe.Outcome {
	reason, detail := classifyError(err)
	return probe.Outcome{
		Status:  probe.StatusFailed,
		Latency: elapsed,
		Reason:  reason,
		Detail:  detail,
	}
}

func classifyError(err error) (probe.FailureReason, string) {
	if err == nil {
		return probe.ReasonRequest, "unknown request error"
	}

	// TLS before timeout: a failed handshake can also carry the timeout bit.
	if isTLSError(err) {
		return probe.ReasonTLS, "TLS error: " + err.Error() + " (" + tlsHint + ")"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return probe.ReasonTimeout, "timeout: " + err.Error()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return probe.ReasonTimeout, "timeout: " + err.Error()
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return probe.ReasonConnection, "connection error: " + err.Error()
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return probe.ReasonConnection, "connection error: " + err.Error()
	}

	return probe.ReasonRequest, err.Error()
}

func isTLSError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var invalidErr x509.CertificateInvalidError
	if errors.As(err, &invalidErr) {
		return true
	}
	return false
}
