package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// PacingModel names must stay in sync with the probe package's models.
const (
	PacingSchedule = "schedule"
	PacingSmooth   = "smooth"
)

type Config struct {
	TargetURL  string        `mapstructure:"target"`
	Prompt     string        `mapstructure:"prompt"`
	Token      string        `mapstructure:"token"`
	Requests   int           `mapstructure:"requests"`
	Rate       float64       `mapstructure:"rate"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Insecure   bool          `mapstructure:"insecure"`
	CSVPath    string        `mapstructure:"csv_out"`
	JSONOutput bool          `mapstructure:"json_output"`
	Pacing     string        `mapstructure:"pacing"`
	Extract    string        `mapstructure:"extract"`
	Tracing    TracingConfig `mapstructure:"tracing"`
	ConfigFile string        `mapstructure:"-"`
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"` // "http" or "grpc"
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Propagate   bool    `mapstructure:"propagate"`
}

// Enabled reports whether an OTLP endpoint is configured.
func (t TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

// ShouldPropagate reports whether W3C trace headers are injected into probe requests.
func (t TracingConfig) ShouldPropagate() bool {
	return t.Propagate
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	target := strings.TrimSpace(c.TargetURL)
	if target == "" {
		issues = append(issues, "target is required (use --help for usage information)")
	} else if u, err := url.Parse(target); err != nil || u.Scheme == "" || u.Host == "" {
		issues = append(issues, fmt.Sprintf("target %q is not an absolute URL", target))
	}

	if strings.TrimSpace(c.Prompt) == "" {
		issues = append(issues, "prompt is required")
	}
	if c.Requests < 1 {
		issues = append(issues, "requests must be >= 1")
	}
	if c.Rate <= 0 {
		issues = append(issues, "rate must be > 0")
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}
	if strings.TrimSpace(c.CSVPath) == "" {
		issues = append(issues, "csv-out must not be empty")
	}

	switch c.Pacing {
	case "", PacingSchedule, PacingSmooth:
	default:
		issues = append(issues, fmt.Sprintf("pacing model %q is not supported", c.Pacing))
	}

	if c.Tracing.Enabled() {
		switch strings.ToLower(strings.TrimSpace(c.Tracing.Protocol)) {
		case "", "http", "grpc":
		default:
			issues = append(issues, fmt.Sprintf("tracing protocol %q is not supported", c.Tracing.Protocol))
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
			issues = append(issues, "tracing sample_rate must be between 0.0 and 1.0")
		}
	}

	// Security warnings are non-fatal and printed to stderr.
	if c.Insecure {
		fmt.Fprintln(os.Stderr, "WARNING: TLS certificate verification is DISABLED (--insecure). This is only suitable for local development targets.")
	}
	if c.Rate > 100 {
		fmt.Fprintf(os.Stderr, "WARNING: High probe rate configured (%.0f RPS). Ensure you have authorization to test the target system.\n", c.Rate)
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}
