package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/torosent/apiprobe/internal/metrics"
)

// PrintReport outputs a human-readable summary report.
func PrintReport(w io.Writer, s metrics.Summary) {
	fmt.Fprintln(w, "\n--- Probe Results ---")
	if s.RunID != "" {
		fmt.Fprintf(w, "Run ID:            %s\n", s.RunID)
	}
	fmt.Fprintf(w, "Requests:          %d\n", s.Requests)
	fmt.Fprintf(w, "Successful:        %d\n", s.Successes)
	fmt.Fprintf(w, "Failed:            %d\n", s.Failures)
	fmt.Fprintf(w, "Duration:          %s\n", s.Duration)
	fmt.Fprintf(w, "Target RPS:        %.2f\n", s.TargetRPS)
	fmt.Fprintf(w, "Actual RPS:        %.2f\n", s.ActualRPS)

	fmt.Fprintln(w, "\nLatency:")
	if s.HasLatency {
		fmt.Fprintf(w, "  Min:             %s\n", s.MinLatency)
		fmt.Fprintf(w, "  Max:             %s\n", s.MaxLatency)
		fmt.Fprintf(w, "  Mean:            %s\n", s.MeanLatency)
		fmt.Fprintf(w, "  P50:             %s\n", s.P50Latency)
		fmt.Fprintf(w, "  P90:             %s\n", s.P90Latency)
		fmt.Fprintf(w, "  P99:             %s\n", s.P99Latency)
	} else {
		fmt.Fprintln(w, "  unavailable (no successful requests)")
	}

	if len(s.FailureReasons) > 0 {
		fmt.Fprintln(w, "\nFailures:")
		reasons := make([]string, 0, len(s.FailureReasons))
		for reason := range s.FailureReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(w, "  %s: %d\n", reason, s.FailureReasons[reason])
		}
	}

	if s.BelowTarget {
		fmt.Fprintf(w, "\nWARNING: actual RPS %.2f is materially below the target of %.2f; responses are taking longer than the pacing interval\n", s.ActualRPS, s.TargetRPS)
	}
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, s metrics.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
