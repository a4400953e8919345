package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/ulid/v2"

	"github.com/torosent/apiprobe/internal/config"
	"github.com/torosent/apiprobe/internal/httpclient"
	"github.com/torosent/apiprobe/internal/metrics"
	"github.com/torosent/apiprobe/internal/output"
	"github.com/torosent/apiprobe/internal/probe"
	"github.com/torosent/apiprobe/internal/tracing"
)

const promptPreviewLen = 50

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	client := httpclient.NewClient(cfg.Timeout, cfg.Insecure)
	sender, err := httpclient.NewSender(cfg, client, tp)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	var live *output.LineWriter
	if !cfg.JSONOutput {
		printBanner(stdout, cfg)
		live = output.NewLineWriter(stdout, cfg.Extract)
	}

	runner := probe.New(probe.Options{
		Requests: cfg.Requests,
		Rate:     cfg.Rate,
		Sender:   sender,
		Pacing:   toProbePacing(cfg.Pacing),
		OnRecord: func(rec probe.Record) {
			recorder.Record(rec)
			if live != nil {
				live.Print(rec)
			}
		},
	})

	runID := ulid.Make().String()
	result := runner.Run(ctx)

	if err := output.WriteCSV(cfg.CSVPath, result.Records); err != nil {
		return err
	}

	summary := recorder.Summary(result.Duration, cfg.Rate)
	summary.RunID = runID

	if cfg.JSONOutput {
		if err := output.PrintJSONReport(stdout, summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(stdout, "\nMetrics saved to %s\n", cfg.CSVPath)
		output.PrintReport(stdout, summary)
	}

	if result.Interrupted {
		return fmt.Errorf("run interrupted after %d of %d requests", len(result.Records), cfg.Requests)
	}
	return nil
}

func printBanner(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "API Probe Starting")
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "Target:            %s\n", cfg.TargetURL)
	fmt.Fprintf(w, "Requests to send:  %d\n", cfg.Requests)
	fmt.Fprintf(w, "Target RPS:        %.2f\n", cfg.Rate)
	fmt.Fprintf(w, "Prompt:            %s\n", previewPrompt(cfg.Prompt))
	fmt.Fprintln(w)
}

func previewPrompt(prompt string) string {
	if len(prompt) > promptPreviewLen {
		return prompt[:promptPreviewLen] + "..."
	}
	return prompt
}

func toProbePacing(model string) probe.PacingModel {
	switch model {
	case config.PacingSmooth:
		return probe.PacingSmooth
	default:
		return probe.PacingSchedule
	}
}
