package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gofrs/flock"

	"github.com/torosent/apiprobe/internal/probe"
)

// csvTimeLayout renders start timestamps with millisecond precision.
const csvTimeLayout = "2006-01-02 15:04:05.000"

// csvHeader is the fixed column contract consumed by external tooling.
var csvHeader = []string{"request_number", "start_time", "total_time_ms", "status"}

// WriteCSV persists the record sequence to path, fully overwriting any
// previous run's file. A sidecar lock file guards against two probe runs
// clobbering the same output.
func WriteCSV(path string, records []probe.Record) error {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock csv output: %w", err)
	}
	if !locked {
		return fmt.Errorf("csv output %s is locked by another probe run", path)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		_ = file.Close()
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Sequence),
			rec.Start.Format(csvTimeLayout),
			strconv.FormatInt(rec.Latency.Milliseconds(), 10),
			strconv.Itoa(rec.Status),
		}
		if err := writer.Write(row); err != nil {
			_ = file.Close()
			return fmt.Errorf("write csv row %d: %w", rec.Sequence, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush csv output: %w", err)
	}
	return file.Close()
}
