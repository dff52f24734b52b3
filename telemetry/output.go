package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/tomingtoming/Geneuron/config"
)

// Output file names inside a run directory.
const (
	ConfigFile    = "config.yaml"
	TelemetryFile = "telemetry.csv"
	PerfFile      = "perf.csv"
)

// csvLog is an append-only CSV file whose header is written with the first row.
type csvLog struct {
	name   string
	f      *os.File
	header bool
}

func openCSVLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, f: f}, nil
}

// append writes rows, a slice of gocsv-tagged structs.
func (l *csvLog) append(rows any) error {
	var err error
	if l.header {
		err = gocsv.MarshalWithoutHeaders(rows, l.f)
	} else {
		err = gocsv.Marshal(rows, l.f)
		l.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	return nil
}

// OutputManager writes one run's artifacts: the effective config plus a row
// per stats window in telemetry.csv and perf.csv. A nil manager is valid and
// discards everything, so callers need not check whether output is enabled.
type OutputManager struct {
	dir       string
	telemetry *csvLog
	perf      *csvLog
}

// NewOutputManager creates dir and opens the CSV logs. An empty dir
// disables output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	telemetry, err := openCSVLog(dir, TelemetryFile)
	if err != nil {
		return nil, err
	}
	perf, err := openCSVLog(dir, PerfFile)
	if err != nil {
		telemetry.f.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, telemetry: telemetry, perf: perf}, nil
}

// WriteConfig snapshots the configuration the run started with.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry appends one population window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.append([]WindowStats{stats})
}

// WritePerf appends the tick timing for the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	return om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// Close closes every log, returning all close errors joined.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.telemetry.f.Close(), om.perf.f.Close())
}
