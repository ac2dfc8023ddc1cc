package tester

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"apiprobe/toolkit"
)

// BuildReport freezes a completed run into the export shape downstream
// reporting consumes. The tests list matches the run log exactly, in
// execution order.
func BuildReport(run *Run, baseURL string, categories map[string]int) toolkit.Report {
	return toolkit.Report{
		RunID:      run.ID,
		BaseURL:    baseURL,
		Summary:    run.Summarize(),
		Tests:      run.Outcomes(),
		Categories: categories,
	}
}

// DefaultReportPath names the export file after the run's wall-clock time.
func DefaultReportPath(now time.Time) string {
	return fmt.Sprintf("api_test_results_%s.json", now.Format("20060102_150405"))
}

func WriteReport(path string, rep toolkit.Report) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve report path %q: %w", path, err)
	}
	if err := writeJSON(abs, rep); err != nil {
		return fmt.Errorf("persist report json: %w", err)
	}
	log.Printf("tester.report: persisted path=%s total=%d passed=%d failed=%d", abs, rep.Summary.Total, rep.Summary.Passed, rep.Summary.Failed)
	return nil
}

func writeJSON(path string, data any) error {
	log.Printf("tester.report: writing file=%s", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare output directory for %q: %w", path, err)
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json %q: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write json file %q: %w", path, err)
	}
	return nil
}
