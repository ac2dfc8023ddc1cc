package tester

import (
	"log"
	"time"

	"github.com/google/uuid"

	"apiprobe/toolkit"
)

const timestampLayout = "2006-01-02 15:04:05"

// Run is the append-only outcome log for one orchestrator or runner
// invocation. It is an explicit value owned by its caller; nothing in the
// engine accumulates results process-wide. Entries are immutable once
// recorded and their order is the literal issuance order.
type Run struct {
	ID       string
	outcomes []toolkit.Outcome
}

func NewRun() *Run {
	return &Run{ID: uuid.NewString()}
}

// Record appends one judgment. Exactly one outcome exists per issued request;
// transport failures are recorded here too, never silently dropped.
func (r *Run) Record(test, status, details string) {
	r.outcomes = append(r.outcomes, toolkit.Outcome{
		Test:      test,
		Status:    status,
		Details:   details,
		Timestamp: time.Now().Format(timestampLayout),
	})
	log.Printf("tester.record: run=%s test=%q status=%s", r.ID, test, status)
}

func (r *Run) Pass(test, details string) {
	r.Record(test, toolkit.StatusPass, details)
}

func (r *Run) Fail(test, details string) {
	r.Record(test, toolkit.StatusFail, details)
}

// Outcomes returns the log in execution order. The slice is a copy; recorded
// entries cannot be mutated through it.
func (r *Run) Outcomes() []toolkit.Outcome {
	return append([]toolkit.Outcome(nil), r.outcomes...)
}

func (r *Run) Len() int {
	return len(r.outcomes)
}

// Summarize reduces the log to totals. PassRate is 0 for an empty run.
func (r *Run) Summarize() toolkit.Summary {
	s := toolkit.Summary{Total: len(r.outcomes)}
	for _, o := range r.outcomes {
		if o.Passed() {
			s.Passed++
		}
	}
	s.Failed = s.Total - s.Passed
	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}
