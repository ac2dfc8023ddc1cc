package toolkit

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// -- Test Cases

// RequestSpec describes one HTTP call to issue against the target API.
// The schema is shared by hand-written case files and generated case lists;
// the engine does not care which produced a case.
type RequestSpec struct {
	Method         string            `json:"method" yaml:"method"`
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`
	Data           map[string]any    `json:"data" yaml:"data"`
	ExpectedStatus int               `json:"expected_status" yaml:"expected_status"`
	Description    string            `json:"description" yaml:"description"`
	Category       string            `json:"category" yaml:"category"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers"`
}

// -- Report

type Outcome struct {
	Test      string `json:"test"`
	Status    string `json:"status"` // PASS | FAIL
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

func (o Outcome) Passed() bool {
	return o.Status == StatusPass
}

type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
}

// Report is the main exporting struct consumed by downstream reporting.
// Tests is ordered exactly as the run issued its requests.
type Report struct {
	RunID      string         `json:"run_id"`
	BaseURL    string         `json:"base_url"`
	Summary    Summary        `json:"summary"`
	Tests      []Outcome      `json:"tests"`
	Categories map[string]int `json:"categories,omitempty"`
}
