package tester

import (
	"fmt"
	"log"
	"strings"

	"apiprobe/toolkit"
)

// RunCases replays an ordered list of independent request specs through the
// executor and status verifier, one fully-resolved call at a time. Specs have
// no inter-step dependency and may come from any producer that emits the
// RequestSpec schema; an unsupported method is a FAIL outcome for that spec,
// never a halt.
func RunCases(exec *Executor, baseURL string, cases []toolkit.RequestSpec, run *Run) {
	base := strings.TrimSuffix(baseURL, "/")
	log.Printf("tester.cases: start base=%s cases=%d run=%s", base, len(cases), run.ID)

	for i, tc := range cases {
		test := caseName(i, tc, base)

		method, ok := ParseMethod(tc.Method)
		if !ok {
			run.Fail(test, fmt.Sprintf("Unsupported method: %s", tc.Method))
			continue
		}

		resp, err := exec.Execute(method, JoinURL(base, tc.Endpoint), tc.Data, tc.Headers)
		if err != nil {
			run.Fail(test, fmt.Sprintf("Error: %v", err))
			continue
		}

		passed, detail := VerifyStatus(resp, tc.ExpectedStatus)
		if passed {
			run.Pass(test, detail)
		} else {
			run.Fail(test, detail)
		}
	}
	log.Printf("tester.cases: done run=%s outcomes=%d", run.ID, run.Len())
}

func caseName(i int, tc toolkit.RequestSpec, base string) string {
	if strings.TrimSpace(tc.Description) != "" {
		return fmt.Sprintf("[Case %d] %s", i+1, tc.Description)
	}
	return fmt.Sprintf("[Case %d] %s %s%s", i+1, strings.ToUpper(tc.Method), base, tc.Endpoint)
}

// TallyCategories counts specs per category tag for the report. The tag is
// informational only; it never affects execution or judgment.
func TallyCategories(cases []toolkit.RequestSpec) map[string]int {
	if len(cases) == 0 {
		return nil
	}
	tally := make(map[string]int)
	for _, tc := range cases {
		cat := tc.Category
		if cat == "" {
			cat = "other"
		}
		tally[cat]++
	}
	return tally
}
