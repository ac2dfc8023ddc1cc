package tester

import (
	"fmt"
	"log"
	"strings"
)

// Lifecycle drives the fixed CRUD sequence against a single resource:
// create, list, fetch, full update plus verification, partial update plus
// verification, delete plus verify-gone, then edge cases. Each step's failure
// is absorbed locally. A failed create skips every step that needs the new
// resource's identity; list and the edge cases always run.
type Lifecycle struct {
	exec *Executor
	base string

	CreateData     map[string]any
	UpdateData     map[string]any
	PatchData      map[string]any
	ExpectedFields []string
}

func NewLifecycle(exec *Executor, baseURL string) *Lifecycle {
	return &Lifecycle{
		exec: exec,
		base: strings.TrimSuffix(baseURL, "/"),
		CreateData: map[string]any{
			"name":        "Test Item",
			"description": "This is a test item",
			"value":       123,
		},
		UpdateData: map[string]any{
			"name":        "Updated Test Item",
			"description": "This item has been updated",
			"value":       456,
		},
		PatchData: map[string]any{
			"description": "Partially updated description",
		},
	}
}

const missingResourceID = "nonexistent-id-12345"

// Run executes the full sequence, appending every judgment to the run log.
func (l *Lifecycle) Run(run *Run) {
	log.Printf("tester.lifecycle: start base=%s run=%s", l.base, run.ID)

	// Create
	resourceID := ""
	createResp, ok := l.step(run, MethodPost, "", l.CreateData, 201)
	if ok {
		l.checkExpectedFields(createResp, "create")
		if id, found := ExtractID(createResp.Body); found {
			resourceID = id
		}
	}
	if resourceID == "" {
		log.Printf("tester.lifecycle: no resource id; skipping identity-dependent steps run=%s", run.ID)
	}

	// List all
	l.step(run, MethodGet, "", nil, 200)

	// Fetch one
	if resourceID != "" {
		if resp, ok := l.step(run, MethodGet, "/"+resourceID, nil, 200); ok {
			l.checkExpectedFields(resp, "fetch")
		}
	}

	// Full update, then read back and compare every updated field
	if resourceID != "" {
		if _, ok := l.step(run, MethodPut, "/"+resourceID, l.UpdateData, 200); ok {
			l.verifyUpdate(run, resourceID, l.UpdateData, "PUT")
		}
	}

	// Partial update, same read-back check for the patched fields
	if resourceID != "" {
		if _, ok := l.step(run, MethodPatch, "/"+resourceID, l.PatchData, 200); ok {
			l.verifyUpdate(run, resourceID, l.PatchData, "PATCH")
		}
	}

	// Delete, then the resource must be gone
	if resourceID != "" {
		if _, ok := l.step(run, MethodDelete, "/"+resourceID, nil, 200); ok {
			l.step(run, MethodGet, "/"+resourceID, nil, 404)
		}
	}

	// Edge cases run regardless of everything above
	l.step(run, MethodGet, "/"+missingResourceID, nil, 404)
	l.step(run, MethodDelete, "/"+missingResourceID, nil, 404)
	l.step(run, MethodPost, "", map[string]any{}, 400)

	log.Printf("tester.lifecycle: done run=%s outcomes=%d", run.ID, run.Len())
}

// step issues one request and records its judgment. The response is returned
// only when the step passed, so callers can gate dependent work on it.
func (l *Lifecycle) step(run *Run, method Method, endpoint string, data map[string]any, expected int) (*Response, bool) {
	url := l.base + endpoint
	test := fmt.Sprintf("%s %s", method, url)

	resp, err := l.exec.Execute(method, url, data, nil)
	if err != nil {
		run.Fail(test, fmt.Sprintf("Error: %v", err))
		return nil, false
	}

	ok, detail := VerifyStatus(resp, expected)
	if !ok {
		run.Fail(test, detail)
		return nil, false
	}
	run.Pass(test, detail)
	return resp, true
}

// verifyUpdate fetches the resource again and records whether every key of
// the just-written payload actually stuck. A mismatch is its own FAIL outcome
// listing each differing key; it never aborts the run.
func (l *Lifecycle) verifyUpdate(run *Run, resourceID string, payload map[string]any, op string) {
	url := l.base + "/" + resourceID
	test := fmt.Sprintf("Verify %s %s", op, url)

	resp, err := l.exec.Execute(MethodGet, url, nil, nil)
	if err != nil {
		run.Fail(test, fmt.Sprintf("Error: %v", err))
		return
	}
	if ok, detail := VerifyStatus(resp, 200); !ok {
		run.Fail(test, detail)
		return
	}

	mismatches, err := CompareFields(payload, resp.Body)
	if err != nil {
		run.Fail(test, "Invalid JSON response")
		return
	}
	if len(mismatches) > 0 {
		run.Fail(test, fmt.Sprintf("%s verification failed: %s", op, strings.Join(mismatches, ", ")))
		return
	}
	run.Pass(test, fmt.Sprintf("%s update verified, %d field(s) match", op, len(payload)))
}

// checkExpectedFields is auxiliary validation: presence of the configured
// field paths is logged, not recorded, so it cannot gate the step's judgment.
func (l *Lifecycle) checkExpectedFields(resp *Response, stage string) {
	if len(l.ExpectedFields) == 0 {
		return
	}
	ok, msg := CheckFields(resp.Body, l.ExpectedFields)
	log.Printf("tester.lifecycle: field validation stage=%s ok=%t detail=%s", stage, ok, msg)
}
