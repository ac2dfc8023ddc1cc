package tester

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"apiprobe/toolkit"
)

// VerifyStatus judges a response against the expected status code. The detail
// string is fit for recording as-is: a pass carries the observed status and
// latency, a mismatch names both codes plus a truncated body for diagnosis.
func VerifyStatus(resp *Response, expected int) (bool, string) {
	if resp.Status == expected {
		return true, fmt.Sprintf("Status: %d, Response time: %.2fs", resp.Status, resp.Elapsed.Seconds())
	}
	detail := fmt.Sprintf("Expected status %d, got %d", expected, resp.Status)
	if len(resp.Body) > 0 {
		detail += fmt.Sprintf(". Response: %s", toolkit.TruncateForLog(resp.Body, 150))
	}
	return false, detail
}

// CheckFields verifies that each expected field path is present in the parsed
// body. Paths may be dotted ("data.id") for nested lookups. A non-JSON body is
// reported through the returned message, never a panic.
func CheckFields(body []byte, fields []string) (bool, string) {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return false, "Invalid JSON response"
	}

	var missing []string
	for _, field := range fields {
		if _, ok := lookupPath(data, field); !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return false, "Missing fields: " + strings.Join(missing, ", ")
	}
	return true, "All expected fields present"
}

// lookupPath descends a dotted path through nested maps. The path is absent
// if any segment is missing or the container at that point is not a mapping.
func lookupPath(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// CompareFields checks each key of the expected payload against the fetched
// body, unwrapping a "data" envelope when present. Comparison is shallow
// per-key equality of the literal JSON values; the returned list names every
// mismatched key with both values. A non-JSON body is an error.
func CompareFields(expected map[string]any, body []byte) ([]string, error) {
	var fetched map[string]any
	if err := json.Unmarshal(body, &fetched); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}
	actual := fetched
	if inner, ok := fetched["data"].(map[string]any); ok {
		actual = inner
	}

	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var mismatches []string
	for _, key := range keys {
		want := expected[key]
		got, ok := actual[key]
		if !ok || !jsonValueEqual(want, got) {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected '%v', got '%v'", key, want, got))
		}
	}
	return mismatches, nil
}

// jsonValueEqual compares two values by their canonical JSON encoding, so an
// int payload written in Go matches the float64 the decoder produced for the
// same number.
func jsonValueEqual(a, b any) bool {
	ra, err := json.Marshal(a)
	if err != nil {
		return false
	}
	rb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}
