package toolkit

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// This module is the case-file producer: it turns a JSON or YAML file into a
// validated []RequestSpec before the engine sees anything. Files written by an
// external generator are often near-JSON (code fences, single quotes, Python
// literal spellings); the repair pass below stays entirely on this side of the
// boundary so the engine only ever receives well-formed specs.

func LoadCases(path string) ([]RequestSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("toolkit.cases: read failed file=%s error=%v", path, err)
		return nil, err
	}
	log.Printf("toolkit.cases: loaded file=%s bytes=%d", path, len(raw))

	var cases []RequestSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cases); err != nil {
			return nil, fmt.Errorf("parse yaml cases %q: %w", path, err)
		}
	default:
		cases, err = DecodeCases(raw)
		if err != nil {
			return nil, fmt.Errorf("parse json cases %q: %w", path, err)
		}
	}

	valid := validateCases(cases)
	log.Printf("toolkit.cases: decoded total=%d valid=%d", len(cases), len(valid))
	if len(valid) == 0 {
		return nil, fmt.Errorf("no usable test cases in %q (each case needs method, expected_status, description)", path)
	}
	return valid, nil
}

// DecodeCases parses a JSON case list, falling back to a best-effort repair
// of generator output when the first parse fails.
func DecodeCases(raw []byte) ([]RequestSpec, error) {
	var direct []RequestSpec
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	repaired := RepairGeneratedJSON(string(raw))
	log.Printf("toolkit.cases: direct parse failed; retrying repaired bytes=%d", len(repaired))
	var recovered []RequestSpec
	if err := json.Unmarshal([]byte(repaired), &recovered); err != nil {
		return nil, err
	}
	return recovered, nil
}

// RepairGeneratedJSON normalizes near-JSON produced by an external generator:
// markdown code fences are stripped, text outside the outermost array is
// dropped, and single quotes plus Python literal spellings are rewritten.
func RepairGeneratedJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.Contains(text, "```") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end != -1 && start < end {
		text = text[start : end+1]
	}

	text = strings.ReplaceAll(text, "'", `"`)
	text = strings.ReplaceAll(text, "True", "true")
	text = strings.ReplaceAll(text, "False", "false")
	text = strings.ReplaceAll(text, "None", "null")
	return text
}

func validateCases(cases []RequestSpec) []RequestSpec {
	valid := make([]RequestSpec, 0, len(cases))
	for i, tc := range cases {
		if strings.TrimSpace(tc.Method) == "" || tc.ExpectedStatus == 0 || strings.TrimSpace(tc.Description) == "" {
			log.Printf("toolkit.cases: dropping incomplete case index=%d method=%q expected_status=%d", i, tc.Method, tc.ExpectedStatus)
			continue
		}
		tc.Method = strings.ToUpper(strings.TrimSpace(tc.Method))
		if tc.Category == "" {
			tc.Category = "other"
		}
		valid = append(valid, tc)
	}
	return valid
}
