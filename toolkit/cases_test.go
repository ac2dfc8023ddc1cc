package toolkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCaseFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCasesJSON(t *testing.T) {
	path := writeCaseFile(t, "cases.json", `[
		{"method": "post", "endpoint": "", "data": {"name": "Apple"}, "expected_status": 201, "description": "valid create", "category": "happy_path"},
		{"method": "GET", "endpoint": "/123", "expected_status": 404, "description": "unknown id"}
	]`)

	cases, err := LoadCases(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "POST", cases[0].Method)
	assert.Equal(t, "happy_path", cases[0].Category)
	assert.Equal(t, "other", cases[1].Category, "unset category defaults")
	assert.Empty(t, cases[0].Endpoint, "unset endpoint defaults to empty suffix")
}

func TestLoadCasesYAML(t *testing.T) {
	path := writeCaseFile(t, "cases.yaml", `
- method: POST
  endpoint: ""
  data:
    name: Apple
  expected_status: 201
  description: valid create
- method: DELETE
  endpoint: /999
  expected_status: 404
  description: delete unknown id
  category: edge_case
`)

	cases, err := LoadCases(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "DELETE", cases[1].Method)
	assert.Equal(t, "edge_case", cases[1].Category)
	assert.Equal(t, 201, cases[0].ExpectedStatus)
}

func TestLoadCasesRepairsGeneratorOutput(t *testing.T) {
	// typical generator output: fenced, single-quoted, Python literals,
	// prose around the array
	path := writeCaseFile(t, "generated.json", "Here are your test cases:\n```json\n[{'method': 'POST', 'endpoint': '', 'data': {'active': True, 'note': None}, 'expected_status': 201, 'description': 'create with flags'}]\n```\nLet me know if you need more.")

	cases, err := LoadCases(path)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "POST", cases[0].Method)
	assert.Equal(t, true, cases[0].Data["active"])
	assert.Nil(t, cases[0].Data["note"])
}

func TestLoadCasesDropsIncompleteEntries(t *testing.T) {
	path := writeCaseFile(t, "cases.json", `[
		{"method": "GET", "expected_status": 200, "description": "complete"},
		{"method": "GET", "description": "missing expected status"},
		{"expected_status": 200, "description": "missing method"}
	]`)

	cases, err := LoadCases(path)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "complete", cases[0].Description)
}

func TestLoadCasesAllInvalidIsFatal(t *testing.T) {
	path := writeCaseFile(t, "cases.json", `[{"description": "nothing usable"}]`)
	_, err := LoadCases(path)
	require.Error(t, err)
}

func TestLoadCasesUnreadableFile(t *testing.T) {
	_, err := LoadCases(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestRepairGeneratedJSON(t *testing.T) {
	in := "```json\n[{'ok': True, 'gone': None, 'off': False}]\n```"
	out := RepairGeneratedJSON(in)
	assert.Equal(t, `[{"ok": true, "gone": null, "off": false}]`, out)
}
