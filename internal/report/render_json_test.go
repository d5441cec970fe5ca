package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/pktprof/internal/profile"
)

func sampleReport() ProfileReport {
	suggestions := sampleSuggestions()
	return ProfileReport{
		GeneratedAt:    "2024-01-15T10:00:00Z",
		PktprofVersion: "1.0.0",
		Source:         "session.json",
		Summary:        profile.Summary{UniqueOpcodes: 2, Fixed: 1, Variable: 1, Suggestions: 2},
		Suggestions:    suggestions,
	}
}

func TestWriteJSON(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, report); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded ProfileReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if diff := cmp.Diff(report, decoded); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	// Field names are read by external tooling.
	for _, key := range []string{`"hex": "0C27"`, `"type": "VARIABLE"`, `"min_size": -1`, `"max_size": 8`, `"sizes": [`} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("JSON missing %s:\n%s", key, buf.String())
		}
	}
}

func TestWriteJSONFile(t *testing.T) {
	report := sampleReport()
	path := filepath.Join(t.TempDir(), "suggestions.json")

	if err := WriteJSONFile(path, report); err != nil {
		t.Fatalf("WriteJSONFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	var decoded ProfileReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output file is not valid JSON: %v", err)
	}
	if decoded.Source != "session.json" || len(decoded.Suggestions) != 2 {
		t.Errorf("unexpected decoded report: %+v", decoded)
	}
}

func TestWriteJSONFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.json")
	if err := WriteJSONFile(path, sampleReport()); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestWriteJSONEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, ProfileReport{}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded ProfileReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
}
