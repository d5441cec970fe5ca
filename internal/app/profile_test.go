package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/pktprof/internal/profile"
	"github.com/tturner/pktprof/internal/report"
)

const endToEndSession = `{"packets": [
  {"opcode": 3110, "size": 10, "direction": "RECV"},
  {"opcode": 3110, "size": 10, "direction": "RECV"},
  {"opcode": 3111, "size": 8, "direction": "RECV"},
  {"opcode": 3111, "size": 12, "direction": "RECV"},
  {"opcode": 3112, "size": 99, "direction": "SEND"}
]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 13, 4, 5, 0, time.Local)
}

func TestRunProfileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	outputPath := filepath.Join(dir, "suggested.txt")

	result, err := RunProfile(ProfileOptions{
		SessionFile: writeFile(t, dir, "session.json", endToEndSession),
		OutputFile:  outputPath,
		Details:     true,
		Out:         &out,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("RunProfile failed: %v", err)
	}
	if !result.Loaded {
		t.Fatal("session should be loaded")
	}

	type entry struct {
		Opcode         uint16
		Classification profile.Classification
		Min, Max       int
		Count          int
	}
	var got []entry
	for _, s := range result.Suggestions {
		got = append(got, entry{s.Opcode, s.Classification, s.MinSize, s.MaxSize, s.Count})
	}
	want := []entry{
		{3110, profile.Fixed, 10, 10, 2},
		{3111, profile.Variable, -1, 8, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}

	console := out.String()
	for _, s := range []string{"Analyzing 5 packets...", "0C26 10 10 0", "0C27 -1 8 0", "# VARIABLE - 2 occurrences", "Suggestions saved to: " + outputPath} {
		if !strings.Contains(console, s) {
			t.Errorf("console missing %q:\n%s", s, console)
		}
	}
	if strings.Contains(console, "0C28") {
		t.Errorf("SEND opcode must not be suggested:\n%s", console)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "# Generated: 2024-05-01 13:04:05\n") {
		t.Errorf("output header missing timestamp:\n%s", data)
	}
	if !strings.Contains(string(data), "# FIXED - 2 occurrences\n0C26 10 10 0\n\n") {
		t.Errorf("output missing fixed entry:\n%s", data)
	}
}

func TestRunProfileCompare(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	knownPath := writeFile(t, dir, "recvpackets.txt", "# known\n0C26 10 10 0\nABC 1 2 3\n")

	result, err := RunProfile(ProfileOptions{
		SessionFile: writeFile(t, dir, "session.json", endToEndSession),
		CompareFile: knownPath,
		Out:         &out,
	})
	if err != nil {
		t.Fatalf("RunProfile failed: %v", err)
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0].Opcode != 3111 {
		t.Fatalf("expected only 0x0C27, got %+v", result.Suggestions)
	}
	if !strings.Contains(out.String(), fmt.Sprintf("Loaded 1 known packets from %s", knownPath)) {
		t.Errorf("missing known-set notice:\n%s", out.String())
	}
}

func TestRunProfileMissingCompareFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	result, err := RunProfile(ProfileOptions{
		SessionFile: writeFile(t, dir, "session.json", endToEndSession),
		CompareFile: filepath.Join(dir, "missing.txt"),
		Out:         &out,
	})
	if err != nil {
		t.Fatalf("missing compare file should not be fatal: %v", err)
	}
	if len(result.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(result.Suggestions))
	}
	if !strings.Contains(out.String(), "Loaded 0 known packets") {
		t.Errorf("missing known-set notice:\n%s", out.String())
	}
}

func TestRunProfileInputErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		session string
		want    string
	}{
		{name: "missing session", session: filepath.Join(dir, "nope.json"), want: "not found"},
		{name: "malformed session", session: writeFile(t, dir, "bad.json", "{\"packets\": [}"), want: "Error decoding JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			outputPath := filepath.Join(dir, tt.name+".txt")
			result, err := RunProfile(ProfileOptions{
				SessionFile: tt.session,
				OutputFile:  outputPath,
				Out:         &out,
			})
			if err != nil {
				t.Fatalf("input errors should end the run cleanly: %v", err)
			}
			if result.Loaded || len(result.Suggestions) != 0 {
				t.Fatalf("no suggestions expected, got %+v", result)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("console missing %q:\n%s", tt.want, out.String())
			}
			if strings.Contains(out.String(), "PACKET ANALYSIS REPORT") {
				t.Error("no report should be printed")
			}
			if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
				t.Errorf("output file must not be written, stat err = %v", err)
			}
		})
	}
}

func TestRunProfileNoOutputWhenAllKnown(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	outputPath := filepath.Join(dir, "suggested.txt")

	_, err := RunProfile(ProfileOptions{
		SessionFile: writeFile(t, dir, "session.json", endToEndSession),
		CompareFile: writeFile(t, dir, "recvpackets.txt", "0C26 10 10 0\n0C27 -1 8 0\n"),
		OutputFile:  outputPath,
		Out:         &out,
	})
	if err != nil {
		t.Fatalf("RunProfile failed: %v", err)
	}
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Errorf("output file should not be written without suggestions")
	}
	if !strings.Contains(out.String(), "All packets are already in recvpackets.txt!") {
		t.Errorf("missing all-known notice:\n%s", out.String())
	}
}

func TestRunProfileOutputWriteFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := RunProfile(ProfileOptions{
		SessionFile: writeFile(t, dir, "session.json", endToEndSession),
		OutputFile:  filepath.Join(dir, "no", "such", "dir", "out.txt"),
		Out:         &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected write failure to propagate")
	}
}

func TestRunProfileJSONAndClipboard(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "suggestions.json")
	var copied string
	var out bytes.Buffer

	_, err := RunProfile(ProfileOptions{
		SessionFile: writeFile(t, dir, "session.json", endToEndSession),
		JSONFile:    jsonPath,
		Copy:        true,
		Out:         &out,
		Version:     "1.2.3",
		Now:         fixedNow,
		Clipboard: func(text string) error {
			copied = text
			return nil
		},
	})
	if err != nil {
		t.Fatalf("RunProfile failed: %v", err)
	}

	if copied != "0C26 10 10 0\n0C27 -1 8 0\n" {
		t.Errorf("unexpected clipboard text: %q", copied)
	}
	if !strings.Contains(out.String(), "Copied 2 entries to the clipboard") {
		t.Errorf("missing clipboard notice:\n%s", out.String())
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var doc report.ProfileReport
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.PktprofVersion != "1.2.3" || doc.Summary.Variable != 1 || len(doc.Suggestions) != 2 {
		t.Errorf("unexpected json report: %+v", doc)
	}
}

func TestRunProfileClipboardFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	_, err := RunProfile(ProfileOptions{
		SessionFile: writeFile(t, dir, "session.json", endToEndSession),
		Copy:        true,
		Out:         &out,
		Clipboard:   func(string) error { return fmt.Errorf("no clipboard utility") },
	})
	if err != nil {
		t.Fatalf("clipboard failure should not fail the run: %v", err)
	}
	if strings.Contains(out.String(), "Copied") {
		t.Errorf("should not claim a copy happened:\n%s", out.String())
	}
}
