package report

import "github.com/tturner/pktprof/internal/profile"

// ProfileReport is the JSON export of a profiling run.
type ProfileReport struct {
	GeneratedAt    string               `json:"generated_at"`
	PktprofVersion string               `json:"pktprof_version"`
	PktprofCommit  string               `json:"pktprof_commit"`
	Source         string               `json:"source"`
	KnownFile      string               `json:"known_file,omitempty"`
	KnownOpcodes   int                  `json:"known_opcodes"`
	Summary        profile.Summary      `json:"summary"`
	Suggestions    []profile.Suggestion `json:"suggestions"`
}
