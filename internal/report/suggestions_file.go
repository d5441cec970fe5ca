package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tturner/pktprof/internal/profile"
)

// WriteSuggestionFile writes suggestions to path in recvpackets format,
// each entry preceded by its classification comment.
func WriteSuggestionFile(path string, suggestions []profile.Suggestion, source string, generated time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create suggestions file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteSuggestions(w, suggestions, source, generated); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write suggestions file: %w", err)
	}
	return f.Close()
}

// WriteSuggestions writes the suggestions file body to w.
func WriteSuggestions(w io.Writer, suggestions []profile.Suggestion, source string, generated time.Time) error {
	_, err := fmt.Fprintf(w, "# Suggested entries for recvpackets.txt\n# Generated: %s\n# Source: %s\n\n",
		FormatLocal(generated), source)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range suggestions {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", commentLine(s), s.Line()); err != nil {
			return fmt.Errorf("write entry %s: %w", s.Hex, err)
		}
	}
	return nil
}
