package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/tturner/pktprof/internal/profile"
)

const ruleWidth = 80

// TextOptions controls the console report.
type TextOptions struct {
	Details bool
	Color   bool
}

// WriteProfile writes the console report for a profiling run.
func WriteProfile(w io.Writer, summary profile.Summary, suggestions []profile.Suggestion, opts TextOptions) {
	st := newStyles(w, opts.Color)
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	fmt.Fprintf(w, "\n%s\n", heavy)
	fmt.Fprintln(w, st.render(st.title, "PACKET ANALYSIS REPORT"))
	fmt.Fprintln(w, heavy)

	fmt.Fprintf(w, "\n%s\n", st.render(st.section, "General statistics:"))
	fmt.Fprintf(w, "   - Unique opcodes: %d\n", summary.UniqueOpcodes)
	fmt.Fprintf(w, "   - Fixed-size packets: %d\n", summary.Fixed)
	fmt.Fprintf(w, "   - Variable-size packets: %d\n", summary.Variable)

	if len(suggestions) == 0 {
		fmt.Fprintf(w, "\n%s\n", st.render(st.ok, "All packets are already in recvpackets.txt!"))
		return
	}

	fmt.Fprintf(w, "\n%s\n", st.render(st.section, fmt.Sprintf("New packets found: %d", len(suggestions))))
	fmt.Fprintf(w, "\n%s\n", light)
	fmt.Fprintln(w, "SUGGESTED ENTRIES FOR recvpackets.txt:")
	fmt.Fprintln(w, light)

	for _, s := range suggestions {
		fmt.Fprintln(w, s.Line())
		if opts.Details {
			fmt.Fprintf(w, "   %s\n", st.render(st.dim, commentLine(s)))
			if len(s.SampleSizes) > 0 {
				fmt.Fprintf(w, "   %s\n", st.render(st.dim, "# Sizes: "+joinSizes(s.SampleSizes)))
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, light)
	fmt.Fprintln(w, st.render(st.section, "TIPS:"))
	fmt.Fprintln(w, "   - Copy the lines above into your recvpackets.txt")
	fmt.Fprintln(w, "   - "+st.render(st.warn, "VARIABLE packets (-1) need manual analysis"))
	fmt.Fprintln(w, "   - Test with the client before using them in production")
}

// SuggestionLines returns the entry lines, one per suggestion.
func SuggestionLines(suggestions []profile.Suggestion) string {
	var sb strings.Builder
	for _, s := range suggestions {
		sb.WriteString(s.Line())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func commentLine(s profile.Suggestion) string {
	return fmt.Sprintf("# %s - %d occurrences", s.Classification, s.Count)
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = fmt.Sprintf("%d", size)
	}
	return strings.Join(parts, ", ")
}
