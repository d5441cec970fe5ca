package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"

	"github.com/tturner/pktprof/internal/config"
	"github.com/tturner/pktprof/internal/errors"
	"github.com/tturner/pktprof/internal/known"
	"github.com/tturner/pktprof/internal/logging"
	"github.com/tturner/pktprof/internal/profile"
	"github.com/tturner/pktprof/internal/progress"
	"github.com/tturner/pktprof/internal/report"
	"github.com/tturner/pktprof/internal/session"
)

type ProfileOptions struct {
	SessionFile string
	CompareFile string
	OutputFile  string
	JSONFile    string
	Details     bool
	Copy        bool
	Progress    bool

	Config  *config.Config
	Logger  *logging.Logger
	Out     io.Writer
	Version string
	Commit  string

	// Overridable for tests.
	Now       func() time.Time
	Clipboard func(string) error
}

// ProfileResult is what a profiling run produced.
type ProfileResult struct {
	Loaded      bool
	Summary     profile.Summary
	Suggestions []profile.Suggestion
}

func (o *ProfileOptions) applyDefaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Clipboard == nil {
		o.Clipboard = clipboard.WriteAll
	}
}

// RunProfile loads a session, proposes entries for unknown opcodes and
// reports them. Input problems are reported on Out and end the run early
// with a nil error; output write failures are returned.
func RunProfile(opts ProfileOptions) (*ProfileResult, error) {
	opts.applyDefaults()
	out := opts.Out
	log := opts.Logger
	log.LogStartup("profile", opts.SessionFile, opts.CompareFile, "")

	agg := profile.NewAggregator(profile.Options{
		Direction:   session.Direction(opts.Config.Profile.Direction),
		SampleSizes: opts.Config.Profile.SampleSizes,
	})

	ok, err := analyzeSession(opts, agg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &ProfileResult{}, nil
	}

	var knownSet known.Set
	if opts.CompareFile != "" {
		knownSet, err = known.Load(opts.CompareFile, log)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Loaded %d known packets from %s\n", len(knownSet), opts.CompareFile)
	}

	suggestions := agg.Suggest(knownSet)
	summary := agg.Summary(suggestions)
	log.Verbose("%d suggestions, %d variable", len(suggestions), summary.Variable)

	report.WriteProfile(out, summary, suggestions, report.TextOptions{
		Details: opts.Details || opts.Config.Report.Details,
		Color:   opts.Config.ColorEnabled(),
	})

	if opts.OutputFile != "" && len(suggestions) > 0 {
		if err := report.WriteSuggestionFile(opts.OutputFile, suggestions, opts.SessionFile, opts.Now()); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "\nSuggestions saved to: %s\n", opts.OutputFile)
	}

	if opts.JSONFile != "" {
		doc := report.ProfileReport{
			GeneratedAt:    report.FormatUTC(opts.Now()),
			PktprofVersion: opts.Version,
			PktprofCommit:  opts.Commit,
			Source:         opts.SessionFile,
			KnownFile:      opts.CompareFile,
			KnownOpcodes:   len(knownSet),
			Summary:        summary,
			Suggestions:    suggestions,
		}
		if err := report.WriteJSONFile(opts.JSONFile, doc); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "JSON report saved to: %s\n", opts.JSONFile)
	}

	if opts.Copy && len(suggestions) > 0 {
		if err := opts.Clipboard(report.SuggestionLines(suggestions)); err != nil {
			log.Error("copy to clipboard: %v", err)
		} else {
			fmt.Fprintf(out, "Copied %d entries to the clipboard\n", len(suggestions))
		}
	}

	return &ProfileResult{Loaded: true, Summary: summary, Suggestions: suggestions}, nil
}

// analyzeSession loads the session log into agg. It returns false when the
// log is missing or malformed; that condition has already been reported.
func analyzeSession(opts ProfileOptions, agg *profile.Aggregator) (bool, error) {
	log, err := session.Load(opts.SessionFile)
	if err != nil {
		if errors.IsNotFound(err) || errors.IsMalformed(err) {
			fmt.Fprintln(opts.Out, err.Error())
			opts.Logger.Verbose("aborting: %v", err)
			return false, nil
		}
		return false, err
	}

	fmt.Fprintf(opts.Out, "Analyzing %d packets...\n", len(log.Packets))

	var tracker profile.ProgressTracker
	if opts.Progress {
		bar := progress.NewProgressBar(int64(len(log.Packets)), "Scanning packets")
		defer bar.Finish()
		tracker = bar
	}
	added := agg.AddAll(log.Packets, tracker)
	opts.Logger.Verbose("Aggregated %d %s packets across %d opcodes",
		added, opts.Config.Profile.Direction, agg.UniqueOpcodes())
	return true, nil
}
