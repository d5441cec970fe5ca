package app

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tturner/pktprof/internal/config"
	"github.com/tturner/pktprof/internal/hexdump"
	"github.com/tturner/pktprof/internal/logging"
	"github.com/tturner/pktprof/internal/session"
)

type InspectOptions struct {
	SessionFile string
	OpcodeHex   string

	Config *config.Config
	Logger *logging.Logger
	Out    io.Writer
}

// RunInspect prints the first occurrences of one opcode with a hex dump of
// their payloads. Any failure is reported on Out; the run still ends cleanly.
func RunInspect(opts InspectOptions) error {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	opts.Logger.LogStartup("inspect", opts.SessionFile, "", "")

	if err := inspect(opts); err != nil {
		fmt.Fprintf(opts.Out, "Error analyzing packet: %v\n", err)
		opts.Logger.Verbose("inspect failed: %v", err)
	}
	return nil
}

func inspect(opts InspectOptions) error {
	out := opts.Out
	cfg := opts.Config

	opcode, err := parseHexOpcode(opts.OpcodeHex)
	if err != nil {
		return fmt.Errorf("parse opcode %q: %w", opts.OpcodeHex, err)
	}

	log, err := session.Load(opts.SessionFile)
	if err != nil {
		return err
	}

	matches := log.Matching(opcode, session.Direction(cfg.Profile.Direction))
	if len(matches) == 0 {
		fmt.Fprintf(out, "No packet %04X found\n", opcode)
		return nil
	}

	fmt.Fprintf(out, "\nDETAILED ANALYSIS OF PACKET %04X\n", opcode)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Total occurrences: %d\n", len(matches))

	for i, pkt := range matches {
		if i >= cfg.Inspect.MaxPackets {
			break
		}
		fmt.Fprintf(out, "\n--- Packet %d ---\n", i+1)
		fmt.Fprintf(out, "Timestamp: %s\n", pkt.TimestampOrNA())
		fmt.Fprintf(out, "Size: %d bytes\n", pkt.Size)

		payload, err := pkt.Payload()
		if err != nil {
			return err
		}
		if len(payload) == 0 {
			continue
		}
		opts.Logger.LogHex(fmt.Sprintf("packet %d payload", i+1), payload)
		if len(payload) > cfg.Inspect.MaxBytes {
			payload = payload[:cfg.Inspect.MaxBytes]
		}
		if err := hexdump.Write(out, payload, cfg.Inspect.BytesPerLine); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
	}
	return nil
}

func parseHexOpcode(value string) (uint16, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(strings.ToLower(value), "0x")
	parsed, err := strconv.ParseUint(value, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(parsed), nil
}
