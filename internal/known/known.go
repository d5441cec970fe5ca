// Package known reads previously documented opcodes from a recvpackets style
// configuration file.
package known

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tturner/pktprof/internal/logging"
)

// Set is a set of known opcodes.
type Set map[uint16]struct{}

// Contains reports whether opcode is in the set.
func (s Set) Contains(opcode uint16) bool {
	_, ok := s[opcode]
	return ok
}

// Sorted returns the opcodes in ascending order.
func (s Set) Sorted() []uint16 {
	out := make([]uint16, 0, len(s))
	for op := range s {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Load reads a known-opcode file. A missing file is reported through the
// logger and yields an empty set.
func Load(path string, log *logging.Logger) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error("File %s not found", path)
			return Set{}, nil
		}
		return nil, fmt.Errorf("open known opcodes: %w", err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	log.Verbose("Parsed %d known opcodes from %s", len(set), path)
	return set, nil
}

// Parse reads `XXXX MIN MAX FLAGS` lines. Comments, blank lines and lines
// whose first token is not a 4 digit hex opcode are skipped.
func Parse(r io.Reader) (Set, error) {
	set := Set{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		token := strings.ToUpper(fields[0])
		if len(token) != 4 {
			continue
		}
		opcode, err := strconv.ParseUint(token, 16, 16)
		if err != nil {
			continue
		}
		set[uint16(opcode)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
