// Package profile groups captured packets by opcode and proposes
// recvpackets entries describing their sizes.
package profile

import (
	"fmt"
	"sort"

	"github.com/tturner/pktprof/internal/known"
	"github.com/tturner/pktprof/internal/session"
)

// Classification says whether every occurrence of an opcode had the same size.
type Classification string

const (
	Fixed    Classification = "FIXED"
	Variable Classification = "VARIABLE"
)

// VariableMin is written as the minimum of variable-size entries. Their
// maximum carries the smallest observed size; consumers rely on this encoding.
const VariableMin = -1

// DefaultSampleSizes is the number of distinct sizes kept per suggestion.
const DefaultSampleSizes = 5

// Suggestion is a proposed recvpackets entry for one unknown opcode.
type Suggestion struct {
	Opcode         uint16         `json:"opcode"`
	Hex            string         `json:"hex"`
	Classification Classification `json:"type"`
	MinSize        int            `json:"min_size"`
	MaxSize        int            `json:"max_size"`
	Flags          int            `json:"flags"`
	Count          int            `json:"count"`
	SampleSizes    []int          `json:"sizes"`
	AverageSize    float64        `json:"avg_size"`
}

// Line renders the entry as `XXXX min max flags`.
func (s Suggestion) Line() string {
	return fmt.Sprintf("%s %d %d %d", s.Hex, s.MinSize, s.MaxSize, s.Flags)
}

// Summary holds the headline counts of a run.
type Summary struct {
	UniqueOpcodes int `json:"unique_opcodes"`
	Fixed         int `json:"fixed"`
	Variable      int `json:"variable"`
	Suggestions   int `json:"suggestions"`
}

// ProgressTracker is notified once per scanned packet.
type ProgressTracker interface {
	Increment()
}

// Options configures an Aggregator.
type Options struct {
	Direction   session.Direction
	SampleSizes int
}

// Aggregator accumulates observed sizes per opcode.
type Aggregator struct {
	direction   session.Direction
	sampleSizes int

	stats    map[uint16][]int // opcode -> sizes in log order
	variable map[uint16]struct{}
	unknown  map[uint16]struct{}
}

// NewAggregator creates an Aggregator. Zero options select RECV packets and
// five sample sizes.
func NewAggregator(opts Options) *Aggregator {
	if opts.Direction == "" {
		opts.Direction = session.DirectionRecv
	}
	if opts.SampleSizes <= 0 {
		opts.SampleSizes = DefaultSampleSizes
	}
	return &Aggregator{
		direction:   opts.Direction,
		sampleSizes: opts.SampleSizes,
		stats:       make(map[uint16][]int),
		variable:    make(map[uint16]struct{}),
		unknown:     make(map[uint16]struct{}),
	}
}

// Add records the packet if it has the profiled direction.
func (a *Aggregator) Add(p session.PacketRecord) bool {
	if p.Direction != a.direction {
		return false
	}
	a.stats[p.Opcode] = append(a.stats[p.Opcode], p.Size)
	return true
}

// AddAll records every packet of the log and returns how many were kept.
// tracker may be nil.
func (a *Aggregator) AddAll(packets []session.PacketRecord, tracker ProgressTracker) int {
	added := 0
	for _, p := range packets {
		if a.Add(p) {
			added++
		}
		if tracker != nil {
			tracker.Increment()
		}
	}
	return added
}

// Sizes returns the observed sizes of an opcode in log order.
func (a *Aggregator) Sizes(opcode uint16) []int {
	return a.stats[opcode]
}

// UniqueOpcodes returns the number of distinct opcodes seen.
func (a *Aggregator) UniqueOpcodes() int {
	return len(a.stats)
}

// Suggest classifies every opcode missing from knownSet and returns the
// suggestions sorted by opcode. knownSet may be nil.
func (a *Aggregator) Suggest(knownSet known.Set) []Suggestion {
	suggestions := make([]Suggestion, 0, len(a.stats))
	for opcode, sizes := range a.stats {
		if knownSet.Contains(opcode) {
			continue
		}
		s := Classify(opcode, sizes, a.sampleSizes)
		if s.Classification == Variable {
			a.variable[opcode] = struct{}{}
		}
		a.unknown[opcode] = struct{}{}
		suggestions = append(suggestions, s)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Opcode < suggestions[j].Opcode
	})
	return suggestions
}

// Summary returns the headline counts for a set of suggestions.
func (a *Aggregator) Summary(suggestions []Suggestion) Summary {
	return Summary{
		UniqueOpcodes: a.UniqueOpcodes(),
		Fixed:         len(suggestions) - len(a.variable),
		Variable:      len(a.variable),
		Suggestions:   len(suggestions),
	}
}

// VariableOpcodes returns the opcodes classified as variable, ascending.
func (a *Aggregator) VariableOpcodes() []uint16 {
	return sortedKeys(a.variable)
}

// UnknownOpcodes returns the opcodes that produced a suggestion, ascending.
func (a *Aggregator) UnknownOpcodes() []uint16 {
	return sortedKeys(a.unknown)
}

// Classify builds the suggestion for one opcode from its observed sizes.
// sizes must not be empty.
func Classify(opcode uint16, sizes []int, sampleSizes int) Suggestion {
	distinct := distinctSizes(sizes)
	minSize, maxSize, total := sizes[0], sizes[0], 0
	for _, size := range sizes {
		if size < minSize {
			minSize = size
		}
		if size > maxSize {
			maxSize = size
		}
		total += size
	}

	s := Suggestion{
		Opcode:      opcode,
		Hex:         fmt.Sprintf("%04X", opcode),
		Count:       len(sizes),
		AverageSize: float64(total) / float64(len(sizes)),
	}
	if len(distinct) == 1 {
		s.Classification = Fixed
		s.MinSize = minSize
		s.MaxSize = maxSize
	} else {
		s.Classification = Variable
		s.MinSize = VariableMin
		s.MaxSize = minSize
	}

	if len(distinct) > sampleSizes {
		distinct = distinct[:sampleSizes]
	}
	s.SampleSizes = distinct
	return s
}

// distinctSizes returns the distinct sizes in first-seen order.
func distinctSizes(sizes []int) []int {
	seen := make(map[int]struct{}, len(sizes))
	var out []int
	for _, size := range sizes {
		if _, ok := seen[size]; ok {
			continue
		}
		seen[size] = struct{}{}
		out = append(out, size)
	}
	return out
}

func sortedKeys(m map[uint16]struct{}) []uint16 {
	out := make([]uint16, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
