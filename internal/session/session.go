// Package session loads captured packet logs produced by the capture tool.
package session

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tturner/pktprof/internal/errors"
)

// Direction tags a packet relative to the capturing endpoint.
type Direction string

const (
	DirectionRecv    Direction = "RECV"
	DirectionSend    Direction = "SEND"
	DirectionUnknown Direction = "UNKNOWN"
)

// PacketRecord is one captured packet as written by the capture tool.
type PacketRecord struct {
	Opcode    uint16    `json:"opcode"`
	Size      int       `json:"size"`
	Direction Direction `json:"direction"`
	Timestamp string    `json:"timestamp,omitempty"`
	Data      string    `json:"data,omitempty"` // hex encoded payload
}

// Log is a captured session.
type Log struct {
	Packets []PacketRecord `json:"packets"`
}

// Payload decodes the hex payload. Whitespace between bytes is allowed.
func (p PacketRecord) Payload() ([]byte, error) {
	if p.Data == "" {
		return nil, nil
	}
	compact := strings.Join(strings.Fields(p.Data), "")
	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("decode payload of opcode 0x%04X: %w", p.Opcode, err)
	}
	return data, nil
}

// TimestampOrNA returns the capture timestamp, or "N/A" when absent.
func (p PacketRecord) TimestampOrNA() string {
	if p.Timestamp == "" {
		return "N/A"
	}
	return p.Timestamp
}

// Load reads and decodes a session log from disk.
func Load(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInputError(err, path)
	}
	log, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapMalformedError(err, path)
	}
	return log, nil
}

// Decode parses a session log document.
func Decode(r io.Reader) (*Log, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var log Log
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, err
	}
	for i := range log.Packets {
		if log.Packets[i].Direction == "" {
			log.Packets[i].Direction = DirectionUnknown
		}
	}
	return &log, nil
}

// Matching returns the packets with the given opcode and direction, in log order.
func (l *Log) Matching(opcode uint16, dir Direction) []PacketRecord {
	var out []PacketRecord
	for _, p := range l.Packets {
		if p.Opcode == opcode && p.Direction == dir {
			out = append(out, p)
		}
	}
	return out
}
