// Package feed frames and parses measurement packets from the Pi:
//
//	R:<ohms>,<b1>,<b2>,<b3>,<b4>\n
//
// e.g. R:4700.0,yellow,violet,red,gold
//
// The receiver is transport-agnostic: the host pushes whatever bytes the
// serial port produced this iteration and gets back the latest complete
// packet, if any. Missed packets are fine; last write wins.
package feed

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxBuffer caps accumulation between newlines. A well-formed packet is
// under 60 bytes; overflow means the sender is broken and the buffer is
// discarded rather than grown.
const MaxBuffer = 256

// Packet is one parsed measurement.
type Packet struct {
	Resistance float64
	Bands      [4]string
}

// Receiver accumulates bytes until newline framing yields packets.
type Receiver struct {
	buf  []byte
	last time.Time
	seen bool
}

func NewReceiver() *Receiver {
	return &Receiver{buf: make([]byte, 0, MaxBuffer)}
}

// Push feeds raw bytes in. It returns the last valid packet completed by
// this data, or ok=false if none. Malformed lines are skipped silently.
func (r *Receiver) Push(data []byte, now time.Time) (Packet, bool) {
	var (
		latest Packet
		ok     bool
	)

	for len(data) > 0 {
		nl := bytes.IndexByte(data, '\n')
		if nl < 0 {
			if len(r.buf)+len(data) > MaxBuffer {
				r.buf = r.buf[:0]
				break
			}
			r.buf = append(r.buf, data...)
			break
		}

		line := data[:nl]
		data = data[nl+1:]

		if len(r.buf)+len(line) > MaxBuffer {
			r.buf = r.buf[:0]
			continue
		}
		r.buf = append(r.buf, line...)

		if p, err := Parse(string(bytes.TrimRight(r.buf, "\r"))); err == nil {
			latest = p
			ok = true
			r.last = now
			r.seen = true
		}
		r.buf = r.buf[:0]
	}

	return latest, ok
}

// LastPacket returns when the most recent valid packet arrived. ok is
// false until the first packet.
func (r *Receiver) LastPacket() (time.Time, bool) {
	return r.last, r.seen
}

// Parse decodes one packet line without the trailing newline.
func Parse(line string) (Packet, error) {
	rest, found := strings.CutPrefix(line, "R:")
	if !found {
		return Packet{}, fmt.Errorf("feed: missing R: prefix in %q", line)
	}

	fields := strings.Split(rest, ",")
	if len(fields) != 5 {
		return Packet{}, fmt.Errorf("feed: want 5 fields, got %d in %q", len(fields), line)
	}

	ohms, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Packet{}, fmt.Errorf("feed: bad resistance %q: %w", fields[0], err)
	}
	if ohms < 0 {
		return Packet{}, fmt.Errorf("feed: negative resistance %v", ohms)
	}

	var p Packet
	p.Resistance = ohms
	for i := 0; i < 4; i++ {
		name := strings.TrimSpace(fields[i+1])
		if name == "" {
			return Packet{}, fmt.Errorf("feed: empty band %d in %q", i+1, line)
		}
		p.Bands[i] = name
	}
	return p, nil
}

// Format renders a packet as its wire line, newline included. Used by the
// Pi-side sender and by tests.
func Format(p Packet) string {
	return fmt.Sprintf("R:%.1f,%s,%s,%s,%s\n",
		p.Resistance, p.Bands[0], p.Bands[1], p.Bands[2], p.Bands[3])
}
