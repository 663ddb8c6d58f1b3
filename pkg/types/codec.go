package types

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/diary/pkg/chain"
)

// Compile-time interface check: RecordCodec must implement chain.Codec.
var _ chain.Codec[Record] = RecordCodec{}

// RecordCodec writes a Record as
//
//	{"day": D, "month": M, "year": Y, "note": "TEXT"}
//
// The note is written verbatim. A '"' inside a note is not escaped, so such
// a note does not survive a round trip: decoding ends the value at the
// first quote and drops the rest.
type RecordCodec struct{}

// Encode implements chain.Codec.
func (RecordCodec) Encode(r Record, dst []byte) (int, error) {
	s := fmt.Sprintf(`{"day": %d, "month": %d, "year": %d, "note": "%s"}`,
		r.Day, r.Month, r.Year, r.Note)
	if len(s) > len(dst) {
		return 0, chain.ErrShortBuffer
	}
	return copy(dst, s), nil
}

// Decode implements chain.Codec. Whitespace between tokens is optional and
// the four fields must appear in order.
func (RecordCodec) Decode(src []byte) (Record, error) {
	s := fieldScanner{src: src}
	var r Record

	s.expect("{")
	r.Day = s.intField("day")
	s.expect(",")
	r.Month = s.intField("month")
	s.expect(",")
	r.Year = s.intField("year")
	s.expect(",")
	r.Note = s.stringField("note")
	// Text after the note's closing quote is not inspected.

	if s.err != nil {
		return Record{}, s.err
	}
	return r, nil
}

// fieldScanner walks one fragment. The first failure is kept in err and
// turns every later call into a no-op.
type fieldScanner struct {
	src []byte
	pos int
	err error
}

func (s *fieldScanner) fail(format string, args ...any) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: %s at offset %d", chain.ErrDecode, fmt.Sprintf(format, args...), s.pos)
	}
}

func (s *fieldScanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *fieldScanner) expect(tok string) {
	if s.err != nil {
		return
	}
	s.skipSpace()
	if !bytes.HasPrefix(s.src[s.pos:], []byte(tok)) {
		s.fail("expected %q", tok)
		return
	}
	s.pos += len(tok)
}

func (s *fieldScanner) key(name string) {
	s.expect(`"` + name + `"`)
	s.expect(":")
}

func (s *fieldScanner) intField(name string) int {
	s.key(name)
	if s.err != nil {
		return 0
	}
	s.skipSpace()
	start := s.pos
	if s.pos < len(s.src) && (s.src[s.pos] == '-' || s.src[s.pos] == '+') {
		s.pos++
	}
	for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
	n, err := strconv.Atoi(string(s.src[start:s.pos]))
	if err != nil {
		s.pos = start
		s.fail("malformed %s", name)
		return 0
	}
	return n
}

func (s *fieldScanner) stringField(name string) string {
	s.key(name)
	s.expect(`"`)
	if s.err != nil {
		return ""
	}
	end := bytes.IndexByte(s.src[s.pos:], '"')
	if end < 0 {
		s.fail("unterminated %s", name)
		return ""
	}
	v := string(s.src[s.pos : s.pos+end])
	s.pos += end + 1
	return v
}
