package classic

import (
	"encoding/binary"
	"math"
)

// Cursor is an advancing read pointer over a fixed in-memory buffer,
// generalized from the position-pointer reads BDInfo's clip-info parsing
// used to do to the word sizes CLASSIC records actually carry: 4-byte int,
// 8-byte long, 4-byte float and 8-byte double, all native little-endian,
// plus fixed-width trimmed text fields.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for sequential reads starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Seek repositions the cursor to an absolute byte offset.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) { c.pos += n }

// Remaining reports how many bytes are left to read.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.data) {
		return 0
	}
	return len(c.data) - c.pos
}

func (c *Cursor) take(n int) []byte {
	if c.pos < 0 || c.pos+n > len(c.data) {
		// Out-of-range reads (including a negative position from a
		// malformed section address) return a zero-padded window rather
		// than panicking: bytes that lie inside the buffer are kept and
		// the rest read as zero (all zero for a negative position),
		// matching the silently-garbage reads a truncated buffer produces
		// in the original C reader.
		out := make([]byte, n)
		if c.pos >= 0 && c.pos < len(c.data) {
			copy(out, c.data[c.pos:])
		}
		c.pos += n
		return out
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

// ReadInt32 reads a native 4-byte signed word (C `int`).
func (c *Cursor) ReadInt32() int32 {
	return int32(binary.LittleEndian.Uint32(c.take(4)))
}

// ReadInt64 reads a native 8-byte signed word (C `long int` on LP64).
func (c *Cursor) ReadInt64() int64 {
	return int64(binary.LittleEndian.Uint64(c.take(8)))
}

// ReadFloat32 reads an IEEE-754 single precision value (C `float`).
func (c *Cursor) ReadFloat32() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(c.take(4)))
}

// ReadFloat64 reads an IEEE-754 double precision value (C `double`).
func (c *Cursor) ReadFloat64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(c.take(8)))
}

// ReadTrimmedString reads n raw bytes and applies the CLASS trim() rule:
// leading whitespace is dropped, trailing whitespace and NUL padding is
// dropped, and the content between survives untouched.
func (c *Cursor) ReadTrimmedString(n int) string {
	return trimField(c.take(n))
}

// trimField reproduces ClassReader::trim(): skip leading blanks, then walk
// back from the end nulling trailing blanks (a NUL also counts as
// whitespace here since fixed-width fields are NUL-padded on disk).
func trimField(raw []byte) string {
	start := 0
	for start < len(raw) && isSpaceOrNul(raw[start]) {
		start++
	}
	end := len(raw)
	for end > start && isSpaceOrNul(raw[end-1]) {
		end--
	}
	return string(raw[start:end])
}

func isSpaceOrNul(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f' || b == 0
}
