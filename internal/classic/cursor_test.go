package classic

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestCursorReadsNativeWords(t *testing.T) {
	buf := make([]byte, 32)
	i32, i64 := int32(-7), int64(-123456789012)
	binary.LittleEndian.PutUint32(buf[0:], uint32(i32))
	binary.LittleEndian.PutUint64(buf[4:], uint64(i64))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(3.5))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(2.71828))

	c := NewCursor(buf)
	if got := c.ReadInt32(); got != -7 {
		t.Fatalf("ReadInt32 = %d, want -7", got)
	}
	if got := c.ReadInt64(); got != -123456789012 {
		t.Fatalf("ReadInt64 = %d, want -123456789012", got)
	}
	if got := c.ReadFloat32(); got != 3.5 {
		t.Fatalf("ReadFloat32 = %v, want 3.5", got)
	}
	if got := c.ReadFloat64(); got != 2.71828 {
		t.Fatalf("ReadFloat64 = %v, want 2.71828", got)
	}
	if got, want := c.Pos(), 24; got != want {
		t.Fatalf("Pos() = %d, want %d", got, want)
	}
}

func TestCursorReadTrimmedString(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want string
	}{
		{"leading and trailing spaces", []byte("  hello   "), "hello"},
		{"nul padded", []byte("NGC1068\x00\x00\x00\x00\x00"), "NGC1068"},
		{"mixed padding", []byte(" CO(1-0)  \x00\x00"), "CO(1-0)"},
		{"all blank", []byte("            "), ""},
		{"no padding", []byte("fulllength12"), "fulllength12"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCursor(tc.raw)
			if got := c.ReadTrimmedString(len(tc.raw)); got != tc.want {
				t.Fatalf("ReadTrimmedString(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestCursorOutOfRangeReadsReturnZeroRatherThanPanic(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if got := c.ReadInt32(); got != 0x00030201 {
		t.Fatalf("ReadInt32 on short buffer = %#x, want the zero-padded little-endian value", got)
	}
	if got := c.ReadFloat64(); got != 0 {
		t.Fatalf("ReadFloat64 past end = %v, want 0", got)
	}
}

// FuzzCursor drives Cursor with the same "byte-steered op sequence" shape
// FuzzBitReader uses: the first byte picks an operation count, the rest feed
// a Seek offset (which a malformed section address can drive negative or
// past the end of the buffer) plus a run of reads. Nothing here should ever
// panic; out-of-range reads degrade to zero values instead.
func FuzzCursor(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0x08, 0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x02, 0x03})
	f.Add([]byte{0x05, 0x00, 0x00, 0x00, 0x00, 0x10})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<20 {
			return
		}
		c := NewCursor(data)
		if len(data) == 0 {
			_ = c.ReadInt32()
			return
		}

		ops := int(data[0] & 0x3F)
		idx := 1
		for i := 0; i < ops; i++ {
			var b byte
			if idx < len(data) {
				b = data[idx]
				idx++
			}
			switch b % 7 {
			case 0:
				c.Seek(int(int8(b)) * wordSize)
			case 1:
				c.Skip(int(b))
			case 2:
				_ = c.ReadInt32()
			case 3:
				_ = c.ReadInt64()
			case 4:
				_ = c.ReadFloat32()
			case 5:
				_ = c.ReadFloat64()
			case 6:
				_ = c.ReadTrimmedString(int(b))
			}
		}
	})
}
