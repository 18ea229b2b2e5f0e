package classic

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// fixtureWriter is a small scratch-buffer builder used only by tests to
// assemble synthetic CLASSIC records field-by-field, the same way the
// production Cursor reads them back field-by-field.
type fixtureWriter struct {
	buf []byte
}

func newFixtureWriter(size int) *fixtureWriter {
	return &fixtureWriter{buf: make([]byte, size)}
}

func (w *fixtureWriter) i32(off int, v int32) {
	binary.LittleEndian.PutUint32(w.buf[off:], uint32(v))
}

func (w *fixtureWriter) i64(off int, v int64) {
	binary.LittleEndian.PutUint64(w.buf[off:], uint64(v))
}

func (w *fixtureWriter) f32(off int, v float32) {
	binary.LittleEndian.PutUint32(w.buf[off:], math.Float32bits(v))
}

func (w *fixtureWriter) f64(off int, v float64) {
	binary.LittleEndian.PutUint64(w.buf[off:], math.Float64bits(v))
}

func (w *fixtureWriter) str(off int, s string, n int) {
	copy(w.buf[off:off+n], s)
}

// writeSpectroscopySections writes a Position (-3, len 17) section at
// base+76, a Spectroscopic (-4) section at base+156, and four float32
// samples at base+236 — the same layout, relative to base, that both the
// Type-1 and Type-2 fixtures below use for their observation record, since nothing
// about decodeSection depends on which format located the bytes.
func writeSpectroscopySections(w *fixtureWriter, base int) {
	off := base + 76
	w.str(off, "NGC1068", 12)
	off += 12
	w.f32(off, 2000.0) // Epoch
	off += 4
	w.f64(off, 1.0) // Lam (radians)
	off += 8
	w.f64(off, 0.5) // Bet (radians)
	off += 8
	w.f32(off, 0.01) // Lamof
	off += 4
	w.f32(off, 0.02) // Betof
	off += 4
	w.i32(off, 0) // Proj
	off += 4
	w.f64(off, 0) // SL0P
	off += 8
	w.f64(off, 0) // SB0P
	off += 8
	w.f64(off, 0) // SK0P

	off = base + 156
	w.str(off, "CO(1-0)", 12)
	off += 12
	w.f64(off, 115271.2) // Restf
	off += 8
	w.i32(off, 4) // Nchan
	off += 4
	w.f32(off, 2.0) // Rchan
	off += 4
	w.f32(off, 0.5) // Fres
	off += 4
	w.f32(off, 0) // Foff
	off += 4
	w.f32(off, 0) // Vres
	off += 4
	w.f32(off, 0) // Voff
	off += 4
	w.f32(off, 0) // Badl
	off += 4
	w.f64(off, 113271.2) // Image
	off += 8
	w.i32(off, 0) // Vtype
	off += 4
	w.f64(off, 0) // Doppler

	off = base + 236
	w.f32(off, 10.0)
	off += 4
	w.f32(off, 20.0)
	off += 4
	w.f32(off, 30.0)
	off += 4
	w.f32(off, 40.0)
}

// buildType1Fixture assembles a minimal, valid 3-record (512 bytes each)
// Type-1 CLASSIC file with one directory entry pointing at one scan,
// carrying a Position and a Spectroscopic section plus four data samples.
func buildType1Fixture() []byte {
	const reclen = 128 // words

	rec0 := newFixtureWriter(reclen * wordSize)
	rec0.str(0, "1A", 4)
	rec0.i32(12, 1) // Nex
	rec0.i32(16, 3) // Xnext (nst)
	rec0.i32(20, 2) // ext[0]

	rec1 := newFixtureWriter(reclen * wordSize) // directory record
	rec1.i32(0, 3)                              // Xblock
	rec1.i32(4, 1)                              // Xnum
	rec1.i32(8, 1)                               // Xver
	rec1.str(12, "NGC1068", 12)
	rec1.str(24, "CO(1-0)", 12)
	rec1.str(36, "IRAM30M", 12)
	rec1.i32(76, 7) // Xscan
	// remaining entry-0 fields and the whole of entry 1 stay zero, which
	// gives entry 1 an Xver of 0 and ends the directory walk there.

	rec2 := newFixtureWriter(reclen * wordSize) // observation record
	rec2.i32(4, 1)   // Nbl
	rec2.i32(16, 60) // Nhead
	rec2.i32(28, 2)  // Nsec
	rec2.i32(36, -3) // SecCod[0]
	rec2.i32(40, -4) // SecCod[1]
	rec2.i32(44, 17) // SecLen[0]
	rec2.i32(48, 17) // SecLen[1]
	rec2.i32(52, 20) // SecAdr[0]
	rec2.i32(56, 40) // SecAdr[1]
	writeSpectroscopySections(rec2, 0)

	out := append([]byte{}, rec0.buf...)
	out = append(out, rec1.buf...)
	out = append(out, rec2.buf...)
	return out
}

// buildType2Fixture assembles a minimal, valid 3-record (4096 bytes each)
// Type-2 CLASSIC file: reclen is chosen as 1024 words so the directory's
// fixed-1024-word addressing and the section/data reclen-based addressing
// land on the same extension, sidestepping the format's own inconsistency
// between the two for this synthetic fixture.
func buildType2Fixture() []byte {
	const reclen = 1024 // words
	const lind = 26     // words per directory entry slot

	rec0 := newFixtureWriter(reclen * wordSize) // file descriptor record
	rec0.str(0, "2A", 4)
	rec0.i32(4, reclen)
	rec0.i32(8, 1)   // Kind
	rec0.i32(16, lind)
	rec0.i32(44, 2)  // Lex1 (slots per extension)
	rec0.i32(48, 1)  // Nex
	rec0.i32(52, 10) // Gex
	rec0.i64(56, 2)  // ext[0]

	rec1 := newFixtureWriter(reclen * wordSize) // directory extension record
	dirOff := 0                                 // extension starts at byte 0 of record 1
	rec1.i64(dirOff+0, 3)                       // Xblock
	rec1.i32(dirOff+8, 1)                       // Xword
	rec1.i64(dirOff+12, 1)                      // Xnum
	rec1.i32(dirOff+20, 1)                      // Xver
	rec1.str(dirOff+24, "NGC1068", 12)
	rec1.str(dirOff+36, "CO(1-0)", 12)
	rec1.str(dirOff+48, "IRAM30M", 12)
	rec1.i64(dirOff+92, 7) // Xscan
	// slot 1 (offset 4*lind=104) stays zero, so Xnum==0 there and it is
	// not counted as an occupied scan.

	rec2 := newFixtureWriter(reclen * wordSize) // section-table + data record
	rec2.i32(4, 0)   // Version
	rec2.i32(8, 2)   // Nsec
	rec2.i64(20, 62) // Adata
	rec2.i64(28, 4)  // Ldata
	rec2.i32(44, -3) // SecCod[0]
	rec2.i32(48, -4) // SecCod[1]
	rec2.i64(52, 17) // SecLen[0]
	rec2.i64(60, 17) // SecLen[1]
	rec2.i64(68, 22) // SecAdr[0]
	rec2.i64(76, 42) // SecAdr[1]
	// The Type-2 section table runs to byte 84, so the sections start two
	// words later than in the Type-1 record to avoid overlapping it.
	writeSpectroscopySections(rec2, 8)

	out := append([]byte{}, rec0.buf...)
	out = append(out, rec1.buf...)
	out = append(out, rec2.buf...)
	return out
}

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.class")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestDetectType(t *testing.T) {
	p1 := writeFixture(t, buildType1Fixture())
	if ft, err := DetectType(p1); err != nil || ft != FormatType1 {
		t.Fatalf("DetectType(type1) = %v, %v; want FormatType1, nil", ft, err)
	}

	p2 := writeFixture(t, buildType2Fixture())
	if ft, err := DetectType(p2); err != nil || ft != FormatType2 {
		t.Fatalf("DetectType(type2) = %v, %v; want FormatType2, nil", ft, err)
	}

	junk := writeFixture(t, []byte("XXXXjunkjunkjunk"))
	if _, err := DetectType(junk); err == nil {
		t.Fatal("DetectType(junk) = nil error, want ErrUnknownFormat")
	}
}

func TestType1ReaderEndToEnd(t *testing.T) {
	path := writeFixture(t, buildType1Fixture())

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if r.Format() != FormatType1 {
		t.Fatalf("Format() = %v, want FormatType1", r.Format())
	}

	n, err := r.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("Count() = %d, want 1", n)
	}

	h, err := r.Header(1)
	if err != nil {
		t.Fatalf("Header(1): %v", err)
	}
	if h.Target != "NGC1068" || h.Line != "CO(1-0)" || h.Instr != "IRAM30M" {
		t.Fatalf("unexpected identity: %+v", h)
	}
	if h.ScanNo != 7 {
		t.Fatalf("ScanNo = %d, want 7", h.ScanNo)
	}
	if h.F0 != 115271.2 {
		t.Fatalf("F0 = %v, want 115271.2", h.F0)
	}

	freqs, err := r.Frequencies(1)
	if err != nil {
		t.Fatalf("Frequencies(1): %v", err)
	}
	if len(freqs) != 4 {
		t.Fatalf("len(Frequencies) = %d, want 4", len(freqs))
	}
	// rchan=2.0, so channel 2 (1-based) should read back exactly f0.
	if math.Abs(freqs[1]-115271.2) > 1e-9 {
		t.Fatalf("Frequencies[1] = %v, want 115271.2", freqs[1])
	}

	samples, err := r.Samples(1)
	if err != nil {
		t.Fatalf("Samples(1): %v", err)
	}
	want := []float64{10, 20, 30, 40}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("Samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}

	if _, err := r.Header(0); err != ErrScanOutOfRange {
		t.Fatalf("Header(0) err = %v, want ErrScanOutOfRange", err)
	}
	if _, err := r.Header(2); err != ErrScanOutOfRange {
		t.Fatalf("Header(2) err = %v, want ErrScanOutOfRange", err)
	}

	if dump := r.DumpRecord(); dump == "" {
		t.Fatal("DumpRecord() = empty string")
	}
}

func TestType2ReaderEndToEnd(t *testing.T) {
	path := writeFixture(t, buildType2Fixture())

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if r.Format() != FormatType2 {
		t.Fatalf("Format() = %v, want FormatType2", r.Format())
	}

	n, err := r.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("Count() = %d, want 1", n)
	}

	h, err := r.Header(1)
	if err != nil {
		t.Fatalf("Header(1): %v", err)
	}
	if h.Target != "NGC1068" || h.ScanNo != 7 {
		t.Fatalf("unexpected identity: %+v", h)
	}

	samples, err := r.Samples(1)
	if err != nil {
		t.Fatalf("Samples(1): %v", err)
	}
	want := []float64{10, 20, 30, 40}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("Samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}

	if _, err := r.Header(5); err != ErrScanOutOfRange {
		t.Fatalf("Header(5) err = %v, want ErrScanOutOfRange", err)
	}
}

func TestOpenRejectsUnknownFormat(t *testing.T) {
	path := writeFixture(t, []byte("XXXX0000000000000000"))
	if _, err := Open(path); err == nil {
		t.Fatal("Open(junk) = nil error, want ErrUnknownFormat")
	}
}

func TestOpenMissingFileFails(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "does-not-exist.class")); err == nil {
		t.Fatal("Open(missing) = nil error, want ErrOpenFailed")
	}
}
