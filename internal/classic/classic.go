// Package classic reads the CLASSIC binary container format used by
// GILDAS/CLASS to archive single-dish radio-astronomy spectra. It
// auto-detects which of the two incompatible on-disk layouts (Type 1's
// fixed 128-word records, Type 2's variable, descriptor-declared record
// length) a file uses and exposes scans through a single Reader.
package classic

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nradio/classicgo/internal/classicsettings"
)

// Errors returned by the public API, per the CLASSIC error-handling policy:
// only open/detect/bounds failures are returned, everything else becomes a
// Diagnostic.
var (
	ErrOpenFailed     = errors.New("failed to open file")
	ErrUnknownFormat  = errors.New("unrecognized file type")
	ErrScanOutOfRange = errors.New("scan number out of range")
)

var (
	errNotClassFile       = errors.New("not a file written by CLASS")
	errBadExtensionGrowth = errors.New("problem with extension growth")
	errScanOutOfRange     = ErrScanOutOfRange
)

// FormatType identifies which on-disk layout a file uses.
type FormatType int

const (
	FormatUnknown FormatType = 0
	FormatType1   FormatType = 1
	FormatType2   FormatType = 2
)

// DetectType reads a file's 4-byte magic and reports its CLASSIC format
// type without opening a full Reader, mirroring fileType()'s standalone
// role in the original implementation.
func DetectType(path string) (FormatType, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("%w: %s", ErrOpenFailed, err)
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, err)
	}

	switch string(magic[:2]) {
	case "1A":
		return FormatType1, nil
	case "2A":
		return FormatType2, nil
	default:
		return FormatUnknown, ErrUnknownFormat
	}
}

// Reader provides random access to the scans in one CLASSIC file. It is
// not safe for concurrent use: callers needing parallelism should open
// one Reader per goroutine.
type Reader struct {
	f           *os.File
	format      FormatType
	reclenWords int32
	buf         []byte

	t1 *type1State
	t2 *type2State

	count          int
	counted        bool
	settings       classicsettings.Settings
	diagnostics    []Diagnostic
	lastDescriptor ClassDescriptor
}

// Open detects a CLASSIC file's format and prepares a Reader over it.
func Open(path string) (*Reader, error) {
	return OpenWithSettings(path, classicsettings.Default())
}

// OpenWithSettings is Open with explicit reader-facing settings.
func OpenWithSettings(path string, settings classicsettings.Settings) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOpenFailed, err)
	}

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, err)
	}

	scratchLen := bufSize
	if settings.MaxScratchWords > 0 {
		scratchLen = settings.MaxScratchWords * wordSize
	}

	r := &Reader{
		f:        f,
		buf:      make([]byte, scratchLen),
		settings: settings,
	}

	switch string(magic[:2]) {
	case "1A":
		r.format = FormatType1
		if err := r.openType1(); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, err)
		}
	case "2A":
		r.format = FormatType2
		if err := r.openType2(); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, err)
		}
	default:
		f.Close()
		return nil, ErrUnknownFormat
	}

	return r, nil
}

// Close releases the underlying file handle. It is idempotent.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// Format reports which on-disk layout this reader detected.
func (r *Reader) Format() FormatType { return r.format }

// FileSize reports the size in bytes of the underlying archive file.
func (r *Reader) FileSize() (int64, error) {
	fi, err := r.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// maxChannels is the largest data vector this reader's scratch buffer can
// hold when read as 4-byte floats, reflecting any Settings.MaxScratchWords
// override made at Open time.
func (r *Reader) maxChannels() int { return len(r.buf) / 4 }

// Count returns the number of scans in the directory, walking it once and
// caching the result.
func (r *Reader) Count() (int, error) {
	if r.counted {
		return r.count, nil
	}

	var n int
	var err error
	switch r.format {
	case FormatType1:
		n, err = r.countType1()
	case FormatType2:
		n, err = r.countType2()
	default:
		return 0, ErrUnknownFormat
	}
	if err != nil {
		return 0, err
	}

	r.count = n
	r.counted = true
	return n, nil
}

func (r *Reader) checkScan(scan int) error {
	n, err := r.Count()
	if err != nil {
		return err
	}
	if scan < 1 || scan > n {
		return ErrScanOutOfRange
	}
	return nil
}

// Header returns the normalized spectrum header for one scan (1..Count()).
func (r *Reader) Header(scan int) (SpectrumHeader, error) {
	if err := r.checkScan(scan); err != nil {
		return SpectrumHeader{}, err
	}

	switch r.format {
	case FormatType1:
		entry, cdesc, _, err := r.locateType1(scan)
		if err != nil {
			return SpectrumHeader{}, err
		}
		r.lastDescriptor = cdesc
		return buildSpectrumHeader(scan, entry.identity(), cdesc), nil
	case FormatType2:
		entry, cdesc, _, _, err := r.locateType2(scan)
		if err != nil {
			return SpectrumHeader{}, err
		}
		r.lastDescriptor = cdesc
		return buildSpectrumHeader(scan, entry.identity(), cdesc), nil
	default:
		return SpectrumHeader{}, ErrUnknownFormat
	}
}

// Frequencies returns the per-channel frequency axis for one scan.
func (r *Reader) Frequencies(scan int) ([]float64, error) {
	if err := r.checkScan(scan); err != nil {
		return nil, err
	}

	switch r.format {
	case FormatType1:
		entry, cdesc, _, err := r.locateType1(scan)
		if err != nil {
			return nil, err
		}
		rchan, restf, fres, ndata := axisParams(entry.Xkind, cdesc)
		if ndata > r.maxChannels() {
			r.warn(diagChannelOverflow, "scan %d: %d channels exceeds maximum of %d", scan, ndata, r.maxChannels())
			return nil, nil
		}
		return freqVector(ndata, restf, rchan, fres), nil
	case FormatType2:
		entry, cdesc, _, _, err := r.locateType2(scan)
		if err != nil {
			return nil, err
		}
		rchan, restf, fres, ndata := axisParams(entry.Xkind, cdesc)
		if ndata > r.maxChannels() {
			r.warn(diagChannelOverflow, "scan %d: %d channels exceeds maximum of %d", scan, ndata, r.maxChannels())
		}
		return freqVector(ndata, restf, rchan, fres), nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Samples returns the scan's raw data, widened from float32 to float64.
func (r *Reader) Samples(scan int) ([]float64, error) {
	if err := r.checkScan(scan); err != nil {
		return nil, err
	}

	switch r.format {
	case FormatType1:
		entry, cdesc, sect, err := r.locateType1(scan)
		if err != nil {
			return nil, err
		}
		ndata := dataCount(entry.Xkind, cdesc)
		if ndata > r.maxChannels() {
			r.warn(diagChannelOverflow, "scan %d: %d channels exceeds maximum of %d", scan, ndata, r.maxChannels())
		}
		blockPos := int64(entry.Xblock-1) * int64(r.reclenWords)
		dataOffset := (int64(sect.Nhead) - 1) * wordSize
		raw, err := r.readBytesAt(blockPos*wordSize+dataOffset, ndata*4)
		if err != nil {
			return nil, err
		}
		return dataVector(raw, ndata), nil
	case FormatType2:
		entry, cdesc, sect, pos, err := r.locateType2(scan)
		if err != nil {
			return nil, err
		}
		ndata := dataCount(entry.Xkind, cdesc)
		if ndata > r.maxChannels() {
			r.warn(diagChannelOverflow, "scan %d: %d channels exceeds maximum of %d", scan, ndata, r.maxChannels())
		}
		dataPos := (pos + sect.Adata - 1) * wordSize
		raw, err := r.readBytesAt(dataPos, int(sect.Ldata)*4)
		if err != nil {
			return nil, err
		}
		return dataVector(raw, ndata), nil
	default:
		return nil, ErrUnknownFormat
	}
}

// LastDescriptor returns the ClassDescriptor accumulated by the most
// recent Header call, including any raw captured sections the decoder
// does not interpret. Frequencies and Samples do not update it.
func (r *Reader) LastDescriptor() ClassDescriptor {
	return r.lastDescriptor
}

// DumpRecord renders the most recently read fixed-size record as a grid of
// decimal words, mirroring ClassReader::dumpRecord's debug output.
func (r *Reader) DumpRecord() string {
	const wordsPerLine = 8
	n := int(r.reclenWords)
	c := NewCursor(r.buf[:n*wordSize])
	var out []byte
	for i := 0; i < n; i++ {
		word := c.ReadInt32()
		out = fmt.Appendf(out, "[%03d] %10d ", i, word)
		if i%wordsPerLine == wordsPerLine-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}
