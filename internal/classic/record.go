package classic

import (
	"errors"
	"io"
)

// readRecord reads exactly r.reclenWords words (the file's fixed or
// declared record length) starting at the given word offset, into the
// reader's persistent scratch buffer. On a clean EOF the previous buffer
// contents are kept untouched and no diagnostic is raised, mirroring
// ClassReader::getRecord's "if (feof(cfp)) return;" short-circuit. A short,
// non-EOF read raises a diagnostic but still returns the bytes read.
func (r *Reader) readRecord(offsetWords int64) ([]byte, error) {
	n := int(r.reclenWords) * wordSize
	if n <= 0 || n > len(r.buf) {
		return nil, errors.New("record length out of range")
	}

	tmp := make([]byte, n)
	read, err := r.f.ReadAt(tmp, offsetWords*wordSize)
	if err != nil && errors.Is(err, io.EOF) {
		return r.buf[:n], nil
	}
	if err != nil {
		return nil, err
	}
	if read < n {
		r.warn(diagShortRead, "short read of record at word offset %d: got %d of %d bytes", offsetWords, read, n)
	}
	copy(r.buf, tmp)
	return r.buf[:n], nil
}

// readBytesAt performs an ad-hoc sized read at an arbitrary byte offset,
// used for Type-2's section-by-section and directory-extension reads which
// are not record-length aligned. Short reads and oversized requests are
// reported as diagnostics rather than causing undefined behavior; the
// returned slice is always exactly n bytes, zero-padded past what was read.
func (r *Reader) readBytesAt(offsetBytes int64, n int) ([]byte, error) {
	if n > len(r.buf) {
		r.warn(diagBufferTooSmall, "requested read of %d bytes exceeds scratch buffer of %d", n, len(r.buf))
	}
	out := make([]byte, n)
	read, err := r.f.ReadAt(out, offsetBytes)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if read < n {
		r.warn(diagShortRead, "short read at byte offset %d: got %d of %d bytes", offsetBytes, read, n)
	}
	return out, nil
}
