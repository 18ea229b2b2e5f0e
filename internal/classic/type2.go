package classic

// type2State holds everything specific to the variable-record (Type 2)
// on-disk layout: up to maxExt directory extensions whose slot count can
// double from one extension to the next.
type type2State struct {
	fd  fileDescriptor2
	ext [maxExt]int64
}

// openType2 reads the Type-2 file descriptor. The record length itself
// lives inside the descriptor (unlike Type 1's fixed 128 words), so it is
// read first and only then used to size the full descriptor record.
func (r *Reader) openType2() error {
	header, err := r.readBytesAt(0, 8)
	if err != nil {
		return err
	}
	reclen := NewCursor(header[4:8]).ReadInt32()
	if reclen <= 0 {
		return errNotClassFile
	}
	r.reclenWords = reclen

	data, err := r.readRecord(0)
	if err != nil {
		return err
	}

	c := NewCursor(data)
	c.Seek(4 + wordSize) // past magic and the reclen word already consumed above

	t := &type2State{}
	t.fd.Reclen = reclen
	t.fd.Kind = c.ReadInt32()
	t.fd.Vind = c.ReadInt32()
	t.fd.Lind = c.ReadInt32()
	t.fd.Flags = c.ReadInt32()
	t.fd.Xnext = c.ReadInt64()
	t.fd.Nextrec = c.ReadInt64()
	t.fd.Nextword = c.ReadInt32()
	t.fd.Lex1 = c.ReadInt32()
	t.fd.Nex = c.ReadInt32()
	t.fd.Gex = c.ReadInt32()

	if t.fd.Kind != 1 {
		return errNotClassFile
	}
	if t.fd.Gex != 10 && t.fd.Gex != 20 {
		return errBadExtensionGrowth
	}

	nex := int(t.fd.Nex)
	if nex > maxExt {
		r.warn(diagUnsupportedHead, "Type-2 descriptor declares %d extensions, more than the supported %d", nex, maxExt)
		nex = maxExt
	}
	for i := 0; i < nex; i++ {
		t.ext[i] = c.ReadInt64()
	}

	r.t2 = t
	return nil
}

// parseEntry2 decodes directory slot k from a directory extension buffer.
// Slot stride is 4*lind bytes.
func (r *Reader) parseEntry2(data []byte, k int) directoryEntry2 {
	stride := 4 * int(r.t2.fd.Lind)
	c := NewCursor(data)
	c.Seek(k * stride)

	var e directoryEntry2
	e.Xblock = c.ReadInt64()
	e.Xword = c.ReadInt32()
	e.Xnum = c.ReadInt64()
	e.Xver = c.ReadInt32()
	e.Xsourc = c.ReadTrimmedString(12)
	e.Xline = c.ReadTrimmedString(12)
	e.Xtel = c.ReadTrimmedString(12)
	e.Xdobs = c.ReadInt32()
	e.Xdred = c.ReadInt32()
	e.Xoff1 = c.ReadFloat32()
	e.Xoff2 = c.ReadFloat32()
	e.Xtype = c.ReadTrimmedString(4)
	e.Xkind = c.ReadInt32()
	e.Xqual = c.ReadInt32()
	e.Xposa = c.ReadInt32()
	e.Xscan = c.ReadInt64()
	e.Xsubs = c.ReadInt32()
	return e
}

// countType2 walks every directory extension. Extension i holds
// lex1*growth slots, where growth doubles once per extension when gex==20
// and stays at 1 when gex==10; this governs how many slots to read, not
// the debug-only byte-size variable the original computes alongside it
// and never uses for control flow. The extension's own byte position in
// the file is, confusingly, always computed against a fixed 1024-word
// block size here, while getHead/Frequencies/Samples locate the same
// extension using the descriptor's actual record length — a real
// inconsistency in the format this reader reproduces rather than silently
// "fixing", since on-disk files were written against it.
func (r *Reader) countType2() (int, error) {
	t := r.t2
	growth := 1
	nspec := 0
	for iext := 0; iext < int(t.fd.Nex); iext++ {
		nst := int(t.fd.Lex1) * growth
		isizeWords := nst * int(t.fd.Lind)
		pos := (t.ext[iext] - 1) * 1024

		data, err := r.readBytesAt(pos*wordSize, isizeWords*wordSize)
		if err != nil {
			return 0, err
		}
		for k := 0; k < nst; k++ {
			entry := r.parseEntry2(data, k)
			if entry.Xnum >= 1 {
				nspec++
			}
		}
		if t.fd.Gex == 20 {
			growth *= 2
		}
	}
	return nspec, nil
}

// findSlot locates which extension and in-extension slot a 1-based scan
// index falls in, walking extensions the same way countType2 does.
func (r *Reader) findSlot(scan int) (iext, jent int, ok bool) {
	t := r.t2
	growth := 1
	nspec := 0
	for i := 0; i < int(t.fd.Nex); i++ {
		nst := int(t.fd.Lex1) * growth
		for k := 0; k < nst; k++ {
			nspec++
			if nspec == scan {
				return i, k, true
			}
		}
		if t.fd.Gex == 20 {
			growth *= 2
		}
	}
	return 0, 0, false
}

// locateType2 finds the directory entry for scan, then reads and decodes
// its section table. Each section is read independently at its own byte
// offset rather than assembled into one contiguous block, matching
// Type2Reader's per-section fseek+fread.
func (r *Reader) locateType2(scan int) (directoryEntry2, ClassDescriptor, sectionTable2, int64, error) {
	t := r.t2
	iext, jent, ok := r.findSlot(scan)
	if !ok {
		return directoryEntry2{}, ClassDescriptor{}, sectionTable2{}, 0, errScanOutOfRange
	}

	growth := 1
	for i := 0; i < iext; i++ {
		if t.fd.Gex == 20 {
			growth *= 2
		}
	}
	nst := int(t.fd.Lex1) * growth
	isizeWords := nst * int(t.fd.Lind)
	extPos := (t.ext[iext] - 1) * int64(r.reclenWords)

	dirData, err := r.readBytesAt(extPos*wordSize, isizeWords*wordSize)
	if err != nil {
		return directoryEntry2{}, ClassDescriptor{}, sectionTable2{}, 0, err
	}
	entry := r.parseEntry2(dirData, jent)

	pos := (entry.Xblock-1)*int64(r.reclenWords) + int64(entry.Xword) - 1

	head, err := r.readRecord(pos)
	if err != nil {
		return directoryEntry2{}, ClassDescriptor{}, sectionTable2{}, 0, err
	}

	c := NewCursor(head)
	var sect sectionTable2
	c.Skip(4) // ident
	sect.Version = c.ReadInt32()
	sect.Nsec = c.ReadInt32()
	sect.Nword = c.ReadInt64()
	sect.Adata = c.ReadInt64()
	sect.Ldata = c.ReadInt64()
	sect.Xnum = c.ReadInt64()
	nsec := int(sect.Nsec)
	if nsec > 10 {
		nsec = 10
	}
	for i := 0; i < nsec; i++ {
		sect.SecCod[i] = c.ReadInt32()
	}
	for i := 0; i < nsec; i++ {
		sect.SecLen[i] = c.ReadInt64()
	}
	for i := 0; i < nsec; i++ {
		sect.SecAdr[i] = c.ReadInt64()
	}

	var cdesc ClassDescriptor
	for i := 0; i < nsec; i++ {
		size := int(sect.SecLen[i]) * wordSize
		secPos := (pos + sect.SecAdr[i] - 1) * wordSize
		sectionData, err := r.readBytesAt(secPos, size)
		if err != nil {
			return directoryEntry2{}, ClassDescriptor{}, sectionTable2{}, 0, err
		}
		r.decodeSection(&cdesc, sectionData, SectionCode(sect.SecCod[i]), 1, int32(sect.SecLen[i]))
	}

	return entry, cdesc, sect, pos, nil
}

func (e directoryEntry2) identity() scanIdentity {
	return scanIdentity{
		Xsourc: e.Xsourc,
		Xline:  e.Xline,
		Xtel:   e.Xtel,
		Xdobs:  e.Xdobs,
		Xkind:  e.Xkind,
		Xscan:  e.Xscan,
	}
}
