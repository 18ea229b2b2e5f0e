package classic

// type1State holds everything specific to the fixed-record (Type 1)
// on-disk layout: a single directory extension and 128-word records.
type type1State struct {
	fd  fileDescriptor1
	ext [maxExt]int32
}

// openType1 reads the Type-1 file descriptor (magic, directory extension
// pointer, first-free-slot marker) from the first record.
func (r *Reader) openType1() error {
	r.reclenWords = 128
	data, err := r.readRecord(0)
	if err != nil {
		return err
	}

	c := NewCursor(data)
	c.Skip(4) // magic, already matched during detection

	t := &type1State{}
	t.fd.Next = c.ReadInt32()
	t.fd.Lex = c.ReadInt32()
	t.fd.Nex = c.ReadInt32()
	t.fd.Xnext = c.ReadInt32()

	nex := int(t.fd.Nex)
	if nex > maxExt {
		r.warn(diagUnsupportedHead, "Type-1 descriptor declares %d extensions, more than the supported %d", nex, maxExt)
		nex = maxExt
	}
	for i := 0; i < nex; i++ {
		t.ext[i] = c.ReadInt32()
	}

	r.t1 = t
	return nil
}

// parseEntry1 decodes directory slot k from a 128-word directory record.
// Slot stride is reclen/4 words (32 words = 128 bytes) since each record
// holds exactly four entries.
func (r *Reader) parseEntry1(data []byte, k int) directoryEntry1 {
	stride := (int(r.reclenWords) / 4) * wordSize
	c := NewCursor(data)
	c.Seek(k * stride)

	var e directoryEntry1
	e.Xblock = c.ReadInt32()
	e.Xnum = c.ReadInt32()
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
	e.Xscan = c.ReadInt32()
	e.Xposa = c.ReadInt32()
	return e
}

// countType1 walks the single directory extension until it runs past the
// declared free-slot marker or hits the first slot that isn't a valid,
// occupied entry (xver==1 && 0<xnum<nst) — which ends the directory at
// the first empty slot, breaking both the per-record loop over the four
// slots and the outer walk over records. Mirrors Type1Reader::getDirectory.
func (r *Reader) countType1() (int, error) {
	t := r.t1
	nst := int(t.fd.Xnext)
	pos := int64(t.ext[0]-1) * int64(r.reclenWords)

	nrec := 2
	nspec := 0
	recIndex := int64(0)
	for nrec < nst {
		data, err := r.readRecord(pos + recIndex*int64(r.reclenWords))
		if err != nil {
			return 0, err
		}
		recIndex++

		for k := 0; k < 4; k++ {
			entry := r.parseEntry1(data, k)
			if entry.Xver == 1 && entry.Xnum > 0 && int(entry.Xnum) < nst {
				nspec++
			} else {
				nrec = nst
				break
			}
		}
		nrec++
	}
	return nspec, nil
}

// locateType1 finds the directory entry and fully assembled observation
// block for one scan, then walks its section table into a fresh
// ClassDescriptor. Shared by Header/Frequencies/Samples so the section
// table is only parsed once per call instead of being duplicated per
// accessor the way the original C++ triplicates getHead/getFreq/getData.
func (r *Reader) locateType1(scan int) (directoryEntry1, ClassDescriptor, sectionTable1, error) {
	t := r.t1
	pos := int64(t.ext[0]-1) * int64(r.reclenWords)
	nrec := (scan - 1) / 4
	k := (scan - 1) % 4

	dirData, err := r.readRecord(pos + int64(nrec)*int64(r.reclenWords))
	if err != nil {
		return directoryEntry1{}, ClassDescriptor{}, sectionTable1{}, err
	}
	entry := r.parseEntry1(dirData, k)

	blockPos := int64(entry.Xblock-1) * int64(r.reclenWords)
	first, err := r.readRecord(blockPos)
	if err != nil {
		return directoryEntry1{}, ClassDescriptor{}, sectionTable1{}, err
	}

	c := NewCursor(first)
	var sect sectionTable1
	c.Skip(4) // ident
	sect.Nbl = c.ReadInt32()
	sect.Bytes = c.ReadInt32()
	sect.Adr = c.ReadInt32()
	sect.Nhead = c.ReadInt32()
	sect.Len = c.ReadInt32()
	sect.Ientry = c.ReadInt32()
	sect.Nsec = c.ReadInt32()
	sect.Obsnum = c.ReadInt32()
	nsec := int(sect.Nsec)
	if nsec > 4 {
		nsec = 4
	}
	for i := 0; i < nsec; i++ {
		sect.SecCod[i] = c.ReadInt32()
	}
	for i := 0; i < nsec; i++ {
		sect.SecLen[i] = c.ReadInt32()
	}
	for i := 0; i < nsec; i++ {
		sect.SecAdr[i] = c.ReadInt32()
	}

	recBytes := int(r.reclenWords) * wordSize
	obsSize := int(sect.Nbl) * recBytes
	if obsSize > len(r.buf) {
		r.warn(diagBufferTooSmall, "observation block of %d bytes exceeds scratch buffer", obsSize)
	}
	obsblock := make([]byte, obsSize)
	copy(obsblock, first)
	if sect.Nbl > 1 {
		extra := obsSize - recBytes
		more, err := r.readBytesAt((blockPos+int64(r.reclenWords))*wordSize, extra)
		if err != nil {
			return directoryEntry1{}, ClassDescriptor{}, sectionTable1{}, err
		}
		copy(obsblock[recBytes:], more)
	}

	var cdesc ClassDescriptor
	for i := 0; i < nsec; i++ {
		r.decodeSection(&cdesc, obsblock, SectionCode(sect.SecCod[i]), sect.SecAdr[i], sect.SecLen[i])
	}

	return entry, cdesc, sect, nil
}

func (e directoryEntry1) identity() scanIdentity {
	return scanIdentity{
		Xsourc: e.Xsourc,
		Xline:  e.Xline,
		Xtel:   e.Xtel,
		Xdobs:  e.Xdobs,
		Xkind:  e.Xkind,
		Xscan:  int64(e.Xscan),
	}
}
