package classic

// decodeSection fills cdesc from one section of an observation block.
// data is the full obsblock buffer, addr is the section's 1-based word
// address within it, and length is the section's declared word count
// (-2 uses it to tell an old-style General section apart from one that
// also carries xunit, -3 uses it to pick between its two layouts, and raw
// capture uses it as the number of words to keep). Mirrors ClassReader::fillHeader exactly,
// including its three-branches-share-one-switch shape.
func (r *Reader) decodeSection(cdesc *ClassDescriptor, data []byte, code SectionCode, addr int32, length int32) {
	c := NewCursor(data)
	c.Seek(int(addr-1) * wordSize)

	switch code {
	case SectionGeneral:
		cdesc.UT = c.ReadFloat64()
		cdesc.ST = c.ReadFloat64()
		cdesc.Az = c.ReadFloat32()
		cdesc.El = c.ReadFloat32()
		cdesc.Tau = c.ReadFloat32()
		cdesc.Tsys = c.ReadFloat32()
		cdesc.Time = c.ReadFloat32()
		if length > 9 {
			cdesc.Xunit = c.ReadInt32()
		} else {
			cdesc.Xunit = 0
		}

	case SectionPosition:
		if length == 17 {
			cdesc.Source = c.ReadTrimmedString(12)
			cdesc.Epoch = c.ReadFloat32()
			cdesc.Lam = c.ReadFloat64()
			cdesc.Bet = c.ReadFloat64()
			cdesc.Lamof = c.ReadFloat32()
			cdesc.Betof = c.ReadFloat32()
			cdesc.Proj = c.ReadInt32()
			cdesc.SL0P = c.ReadFloat64()
			cdesc.SB0P = c.ReadFloat64()
			cdesc.SK0P = c.ReadFloat64()
		} else {
			cdesc.Source = c.ReadTrimmedString(12)
			cdesc.System = c.ReadInt32()
			cdesc.Epoch = c.ReadFloat32()
			cdesc.Proj = c.ReadInt32()
			cdesc.Lam = c.ReadFloat64()
			cdesc.Bet = c.ReadFloat64()
			cdesc.Projang = c.ReadFloat64()
			cdesc.Lamof = c.ReadFloat32()
			cdesc.Betof = c.ReadFloat32()
		}

	case SectionSpectroscopic:
		cdesc.Line = c.ReadTrimmedString(12)
		cdesc.Restf = c.ReadFloat64()
		cdesc.Nchan = c.ReadInt32()
		cdesc.Rchan = c.ReadFloat32()
		cdesc.Fres = c.ReadFloat32()
		cdesc.Foff = c.ReadFloat32()
		cdesc.Vres = c.ReadFloat32()
		cdesc.Voff = c.ReadFloat32()
		cdesc.Badl = c.ReadFloat32()
		cdesc.Image = c.ReadFloat64()
		cdesc.Vtype = c.ReadInt32()
		cdesc.Doppler = c.ReadFloat64()

	case SectionBaseline, SectionScanNumbers, SectionPlotLimits, SectionSwitching, SectionGaussFit:
		r.captureRaw(cdesc, data, code, addr, length)

	case SectionContinuumDrift:
		cdesc.Freq = c.ReadFloat64()
		cdesc.Width = c.ReadFloat32()
		cdesc.Npoin = c.ReadInt32()
		cdesc.Rpoin = c.ReadFloat32()
		cdesc.Tref = c.ReadFloat32()
		cdesc.Aref = c.ReadFloat32()
		cdesc.Apos = c.ReadFloat32()
		cdesc.Tres = c.ReadFloat32()
		cdesc.Ares = c.ReadFloat32()
		cdesc.Badc = c.ReadFloat32()
		cdesc.Ctype = c.ReadInt32()
		cdesc.Cimag = c.ReadFloat64()
		cdesc.Colla = c.ReadFloat32()
		cdesc.Colle = c.ReadFloat32()

	case SectionCalibration:
		cdesc.Beeff = c.ReadFloat32()
		cdesc.Foeff = c.ReadFloat32()
		cdesc.Gaini = c.ReadFloat32()
		cdesc.H2omm = c.ReadFloat32()
		cdesc.Pamb = c.ReadFloat32()
		cdesc.Tamb = c.ReadFloat32()
		cdesc.Tatms = c.ReadFloat32()
		cdesc.Tchop = c.ReadFloat32()
		cdesc.Tcold = c.ReadFloat32()
		cdesc.Taus = c.ReadFloat32()
		cdesc.Taui = c.ReadFloat32()
		cdesc.Tatmi = c.ReadFloat32()
		cdesc.Trec = c.ReadFloat32()
		cdesc.Cmode = c.ReadInt32()
		cdesc.Atfac = c.ReadFloat32()
		cdesc.Alti = c.ReadFloat32()
		cdesc.Count[0] = c.ReadFloat32()
		cdesc.Count[1] = c.ReadFloat32()
		cdesc.Count[2] = c.ReadFloat32()
		cdesc.Lcalof = c.ReadFloat32()
		cdesc.Bcalof = c.ReadFloat32()
		cdesc.Geolong = c.ReadFloat64()
		cdesc.Geolat = c.ReadFloat64()

	default:
		r.warn(diagUnknownSection, "cannot handle CLASS section code %d", int32(code))
		r.captureRaw(cdesc, data, code, addr, length)
	}
}

// captureRaw stashes the raw bytes of a section the decoder doesn't
// interpret, keyed by section code, when settings ask for it. Answers
// "what did the reader skip" without requiring a second pass over the file.
func (r *Reader) captureRaw(cdesc *ClassDescriptor, data []byte, code SectionCode, addr, length int32) {
	if !r.settings.CaptureRawSections {
		return
	}
	start := int(addr-1) * wordSize
	end := start + int(length)*wordSize
	if start < 0 || start > len(data) {
		return
	}
	if end > len(data) {
		end = len(data)
	}
	if end < start {
		end = start
	}
	if cdesc.RawSections == nil {
		cdesc.RawSections = make(map[int32][]byte)
	}
	raw := make([]byte, end-start)
	copy(raw, data[start:end])
	cdesc.RawSections[int32(code)] = raw
}
