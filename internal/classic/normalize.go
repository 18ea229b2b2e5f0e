package classic

import (
	"math"
	"time"
)

// julianDayOffsetUnixEpoch is the MJD of 1970-01-01: obssecond's xdobs
// argument is already offset by 60549 (MJD of CLASS's own day-zero) before
// this is subtracted, matching ClassReader::obssecond.
const julianDayOffsetUnixEpoch = 40587

// obssecond converts a CLASS (mjdn, ut) pair into a Unix time. ut is in
// radians on a 24-hour dial; mjdn is already offset by the caller.
func obssecond(mjdn int64, ut float64) time.Time {
	elapsed := (mjdn - julianDayOffsetUnixEpoch) * 86400
	elapsed += int64(math.Floor(ut * 3600.0 * 12.0 / math.Pi))
	return time.Unix(elapsed, 0).UTC()
}

// freqVector builds the per-channel frequency axis. A zero resolution
// degenerates to a 1-based channel index, matching the original's
// df==0 fallback rather than dividing by zero.
func freqVector(nchan int, f0, rchan, df float64) []float64 {
	f := make([]float64, nchan)
	if df == 0 {
		for k := range f {
			f[k] = float64(k + 1)
		}
		return f
	}
	for k := range f {
		f[k] = (float64(k+1)-rchan)*df + f0
	}
	return f
}

// dataVector widens raw 4-byte float samples to float64.
func dataVector(raw []byte, nchan int) []float64 {
	c := NewCursor(raw)
	out := make([]float64, nchan)
	for k := range out {
		out[k] = float64(c.ReadFloat32())
	}
	return out
}

// scanIdentity is the subset of a directory entry buildSpectrumHeader needs;
// Type-1 and Type-2 entries carry the same fields under different word
// widths, so the front ends project into this before normalizing.
type scanIdentity struct {
	Xsourc string
	Xline  string
	Xtel   string
	Xdobs  int32
	Xkind  int32
	Xscan  int64
}

// buildSpectrumHeader projects a filled ClassDescriptor plus the owning
// directory entry into the caller-facing SpectrumHeader, reproducing
// Type1Reader::getHead/Type2Reader::getHead's shared tail exactly: the
// spectrum/continuum branch on xkind, the lam/bet offset order (lamof is
// applied using the pre-offset bet), and the UTC conversion.
func buildSpectrumHeader(id int, entry scanIdentity, cdesc ClassDescriptor) SpectrumHeader {
	var restf, lo, fres float64
	if Kind(entry.Xkind) == KindSpectrum {
		restf = cdesc.Restf
		lo = (cdesc.Restf + cdesc.Image) / 2.0
		fres = float64(cdesc.Fres)
	} else {
		restf = float64(cdesc.Tref)
		lo = (cdesc.Freq + cdesc.Cimag) / 2.0
		fres = float64(cdesc.Tres)
	}

	lam := cdesc.Lam
	bet := cdesc.Bet
	lam += float64(cdesc.Lamof) / math.Cos(bet)
	bet += float64(cdesc.Betof)

	utc := obssecond(int64(entry.Xdobs)+60549, cdesc.UT)

	return SpectrumHeader{
		ID:     id,
		ScanNo: int(entry.Xscan),
		Target: entry.Xsourc,
		Line:   entry.Xline,
		Instr:  entry.Xtel,
		RA:     lam * 180.0 / math.Pi,
		Dec:    bet * 180.0 / math.Pi,
		FLO:    lo,
		F0:     restf,
		DF:     fres,
		VS:     float64(cdesc.Voff),
		DT:     float64(cdesc.Time),
		Tsys:   float64(cdesc.Tsys),
		UTC:    utc,
	}
}

// axisParams picks the frequency-axis inputs for the spectrum/continuum
// branch, reproducing getFreq's rchan/restf/fres/ndata split on xkind.
func axisParams(xkind int32, cdesc ClassDescriptor) (rchan, restf, fres float64, ndata int) {
	if Kind(xkind) == KindSpectrum {
		return float64(cdesc.Rchan), cdesc.Restf, float64(cdesc.Fres), int(cdesc.Nchan)
	}
	return float64(cdesc.Rpoin), float64(cdesc.Tref), float64(cdesc.Tres), int(cdesc.Npoin)
}

// dataCount picks the sample count for the spectrum/continuum branch,
// reproducing getData's ndata split on xkind.
func dataCount(xkind int32, cdesc ClassDescriptor) int {
	if Kind(xkind) == KindSpectrum {
		return int(cdesc.Nchan)
	}
	return int(cdesc.Npoin)
}
