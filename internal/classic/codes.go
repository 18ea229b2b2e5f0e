package classic

// SectionCode identifies one of the fixed observation-block section kinds a
// CLASS scan's section table can point at. Mirrors the stream type enum
// BDInfo keys its per-stream dispatch on, generalized to CLASSIC's section
// codes instead of MPEG stream type bytes.
type SectionCode int32

const (
	SectionGeneral        SectionCode = -2
	SectionPosition       SectionCode = -3
	SectionSpectroscopic  SectionCode = -4
	SectionBaseline       SectionCode = -5
	SectionScanNumbers    SectionCode = -6
	SectionPlotLimits     SectionCode = -7
	SectionSwitching      SectionCode = -8
	SectionGaussFit       SectionCode = -9
	SectionContinuumDrift SectionCode = -10
	SectionCalibration    SectionCode = -14
)

// Supported reports whether the decoder knows how to fill cdesc fields for
// this section code. The remaining codes are recognized GILDAS section
// kinds that CLASSIC readers have historically left unimplemented.
func (c SectionCode) Supported() bool {
	switch c {
	case SectionGeneral, SectionPosition, SectionSpectroscopic, SectionContinuumDrift, SectionCalibration:
		return true
	}
	return false
}

func (c SectionCode) String() string {
	switch c {
	case SectionGeneral:
		return "general"
	case SectionPosition:
		return "position"
	case SectionSpectroscopic:
		return "spectroscopic"
	case SectionBaseline:
		return "baseline"
	case SectionScanNumbers:
		return "scan-numbers"
	case SectionPlotLimits:
		return "plot-limits"
	case SectionSwitching:
		return "switching"
	case SectionGaussFit:
		return "gauss-fit"
	case SectionContinuumDrift:
		return "continuum-drift"
	case SectionCalibration:
		return "calibration"
	default:
		return "unknown"
	}
}

// Kind distinguishes the two observation types a CLASS directory entry can
// describe: xkind 0 is a spectroscopic scan, anything else a continuum
// drift/position scan.
type Kind int32

const (
	KindSpectrum  Kind = 0
	KindContinuum Kind = 1
)
