package classic

import "fmt"

// String renders a SpectrumHeader the way SpectrumHeader::print() does:
// fixed-width id/scan, quoted target/line/instrument, then the numeric
// fields at the original's column widths, and UTC as a gmtime-style
// timestamp.
func (h SpectrumHeader) String() string {
	return fmt.Sprintf("%4d %8d '%-12s' '%-12s' '%-12s' %8.4f %8.4f %10.3f %10.3f %7.3f %+7.1f %5.1f %6.1f '%s'",
		h.ID, h.ScanNo, h.Target, h.Line, h.Instr,
		h.RA, h.Dec, h.FLO, h.F0, h.DF, h.VS, h.DT, h.Tsys,
		h.UTC.Format("2006-01-02 15:04:05"))
}
