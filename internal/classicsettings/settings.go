// Package classicsettings holds the reader-facing knobs shared by the
// library and CLI layers.
package classicsettings

// Settings controls optional reader behavior that has no bearing on the
// on-disk format itself.
type Settings struct {
	// CaptureRawSections keeps the raw bytes of section codes the decoder
	// does not interpret (-5..-9) on the descriptor instead of discarding
	// them.
	CaptureRawSections bool

	// MaxScratchWords overrides the record scratch buffer size, in 4-byte
	// words. Zero means use the format default (BUFSIZE/4).
	MaxScratchWords int

	// EmitDiagnostics controls whether non-fatal decode warnings (short
	// reads, unknown section codes, channel overflow) are collected at all.
	EmitDiagnostics bool

	// ReportFileName is where a generated report is written; "-" means
	// stdout.
	ReportFileName string

	// Verbose also prints each scan's channel and sample counts plus the
	// collected decode diagnostics, not just its header line.
	Verbose bool

	// ScanFilter restricts a report to one scan number; zero means all
	// scans.
	ScanFilter int
}

// Default returns the settings used when a caller supplies none.
func Default() Settings {
	return Settings{
		CaptureRawSections: true,
		MaxScratchWords:    0,
		EmitDiagnostics:    true,
		ReportFileName:     "-",
		Verbose:            false,
		ScanFilter:         0,
	}
}
