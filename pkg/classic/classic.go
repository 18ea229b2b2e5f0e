// Package classic is the host-facing wrapper around internal/classic: a
// single Run call that opens a CLASSIC file, walks its scans, and returns
// both structured results and a rendered report, the same split
// pkg/bdinfo draws between its internal scanner and its public API.
package classic

import (
	"context"
	"errors"
	"time"

	internalclassic "github.com/nradio/classicgo/internal/classic"
	"github.com/nradio/classicgo/internal/classicreport"
	"github.com/nradio/classicgo/internal/classicsettings"
)

// Stage represents a coarse progress stage for Run.
type Stage string

const (
	StageStarting        Stage = "starting"
	StageOpened          Stage = "opened"
	StageReadingScans    Stage = "reading_scans"
	StageRenderingReport Stage = "rendering_report"
	StageDone            Stage = "done"
)

// ProgressEvent is emitted when Run transitions between major phases.
type ProgressEvent struct {
	Stage      Stage
	Path       string
	ScanCount  int
	Elapsed    time.Duration
	OccurredAt time.Time
}

// Settings are library-facing reader and report controls.
type Settings struct {
	CaptureRawSections bool
	EmitDiagnostics    bool
	Verbose            bool
	ScanFilter         int
	ReportFileName     string
}

// DefaultSettings returns library defaults equivalent to CLI defaults.
func DefaultSettings() Settings {
	return fromInternalSettings(classicsettings.Default())
}

// Options configure one Run call for a single CLASSIC file.
type Options struct {
	Path       string
	ReportPath string
	Settings   Settings
	OnProgress func(ProgressEvent)
}

// ScanInfo is one scan's normalized header plus its axis and sample
// counts.
type ScanInfo struct {
	Header      internalclassic.SpectrumHeader
	NumChannels int
	NumSamples  int
}

// Result contains structured scan output plus rendered report content.
type Result struct {
	Format      internalclassic.FormatType
	Scans       []ScanInfo
	Report      string
	ReportPath  string
	Diagnostics []internalclassic.Diagnostic
}

// ErrScanOutOfRange mirrors classicModule's Python binding error for an
// out-of-range scan request.
var ErrScanOutOfRange = errors.New("scan number out of range")

// Run opens path, walks its directory, and returns structured scan output
// alongside a rendered report. The report is also written out through
// classicreport.WriteReport: to options.ReportPath if set, otherwise to
// Settings.ReportFileName, where "-" means stdout.
func Run(ctx context.Context, options Options) (Result, error) {
	if options.Path == "" {
		return Result{}, errors.New("path is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	emit(options.OnProgress, ProgressEvent{Stage: StageStarting, Path: options.Path, OccurredAt: time.Now()})

	cfg := toInternalSettings(options.Settings)
	r, err := internalclassic.OpenWithSettings(options.Path, cfg)
	if err != nil {
		return Result{}, err
	}
	defer r.Close()

	count, err := r.Count()
	if err != nil {
		return Result{}, err
	}

	emit(options.OnProgress, ProgressEvent{
		Stage:      StageOpened,
		Path:       options.Path,
		ScanCount:  count,
		OccurredAt: time.Now(),
	})

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	emit(options.OnProgress, ProgressEvent{Stage: StageReadingScans, Path: options.Path, OccurredAt: time.Now()})

	scans, err := readScans(r, count, cfg.ScanFilter)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	emit(options.OnProgress, ProgressEvent{Stage: StageRenderingReport, Path: options.Path, OccurredAt: time.Now()})

	reportPath, reportText, err := classicreport.WriteReport(options.ReportPath, r, cfg)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Format:      r.Format(),
		Scans:       scans,
		Report:      reportText,
		ReportPath:  reportPath,
		Diagnostics: r.Diagnostics(),
	}

	emit(options.OnProgress, ProgressEvent{
		Stage:      StageDone,
		Path:       options.Path,
		Elapsed:    time.Since(start),
		OccurredAt: time.Now(),
	})

	return result, nil
}

func readScans(r *internalclassic.Reader, count int, scanFilter int) ([]ScanInfo, error) {
	indices := make([]int, 0, count)
	if scanFilter > 0 {
		indices = append(indices, scanFilter)
	} else {
		for s := 1; s <= count; s++ {
			indices = append(indices, s)
		}
	}

	out := make([]ScanInfo, 0, len(indices))
	for _, scan := range indices {
		h, err := r.Header(scan)
		if err != nil {
			if errors.Is(err, internalclassic.ErrScanOutOfRange) {
				return nil, ErrScanOutOfRange
			}
			return nil, err
		}
		freqs, err := r.Frequencies(scan)
		if err != nil {
			return nil, err
		}
		samples, err := r.Samples(scan)
		if err != nil {
			return nil, err
		}
		out = append(out, ScanInfo{Header: h, NumChannels: len(freqs), NumSamples: len(samples)})
	}
	return out, nil
}

func emit(cb func(ProgressEvent), event ProgressEvent) {
	if cb != nil {
		cb(event)
	}
}

func fromInternalSettings(s classicsettings.Settings) Settings {
	return Settings{
		CaptureRawSections: s.CaptureRawSections,
		EmitDiagnostics:    s.EmitDiagnostics,
		Verbose:            s.Verbose,
		ScanFilter:         s.ScanFilter,
		ReportFileName:     s.ReportFileName,
	}
}

func toInternalSettings(s Settings) classicsettings.Settings {
	return classicsettings.Settings{
		CaptureRawSections: s.CaptureRawSections,
		EmitDiagnostics:    s.EmitDiagnostics,
		ReportFileName:     s.ReportFileName,
		Verbose:            s.Verbose,
		ScanFilter:         s.ScanFilter,
	}
}
