// Package classicreport renders a CLASSIC file's directory and spectra as
// the plain-text report cmd/classicinfo prints or saves, adapted from the
// teacher's disc/playlist report writer: a strings.Builder body, "-" for
// stdout, and a timestamped backup when the target report file already
// exists.
package classicreport

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nradio/classicgo/internal/classic"
	"github.com/nradio/classicgo/internal/classicsettings"
	"github.com/nradio/classicgo/internal/util"
)

// WriteReport renders every scan r's directory holds (or just settings.
// ScanFilter, if nonzero), writes it to path (or settings.ReportFileName
// if path is empty), and returns both the file name actually written to
// ("-" for stdout) and the rendered text itself.
func WriteReport(path string, r *classic.Reader, settings classicsettings.Settings) (string, string, error) {
	reportName := settings.ReportFileName
	if path != "" {
		reportName = path
	}
	if reportName == "" {
		reportName = "-"
	}

	if reportName != "-" {
		if _, err := os.Stat(reportName); err == nil {
			backup := fmt.Sprintf("%s.%d", reportName, time.Now().Unix())
			_ = os.Rename(reportName, backup)
		}
	}

	output, err := buildReport(r, settings)
	if err != nil {
		return reportName, "", err
	}

	if reportName == "-" {
		_, err := os.Stdout.WriteString(output)
		return reportName, output, err
	}
	return reportName, output, os.WriteFile(reportName, []byte(output), 0o644)
}

func buildReport(r *classic.Reader, settings classicsettings.Settings) (string, error) {
	var b strings.Builder

	count, err := r.Count()
	if err != nil {
		return "", err
	}

	format := "Type 1"
	if r.Format() == classic.FormatType2 {
		format = "Type 2"
	}
	fmt.Fprintf(&b, "%-16s%s\n", "Format:", format)
	if size, err := r.FileSize(); err == nil {
		fmt.Fprintf(&b, "%-16s%s\n", "Size:", util.FormatFileSize(float64(size), true))
	}
	fmt.Fprintf(&b, "%-16s%s\n\n\n", "Scans:", util.FormatNumber(int64(count)))

	scans := []int{}
	if settings.ScanFilter > 0 {
		scans = append(scans, settings.ScanFilter)
	} else {
		for s := 1; s <= count; s++ {
			scans = append(scans, s)
		}
	}

	fmt.Fprintf(&b, "%-4s %-8s %-14s %-14s %-14s %8s %8s %10s %10s %7s %7s %5s %6s %s\n",
		"id", "scan", "target", "line", "instr", "RA", "Dec", "fLO", "f0", "df", "vs", "dt", "tsys", "utc")

	for _, scan := range scans {
		h, err := r.Header(scan)
		if err != nil {
			fmt.Fprintf(&b, "scan %d: %s\n", scan, err)
			continue
		}
		fmt.Fprintf(&b, "%s\n", h.String())
		fmt.Fprintf(&b, "  integration: %s\n", util.FormatTime(h.DT, false))

		if settings.Verbose {
			freqs, err := r.Frequencies(scan)
			if err != nil {
				fmt.Fprintf(&b, "  frequencies: %s\n", err)
			} else {
				fmt.Fprintf(&b, "  channels: %s\n", util.FormatNumber(int64(len(freqs))))
			}

			samples, err := r.Samples(scan)
			if err != nil {
				fmt.Fprintf(&b, "  samples: %s\n", err)
			} else {
				fmt.Fprintf(&b, "  samples: %s\n", util.FormatNumber(int64(len(samples))))
			}

			for _, d := range r.Diagnostics() {
				fmt.Fprintf(&b, "  [%s] %s\n", d.Kind, d.Message)
			}
		}
	}

	return b.String(), nil
}
