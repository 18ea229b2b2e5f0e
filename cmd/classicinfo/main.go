// Command classicinfo reads a CLASSIC (GILDAS/CLASS) spectrum archive and
// prints a directory report, or dumps one scan's raw record for
// debugging. Flags are parsed with cobra/pflag rather than the teacher's
// hand-rolled stdlib flag.Value tricks, giving those dependencies an
// actual job in this rewrite.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	internalclassic "github.com/nradio/classicgo/internal/classic"
	pkgclassic "github.com/nradio/classicgo/pkg/classic"
)

var version = "dev"

var (
	flagScan       int
	flagVerbose    bool
	flagOutput     string
	flagFormat     string
	flagSelfUpdate bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "classicinfo [path]",
		Short:         "Report the directory and spectra of a CLASS CLASSIC file",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagSelfUpdate {
				return runSelfUpdate(cmd.Context())
			}
			if len(args) == 0 {
				return fmt.Errorf("path is required")
			}
			return runReport(args[0])
		},
	}

	root.PersistentFlags().IntVarP(&flagScan, "scan", "s", 0, "restrict the report to one scan number (1-based); 0 means all scans")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "also print each scan's channel and sample counts plus any decode diagnostics")
	root.PersistentFlags().StringVarP(&flagOutput, "output", "o", "-", "report destination; \"-\" writes to stdout")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "report encoding: \"text\" or \"json\"")
	root.Flags().BoolVar(&flagSelfUpdate, "self-update", false, "update classicinfo to the latest release")

	root.AddCommand(newDumpCmd())

	return root
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "dump [path]",
		Short:         "Print the raw CLASSIC record backing one scan, as a word grid",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
}

func runReport(path string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("unsupported --format %q (want \"text\" or \"json\")", flagFormat)
	}

	settings := pkgclassic.DefaultSettings()
	settings.Verbose = flagVerbose
	settings.ScanFilter = flagScan
	if flagFormat == "text" {
		settings.ReportFileName = flagOutput
	} else {
		// Suppress the text report body; the JSON encoding below is the
		// report for this run.
		settings.ReportFileName = os.DevNull
	}

	result, err := pkgclassic.Run(context.Background(), pkgclassic.Options{
		Path:     path,
		Settings: settings,
	})
	if err != nil {
		return err
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Kind, d.Message)
	}

	if flagFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.ReportPath != "-" {
		fmt.Printf("report written to %s (%d scans)\n", result.ReportPath, len(result.Scans))
	}
	return nil
}

func runDump(path string) error {
	scan := flagScan
	if scan == 0 {
		scan = 1
	}

	r, err := internalclassic.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err := r.Header(scan); err != nil {
		return err
	}
	fmt.Println(r.DumpRecord())
	return nil
}

func runSelfUpdate(ctx context.Context) error {
	if version == "" || version == "dev" {
		return fmt.Errorf("self-update is only available in release builds")
	}

	if _, err := semver.ParseTolerant(version); err != nil {
		return fmt.Errorf("could not parse version: %w", err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug("nradio/classicgo"))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for nradio/classicgo/%s could not be found from github repository", version)
	}

	if latest.LessOrEqual(version) {
		fmt.Printf("Current binary is the latest version: %s\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Printf("Successfully updated to version: %s\n", latest.Version())
	return nil
}
