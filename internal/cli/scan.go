package cli

import (
	"errors"
	"fmt"

	"github.com/buemura/nscan/internal/output"
	"github.com/buemura/nscan/internal/scanner"
	"github.com/buemura/nscan/internal/store"
	"github.com/buemura/nscan/pkg/types"
	"github.com/spf13/cobra"
)

const installHint = "https://docs.projectdiscovery.io/tools/nuclei/install"

var errScanFailed = errors.New("scan failed or returned no output")

func runScan(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; failures are no longer usage errors
	// and are reported through the printer.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	target, err := types.ParseTarget(args[0])
	if err != nil {
		return err
	}

	p := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), verboseFlag)
	ctx := cmd.Context()

	version, err := scanner.Probe(ctx, appConfig.Scanner, appConfig.ProbeTimeout)
	if err != nil {
		p.Errorf("%s is not installed or not in PATH: %v", appConfig.Scanner, err)
		p.Errorf("Please install nuclei first: %s", installHint)
		return err
	}
	p.Debugf("found %s: %s", appConfig.Scanner, version)

	p.Infof("Starting scan for: %s", target)

	opts := scanner.Options{
		Binary:      appConfig.Scanner,
		ScanTimeout: appConfig.ScanTimeout,
	}
	res := scanner.NewRunner(opts, p).Run(ctx, target)
	p.Debugf("scanner finished: outcome=%s exit=%d duration=%s", res.Outcome, res.ExitCode, res.Duration)

	if _, err := persist(res, store.New(appConfig.OutputDir, nil), p); err != nil {
		p.Warnf("Scan completed with errors or warnings")
		return err
	}

	p.Successf("Scan completed successfully")
	return nil
}

// persist saves the scanner output when the run produced any, and reports the
// saved path.
func persist(res scanner.Result, st *store.Store, p *output.Printer) (string, error) {
	if !res.Outcome.HasOutput() {
		p.Errorf("%s (%s)", errScanFailed, res.Outcome)
		return "", fmt.Errorf("%w: %s", errScanFailed, res.Outcome)
	}

	path, err := st.Save(res.Output)
	if err != nil {
		p.Errorf("error saving scan results: %v", err)
		return "", fmt.Errorf("saving scan results: %w", err)
	}

	p.Infof("Scan results saved as %s", path)
	return path, nil
}
