package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/buemura/nscan/internal/config"
	"github.com/buemura/nscan/pkg/types"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	verboseFlag bool
	configFlag  string
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "nscan <url>",
	Short: "nscan: run nuclei against a URL and keep the raw results",
	Long: `nscan checks that the nuclei scanner is installed, runs it against a
single http:// or https:// URL with a bounded execution window, and saves
whatever it reports to outputs/<timestamp>-scan.txt.`,
	Example:           "  nscan https://example.com",
	Args:              validateTargetArg,
	PersistentPreRunE: loadConfig,
	RunE:              runScan,
}

// Execute runs the root command. Interrupts cancel a running scan.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	d := config.Defaults()

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default "+config.ConfigFilePath()+")")
	rootCmd.PersistentFlags().String("scanner", d.Scanner, "scanner executable name or path")
	rootCmd.PersistentFlags().Duration("probe-timeout", d.ProbeTimeout, "timeout for the scanner availability check")
	rootCmd.PersistentFlags().Duration("scan-timeout", d.ScanTimeout, "timeout for the scan itself")
	rootCmd.PersistentFlags().String("output-dir", d.OutputDir, "directory scan results are saved to")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resultsCmd)
}

func validateTargetArg(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("please provide a URL to scan")
	case len(args) > 1:
		return fmt.Errorf("expected exactly one URL, got %d arguments", len(args))
	}

	if _, err := types.ParseTarget(args[0]); err != nil {
		return fmt.Errorf("please provide a valid URL: %w", err)
	}
	return nil
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configFlag != "" {
		cfg, err = config.LoadFromFile(configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	config.ApplyFlags(cfg, cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appConfig = cfg
	return nil
}
