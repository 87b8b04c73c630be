// Package cmd provides the CLI commands for ocpi-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ocpi-cost/internal/config"
	"ocpi-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "ocpi-cost",
	Short: "Price EV charging sessions against OCPI tariffs",
	Long: `ocpi-cost computes the monetary breakdown of an electric-vehicle
charging session against an OCPI tariff structure.

It reads a charge detail record (CDR) and a tariff in OCPI 2.2.1 or 2.1.1
JSON and produces per-period, per-dimension and session totals.

Examples:
  ocpi-cost analyze -c cdr.json -t tariff.json
  ocpi-cost validate -c cdr.json -z Europe/Berlin
  cat cdr.json | ocpi-cost analyze -o v211`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ocpi-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	logging.Logger = logging.With(zap.String("run_id", uuid.NewString()))
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ocpi-cost version 0.1.0")
	},
}
