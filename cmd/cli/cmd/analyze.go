package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"ocpi-cost/core/output"
	"ocpi-cost/internal/config"
	"ocpi-cost/internal/errors"
)

var analyzeArgs tariffArgs

// analyzeCmd prints a breakdown of all calculated costs.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Break down the costs of a charge detail record",
	Long: `Analyze a charge detail record (CDR) against either a provided tariff
structure or a tariff contained in the CDR itself.

Shows a breakdown of all the calculated costs, per period and in total.`,
	RunE: runAnalyze,
}

func init() {
	analyzeArgs.register(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	report, cdr, err := analyzeArgs.price()
	if err != nil {
		return err
	}

	cfg := config.Get()
	format, ok := output.ParseFormat(pick(analyzeArgs.format, cfg.Output.DefaultFormat))
	if !ok {
		return errors.Newf(errors.KindConfig, "unknown output format %q (want table or json)", analyzeArgs.format)
	}

	formatter := output.New(format, cfg.Output.NoColor)
	return formatter.Render(os.Stdout, &output.Result{
		Report:     report,
		Cdr:        cdr,
		CdrName:    analyzeArgs.cdrName(),
		TariffName: analyzeArgs.tariffName(),
	})
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
