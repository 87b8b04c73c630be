package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"ocpi-cost/core/output"
	"ocpi-cost/internal/config"
	"ocpi-cost/internal/errors"
)

var validateArgs tariffArgs

// validateCmd compares calculated totals against the totals the CDR
// reports.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a charge detail record against its own totals",
	Long: `Validate a charge detail record (CDR) against either a provided tariff
structure or a tariff contained in the CDR itself.

Shows the differences between the calculated totals and the totals contained
in the provided CDR. Exits non-zero when they diverge after rounding at the
configured tolerance scale.`,
	RunE: runValidate,
}

func init() {
	validateArgs.register(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	report, cdr, err := validateArgs.price()
	if err != nil {
		return err
	}

	cfg := config.Get()
	diff := output.BuildDiff(report, cdr, cfg.Pricing.ToleranceScale)

	format, ok := output.ParseFormat(pick(validateArgs.format, cfg.Output.DefaultFormat))
	if !ok {
		return errors.Newf(errors.KindConfig, "unknown output format %q (want table or json)", validateArgs.format)
	}

	formatter := output.New(format, cfg.Output.NoColor)
	if err := formatter.Render(os.Stdout, &output.Result{
		Report:     report,
		Cdr:        cdr,
		CdrName:    validateArgs.cdrName(),
		TariffName: validateArgs.tariffName(),
		Diff:       diff,
	}); err != nil {
		return err
	}

	if !diff.Valid {
		return errors.New(errors.KindInvalidInput, "calculated totals do not match the CDR")
	}
	return nil
}
