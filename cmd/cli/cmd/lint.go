package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ocpi-cost/core/lint"
	"ocpi-cost/core/ocpi"
	"ocpi-cost/internal/errors"
)

var (
	lintTariffPath  string
	lintOcpiVersion string
)

// lintCmd checks a tariff for authoring mistakes.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check a tariff for authoring mistakes",
	Long: `Lint a tariff structure: redundant elements and components, dimensions
without a fallback case, and restrictions better expressed at tariff level.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVarP(&lintTariffPath, "tariff", "t", "", "path to the tariff in JSON format (default: standard input)")
	lintCmd.Flags().StringVarP(&lintOcpiVersion, "ocpi-version", "o", "detect", "OCPI version of the input (v221, v211, detect)")
}

func runLint(cmd *cobra.Command, args []string) error {
	tariff, err := loadLintTariff()
	if err != nil {
		return err
	}

	warnings := lint.Lint(tariff)
	if len(warnings) == 0 {
		fmt.Println("No warnings.")
		return nil
	}

	for _, warning := range warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	return nil
}

func loadLintTariff() (*ocpi.Tariff, error) {
	version, err := ocpi.ParseVersion(lintOcpiVersion)
	if err != nil {
		return nil, err
	}

	if lintTariffPath == "" {
		return ocpi.DecodeTariff(os.Stdin, version)
	}

	file, err := os.Open(lintTariffPath)
	if err != nil {
		return nil, errors.Wrap(errors.KindInvalidInput, "opening tariff file", err)
	}
	defer file.Close()

	return ocpi.DecodeTariff(file, version)
}
