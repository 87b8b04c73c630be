package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ocpi-cost/core/explain"
	"ocpi-cost/core/ocpi"
	"ocpi-cost/internal/errors"
)

var (
	explainTariffPath  string
	explainOcpiVersion string
)

// explainCmd renders a tariff as prose.
var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Describe a tariff in plain language",
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&explainTariffPath, "tariff", "t", "", "path to the tariff in JSON format (default: standard input)")
	explainCmd.Flags().StringVarP(&explainOcpiVersion, "ocpi-version", "o", "detect", "OCPI version of the input (v221, v211, detect)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	tariff, err := loadExplainTariff()
	if err != nil {
		return err
	}

	explanation := explain.Explain(tariff)

	for i, element := range explanation.Elements {
		fmt.Printf("Element %d:\n", i+1)

		if len(element.Restrictions) == 0 {
			fmt.Println("  applies always")
		} else {
			fmt.Println("  applies when:")
			for _, condition := range element.Restrictions {
				fmt.Printf("    - %s\n", condition)
			}
		}

		components := element.Components
		if components.Energy != nil {
			fmt.Printf("  energy: %s %s/kWh\n", components.Energy.Display(), tariff.Currency)
		}
		if components.Time != nil {
			fmt.Printf("  charging time: %s %s/h\n", components.Time.Display(), tariff.Currency)
		}
		if components.Parking != nil {
			fmt.Printf("  parking time: %s %s/h\n", components.Parking.Display(), tariff.Currency)
		}
		if components.Flat != nil {
			fmt.Printf("  flat fee: %s %s\n", components.Flat.Display(), tariff.Currency)
		}
	}

	return nil
}

func loadExplainTariff() (*ocpi.Tariff, error) {
	version, err := ocpi.ParseVersion(explainOcpiVersion)
	if err != nil {
		return nil, err
	}

	if explainTariffPath == "" {
		return ocpi.DecodeTariff(os.Stdin, version)
	}

	file, err := os.Open(explainTariffPath)
	if err != nil {
		return nil, errors.Wrap(errors.KindInvalidInput, "opening tariff file", err)
	}
	defer file.Close()

	return ocpi.DecodeTariff(file, version)
}
