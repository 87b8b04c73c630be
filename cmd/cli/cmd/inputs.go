package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ocpi-cost/core/calendar"
	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/pricer"
	"ocpi-cost/internal/config"
	"ocpi-cost/internal/errors"
)

// tariffArgs are the input flags shared by analyze and validate.
type tariffArgs struct {
	cdrPath     string
	tariffPath  string
	timezone    string
	ocpiVersion string
	format      string
}

func (a *tariffArgs) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.cdrPath, "cdr", "c", "", "path to the CDR in JSON format (default: standard input)")
	cmd.Flags().StringVarP(&a.tariffPath, "tariff", "t", "", "path to the tariff in JSON format (default: the tariff contained in the CDR)")
	cmd.Flags().StringVarP(&a.timezone, "timezone", "z", "", "IANA timezone for local times in the tariff (default: detected, then config)")
	cmd.Flags().StringVarP(&a.ocpiVersion, "ocpi-version", "o", "detect", "OCPI version of the inputs (v221, v211, detect)")
	cmd.Flags().StringVarP(&a.format, "format", "f", "", "output format (table, json)")
}

func (a *tariffArgs) cdrName() string {
	if a.cdrPath == "" {
		return "<stdin>"
	}
	return filepath.Base(a.cdrPath)
}

func (a *tariffArgs) tariffName() string {
	if a.tariffPath == "" {
		return "<CDR-tariff>"
	}
	return filepath.Base(a.tariffPath)
}

// zone resolves the zone flag against configuration: an explicit flag wins,
// then country detection when the config enables it, then the configured
// default zone.
func (a *tariffArgs) zone(cdr *ocpi.Cdr) string {
	if a.timezone != "" {
		return a.timezone
	}
	cfg := config.Get()
	if cfg.Pricing.DetectZone {
		if detected, ok := calendar.ZoneFromCountry(cdr.CountryCode); ok {
			return detected
		}
	}
	return cfg.Pricing.DefaultZone
}

// loadCdr reads the CDR from the given path or standard input.
func (a *tariffArgs) loadCdr() (*ocpi.Cdr, error) {
	version, err := ocpi.ParseVersion(a.ocpiVersion)
	if err != nil {
		return nil, err
	}

	if a.cdrPath == "" {
		return ocpi.DecodeCdr(os.Stdin, version)
	}

	file, err := os.Open(a.cdrPath)
	if err != nil {
		return nil, errors.Wrap(errors.KindInvalidInput, "opening CDR file", err)
	}
	defer file.Close()

	return ocpi.DecodeCdr(file, version)
}

// loadTariff reads the tariff file, when one was given.
func (a *tariffArgs) loadTariff() (*ocpi.Tariff, error) {
	if a.tariffPath == "" {
		return nil, nil
	}

	version, err := ocpi.ParseVersion(a.ocpiVersion)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(a.tariffPath)
	if err != nil {
		return nil, errors.Wrap(errors.KindInvalidInput, "opening tariff file", err)
	}
	defer file.Close()

	return ocpi.DecodeTariff(file, version)
}

// price loads all inputs and runs the pricer.
func (a *tariffArgs) price() (*pricer.Report, *ocpi.Cdr, error) {
	cdr, err := a.loadCdr()
	if err != nil {
		return nil, nil, err
	}

	tariff, err := a.loadTariff()
	if err != nil {
		return nil, nil, err
	}

	var report *pricer.Report
	if tariff != nil {
		report, err = pricer.Price(cdr, tariff, a.zone(cdr))
	} else {
		report, err = pricer.PriceSession(cdr, a.zone(cdr))
	}
	if err != nil {
		return nil, nil, err
	}

	return report, cdr, nil
}
