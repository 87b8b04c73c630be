package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ocpi-cost/core/pricer"
	"ocpi-cost/core/tariff"
	"ocpi-cost/core/types"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

// tableFormatter renders a report as an aligned plain-text table.
type tableFormatter struct {
	noColor bool
}

func (f *tableFormatter) Format() Format {
	return FormatTable
}

func (f *tableFormatter) color(c, text string) string {
	if f.noColor {
		return text
	}
	return c + text + colorReset
}

func (f *tableFormatter) Render(w io.Writer, result *Result) error {
	report := result.Report

	verb := "Analyzing"
	if result.Diff != nil {
		verb = "Validating"
	}
	fmt.Fprintf(w, "\n%s `%s` with tariff `%s`, using timezone `%s`:\n",
		f.color(colorBold+colorGreen, verb),
		f.color(colorBlue, result.CdrName),
		f.color(colorBlue, result.TariffName),
		f.color(colorBlue, report.TimeZone))

	if result.Diff != nil {
		return f.renderDiff(w, result.Diff)
	}
	return f.renderBreakdown(w, report)
}

func (f *tableFormatter) renderBreakdown(w io.Writer, report *pricer.Report) error {
	table := newTable()
	table.header("Period", "", "Energy", "Charging Time", "Parking Time", "Flat")

	local, err := time.LoadLocation(report.TimeZone)
	if err != nil {
		local = time.UTC
	}
	for _, period := range report.Periods {
		dims := &period.Dimensions

		flatMark := ""
		if dims.Flat.Price != nil {
			flatMark = "x"
		}

		table.row(
			period.StartDateTime.In(local).Format("2006-01-02 15:04:05"),
			"Volume",
			kwhOrEmpty(dims.Energy.Volume),
			hoursOrEmpty(dims.Time.Volume),
			hoursOrEmpty(dims.Parking.Volume),
			flatMark,
		)
		table.row(
			"",
			"Price",
			componentPrice(dims.Energy.Price),
			componentPrice(dims.Time.Price),
			componentPrice(dims.Parking.Price),
			componentPrice(dims.Flat.Price),
		)
	}

	table.line()
	table.row(
		"Total", "Volume",
		report.TotalEnergy.String(),
		report.TotalTime.String(),
		report.TotalParkingTime.String(),
		"",
	)
	table.row(
		"", "Billed",
		report.BilledEnergy.String(),
		report.BilledChargingTime.String(),
		report.BilledParkingTime.String(),
		"",
	)
	table.row(
		"", "Price",
		priceOrEmpty(report.TotalEnergyCost),
		priceOrEmpty(report.TotalTimeCost),
		priceOrEmpty(report.TotalParkingCost),
		priceOrEmpty(report.TotalFixedCost),
	)

	if _, err := io.WriteString(w, table.String()); err != nil {
		return err
	}

	if total := report.TotalCost; total != nil {
		fmt.Fprintf(w, "\nTotal cost (excl. VAT): %s %s\n", total.ExclVat.Display(), report.Currency)
		if total.InclVat != nil {
			fmt.Fprintf(w, "Total cost (incl. VAT): %s %s\n", total.InclVat.Display(), report.Currency)
		}
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "%s %s\n", f.color(colorYellow, "warning:"), warning)
	}

	return nil
}

func (f *tableFormatter) renderDiff(w io.Writer, diff *ValidationDiff) error {
	table := newTable()
	table.header("Property", "Report", "Cdr")

	for _, row := range diff.Rows {
		if row.Computed == "" && row.Reported == "" {
			continue
		}
		table.row(row.Property, row.Computed, row.Reported)
	}

	if _, err := io.WriteString(w, table.String()); err != nil {
		return err
	}

	if diff.Valid {
		fmt.Fprintf(w, "Calculation %s all totals in the CDR.\n", f.color(colorBold+colorGreen, "matches"))
	} else {
		fmt.Fprintf(w, "Calculation %s all totals in the CDR.\n", f.color(colorBold+colorRed, "does not match"))
	}

	return nil
}

func kwhOrEmpty(v *types.Kwh) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func hoursOrEmpty(v *types.HoursDecimal) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func componentPrice(c *tariff.Component) string {
	if c == nil {
		return ""
	}
	return c.Price.String()
}

func priceOrEmpty(p *types.Price) string {
	if p == nil {
		return ""
	}
	return p.ExclVat.String()
}

// table accumulates rows and renders them with aligned columns, boxed in
// the +---+ style.
type table struct {
	widths []int
	items  []tableItem
}

type tableItem struct {
	isLine bool
	cells  []string
}

func newTable() *table {
	return &table{}
}

func (t *table) line() {
	t.items = append(t.items, tableItem{isLine: true})
}

func (t *table) row(cells ...string) {
	for i, cell := range cells {
		if i == len(t.widths) {
			t.widths = append(t.widths, len(cell))
		} else if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
	t.items = append(t.items, tableItem{cells: cells})
}

func (t *table) header(cells ...string) {
	t.line()
	t.row(cells...)
	t.line()
}

func (t *table) String() string {
	var b strings.Builder

	writeLine := func() {
		b.WriteByte('+')
		for _, width := range t.widths {
			b.WriteString(strings.Repeat("-", width+2))
			b.WriteByte('+')
		}
		b.WriteByte('\n')
	}

	writeLine()
	lastWasLine := true

	for _, item := range t.items {
		if item.isLine {
			if !lastWasLine {
				writeLine()
				lastWasLine = true
			}
			continue
		}
		b.WriteByte('|')
		for i, width := range t.widths {
			cell := ""
			if i < len(item.cells) {
				cell = item.cells[i]
			}
			fmt.Fprintf(&b, " %-*s |", width, cell)
		}
		b.WriteByte('\n')
		lastWasLine = false
	}

	if !lastWasLine {
		writeLine()
	}

	return b.String()
}
