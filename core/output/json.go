package output

import (
	"encoding/json"
	"io"
)

// jsonFormatter renders the report (or validation diff) as indented JSON.
type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format {
	return FormatJSON
}

func (f *jsonFormatter) Render(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if result.Diff != nil {
		return enc.Encode(struct {
			Report any `json:"report"`
			Diff   any `json:"diff"`
		}{result.Report, result.Diff})
	}
	return enc.Encode(result.Report)
}
