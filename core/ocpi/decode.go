package ocpi

import (
	"bytes"
	"encoding/json"
	"io"

	"ocpi-cost/internal/errors"
)

// Version selects the OCPI version of an input document.
type Version string

// Supported input versions. The engine always computes on 2.2.1; 2.1.1
// documents are up-converted on decode.
const (
	VersionV221   Version = "v221"
	VersionV211   Version = "v211"
	VersionDetect Version = "detect"
)

// ParseVersion validates a version flag value.
func ParseVersion(s string) (Version, error) {
	switch Version(s) {
	case VersionV221, VersionV211, VersionDetect:
		return Version(s), nil
	case "":
		return VersionDetect, nil
	default:
		return "", errors.Newf(errors.KindInvalidInput, "unknown OCPI version %q (want v221, v211 or detect)", s)
	}
}

// DecodeCdr reads a CDR document of the given version, up-converting 2.1.1
// input. Detection decodes as 2.2.1 first and falls back to 2.1.1; the
// 2.2.1 error wins when both fail.
func DecodeCdr(r io.Reader, version Version) (*Cdr, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.KindParsing, "reading CDR", err)
	}

	switch version {
	case VersionV221:
		return decodeCdrV221(data)
	case VersionV211:
		return decodeCdrV211(data)
	default:
		cdr, err221 := decodeCdrV221(data)
		if err221 == nil {
			return cdr, nil
		}
		if cdr, err211 := decodeCdrV211(data); err211 == nil {
			return cdr, nil
		}
		return nil, err221
	}
}

// DecodeTariff reads a tariff document of the given version, up-converting
// 2.1.1 input.
func DecodeTariff(r io.Reader, version Version) (*Tariff, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.KindParsing, "reading tariff", err)
	}

	switch version {
	case VersionV221:
		return decodeTariffV221(data)
	case VersionV211:
		return decodeTariffV211(data)
	default:
		tariff, err221 := decodeTariffV221(data)
		if err221 == nil {
			return tariff, nil
		}
		if tariff, err211 := decodeTariffV211(data); err211 == nil {
			return tariff, nil
		}
		return nil, err221
	}
}

func decodeCdrV221(data []byte) (*Cdr, error) {
	var cdr Cdr
	if err := strictUnmarshal(data, &cdr); err != nil {
		return nil, errors.Wrap(errors.KindParsing, "decoding 2.2.1 CDR", err)
	}
	if cdr.EndDateTime.IsZero() {
		return nil, errors.New(errors.KindParsing, "2.2.1 CDR is missing end_date_time")
	}
	return &cdr, nil
}

func decodeTariffV221(data []byte) (*Tariff, error) {
	var tariff Tariff
	if err := strictUnmarshal(data, &tariff); err != nil {
		return nil, errors.Wrap(errors.KindParsing, "decoding 2.2.1 tariff", err)
	}
	if len(tariff.Elements) == 0 {
		return nil, errors.New(errors.KindParsing, "2.2.1 tariff has no elements")
	}
	return &tariff, nil
}

// strictUnmarshal tolerates unknown fields (forward compatibility) but
// rejects type mismatches in known ones.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return dec.Decode(v)
}
