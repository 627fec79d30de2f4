// Package report serializes estimation summaries to delimited text and
// JSON. The JSON form replaces NaN values, which JSON cannot represent,
// with null.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"variogrest/internal/models"
)

// Column labels, in summary output order. The bracketed suffix carries
// the unit or value domain of the column.
const (
	ColIdentifier = "identifier"
	ColFamily     = "family"
	ColQuality    = "quality[<1.0]"
	ColRMajor     = "r_major[m]"
	ColRMinor     = "r_minor[m]"
	ColAzimuth    = "azimuth[deg]"
	ColRVertical  = "r_vertical[m]"
	ColSigma      = "sigma[N/A]"
	ColQualityX   = "quality_x[<1.0]"
	ColQualityY   = "quality_y[<1.0]"
	ColQualityZ   = "quality_z[<1.0]"
)

func fixedColumns() []string {
	return []string{
		ColIdentifier, ColFamily, ColQuality,
		ColRMajor, ColRMinor, ColAzimuth, ColRVertical, ColSigma,
		ColQualityX, ColQualityY, ColQualityZ,
	}
}

// flatten turns a record into column label -> value form.
func flatten(r models.SummaryRecord) map[string]interface{} {
	flat := map[string]interface{}{
		ColIdentifier: r.Identifier,
		ColFamily:     r.Family,
		ColQuality:    r.Quality,
		ColRMajor:     r.Parameters.RMajor.Value,
		ColRMinor:     r.Parameters.RMinor.Value,
		ColAzimuth:    r.Parameters.Azimuth.Value,
		ColRVertical:  r.Parameters.RVertical.Value,
		ColSigma:      r.Parameters.Sigma.Value,
		ColQualityX:   r.QualityX,
		ColQualityY:   r.QualityY,
		ColQualityZ:   r.QualityZ,
	}
	for k, v := range r.Metadata {
		flat[k] = v
	}
	return flat
}

// metadataColumns returns the sorted union of metadata keys across the
// records, appended after the fixed columns.
func metadataColumns(records []models.SummaryRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for k := range r.Metadata {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteCSV writes one row per record with a fixed column order followed
// by any metadata columns.
func WriteCSV(w io.Writer, records []models.SummaryRecord) error {
	columns := append(fixedColumns(), metadataColumns(records)...)
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("report: writing csv header: %w", err)
	}
	for _, r := range records {
		flat := flatten(r)
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatValue(flat[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', 5, 64)
	default:
		return fmt.Sprint(t)
	}
}

// nullableFloat marshals NaN as null, which encoding/json would
// otherwise reject.
type nullableFloat float64

func (f nullableFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// WriteJSON writes the records as an indented JSON array of flat
// objects keyed by column label. NaN values become null.
func WriteJSON(w io.Writer, records []models.SummaryRecord) error {
	out := make([]map[string]interface{}, len(records))
	for i, r := range records {
		flat := flatten(r)
		for k, v := range flat {
			if f, ok := v.(float64); ok {
				flat[k] = nullableFloat(f)
			}
		}
		out[i] = flat
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("report: writing json: %w", err)
	}
	return nil
}
