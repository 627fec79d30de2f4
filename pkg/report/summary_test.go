package report

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"variogrest/internal/models"
)

func sampleRecords() []models.SummaryRecord {
	return []models.SummaryRecord{
		{
			Identifier: "well-a",
			Family:     "exponential",
			Quality:    0.91,
			QualityX:   0.88,
			QualityY:   0.93,
			QualityZ:   math.NaN(),
			Parameters: models.PolishedParameters{
				RMajor:    models.PolishedParameter{Value: 120.5, Unit: "m"},
				RMinor:    models.PolishedParameter{Value: 45.25, Unit: "m"},
				RVertical: models.PolishedParameter{Value: 8, Unit: "m"},
				Azimuth:   models.PolishedParameter{Value: 35, Unit: "deg"},
				Sigma:     models.PolishedParameter{Value: 1.2, Unit: "N/A"},
			},
			Metadata: map[string]string{"zone": "upper"},
		},
		{
			Identifier: "well-b",
			Family:     "spherical",
			Quality:    0.72,
			Metadata:   map[string]string{"zone": "lower", "facies": "sand"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	header := rows[0]
	// Fixed columns first, then sorted metadata columns.
	if header[0] != ColIdentifier || header[1] != ColFamily || header[2] != ColQuality {
		t.Errorf("unexpected leading columns: %v", header[:3])
	}
	if header[len(header)-2] != "facies" || header[len(header)-1] != "zone" {
		t.Errorf("expected sorted metadata columns at the end, got %v", header)
	}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			t.Errorf("row %d has %d fields, header has %d", i, len(row), len(header))
		}
	}
	if rows[1][0] != "well-a" || rows[1][len(header)-1] != "upper" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	// The record without that metadata key leaves the field empty.
	if rows[1][len(header)-2] != "" {
		t.Errorf("expected empty facies for well-a, got %q", rows[1][len(header)-2])
	}
}

func TestWriteJSONNaNBecomesNull(t *testing.T) {
	var buf strings.Builder
	if err := WriteJSON(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var out []map[string]interface{}
	if err := json.Unmarshal([]byte(buf.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}

	first := out[0]
	if first[ColIdentifier] != "well-a" {
		t.Errorf("unexpected identifier: %v", first[ColIdentifier])
	}
	if v, present := first[ColQualityZ]; !present || v != nil {
		t.Errorf("expected NaN quality_z to serialize as null, got %v", v)
	}
	if v := first[ColRMajor]; v != 120.5 {
		t.Errorf("expected r_major 120.5, got %v", v)
	}
	if v := first["zone"]; v != "upper" {
		t.Errorf("expected metadata to pass through, got %v", v)
	}
}
