package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"procintel/internal/models"
)

// missingValue stands in for columns a row's source collection does not
// carry. Downstream spreadsheets expect the literal sentinel, not blanks.
const missingValue = "N/A"

// combinedHeader is the column union of the procurement and awards tables.
// Agency is shared; the rest belong to one side or the other.
var combinedHeader = []string{
	"Agency",
	"Services Description",
	"Procurement Method",
	"Fiscal Quarter",
	"Job Titles",
	"Head-count",
	"Title",
	"Award Date",
	"Description",
	"Category",
}

// CombinedCSV serializes procurement rows followed by award rows into one
// UTF-8 CSV document with a header row, filling columns missing from a
// row's collection with "N/A".
func CombinedCSV(procurements []models.Procurement, awards []models.Award) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(combinedHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	for _, p := range procurements {
		row := []string{
			p.Agency,
			p.ServicesDescription,
			p.ProcurementMethod,
			p.FiscalQuarter,
			p.JobTitles,
			p.HeadCount,
			missingValue,
			missingValue,
			missingValue,
			missingValue,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv: write procurement row: %w", err)
		}
	}

	for _, a := range awards {
		row := []string{
			a.Agency,
			missingValue,
			missingValue,
			missingValue,
			missingValue,
			missingValue,
			a.Title,
			a.AwardDate,
			a.Description,
			a.Category,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv: write award row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
