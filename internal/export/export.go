// Package export writes joined summit rows as CSV, JSON, or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/alexjj/sota-us-counties/internal/join"
)

var header = []string{
	"SummitCode", "SummitName", "RegionName", "AssociationName",
	"Latitude", "Longitude", "Points", "Counties",
}

// WriteCSV writes rows as CSV with a header row.
func WriteCSV(w io.Writer, rows []join.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, row := range rows {
		record := []string{
			row.Code,
			row.Name,
			row.Region,
			row.Association,
			strconv.FormatFloat(row.Latitude, 'f', -1, 64),
			strconv.FormatFloat(row.Longitude, 'f', -1, 64),
			strconv.Itoa(row.Points),
			row.Counties,
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", row.Code)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []join.Row) error {
	if rows == nil {
		rows = []join.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(rows), "export: encode json")
}

// WriteXLSX writes rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []join.Row) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Summits")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	hr := sheet.AddRow()
	for _, col := range header {
		hr.AddCell().SetString(col)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.Code)
		r.AddCell().SetString(row.Name)
		r.AddCell().SetString(row.Region)
		r.AddCell().SetString(row.Association)
		r.AddCell().SetFloat(row.Latitude)
		r.AddCell().SetFloat(row.Longitude)
		r.AddCell().SetInt(row.Points)
		r.AddCell().SetString(row.Counties)
	}

	return eris.Wrap(f.Write(w), "export: write xlsx")
}
