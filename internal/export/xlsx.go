// Package export writes the day's ledger as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"hydration-tracker/internal/model"

	"github.com/xuri/excelize/v2"
)

const sheet = "Today"

func build(l model.DailyLedger) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{
		{"Day", l.LastReset},
		{"Goal (ml)", l.Goal},
		{"Total (ml)", l.Total},
		{},
		{"Time", "Amount (ml)", "ID"},
	}
	for _, e := range l.Entries {
		rows = append(rows, []any{e.Time, e.Amount, e.ID})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, l model.DailyLedger) error {
	f, err := build(l)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func SaveAs(path string, l model.DailyLedger) error {
	f, err := build(l)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
