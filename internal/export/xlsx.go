// Package export renders a counting session as a spreadsheet matching the
// paper form the admins hand to accounting.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jarda-app/jarda/internal/domain/session"
)

const sheetName = "Inventory"

var headers = []string{"م", "الكود", "المادة", "العلامة", "الوحدة", "الكمية", "ملاحظات"}

var columnWidths = []float64{5, 10, 20, 15, 10, 10, 30}

// Session renders one session as an XLSX workbook: one row per item in the
// session's (sorted) list, quantity 0 when unset, notes empty when absent.
func Session(sess *session.Session) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("resolving column: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	rtl := true
	if err := f.SetSheetView(sheetName, -1, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, fmt.Errorf("setting sheet view: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, it := range sess.Items {
		quantity := 0.0
		notes := ""
		if entry, ok := sess.Entries[it.ID]; ok {
			if entry.Quantity != nil {
				quantity = *entry.Quantity
			}
			notes = entry.Notes
		}

		cell := fmt.Sprintf("A%d", i+2)
		row := []any{i + 1, it.Code, it.Name, it.Brand, it.Unit, quantity, notes}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	return f, nil
}

// Filename derives the download name from the site and period start.
func Filename(sess *session.Session) string {
	return fmt.Sprintf("Inventory_%s_%s.xlsx", sess.SiteName, sess.StartDate)
}
