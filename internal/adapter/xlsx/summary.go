// Package xlsx exports the summary table as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
	"github.com/couchcryptid/winter-stats-service/internal/i18n"
)

// SheetName is the name of the single worksheet.
const SheetName = "Summary"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteSummary writes rows as a workbook with a header row in the locale's
// language. Absent means are left as empty cells.
func WriteSummary(w io.Writer, rows []domain.SummaryRow, catalog *domain.Catalog, locale i18n.Locale) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := locale.Columns()
	header := []any{cols.Winter, cols.Metric, cols.December, cols.January, cols.Overall}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Winter, metricLabel(row.Metric, catalog, locale), cellValue(row.December), cellValue(row.January), cellValue(row.Overall)}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := format(f, len(rows)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func format(f *excelize.File, rows int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	if rows > 0 {
		twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return fmt.Errorf("create number style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(5, rows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, "C2", last, twoDecimals); err != nil {
			return fmt.Errorf("style values: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 10); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 42); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "C", "E", 12); err != nil {
		return err
	}
	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// metricLabel is the localized title with its unit, e.g. "Precipitation (mm)".
func metricLabel(key string, catalog *domain.Catalog, locale i18n.Locale) string {
	title := locale.MetricTitle(key)
	if catalog == nil {
		return title
	}
	m, ok := catalog.Metric(key)
	if !ok || m.Unit == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, locale.Unit(m.Unit))
}

func cellValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
