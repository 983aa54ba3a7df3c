package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/skhandal/doi/pkg/application/dto"
)

// SheetName is the single sheet the spreadsheet artifact carries
const SheetName = "Final Data"

// WriteXLSX writes the final table to a spreadsheet file
func WriteXLSX(result *dto.Result, path string) error {
	workbook, err := buildWorkbook(result)
	if err != nil {
		return err
	}
	defer workbook.Close()

	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteXLSXTo streams the spreadsheet to a writer, for HTTP downloads
func WriteXLSXTo(result *dto.Result, w io.Writer) error {
	workbook, err := buildWorkbook(result)
	if err != nil {
		return err
	}
	defer workbook.Close()

	if err := workbook.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(result *dto.Result) (*excelize.File, error) {
	workbook := excelize.NewFile()
	if err := workbook.SetSheetName("Sheet1", SheetName); err != nil {
		workbook.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := make([]any, 0, len(dto.FinalTableHeaders()))
	for _, h := range dto.FinalTableHeaders() {
		headers = append(headers, h)
	}
	if err := workbook.SetSheetRow(SheetName, "A1", &headers); err != nil {
		workbook.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range dto.RowsFrom(result.Rows) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			workbook.Close()
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := []any{row.City, row.ItemCode, row.ProductName, row.UnitsSold, row.WarehouseQty, row.OpenPoQuantity, row.DOI}
		if err := workbook.SetSheetRow(SheetName, cell, &values); err != nil {
			workbook.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return workbook, nil
}
