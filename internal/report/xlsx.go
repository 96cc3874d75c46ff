package report

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/expensecontrol/api/internal/expense"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Relatorio"

var headers = []string{"UserId", "SubCategoryId", "Amount", "DueDate", "PaidAt", "IsPaid"}

const dateFormat = "2006-01-02 15:04:05"

// buildWorkbook renders the matched expenses into the report layout: one
// header row, one row per expense, and a bold trailing summary row whose
// third cell holds the sum of Amount. Returns the base64-encoded document
// and the total it wrote.
func buildWorkbook(expenses []*expense.Expense) (string, float64, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	widths := make([]int, len(headers))
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", 0, err
		}
		widths[i] = len(header)
	}

	var totalAmount float64
	row := 2

	for _, e := range expenses {
		paidAt := ""
		if e.PaidAt != nil {
			paidAt = e.PaidAt.Format(dateFormat)
		}

		values := []any{
			e.UserID.String(),
			e.SubCategoryID.String(),
			e.Amount,
			e.DueDate.Format(dateFormat),
			paidAt,
			e.IsPaid,
		}

		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", 0, err
			}
			if w := len(fmt.Sprint(value)); w > widths[i] {
				widths[i] = w
			}
		}

		totalAmount += e.Amount
		row++
	}

	if err := writeSummaryRow(f, row, totalAmount, widths); err != nil {
		return "", 0, err
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, float64(width)+2); err != nil {
			return "", 0, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", 0, err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), totalAmount, nil
}

func writeSummaryRow(f *excelize.File, row int, totalAmount float64, widths []int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	labelCell, _ := excelize.CoordinatesToCellName(1, row)
	totalCell, _ := excelize.CoordinatesToCellName(3, row)

	const label = "Total de gastos"
	if err := f.SetCellValue(sheetName, labelCell, label); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, totalCell, totalAmount); err != nil {
		return err
	}

	if err := f.SetCellStyle(sheetName, labelCell, labelCell, bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, totalCell, totalCell, bold); err != nil {
		return err
	}

	if len(label) > widths[0] {
		widths[0] = len(label)
	}
	if w := len(fmt.Sprint(totalAmount)); w > widths[2] {
		widths[2] = w
	}

	return nil
}
