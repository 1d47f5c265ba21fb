// Package excel строит xlsx-выгрузку журнала продаж.
package excel

import (
	"fmt"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const (
	sheetName  = "Sales Report"
	timeLayout = "02-01-2006 15:04:05"
)

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildSalesReport формирует книгу с одной строкой на продажу.
// Колонки: идентификатор, дата, проданные позиции "name (xQty)", сумма.
func (b *Builder) BuildSalesReport(sales []domain.Sale) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	f.SetColWidth(sheetName, "A", "A", 15)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 40)
	f.SetColWidth(sheetName, "D", "D", 15)

	f.SetCellValue(sheetName, "A1", "Sale ID")
	f.SetCellValue(sheetName, "B1", "Date")
	f.SetCellValue(sheetName, "C1", "Items Sold")
	f.SetCellValue(sheetName, "D1", "Total")

	for i, sale := range sales {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sale.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sale.CreatedAt.Format(timeLayout))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), joinItems(sale.Items))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), formatAmount(sale.TotalAmount))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return buf.Bytes(), nil
}

// joinItems сводит позиции чека в строку вида "Coffee (x2), Tea (x1)".
func joinItems(items []domain.SaleItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", item.ProductName, item.Quantity))
	}

	return strings.Join(parts, ", ")
}

// formatAmount переводит сумму из копеек в десятичную запись с двумя знаками.
func formatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
