package parser

import (
	"fmt"
	"io"

	"github.com/shakinm/xlsReader/xls"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// LoadXLS 读取旧版 xls 工作簿的全部工作表
//
// xls 没有公式视图，Formula 永远返回 false。
func LoadXLS(r io.ReadSeeker) (Workbook, error) {
	book, err := xls.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开 xls 失败: %w", err)
	}

	wb := newMemWorkbook(FormatXLS)
	for i, sheet := range book.GetSheets() {
		name := sheet.GetName()
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}

		var grid [][]model.CellValue
		for _, row := range sheet.GetRows() {
			cols := row.GetCols()
			cells := make([]model.CellValue, len(cols))
			for j, cell := range cols {
				cells[j] = CellFromString(cell.GetString())
			}
			grid = append(grid, cells)
		}
		wb.add(NewMemTable(name, grid))
	}
	return wb, nil
}
