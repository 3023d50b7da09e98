package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// ExcelOptions xlsx 读取选项
type ExcelOptions struct {
	// EvaluateFormulas 公式单元格没有缓存值时用 excelize 现场计算
	EvaluateFormulas bool
}

// ExcelTable excelize 工作表的快照
//
// 删除列时同时修改底层工作簿与快照，保证两者列号一致。
type ExcelTable struct {
	file  *excelize.File
	sheet string
	opts  ExcelOptions
	rows  [][]model.CellValue
}

// NewExcelTable 读取工作表的原始值与显示值
func NewExcelTable(f *excelize.File, sheet string, opts ExcelOptions) (*ExcelTable, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}

	rows := make([][]model.CellValue, len(raw))
	for i, row := range raw {
		rows[i] = make([]model.CellValue, len(row))
		for j, s := range row {
			text := s
			if i < len(shown) && j < len(shown[i]) && shown[i][j] != "" {
				text = shown[i][j]
			}
			rows[i][j] = excelCell(s, text)
		}
	}
	return &ExcelTable{file: f, sheet: sheet, opts: opts, rows: rows}, nil
}

// excelCell 原始值可解析为数字时按数值存储，并保留格式化后的显示文本
func excelCell(raw, text string) model.CellValue {
	if strings.TrimSpace(raw) == "" {
		return model.Empty()
	}
	v := CellFromString(raw)
	if v.Kind == model.CellNumber {
		return model.NumberWithText(v.Number, text)
	}
	return model.Text(text)
}

func (t *ExcelTable) Name() string { return t.sheet }

func (t *ExcelTable) MaxRow() int { return len(t.rows) }

func (t *ExcelTable) MaxCol() int {
	max := 0
	for _, row := range t.rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func (t *ExcelTable) Cell(row, col int) model.CellValue {
	if row < 1 || row > len(t.rows) {
		return model.Empty()
	}
	r := t.rows[row-1]
	if col < 1 || col > len(r) {
		return model.Empty()
	}
	return r[col-1]
}

// Formula 公式单元格的缓存值；开启 EvaluateFormulas 时缓存为空则现场计算
func (t *ExcelTable) Formula(row, col int) (model.CellValue, bool) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return model.Empty(), false
	}
	formula, err := t.file.GetCellFormula(t.sheet, cell)
	if err != nil || strings.TrimSpace(formula) == "" {
		return model.Empty(), false
	}

	cached := t.Cell(row, col)
	if !cached.IsZeroOrEmpty() || !t.opts.EvaluateFormulas {
		return cached, true
	}
	val, err := t.file.CalcCellValue(t.sheet, cell)
	if err != nil {
		return cached, true
	}
	return CellFromString(strings.ReplaceAll(strings.TrimSpace(val), ",", "")), true
}

// RemoveColumns 从工作簿中删除 count 列，并同步快照
func (t *ExcelTable) RemoveColumns(start, count int) error {
	if start < 1 || count < 1 {
		return fmt.Errorf("删除列参数无效: start=%d count=%d", start, count)
	}
	name, err := excelize.ColumnNumberToName(start)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := t.file.RemoveCol(t.sheet, name); err != nil {
			return fmt.Errorf("删除列 %s 失败: %w", name, err)
		}
	}

	for i, row := range t.rows {
		if start > len(row) {
			continue
		}
		end := start - 1 + count
		if end > len(row) {
			end = len(row)
		}
		t.rows[i] = append(row[:start-1:start-1], row[end:]...)
	}
	return nil
}
