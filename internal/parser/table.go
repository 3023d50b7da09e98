package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// RawTable 一个工作表的只读网格（行列从 1 开始）
//
// Cell 为主视图（单元格显示值）；Formula 为次视图：仅当单元格带公式时返回其缓存值。
// RemoveColumns 是唯一的写操作，用于删除噪声列。
type RawTable interface {
	Name() string
	MaxRow() int
	MaxCol() int
	Cell(row, col int) model.CellValue
	Formula(row, col int) (model.CellValue, bool)
	RemoveColumns(start, count int) error
}

type cellPos struct {
	row int
	col int
}

// MemTable 内存表格：CSV / XLS 载入结果以及测试夹具
type MemTable struct {
	name     string
	rows     [][]model.CellValue
	formulas map[cellPos]model.CellValue
}

// NewMemTable 由单元格网格创建内存表
func NewMemTable(name string, rows [][]model.CellValue) *MemTable {
	return &MemTable{
		name:     name,
		rows:     rows,
		formulas: make(map[cellPos]model.CellValue),
	}
}

// NewMemTableFromStrings 由字符串网格创建内存表，可解析为数字的单元格按数值存储
func NewMemTableFromStrings(name string, rows [][]string) *MemTable {
	grid := make([][]model.CellValue, len(rows))
	for i, row := range rows {
		grid[i] = make([]model.CellValue, len(row))
		for j, s := range row {
			grid[i][j] = CellFromString(s)
		}
	}
	return NewMemTable(name, grid)
}

// CellFromString 文本转单元格：空串为空，能解析为有限数字的为数值
func CellFromString(s string) model.CellValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return model.Empty()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && isFinite(f) {
		return model.NumberWithText(f, s)
	}
	return model.Text(s)
}

// SetFormula 标记某单元格带公式，并记录其缓存值
func (t *MemTable) SetFormula(row, col int, cached model.CellValue) {
	t.formulas[cellPos{row, col}] = cached
}

func (t *MemTable) Name() string { return t.name }

func (t *MemTable) MaxRow() int { return len(t.rows) }

func (t *MemTable) MaxCol() int {
	max := 0
	for _, row := range t.rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func (t *MemTable) Cell(row, col int) model.CellValue {
	if row < 1 || row > len(t.rows) {
		return model.Empty()
	}
	r := t.rows[row-1]
	if col < 1 || col > len(r) {
		return model.Empty()
	}
	return r[col-1]
}

func (t *MemTable) Formula(row, col int) (model.CellValue, bool) {
	v, ok := t.formulas[cellPos{row, col}]
	return v, ok
}

func (t *MemTable) RemoveColumns(start, count int) error {
	if start < 1 || count < 1 {
		return fmt.Errorf("删除列参数无效: start=%d count=%d", start, count)
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

	shifted := make(map[cellPos]model.CellValue, len(t.formulas))
	for pos, v := range t.formulas {
		switch {
		case pos.col < start:
			shifted[pos] = v
		case pos.col >= start+count:
			shifted[cellPos{pos.row, pos.col - count}] = v
		}
	}
	t.formulas = shifted
	return nil
}

// Clone 深拷贝，同一工作表被多张报表引用时各自删除噪声列
func (t *MemTable) Clone() *MemTable {
	rows := make([][]model.CellValue, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append([]model.CellValue(nil), row...)
	}
	out := NewMemTable(t.name, rows)
	for pos, v := range t.formulas {
		out.formulas[pos] = v
	}
	return out
}
