package model

import "strconv"

// CellKind 单元格原始值类型
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// CellValue 单元格原始值（文本 / 数值 / 空）
//
// 数值单元格可以同时携带显示文本（如日期格式化后的 2024-12-31），用于表头识别。
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Empty 空单元格
func Empty() CellValue { return CellValue{} }

// Text 文本单元格
func Text(s string) CellValue {
	if s == "" {
		return CellValue{}
	}
	return CellValue{Kind: CellText, Text: s}
}

// Number 数值单元格
func Number(f float64) CellValue {
	return CellValue{Kind: CellNumber, Number: f}
}

// IsEmpty 是否为空
func (v CellValue) IsEmpty() bool {
	return v.Kind == CellEmpty
}

// IsZeroOrEmpty 为空或数值为 0 时需要尝试公式视图的缓存值
func (v CellValue) IsZeroOrEmpty() bool {
	return v.Kind == CellEmpty || (v.Kind == CellNumber && v.Number == 0)
}

// NumberWithText 带显示文本的数值单元格
func NumberWithText(f float64, text string) CellValue {
	return CellValue{Kind: CellNumber, Number: f, Text: text}
}

// String 文本化：数值 0 视为空（与标签读取一致）
func (v CellValue) String() string {
	switch v.Kind {
	case CellText:
		return v.Text
	case CellNumber:
		if v.Number == 0 {
			return ""
		}
		if v.Text != "" {
			return v.Text
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}
