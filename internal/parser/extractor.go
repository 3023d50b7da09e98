package parser

import (
	"strconv"
	"strings"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// CoerceNumber 单元格转数字，无法解析时为 0
func CoerceNumber(v model.CellValue) float64 {
	switch v.Kind {
	case model.CellNumber:
		if !isFinite(v.Number) {
			return 0
		}
		return v.Number
	case model.CellText:
		s := strings.TrimSpace(strings.ReplaceAll(v.Text, ",", ""))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// IsNumeric 单元格是否为数值或可解析为数字的文本（允许千分位逗号）
func IsNumeric(v model.CellValue) bool {
	switch v.Kind {
	case model.CellNumber:
		return true
	case model.CellText:
		s := strings.TrimSpace(strings.ReplaceAll(v.Text, ",", ""))
		if s == "" {
			return false
		}
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	default:
		return false
	}
}

// CellWithFallback 读取主视图；主视图为空或 0 且单元格带公式时改用公式缓存值
func CellWithFallback(t RawTable, row, col int) model.CellValue {
	v := t.Cell(row, col)
	if !v.IsZeroOrEmpty() {
		return v
	}
	if cached, ok := t.Formula(row, col); ok && !cached.IsEmpty() {
		return cached
	}
	return v
}

// ExtractValues 读取一行在各期间列上的数值，结果总是包含三个期间
func ExtractValues(t RawTable, row int, cols model.PeriodColumnMap) map[model.PeriodKind]float64 {
	out := make(map[model.PeriodKind]float64, len(model.AllPeriods))
	for _, p := range model.AllPeriods {
		col := cols[p]
		if col <= 0 {
			out[p] = 0
			continue
		}
		out[p] = CoerceNumber(CellWithFallback(t, row, col))
	}
	return out
}
