package model

import "github.com/xuri/excelize/v2"

// PeriodKind 报告期间
type PeriodKind string

const (
	PeriodCurrent   PeriodKind = "current"    // 本期
	PeriodPrevious  PeriodKind = "previous"   // 上期
	PeriodYearStart PeriodKind = "year_start" // 年初
)

// AllPeriods 固定的期间遍历顺序
var AllPeriods = []PeriodKind{PeriodCurrent, PeriodPrevious, PeriodYearStart}

// Label 期间中文名
func (p PeriodKind) Label() string {
	switch p {
	case PeriodCurrent:
		return "本期"
	case PeriodPrevious:
		return "上期"
	case PeriodYearStart:
		return "年初"
	default:
		return string(p)
	}
}

// ParsePeriodKind 解析期间（接受英文标识与中文名）
func ParsePeriodKind(s string) (PeriodKind, bool) {
	switch s {
	case "current", "本期":
		return PeriodCurrent, true
	case "previous", "上期":
		return PeriodPrevious, true
	case "year_start", "yearStart", "年初":
		return PeriodYearStart, true
	}
	return "", false
}

// PeriodColumnMap 期间 -> 列号（从 1 开始，0 表示未选择）
type PeriodColumnMap map[PeriodKind]int

// Shift 返回整体右移 offset 列后的映射（未选择的期间保持未选择）
func (m PeriodColumnMap) Shift(offset int) PeriodColumnMap {
	out := make(PeriodColumnMap, len(m))
	for p, col := range m {
		if col > 0 {
			out[p] = col + offset
		} else {
			out[p] = 0
		}
	}
	return out
}

// Letters 以列字母展示，便于日志与接口返回
func (m PeriodColumnMap) Letters() map[PeriodKind]string {
	out := make(map[PeriodKind]string, len(m))
	for p, col := range m {
		if col <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			continue
		}
		out[p] = name
	}
	return out
}

// PeriodCandidate 表头扫描得到的候选期间列
type PeriodCandidate struct {
	Column int    `json:"column"`
	Letter string `json:"letter"`
	Header string `json:"header"`
	Row    int    `json:"row"`
}

// PeriodSelection 调用方对期间列的选择：按表头文本或列字母指定
type PeriodSelection map[PeriodKind]string
