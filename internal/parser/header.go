package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// DefaultPeriodKeywords 期间表头关键字（英文按小写比较）
var DefaultPeriodKeywords = []string{
	"本期", "上期", "同期", "年初", "期初", "期末", "年", "月", "季", "期", "/", "-",
	"current period", "prior period", "previous period", "same period",
	"year start", "year-start", "beginning of year", "period end", "period-end",
}

// ScanOptions 表头扫描窗口
type ScanOptions struct {
	Rows     int
	MaxCols  int
	Keywords []string
}

// DefaultScanOptions 前 7 行、最多 100 列
func DefaultScanOptions() ScanOptions {
	return ScanOptions{Rows: 7, MaxCols: 100, Keywords: DefaultPeriodKeywords}
}

func (o ScanOptions) withDefaults() ScanOptions {
	def := DefaultScanOptions()
	if o.Rows <= 0 {
		o.Rows = def.Rows
	}
	if o.MaxCols <= 0 {
		o.MaxCols = def.MaxCols
	}
	if len(o.Keywords) == 0 {
		o.Keywords = def.Keywords
	}
	return o
}

// ScanPeriodColumns 扫描表头区域，找出可能的期间列
//
// 同一列在多行出现表头时以最后一行为准；结果按列号排序。
// 没有找到任何候选时返回非致命的提示信息。
func ScanPeriodColumns(t RawTable, opts ScanOptions) ([]model.PeriodCandidate, string) {
	opts = opts.withDefaults()
	keywords := make([]string, len(opts.Keywords))
	for i, kw := range opts.Keywords {
		keywords[i] = strings.ToLower(kw)
	}

	maxCol := t.MaxCol()
	if maxCol > opts.MaxCols {
		maxCol = opts.MaxCols
	}

	found := make(map[int]model.PeriodCandidate)
	for row := 1; row <= opts.Rows; row++ {
		for col := 1; col <= maxCol; col++ {
			text := strings.TrimSpace(t.Cell(row, col).String())
			if text == "" {
				continue
			}
			if !ContainsAny(strings.ToLower(text), keywords) {
				continue
			}
			found[col] = model.PeriodCandidate{
				Column: col,
				Letter: ColumnLetter(col),
				Header: text,
				Row:    row,
			}
		}
	}

	if len(found) == 0 {
		return nil, fmt.Sprintf("工作表 %s 的前 %d 行未找到期间列", t.Name(), opts.Rows)
	}

	out := make([]model.PeriodCandidate, 0, len(found))
	for _, c := range found {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Column < out[j].Column })
	return out, ""
}

var (
	yearStartKeywords = []string{"年初", "期初", "上年年末", "上年期末", "上年末", "year start", "year-start", "beginning"}
	previousKeywords  = []string{"上期", "同期", "上年", "去年", "prior", "previous", "same period", "last year"}
	currentKeywords   = []string{"本期", "期末", "本年", "本月", "current", "period end", "period-end"}
)

// InferPeriodKind 推断表头对应的期间
//
// 先看关键词，再看表头中的日期与当前数据年月的关系。
func InferPeriodKind(header string, currentYear, currentMonth int) (model.PeriodKind, bool) {
	lower := strings.ToLower(NormalizeHeader(header))

	switch {
	case ContainsAny(lower, yearStartKeywords):
		return model.PeriodYearStart, true
	case ContainsAny(lower, previousKeywords):
		return model.PeriodPrevious, true
	case ContainsAny(lower, currentKeywords):
		return model.PeriodCurrent, true
	}

	if currentYear == 0 {
		return "", false
	}

	if year, month, found := ExtractYearMonth(header); found {
		switch {
		case year == currentYear && month == currentMonth:
			return model.PeriodCurrent, true
		case year == currentYear-1 && month == currentMonth:
			return model.PeriodPrevious, true
		case year == currentYear-1 && month == 12:
			return model.PeriodYearStart, true
		case year == currentYear && month == 1:
			return model.PeriodYearStart, true
		}
		return "", false
	}

	if year, found := ExtractYear(header); found {
		switch year {
		case currentYear:
			return model.PeriodCurrent, true
		case currentYear - 1:
			return model.PeriodPrevious, true
		}
	}
	return "", false
}

// SuggestPeriods 自动推荐期间列，每种期间取列号最小的候选
//
// 推荐仅供参考，调用方显式选择时以调用方为准。
func SuggestPeriods(candidates []model.PeriodCandidate) model.PeriodColumnMap {
	headers := make([]string, len(candidates))
	for i, c := range candidates {
		headers[i] = c.Header
	}
	year, month := FindCurrentYearMonth(headers)
	if year == 0 {
		for _, h := range headers {
			if y, ok := ExtractYear(h); ok && y > year {
				year = y
			}
		}
	}

	out := make(model.PeriodColumnMap, len(model.AllPeriods))
	for _, p := range model.AllPeriods {
		out[p] = 0
	}
	for _, c := range candidates {
		kind, ok := InferPeriodKind(c.Header, year, month)
		if !ok || out[kind] != 0 {
			continue
		}
		out[kind] = c.Column
	}
	return out
}

// SelectionFor 把列映射转换为表头文本选择（用于界面回显与记忆）
func SelectionFor(candidates []model.PeriodCandidate, cols model.PeriodColumnMap) model.PeriodSelection {
	sel := make(model.PeriodSelection, len(cols))
	for p, col := range cols {
		if col <= 0 {
			continue
		}
		sel[p] = ColumnLetter(col)
		for _, c := range candidates {
			if c.Column == col {
				sel[p] = c.Header
				break
			}
		}
	}
	return sel
}

// ResolveSelection 将调用方的选择解析为列号
//
// 选择值先按表头文本匹配候选列，再按列字母解析；空值表示不取该期间。
func ResolveSelection(candidates []model.PeriodCandidate, sel model.PeriodSelection) (model.PeriodColumnMap, error) {
	out := make(model.PeriodColumnMap, len(model.AllPeriods))
	for _, p := range model.AllPeriods {
		v := strings.TrimSpace(sel[p])
		if v == "" {
			out[p] = 0
			continue
		}
		col, ok := findHeader(candidates, v)
		if !ok {
			col, ok = ColumnNumber(v)
		}
		if !ok {
			return nil, fmt.Errorf("%s %q: %w", p.Label(), v, model.ErrUnknownPeriodHeader)
		}
		out[p] = col
	}
	return out, nil
}

func findHeader(candidates []model.PeriodCandidate, header string) (int, bool) {
	for _, c := range candidates {
		if c.Header == header {
			return c.Column, true
		}
	}
	norm := NormalizeHeader(header)
	for _, c := range candidates {
		if NormalizeHeader(c.Header) == norm {
			return c.Column, true
		}
	}
	return 0, false
}
