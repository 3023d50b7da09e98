package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	yearMonthRe = regexp.MustCompile(`(\d{4})\s*[年./-]\s*0?(\d{1,2})`)
	yearRe      = regexp.MustCompile(`(\d{4})\s*年`)
)

// ExtractYearMonth 从表头中提取年月
// 支持格式: "2024年12月31日" / "2024-12-31" / "2024.12" / "2024/12"
func ExtractYearMonth(text string) (year, month int, found bool) {
	matches := yearMonthRe.FindStringSubmatch(text)
	if len(matches) >= 3 {
		year, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		if month >= 1 && month <= 12 {
			return year, month, true
		}
	}
	return 0, 0, false
}

// ExtractYear 只写了年份的表头，如 "2024年"
func ExtractYear(text string) (int, bool) {
	matches := yearRe.FindStringSubmatch(text)
	if len(matches) >= 2 {
		year, _ := strconv.Atoi(matches[1])
		return year, true
	}
	return 0, false
}

// FindCurrentYearMonth 从表头列表中找出最新的年月
func FindCurrentYearMonth(headers []string) (year, month int) {
	for _, h := range headers {
		y, m, found := ExtractYearMonth(h)
		if !found {
			continue
		}
		if y > year || (y == year && m > month) {
			year = y
			month = m
		}
	}
	return year, month
}

// NormalizeHeader 去掉表头中的空白与换行
func NormalizeHeader(name string) string {
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), "")
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ColumnLetter 列号转字母，非法列号返回空串
func ColumnLetter(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}

// ColumnNumber 字母转列号，非纯字母返回 false
func ColumnNumber(letters string) (int, bool) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if letters == "" {
		return 0, false
	}
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0, false
		}
	}
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
