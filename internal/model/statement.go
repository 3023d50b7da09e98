package model

// StatementKind 报表类型
type StatementKind string

const (
	StatementBalanceSheet    StatementKind = "balance_sheet"
	StatementCashFlow        StatementKind = "cash_flow"
	StatementIncomeStatement StatementKind = "income_statement"
)

// AllStatements 固定的处理顺序
var AllStatements = []StatementKind{StatementBalanceSheet, StatementCashFlow, StatementIncomeStatement}

// Title 输出工作表名
func (k StatementKind) Title() string {
	switch k {
	case StatementBalanceSheet:
		return "资产负债表"
	case StatementCashFlow:
		return "现金流量表"
	case StatementIncomeStatement:
		return "损益表"
	default:
		return string(k)
	}
}

// ParseStatementKind 解析报表类型
func ParseStatementKind(s string) (StatementKind, bool) {
	for _, k := range AllStatements {
		if s == string(k) || s == k.Title() {
			return k, true
		}
	}
	return "", false
}

// SheetRecognition 单个 sheet 的报表类型识别结果
type SheetRecognition struct {
	SheetName string        `json:"sheetName"`
	Kind      StatementKind `json:"kind"`
	Score     float64       `json:"score"`
	Matched   int           `json:"matched"`
}
