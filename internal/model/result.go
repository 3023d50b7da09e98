package model

import "time"

// Discrepancy 源表合计与重算合计不一致
type Discrepancy struct {
	Statement StatementKind `json:"statement"`
	Slot      string        `json:"slot"`
	Period    PeriodKind    `json:"period"`
	Reported  float64       `json:"reported"`
	Computed  float64       `json:"computed"`
}

// Omission 源表中未能匹配任何模板科目的行
type Omission struct {
	Statement  StatementKind `json:"statement"`
	Row        int           `json:"row"`
	Label      string        `json:"label"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// BalanceIssue 资产总计与负债和所有者权益总计不相等
type BalanceIssue struct {
	Period                    PeriodKind `json:"period"`
	TotalAssets               float64    `json:"totalAssets"`
	TotalLiabilitiesAndEquity float64    `json:"totalLiabilitiesAndEquity"`
}

// ColumnRun 一次连续删除的列区间
type ColumnRun struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// StatementInput 单张报表的处理参数
type StatementInput struct {
	Sheet   string          `json:"sheet"`
	Columns PeriodColumnMap `json:"columns"`
}

// Result 一次处理的完整输出
type Result struct {
	RunID          string                           `json:"runId"`
	Filename       string                           `json:"filename"`
	CreatedAt      time.Time                        `json:"createdAt"`
	Inputs         map[StatementKind]StatementInput `json:"inputs"`
	Templates      map[StatementKind]*Template      `json:"templates"`
	Indicators     Indicators                       `json:"indicators"`
	Unmatched      map[StatementKind][]string       `json:"unmatched"`
	Omissions      []Omission                       `json:"omissions"`
	Discrepancies  []Discrepancy                    `json:"discrepancies"`
	BalanceIssues  []BalanceIssue                   `json:"balanceIssues"`
	RemovedColumns map[StatementKind][]ColumnRun    `json:"removedColumns"`
	Warnings       []string                         `json:"warnings"`
}

// NewResult 创建空结果
func NewResult(runID, filename string) *Result {
	return &Result{
		RunID:          runID,
		Filename:       filename,
		CreatedAt:      time.Now(),
		Inputs:         make(map[StatementKind]StatementInput),
		Templates:      make(map[StatementKind]*Template),
		Indicators:     NewIndicators(),
		Unmatched:      make(map[StatementKind][]string),
		RemovedColumns: make(map[StatementKind][]ColumnRun),
	}
}

// Balanced 资产负债表恒等式是否成立
func (r *Result) Balanced() bool {
	return len(r.BalanceIssues) == 0
}
