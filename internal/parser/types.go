package parser

import (
	"time"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// SheetReport 单张报表的处理结果
type SheetReport struct {
	Statement   model.StatementKind         `json:"statement"`
	SheetName   string                      `json:"sheetName"`
	Columns     map[model.PeriodKind]string `json:"columns"` // 期间 -> 列字母
	TotalRows   int                         `json:"totalRows"`
	MatchedRows int                         `json:"matchedRows"`
	OmittedRows int                         `json:"omittedRows"`
	Removed     []model.ColumnRun           `json:"removed,omitempty"`
	Warnings    []string                    `json:"warnings,omitempty"`
	Duration    time.Duration               `json:"duration"`
}

// ImportReport 一次处理的汇总报告
type ImportReport struct {
	RunID         string        `json:"runId"`
	Filename      string        `json:"filename"`
	Statements    int           `json:"statements"`
	MatchedRows   int           `json:"matchedRows"`
	OmittedRows   int           `json:"omittedRows"`
	Discrepancies int           `json:"discrepancies"`
	Balanced      bool          `json:"balanced"`
	Indicators    int           `json:"indicators"`
	Duration      time.Duration `json:"duration"`
	Sheets        []SheetReport `json:"sheets"`
}

// Add 汇总单张报表
func (r *ImportReport) Add(s SheetReport) {
	r.Sheets = append(r.Sheets, s)
	r.Statements++
	r.MatchedRows += s.MatchedRows
	r.OmittedRows += s.OmittedRows
}
