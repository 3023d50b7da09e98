package importer

import (
	"fmt"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/parser"
)

// SheetAnalysis 单个工作表的预览信息（噪声列已删除）
type SheetAnalysis struct {
	Name       string                  `json:"name"`
	MaxRow     int                     `json:"maxRow"`
	MaxCol     int                     `json:"maxCol"`
	Candidates []model.PeriodCandidate `json:"candidates"`
	Suggested  model.PeriodSelection   `json:"suggested"`
	Removed    []model.ColumnRun       `json:"removed,omitempty"`
	Warning    string                  `json:"warning,omitempty"`
}

// Analysis 工作簿预览：工作表、期间候选与推荐的报表对应关系
type Analysis struct {
	Format       parser.Format                  `json:"format"`
	Sheets       []SheetAnalysis                `json:"sheets"`
	Suggested    map[model.StatementKind]string `json:"suggested"`
	Recognitions []model.SheetRecognition       `json:"recognitions"`
}

// Sheet 按名称取预览
func (a *Analysis) Sheet(name string) (SheetAnalysis, bool) {
	for _, s := range a.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetAnalysis{}, false
}

// Analyze 预览工作簿，供调用方选择工作表与期间列
//
// 每个工作表取独立副本处理，不影响之后的正式处理。
func (e *Engine) Analyze(wb parser.Workbook) (*Analysis, error) {
	if wb == nil {
		return nil, model.ErrNoWorkbook
	}

	a := &Analysis{Format: wb.Format()}
	tables := make([]parser.RawTable, 0, len(wb.SheetNames()))
	for _, name := range wb.SheetNames() {
		t, err := wb.Table(name)
		if err != nil {
			return nil, fmt.Errorf("读取工作表 %s 失败: %w", name, err)
		}
		removed, cands, warning, err := e.cleanAndScan(t)
		if err != nil {
			return nil, err
		}
		if cands == nil {
			cands = []model.PeriodCandidate{}
		}
		a.Sheets = append(a.Sheets, SheetAnalysis{
			Name:       name,
			MaxRow:     t.MaxRow(),
			MaxCol:     t.MaxCol(),
			Candidates: cands,
			Suggested:  parser.SelectionFor(cands, parser.SuggestPeriods(cands)),
			Removed:    removed,
			Warning:    warning,
		})
		tables = append(tables, t)
	}

	a.Suggested, a.Recognitions = parser.NewStatementRecognizer(e.registry).Suggest(tables)
	return a, nil
}

// Request 按推荐结果构造处理请求，explicit 中的选择优先
func (a *Analysis) Request(runID, filename string, explicit map[model.StatementKind]StatementRequest) Request {
	req := Request{
		RunID:      runID,
		Filename:   filename,
		Statements: make(map[model.StatementKind]StatementRequest, len(model.AllStatements)),
	}
	for _, kind := range model.AllStatements {
		sr := explicit[kind]
		if sr.Sheet == "" {
			sr.Sheet = a.Suggested[kind]
		}
		if selectionEmpty(sr.Periods) {
			if s, ok := a.Sheet(sr.Sheet); ok {
				sr.Periods = s.Suggested
			}
		}
		req.Statements[kind] = sr
	}
	return req
}
