// Package importer 把工作簿中的三张报表转换为标准模板，并协调整个处理流程。
package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/calculator"
	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/normalizer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/parser"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

// noiseWarnThreshold 单张表删除的噪声列超过该数量时告警
const noiseWarnThreshold = 20

// balanceRightLabelCols 资产负债表右半部分科目名的候选列，取第一个非空的
var balanceRightLabelCols = []int{5, 6}

// Options 引擎参数
type Options struct {
	Scan        parser.ScanOptions
	Noise       parser.NoiseOptions
	TotalPolicy calculator.TotalPolicy
}

// DefaultOptions 默认引擎参数
func DefaultOptions() Options {
	return Options{
		Scan:        parser.DefaultScanOptions(),
		Noise:       parser.DefaultNoiseOptions(),
		TotalPolicy: calculator.PolicyComputed,
	}
}

// Engine 单次处理同步执行，每次处理独占自己的模板
type Engine struct {
	registry *template.Registry
	calc     *calculator.Calculator
	opts     Options
	logger   *zap.Logger
}

// NewEngine 创建转换引擎
func NewEngine(reg *template.Registry, opts Options, logger *zap.Logger) *Engine {
	if reg == nil {
		reg = template.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry: reg,
		calc:     calculator.NewCalculator(reg, opts.TotalPolicy, logger),
		opts:     opts,
		logger:   logger,
	}
}

// Registry 引擎使用的模板注册表
func (e *Engine) Registry() *template.Registry {
	return e.registry
}

// Policy 合计策略
func (e *Engine) Policy() calculator.TotalPolicy {
	return e.calc.Policy()
}

// StatementRequest 单张报表的输入：工作表名与期间列选择
type StatementRequest struct {
	Sheet   string                `json:"sheet"`
	Periods model.PeriodSelection `json:"periods"`
}

// Request 一次处理的输入
type Request struct {
	RunID      string
	Filename   string
	Statements map[model.StatementKind]StatementRequest
}

// PreparedStatement 已完成噪声列删除与期间列解析的报表
type PreparedStatement struct {
	Kind       model.StatementKind
	Sheet      string
	Table      parser.RawTable
	Candidates []model.PeriodCandidate
	Columns    model.PeriodColumnMap
	Removed    []model.ColumnRun
	Warnings   []string
	// Suggested 期间列来自自动识别而非调用方选择
	Suggested bool
}

// Prepare 检查输入形态并准备三张报表
//
// 所有输入形态错误在开始匹配之前返回，此时不会产生任何结果。
func (e *Engine) Prepare(wb parser.Workbook, req Request) ([]*PreparedStatement, error) {
	if wb == nil {
		return nil, model.ErrNoWorkbook
	}

	out := make([]*PreparedStatement, 0, len(model.AllStatements))
	for _, kind := range model.AllStatements {
		sr, ok := req.Statements[kind]
		if !ok || strings.TrimSpace(sr.Sheet) == "" {
			return nil, fmt.Errorf("%s: %w", kind.Title(), model.ErrSheetNotSelected)
		}
		t, err := wb.Table(sr.Sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind.Title(), err)
		}
		ps, err := e.prepareTable(kind, t, sr.Periods)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind.Title(), err)
		}
		out = append(out, ps)
	}
	return out, nil
}

func (e *Engine) prepareTable(kind model.StatementKind, t parser.RawTable, sel model.PeriodSelection) (*PreparedStatement, error) {
	ps := &PreparedStatement{Kind: kind, Sheet: t.Name(), Table: t}

	removed, cands, warning, err := e.cleanAndScan(t)
	if err != nil {
		return nil, err
	}
	ps.Removed = removed
	ps.Candidates = cands
	if warning != "" {
		ps.Warnings = append(ps.Warnings, warning)
	}

	if selectionEmpty(sel) {
		ps.Columns = parser.SuggestPeriods(cands)
		ps.Suggested = true
		ps.Warnings = append(ps.Warnings, fmt.Sprintf("%s 未指定期间列，使用自动识别结果 %v", kind.Title(), ps.Columns.Letters()))
	} else {
		cols, err := parser.ResolveSelection(cands, sel)
		if err != nil {
			return nil, err
		}
		ps.Columns = cols
	}

	e.logger.Debug("期间列",
		zap.String("statement", string(kind)),
		zap.String("sheet", t.Name()),
		zap.Any("columns", ps.Columns.Letters()),
	)
	return ps, nil
}

// cleanAndScan 先删除噪声列，再在清理后的表上扫描期间列
func (e *Engine) cleanAndScan(t parser.RawTable) ([]model.ColumnRun, []model.PeriodCandidate, string, error) {
	noise := parser.DetectNoiseColumns(t, e.opts.Noise)
	if len(noise) > noiseWarnThreshold {
		e.logger.Warn("噪声列数量异常",
			zap.String("sheet", t.Name()),
			zap.Int("count", len(noise)),
		)
	}
	removed, err := parser.RemoveNoiseColumns(t, noise)
	if err != nil {
		return nil, nil, "", err
	}
	for _, run := range removed {
		e.logger.Info("删除噪声列",
			zap.String("sheet", t.Name()),
			zap.String("from", parser.ColumnLetter(run.Start)),
			zap.Int("count", run.Count),
		)
	}

	cands, warning := parser.ScanPeriodColumns(t, e.opts.Scan)
	for _, c := range cands {
		e.logger.Debug("找到期间列",
			zap.String("sheet", t.Name()),
			zap.String("column", c.Letter),
			zap.String("header", c.Header),
		)
	}
	if warning != "" {
		e.logger.Warn(warning)
	}
	return removed, cands, warning, nil
}

func selectionEmpty(sel model.PeriodSelection) bool {
	for _, v := range sel {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Extract 逐行匹配科目并填充模板，结果写入 res
func (e *Engine) Extract(ps *PreparedStatement, res *model.Result) parser.SheetReport {
	start := time.Now()
	x := &extraction{
		table:      ps.Table,
		kind:       ps.Kind,
		tmpl:       e.registry.New(ps.Kind),
		matcher:    parser.NewMatcher(e.registry.Synonyms(ps.Kind)),
		suggester:  parser.NewSuggester(e.registry.Synonyms(ps.Kind), e.registry.SlotNames(ps.Kind)),
		matched:    make(map[string]bool),
		headerRows: e.opts.Scan.Rows,
		logger:     e.logger,
	}
	if x.headerRows <= 0 {
		x.headerRows = parser.DefaultScanOptions().Rows
	}

	for row := 1; row <= ps.Table.MaxRow(); row++ {
		x.matchCell(row, 1, ps.Columns)
		if ps.Kind != model.StatementBalanceSheet {
			continue
		}
		for _, col := range balanceRightLabelCols {
			if valueColumn(ps.Columns, col) {
				break
			}
			if label(ps.Table, row, col) == "" || parser.IsNumeric(ps.Table.Cell(row, col)) {
				continue
			}
			x.matchCell(row, col, ps.Columns.Shift(col-1))
			break
		}
	}

	res.Templates[ps.Kind] = x.tmpl
	res.Omissions = append(res.Omissions, x.omissions...)
	res.Inputs[ps.Kind] = model.StatementInput{Sheet: ps.Sheet, Columns: ps.Columns}
	if len(ps.Removed) > 0 {
		res.RemovedColumns[ps.Kind] = ps.Removed
	}
	res.Warnings = append(res.Warnings, ps.Warnings...)

	return parser.SheetReport{
		Statement:   ps.Kind,
		SheetName:   ps.Sheet,
		Columns:     ps.Columns.Letters(),
		TotalRows:   ps.Table.MaxRow(),
		MatchedRows: len(x.matched),
		OmittedRows: len(x.omissions),
		Removed:     ps.Removed,
		Warnings:    ps.Warnings,
		Duration:    time.Since(start),
	}
}

// Finish 重算合计、校验平衡并计算指标
func (e *Engine) Finish(res *model.Result, report *parser.ImportReport) {
	e.calc.CalculateAll(res)
	for kind, t := range res.Templates {
		res.Unmatched[kind] = t.UnmatchedNames()
	}
	if report == nil {
		return
	}
	report.Discrepancies = len(res.Discrepancies)
	report.Balanced = res.Balanced()
	for _, values := range res.Indicators {
		report.Indicators += len(values)
	}
}

// Convert 一次完成准备、匹配与计算
func (e *Engine) Convert(wb parser.Workbook, req Request) (*model.Result, *parser.ImportReport, error) {
	start := time.Now()
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	prepared, err := e.Prepare(wb, req)
	if err != nil {
		return nil, nil, err
	}

	res := model.NewResult(req.RunID, req.Filename)
	report := &parser.ImportReport{RunID: req.RunID, Filename: req.Filename}
	for _, ps := range prepared {
		report.Add(e.Extract(ps, res))
	}
	e.Finish(res, report)
	report.Duration = time.Since(start)
	return res, report, nil
}

// extraction 单张报表的一次匹配过程
type extraction struct {
	table      parser.RawTable
	kind       model.StatementKind
	tmpl       *model.Template
	matcher    *parser.Matcher
	suggester  *parser.Suggester
	matched    map[string]bool
	omissions  []model.Omission
	headerRows int // 表头区域行数，其中的期间表头不计为未匹配
	logger     *zap.Logger
}

func (x *extraction) matchCell(row, col int, cols model.PeriodColumnMap) {
	text := label(x.table, row, col)
	if text == "" {
		return
	}

	name, ok := x.matcher.Match(text, x.tmpl, x.matched)
	if !ok {
		if normalizer.MatchKey(text) == "" {
			return
		}
		if row <= x.headerRows {
			if _, isHeader := parser.InferPeriodKind(text, 0, 0); isHeader {
				return
			}
		}
		x.omissions = append(x.omissions, model.Omission{
			Statement:  x.kind,
			Row:        row,
			Label:      text,
			Suggestion: x.suggester.Suggest(text),
		})
		return
	}

	x.matched[name] = true
	slot, _ := x.tmpl.Get(name)
	values := parser.ExtractValues(x.table, row, cols)
	slot.Matched = true
	slot.SourceRow = row
	slot.Reported = make(map[model.PeriodKind]float64, len(values))
	for p, v := range values {
		slot.Values[p] = v
		slot.Reported[p] = v
	}
	x.logger.Debug("读取科目",
		zap.String("statement", string(x.kind)),
		zap.Int("row", row),
		zap.String("label", text),
		zap.String("slot", slot.DisplayName()),
	)
}

// valueColumn 该列是否为已选的期间列（单侧资产负债表的数值列不作科目名）
func valueColumn(cols model.PeriodColumnMap, col int) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}

func label(t parser.RawTable, row, col int) string {
	return strings.TrimSpace(t.Cell(row, col).String())
}
