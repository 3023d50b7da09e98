package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"

	"github.com/chenshien/Customer-report-conversion-tool/internal/calculator"
	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// 输出工作表名
const (
	SheetIndicators = "重点财务指标"
	SheetChecks     = "核对结果"
)

var (
	statementHeaders = []string{"科目名称", "行次", "本期", "上期", "年初"}
	indicatorHeaders = []string{"指标", "本期", "上期", "年初"}
	checkHeaders     = []string{"类型", "报表", "科目", "期间", "源表值", "重算值", "源表行", "源表科目", "建议科目"}
)

// Options 导出选项
type Options struct {
	// RatioDecimals 指标保留的小数位
	RatioDecimals int32
	// ChecksSheet 是否输出核对结果工作表
	ChecksSheet bool
	// TemplatePath 以已有工作簿为底稿（保留其中的其他工作表），为空时新建
	TemplatePath string
}

// DefaultOptions 默认导出选项
func DefaultOptions() Options {
	return Options{RatioDecimals: 2, ChecksSheet: true}
}

// Exporter 结果导出器
type Exporter struct {
	opts Options
}

// NewExporter 创建导出器
func NewExporter(opts Options) *Exporter {
	if opts.RatioDecimals < 0 {
		opts.RatioDecimals = 2
	}
	return &Exporter{opts: opts}
}

// Export 导出 Excel
func (e *Exporter) Export(res *model.Result) (*excelize.File, error) {
	return e.ExportWithProgress(res, nil)
}

// ExportWithProgress 导出 Excel，并通过回调汇报进度
func (e *Exporter) ExportWithProgress(res *model.Result, progress func(ProgressEvent)) (*excelize.File, error) {
	if res == nil {
		return nil, fmt.Errorf("导出失败: 结果为空")
	}

	pr := newProgressReporter(progress)
	pr.report(0, "准备工作簿")
	f, err := e.openWorkbook()
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f}
	total := len(model.AllStatements) + 2
	for i, kind := range model.AllStatements {
		pr.report((i+1)*100/total, "写入"+kind.Title())
		if err := w.writeStatement(kind, res.Templates[kind]); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	pr.report((len(model.AllStatements)+1)*100/total, "写入"+SheetIndicators)
	if err := w.writeIndicators(res.Indicators, e.opts.RatioDecimals); err != nil {
		_ = f.Close()
		return nil, err
	}

	if e.opts.ChecksSheet {
		pr.report(95, "写入"+SheetChecks)
		if err := w.writeChecks(res); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if e.opts.TemplatePath == "" {
		if err := w.dropPlaceholder(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if idx, err := f.GetSheetIndex(model.StatementBalanceSheet.Title()); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	pr.report(100, "完成")
	return f, nil
}

// Write 导出并写入 w
func (e *Exporter) Write(res *model.Result, out io.Writer) error {
	f, err := e.Export(res)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(out); err != nil {
		return fmt.Errorf("写入导出文件失败: %w", err)
	}
	return nil
}

// SaveAs 导出到文件
func (e *Exporter) SaveAs(res *model.Result, path string) error {
	f, err := e.Export(res)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存导出文件失败: %w", err)
	}
	return nil
}

func (e *Exporter) openWorkbook() (*excelize.File, error) {
	if p := strings.TrimSpace(e.opts.TemplatePath); p != "" {
		f, err := excelize.OpenFile(p)
		if err != nil {
			return nil, fmt.Errorf("打开底稿失败: %w", err)
		}
		return f, nil
	}
	return excelize.NewFile(), nil
}

// RoundValue 四舍五入到指定小数位
func RoundValue(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// sheetWriter 按行写入工作表，列宽取该列最长内容
type sheetWriter struct {
	f           *excelize.File
	headerStyle int
}

func (w *sheetWriter) style() (int, error) {
	if w.headerStyle != 0 {
		return w.headerStyle, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("创建表头样式失败: %w", err)
	}
	w.headerStyle = id
	return id, nil
}

// resetSheet 删除同名工作表后重新创建
func (w *sheetWriter) resetSheet(name string) error {
	if idx, err := w.f.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := w.f.DeleteSheet(name); err != nil {
			return fmt.Errorf("清理工作表 %s 失败: %w", name, err)
		}
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("创建工作表 %s 失败: %w", name, err)
	}
	return nil
}

// writeTable 写入表头与数据行；nil 单元格保持空白
func (w *sheetWriter) writeTable(sheet string, headers []string, rows [][]interface{}) error {
	if err := w.resetSheet(sheet); err != nil {
		return err
	}

	widths := make([]int, len(headers))
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
		widths[i] = displayWidth(h)
	}
	if err := w.f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("写入 %s 表头失败: %w", sheet, err)
	}
	style, err := w.style()
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("设置 %s 表头样式失败: %w", sheet, err)
	}

	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := w.f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("写入 %s!%s 失败: %w", sheet, cell, err)
			}
			if j < len(widths) {
				if n := displayWidth(fmt.Sprint(v)); n > widths[j] {
					widths[j] = n
				}
			}
		}
	}

	for i, n := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(sheet, col, col, float64(n+2)); err != nil {
			return fmt.Errorf("设置 %s 列宽失败: %w", sheet, err)
		}
	}
	return nil
}

func (w *sheetWriter) writeStatement(kind model.StatementKind, t *model.Template) error {
	var rows [][]interface{}
	if t != nil {
		rows = make([][]interface{}, 0, len(t.Slots))
		for _, s := range t.Slots {
			rows = append(rows, []interface{}{
				s.Name, s.Line,
				s.Values[model.PeriodCurrent], s.Values[model.PeriodPrevious], s.Values[model.PeriodYearStart],
			})
		}
	}
	if err := w.writeTable(kind.Title(), statementHeaders, rows); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", kind.Title(), err)
	}
	return nil
}

func (w *sheetWriter) writeIndicators(ind model.Indicators, places int32) error {
	catalog := calculator.Catalog()
	rows := make([][]interface{}, 0, len(catalog))
	for _, info := range catalog {
		row := []interface{}{info.DisplayName()}
		for _, p := range model.AllPeriods {
			v, ok := ind.Get(p, info.Name)
			if !ok {
				row = append(row, nil)
				continue
			}
			row = append(row, RoundValue(v, places))
		}
		rows = append(rows, row)
	}
	if err := w.writeTable(SheetIndicators, indicatorHeaders, rows); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", SheetIndicators, err)
	}
	return nil
}

func (w *sheetWriter) writeChecks(res *model.Result) error {
	var rows [][]interface{}
	for _, d := range res.Discrepancies {
		rows = append(rows, []interface{}{
			"合计不一致", d.Statement.Title(), d.Slot, d.Period.Label(), d.Reported, d.Computed, nil, nil, nil,
		})
	}
	for _, b := range res.BalanceIssues {
		rows = append(rows, []interface{}{
			"资产负债表不平衡", model.StatementBalanceSheet.Title(), "资产总计", b.Period.Label(),
			b.TotalAssets, b.TotalLiabilitiesAndEquity, nil, nil, nil,
		})
	}
	for _, o := range res.Omissions {
		var suggestion interface{}
		if o.Suggestion != "" {
			suggestion = o.Suggestion
		}
		rows = append(rows, []interface{}{
			"源表科目未匹配", o.Statement.Title(), nil, nil, nil, nil, o.Row, o.Label, suggestion,
		})
	}
	for _, kind := range model.AllStatements {
		for _, name := range res.Unmatched[kind] {
			rows = append(rows, []interface{}{
				"模板科目未填充", kind.Title(), name, nil, nil, nil, nil, nil, nil,
			})
		}
	}
	if err := w.writeTable(SheetChecks, checkHeaders, rows); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", SheetChecks, err)
	}
	return nil
}

// dropPlaceholder 删除新建工作簿自带的 Sheet1
func (w *sheetWriter) dropPlaceholder() error {
	const placeholder = "Sheet1"
	if idx, err := w.f.GetSheetIndex(placeholder); err != nil || idx < 0 {
		return nil
	}
	if err := w.f.DeleteSheet(placeholder); err != nil {
		return fmt.Errorf("删除工作表 %s 失败: %w", placeholder, err)
	}
	return nil
}

// displayWidth 东亚宽字符按 2 计
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
