package exporter

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

func sampleResult() *model.Result {
	res := model.NewResult("run-1", "客户报表.xlsx")
	reg := template.Default()
	for _, kind := range model.AllStatements {
		res.Templates[kind] = reg.New(kind)
	}
	bs := res.Templates[model.StatementBalanceSheet]
	bs.Set(template.BSMonetaryFunds, model.PeriodCurrent, 1234.5)
	bs.Set(template.BSMonetaryFunds, model.PeriodYearStart, 1000)

	res.Indicators[model.PeriodCurrent]["资产负债率"] = 42.857142
	res.Indicators[model.PeriodPrevious]["资产负债率"] = 40
	res.Discrepancies = []model.Discrepancy{{
		Statement: model.StatementBalanceSheet, Slot: "流动资产合计", Period: model.PeriodCurrent, Reported: 999, Computed: 150,
	}}
	res.Omissions = []model.Omission{{Statement: model.StatementIncomeStatement, Row: 7, Label: "其他收益净额", Suggestion: "其他收益"}}
	res.Unmatched[model.StatementCashFlow] = []string{"收到的税费返还"}
	return res
}

func TestExport_SheetLayout(t *testing.T) {
	t.Parallel()

	f, err := NewExporter(DefaultOptions()).Export(sampleResult())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	want := []string{"资产负债表", "现金流量表", "损益表", SheetIndicators, SheetChecks}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sheet[%d] want=%s got=%s", i, want[i], got[i])
		}
	}

	rows, err := f.GetRows("资产负债表")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if rows[0][0] != "科目名称" || rows[0][4] != "年初" {
		t.Fatalf("statement headers mismatch: %v", rows[0])
	}
	reg := template.Default()
	if len(rows) != len(reg.SlotNames(model.StatementBalanceSheet))+1 {
		t.Fatalf("balance sheet rows want=%d got=%d", len(reg.SlotNames(model.StatementBalanceSheet))+1, len(rows))
	}
	if rows[2][0] != template.BSMonetaryFunds || rows[2][2] != "1234.5" || rows[2][4] != "1000" {
		t.Fatalf("货币资金 row mismatch: %v", rows[2])
	}

	styleID, err := f.GetCellStyle("资产负债表", "A1")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Fatalf("header should be bold")
	}

	w, err := f.GetColWidth("资产负债表", "A")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if w < float64(displayWidth("负债和所有者权益（或股东权益）总计")+2) {
		t.Fatalf("column A too narrow: %v", w)
	}
}

func TestExport_IndicatorsRoundedAndBlank(t *testing.T) {
	t.Parallel()

	f, err := NewExporter(DefaultOptions()).Export(sampleResult())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetIndicators)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 23 {
		t.Fatalf("indicator rows want=23 got=%d", len(rows))
	}
	if rows[1][0] != "资产负债率(%)" {
		t.Fatalf("first indicator want=资产负债率(%%) got=%s", rows[1][0])
	}
	if rows[1][1] != "42.86" || rows[1][2] != "40" {
		t.Fatalf("资产负债率 values mismatch: %v", rows[1])
	}
	if len(rows[1]) > 3 && rows[1][3] != "" {
		t.Fatalf("undefined year start should be blank, got=%q", rows[1][3])
	}
	if v, _ := f.GetCellValue(SheetIndicators, "B3"); v != "" {
		t.Fatalf("undefined indicator should be blank, got=%q", v)
	}
}

func TestExport_ChecksSheet(t *testing.T) {
	t.Parallel()

	f, err := NewExporter(DefaultOptions()).Export(sampleResult())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetChecks)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("check rows want=4 got=%d: %v", len(rows), rows)
	}
	if rows[1][0] != "合计不一致" || rows[1][4] != "999" || rows[1][5] != "150" {
		t.Fatalf("discrepancy row mismatch: %v", rows[1])
	}
	if rows[2][0] != "源表科目未匹配" || rows[2][7] != "其他收益净额" || rows[2][8] != "其他收益" {
		t.Fatalf("omission row mismatch: %v", rows[2])
	}
	if rows[3][0] != "模板科目未填充" || rows[3][2] != "收到的税费返还" {
		t.Fatalf("unmatched row mismatch: %v", rows[3])
	}

	opts := DefaultOptions()
	opts.ChecksSheet = false
	g, err := NewExporter(opts).Export(sampleResult())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })
	if idx, _ := g.GetSheetIndex(SheetChecks); idx >= 0 {
		t.Fatalf("checks sheet should be omitted")
	}
}

func TestExport_TemplateWorkbookKeepsOtherSheets(t *testing.T) {
	t.Parallel()

	base := excelize.NewFile()
	if err := base.SetSheetName("Sheet1", "封面"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := base.SetCellValue("封面", "A1", "客户名称"); err != nil {
		t.Fatalf("set: %v", err)
	}
	path := filepath.Join(t.TempDir(), "base.xlsx")
	if err := base.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = base.Close()

	opts := DefaultOptions()
	opts.TemplatePath = path
	var buf bytes.Buffer
	var stages []ProgressEvent
	exp := NewExporter(opts)
	f, err := exp.ExportWithProgress(sampleResult(), func(e ProgressEvent) { stages = append(stages, e) })
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_ = f.Close()

	out, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { _ = out.Close() })
	if v, _ := out.GetCellValue("封面", "A1"); v != "客户名称" {
		t.Fatalf("template sheet lost, A1=%q", v)
	}
	if len(out.GetSheetList()) != 6 {
		t.Fatalf("sheets want=6 got=%v", out.GetSheetList())
	}
	if len(stages) == 0 || stages[len(stages)-1].Percent != 100 {
		t.Fatalf("progress should end at 100: %+v", stages)
	}
}

func TestRoundValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.235, -1.24},
		{42.857142, 42.86},
	}
	for _, tc := range cases {
		if got := RoundValue(tc.in, 2); got != tc.want {
			t.Fatalf("RoundValue(%v) want=%v got=%v", tc.in, tc.want, got)
		}
	}
}

func TestProgressReporterIsMonotonic(t *testing.T) {
	t.Parallel()

	var got []int
	pr := newProgressReporter(func(e ProgressEvent) { got = append(got, e.Percent) })
	for _, p := range []int{-5, 0, 30, 30, 20, 150, 100} {
		pr.report(p, "stage")
	}
	want := []int{0, 30, 100}
	if len(got) != len(want) {
		t.Fatalf("reports want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reports want=%v got=%v", want, got)
		}
	}

	newProgressReporter(nil).report(50, "noop")
}

func TestSaveAsAndWriteProduceSameSheets(t *testing.T) {
	t.Parallel()

	exp := NewExporter(DefaultOptions())
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := exp.SaveAs(sampleResult(), path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	saved, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	t.Cleanup(func() { _ = saved.Close() })

	var buf bytes.Buffer
	if err := exp.Write(sampleResult(), &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	written, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { _ = written.Close() })

	a, b := saved.GetSheetList(), written.GetSheetList()
	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Fatalf("sheet lists differ: %v vs %v", a, b)
	}
	if _, err := NewExporter(DefaultOptions()).Export(nil); err == nil {
		t.Fatalf("nil result should fail")
	}
}
