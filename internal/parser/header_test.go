package parser

import (
	"errors"
	"testing"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

func balanceHeaderTable() *MemTable {
	return NewMemTableFromStrings("资产负债表", [][]string{
		{"资产负债表"},
		{"编制单位：甲公司", "", "2024年12月31日"},
		{"项目", "行次", "期末余额", "年初余额"},
		{"货币资金", "1", "100", "80"},
	})
}

func TestScanPeriodColumns_LastSeenWins(t *testing.T) {
	t.Parallel()

	cands, warn := ScanPeriodColumns(balanceHeaderTable(), DefaultScanOptions())
	if warn != "" {
		t.Fatalf("unexpected warning: %s", warn)
	}
	if len(cands) != 2 {
		t.Fatalf("candidates want=2 got=%d (%+v)", len(cands), cands)
	}
	if cands[0].Column != 3 || cands[0].Header != "期末余额" || cands[0].Row != 3 || cands[0].Letter != "C" {
		t.Fatalf("first candidate unexpected: %+v", cands[0])
	}
	if cands[1].Column != 4 || cands[1].Header != "年初余额" {
		t.Fatalf("second candidate unexpected: %+v", cands[1])
	}
}

func TestScanPeriodColumns_Window(t *testing.T) {
	t.Parallel()

	rows := make([][]string, 8)
	for i := range rows {
		rows[i] = []string{"项目"}
	}
	rows[7] = []string{"项目", "本期金额"}
	cands, warn := ScanPeriodColumns(NewMemTableFromStrings("s", rows), DefaultScanOptions())
	if len(cands) != 0 || warn == "" {
		t.Fatalf("row 8 is outside the window: cands=%+v warn=%q", cands, warn)
	}

	cands, _ = ScanPeriodColumns(NewMemTableFromStrings("s", rows), ScanOptions{Rows: 8})
	if len(cands) != 1 || cands[0].Column != 2 {
		t.Fatalf("rows=8 want col 2 got=%+v", cands)
	}

	wide := make([]string, 120)
	wide[110] = "本期"
	cands, _ = ScanPeriodColumns(NewMemTableFromStrings("s", [][]string{wide}), DefaultScanOptions())
	if len(cands) != 0 {
		t.Fatalf("column 111 is beyond the 100 column window, got=%+v", cands)
	}
}

func TestScanPeriodColumns_EnglishCaseInsensitive(t *testing.T) {
	t.Parallel()

	tbl := NewMemTableFromStrings("s", [][]string{{"Item", "Current Period", "Prior Period", "Note"}})
	cands, _ := ScanPeriodColumns(tbl, DefaultScanOptions())
	if len(cands) != 2 || cands[0].Column != 2 || cands[1].Column != 3 {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
}

func TestSuggestPeriods(t *testing.T) {
	t.Parallel()

	cands, _ := ScanPeriodColumns(balanceHeaderTable(), DefaultScanOptions())
	got := SuggestPeriods(cands)
	if got[model.PeriodCurrent] != 3 || got[model.PeriodYearStart] != 4 || got[model.PeriodPrevious] != 0 {
		t.Fatalf("unexpected suggestion: %+v", got)
	}
}

func TestInferPeriodKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		year   int
		month  int
		want   model.PeriodKind
		ok     bool
	}{
		{"本期金额", 0, 0, model.PeriodCurrent, true},
		{"上期金额", 0, 0, model.PeriodPrevious, true},
		{"上年同期", 0, 0, model.PeriodPrevious, true},
		{"年初数", 0, 0, model.PeriodYearStart, true},
		{"期初余额", 0, 0, model.PeriodYearStart, true},
		{"2024年12月31日", 2024, 12, model.PeriodCurrent, true},
		{"2023年12月31日", 2024, 12, model.PeriodPrevious, true},
		{"2023年12月31日", 2024, 6, model.PeriodYearStart, true},
		{"2024年", 2024, 0, model.PeriodCurrent, true},
		{"备注", 2024, 12, "", false},
	}
	for _, tc := range cases {
		got, ok := InferPeriodKind(tc.header, tc.year, tc.month)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s want=%s/%v got=%s/%v", tc.header, tc.want, tc.ok, got, ok)
		}
	}
}

func TestResolveSelection(t *testing.T) {
	t.Parallel()

	cands, _ := ScanPeriodColumns(balanceHeaderTable(), DefaultScanOptions())
	cols, err := ResolveSelection(cands, model.PeriodSelection{
		model.PeriodCurrent:   "期末余额",
		model.PeriodYearStart: "d",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cols[model.PeriodCurrent] != 3 || cols[model.PeriodYearStart] != 4 || cols[model.PeriodPrevious] != 0 {
		t.Fatalf("unexpected columns: %+v", cols)
	}

	_, err = ResolveSelection(cands, model.PeriodSelection{model.PeriodCurrent: "本期数"})
	if !errors.Is(err, model.ErrUnknownPeriodHeader) {
		t.Fatalf("want ErrUnknownPeriodHeader got=%v", err)
	}
}

func TestSelectionFor(t *testing.T) {
	t.Parallel()

	cands, _ := ScanPeriodColumns(balanceHeaderTable(), DefaultScanOptions())
	sel := SelectionFor(cands, model.PeriodColumnMap{model.PeriodCurrent: 3, model.PeriodPrevious: 2})
	if sel[model.PeriodCurrent] != "期末余额" || sel[model.PeriodPrevious] != "B" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
}
