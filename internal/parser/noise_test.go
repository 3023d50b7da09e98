package parser

import (
	"reflect"
	"testing"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

func TestDetectAndRemoveNoiseColumns(t *testing.T) {
	t.Parallel()

	tbl := NewMemTableFromStrings("s", [][]string{
		{"TB 科目", "本期", "上期", "TB 2024", "Global adj", "备注", "Trial Balance"},
		{"货币资金", "100", "90", "1", "2", "x", "3"},
	})

	cols := DetectNoiseColumns(tbl, DefaultNoiseOptions())
	if !reflect.DeepEqual(cols, []int{7, 5, 4}) {
		t.Fatalf("noise columns want=[7 5 4] got=%v", cols)
	}

	runs, err := RemoveNoiseColumns(tbl, cols)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := []model.ColumnRun{{Start: 7, Count: 1}, {Start: 4, Count: 2}}
	if !reflect.DeepEqual(runs, want) {
		t.Fatalf("runs want=%v got=%v", want, runs)
	}
	if tbl.MaxCol() != 4 {
		t.Fatalf("max col want=4 got=%d", tbl.MaxCol())
	}
	if got := tbl.Cell(1, 4).String(); got != "备注" {
		t.Fatalf("cell(1,4) want=备注 got=%s", got)
	}
	if got := tbl.Cell(2, 3).String(); got != "90" {
		t.Fatalf("period column untouched want=90 got=%s", got)
	}
}

func TestDetectNoiseColumns_RowWindow(t *testing.T) {
	t.Parallel()

	rows := make([][]string, 21)
	for i := range rows {
		rows[i] = []string{"项目", "本期"}
	}
	rows[20] = []string{"项目", "global"}
	if cols := DetectNoiseColumns(NewMemTableFromStrings("s", rows), DefaultNoiseOptions()); len(cols) != 0 {
		t.Fatalf("row 21 is outside the window, got=%v", cols)
	}
}

func TestGroupColumnRuns(t *testing.T) {
	t.Parallel()

	got := GroupColumnRuns([]int{3, 9, 4, 8, 10, 4, 1})
	want := []model.ColumnRun{{Start: 8, Count: 3}, {Start: 3, Count: 2}, {Start: 1, Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("runs want=%v got=%v", want, got)
	}
	if GroupColumnRuns(nil) != nil {
		t.Fatalf("empty input should give nil")
	}
}
