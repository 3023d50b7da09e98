package parser

import (
	"testing"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

func TestCellFromString(t *testing.T) {
	t.Parallel()

	if got := CellFromString("  "); !got.IsEmpty() {
		t.Fatalf("blank want=empty got=%+v", got)
	}
	if got := CellFromString("12.5"); got.Kind != model.CellNumber || got.Number != 12.5 {
		t.Fatalf("number want=12.5 got=%+v", got)
	}
	if got := CellFromString("1,200"); got.Kind != model.CellText {
		t.Fatalf("thousands separator stays text, got=%+v", got)
	}
	if got := CellFromString("NaN"); got.Kind != model.CellText {
		t.Fatalf("NaN stays text, got=%+v", got)
	}
}

func TestMemTableRemoveColumns(t *testing.T) {
	t.Parallel()

	tbl := NewMemTableFromStrings("s", [][]string{
		{"A", "B", "C", "D", "E"},
		{"a", "b"},
	})
	tbl.SetFormula(1, 5, model.Number(9))
	tbl.SetFormula(1, 3, model.Number(3))

	if err := tbl.RemoveColumns(2, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if tbl.MaxCol() != 3 {
		t.Fatalf("max col want=3 got=%d", tbl.MaxCol())
	}
	if got := tbl.Cell(1, 2).String(); got != "D" {
		t.Fatalf("cell(1,2) want=D got=%s", got)
	}
	if got := tbl.Cell(2, 2); !got.IsEmpty() {
		t.Fatalf("short row cell(2,2) want=empty got=%+v", got)
	}
	if v, ok := tbl.Formula(1, 3); !ok || v.Number != 9 {
		t.Fatalf("formula shifted to col 3 want=9 got=%+v ok=%v", v, ok)
	}
	if _, ok := tbl.Formula(1, 1); ok {
		t.Fatalf("formula in removed column should be dropped")
	}
	if err := tbl.RemoveColumns(0, 1); err == nil {
		t.Fatalf("expected error for column 0")
	}
}

func TestMemTableCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := NewMemTableFromStrings("s", [][]string{{"A", "B", "C"}})
	cp := orig.Clone()
	if err := cp.RemoveColumns(1, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if orig.MaxCol() != 3 || orig.Cell(1, 1).String() != "A" {
		t.Fatalf("original modified: max=%d a1=%s", orig.MaxCol(), orig.Cell(1, 1).String())
	}
}
