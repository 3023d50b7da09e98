package parser

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

func TestLoadCSV_GBK(t *testing.T) {
	t.Parallel()

	content := "项目,本期金额,上期金额\n货币资金,\"1,200.50\",900\n"
	gbk, err := simplifiedchinese.GBK.NewEncoder().String(content)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	wb, err := OpenWorkbookBytes([]byte(gbk), "资产负债表.csv", ExcelOptions{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if names := wb.SheetNames(); len(names) != 1 || names[0] != "资产负债表" {
		t.Fatalf("sheet names want=[资产负债表] got=%v", names)
	}
	tbl, err := wb.Table("资产负债表")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if got := tbl.Cell(1, 2).String(); got != "本期金额" {
		t.Fatalf("B1 want=本期金额 got=%s", got)
	}
	if got := CoerceNumber(tbl.Cell(2, 2)); got != 1200.5 {
		t.Fatalf("B2 want=1200.5 got=%v", got)
	}
	if got := tbl.Cell(2, 3); got.Kind != model.CellNumber || got.Number != 900 {
		t.Fatalf("C2 want=900 got=%+v", got)
	}
}

func TestLoadCSV_SemicolonAndBOM(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("项目;本期\n存货;5\n")...)
	wb, err := LoadCSV("s", data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tbl, _ := wb.Table("s")
	if got := tbl.Cell(1, 1).String(); got != "项目" {
		t.Fatalf("A1 want=项目 got=%q", got)
	}
	if got := CoerceNumber(tbl.Cell(2, 2)); got != 5 {
		t.Fatalf("B2 want=5 got=%v", got)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		head []byte
		name string
		want Format
	}{
		{[]byte{'P', 'K', 3, 4, 0}, "a.bin", FormatXLSX},
		{[]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1}, "a.xlsx", FormatXLS},
		{[]byte("项目,本期"), "a.CSV", FormatCSV},
		{[]byte("hello"), "a.pdf", FormatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.head, tc.name); got != tc.want {
			t.Fatalf("%s want=%s got=%s", tc.name, tc.want, got)
		}
	}

	if _, err := OpenWorkbookBytes([]byte("%PDF"), "a.pdf", ExcelOptions{}); !errors.Is(err, model.ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat got=%v", err)
	}
}
