package parser

import (
	"testing"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

func labelTable(name string, labels ...string) *MemTable {
	rows := [][]string{{"项目", "本期金额", "上期金额"}}
	for _, l := range labels {
		rows = append(rows, []string{l, "1", "1"})
	}
	return NewMemTableFromStrings(name, rows)
}

func TestStatementRecognizer_Suggest(t *testing.T) {
	t.Parallel()

	bs := labelTable("Sheet1",
		template.BSMonetaryFunds, template.BSAccountsReceivable, template.BSInventory,
		template.BSCurrentAssetsTotal, template.BSFixedAssets, template.BSTotalAssets,
	)
	is := labelTable("利润表", template.ISRevenue, template.ISCostOfSales, template.ISNetProfit)
	cf := labelTable("Sheet3",
		template.CFSalesCash, template.CFTaxRefunds, template.CFOperatingNet, template.CFInvestingNet,
	)
	notes := labelTable("附注", "说明", "单位：元")

	r := NewStatementRecognizer(template.Default())
	got, all := r.Suggest([]RawTable{notes, bs, is, cf})

	want := map[model.StatementKind]string{
		model.StatementBalanceSheet:    "Sheet1",
		model.StatementIncomeStatement: "利润表",
		model.StatementCashFlow:        "Sheet3",
	}
	for kind, sheet := range want {
		if got[kind] != sheet {
			t.Fatalf("%s want=%s got=%s (all=%+v)", kind, sheet, got[kind], all)
		}
	}
	if len(all) != 4*len(model.AllStatements) {
		t.Fatalf("recognitions want=%d got=%d", 4*len(model.AllStatements), len(all))
	}
}

func TestStatementRecognizer_NameBoost(t *testing.T) {
	t.Parallel()

	r := NewStatementRecognizer(nil)
	recs := r.Recognize(labelTable("Cash Flow 2024"))
	for _, rec := range recs {
		if rec.Kind == model.StatementCashFlow && rec.Score != nameBoost {
			t.Fatalf("cash flow score want=%v got=%v", nameBoost, rec.Score)
		}
		if rec.Kind != model.StatementCashFlow && rec.Score != 0 {
			t.Fatalf("%s score want=0 got=%v", rec.Kind, rec.Score)
		}
	}
}

func TestStatementRecognizer_BalanceRightHandLabels(t *testing.T) {
	t.Parallel()

	tbl := NewMemTableFromStrings("s", [][]string{
		{"资产", "行次", "期末", "年初", "负债和所有者权益"},
		{"货币资金", "1", "1", "1", "短期借款"},
		{"存货", "2", "1", "1", "应付账款"},
	})
	r := NewStatementRecognizer(nil)
	for _, rec := range r.Recognize(tbl) {
		if rec.Kind == model.StatementBalanceSheet && rec.Matched != 4 {
			t.Fatalf("balance sheet matched want=4 got=%d", rec.Matched)
		}
	}
}
