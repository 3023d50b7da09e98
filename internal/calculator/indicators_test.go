package calculator

import (
	"math"
	"testing"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleStatements() (bs, is, cf *model.Template) {
	reg := template.Default()
	bs = reg.New(model.StatementBalanceSheet)
	is = reg.New(model.StatementIncomeStatement)
	cf = reg.New(model.StatementCashFlow)

	set := func(t *model.Template, name string, cur, prev, ys float64) {
		t.Set(name, model.PeriodCurrent, cur)
		t.Set(name, model.PeriodPrevious, prev)
		t.Set(name, model.PeriodYearStart, ys)
	}
	set(bs, template.BSMonetaryFunds, 400, 300, 200)
	set(bs, template.BSAccountsReceivable, 100, 100, 100)
	set(bs, template.BSInventory, 200, 150, 100)
	set(bs, template.BSFixedAssets, 300, 250, 200)
	set(bs, template.BSShortTermLoans, 200, 150, 100)
	set(bs, template.BSLongTermLoans, 100, 100, 100)
	set(bs, template.BSShareCapital, 500, 400, 300)
	set(bs, template.BSRetainedEarnings, 200, 150, 100)

	set(is, template.ISRevenue, 1200, 1000, 0)
	set(is, template.ISCostOfSales, 800, 700, 0)
	set(is, template.ISFinanceCosts, 20, 10, 0)
	set(is, template.ISIncomeTax, 95, 72.5, 0)

	set(cf, template.CFSalesCash, 1100, 900, 0)
	set(cf, template.CFPurchasesCash, 700, 650, 0)

	for _, pair := range []struct {
		t    *model.Template
		kind model.StatementKind
	}{{bs, model.StatementBalanceSheet}, {is, model.StatementIncomeStatement}, {cf, model.StatementCashFlow}} {
		ComputeTotals(pair.t, reg.Formulas(pair.kind), PolicyComputed)
	}
	return bs, is, cf
}

func TestCatalogOrder(t *testing.T) {
	t.Parallel()

	cat := Catalog()
	if len(cat) != 22 {
		t.Fatalf("catalog size want=22 got=%d", len(cat))
	}
	if cat[0].DisplayName() != "资产负债率(%)" {
		t.Fatalf("first want=资产负债率(%%) got=%s", cat[0].DisplayName())
	}
	if cat[2].DisplayName() != "总债务/EBITDA" {
		t.Fatalf("third want=总债务/EBITDA got=%s", cat[2].DisplayName())
	}
	if cat[11].DisplayName() != "总资产周转率(次)" {
		t.Fatalf("twelfth want=总资产周转率(次) got=%s", cat[11].DisplayName())
	}
	if cat[21].Name != "经营活动现金净流量/流动负债" {
		t.Fatalf("last want=经营活动现金净流量/流动负债 got=%s", cat[21].Name)
	}
}

func TestComputeIndicators_Values(t *testing.T) {
	t.Parallel()

	bs, is, cf := sampleStatements()
	ind, faults := ComputeIndicators(bs, is, cf)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}

	cur := model.PeriodCurrent
	// 资产 1000，负债 300，权益 700
	cases := map[string]float64{
		"资产负债率":           30,
		"流动比率":            700.0 / 200 * 100,
		"速动比率":            (700.0 - 200) / 200 * 100,
		"全部资本化比率":         300.0 / 1000 * 100,
		"已获利息倍数":          (380.0 + 20) / 20,
		"利息保障倍数":          (380.0 + 20) / 20,
		"总债务/EBITDA":      300.0 / 400,
		"净资产收益率":          285.0 / 700 * 100,
		"销售利润率":           380.0 / 1200 * 100,
		"经营活动现金流量/销售收入":   400.0 / 1200,
		"成本费用利润率":         380.0 / 820 * 100,
		"总资产周转率":          1200.0 / ((1000.0 + 600) / 2),
		"存货周转率":           800.0 / 150,
		"销售增长率":           20,
		"资本积累率":           (700.0 - 550) / 550 * 100,
		"营业收入现金含量":        1100.0 / 1200 * 100,
		"经营活动现金净流量/流动负债":  400.0 / 200 * 100,
		"经营活动现金净流量/总债务":   400.0 / 300,
		"总资产报酬率":          400.0 / 1000 * 100,
		"应收账款周转率":         1200.0 / 100,
		"流动资产周转率":         1200.0 / ((700.0 + 400) / 2),
		"总资产增长率":          (1000.0 - 800) / 800 * 100,
	}
	for name, want := range cases {
		got, ok := ind.Get(cur, name)
		if !ok {
			t.Fatalf("%s missing for current period", name)
		}
		if !almostEqual(got, want) {
			t.Fatalf("%s want=%v got=%v", name, want, got)
		}
	}
}

func TestComputeIndicators_Gates(t *testing.T) {
	t.Parallel()

	bs, is, cf := sampleStatements()
	ind, _ := ComputeIndicators(bs, is, cf)

	for _, name := range []string{"总资产周转率", "流动资产周转率", "存货周转率", "应收账款周转率"} {
		if _, ok := ind.Get(model.PeriodYearStart, name); ok {
			t.Fatalf("%s must not be computed for year start", name)
		}
		if _, ok := ind.Get(model.PeriodPrevious, name); !ok {
			t.Fatalf("%s should be computed for previous period", name)
		}
	}
	for _, name := range []string{"销售增长率", "资本积累率", "总资产增长率"} {
		for _, p := range []model.PeriodKind{model.PeriodPrevious, model.PeriodYearStart} {
			if _, ok := ind.Get(p, name); ok {
				t.Fatalf("%s must only be computed for current, found in %s", name, p)
			}
		}
	}
}

func TestComputeIndicators_ZeroTotalAssets(t *testing.T) {
	t.Parallel()

	reg := template.Default()
	bs := reg.New(model.StatementBalanceSheet)
	is := reg.New(model.StatementIncomeStatement)
	cf := reg.New(model.StatementCashFlow)

	ind, faults := ComputeIndicators(bs, is, cf)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}
	for _, p := range model.AllPeriods {
		if _, ok := ind.Get(p, "资产负债率"); ok {
			t.Fatalf("资产负债率 must be omitted when total assets is 0 (%s)", p)
		}
		if len(ind[p]) != 0 {
			t.Fatalf("all-zero input should define no indicator, %s got=%v", p, ind[p])
		}
	}
}

func TestComputeIndicators_NilStatement(t *testing.T) {
	t.Parallel()

	bs, _, _ := sampleStatements()
	ind, faults := ComputeIndicators(bs, nil, nil)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}
	if _, ok := ind.Get(model.PeriodCurrent, "资产负债率"); !ok {
		t.Fatalf("balance sheet ratios should still be computed")
	}
	if _, ok := ind.Get(model.PeriodCurrent, "销售利润率"); ok {
		t.Fatalf("销售利润率 needs revenue")
	}
}

func TestEvaluateRecoversPanic(t *testing.T) {
	t.Parallel()

	def := IndicatorDef{
		IndicatorInfo: model.IndicatorInfo{Name: "坏指标"},
		compute: func(statements, model.PeriodKind) (float64, bool) {
			panic("boom")
		},
	}
	_, ok, err := evaluate(def, statements{}, model.PeriodCurrent)
	if ok || err == nil {
		t.Fatalf("panic should become an error, ok=%v err=%v", ok, err)
	}
}
