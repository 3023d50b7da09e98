package calculator

import (
	"fmt"
	"math"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

// Gate 指标适用的期间
type Gate int

const (
	GateAllPeriods   Gate = iota // 三个期间都计算
	GateNotYearStart             // 周转率：期间值与年初取平均，年初本身不计算
	GateCurrentOnly              // 增长率：本期对上期
)

func (g Gate) allows(p model.PeriodKind) bool {
	switch g {
	case GateNotYearStart:
		return p != model.PeriodYearStart
	case GateCurrentOnly:
		return p == model.PeriodCurrent
	default:
		return true
	}
}

// statements 指标计算的输入
type statements struct {
	bs, is, cf *model.Template
}

func value(t *model.Template, name string, p model.PeriodKind) float64 {
	if t == nil {
		return 0
	}
	return t.ValueOr0(name, p)
}

func (s statements) b(name string, p model.PeriodKind) float64 { return value(s.bs, name, p) }
func (s statements) i(name string, p model.PeriodKind) float64 { return value(s.is, name, p) }
func (s statements) c(name string, p model.PeriodKind) float64 { return value(s.cf, name, p) }

// avg 期间值与年初值的平均
func (s statements) avg(get func(string, model.PeriodKind) float64, name string, p model.PeriodKind) float64 {
	return (get(name, p) + get(name, model.PeriodYearStart)) / 2
}

// IndicatorDef 指标定义
type IndicatorDef struct {
	model.IndicatorInfo
	Gate    Gate
	compute func(s statements, p model.PeriodKind) (float64, bool)
}

func ratio(num, den float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

func percent(num, den float64) (float64, bool) {
	v, ok := ratio(num, den)
	return v * 100, ok
}

func ebitda(s statements, p model.PeriodKind) float64 {
	return s.i(template.ISTotalProfit, p) + s.i(template.ISFinanceCosts, p) +
		s.b(template.BSDepreciation, p) + s.b(template.BSIntangibleAmortization, p) +
		s.b(template.BSLongTermPrepaidAmortized, p)
}

func interestCoverage(s statements, p model.PeriodKind) (float64, bool) {
	fin := s.i(template.ISFinanceCosts, p)
	return ratio(s.i(template.ISTotalProfit, p)+fin, fin)
}

// growth 本期相对上期的增长率
func growth(get func(s statements, name string, p model.PeriodKind) float64, name string) func(statements, model.PeriodKind) (float64, bool) {
	return func(s statements, p model.PeriodKind) (float64, bool) {
		prev := get(s, name, model.PeriodPrevious)
		return percent(get(s, name, p)-prev, prev)
	}
}

// catalog 22 个指标，顺序即导出顺序
func catalog() []IndicatorDef {
	def := func(name string, unit model.IndicatorUnit, gate Gate, fn func(statements, model.PeriodKind) (float64, bool)) IndicatorDef {
		return IndicatorDef{IndicatorInfo: model.IndicatorInfo{Name: name, Unit: unit}, Gate: gate, compute: fn}
	}
	return []IndicatorDef{
		def("资产负债率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return percent(s.b(template.BSTotalLiabilities, p), s.b(template.BSTotalAssets, p))
		}),
		def("流动比率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return percent(s.b(template.BSCurrentAssetsTotal, p), s.b(template.BSCurrentLiabilitiesTotal, p))
		}),
		def("总债务/EBITDA", model.UnitNone, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return ratio(s.b(template.BSTotalLiabilities, p), ebitda(s, p))
		}),
		def("全部资本化比率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			loans := s.b(template.BSShortTermLoans, p) + s.b(template.BSLongTermLoans, p)
			return percent(loans, loans+s.b(template.BSEquityTotal, p))
		}),
		def("已获利息倍数", model.UnitNone, GateAllPeriods, interestCoverage),
		def("速动比率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			quick := s.b(template.BSCurrentAssetsTotal, p) - s.b(template.BSInventory, p) -
				s.b(template.BSPrepayments, p) - s.b(template.BSPrepaidExpenses, p)
			return percent(quick, s.b(template.BSCurrentLiabilitiesTotal, p))
		}),
		def("经营活动现金净流量/总债务", model.UnitNone, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return ratio(s.c(template.CFOperatingNet, p), s.b(template.BSTotalLiabilities, p))
		}),
		def("净资产收益率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return percent(s.i(template.ISNetProfit, p), s.b(template.BSEquityTotal, p))
		}),
		def("销售利润率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return percent(s.i(template.ISOperatingProfit, p), s.i(template.ISRevenue, p))
		}),
		def("经营活动现金流量/销售收入", model.UnitNone, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return ratio(s.c(template.CFOperatingNet, p), s.i(template.ISRevenue, p))
		}),
		def("成本费用利润率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			cost := s.i(template.ISCostOfSales, p) + s.i(template.ISTaxesAndSurcharges, p) +
				s.i(template.ISSellingExpenses, p) + s.i(template.ISAdminExpenses, p) + s.i(template.ISFinanceCosts, p)
			return percent(s.i(template.ISOperatingProfit, p), cost)
		}),
		def("总资产周转率", model.UnitTimes, GateNotYearStart, func(s statements, p model.PeriodKind) (float64, bool) {
			return ratio(s.i(template.ISRevenue, p), s.avg(s.b, template.BSTotalAssets, p))
		}),
		def("流动资产周转率", model.UnitTimes, GateNotYearStart, func(s statements, p model.PeriodKind) (float64, bool) {
			return ratio(s.i(template.ISRevenue, p), s.avg(s.b, template.BSCurrentAssetsTotal, p))
		}),
		def("存货周转率", model.UnitTimes, GateNotYearStart, func(s statements, p model.PeriodKind) (float64, bool) {
			return ratio(s.i(template.ISCostOfSales, p), s.avg(s.b, template.BSInventory, p))
		}),
		def("应收账款周转率", model.UnitTimes, GateNotYearStart, func(s statements, p model.PeriodKind) (float64, bool) {
			return ratio(s.i(template.ISRevenue, p), s.avg(s.b, template.BSAccountsReceivable, p))
		}),
		def("销售增长率", model.UnitPercent, GateCurrentOnly, growth(statements.i, template.ISRevenue)),
		def("资本积累率", model.UnitPercent, GateCurrentOnly, growth(statements.b, template.BSEquityTotal)),
		def("总资产增长率", model.UnitPercent, GateCurrentOnly, growth(statements.b, template.BSTotalAssets)),
		def("总资产报酬率", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return percent(s.i(template.ISTotalProfit, p)+s.i(template.ISFinanceCosts, p), s.b(template.BSTotalAssets, p))
		}),
		def("利息保障倍数", model.UnitNone, GateAllPeriods, interestCoverage),
		def("营业收入现金含量", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return percent(s.c(template.CFSalesCash, p), s.i(template.ISRevenue, p))
		}),
		def("经营活动现金净流量/流动负债", model.UnitPercent, GateAllPeriods, func(s statements, p model.PeriodKind) (float64, bool) {
			return percent(s.c(template.CFOperatingNet, p), s.b(template.BSCurrentLiabilitiesTotal, p))
		}),
	}
}

var indicatorCatalog = catalog()

// Catalog 指标名称与单位（导出顺序）
func Catalog() []model.IndicatorInfo {
	out := make([]model.IndicatorInfo, len(indicatorCatalog))
	for i, d := range indicatorCatalog {
		out[i] = d.IndicatorInfo
	}
	return out
}

// IndicatorFault 某个指标在某期间计算时发生的异常
type IndicatorFault struct {
	Name   string
	Period model.PeriodKind
	Err    error
}

// ComputeIndicators 计算全部指标；分母为 0 或结果非有限数时该期间不输出该指标
func ComputeIndicators(bs, is, cf *model.Template) (model.Indicators, []IndicatorFault) {
	in := statements{bs: bs, is: is, cf: cf}
	out := model.NewIndicators()
	var faults []IndicatorFault
	for _, def := range indicatorCatalog {
		for _, p := range model.AllPeriods {
			if !def.Gate.allows(p) {
				continue
			}
			v, ok, err := evaluate(def, in, p)
			if err != nil {
				faults = append(faults, IndicatorFault{Name: def.Name, Period: p, Err: err})
				continue
			}
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			out[p][def.Name] = v
		}
	}
	return out, faults
}

// evaluate 单个指标的 panic 不影响其他指标
func evaluate(def IndicatorDef, in statements, p model.PeriodKind) (v float64, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, ok, err = 0, false, fmt.Errorf("%v", r)
		}
	}()
	v, ok = def.compute(in, p)
	return v, ok, nil
}
