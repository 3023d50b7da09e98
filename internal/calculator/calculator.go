package calculator

import (
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

// Calculator 合计重算、平衡校验与财务指标
type Calculator struct {
	registry *template.Registry
	policy   TotalPolicy
	logger   *zap.Logger
}

// NewCalculator 创建计算器
func NewCalculator(reg *template.Registry, policy TotalPolicy, logger *zap.Logger) *Calculator {
	if reg == nil {
		reg = template.Default()
	}
	if policy == "" {
		policy = PolicyComputed
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		registry: reg,
		policy:   policy,
		logger:   logger,
	}
}

// Policy 当前的合计策略
func (c *Calculator) Policy() TotalPolicy {
	return c.policy
}

// Totals 重算一张报表的合计行
func (c *Calculator) Totals(t *model.Template) []model.Discrepancy {
	diffs := ComputeTotals(t, c.registry.Formulas(t.Kind), c.policy)
	for _, d := range diffs {
		c.logger.Warn("合计与源表不一致",
			zap.String("statement", string(d.Statement)),
			zap.String("slot", d.Slot),
			zap.String("period", string(d.Period)),
			zap.Float64("reported", d.Reported),
			zap.Float64("computed", d.Computed),
		)
	}
	return diffs
}

// Indicators 计算财务指标，单个指标异常只记录日志
func (c *Calculator) Indicators(bs, is, cf *model.Template) model.Indicators {
	ind, faults := ComputeIndicators(bs, is, cf)
	for _, f := range faults {
		c.logger.Error("计算指标时出错",
			zap.String("indicator", f.Name),
			zap.String("period", string(f.Period)),
			zap.Error(f.Err),
		)
	}
	return ind
}

// CalculateAll 对结果中的三张报表依次重算合计，再做平衡校验并计算指标
func (c *Calculator) CalculateAll(res *model.Result) {
	for _, kind := range model.AllStatements {
		t, ok := res.Templates[kind]
		if !ok {
			continue
		}
		res.Discrepancies = append(res.Discrepancies, c.Totals(t)...)
	}

	bs := res.Templates[model.StatementBalanceSheet]
	res.BalanceIssues = CheckBalance(bs)
	for _, issue := range res.BalanceIssues {
		c.logger.Warn("资产负债表不平衡",
			zap.String("period", string(issue.Period)),
			zap.Float64("totalAssets", issue.TotalAssets),
			zap.Float64("totalLiabilitiesAndEquity", issue.TotalLiabilitiesAndEquity),
		)
	}

	res.Indicators = c.Indicators(bs, res.Templates[model.StatementIncomeStatement], res.Templates[model.StatementCashFlow])
}
