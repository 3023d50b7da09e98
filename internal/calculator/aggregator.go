package calculator

import (
	"fmt"
	"math"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

// Tolerance 合计核对与平衡校验的容差
const Tolerance = 1e-6

// TotalPolicy 源表合计与重算合计不一致时的取值策略
type TotalPolicy string

const (
	// PolicyComputed 以重算值覆盖源表合计，差异记录为核对结果
	PolicyComputed TotalPolicy = "computed"
	// PolicyReported 保留源表给出的合计，差异同样记录
	PolicyReported TotalPolicy = "reported"
)

// ParseTotalPolicy 解析配置中的策略，空串为默认的 computed
func ParseTotalPolicy(s string) (TotalPolicy, error) {
	switch TotalPolicy(s) {
	case "", PolicyComputed:
		return PolicyComputed, nil
	case PolicyReported:
		return PolicyReported, nil
	}
	return "", fmt.Errorf("未知的合计策略: %q", s)
}

// ComputeTotals 按公式顺序计算合计行，每个期间独立计算
//
// 后面的公式可以引用前面已经算出的合计。返回源表合计与重算值不一致的记录。
func ComputeTotals(t *model.Template, formulas []template.Formula, policy TotalPolicy) []model.Discrepancy {
	var out []model.Discrepancy
	for _, f := range formulas {
		slot, ok := t.Get(f.Target)
		if !ok {
			continue
		}
		for _, p := range model.AllPeriods {
			computed := 0.0
			for _, term := range f.Terms {
				computed += term.Sign * t.ValueOr0(term.Slot, p)
			}

			if !slot.Matched {
				slot.Values[p] = computed
				continue
			}

			reported, ok := slot.Reported[p]
			if !ok {
				reported = slot.Values[p]
			}
			if math.Abs(reported-computed) > Tolerance {
				out = append(out, model.Discrepancy{
					Statement: t.Kind,
					Slot:      slot.DisplayName(),
					Period:    p,
					Reported:  reported,
					Computed:  computed,
				})
			}
			if policy == PolicyReported {
				slot.Values[p] = reported
			} else {
				slot.Values[p] = computed
			}
		}
	}
	return out
}

// CheckBalance 校验 资产总计 = 负债和所有者权益总计，只报告不修正
func CheckBalance(bs *model.Template) []model.BalanceIssue {
	if bs == nil {
		return nil
	}
	var out []model.BalanceIssue
	for _, p := range model.AllPeriods {
		assets := bs.ValueOr0(template.BSTotalAssets, p)
		le := bs.ValueOr0(template.BSTotalLiabilitiesAndEquity, p)
		if math.Abs(assets-le) > Tolerance {
			out = append(out, model.BalanceIssue{
				Period:                    p,
				TotalAssets:               assets,
				TotalLiabilitiesAndEquity: le,
			})
		}
	}
	return out
}
