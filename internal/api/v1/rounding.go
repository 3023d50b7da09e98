package v1

import (
	"github.com/chenshien/Customer-report-conversion-tool/internal/exporter"
	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// amountDecimals 金额展示保留的小数位
const amountDecimals = 2

// roundResultInPlace 按展示精度四舍五入，只用于刚从存储读出的结果
func roundResultInPlace(res *model.Result, ratioDecimals int32) {
	for _, t := range res.Templates {
		for _, s := range t.Slots {
			for p, v := range s.Values {
				s.Values[p] = exporter.RoundValue(v, amountDecimals)
			}
			for p, v := range s.Reported {
				s.Reported[p] = exporter.RoundValue(v, amountDecimals)
			}
		}
	}
	for _, values := range res.Indicators {
		for name, v := range values {
			values[name] = exporter.RoundValue(v, ratioDecimals)
		}
	}
	for i := range res.Discrepancies {
		d := &res.Discrepancies[i]
		d.Reported = exporter.RoundValue(d.Reported, amountDecimals)
		d.Computed = exporter.RoundValue(d.Computed, amountDecimals)
	}
	for i := range res.BalanceIssues {
		b := &res.BalanceIssues[i]
		b.TotalAssets = exporter.RoundValue(b.TotalAssets, amountDecimals)
		b.TotalLiabilitiesAndEquity = exporter.RoundValue(b.TotalLiabilitiesAndEquity, amountDecimals)
	}
}
