package normalizer

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want string
	}{
		{in: "    货币资金", want: "货币资金"},
		{in: "流动资产：", want: "流动资产"},
		{in: "1.货币资金", want: "货币资金"},
		{in: "12、 应收账款", want: "应收账款"},
		{in: "一.营业收入", want: "营业收入"},
		{in: "一、营业总收入", want: "一营业总收入"},
		{in: "    财务费用（收益以\"－\"号填列）", want: "财务费用收益以-号填列"},
		{in: "所有者权益（或股东权益）合计", want: "所有者权益或股东权益合计"},
		{in: "【其中】存货……", want: "其中存货"},
		{in: "应付票据／应付账款", want: "应付票据/应付账款"},
		{in: "１２．货币资金", want: "货币资金"},
		{in: "Monetary Funds", want: "MonetaryFunds"},
		{in: "", want: ""},
	} {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	labels := []string{
		"    货币资金",
		"一、经营活动产生的现金流量:",
		".。.货币资金",
		"一、1、存货",
		"1一、存货",
		"（二）稀释每股收益",
		"减：库存股",
		"  Total   Current Assets ",
		"......",
		"＝＝资产总计＝＝",
		"二、营业利润（亏损以\"－\"填列）",
	}
	for _, l := range labels {
		once := Normalize(l)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: once=%q twice=%q", l, once, twice)
		}
	}
}

func TestMatchKey(t *testing.T) {
	t.Parallel()

	if got := MatchKey("Cash"); got != "cash" {
		t.Fatalf("MatchKey(Cash) want=cash got=%q", got)
	}
	if got := MatchKey("  Total Assets："); got != "totalassets" {
		t.Fatalf("MatchKey want=totalassets got=%q", got)
	}
}
