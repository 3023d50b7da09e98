package template

import "github.com/chenshien/Customer-report-conversion-tool/internal/model"

// 资产负债表科目名（含层级缩进，与输出保持一致）
const (
	BSCurrentAssetsHeader     = "流动资产："
	BSMonetaryFunds           = "    货币资金"
	BSTradingFinancialAssets  = "    交易性金融资产"
	BSNotesReceivable         = "    应收票据"
	BSAccountsReceivable      = "    应收账款"
	BSPrepayments             = "    预付款项"
	BSInterestReceivable      = "    应收利息"
	BSDividendsReceivable     = "    应收股利"
	BSOtherReceivables        = "    其他应收款"
	BSInventory               = "    存货"
	BSNonCurrentDueWithinYear = "    一年内到期的非流动资产"
	BSOtherCurrentAssets      = "    其他流动资产"
	BSPrepaidExpenses         = "    待摊费用"
	BSCurrentAssetsTotal      = "流动资产合计"

	BSNonCurrentAssetsHeader = "非流动资产："
	BSAvailableForSale       = "    可供出售金融资产"
	BSHeldToMaturity         = "    持有至到期投资"
	BSLongTermReceivables    = "    长期应收款"
	BSLongTermEquity         = "    长期股权投资"
	BSInvestmentProperty     = "    投资性房地产"
	BSFixedAssets            = "    固定资产"
	BSConstructionInProgress = "    在建工程"
	BSConstructionMaterials  = "    工程物资"
	BSFixedAssetsDisposal    = "    固定资产清理"
	BSBiologicalAssets       = "    生产性生物资产"
	BSOilGasAssets           = "    油气资产"
	BSIntangibleAssets       = "    无形资产"
	BSDevelopmentCosts       = "    开发支出"
	BSGoodwill               = "    商誉"
	BSLongTermPrepaid        = "    长期待摊费用"
	BSDeferredTaxAssets      = "    递延所得税资产"
	BSOtherNonCurrentAssets  = "    其他非流动资产"
	BSOtherLongTermAssets    = "    其它长期资产"
	BSNonCurrentAssetsTotal  = "非流动资产合计"
	BSTotalAssets            = "资产总计"

	BSCurrentLiabilitiesHeader    = "流动负债："
	BSShortTermLoans              = "    短期借款"
	BSTradingFinancialLiabilities = "    交易性金融负债"
	BSNotesPayable                = "    应付票据"
	BSAccountsPayable             = "    应付账款"
	BSAdvancesFromCustomers       = "    预收款项"
	BSPayrollPayable              = "    应付职工薪酬"
	BSTaxesPayable                = "    应交税费"
	BSInterestPayable             = "    应付利息"
	BSDividendsPayable            = "    应付股利"
	BSOtherPayables               = "    其他应付款"
	BSAccruedExpenses             = "    预提费用"
	BSNonCurrentLiabilitiesDue    = "    一年内到期的非流动负债"
	BSOtherCurrentLiabilities     = "    其他流动负债"
	BSCurrentLiabilitiesTotal     = "流动负债合计"
	BSNonCurrentLiabilitiesHeader = "非流动负债："
	BSLongTermLoans               = "    长期借款"
	BSBondsPayable                = "    应付债券"
	BSLongTermPayables            = "    长期应付款"
	BSSpecialPayables             = "    专项应付款"
	BSProvisions                  = "    预计负债"
	BSDeferredTaxLiabilities      = "    递延所得税负债"
	BSOtherNonCurrentLiabilities  = "    其他非流动负债"
	BSNonCurrentLiabilitiesTotal  = "非流动负债合计"
	BSTotalLiabilities            = "负债合计"
	BSEquityHeader                = "所有者权益（或股东权益）："
	BSShareCapital                = "    股本"
	BSCapitalReserve              = "    资本公积"
	BSTreasuryStock               = "    减：库存股"
	BSSurplusReserve              = "    盈余公积"
	BSRetainedEarnings            = "    未分配利润"
	BSMinorityInterest            = "    少数股东权益"
	BSOutstandingGuarantees       = "    未结清对外担保余额"
	BSEquityTotal                 = "所有者权益（或股东权益）合计"
	BSTotalLiabilitiesAndEquity   = "负债和所有者权益（或股东权益）总计"
)

// 资产负债表之外的可选科目：模板未定义，取值按 0 处理
const (
	BSDepreciation             = "    固定资产折旧"
	BSIntangibleAmortization   = "    无形资产摊销"
	BSLongTermPrepaidAmortized = "    长期待摊费用摊销"
)

// 现金流量表科目名
const (
	CFOperatingHeader       = "一、经营活动产生的现金流量:"
	CFSalesCash             = "    销售商品、提供劳务收到的现金"
	CFTaxRefunds            = "    收到的税费返还"
	CFOtherOperatingIn      = "    收到其他与经营活动有关的现金"
	CFOperatingInflow       = "    经营活动现金流入小计"
	CFPurchasesCash         = "    购买商品、接受劳务支付的现金"
	CFStaffCash             = "    支付给职工以及为职工支付的现金"
	CFTaxesPaid             = "    支付的各项税费"
	CFOtherOperatingOut     = "    支付其他与经营活动有关的现金"
	CFOperatingOutflow      = "    经营活动现金流出小计"
	CFOperatingNet          = "    经营活动产生的现金流量净额"
	CFInvestingHeader       = "二、投资活动产生的现金流量:"
	CFInvestmentRecovered   = "    收回投资收到的现金"
	CFInvestmentIncome      = "    取得投资收益收到的现金"
	CFAssetDisposal         = "    处置固定资产、无形资产和其他长期资产收回的现金净额"
	CFSubsidiaryDisposal    = "    处置子公司及其他营业单位收到的现金净额"
	CFOtherInvestingIn      = "    收到其他与投资活动有关的现金"
	CFInvestingInflow       = "    投资活动现金流入小计"
	CFAssetPurchases        = "    购建固定资产、无形资产和其他长期资产支付的现金"
	CFInvestmentsPaid       = "    投资支付的现金"
	CFSubsidiaryAcquired    = "    取得子公司及其他营业单位支付的现金净额"
	CFOtherInvestingOut     = "    支付其他与投资活动有关的现金"
	CFInvestingOutflow      = "    投资活动现金流出小计"
	CFInvestingNet          = "    投资活动产生的现金流量净额"
	CFFinancingHeader       = "三、筹资活动产生的现金流量:"
	CFCapitalContributions  = "    吸收投资收到的现金"
	CFBorrowingsReceived    = "    取得借款收到的现金"
	CFOtherFinancingIn      = "    收到其他与筹资活动有关的现金"
	CFFinancingInflow       = "    筹资活动现金流入小计"
	CFDebtRepaid            = "    偿还债务支付的现金"
	CFDividendsInterestPaid = "    分配股利、利润或偿付利息支付的现金"
	CFOtherFinancingOut     = "    支付其他与筹资活动有关的现金"
	CFFinancingOutflow      = "    筹资活动现金流出小计"
	CFFinancingNet          = "    筹资活动产生的现金流量净额"
	CFExchangeRateEffect    = "四、汇率变动对现金及现金等价物的影响"
	CFNetIncreaseInCash     = "五、现金及现金等价物增加额"
)

// 损益表科目名
const (
	ISRevenue              = "一、营业总收入"
	ISCostOfSales          = "    减：营业成本"
	ISTaxesAndSurcharges   = "    营业税金及附加"
	ISSellingExpenses      = "    销售费用"
	ISAdminExpenses        = "    管理费用"
	ISFinanceCosts         = "    财务费用（收益以\"－\"号填列）"
	ISImpairmentLosses     = "    资产减值损失"
	ISFairValueGains       = "    加：公允价值变动净收益（净损失以\"－\"号填列）"
	ISInvestmentIncome     = "    投资收益（净损失以\"－\"号填列）"
	ISAssociatesIncome     = "    其中：对联营企业和合营企业的投资收益"
	ISOperatingProfit      = "二、营业利润（亏损以\"－\"填列）"
	ISNonOperatingIncome   = "    加：营业外收入"
	ISNonOperatingExpenses = "    减：营业外支出"
	ISDisposalLosses       = "    其中：非流动资产处置净损失（净收益以\"-\"号填列）"
	ISTotalProfit          = "三、利润总额（亏损总额以\"－\"填列）"
	ISIncomeTax            = "    减：所得税费用"
	ISNetProfit            = "四、净利润（净亏损以\"－\"号填列）"
	ISEarningsPerShare     = "五、每股收益"
	ISBasicEPS             = "    （一）基本每股收益"
	ISDilutedEPS           = "    （二）稀释每股收益"
)

func numbered(names ...string) []model.SlotDef {
	defs := make([]model.SlotDef, len(names))
	for i, n := range names {
		defs[i] = model.SlotDef{Name: n, Line: i + 1}
	}
	return defs
}

var balanceSheetSlots = numbered(
	BSCurrentAssetsHeader,
	BSMonetaryFunds,
	BSTradingFinancialAssets,
	BSNotesReceivable,
	BSAccountsReceivable,
	BSPrepayments,
	BSInterestReceivable,
	BSDividendsReceivable,
	BSOtherReceivables,
	BSInventory,
	BSNonCurrentDueWithinYear,
	BSOtherCurrentAssets,
	BSPrepaidExpenses,
	BSCurrentAssetsTotal,
	BSNonCurrentAssetsHeader,
	BSAvailableForSale,
	BSHeldToMaturity,
	BSLongTermReceivables,
	BSLongTermEquity,
	BSInvestmentProperty,
	BSFixedAssets,
	BSConstructionInProgress,
	BSConstructionMaterials,
	BSFixedAssetsDisposal,
	BSBiologicalAssets,
	BSOilGasAssets,
	BSIntangibleAssets,
	BSDevelopmentCosts,
	BSGoodwill,
	BSLongTermPrepaid,
	BSDeferredTaxAssets,
	BSOtherNonCurrentAssets,
	BSOtherLongTermAssets,
	BSNonCurrentAssetsTotal,
	BSTotalAssets,
	BSCurrentLiabilitiesHeader,
	BSShortTermLoans,
	BSTradingFinancialLiabilities,
	BSNotesPayable,
	BSAccountsPayable,
	BSAdvancesFromCustomers,
	BSPayrollPayable,
	BSTaxesPayable,
	BSInterestPayable,
	BSDividendsPayable,
	BSOtherPayables,
	BSAccruedExpenses,
	BSNonCurrentLiabilitiesDue,
	BSOtherCurrentLiabilities,
	BSCurrentLiabilitiesTotal,
	BSNonCurrentLiabilitiesHeader,
	BSLongTermLoans,
	BSBondsPayable,
	BSLongTermPayables,
	BSSpecialPayables,
	BSProvisions,
	BSDeferredTaxLiabilities,
	BSOtherNonCurrentLiabilities,
	BSNonCurrentLiabilitiesTotal,
	BSTotalLiabilities,
	BSEquityHeader,
	BSShareCapital,
	BSCapitalReserve,
	BSTreasuryStock,
	BSSurplusReserve,
	BSRetainedEarnings,
	BSMinorityInterest,
	BSOutstandingGuarantees,
	BSEquityTotal,
	BSTotalLiabilitiesAndEquity,
)

var cashFlowSlots = numbered(
	CFOperatingHeader,
	CFSalesCash,
	CFTaxRefunds,
	CFOtherOperatingIn,
	CFOperatingInflow,
	CFPurchasesCash,
	CFStaffCash,
	CFTaxesPaid,
	CFOtherOperatingOut,
	CFOperatingOutflow,
	CFOperatingNet,
	CFInvestingHeader,
	CFInvestmentRecovered,
	CFInvestmentIncome,
	CFAssetDisposal,
	CFSubsidiaryDisposal,
	CFOtherInvestingIn,
	CFInvestingInflow,
	CFAssetPurchases,
	CFInvestmentsPaid,
	CFSubsidiaryAcquired,
	CFOtherInvestingOut,
	CFInvestingOutflow,
	CFInvestingNet,
	CFFinancingHeader,
	CFCapitalContributions,
	CFBorrowingsReceived,
	CFOtherFinancingIn,
	CFFinancingInflow,
	CFDebtRepaid,
	CFDividendsInterestPaid,
	CFOtherFinancingOut,
	CFFinancingOutflow,
	CFFinancingNet,
	CFExchangeRateEffect,
	CFNetIncreaseInCash,
)

var incomeStatementSlots = numbered(
	ISRevenue,
	ISCostOfSales,
	ISTaxesAndSurcharges,
	ISSellingExpenses,
	ISAdminExpenses,
	ISFinanceCosts,
	ISImpairmentLosses,
	ISFairValueGains,
	ISInvestmentIncome,
	ISAssociatesIncome,
	ISOperatingProfit,
	ISNonOperatingIncome,
	ISNonOperatingExpenses,
	ISDisposalLosses,
	ISTotalProfit,
	ISIncomeTax,
	ISNetProfit,
	ISEarningsPerShare,
	ISBasicEPS,
	ISDilutedEPS,
)
