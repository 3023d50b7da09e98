package template

// Term 合计公式中的一项
type Term struct {
	Slot string
	Sign float64
}

// Formula 合计行 = Σ sign*slot，按声明顺序求值
type Formula struct {
	Target string
	Terms  []Term
}

func plus(slots ...string) []Term {
	terms := make([]Term, len(slots))
	for i, s := range slots {
		terms[i] = Term{Slot: s, Sign: 1}
	}
	return terms
}

func minus(slots ...string) []Term {
	terms := make([]Term, len(slots))
	for i, s := range slots {
		terms[i] = Term{Slot: s, Sign: -1}
	}
	return terms
}

func sum(parts ...[]Term) []Term {
	var out []Term
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var balanceSheetFormulas = []Formula{
	{Target: BSCurrentAssetsTotal, Terms: plus(
		BSMonetaryFunds, BSTradingFinancialAssets, BSNotesReceivable, BSAccountsReceivable,
		BSPrepayments, BSInterestReceivable, BSDividendsReceivable, BSOtherReceivables,
		BSInventory, BSNonCurrentDueWithinYear, BSOtherCurrentAssets, BSPrepaidExpenses,
	)},
	{Target: BSNonCurrentAssetsTotal, Terms: plus(
		BSAvailableForSale, BSHeldToMaturity, BSLongTermReceivables,
		BSLongTermEquity, BSInvestmentProperty, BSFixedAssets, BSConstructionInProgress,
		BSConstructionMaterials, BSFixedAssetsDisposal, BSBiologicalAssets, BSOilGasAssets,
		BSIntangibleAssets, BSDevelopmentCosts, BSGoodwill, BSLongTermPrepaid,
		BSDeferredTaxAssets, BSOtherNonCurrentAssets, BSOtherLongTermAssets,
	)},
	{Target: BSTotalAssets, Terms: plus(BSCurrentAssetsTotal, BSNonCurrentAssetsTotal)},
	{Target: BSCurrentLiabilitiesTotal, Terms: plus(
		BSShortTermLoans, BSTradingFinancialLiabilities, BSNotesPayable, BSAccountsPayable,
		BSAdvancesFromCustomers, BSPayrollPayable, BSTaxesPayable, BSInterestPayable,
		BSDividendsPayable, BSOtherPayables, BSAccruedExpenses,
		BSNonCurrentLiabilitiesDue, BSOtherCurrentLiabilities,
	)},
	{Target: BSNonCurrentLiabilitiesTotal, Terms: plus(
		BSLongTermLoans, BSBondsPayable, BSLongTermPayables, BSSpecialPayables,
		BSProvisions, BSDeferredTaxLiabilities, BSOtherNonCurrentLiabilities,
	)},
	{Target: BSTotalLiabilities, Terms: plus(BSCurrentLiabilitiesTotal, BSNonCurrentLiabilitiesTotal)},
	{Target: BSEquityTotal, Terms: sum(
		plus(BSShareCapital, BSCapitalReserve, BSSurplusReserve, BSRetainedEarnings,
			BSMinorityInterest, BSOutstandingGuarantees),
		minus(BSTreasuryStock),
	)},
	{Target: BSTotalLiabilitiesAndEquity, Terms: plus(BSTotalLiabilities, BSEquityTotal)},
}

var cashFlowFormulas = []Formula{
	{Target: CFOperatingInflow, Terms: plus(CFSalesCash, CFTaxRefunds, CFOtherOperatingIn)},
	{Target: CFOperatingOutflow, Terms: plus(CFPurchasesCash, CFStaffCash, CFTaxesPaid, CFOtherOperatingOut)},
	{Target: CFOperatingNet, Terms: sum(plus(CFOperatingInflow), minus(CFOperatingOutflow))},
	{Target: CFInvestingInflow, Terms: plus(
		CFInvestmentRecovered, CFInvestmentIncome, CFAssetDisposal, CFSubsidiaryDisposal, CFOtherInvestingIn,
	)},
	{Target: CFInvestingOutflow, Terms: plus(
		CFAssetPurchases, CFInvestmentsPaid, CFSubsidiaryAcquired, CFOtherInvestingOut,
	)},
	{Target: CFInvestingNet, Terms: sum(plus(CFInvestingInflow), minus(CFInvestingOutflow))},
	{Target: CFFinancingInflow, Terms: plus(CFCapitalContributions, CFBorrowingsReceived, CFOtherFinancingIn)},
	{Target: CFFinancingOutflow, Terms: plus(CFDebtRepaid, CFDividendsInterestPaid, CFOtherFinancingOut)},
	{Target: CFFinancingNet, Terms: sum(plus(CFFinancingInflow), minus(CFFinancingOutflow))},
	{Target: CFNetIncreaseInCash, Terms: plus(CFOperatingNet, CFInvestingNet, CFFinancingNet, CFExchangeRateEffect)},
}

// 损益表中“其中”项只是明细披露，不参与合计
var incomeStatementFormulas = []Formula{
	{Target: ISOperatingProfit, Terms: sum(
		plus(ISRevenue),
		minus(ISCostOfSales, ISTaxesAndSurcharges, ISSellingExpenses, ISAdminExpenses,
			ISFinanceCosts, ISImpairmentLosses),
		plus(ISFairValueGains, ISInvestmentIncome),
	)},
	{Target: ISTotalProfit, Terms: sum(
		plus(ISOperatingProfit, ISNonOperatingIncome),
		minus(ISNonOperatingExpenses),
	)},
	{Target: ISNetProfit, Terms: sum(plus(ISTotalProfit), minus(ISIncomeTax))},
}
