package template

// 同义词表：键为模板科目名，值为可接受的源表写法（包含科目名本身）。
// 同一张报表内每个写法只能归属一个科目，且不得等于其他科目的名称。
var balanceSheetSynonyms = map[string][]string{
	BSCurrentAssetsHeader: {"流动资产", "流动资产：", "current assets"},
	BSMonetaryFunds: {"货币资金", "现金", "银行存款", "库存现金", "货币", "现金及存放中央银行款项",
		"cash", "monetary funds", "cash and cash equivalents", "cash at bank and on hand"},
	BSTradingFinancialAssets: {"交易性金融资产", "交易性金融资产净额",
		"以公允价值计量且其变动计入当期损益的金融资产", "交易性投资", "trading financial assets"},
	BSNotesReceivable:    {"应收票据", "应收票据净额", "应收票据和应收账款", "notes receivable", "bills receivable"},
	BSAccountsReceivable: {"应收账款", "应收账款净额", "应收款项", "应收票据及应收账款", "应收款", "accounts receivable", "trade receivables"},
	BSPrepayments:        {"预付款项", "预付账款", "预付款", "预付", "预付款项净额", "prepayments", "advances to suppliers"},
	BSInterestReceivable: {"应收利息", "应收利息净额", "应收利息收入", "应收利息及应收股利", "interest receivable"},
	BSDividendsReceivable: {"应收股利", "应收股息", "应收股息红利", "dividends receivable"},
	BSOtherReceivables:   {"其他应收款", "其他应收款净额", "其它应收款", "其它应收", "其他应收", "other receivables"},
	BSInventory:          {"存货", "存货净额", "库存商品", "存货及合同履约成本", "库存", "inventory", "inventories"},
	BSNonCurrentDueWithinYear: {"一年内到期的非流动资产", "一年内到期非流动资产", "一年内到期长期资产",
		"non-current assets due within one year"},
	BSOtherCurrentAssets: {"其他流动资产", "其它流动资产", "other current assets"},
	BSPrepaidExpenses:    {"待摊费用", "待摊", "prepaid expenses"},
	BSCurrentAssetsTotal: {"流动资产合计", "流动资产总计", "流动资产总额", "total current assets"},

	BSNonCurrentAssetsHeader: {"非流动资产", "非流动资产：", "non-current assets"},
	BSAvailableForSale:       {"可供出售金融资产", "可供出售的金融资产", "可供出售投资", "available-for-sale financial assets"},
	BSHeldToMaturity:         {"持有至到期投资", "持有到期投资", "持有至到期", "held-to-maturity investments"},
	BSLongTermReceivables:    {"长期应收款", "长期应收款项", "长期应收", "long-term receivables"},
	BSLongTermEquity:         {"长期股权投资", "长期投资", "长期股权", "long-term equity investments"},
	BSInvestmentProperty:     {"投资性房地产", "投资性房产", "投资房地产", "investment property"},
	BSFixedAssets: {"固定资产", "固定资产净额", "固定资产净值", "固定资产原价", "固定资产价值",
		"fixed assets", "property, plant and equipment"},
	BSConstructionInProgress: {"在建工程", "在建工程净额", "在建项目", "在建", "construction in progress"},
	BSConstructionMaterials:  {"工程物资", "工程材料", "工程用料", "construction materials"},
	BSFixedAssetsDisposal:    {"固定资产清理", "固定资产清算", "资产清理", "disposal of fixed assets"},
	BSBiologicalAssets:       {"生产性生物资产", "生物资产", "生产性生物", "productive biological assets"},
	BSOilGasAssets:           {"油气资产", "石油天然气资产", "油气", "oil and gas assets"},
	BSIntangibleAssets:       {"无形资产", "无形资产净额", "无形资产价值", "无形", "intangible assets"},
	BSDevelopmentCosts:       {"开发支出", "研发支出", "开发成本", "研发费用", "development expenditure"},
	BSGoodwill:               {"商誉", "商誉净额", "商誉价值", "goodwill"},
	BSLongTermPrepaid:        {"长期待摊费用", "长期待摊", "long-term prepaid expenses"},
	BSDeferredTaxAssets:      {"递延所得税资产", "递延税款", "递延所得税", "递延税资产", "deferred tax assets"},
	BSOtherNonCurrentAssets:  {"其他非流动资产", "其它非流动资产", "other non-current assets"},
	BSOtherLongTermAssets:    {"其它长期资产", "其他长期资产", "other long-term assets"},
	BSNonCurrentAssetsTotal:  {"非流动资产合计", "非流动资产总计", "非流动资产总额", "total non-current assets"},
	BSTotalAssets:            {"资产总计", "资产合计", "资产总额", "资产总额合计", "total assets"},

	BSCurrentLiabilitiesHeader: {"流动负债", "流动负债：", "current liabilities"},
	BSShortTermLoans:           {"短期借款", "短期贷款", "短期债务", "短期融资", "short-term loans", "short-term borrowings"},
	BSTradingFinancialLiabilities: {"交易性金融负债", "以公允价值计量且其变动计入当期损益的金融负债", "交易性负债",
		"trading financial liabilities"},
	BSNotesPayable:     {"应付票据", "应付汇票", "notes payable", "bills payable"},
	BSAccountsPayable:  {"应付账款", "应付账款净额", "应付款项", "应付票据及应付账款", "accounts payable", "trade payables"},
	BSAdvancesFromCustomers: {"预收款项", "预收账款", "预收款", "合同负债", "预收",
		"advances from customers", "contract liabilities"},
	BSPayrollPayable:  {"应付职工薪酬", "应付工资", "工资福利", "应付工资薪酬", "payroll payable", "employee benefits payable"},
	BSTaxesPayable:    {"应交税费", "应交税金", "应缴税金", "应交税款", "taxes payable"},
	BSInterestPayable: {"应付利息", "应付利息费用", "应付利息及应付股利", "interest payable"},
	BSDividendsPayable: {"应付股利", "应付股息", "dividends payable"},
	BSOtherPayables:   {"其他应付款", "其他应付款净额", "其它应付款", "其他应付", "other payables"},
	BSAccruedExpenses: {"预提费用", "预提成本费用", "预提支出", "accrued expenses"},
	BSNonCurrentLiabilitiesDue: {"一年内到期的非流动负债", "一年内到期非流动负债", "一年内到期长期负债",
		"non-current liabilities due within one year"},
	BSOtherCurrentLiabilities:     {"其他流动负债", "其它流动负债", "other current liabilities"},
	BSCurrentLiabilitiesTotal:     {"流动负债合计", "流动负债总计", "流动负债总额", "total current liabilities"},
	BSNonCurrentLiabilitiesHeader: {"非流动负债", "非流动负债：", "non-current liabilities"},
	BSLongTermLoans:               {"长期借款", "长期贷款", "长期债务", "长期融资", "long-term loans", "long-term borrowings"},
	BSBondsPayable:                {"应付债券", "应付债券净额", "债券", "bonds payable"},
	BSLongTermPayables:            {"长期应付款", "长期应付款项", "长期应付", "long-term payables"},
	BSSpecialPayables:             {"专项应付款", "专项款项", "专项应付", "专项款", "special payables"},
	BSProvisions:                  {"预计负债", "预计债务", "预提负债", "provisions"},
	BSDeferredTaxLiabilities:      {"递延所得税负债", "递延税负债", "递延税款负债", "deferred tax liabilities"},
	BSOtherNonCurrentLiabilities:  {"其他非流动负债", "其它非流动负债", "其他长期负债", "other non-current liabilities"},
	BSNonCurrentLiabilitiesTotal:  {"非流动负债合计", "非流动负债总计", "非流动负债总额", "total non-current liabilities"},
	BSTotalLiabilities:            {"负债合计", "负债总计", "负债总额", "负债总额合计", "total liabilities"},

	BSEquityHeader: {"所有者权益", "所有者权益（或股东权益）", "所有者权益（或股东权益）：", "股东权益",
		"owners' equity", "shareholders' equity"},
	BSShareCapital:    {"股本", "实收资本", "实收资本(或股本)", "注册资本", "股本金", "share capital", "paid-in capital"},
	BSCapitalReserve:  {"资本公积", "资本公积金", "资本溢价", "股本溢价", "capital reserve"},
	BSTreasuryStock:   {"减：库存股", "库存股", "库存股份", "减库存股", "treasury stock", "less: treasury stock"},
	BSSurplusReserve:  {"盈余公积", "盈余公积金", "法定盈余", "盈余", "surplus reserve"},
	BSRetainedEarnings: {"未分配利润", "未分配利润(未弥补亏损)", "累计利润", "留存收益",
		"retained earnings", "undistributed profits"},
	BSMinorityInterest:      {"少数股东权益", "少数股东权益合计", "少数股东", "minority interests", "non-controlling interests"},
	BSOutstandingGuarantees: {"未结清对外担保余额", "对外担保余额", "担保余额", "outstanding external guarantees"},
	BSEquityTotal: {"所有者权益（或股东权益）合计", "所有者权益合计", "股东权益合计", "所有者权益总计",
		"所有者权益（或股东权益）总计", "所有者权益总额", "total equity", "total owners' equity", "total shareholders' equity"},
	BSTotalLiabilitiesAndEquity: {"负债和所有者权益（或股东权益）总计", "负债和所有者权益总计", "负债及所有者权益总计",
		"负债和股东权益总计", "负债及股东权益总计", "total liabilities and equity",
		"total liabilities and owners' equity", "total liabilities and shareholders' equity"},
}

var cashFlowSynonyms = map[string][]string{
	CFOperatingHeader: {"经营活动产生的现金流量", "cash flows from operating activities"},
	CFSalesCash: {"销售商品、提供劳务收到的现金", "销售商品提供劳务收到现金",
		"cash received from sales of goods and rendering of services"},
	CFTaxRefunds:       {"收到的税费返还", "收到税费返还", "tax refunds received"},
	CFOtherOperatingIn: {"收到其他与经营活动有关的现金", "收到的其他与经营活动有关的现金", "收到其他与经营活动有关现金"},
	CFOperatingInflow:  {"经营活动现金流入小计", "经营活动现金流入合计", "subtotal of cash inflows from operating activities"},
	CFPurchasesCash: {"购买商品、接受劳务支付的现金", "购买商品接受劳务支付现金",
		"cash paid for goods and services"},
	CFStaffCash:         {"支付给职工以及为职工支付的现金", "支付给职工及为职工支付的现金", "cash paid to and on behalf of employees"},
	CFTaxesPaid:         {"支付的各项税费", "支付各项税费", "taxes paid"},
	CFOtherOperatingOut: {"支付其他与经营活动有关的现金", "支付的其他与经营活动有关的现金", "支付其他与经营活动有关现金"},
	CFOperatingOutflow:  {"经营活动现金流出小计", "经营活动现金流出合计", "subtotal of cash outflows from operating activities"},
	CFOperatingNet: {"经营活动产生的现金流量净额", "经营活动现金流量净额", "经营活动产生的现金净流量",
		"net cash flows from operating activities", "net cash from operating activities"},

	CFInvestingHeader:     {"投资活动产生的现金流量", "cash flows from investing activities"},
	CFInvestmentRecovered: {"收回投资收到的现金", "收回投资所收到的现金", "cash received from disposal of investments"},
	CFInvestmentIncome:    {"取得投资收益收到的现金", "取得投资收益所收到的现金", "cash received from investment income"},
	CFAssetDisposal: {"处置固定资产、无形资产和其他长期资产收回的现金净额",
		"处置固定资产、无形资产和其他长期资产而收回的现金净额", "处置固定资产、无形资产和其他长期资产所收回的现金净额"},
	CFSubsidiaryDisposal: {"处置子公司及其他营业单位收到的现金净额", "处置子公司及其他营业单位所收到的现金净额"},
	CFOtherInvestingIn:   {"收到其他与投资活动有关的现金", "收到的其他与投资活动有关的现金"},
	CFInvestingInflow:    {"投资活动现金流入小计", "投资活动现金流入合计", "subtotal of cash inflows from investing activities"},
	CFAssetPurchases: {"购建固定资产、无形资产和其他长期资产支付的现金",
		"购建固定资产、无形资产和其他长期资产所支付的现金"},
	CFInvestmentsPaid:    {"投资支付的现金", "投资所支付的现金", "cash paid for investments"},
	CFSubsidiaryAcquired: {"取得子公司及其他营业单位支付的现金净额", "取得子公司及其他营业单位所支付的现金净额"},
	CFOtherInvestingOut:  {"支付其他与投资活动有关的现金", "支付的其他与投资活动有关的现金"},
	CFInvestingOutflow:   {"投资活动现金流出小计", "投资活动现金流出合计", "subtotal of cash outflows from investing activities"},
	CFInvestingNet: {"投资活动产生的现金流量净额", "投资活动现金流量净额",
		"net cash flows from investing activities", "net cash from investing activities"},

	CFFinancingHeader:       {"筹资活动产生的现金流量", "cash flows from financing activities"},
	CFCapitalContributions:  {"吸收投资收到的现金", "吸收投资所收到的现金", "cash received from capital contributions"},
	CFBorrowingsReceived:    {"取得借款收到的现金", "借款所收到的现金", "取得借款所收到的现金", "cash received from borrowings"},
	CFOtherFinancingIn:      {"收到其他与筹资活动有关的现金", "收到的其他与筹资活动有关的现金"},
	CFFinancingInflow:       {"筹资活动现金流入小计", "筹资活动现金流入合计", "subtotal of cash inflows from financing activities"},
	CFDebtRepaid:            {"偿还债务支付的现金", "偿还债务所支付的现金", "cash repayments of borrowings"},
	CFDividendsInterestPaid: {"分配股利、利润或偿付利息支付的现金", "分配股利、利润或偿付利息所支付的现金"},
	CFOtherFinancingOut:     {"支付其他与筹资活动有关的现金", "支付的其他与筹资活动有关的现金"},
	CFFinancingOutflow:      {"筹资活动现金流出小计", "筹资活动现金流出合计", "subtotal of cash outflows from financing activities"},
	CFFinancingNet: {"筹资活动产生的现金流量净额", "筹资活动现金流量净额",
		"net cash flows from financing activities", "net cash from financing activities"},

	CFExchangeRateEffect: {"汇率变动对现金及现金等价物的影响", "汇率变动对现金的影响",
		"effect of exchange rate changes on cash and cash equivalents"},
	CFNetIncreaseInCash: {"现金及现金等价物增加额", "现金及现金等价物净增加额", "现金及现金等价物净增加",
		"net increase in cash and cash equivalents"},
}

var incomeStatementSynonyms = map[string][]string{
	ISRevenue: {"一、营业总收入", "营业总收入", "营业收入", "一、营业收入", "主营业务收入", "收入总额",
		"revenue", "total revenue", "operating revenue"},
	ISCostOfSales:        {"减：营业成本", "营业成本", "主营业务成本", "cost of sales", "cost of revenue"},
	ISTaxesAndSurcharges: {"营业税金及附加", "税金及附加", "主营业务税金及附加", "taxes and surcharges"},
	ISSellingExpenses:    {"销售费用", "营业费用", "selling expenses"},
	ISAdminExpenses:      {"管理费用", "administrative expenses", "general and administrative expenses"},
	ISFinanceCosts:       {"财务费用（收益以\"－\"号填列）", "财务费用", "finance costs", "financial expenses"},
	ISImpairmentLosses:   {"资产减值损失", "减：资产减值损失", "asset impairment losses", "impairment losses"},
	ISFairValueGains: {"加：公允价值变动净收益（净损失以\"－\"号填列）", "公允价值变动净收益", "公允价值变动收益",
		"加：公允价值变动收益", "fair value gains"},
	ISInvestmentIncome:     {"投资收益（净损失以\"－\"号填列）", "投资收益", "加：投资收益", "investment income"},
	ISAssociatesIncome:     {"其中：对联营企业和合营企业的投资收益", "对联营企业和合营企业的投资收益"},
	ISOperatingProfit:      {"二、营业利润（亏损以\"－\"填列）", "营业利润", "二、营业利润", "operating profit"},
	ISNonOperatingIncome:   {"加：营业外收入", "营业外收入", "non-operating income"},
	ISNonOperatingExpenses: {"减：营业外支出", "营业外支出", "non-operating expenses"},
	ISDisposalLosses: {"其中：非流动资产处置净损失（净收益以\"-\"号填列）", "非流动资产处置净损失",
		"非流动资产处置损失"},
	ISTotalProfit: {"三、利润总额（亏损总额以\"－\"填列）", "利润总额", "三、利润总额", "total profit", "profit before tax"},
	ISIncomeTax:   {"减：所得税费用", "所得税费用", "所得税", "income tax", "income tax expense"},
	ISNetProfit:   {"四、净利润（净亏损以\"－\"号填列）", "净利润", "四、净利润", "net profit", "net income"},
	ISEarningsPerShare: {"五、每股收益", "每股收益", "earnings per share"},
	ISBasicEPS:         {"（一）基本每股收益", "基本每股收益", "basic earnings per share"},
	ISDilutedEPS:       {"（二）稀释每股收益", "稀释每股收益", "diluted earnings per share"},
}
