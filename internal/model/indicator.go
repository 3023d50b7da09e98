package model

// IndicatorUnit 指标单位（导出时作为名称后缀）
type IndicatorUnit string

const (
	UnitPercent IndicatorUnit = "%"
	UnitTimes   IndicatorUnit = "次"
	UnitNone    IndicatorUnit = ""
)

// Indicators 期间 -> 指标名 -> 值；缺失的键表示该期间无法计算
type Indicators map[PeriodKind]map[string]float64

// NewIndicators 创建三个期间的空指标表
func NewIndicators() Indicators {
	ind := make(Indicators, len(AllPeriods))
	for _, p := range AllPeriods {
		ind[p] = make(map[string]float64)
	}
	return ind
}

// Get 取值，ok=false 表示未定义
func (ind Indicators) Get(p PeriodKind, name string) (float64, bool) {
	m, ok := ind[p]
	if !ok {
		return 0, false
	}
	v, ok := m[name]
	return v, ok
}

// IndicatorInfo 指标元信息（名称、单位、顺序）
type IndicatorInfo struct {
	Name string        `json:"name"`
	Unit IndicatorUnit `json:"unit"`
}

// DisplayName 带单位后缀的名称，如 资产负债率(%)
func (i IndicatorInfo) DisplayName() string {
	if i.Unit == UnitNone {
		return i.Name
	}
	return i.Name + "(" + string(i.Unit) + ")"
}
