package model

import "strings"

// AccountSlot 模板科目行
type AccountSlot struct {
	Name      string                 `json:"name"`
	Line      int                    `json:"line"`
	Values    map[PeriodKind]float64 `json:"values"`
	Matched   bool                   `json:"matched"`
	SourceRow int                    `json:"sourceRow,omitempty"`
	// Reported 匹配时源表给出的原值（仅合计行重算时用于核对）
	Reported map[PeriodKind]float64 `json:"reported,omitempty"`
}

// DisplayName 去掉层级缩进后的科目名
func (s *AccountSlot) DisplayName() string {
	return strings.TrimSpace(s.Name)
}

// Template 单张报表的模板实例，每次处理独占一份
type Template struct {
	Kind  StatementKind  `json:"kind"`
	Slots []*AccountSlot `json:"slots"`
	index map[string]int
}

// SlotDef 静态模板定义中的一行
type SlotDef struct {
	Name string
	Line int
}

// NewTemplate 按定义创建全零模板
func NewTemplate(kind StatementKind, defs []SlotDef) *Template {
	t := &Template{
		Kind:  kind,
		Slots: make([]*AccountSlot, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		t.index[d.Name] = len(t.Slots)
		t.Slots = append(t.Slots, &AccountSlot{
			Name:   d.Name,
			Line:   d.Line,
			Values: zeroValues(),
		})
	}
	return t
}

func zeroValues() map[PeriodKind]float64 {
	v := make(map[PeriodKind]float64, len(AllPeriods))
	for _, p := range AllPeriods {
		v[p] = 0
	}
	return v
}

// Clone 深拷贝（含已填充的值）
func (t *Template) Clone() *Template {
	out := &Template{
		Kind:  t.Kind,
		Slots: make([]*AccountSlot, len(t.Slots)),
		index: make(map[string]int, len(t.Slots)),
	}
	for i, s := range t.Slots {
		cp := *s
		cp.Values = make(map[PeriodKind]float64, len(s.Values))
		for p, v := range s.Values {
			cp.Values[p] = v
		}
		if s.Reported != nil {
			cp.Reported = make(map[PeriodKind]float64, len(s.Reported))
			for p, v := range s.Reported {
				cp.Reported[p] = v
			}
		}
		out.Slots[i] = &cp
		out.index[s.Name] = i
	}
	return out
}

// Get 按科目名取行
func (t *Template) Get(name string) (*AccountSlot, bool) {
	i, ok := t.lookup(name)
	if !ok {
		return nil, false
	}
	return t.Slots[i], true
}

func (t *Template) lookup(name string) (int, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	return i, ok
}

// reindex 反序列化后的模板没有索引
func (t *Template) reindex() {
	t.index = make(map[string]int, len(t.Slots))
	for i, s := range t.Slots {
		t.index[s.Name] = i
	}
}

// ValueOr0 取值，科目不存在时为 0
func (t *Template) ValueOr0(name string, p PeriodKind) float64 {
	s, ok := t.Get(name)
	if !ok {
		return 0
	}
	return s.Values[p]
}

// Set 写入某期间的值
func (t *Template) Set(name string, p PeriodKind, v float64) bool {
	s, ok := t.Get(name)
	if !ok {
		return false
	}
	s.Values[p] = v
	return true
}

// UnmatchedNames 从未被源表匹配到的科目（按模板顺序）
func (t *Template) UnmatchedNames() []string {
	var out []string
	for _, s := range t.Slots {
		if !s.Matched {
			out = append(out, s.DisplayName())
		}
	}
	return out
}
