// Package template 定义三张标准报表的科目模板、合计公式与同义词表。
package template

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// ErrIntegrity 静态模板数据自相矛盾（程序缺陷，而非输入问题）
var ErrIntegrity = errors.New("模板定义校验失败")

// Definition 单张报表的静态定义
type Definition struct {
	Kind     model.StatementKind
	Slots    []model.SlotDef
	Formulas []Formula
	Synonyms map[string][]string
}

// Builtin 内置的三张报表定义
func Builtin() []Definition {
	return []Definition{
		{
			Kind:     model.StatementBalanceSheet,
			Slots:    balanceSheetSlots,
			Formulas: balanceSheetFormulas,
			Synonyms: balanceSheetSynonyms,
		},
		{
			Kind:     model.StatementCashFlow,
			Slots:    cashFlowSlots,
			Formulas: cashFlowFormulas,
			Synonyms: cashFlowSynonyms,
		},
		{
			Kind:     model.StatementIncomeStatement,
			Slots:    incomeStatementSlots,
			Formulas: incomeStatementFormulas,
			Synonyms: incomeStatementSynonyms,
		},
	}
}

type entry struct {
	base     *model.Template
	formulas []Formula
	synonyms *SynonymSet
}

// Registry 只读的模板注册表，构造后不再修改
type Registry struct {
	entries map[model.StatementKind]*entry
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default 进程级内置注册表；内置数据校验失败直接 panic
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(Builtin()...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewRegistry 校验并构建注册表
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{entries: make(map[model.StatementKind]*entry, len(defs))}
	variantOwner := make(map[string]model.StatementKind)

	for _, def := range defs {
		if _, dup := r.entries[def.Kind]; dup {
			return nil, fmt.Errorf("%w: 报表 %s 重复定义", ErrIntegrity, def.Kind)
		}
		if err := validateSlots(def); err != nil {
			return nil, err
		}
		if err := validateFormulas(def); err != nil {
			return nil, err
		}
		set, err := newSynonymSet(def)
		if err != nil {
			return nil, err
		}
		for v := range set.owners {
			if other, ok := variantOwner[v]; ok && other != def.Kind {
				return nil, fmt.Errorf("%w: 同义词 %q 同时出现在 %s 与 %s", ErrIntegrity, v, other, def.Kind)
			}
			variantOwner[v] = def.Kind
		}

		r.entries[def.Kind] = &entry{
			base:     model.NewTemplate(def.Kind, def.Slots),
			formulas: def.Formulas,
			synonyms: set,
		}
	}
	return r, nil
}

func validateSlots(def Definition) error {
	if len(def.Slots) == 0 {
		return fmt.Errorf("%w: 报表 %s 没有科目", ErrIntegrity, def.Kind)
	}
	seen := make(map[string]bool, len(def.Slots))
	prevLine := 0
	for _, s := range def.Slots {
		if seen[s.Name] {
			return fmt.Errorf("%w: %s 科目重复: %q", ErrIntegrity, def.Kind, s.Name)
		}
		seen[s.Name] = true
		if s.Line <= prevLine {
			return fmt.Errorf("%w: %s 行次未递增: %q", ErrIntegrity, def.Kind, s.Name)
		}
		prevLine = s.Line
	}
	return nil
}

// validateFormulas 公式引用的科目必须存在；引用的合计必须在之前已计算
func validateFormulas(def Definition) error {
	slots := make(map[string]bool, len(def.Slots))
	for _, s := range def.Slots {
		slots[s.Name] = true
	}
	targets := make(map[string]bool, len(def.Formulas))
	for _, f := range def.Formulas {
		if !slots[f.Target] {
			return fmt.Errorf("%w: %s 合计行不存在: %q", ErrIntegrity, def.Kind, f.Target)
		}
		if targets[f.Target] {
			return fmt.Errorf("%w: %s 合计行重复定义: %q", ErrIntegrity, def.Kind, f.Target)
		}
		targets[f.Target] = true
	}

	computed := make(map[string]bool, len(def.Formulas))
	for _, f := range def.Formulas {
		if len(f.Terms) == 0 {
			return fmt.Errorf("%w: %s 合计行没有构成项: %q", ErrIntegrity, def.Kind, f.Target)
		}
		for _, t := range f.Terms {
			if !slots[t.Slot] {
				return fmt.Errorf("%w: %s 合计 %q 引用了不存在的科目 %q", ErrIntegrity, def.Kind, f.Target, t.Slot)
			}
			if t.Slot == f.Target {
				return fmt.Errorf("%w: %s 合计 %q 引用了自身", ErrIntegrity, def.Kind, f.Target)
			}
			if targets[t.Slot] && !computed[t.Slot] {
				return fmt.Errorf("%w: %s 合计 %q 引用了尚未计算的 %q", ErrIntegrity, def.Kind, f.Target, t.Slot)
			}
		}
		computed[f.Target] = true
	}
	return nil
}

func (r *Registry) get(kind model.StatementKind) *entry {
	e, ok := r.entries[kind]
	if !ok {
		panic(fmt.Sprintf("template: unknown statement kind %q", kind))
	}
	return e
}

// New 返回一份全新的全零模板，由调用方独占
func (r *Registry) New(kind model.StatementKind) *model.Template {
	return r.get(kind).base.Clone()
}

// Formulas 合计公式（按求值顺序）
func (r *Registry) Formulas(kind model.StatementKind) []Formula {
	return r.get(kind).formulas
}

// Synonyms 同义词表
func (r *Registry) Synonyms(kind model.StatementKind) *SynonymSet {
	return r.get(kind).synonyms
}

// SlotNames 科目名（按模板顺序）
func (r *Registry) SlotNames(kind model.StatementKind) []string {
	base := r.get(kind).base
	names := make([]string, len(base.Slots))
	for i, s := range base.Slots {
		names[i] = s.Name
	}
	return names
}
