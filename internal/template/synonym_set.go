package template

import (
	"fmt"
	"sort"

	"github.com/chenshien/Customer-report-conversion-tool/internal/normalizer"
)

// SynonymSet 规整后的同义词表
type SynonymSet struct {
	keys     map[string]string          // 科目名 -> 匹配键
	variants map[string]map[string]bool // 科目名 -> 写法集合（含自身）
	owners   map[string]string          // 写法 -> 科目名
	slots    map[string]string          // 匹配键 -> 科目名
}

func newSynonymSet(def Definition) (*SynonymSet, error) {
	set := &SynonymSet{
		keys:     make(map[string]string, len(def.Slots)),
		variants: make(map[string]map[string]bool, len(def.Synonyms)),
		owners:   make(map[string]string),
	}

	slotOf := make(map[string]string, len(def.Slots))
	set.slots = slotOf
	for _, s := range def.Slots {
		k := normalizer.MatchKey(s.Name)
		set.keys[s.Name] = k
		if prev, ok := slotOf[k]; ok {
			return nil, fmt.Errorf("%w: %s 科目 %q 与 %q 规整后相同", ErrIntegrity, def.Kind, prev, s.Name)
		}
		slotOf[k] = s.Name
	}

	for name, raw := range def.Synonyms {
		key, ok := set.keys[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s 同义词引用了不存在的科目 %q", ErrIntegrity, def.Kind, name)
		}
		vs := map[string]bool{key: true}
		for _, v := range append([]string{name}, raw...) {
			vk := normalizer.MatchKey(v)
			if vk == "" {
				continue
			}
			if owner, ok := set.owners[vk]; ok && owner != name {
				return nil, fmt.Errorf("%w: %s 同义词 %q 同时属于 %q 与 %q", ErrIntegrity, def.Kind, v, owner, name)
			}
			if slot, ok := slotOf[vk]; ok && slot != name {
				return nil, fmt.Errorf("%w: %s 科目 %q 的同义词 %q 与科目 %q 同名", ErrIntegrity, def.Kind, name, v, slot)
			}
			vs[vk] = true
			set.owners[vk] = name
		}
		set.variants[name] = vs
	}
	return set, nil
}

// Key 科目的匹配键
func (s *SynonymSet) Key(slot string) string {
	if k, ok := s.keys[slot]; ok {
		return k
	}
	return normalizer.MatchKey(slot)
}

// Owner 写法所属的科目
func (s *SynonymSet) Owner(variantKey string) (string, bool) {
	name, ok := s.owners[variantKey]
	return name, ok
}

// Resolve 匹配键对应的科目：先按科目名，再按同义词
func (s *SynonymSet) Resolve(key string) (string, bool) {
	if name, ok := s.slots[key]; ok {
		return name, true
	}
	return s.Owner(key)
}

// Contains 写法是否属于该科目的同义词集合
func (s *SynonymSet) Contains(slot, variantKey string) bool {
	return s.variants[slot][variantKey]
}

// Variants 科目的全部写法（规整后）
func (s *SynonymSet) Variants(slot string) []string {
	vs := s.variants[slot]
	out := make([]string, 0, len(vs))
	for v := range vs {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
