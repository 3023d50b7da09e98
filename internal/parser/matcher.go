package parser

import (
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/normalizer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

// Matcher 源表科目名与模板科目的匹配
type Matcher struct {
	synonyms *template.SynonymSet
}

// NewMatcher 创建匹配器，synonyms 为空时只做精确匹配
func NewMatcher(synonyms *template.SynonymSet) *Matcher {
	return &Matcher{synonyms: synonyms}
}

// Match 为源表科目名找到模板中尚未匹配的科目
//
// 先对全部未匹配科目做精确匹配，再按模板顺序做同义词匹配。
// 已匹配的科目（slot.Matched 或 matched 中为 true）不再参与。
func (m *Matcher) Match(sourceLabel string, tmpl *model.Template, matched map[string]bool) (string, bool) {
	src := normalizer.MatchKey(sourceLabel)
	if src == "" {
		return "", false
	}

	for _, slot := range tmpl.Slots {
		if slot.Matched || matched[slot.Name] {
			continue
		}
		if m.key(slot.Name) == src {
			return slot.Name, true
		}
	}

	if m.synonyms == nil {
		return "", false
	}
	owner, ok := m.synonyms.Owner(src)
	if !ok {
		return "", false
	}
	ownerKey := m.synonyms.Key(owner)
	for _, slot := range tmpl.Slots {
		if slot.Matched || matched[slot.Name] {
			continue
		}
		slotKey := m.key(slot.Name)
		if slotKey == ownerKey || m.synonyms.Contains(owner, slotKey) {
			return slot.Name, true
		}
	}
	return "", false
}

func (m *Matcher) key(name string) string {
	if m.synonyms != nil {
		return m.synonyms.Key(name)
	}
	return normalizer.MatchKey(name)
}

// Suggester 为未匹配的源表科目给出最接近的模板科目（仅用于报告）
//
// 已知写法直接指向所属科目，其余再用近似匹配。
type Suggester struct {
	synonyms *template.SynonymSet
	cm       *closestmatch.ClosestMatch
	names    map[string]string
}

// NewSuggester 以模板科目名建立近似匹配索引，synonyms 可为空
func NewSuggester(synonyms *template.SynonymSet, slotNames []string) *Suggester {
	names := make(map[string]string, len(slotNames))
	keys := make([]string, 0, len(slotNames))
	for _, n := range slotNames {
		k := normalizer.MatchKey(n)
		if k == "" {
			continue
		}
		if _, dup := names[k]; dup {
			continue
		}
		names[k] = strings.TrimSpace(n)
		keys = append(keys, k)
	}
	return &Suggester{
		synonyms: synonyms,
		cm:       closestmatch.New(keys, []int{2, 3}),
		names:    names,
	}
}

// Suggest 最接近的模板科目名，没有候选时为空串
func (s *Suggester) Suggest(label string) string {
	k := normalizer.MatchKey(label)
	if k == "" || len(s.names) == 0 {
		return ""
	}
	if s.synonyms != nil {
		if name, ok := s.synonyms.Resolve(k); ok {
			return strings.TrimSpace(name)
		}
	}
	if name, ok := s.names[k]; ok {
		return name
	}
	return s.names[s.cm.Closest(k)]
}
