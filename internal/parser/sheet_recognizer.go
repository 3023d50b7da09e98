package parser

import (
	"sort"
	"strings"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/normalizer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

const (
	recognizeMaxRows = 200
	nameBoost        = 0.5
	fullContentHits  = 10
	minSuggestScore  = 0.3
)

var statementNameKeywords = map[model.StatementKind][]string{
	model.StatementBalanceSheet:    {"资产负债", "balance"},
	model.StatementCashFlow:        {"现金流量", "现金流", "cash flow", "cashflow"},
	model.StatementIncomeStatement: {"利润", "损益", "income", "profit"},
}

// StatementRecognizer 识别工作表属于哪张报表
type StatementRecognizer struct {
	registry *template.Registry
}

// NewStatementRecognizer 创建识别器
func NewStatementRecognizer(reg *template.Registry) *StatementRecognizer {
	if reg == nil {
		reg = template.Default()
	}
	return &StatementRecognizer{registry: reg}
}

// Recognize 对每种报表打分
//
// 分数 = 科目名命中数 / 10（上限 1）+ 工作表名命中关键词时的 0.5。
func (r *StatementRecognizer) Recognize(t RawTable) []model.SheetRecognition {
	name := strings.ToLower(t.Name())
	out := make([]model.SheetRecognition, 0, len(model.AllStatements))
	for _, kind := range model.AllStatements {
		matched := r.countLabels(t, kind)
		score := float64(matched) / fullContentHits
		if score > 1 {
			score = 1
		}
		if ContainsAny(name, statementNameKeywords[kind]) {
			score += nameBoost
		}
		out = append(out, model.SheetRecognition{
			SheetName: t.Name(),
			Kind:      kind,
			Score:     score,
			Matched:   matched,
		})
	}
	return out
}

// countLabels 标签列中能落到该报表科目上的不同科目数
func (r *StatementRecognizer) countLabels(t RawTable, kind model.StatementKind) int {
	synonyms := r.registry.Synonyms(kind)
	labelCols := []int{1}
	if kind == model.StatementBalanceSheet {
		labelCols = append(labelCols, balanceRightLabelCols...)
	}

	maxRow := t.MaxRow()
	if maxRow > recognizeMaxRows {
		maxRow = recognizeMaxRows
	}
	seen := make(map[string]bool)
	for row := 1; row <= maxRow; row++ {
		for _, col := range labelCols {
			key := normalizer.MatchKey(t.Cell(row, col).String())
			if key == "" {
				continue
			}
			if slot, ok := synonyms.Resolve(key); ok {
				seen[slot] = true
			}
		}
	}
	return len(seen)
}

// Suggest 为每种报表推荐一个工作表，一个工作表只分配给一种报表
func (r *StatementRecognizer) Suggest(tables []RawTable) (map[model.StatementKind]string, []model.SheetRecognition) {
	var all []model.SheetRecognition
	for _, t := range tables {
		all = append(all, r.Recognize(t)...)
	}

	ranked := append([]model.SheetRecognition(nil), all...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	out := make(map[model.StatementKind]string, len(model.AllStatements))
	used := make(map[string]bool)
	for _, rec := range ranked {
		if rec.Score < minSuggestScore || used[rec.SheetName] {
			continue
		}
		if _, ok := out[rec.Kind]; ok {
			continue
		}
		out[rec.Kind] = rec.SheetName
		used[rec.SheetName] = true
	}
	return out, all
}

// balanceRightLabelCols 资产负债表右半部分（负债及权益）科目名可能所在的列
var balanceRightLabelCols = []int{5, 6}
