// Package normalizer 把源表中的科目标签规整为可比较的形式。
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// 按顺序删除；"......" 必须先于 ".." 处理
var removedTokens = []string{
	":", "：", "(", ")", "（", "）", "、", "，", ",",
	"；", ";", "\"", "“", "”", "'", "‘", "’", "［", "］",
	"[", "]", "【", "】", "｛", "｝", "{", "}",
	"…", "......", "..", "。", "=",
}

var unifiedTokens = strings.NewReplacer(
	"－", "-",
	"—", "-",
	"＋", "+",
	"／", "/",
)

var (
	leadingOrdinal = regexp.MustCompile(`^[\s\d.]+`)
	leadingCJKEnum = regexp.MustCompile(`^[一二三四五六七八九十]+[、\s.]`)
)

// 单轮规整最多缩短字符串，固定点迭代的轮数有上限
const maxPasses = 8

// Normalize 规整科目标签：去空白、去标点括号、统一全角符号、去掉前导序号。
// 幂等：Normalize(Normalize(x)) == Normalize(x)。
func Normalize(label string) string {
	s := label
	for i := 0; i < maxPasses; i++ {
		next := normalizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
	return s
}

func normalizeOnce(s string) string {
	s = width.Fold.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	for _, tok := range removedTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = unifiedTokens.Replace(s)
	s = leadingOrdinal.ReplaceAllString(s, "")
	s = leadingCJKEnum.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// MatchKey 匹配用的键：规整后转小写，去掉末尾冒号
func MatchKey(label string) string {
	return strings.TrimRight(strings.ToLower(Normalize(label)), ":：")
}
