package intt

import (
	"strings"
	"unicode"
)

// minPieceLen 重新切分时每个片段的最小长度
const minPieceLen = 2

// splitConservative 只在无歧义的边界切分: 分隔符、小写到大写、
// 大写串到首字母大写单词 (HTMLParser → HTML Parser)、字母与数字之间。
// 只由分隔符组成的名称原样返回。
func splitConservative(name string) []string {
	runes := []rune(name)
	var (
		parts []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			parts = append(parts, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsLetter(prev) != unicode.IsLetter(r):
				flush()
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	if len(parts) == 0 && name != "" {
		return []string{name}
	}
	return parts
}

// segment 用动态规划把小写字母串切成数量最少的已知词 (每段至少 minPieceLen 个字母)。
// 数量相同时优先更长的首段。无法完整切分时返回 nil。
func segment(word string, known func(string) bool) []string {
	n := len(word)
	const unreachable = -1

	// best[i]: word[i:] 的最少片段数; next[i]: 对应首段的结束位置
	best := make([]int, n+1)
	next := make([]int, n+1)
	for i := range best {
		best[i] = unreachable
	}
	best[n] = 0

	for i := n - minPieceLen; i >= 0; i-- {
		for j := n; j >= i+minPieceLen; j-- {
			if best[j] == unreachable || !known(word[i:j]) {
				continue
			}
			if cand := best[j] + 1; best[i] == unreachable || cand < best[i] {
				best[i] = cand
				next[i] = j
			}
		}
	}

	if best[0] == unreachable {
		return nil
	}
	pieces := make([]string, 0, best[0])
	for i := 0; i < n; i = next[i] {
		pieces = append(pieces, word[i:next[i]])
	}
	return pieces
}

func isASCIILetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// splitAggressive 先做保守切分，再对词表未收录的纯字母片段做词典重新切分
func splitAggressive(name string, known func(string) bool) []string {
	var out []string
	for _, part := range splitConservative(name) {
		lower := strings.ToLower(part)
		if !isASCIILetters(part) || known(lower) || len(part) < 2*minPieceLen {
			out = append(out, part)
			continue
		}
		if pieces := segment(lower, known); len(pieces) > 1 {
			out = append(out, pieces...)
			continue
		}
		out = append(out, part)
	}
	return out
}
