package extract

import (
	"strings"

	"github.com/CodMac/go-treesitter-name-extractor/model"
)

// Tokeniser 将标识符名称切分为带词表标记的子词。
// 对非空名称至少返回一个子词，且必须可以被并发调用。
type Tokeniser interface {
	Tokenise(name string, strategy model.Strategy) []model.TaggedToken
}

// TokeniserFunc 让普通函数实现 Tokeniser
type TokeniserFunc func(name string, strategy model.Strategy) []model.TaggedToken

func (f TokeniserFunc) Tokenise(name string, strategy model.Strategy) []model.TaggedToken {
	return f(name, strategy)
}

// tokeniseName 调用切分器并在边界处统一转为小写。
// 非空名称没有得到任何子词时标记为异常，不补造子词。
func tokeniseName(t Tokeniser, name string, strategy model.Strategy) model.TokenisedName {
	tagged := t.Tokenise(name, strategy)
	tn := model.TokenisedName{
		Name:   name,
		Tokens: make([]model.Token, 0, len(tagged)),
	}
	for _, tt := range tagged {
		lists := make([]string, len(tt.WordLists))
		copy(lists, tt.WordLists)
		tn.Tokens = append(tn.Tokens, model.Token{
			Content:   strings.ToLower(tt.Content),
			WordLists: lists,
		})
	}
	if len(tn.Tokens) == 0 && name != "" {
		tn.Anomaly = true
	}
	return tn
}
