package intt

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/CodMac/go-treesitter-name-extractor/model"
)

// DefaultCacheSize 是切分结果缓存的默认容量
const DefaultCacheSize = 4096

type cacheKey struct {
	strategy model.Strategy
	name     string
}

// Tokeniser 基于词典切分标识符名称，并为每个子词标记识别它的词表。
// 词典构建后只读，缓存是线程安全的，因此可在多个 goroutine 间共享。
type Tokeniser struct {
	dict  *Dictionary
	cache *lru.Cache[cacheKey, []model.TaggedToken]
}

// NewTokeniser 创建切分器，cacheSize <= 0 时关闭缓存
func NewTokeniser(dict *Dictionary, cacheSize int) (*Tokeniser, error) {
	if dict == nil {
		return nil, fmt.Errorf("intt: nil dictionary")
	}
	t := &Tokeniser{dict: dict}
	if cacheSize > 0 {
		cache, err := lru.New[cacheKey, []model.TaggedToken](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("intt: create cache: %w", err)
		}
		t.cache = cache
	}
	return t, nil
}

// Tokenise 按策略切分名称，对非空名称至少返回一个子词
func (t *Tokeniser) Tokenise(name string, strategy model.Strategy) []model.TaggedToken {
	if name == "" {
		return nil
	}

	key := cacheKey{strategy: strategy, name: name}
	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			return cloneTokens(cached)
		}
	}

	var parts []string
	switch strategy {
	case model.StrategyConservative:
		parts = splitConservative(name)
	default:
		parts = splitAggressive(name, t.dict.Known)
	}

	tokens := make([]model.TaggedToken, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, model.TaggedToken{Content: p, WordLists: t.dict.Lookup(p)})
	}

	if t.cache != nil {
		t.cache.Add(key, tokens)
	}
	return cloneTokens(tokens)
}

// Dictionary 返回切分器使用的词典
func (t *Tokeniser) Dictionary() *Dictionary {
	return t.dict
}

func cloneTokens(in []model.TaggedToken) []model.TaggedToken {
	out := make([]model.TaggedToken, len(in))
	for i, tt := range in {
		lists := make([]string, len(tt.WordLists))
		copy(lists, tt.WordLists)
		out[i] = model.TaggedToken{Content: tt.Content, WordLists: lists}
	}
	return out
}
