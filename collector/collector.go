package collector

import (
	"fmt"

	"github.com/CodMac/go-treesitter-name-extractor/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Collector 用于收集文件中声明的程序实体。
type Collector interface {
	// CollectDefinitions 负责遍历 AST，驱动 ScopeBuilder 并返回该文件的实体森林。
	CollectDefinitions(rootNode *sitter.Node, filePath string, sourceBytes *[]byte) (*model.RawFileData, error)
}

var collectorMap = make(map[model.Language]Collector)

// RegisterCollector 注册一个语言与其对应的 Collector
func RegisterCollector(lang model.Language, collector Collector) {
	collectorMap[lang] = collector
}

// GetCollector 根据语言类型获取对应的 Collector 实例。
func GetCollector(lang model.Language) (Collector, error) {
	collector, ok := collectorMap[lang]
	if !ok {
		return nil, fmt.Errorf("no collector registered for language %s: %w", lang, model.ErrUnsupportedLanguage)
	}

	return collector, nil
}
