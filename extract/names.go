package extract

import "github.com/CodMac/go-treesitter-name-extractor/model"

// CollectNames 先序展开实体森林: 先输出节点名称，再按存储顺序递归子节点。
// 纯函数，可重复调用。
func CollectNames(forest model.EntityForest) []string {
	names := make([]string, 0, forest.Count())
	forest.Walk(func(node *model.EntityNode, _ int) bool {
		names = append(names, node.Name)
		return true
	})
	return names
}
