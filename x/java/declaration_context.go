package java

import "github.com/CodMac/go-treesitter-name-extractor/model"

// DeclarationContext 是单次遍历私有的声明上下文栈。
// 遍历器在进入参数列表、局部声明等子树前压入叶子类型，离开后弹出。
type DeclarationContext struct {
	kinds []model.EntityKind
}

// Push 压入一个上下文类型
func (d *DeclarationContext) Push(kind model.EntityKind) {
	d.kinds = append(d.kinds, kind)
}

// Pop 弹出栈顶，空栈时返回 false
func (d *DeclarationContext) Pop() (model.EntityKind, bool) {
	if len(d.kinds) == 0 {
		return "", false
	}
	top := d.kinds[len(d.kinds)-1]
	d.kinds = d.kinds[:len(d.kinds)-1]
	return top, true
}

// Current 返回栈顶上下文，空栈时返回空串
func (d *DeclarationContext) Current() model.EntityKind {
	if len(d.kinds) == 0 {
		return ""
	}
	return d.kinds[len(d.kinds)-1]
}

// Depth 返回栈深度
func (d *DeclarationContext) Depth() int {
	return len(d.kinds)
}
