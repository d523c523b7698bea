package collector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/CodMac/go-treesitter-name-extractor/model"
)

// ScopeBuilder 消费遍历器发出的声明事件，维护当前打开的容器栈并组装实体森林。
// 每个文件使用一个实例，不可复用，也不可在 goroutine 之间共享。
type ScopeBuilder struct {
	raw      *model.RawFileData
	stack    []*model.EntityNode
	finished bool
}

// NewScopeBuilder 为单个源文件创建构建器
func NewScopeBuilder(filePath string) *ScopeBuilder {
	return &ScopeBuilder{raw: model.NewRawFileData(filePath)}
}

// Add 将实体挂到栈顶容器下。栈为空时实体成为新的顶级实体，并被压栈作为当前容器。
// Finish 之后调用返回 model.ErrBuilderFinished，实体不会被记录。
func (b *ScopeBuilder) Add(entity *model.EntityNode) error {
	if b.finished {
		return model.ErrBuilderFinished
	}
	if top, ok := b.CurrentContainer(); ok {
		top.AddChild(entity)
		return nil
	}
	b.raw.Add(entity)
	b.push(entity)
	return nil
}

// AddAsContainer 先执行 Add，再无条件压栈。
// 栈为空时实体因此被压栈两次，遍历器需要为顶级容器额外调用一次 MoveToParent。
func (b *ScopeBuilder) AddAsContainer(entity *model.EntityNode) error {
	if err := b.Add(entity); err != nil {
		return err
	}
	b.push(entity)
	return nil
}

// CurrentContainer 返回栈顶容器，不修改栈
func (b *ScopeBuilder) CurrentContainer() (*model.EntityNode, bool) {
	if len(b.stack) == 0 {
		return nil, false
	}
	return b.stack[len(b.stack)-1], true
}

// MoveToParent 弹出栈顶并返回新的栈顶 (栈已空时返回 nil)。
// 在空栈上调用返回 model.ErrEmptyScopeStack。
func (b *ScopeBuilder) MoveToParent() (*model.EntityNode, error) {
	if b.finished {
		return nil, model.ErrBuilderFinished
	}
	if len(b.stack) == 0 {
		return nil, fmt.Errorf("%s: %w", b.raw.FilePath, model.ErrEmptyScopeStack)
	}
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]

	top, _ := b.CurrentContainer()
	return top, nil
}

// PackageName 记录文件声明的包名，多次调用以最后一次为准
func (b *ScopeBuilder) PackageName(name string) error {
	if b.finished {
		return model.ErrBuilderFinished
	}
	b.raw.PackageName = name
	return nil
}

// Depth 返回当前打开的栈帧数量
func (b *ScopeBuilder) Depth() int {
	return len(b.stack)
}

// FileName 返回去掉目录部分的文件名
func (b *ScopeBuilder) FileName() string {
	return SimpleFileName(b.raw.FilePath)
}

// Finish 校验栈已清空并交出实体森林。
// 之后所有修改操作都返回 model.ErrBuilderFinished。
func (b *ScopeBuilder) Finish() (*model.RawFileData, error) {
	if b.finished {
		return nil, model.ErrBuilderFinished
	}
	if len(b.stack) != 0 {
		top, _ := b.CurrentContainer()
		return nil, fmt.Errorf("%s: %d open scope(s), innermost %s %q: %w",
			b.raw.FilePath, len(b.stack), top.Kind, top.Name, model.ErrUnclosedScope)
	}
	b.finished = true
	b.stack = nil
	return b.raw, nil
}

// SimpleFileName 返回路径中最后一个分隔符之后的部分，没有分隔符时返回整个路径
func SimpleFileName(path string) string {
	idx := strings.LastIndexAny(path, "/"+string(filepath.Separator))
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

func (b *ScopeBuilder) push(entity *model.EntityNode) {
	b.stack = append(b.stack, entity)
}
