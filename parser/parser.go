package parser

import (
	"context"
	"fmt"
	"os"

	"github.com/CodMac/go-treesitter-name-extractor/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parsed 持有一次解析得到的语法树与源码，调用方负责 Close
type Parsed struct {
	Tree   *sitter.Tree
	Source []byte
}

// Root 返回 AST 根节点
func (p *Parsed) Root() *sitter.Node {
	return p.Tree.RootNode()
}

// Close 释放语法树
func (p *Parsed) Close() {
	if p.Tree != nil {
		p.Tree.Close()
	}
}

// SyntaxError 表示源码存在语法错误，无法可靠地提取实体。
type SyntaxError struct {
	Path   string
	Line   int // 1-based
	Column int // 0-based
	Kind   string
}

func (e *SyntaxError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: syntax error (%s)", where, e.Line, e.Column, e.Kind)
}

func (e *SyntaxError) Unwrap() error {
	return model.ErrMalformedInput
}

// Parser 包装一个 Tree-sitter 解析器，不可在 goroutine 之间共享。
type Parser struct {
	Language model.Language
	tsParser *sitter.Parser
}

// NewParser 创建一个新的解析器实例
func NewParser(lang model.Language) (*Parser, error) {
	tsLang, err := model.GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(tsLang); err != nil {
		tsParser.Close()
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}

	return &Parser{Language: lang, tsParser: tsParser}, nil
}

// ParseFile 读取文件并解析
func (p *Parser) ParseFile(ctx context.Context, filePath string) (*Parsed, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return p.parse(ctx, filePath, content)
}

// Parse 解析内存中的源码
func (p *Parser) Parse(ctx context.Context, content []byte) (*Parsed, error) {
	return p.parse(ctx, "", content)
}

func (p *Parser) parse(ctx context.Context, filePath string, content []byte) (*Parsed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := p.tsParser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter failed to parse %s: %w", filePath, model.ErrMalformedInput)
	}

	root := tree.RootNode()
	if root.HasError() {
		synErr := &SyntaxError{Path: filePath, Kind: "ERROR"}
		if bad := firstErrorNode(root); bad != nil {
			pos := bad.StartPosition()
			synErr.Line = int(pos.Row) + 1
			synErr.Column = int(pos.Column)
			if bad.IsMissing() {
				synErr.Kind = "missing " + bad.Kind()
			}
		}
		tree.Close()
		return nil, synErr
	}

	return &Parsed{Tree: tree, Source: content}, nil
}

// firstErrorNode 按文档顺序查找第一个 ERROR 或 MISSING 节点
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			if found := firstErrorNode(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// Close 释放 Tree-sitter 内部资源
func (p *Parser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
	}
}
