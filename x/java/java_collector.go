package java

import (
	"fmt"

	"github.com/CodMac/go-treesitter-name-extractor/collector"
	"github.com/CodMac/go-treesitter-name-extractor/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Collector 遍历 Java 语法树，将声明事件交给 ScopeBuilder。
// Collector 本身无状态，每次调用创建独立的遍历会话，可并发使用。
type Collector struct{}

func NewJavaCollector() *Collector {
	return &Collector{}
}

func (c *Collector) CollectDefinitions(rootNode *sitter.Node, filePath string, sourceBytes *[]byte) (*model.RawFileData, error) {
	if rootNode == nil {
		return nil, fmt.Errorf("%s: nil syntax tree: %w", filePath, model.ErrMalformedInput)
	}

	s := &session{
		filePath: filePath,
		src:      *sourceBytes,
		builder:  collector.NewScopeBuilder(filePath),
		decl:     &DeclarationContext{},
	}
	if err := s.visitChildren(rootNode); err != nil {
		return nil, err
	}

	return s.builder.Finish()
}

// session 保存单个文件遍历期间的全部可变状态
type session struct {
	filePath string
	src      []byte
	builder  *collector.ScopeBuilder
	decl     *DeclarationContext
}

func (s *session) visit(node *sitter.Node) error {
	if node == nil || !node.IsNamed() {
		return nil
	}

	if construct, ok := ConstructForNodeKind(node.Kind()); ok {
		return s.visitConstruct(construct, node)
	}

	switch node.Kind() {
	case "package_declaration":
		return s.handlePackage(node)
	case "import_declaration", "line_comment", "block_comment":
		return nil
	case "lambda_expression":
		return s.handleLambda(node)
	case "object_creation_expression":
		return s.handleObjectCreation(node)
	case "catch_clause":
		if param := findNamedChildOfType(node, "catch_formal_parameter"); param != nil {
			if err := s.withContext(model.FormalArgument, func() error { return s.visit(param) }); err != nil {
				return err
			}
		}
		return s.visit(node.ChildByFieldName("body"))
	case "resource_specification", "finally_clause":
		return s.withContext(model.LocalVariable, func() error { return s.visitChildren(node) })
	}

	return s.visitChildren(node)
}

func (s *session) visitConstruct(construct Construct, node *sitter.Node) error {
	switch construct {
	case ClassDeclaration, InterfaceDeclaration, AnnotationTypeDeclaration, EnumDeclaration:
		return s.openScope(construct, node, s.nameOf(node), func() error {
			if node.Kind() == "record_declaration" {
				if err := s.handleRecordComponents(node.ChildByFieldName("parameters")); err != nil {
					return err
				}
			}
			return s.visitChildren(node.ChildByFieldName("body"))
		})

	case EnumConstant:
		return s.openScope(construct, node, s.nameOf(node), func() error {
			if err := s.visit(node.ChildByFieldName("arguments")); err != nil {
				return err
			}
			return s.visitChildren(node.ChildByFieldName("body"))
		})

	case ConstructorDeclarator, MethodDeclarator:
		return s.openScope(construct, node, s.nameOf(node), func() error {
			if params := node.ChildByFieldName("parameters"); params != nil {
				if err := s.withContext(model.FormalArgument, func() error { return s.handleFormalParameters(params) }); err != nil {
					return err
				}
			}
			return s.visit(node.ChildByFieldName("body"))
		})

	case FieldDeclarator, ConstantDeclarator:
		return s.withContext(model.Field, func() error { return s.handleDeclarators(construct, node) })

	case LocalVariableDeclarator:
		return s.withContext(model.LocalVariable, func() error { return s.handleDeclarators(construct, node) })

	case AnnotationTypeElement:
		if err := s.declareLeaf(construct, node, s.nameOf(node), s.typeOf(node)); err != nil {
			return err
		}
		return s.visit(node.ChildByFieldName("value"))

	case FormalParameter:
		return s.handleFormalParameter(node)

	case CatchParameter:
		typ := ""
		if t := findNamedChildOfType(node, "catch_type"); t != nil {
			typ = s.text(t)
		}
		return s.declareLeaf(construct, node, s.nameOf(node), typ)

	case Resource:
		// 仅引用已有变量的 resource 没有声明
		if node.ChildByFieldName("name") == nil {
			return nil
		}
		if err := s.declareLeaf(construct, node, s.nameOf(node), s.typeOf(node)); err != nil {
			return err
		}
		return s.visit(node.ChildByFieldName("value"))

	case EnhancedForVariable:
		if err := s.withContext(model.LocalVariable, func() error {
			return s.declareLeaf(construct, node, s.nameOf(node), s.typeOf(node))
		}); err != nil {
			return err
		}
		if err := s.visit(node.ChildByFieldName("value")); err != nil {
			return err
		}
		return s.visit(node.ChildByFieldName("body"))

	case PatternVariable:
		return s.handlePattern(node)

	case LabelDeclaration:
		if label := findNamedChildOfType(node, "identifier"); label != nil {
			if err := s.declareLeaf(construct, node, s.text(label), ""); err != nil {
				return err
			}
		}
		return s.visitChildren(node)

	case AnonymousClassBody, RecordComponent, LambdaParameter:
		// 由父节点 (object_creation_expression、record_declaration、lambda_expression) 处理
		return s.visitChildren(node)
	}

	return fmt.Errorf("%s: unhandled construct %s", s.filePath, construct)
}

func (s *session) handlePackage(node *sitter.Node) error {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		sub := node.NamedChild(i)
		if sub.Kind() == "scoped_identifier" || sub.Kind() == "identifier" {
			return s.builder.PackageName(s.text(sub))
		}
	}
	return nil
}

func (s *session) handleRecordComponents(params *sitter.Node) error {
	if params == nil {
		return nil
	}
	for i := uint(0); i < params.NamedChildCount(); i++ {
		p := params.NamedChild(i)
		if p.Kind() != "formal_parameter" {
			continue
		}
		if err := s.declareLeaf(RecordComponent, p, s.nameOf(p), s.typeOf(p)); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) handleFormalParameters(params *sitter.Node) error {
	for i := uint(0); i < params.NamedChildCount(); i++ {
		if err := s.visit(params.NamedChild(i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) handleFormalParameter(node *sitter.Node) error {
	if node.Kind() == "spread_parameter" {
		decl := findNamedChildOfType(node, "variable_declarator")
		if decl == nil {
			return nil
		}
		typ := ""
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			switch child.Kind() {
			case "modifiers", "variable_declarator", "annotation", "marker_annotation":
				continue
			}
			typ = s.text(child) + "..."
			break
		}
		return s.declareLeaf(FormalParameter, node, s.nameOf(decl), typ)
	}
	return s.declareLeaf(FormalParameter, node, s.nameOf(node), s.typeOf(node))
}

// handleDeclarators 处理一条声明语句中的全部 variable_declarator，随后进入初始化表达式
func (s *session) handleDeclarators(construct Construct, node *sitter.Node) error {
	typ := s.typeOf(node)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		decl := node.NamedChild(i)
		if decl.Kind() != "variable_declarator" {
			continue
		}
		if err := s.declareLeaf(construct, decl, s.nameOf(decl), typ); err != nil {
			return err
		}
		if err := s.visit(decl.ChildByFieldName("value")); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) handleLambda(node *sitter.Node) error {
	params := node.ChildByFieldName("parameters")
	if params != nil {
		err := s.withContext(model.LambdaParameter, func() error {
			switch params.Kind() {
			case "identifier":
				return s.declareLeaf(LambdaParameter, params, s.text(params), "")
			case "inferred_parameters":
				for i := uint(0); i < params.NamedChildCount(); i++ {
					id := params.NamedChild(i)
					if id.Kind() != "identifier" {
						continue
					}
					if err := s.declareLeaf(LambdaParameter, id, s.text(id), ""); err != nil {
						return err
					}
				}
				return nil
			case "formal_parameters":
				return s.handleFormalParameters(params)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return s.visit(node.ChildByFieldName("body"))
}

func (s *session) handleObjectCreation(node *sitter.Node) error {
	if err := s.visit(node.ChildByFieldName("arguments")); err != nil {
		return err
	}
	body := findNamedChildOfType(node, "class_body")
	if body == nil {
		return nil
	}
	return s.openScope(AnonymousClassBody, body, model.AnonymousName, func() error {
		return s.visitChildren(body)
	})
}

func (s *session) handlePattern(node *sitter.Node) error {
	if node.Kind() == "instanceof_expression" {
		if err := s.visit(node.ChildByFieldName("left")); err != nil {
			return err
		}
		if name := node.ChildByFieldName("name"); name != nil {
			typ := s.text(node.ChildByFieldName("right"))
			return s.declarePattern(node, s.text(name), typ)
		}
		return s.visit(node.ChildByFieldName("pattern"))
	}

	// type_pattern: 类型后跟标识符
	var typ, name string
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "identifier" {
			name = s.text(child)
		} else if typ == "" {
			typ = s.text(child)
		}
	}
	if name == "" {
		return nil
	}
	return s.declarePattern(node, name, typ)
}

// declarePattern 模式变量总是局部变量，不继承外层 (例如字段初始化式) 的声明上下文
func (s *session) declarePattern(node *sitter.Node, name, typ string) error {
	return s.withContext(model.LocalVariable, func() error {
		return s.declareLeaf(PatternVariable, node, name, typ)
	})
}

// openScope 声明一个容器并在 body 访问完成后关闭它。
// 顶级容器被 ScopeBuilder 压栈两次，因此关闭时额外弹出一次。
func (s *session) openScope(construct Construct, node *sitter.Node, name string, body func() error) error {
	kind, _ := Classify(construct, s.decl.Current())
	entity := s.newEntity(kind, name, "", node)

	topLevel := s.builder.Depth() == 0
	if err := s.builder.AddAsContainer(entity); err != nil {
		return err
	}

	if err := body(); err != nil {
		return err
	}
	if _, err := s.builder.MoveToParent(); err != nil {
		return err
	}
	if topLevel {
		if _, err := s.builder.MoveToParent(); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) declareLeaf(construct Construct, node *sitter.Node, name, typ string) error {
	if name == "" {
		return nil
	}
	kind, _ := Classify(construct, s.decl.Current())
	return s.add(s.newEntity(kind, name, typ, node))
}

// add 添加叶子实体；文件顶层的叶子会被 ScopeBuilder 压栈，这里随即释放
func (s *session) add(entity *model.EntityNode) error {
	topLevel := s.builder.Depth() == 0
	if err := s.builder.Add(entity); err != nil {
		return err
	}
	if topLevel {
		_, err := s.builder.MoveToParent()
		return err
	}
	return nil
}

func (s *session) withContext(kind model.EntityKind, fn func() error) error {
	s.decl.Push(kind)
	defer s.decl.Pop()
	return fn()
}

func (s *session) visitChildren(node *sitter.Node) error {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if err := s.visit(node.NamedChild(i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) newEntity(kind model.EntityKind, name, typ string, node *sitter.Node) *model.EntityNode {
	entity := model.NewTypedEntity(kind, name, typ)
	entity.Location = extractLocation(node, s.filePath)
	return entity
}

func (s *session) nameOf(node *sitter.Node) string {
	return s.text(node.ChildByFieldName("name"))
}

func (s *session) typeOf(node *sitter.Node) string {
	return s.text(node.ChildByFieldName("type"))
}

func (s *session) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(s.src)
}

func extractLocation(n *sitter.Node, filePath string) *model.Location {
	if n == nil {
		return nil
	}
	return &model.Location{
		FilePath:    filePath,
		StartLine:   int(n.StartPosition().Row) + 1,
		EndLine:     int(n.EndPosition().Row) + 1,
		StartColumn: int(n.StartPosition().Column),
		EndColumn:   int(n.EndPosition().Column),
	}
}

func findNamedChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}
