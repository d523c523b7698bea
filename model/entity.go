package model

import "encoding/json"

// --- 程序实体类型 (Entity Kinds) ---

// EntityKind 是表示声明实体类型的字符串常量
type EntityKind string

const (
	// 容器: 可以拥有子实体
	Class               EntityKind = "CLASS"                // 类 (含 record 与匿名类)
	Interface           EntityKind = "INTERFACE"            // 接口与注解类型
	Enumeration         EntityKind = "ENUMERATION"          // 枚举
	EnumerationConstant EntityKind = "ENUMERATION_CONSTANT" // 枚举常量 (常量体内可以声明成员)
	Constructor         EntityKind = "CONSTRUCTOR"          // 构造函数
	Method              EntityKind = "METHOD"               // 方法

	// 叶子: 从不拥有子实体
	Field            EntityKind = "FIELD"             // 字段与接口常量
	FormalArgument   EntityKind = "FORMAL_ARGUMENT"   // 方法/构造函数/catch 参数
	LocalVariable    EntityKind = "LOCAL_VARIABLE"    // 局部变量
	LambdaParameter  EntityKind = "LAMBDA_PARAMETER"  // Lambda 参数
	Label            EntityKind = "LABEL"             // 语句标签
	AnnotationMember EntityKind = "ANNOTATION_MEMBER" // 注解类型元素
)

// AnonymousName 标记匿名实体，它不是合法的 Java 标识符。
const AnonymousName = "#anonymous#"

// IsContainer 判断该类型是否会打开新的作用域
func (k EntityKind) IsContainer() bool {
	switch k {
	case Class, Interface, Enumeration, EnumerationConstant, Constructor, Method:
		return true
	}
	return false
}

// Valid 判断是否为已知类型
func (k EntityKind) Valid() bool {
	switch k {
	case Class, Interface, Enumeration, EnumerationConstant, Constructor, Method,
		Field, FormalArgument, LocalVariable, LambdaParameter, Label, AnnotationMember:
		return true
	}
	return false
}

// Location 描述了实体在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath,omitempty"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// EntityNode 表示源码中一个被声明的程序实体，独占其子实体。
type EntityNode struct {
	Kind         EntityKind `json:"Kind"`
	Name         string     `json:"Name"`                   // 源码中的原始标识符，匿名实体为 AnonymousName
	DeclaredType string     `json:"DeclaredType,omitempty"` // 仅带类型的叶子实体才有
	Location     *Location  `json:"Location,omitempty"`

	children []*EntityNode
}

// NewEntity 创建一个没有声明类型的实体
func NewEntity(kind EntityKind, name string) *EntityNode {
	return &EntityNode{Kind: kind, Name: name}
}

// NewTypedEntity 创建一个带声明类型的实体
func NewTypedEntity(kind EntityKind, name, declaredType string) *EntityNode {
	return &EntityNode{Kind: kind, Name: name, DeclaredType: declaredType}
}

// MarshalJSON 输出实体及其子树
func (e *EntityNode) MarshalJSON() ([]byte, error) {
	type alias EntityNode
	return json.Marshal(struct {
		*alias
		Children []*EntityNode `json:"Children,omitempty"`
	}{(*alias)(e), e.children})
}

// HasDeclaredType 判断实体是否带有声明类型
func (e *EntityNode) HasDeclaredType() bool {
	return e.DeclaredType != ""
}

// AddChild 按声明顺序追加子实体
func (e *EntityNode) AddChild(child *EntityNode) {
	e.children = append(e.children, child)
}

// Children 返回按声明顺序排列的子实体
func (e *EntityNode) Children() []*EntityNode {
	return e.children
}

// Walk 先序遍历: 先访问自身，再按存储顺序访问子实体。fn 返回 false 时跳过该子树。
func (e *EntityNode) Walk(fn func(node *EntityNode, depth int) bool) {
	e.walk(fn, 0)
}

func (e *EntityNode) walk(fn func(*EntityNode, int) bool, depth int) {
	if !fn(e, depth) {
		return
	}
	for _, child := range e.children {
		child.walk(fn, depth+1)
	}
}

// EntityForest 是单个文件的顶级实体序列 (通常是一个或多个类/接口/枚举)
type EntityForest []*EntityNode

// Walk 对森林中的每棵树做先序遍历
func (f EntityForest) Walk(fn func(node *EntityNode, depth int) bool) {
	for _, root := range f {
		root.Walk(fn)
	}
}

// Count 返回森林中实体的总数
func (f EntityForest) Count() int {
	n := 0
	f.Walk(func(*EntityNode, int) bool {
		n++
		return true
	})
	return n
}
