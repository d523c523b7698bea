package java

// Construct 是遍历器在声明处报告的 Java 语法结构类型 (封闭集合)
type Construct int

const (
	ClassDeclaration Construct = iota + 1
	AnonymousClassBody
	InterfaceDeclaration
	AnnotationTypeDeclaration
	EnumDeclaration
	EnumConstant
	ConstructorDeclarator
	MethodDeclarator
	FieldDeclarator
	ConstantDeclarator
	RecordComponent
	AnnotationTypeElement
	FormalParameter
	CatchParameter
	LambdaParameter
	Resource
	EnhancedForVariable
	LocalVariableDeclarator
	PatternVariable
	LabelDeclaration
)

var constructNames = map[Construct]string{
	ClassDeclaration:          "ClassDeclaration",
	AnonymousClassBody:        "AnonymousClassBody",
	InterfaceDeclaration:      "InterfaceDeclaration",
	AnnotationTypeDeclaration: "AnnotationTypeDeclaration",
	EnumDeclaration:           "EnumDeclaration",
	EnumConstant:              "EnumConstant",
	ConstructorDeclarator:     "ConstructorDeclarator",
	MethodDeclarator:          "MethodDeclarator",
	FieldDeclarator:           "FieldDeclarator",
	ConstantDeclarator:        "ConstantDeclarator",
	RecordComponent:           "RecordComponent",
	AnnotationTypeElement:     "AnnotationTypeElement",
	FormalParameter:           "FormalParameter",
	CatchParameter:            "CatchParameter",
	LambdaParameter:           "LambdaParameter",
	Resource:                  "Resource",
	EnhancedForVariable:       "EnhancedForVariable",
	LocalVariableDeclarator:   "LocalVariableDeclarator",
	PatternVariable:           "PatternVariable",
	LabelDeclaration:          "LabelDeclaration",
}

func (c Construct) String() string {
	if name, ok := constructNames[c]; ok {
		return name
	}
	return "Construct(?)"
}

// ConstructForNodeKind 将 Tree-sitter 节点类型映射为声明结构。
// 匿名类与记录组件由父节点决定，不在此映射中。
func ConstructForNodeKind(kind string) (Construct, bool) {
	switch kind {
	case "class_declaration", "record_declaration":
		return ClassDeclaration, true
	case "interface_declaration":
		return InterfaceDeclaration, true
	case "annotation_type_declaration":
		return AnnotationTypeDeclaration, true
	case "enum_declaration":
		return EnumDeclaration, true
	case "enum_constant":
		return EnumConstant, true
	case "constructor_declaration", "compact_constructor_declaration":
		return ConstructorDeclarator, true
	case "method_declaration":
		return MethodDeclarator, true
	case "field_declaration":
		return FieldDeclarator, true
	case "constant_declaration":
		return ConstantDeclarator, true
	case "annotation_type_element_declaration":
		return AnnotationTypeElement, true
	case "formal_parameter", "spread_parameter":
		return FormalParameter, true
	case "catch_formal_parameter":
		return CatchParameter, true
	case "resource":
		return Resource, true
	case "enhanced_for_statement":
		return EnhancedForVariable, true
	case "local_variable_declaration":
		return LocalVariableDeclarator, true
	case "instanceof_expression", "type_pattern":
		return PatternVariable, true
	case "labeled_statement":
		return LabelDeclaration, true
	}
	return 0, false
}
