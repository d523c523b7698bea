package java

import "github.com/CodMac/go-treesitter-name-extractor/model"

// Classify 返回声明结构对应的实体类型，以及该声明是否打开新的作用域。
// 参数与变量类结构共用同一个标识符产生式，由声明上下文 ctx 区分；
// ctx 为空或为容器类型时使用该结构的默认类型。
func Classify(c Construct, ctx model.EntityKind) (model.EntityKind, bool) {
	switch c {
	case ClassDeclaration, AnonymousClassBody:
		return model.Class, true
	case InterfaceDeclaration, AnnotationTypeDeclaration:
		return model.Interface, true
	case EnumDeclaration:
		return model.Enumeration, true
	case EnumConstant:
		return model.EnumerationConstant, true
	case ConstructorDeclarator:
		return model.Constructor, true
	case MethodDeclarator:
		return model.Method, true
	case FieldDeclarator, ConstantDeclarator, RecordComponent:
		return model.Field, false
	case AnnotationTypeElement:
		return model.AnnotationMember, false
	case FormalParameter, CatchParameter:
		return fromContext(ctx, model.FormalArgument), false
	case LambdaParameter:
		return fromContext(ctx, model.LambdaParameter), false
	case Resource, EnhancedForVariable, LocalVariableDeclarator, PatternVariable:
		return fromContext(ctx, model.LocalVariable), false
	case LabelDeclaration:
		return model.Label, false
	}
	panic("java: unclassified construct " + c.String())
}

func fromContext(ctx model.EntityKind, fallback model.EntityKind) model.EntityKind {
	if ctx == "" || ctx.IsContainer() || !ctx.Valid() {
		return fallback
	}
	return ctx
}
