package model

import "errors"

// 常见失败条件的哨兵错误，调用方使用 errors.Is 判断类别。
var (
	// ErrEmptyScopeStack 表示在空作用域栈上执行了 MoveToParent。
	// 这是遍历器与构建器之间的协议违规 (多出一个 "离开容器" 事件)，不可恢复。
	ErrEmptyScopeStack = errors.New("attempted to recover parent entity from empty scope stack")

	// ErrUnclosedScope 表示遍历结束时仍有未关闭的容器，同属协议违规。
	ErrUnclosedScope = errors.New("scope stack not empty after traversal")

	// ErrBuilderFinished 表示构建器在 Finish 之后被再次使用。
	ErrBuilderFinished = errors.New("scope builder already finished")

	// ErrMalformedInput 表示解析器无法为该文件产生可用的语法树，无法提取。
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedLanguage 表示没有为该语言注册解析器或 Collector。
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// IsProtocolViolation 判断错误是否属于遍历器/构建器协议违规
func IsProtocolViolation(err error) bool {
	return errors.Is(err, ErrEmptyScopeStack) || errors.Is(err, ErrUnclosedScope)
}

// IsMalformedInput 判断错误是否表示源文件无法解析
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}
