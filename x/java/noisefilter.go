package java

import "github.com/CodMac/go-treesitter-name-extractor/model"

type NoiseFilter struct{}

func NewJavaNoiseFilter() *NoiseFilter {
	return &NoiseFilter{}
}

// IsNoise 匿名类占位名与未命名变量 "_" 不携带词汇信息
func (f *NoiseFilter) IsNoise(name string) bool {
	return name == model.AnonymousName || name == "_"
}
