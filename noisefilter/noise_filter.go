package noisefilter

import "github.com/CodMac/go-treesitter-name-extractor/model"

// NoiseFilter 定义了如何识别特定语言中不值得切分的标识符名称
type NoiseFilter interface {
	IsNoise(name string) bool
}

var noiseFilterMap = make(map[model.Language]NoiseFilter)

// RegisterNoiseFilter 注册一个语言与其对应的 NoiseFilter
func RegisterNoiseFilter(lang model.Language, noiseFilter NoiseFilter) {
	noiseFilterMap[lang] = noiseFilter
}

// GetNoiseFilter 根据语言类型获取对应的 NoiseFilter 实例。
func GetNoiseFilter(lang model.Language) NoiseFilter {
	noiseFilter, ok := noiseFilterMap[lang]
	if !ok {
		// 如果没注册，返回一个默认不进行过滤的过滤器
		return &DefaultNoiseFilter{}
	}

	return noiseFilter
}

// DefaultNoiseFilter 默认过滤器：不对任何名称进行噪音判定
type DefaultNoiseFilter struct{}

func (d *DefaultNoiseFilter) IsNoise(string) bool { return false }
