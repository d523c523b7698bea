package extract

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/CodMac/go-treesitter-name-extractor/collector"
	"github.com/CodMac/go-treesitter-name-extractor/model"
	"github.com/CodMac/go-treesitter-name-extractor/noisefilter"
)

// Extractor 将完成的实体森林组装为 FileData。
// 策略在构造时确定，对每个文件的所有名称统一使用。
type Extractor struct {
	strategy    model.Strategy
	tokeniser   Tokeniser
	noiseFilter noisefilter.NoiseFilter
}

// Option 配置 Extractor
type Option func(*Extractor)

// WithNoiseFilter 在切分前从名称列表中移除噪音名称 (例如匿名类占位名)
func WithNoiseFilter(f noisefilter.NoiseFilter) Option {
	return func(e *Extractor) {
		e.noiseFilter = f
	}
}

// NewExtractor 创建 Extractor，tokeniser 不能为空
func NewExtractor(strategy model.Strategy, tokeniser Tokeniser, opts ...Option) (*Extractor, error) {
	if tokeniser == nil {
		return nil, errors.New("extract: nil tokeniser")
	}
	e := &Extractor{
		strategy:    strategy,
		tokeniser:   tokeniser,
		noiseFilter: &noisefilter.DefaultNoiseFilter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Strategy 返回本 Extractor 使用的切分策略
func (e *Extractor) Strategy() model.Strategy {
	return e.strategy
}

// Extract 对单个文件的原始数据执行名称展开与切分
func (e *Extractor) Extract(ctx context.Context, raw *model.RawFileData) (*model.FileData, error) {
	if raw == nil {
		return nil, errors.New("extract: nil raw file data")
	}

	start := time.Now()
	ctx, span := startExtractSpan(ctx, raw.FilePath, string(e.strategy))
	defer span.End()

	var names []string
	for _, name := range CollectNames(raw.TopLevelEntities) {
		if e.noiseFilter.IsNoise(name) {
			continue
		}
		names = append(names, name)
	}

	var (
		tokens    []string
		tokenised = make([]model.TokenisedName, 0, len(names))
		anomalies int
	)
	for _, name := range names {
		tn := tokeniseName(e.tokeniser, name, e.strategy)
		if tn.Anomaly {
			anomalies++
		}
		for _, t := range tn.Tokens {
			tokens = append(tokens, t.Content)
		}
		tokenised = append(tokenised, tn)
	}

	identity := raw.Identity()
	fileName := collector.SimpleFileName(identity.SourcePath)
	data := model.NewFileData(model.FileDataParts{
		Identity:       identity,
		FileName:       fileName,
		JavaFileName:   identity.PackageName + "." + fileName,
		Strategy:       e.strategy,
		Names:          names,
		Tokens:         tokens,
		TokenisedNames: tokenised,
		Entities:       raw.TopLevelEntities,
	})

	span.SetAttributes(
		attribute.Int("extract.names", len(names)),
		attribute.Int("extract.tokens", len(tokens)),
		attribute.Int("extract.anomalies", anomalies),
	)
	recordExtractMetrics(ctx, time.Since(start), string(e.strategy), len(names), len(tokens), anomalies)

	return data, nil
}

// Extract 使用给定策略与切分器处理单个文件
func Extract(raw *model.RawFileData, strategy model.Strategy, tokeniser Tokeniser, opts ...Option) (*model.FileData, error) {
	e, err := NewExtractor(strategy, tokeniser, opts...)
	if err != nil {
		return nil, err
	}
	return e.Extract(context.Background(), raw)
}
