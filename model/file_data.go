package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Strategy 选择标识符名称的切分方式
type Strategy string

const (
	// StrategyAggressive 尽力切分: 分隔符、大小写边界加词典重新切分
	StrategyAggressive Strategy = "aggressive"
	// StrategyConservative 只在无歧义的边界 (分隔符与大小写转换) 处切分
	StrategyConservative Strategy = "conservative"
)

// ParseStrategy 解析策略名称，兼容 full/simple 两个别名
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aggressive", "full", "":
		return StrategyAggressive, nil
	case "conservative", "simple":
		return StrategyConservative, nil
	}
	return "", fmt.Errorf("unrecognised tokenisation strategy %q", s)
}

// RawFileIdentity 文件标识: 源文件路径与声明的包名 (未声明时为空串)
type RawFileIdentity struct {
	SourcePath  string `json:"SourcePath"`
	PackageName string `json:"PackageName"`
}

// RawFileData 是遍历器驱动 ScopeBuilder 时逐步填充的原始数据
type RawFileData struct {
	FilePath         string
	PackageName      string
	TopLevelEntities EntityForest
}

// NewRawFileData 创建原始数据，包名默认为空串
func NewRawFileData(filePath string) *RawFileData {
	return &RawFileData{FilePath: filePath}
}

// Add 追加一个顶级实体
func (r *RawFileData) Add(entity *EntityNode) {
	r.TopLevelEntities = append(r.TopLevelEntities, entity)
}

// Identity 返回文件标识
func (r *RawFileData) Identity() RawFileIdentity {
	return RawFileIdentity{SourcePath: r.FilePath, PackageName: r.PackageName}
}

// TaggedToken 是切分器返回的子词，附带识别它的词表名称
type TaggedToken struct {
	Content   string
	WordLists []string
}

// Token 是标识符中的一个子词 (已转小写) 及其来源词表
type Token struct {
	Content   string   `json:"Content"`
	WordLists []string `json:"WordLists"`
}

// TokenisedName 是一个标识符名称 (保留原始大小写) 及其切分结果。
// Anomaly 为 true 表示切分器对非空名称没有返回任何子词。
type TokenisedName struct {
	Name    string  `json:"Name"`
	Tokens  []Token `json:"Tokens"`
	Anomaly bool    `json:"Anomaly,omitempty"`
}

// FileData 是单个文件的提取结果，构建后不可修改。
type FileData struct {
	identity       RawFileIdentity
	fileName       string
	javaFileName   string
	strategy       Strategy
	names          []string
	tokens         []string
	tokenSet       map[string]struct{}
	tokenisedNames []TokenisedName
	entities       EntityForest
}

// FileDataParts 汇集构造 FileData 所需的全部字段
type FileDataParts struct {
	Identity       RawFileIdentity
	FileName       string
	JavaFileName   string
	Strategy       Strategy
	Names          []string
	Tokens         []string
	TokenisedNames []TokenisedName
	Entities       EntityForest
}

// NewFileData 由已计算好的各部分组装结果，token 集合在此去重
func NewFileData(p FileDataParts) *FileData {
	set := make(map[string]struct{}, len(p.Tokens))
	for _, t := range p.Tokens {
		set[t] = struct{}{}
	}
	return &FileData{
		identity:       p.Identity,
		fileName:       p.FileName,
		javaFileName:   p.JavaFileName,
		strategy:       p.Strategy,
		names:          p.Names,
		tokens:         p.Tokens,
		tokenSet:       set,
		tokenisedNames: p.TokenisedNames,
		entities:       p.Entities,
	}
}

// Identity 返回文件标识
func (d *FileData) Identity() RawFileIdentity { return d.identity }

// SystemFileName 返回访问源文件时使用的完整路径
func (d *FileData) SystemFileName() string { return d.identity.SourcePath }

// PackageName 返回文件声明的包名
func (d *FileData) PackageName() string { return d.identity.PackageName }

// FileName 返回去掉目录部分的文件名
func (d *FileData) FileName() string { return d.fileName }

// JavaFileName 返回 包名 + "." + 文件名，未声明包时以 "." 开头
func (d *FileData) JavaFileName() string { return d.javaFileName }

// Strategy 返回本次提取使用的切分策略
func (d *FileData) Strategy() Strategy { return d.strategy }

// Names 返回按先序声明顺序排列的标识符名称
func (d *FileData) Names() []string { return slices.Clone(d.names) }

// Tokens 返回所有名称的子词 (小写，保留重复，按插入顺序)
func (d *FileData) Tokens() []string { return slices.Clone(d.tokens) }

// TokenSet 返回去重后的子词集合
func (d *FileData) TokenSet() map[string]struct{} {
	out := make(map[string]struct{}, len(d.tokenSet))
	for t := range d.tokenSet {
		out[t] = struct{}{}
	}
	return out
}

// HasToken 判断子词是否出现在该文件中
func (d *FileData) HasToken(token string) bool {
	_, ok := d.tokenSet[token]
	return ok
}

// SortedTokenSet 返回排序后的去重子词
func (d *FileData) SortedTokenSet() []string {
	out := make([]string, 0, len(d.tokenSet))
	for t := range d.tokenSet {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// TokenisedNames 返回每个名称的详细切分结果，顺序与 Names 一致
func (d *FileData) TokenisedNames() []TokenisedName {
	out := make([]TokenisedName, len(d.tokenisedNames))
	for i, tn := range d.tokenisedNames {
		tokens := make([]Token, len(tn.Tokens))
		for j, t := range tn.Tokens {
			tokens[j] = Token{Content: t.Content, WordLists: slices.Clone(t.WordLists)}
		}
		out[i] = TokenisedName{Name: tn.Name, Tokens: tokens, Anomaly: tn.Anomaly}
	}
	return out
}

// Anomalies 返回切分结果为空的名称
func (d *FileData) Anomalies() []string {
	var out []string
	for _, tn := range d.tokenisedNames {
		if tn.Anomaly {
			out = append(out, tn.Name)
		}
	}
	return out
}

// Entities 返回提取所依据的实体森林
func (d *FileData) Entities() EntityForest { return d.entities }

// MarshalJSON 输出提取结果
func (d *FileData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SourcePath     string          `json:"SourcePath"`
		PackageName    string          `json:"PackageName"`
		FileName       string          `json:"FileName"`
		JavaFileName   string          `json:"JavaFileName"`
		Strategy       Strategy        `json:"Strategy"`
		Names          []string        `json:"Names"`
		Tokens         []string        `json:"Tokens"`
		TokenSet       []string        `json:"TokenSet"`
		TokenisedNames []TokenisedName `json:"TokenisedNames"`
		Entities       EntityForest    `json:"Entities,omitempty"`
	}{
		SourcePath:     d.identity.SourcePath,
		PackageName:    d.identity.PackageName,
		FileName:       d.fileName,
		JavaFileName:   d.javaFileName,
		Strategy:       d.strategy,
		Names:          d.names,
		Tokens:         d.tokens,
		TokenSet:       d.SortedTokenSet(),
		TokenisedNames: d.tokenisedNames,
		Entities:       d.entities,
	})
}
