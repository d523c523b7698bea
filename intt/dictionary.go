package intt

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed wordlists/*.txt
var builtinLists embed.FS

// 内置词表，按此顺序参与标记
var builtinOrder = []string{"english", "abbreviations", "acronyms", "technical"}

type wordList struct {
	name  string
	words map[string]struct{}
}

// Dictionary 是有序的词表集合，构建完成后只读，可并发查询。
type Dictionary struct {
	lists []wordList
}

// NewDictionary 创建空词典
func NewDictionary() *Dictionary {
	return &Dictionary{}
}

// DefaultDictionary 加载内置的全部词表
func DefaultDictionary() (*Dictionary, error) {
	d := NewDictionary()
	for _, name := range builtinOrder {
		f, err := builtinLists.Open("wordlists/" + name + ".txt")
		if err != nil {
			return nil, fmt.Errorf("open builtin word list %s: %w", name, err)
		}
		err = d.AddList(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AddList 从 r 读取词表: 每行一个词，忽略空行和 # 注释，统一转为小写。
// 同名词表会被合并。
func (d *Dictionary) AddList(name string, r io.Reader) error {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" {
			continue
		}
		words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read word list %s: %w", name, err)
	}

	for i := range d.lists {
		if d.lists[i].name == name {
			for w := range words {
				d.lists[i].words[w] = struct{}{}
			}
			return nil
		}
	}
	d.lists = append(d.lists, wordList{name: name, words: words})
	return nil
}

// Manifest 描述额外加载的词表文件
type Manifest struct {
	WordLists []ManifestEntry `yaml:"word_lists"`
}

type ManifestEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LoadManifest 读取 YAML 清单并加载其中列出的词表，相对路径以清单所在目录为基准
func (d *Dictionary) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read word list manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse word list manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for _, entry := range m.WordLists {
		if entry.Name == "" || entry.Path == "" {
			return fmt.Errorf("word list manifest %s: entry needs both name and path", path)
		}
		listPath := entry.Path
		if !filepath.IsAbs(listPath) {
			listPath = filepath.Join(base, listPath)
		}
		if err := d.addFile(entry.Name, listPath); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dictionary) addFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open word list %s: %w", name, err)
	}
	defer f.Close()
	return d.AddList(name, f)
}

// Lookup 返回包含该词 (不区分大小写) 的词表名称，按词表加载顺序
func (d *Dictionary) Lookup(word string) []string {
	w := strings.ToLower(word)
	var names []string
	for _, l := range d.lists {
		if _, ok := l.words[w]; ok {
			names = append(names, l.name)
		}
	}
	return names
}

// Known 判断词是否出现在任意词表中
func (d *Dictionary) Known(word string) bool {
	w := strings.ToLower(word)
	for _, l := range d.lists {
		if _, ok := l.words[w]; ok {
			return true
		}
	}
	return false
}

// ListNames 返回词表名称，按加载顺序
func (d *Dictionary) ListNames() []string {
	names := make([]string, len(d.lists))
	for i, l := range d.lists {
		names[i] = l.name
	}
	return names
}
