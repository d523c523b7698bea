package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/CodMac/go-treesitter-name-extractor/model"
)

// ErrInvalidPattern 表示 include/exclude 模式无法编译
var ErrInvalidPattern = errors.New("invalid glob pattern")

// DiscoverFiles 遍历 root，返回扩展名属于该语言、匹配任一 include 且不匹配任何 exclude 的文件。
// 模式使用 / 作为分隔符，针对相对 root 的路径匹配；include 为空时接受全部。隐藏目录被跳过。
func DiscoverFiles(root string, lang model.Language, include, exclude []string) ([]string, error) {
	ext := lang.Extension()
	if ext == "" {
		return nil, fmt.Errorf("discover files: language %s: %w", lang, model.ErrUnsupportedLanguage)
	}

	includeMatchers, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	excludeMatchers, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ext {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if len(includeMatchers) > 0 && !matchAny(includeMatchers, rel) {
			return nil
		}
		if matchAny(excludeMatchers, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover files under %s: %w", root, err)
	}
	return files, nil
}

// compileGlobs 编译模式；以 **/ 开头的模式同时匹配根目录下的文件
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, v := range variants {
			matcher, err := glob.Compile(v, '/')
			if err != nil {
				return nil, errors.Join(ErrInvalidPattern, err)
			}
			matchers = append(matchers, matcher)
		}
	}
	return matchers, nil
}

func matchAny(matchers []glob.Glob, path string) bool {
	for _, m := range matchers {
		if m.Match(path) {
			return true
		}
	}
	return false
}
