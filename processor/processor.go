package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/CodMac/go-treesitter-name-extractor/collector"
	"github.com/CodMac/go-treesitter-name-extractor/extract"
	"github.com/CodMac/go-treesitter-name-extractor/model"
	"github.com/CodMac/go-treesitter-name-extractor/noisefilter"
	"github.com/CodMac/go-treesitter-name-extractor/parser"
)

// FileError 记录单个文件的失败原因，不影响同批次的其他文件
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FileProcessor 负责并发处理文件列表: 解析、收集实体、切分名称。
type FileProcessor struct {
	Language    model.Language
	Strategy    model.Strategy
	Workers     int // 并发协程数量
	Tokeniser   extract.Tokeniser
	FilterNoise bool // 切分前按语言的 NoiseFilter 过滤名称
	Logger      *slog.Logger
}

// NewFileProcessor 创建 FileProcessor 实例
func NewFileProcessor(lang model.Language, strategy model.Strategy, tokeniser extract.Tokeniser, workers int) *FileProcessor {
	if workers <= 0 {
		workers = 4 // 默认并发数
	}
	return &FileProcessor{
		Language:  lang,
		Strategy:  strategy,
		Workers:   workers,
		Tokeniser: tokeniser,
		Logger:    slog.Default(),
	}
}

// ProcessFile 处理单个文件
func (fp *FileProcessor) ProcessFile(ctx context.Context, filePath string) (*model.FileData, error) {
	coll, ext, err := fp.pipeline()
	if err != nil {
		return nil, err
	}

	p, err := parser.NewParser(fp.Language)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	return fp.process(ctx, p, coll, ext, filePath)
}

// ProcessFiles 以有界并发处理文件列表，结果保持输入顺序。
// 单个文件的失败 (语法错误、协议违规等) 记入 FileError 并继续；
// 上下文取消或无法创建解析器时整批中止。
func (fp *FileProcessor) ProcessFiles(ctx context.Context, filePaths []string) ([]*model.FileData, []*FileError, error) {
	if len(filePaths) == 0 {
		return nil, nil, nil
	}

	coll, ext, err := fp.pipeline()
	if err != nil {
		return nil, nil, err
	}

	logger := fp.logger().With("run_id", uuid.NewString(), "language", string(fp.Language))
	logger.Info("processing files", "files", len(filePaths), "workers", fp.Workers, "strategy", string(fp.Strategy))

	results := make([]*model.FileData, len(filePaths))
	failures := make([]*FileError, len(filePaths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(fp.Workers)

	for i, path := range filePaths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			// tree-sitter 解析器不能跨 goroutine 共享
			p, err := parser.NewParser(fp.Language)
			if err != nil {
				return err
			}
			defer p.Close()

			data, err := fp.process(gCtx, p, coll, ext, path)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				failures[i] = &FileError{Path: path, Err: err}
				logger.Warn("skipping file", "path", path, "error", err)
				return nil
			}

			logger.Debug("file processed", "path", path, "names", len(data.Names()), "anomalies", len(data.Anomalies()))
			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		ok     []*model.FileData
		failed []*FileError
	)
	for i := range filePaths {
		if results[i] != nil {
			ok = append(ok, results[i])
		}
		if failures[i] != nil {
			failed = append(failed, failures[i])
		}
	}
	logger.Info("processing finished", "processed", len(ok), "failed", len(failed))
	return ok, failed, nil
}

func (fp *FileProcessor) pipeline() (collector.Collector, *extract.Extractor, error) {
	coll, err := collector.GetCollector(fp.Language)
	if err != nil {
		return nil, nil, err
	}

	var opts []extract.Option
	if fp.FilterNoise {
		opts = append(opts, extract.WithNoiseFilter(noisefilter.GetNoiseFilter(fp.Language)))
	}
	ext, err := extract.NewExtractor(fp.Strategy, fp.Tokeniser, opts...)
	if err != nil {
		return nil, nil, err
	}
	return coll, ext, nil
}

func (fp *FileProcessor) process(ctx context.Context, p *parser.Parser, coll collector.Collector, ext *extract.Extractor, filePath string) (*model.FileData, error) {
	parsed, err := p.ParseFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	defer parsed.Close()

	raw, err := coll.CollectDefinitions(parsed.Root(), filePath, &parsed.Source)
	if err != nil {
		return nil, fmt.Errorf("collect definitions in %s: %w", filePath, err)
	}

	return ext.Extract(ctx, raw)
}

func (fp *FileProcessor) logger() *slog.Logger {
	if fp.Logger != nil {
		return fp.Logger
	}
	return slog.Default()
}
