package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CodMac/go-treesitter-name-extractor/config"
	"github.com/CodMac/go-treesitter-name-extractor/intt"
	"github.com/CodMac/go-treesitter-name-extractor/logging"
	"github.com/CodMac/go-treesitter-name-extractor/model"
	"github.com/CodMac/go-treesitter-name-extractor/output"
	"github.com/CodMac/go-treesitter-name-extractor/processor"

	// 导入语言实现，触发其 init() 注册 Language、Collector 和 NoiseFilter
	_ "github.com/CodMac/go-treesitter-name-extractor/x/java"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath  string
	lang        string
	strategy    string
	workers     int
	format      string
	out         string
	wordLists   string
	filterNoise bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var f cliFlags

	cmd := &cobra.Command{
		Use:           "jim [path]",
		Short:         "提取 Java 源码中声明的标识符名称，并切分为词元",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &f, cfg)

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return run(cmd.Context(), cfg, root, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "配置文件路径 (默认查找 ./jim.yaml)")
	flags.StringVar(&f.lang, "lang", "", "源码语言 (java)")
	flags.StringVarP(&f.strategy, "strategy", "s", "", "切分策略 (aggressive | conservative)")
	flags.IntVarP(&f.workers, "workers", "w", 0, "并发处理文件的协程数量 (默认 CPU 核心数)")
	flags.StringVarP(&f.format, "format", "f", "", "输出格式 (jsonl | names | mermaid)")
	flags.StringVarP(&f.out, "out", "o", "", "输出文件路径 (默认标准输出)")
	flags.StringVar(&f.wordLists, "word-lists", "", "额外词表的 manifest 文件")
	flags.BoolVar(&f.filterNoise, "filter-noise", false, "切分前过滤匿名类等噪声名称")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "输出 debug 日志")

	return cmd
}

// applyFlags 仅用显式给出的命令行参数覆盖配置
func applyFlags(cmd *cobra.Command, f *cliFlags, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Language = f.lang
	}
	if flags.Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("out") {
		cfg.Output.Path = f.out
	}
	if flags.Changed("word-lists") {
		cfg.Tokeniser.WordLists = f.wordLists
	}
	if flags.Changed("filter-noise") {
		cfg.FilterNoise = f.filterNoise
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
}

func run(ctx context.Context, cfg *config.Config, root string, stdout, stderr io.Writer) error {
	lang, strategy, err := cfg.Validate()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Writer: stderr, Service: "jim"})
	if err != nil {
		return err
	}

	// 1. 构造词典与切分器
	dict, err := intt.DefaultDictionary()
	if err != nil {
		return err
	}
	if cfg.Tokeniser.WordLists != "" {
		if err := dict.LoadManifest(cfg.Tokeniser.WordLists); err != nil {
			return err
		}
	}
	tokeniser, err := intt.NewTokeniser(dict, cfg.Tokeniser.CacheSize)
	if err != nil {
		return err
	}

	// 2. 查找所有要分析的文件
	filePaths, err := inputFiles(root, lang, cfg)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(filePaths) == 0 {
		logger.Info("no source files found", "root", root)
		return nil
	}
	logger.Info("starting extraction", "files", len(filePaths), "lang", lang, "strategy", strategy, "workers", cfg.Workers)

	// 3. 启动处理器
	proc := processor.NewFileProcessor(lang, strategy, tokeniser, cfg.Workers)
	proc.FilterNoise = cfg.FilterNoise
	proc.Logger = logger

	results, failures, err := proc.ProcessFiles(ctx, filePaths)
	if err != nil {
		return err
	}
	logger.Info("extraction complete", "files", len(results), "failed", len(failures))

	// 4. 输出结果
	return writeResults(cfg.Output, results, stdout)
}

func inputFiles(root string, lang model.Language, cfg *config.Config) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	return processor.DiscoverFiles(root, lang, cfg.Include, cfg.Exclude)
}

func writeResults(out config.OutputConfig, results []*model.FileData, stdout io.Writer) error {
	if out.Format == config.FormatMermaid {
		return output.ExportMermaidHTML(out.Path, results)
	}

	write := func(w io.Writer) error {
		writer := output.NewJSONLWriter(w)
		var err error
		if out.Format == config.FormatNames {
			_, err = writer.WriteNames(results)
		} else {
			_, err = writer.WriteAll(results)
		}
		return err
	}

	if out.Path == "" {
		return write(stdout)
	}
	f, err := os.Create(out.Path)
	if err != nil {
		return err
	}
	return output.WriteAndClose(f, write)
}
