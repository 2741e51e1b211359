package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ByLCY/barcoder/batch"
	"github.com/ByLCY/barcoder/config"
	"github.com/ByLCY/barcoder/dataset"
	"github.com/ByLCY/barcoder/fonts"
	"github.com/ByLCY/barcoder/label"
	"github.com/ByLCY/barcoder/metrics"
	canvasrenderer "github.com/ByLCY/barcoder/renderer/canvas"
)

type renderOptions struct {
	category    string
	labelName   string
	dataPath    string
	outPath     string
	mode        string
	author      string
	debugPath   string
	metricsAddr string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "从 Excel 文件生成标签 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if opts.mode != "" {
				cfg.QuantityMode = opts.mode
			}
			if opts.author != "" {
				cfg.Author = opts.author
			}
			if opts.metricsAddr != "" {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Addr = opts.metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := runRender(ctx, cfg, opts, newLogger(cfg), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return outcomeError(res)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "type", "t", label.CategoryProduct.String(), "标签类别: product, box")
	cmd.Flags().StringVarP(&opts.labelName, "label", "l", "", "标签名称（见 labels 命令）")
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "Excel 数据文件")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "PDF 输出路径")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "数量模式: short, full（覆盖配置）")
	cmd.Flags().StringVar(&opts.author, "author", "", "PDF 作者")
	cmd.Flags().StringVar(&opts.debugPath, "debug", "", "布局调试 JSON 输出路径")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Prometheus /metrics 监听地址")
	_ = cmd.MarkFlagRequired("label")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// runRender 串联字体、模板、数据读取与批处理，并向 out 输出进度与结果。
func runRender(ctx context.Context, cfg *config.Config, opts renderOptions, logger *slog.Logger, out io.Writer) (batch.Result, error) {
	cat, err := label.ParseCategory(opts.category)
	if err != nil {
		return batch.Result{}, err
	}
	fontList, err := loadFonts(cfg.FontsDir, logger)
	if err != nil {
		return batch.Result{}, err
	}
	catalog, err := config.LoadCatalog(cfg.LayoutsDir, fontList)
	if err != nil {
		return batch.Result{}, err
	}
	lbl, ok := catalog.Find(cat, opts.labelName)
	if !ok {
		return batch.Result{}, fmt.Errorf("%w: этикетка %q (%s) не найдена", label.ErrConfiguration, opts.labelName, cat)
	}

	ds, err := dataset.Read(opts.dataPath, cat)
	if err != nil {
		return batch.Result{}, fmt.Errorf("读取 Excel 数据失败: %w", err)
	}
	if len(ds.Incorrect) > 0 {
		rows := make([]string, len(ds.IncorrectRows))
		for i, r := range ds.IncorrectRows {
			rows[i] = fmt.Sprint(r)
		}
		fmt.Fprintf(out, "Внимание: имеются некорректные данные (строки %s), этикетки для них не будут сгенерированы.\n",
			strings.Join(rows, ", "))
	}

	outPath := opts.outPath
	if ext := filepath.Ext(outPath); !strings.EqualFold(ext, ".pdf") {
		outPath = strings.TrimSuffix(outPath, ext) + ".pdf"
	}

	collector := metrics.NewCollector()
	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics.Addr, collector, logger)
		defer srv.Close()
	}

	// 保留渲染器引用以便输出调试布局
	var drawn *canvasrenderer.Renderer
	factory := batch.CanvasFactory(canvasrenderer.DocumentMeta{Author: cfg.Author},
		func(r *canvasrenderer.Renderer) { drawn = r })

	ctrl := batch.NewController(
		batch.WithFactory(factory),
		batch.WithLogger(logger),
		batch.WithMetrics(collector),
		batch.WithObserver(progressPrinter(out)),
	)
	res, err := ctrl.Run(ctx, batch.Request{
		Records: ds.Correct,
		Path:    outPath,
		Label:   lbl,
		Mode:    cfg.Mode(),
		Fonts:   fontList,
	})
	if err != nil {
		return batch.Result{}, err
	}

	if opts.debugPath != "" && drawn != nil {
		if err := writeDebug(drawn.Placements(), opts.debugPath); err != nil {
			logger.Warn("debug output failed", "error", err)
		}
	}
	reportOutcome(out, res)
	return res, nil
}

// loadFonts 合并字体目录与内置字体，目录中的同名字体优先。
func loadFonts(dir string, logger *slog.Logger) ([]label.Font, error) {
	scanned, err := fonts.Scan(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logger.Warn("fonts directory not found, using built-in fonts", "dir", dir)
	}
	return append(scanned, fonts.Builtin()...), nil
}

func progressPrinter(out io.Writer) batch.Observer {
	return batch.ObserverFuncs{
		Started: func(total int) {
			fmt.Fprintf(out, "Записей: %d\n", total)
		},
		Progress: func(s batch.Snapshot) {
			if s.Current == nil {
				return
			}
			fmt.Fprintf(out, "[%d/%d] Артикул: %s\n", s.Processed, s.Total, s.Current.Base().SKU)
		},
	}
}

// reportOutcome 输出三种结果之一：完成、部分跳过、保存失败；以及取消。
func reportOutcome(out io.Writer, res batch.Result) {
	switch res.Outcome() {
	case batch.OutcomeFailed:
		fmt.Fprintln(out, "Ошибка сохранения: не удалось сохранить файл со сгенерированными этикетками")
	case batch.OutcomeCancelled:
		fmt.Fprintf(out, "Отменено: обработано %d из %d, файл сохранён: %s\n", res.Processed, res.Total, res.Path)
	case batch.OutcomeDegraded:
		fmt.Fprintf(out, "Внимание: PDF файл создан, однако для %d наименований не были созданы этикетки\n", res.Failed)
		for _, rec := range res.FailedRecords {
			fmt.Fprintf(out, "  sku=%s\n", rec.Base().SKU)
		}
	default:
		fmt.Fprintf(out, "Готово: PDF файл с этикетками создан: %s\n", res.Path)
	}
}

// outcomeError 把致命的批处理结果转换为命令错误，其余结果返回 nil。
func outcomeError(res batch.Result) error {
	if res.Outcome() != batch.OutcomeFailed {
		return nil
	}
	return fmt.Errorf("保存标签 PDF 失败: %w", res.Err)
}

func writeDebug(placements []canvasrenderer.Placement, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := canvasrenderer.WriteDebugJSON(placements, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func serveMetrics(addr string, c *metrics.Collector, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("metrics server listening", "addr", addr)
	return srv
}

func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "列出可用标签",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fontList, err := loadFonts(cfg.FontsDir, newLogger(cfg))
			if err != nil {
				return err
			}
			catalog, err := config.LoadCatalog(cfg.LayoutsDir, fontList)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
}

func printCatalog(out io.Writer, catalog *config.Catalog) {
	for _, cat := range catalog.Categories() {
		fmt.Fprintf(out, "%s (%s):\n", cat.Title(), cat)
		for _, lbl := range catalog.Labels(cat) {
			fmt.Fprintf(out, "  %g✕%g mm: %s\n", lbl.Size.Width, lbl.Size.Height, lbl.Name)
		}
	}
	fmt.Fprintln(out, "Количественные режимы:")
	for _, m := range catalog.QuantityModes() {
		fmt.Fprintf(out, "  %s: %s\n", m, m.Title())
	}
}

func newFontsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "列出可用字体",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fontList, err := loadFonts(cfg.FontsDir, newLogger(cfg))
			if err != nil {
				return err
			}
			for _, f := range fontList {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.Name, f.Path)
			}
			return nil
		},
	}
}
