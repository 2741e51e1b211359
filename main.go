package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/barcoder/config"
)

var (
	configFile string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "barcoder",
		Short: "条码标签 PDF 生成器",
		Long: `barcoder 从 Excel 表格批量生成条码标签 PDF:
- 商品标签 (product) 与箱标 (box)
- CODE128 / EAN-13 / UPC-A / EAN-8 自动识别
- YAML 或 .label 标签骨架`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "barcoder.yaml", "配置文件路径（不存在时使用默认配置）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newFontsCmd())
	return rootCmd
}

// loadConfig 读取配置文件；只有显式指定的配置文件缺失时才报错。
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Load(configFile, optional)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
