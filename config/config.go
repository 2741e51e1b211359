// Package config 加载应用配置与标签模板目录。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/barcoder/label"
)

// Config 是应用配置（YAML）。
type Config struct {
	LayoutsDir   string `yaml:"layouts_dir"`
	FontsDir     string `yaml:"fonts_dir"`
	QuantityMode string `yaml:"quantity_mode"`
	Author       string `yaml:"author"`
	LogLevel     string `yaml:"log_level"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
}

// Default 返回默认配置。
func Default() *Config {
	cfg := &Config{
		LayoutsDir:   filepath.Join("assets", "layouts"),
		FontsDir:     filepath.Join("assets", "fonts"),
		QuantityMode: label.QuantityShort.String(),
		LogLevel:     "info",
	}
	cfg.Metrics.Addr = ":9090"
	return cfg
}

// Load 读取配置文件，未出现的字段保留默认值。
// 文件中的相对目录按配置文件所在目录解析。
// optional 为 true 时文件不存在返回默认配置。
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: 读取配置文件失败: %w", label.ErrConfiguration, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("%w: 解析配置文件失败: %w", label.ErrConfiguration, err)
	}
	base := filepath.Dir(path)
	if fileCfg.LayoutsDir != "" {
		cfg.LayoutsDir = resolve(base, fileCfg.LayoutsDir)
	}
	if fileCfg.FontsDir != "" {
		cfg.FontsDir = resolve(base, fileCfg.FontsDir)
	}
	if fileCfg.QuantityMode != "" {
		cfg.QuantityMode = fileCfg.QuantityMode
	}
	if fileCfg.Author != "" {
		cfg.Author = fileCfg.Author
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	cfg.Metrics.Enabled = fileCfg.Metrics.Enabled
	if fileCfg.Metrics.Addr != "" {
		cfg.Metrics.Addr = fileCfg.Metrics.Addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查枚举字段。
func (c *Config) Validate() error {
	if _, err := label.ParseQuantityMode(c.QuantityMode); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: 未知的日志级别 %q", label.ErrConfiguration, c.LogLevel)
	}
	return nil
}

// Mode 返回数量模式，配置已通过 Validate。
func (c *Config) Mode() label.QuantityMode {
	m, err := label.ParseQuantityMode(c.QuantityMode)
	if err != nil {
		return label.QuantityShort
	}
	return m
}

func resolve(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
