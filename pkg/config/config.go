package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultHost Polymarket CLOB 主机（可能变化，以官方文档为准）
const DefaultHost = "https://clob.polymarket.com"

// WalletConfig 钱包配置
type WalletConfig struct {
	PrivateKey    string
	FunderAddress string
}

// MarketConfig 市场与信号源配置
type MarketConfig struct {
	// TokenID 要买入的 "UP" 条件代币 ID（需要从市场数据中查出）
	TokenID string
	// Symbol Binance 现货交易对，例如 ETHUSDT
	Symbol string
	// Interval K 线周期，例如 1m
	Interval string
	// Lookback 取最近多少根 K 线
	Lookback int
}

// SessionConfig 单次交易会话配置
type SessionConfig struct {
	SpendCeiling    float64 // 会话最大消费（USDC）
	OrderSize       float64 // 单笔下单金额（USDC）
	EdgeThreshold   float64 // 最小 edge（百分点），超过才下单
	PollIntervalSec int     // 轮询间隔（秒）
	DurationMin     int     // 会话时长（分钟）
}

// Config 应用配置
type Config struct {
	Host     string
	ChainID  int
	Wallet   WalletConfig
	Market   MarketConfig
	Session  SessionConfig
	LogLevel string
	LogFile  string
	DryRun   bool // 纸交易模式：不进行真实交易，订单信息只记录在日志中
}

// ConfigFile 配置文件结构（用于 YAML 解析）
type ConfigFile struct {
	Host   string `yaml:"host"`
	Chain  int    `yaml:"chain_id"`
	Wallet struct {
		PrivateKey    string `yaml:"private_key"`
		FunderAddress string `yaml:"funder_address"`
	} `yaml:"wallet"`
	Market struct {
		TokenID  string `yaml:"token_id"`
		Symbol   string `yaml:"symbol"`
		Interval string `yaml:"interval"`
		Lookback int    `yaml:"lookback"`
	} `yaml:"market"`
	Session struct {
		SpendCeiling    float64 `yaml:"spend_ceiling"`
		OrderSize       float64 `yaml:"order_size"`
		EdgeThreshold   float64 `yaml:"edge_threshold"`
		PollIntervalSec int     `yaml:"poll_interval_sec"`
		DurationMin     int     `yaml:"duration_min"`
	} `yaml:"session"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	DryRun   bool   `yaml:"dry_run"`
}

// Load 加载配置：先读 YAML 文件（路径可为空），再用环境变量覆盖，最后填默认值。
func Load(filePath string) (*Config, error) {
	var file ConfigFile

	if strings.TrimSpace(filePath) != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	cfg := &Config{
		Host:    file.Host,
		ChainID: file.Chain,
		Wallet: WalletConfig{
			PrivateKey:    file.Wallet.PrivateKey,
			FunderAddress: file.Wallet.FunderAddress,
		},
		Market: MarketConfig{
			TokenID:  file.Market.TokenID,
			Symbol:   file.Market.Symbol,
			Interval: file.Market.Interval,
			Lookback: file.Market.Lookback,
		},
		Session: SessionConfig{
			SpendCeiling:    file.Session.SpendCeiling,
			OrderSize:       file.Session.OrderSize,
			EdgeThreshold:   file.Session.EdgeThreshold,
			PollIntervalSec: file.Session.PollIntervalSec,
			DurationMin:     file.Session.DurationMin,
		},
		LogLevel: file.LogLevel,
		LogFile:  file.LogFile,
		DryRun:   file.DryRun,
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides 环境变量覆盖（沿用 PRIVATE_KEY / FUNDER / CHAIN_ID 约定）
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRIVATE_KEY"); v != "" {
		cfg.Wallet.PrivateKey = v
	}
	if v := os.Getenv("FUNDER"); v != "" {
		cfg.Wallet.FunderAddress = v
	}
	if v := os.Getenv("CHAIN_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.ChainID = id
		}
	}
	if v := os.Getenv("UP_TOKEN_ID"); v != "" {
		cfg.Market.TokenID = v
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		cfg.DryRun = v == "1" || strings.EqualFold(v, "true")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = 137
	}
	if cfg.Market.Symbol == "" {
		cfg.Market.Symbol = "ETHUSDT"
	}
	if cfg.Market.Interval == "" {
		cfg.Market.Interval = "1m"
	}
	if cfg.Market.Lookback <= 0 {
		cfg.Market.Lookback = 60
	}
	if cfg.Session.SpendCeiling <= 0 {
		cfg.Session.SpendCeiling = 20.0
	}
	if cfg.Session.OrderSize <= 0 {
		cfg.Session.OrderSize = 5.0
	}
	if cfg.Session.EdgeThreshold <= 0 {
		cfg.Session.EdgeThreshold = 10.0
	}
	if cfg.Session.PollIntervalSec <= 0 {
		cfg.Session.PollIntervalSec = 20
	}
	if cfg.Session.DurationMin <= 0 {
		cfg.Session.DurationMin = 60
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate 校验配置
// 占位凭证（YOUR_ 前缀或为空）属于致命配置错误：会话开始前必须拒绝。
func (c *Config) Validate() error {
	if c.Wallet.PrivateKey == "" || strings.HasPrefix(c.Wallet.PrivateKey, "YOUR_") {
		return fmt.Errorf("请先设置 PRIVATE_KEY（钱包私钥），不能使用占位值")
	}
	if strings.HasPrefix(c.Wallet.FunderAddress, "YOUR_") {
		return fmt.Errorf("请先设置 FUNDER（钱包地址），不能使用占位值")
	}
	if c.Market.TokenID == "" || strings.HasPrefix(c.Market.TokenID, "REPLACE_") {
		return fmt.Errorf("请先设置 market.token_id（UP 代币 ID），不能使用占位值")
	}
	if c.Session.OrderSize > c.Session.SpendCeiling {
		return fmt.Errorf("order_size (%.2f) 不能大于 spend_ceiling (%.2f)", c.Session.OrderSize, c.Session.SpendCeiling)
	}
	return nil
}
