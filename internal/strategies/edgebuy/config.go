package edgebuy

import "fmt"

const ID = "edgebuy"

// Config 时间盒交易会话：
// - 每个轮询周期：估计 UP 概率，读取市场报价，edge = 估计值 - 报价
// - edge > edgeThreshold 且预算剩余 >= orderSize 时，市价买入 orderSize
// - 会话到时（durationMin）后结束并输出汇总
type Config struct {
	// TokenID: 要买入的 UP 条件代币 ID
	TokenID string `yaml:"tokenID" json:"tokenID"`

	// Symbol: 信号源现货交易对，默认 ETHUSDT
	Symbol string `yaml:"symbol" json:"symbol"`
	// Interval: K 线周期，默认 1m
	Interval string `yaml:"interval" json:"interval"`
	// Lookback: 回看 K 线根数，默认 60
	Lookback int `yaml:"lookback" json:"lookback"`

	// OrderSize: 单笔下单金额（USDC），默认 5
	OrderSize float64 `yaml:"orderSize" json:"orderSize"`
	// SpendCeiling: 会话消费上限（USDC），默认 20
	SpendCeiling float64 `yaml:"spendCeiling" json:"spendCeiling"`
	// EdgeThreshold: 最小 edge（百分点），默认 10
	EdgeThreshold float64 `yaml:"edgeThreshold" json:"edgeThreshold"`
	// PollIntervalSec: 轮询间隔（秒），默认 20
	PollIntervalSec int `yaml:"pollIntervalSec" json:"pollIntervalSec"`
	// DurationMin: 会话时长（分钟），默认 60
	DurationMin int `yaml:"durationMin" json:"durationMin"`
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config 不能为空")
	}
	if c.TokenID == "" {
		return fmt.Errorf("tokenID 不能为空")
	}
	if c.Symbol == "" {
		c.Symbol = "ETHUSDT"
	}
	if c.Interval == "" {
		c.Interval = "1m"
	}
	if c.Lookback <= 0 {
		c.Lookback = 60
	}
	if c.OrderSize <= 0 {
		c.OrderSize = 5.0
	}
	if c.SpendCeiling <= 0 {
		c.SpendCeiling = 20.0
	}
	if c.OrderSize > c.SpendCeiling {
		return fmt.Errorf("orderSize 不能大于 spendCeiling（当前 orderSize=%.2f spendCeiling=%.2f）", c.OrderSize, c.SpendCeiling)
	}
	if c.EdgeThreshold <= 0 {
		c.EdgeThreshold = 10.0
	}
	if c.PollIntervalSec <= 0 {
		c.PollIntervalSec = 20
	}
	if c.DurationMin <= 0 {
		c.DurationMin = 60
	}
	return nil
}
