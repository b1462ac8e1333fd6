package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var binanceKlineLog = logrus.WithField("component", "binance_spot_klines")

const defaultBinanceBaseURL = "https://api.binance.com"

// Kline 是一个标准 K 线（OHLCV）。
type Kline struct {
	OpenTime  int64   // 开盘时间（ms）
	Open      float64 // 开盘价
	High      float64 // 最高价
	Low       float64 // 最低价
	Close     float64 // 收盘价
	Volume    float64 // 成交量
	CloseTime int64   // 收盘时间（ms）
}

// BinanceSpotKlines 通过 Binance 现货 REST API 拉取 K 线窗口。
// 每次调用都是一次全新的快照拉取，不做缓存：信号计算需要的是
// 此刻往回看的完整窗口，而不是增量更新。
type BinanceSpotKlines struct {
	client *resty.Client
}

// NewBinanceSpotKlines 创建 K 线拉取器。baseURL 为空时使用官方主机。
func NewBinanceSpotKlines(baseURL string) *BinanceSpotKlines {
	host := strings.TrimSpace(baseURL)
	if host == "" {
		host = defaultBinanceBaseURL
	}
	host = strings.TrimSuffix(host, "/")

	// resty 会自动从环境变量读取代理配置（HTTP_PROXY, HTTPS_PROXY）
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			// 429 限流时优先使用 Retry-After 头
			if resp.StatusCode() == 429 {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if d, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return d, nil
					}
				}
				return 10 * time.Second, nil
			}
			return 0, nil
		})

	return &BinanceSpotKlines{client: client}
}

// GetKlines 拉取最近 limit 根 K 线（旧 -> 新）。
// symbol: 例如 "ETHUSDT"；interval: 例如 "1m"。
func (b *BinanceSpotKlines) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":   strings.ToUpper(symbol),
			"interval": interval,
			"limit":    strconv.Itoa(limit),
		}).
		Get("/api/v3/klines")
	if err != nil {
		return nil, errors.Wrap(err, "请求 Binance K 线失败")
	}
	if resp.StatusCode() != 200 {
		return nil, errors.Errorf("Binance K 线接口返回 %d: %s", resp.StatusCode(), resp.String())
	}

	// Binance 返回的是数组的数组
	var rawKlines [][]interface{}
	if err := json.Unmarshal(resp.Body(), &rawKlines); err != nil {
		return nil, errors.Wrap(err, "解析 Binance K 线响应失败")
	}

	klines := make([]Kline, 0, len(rawKlines))
	for _, raw := range rawKlines {
		if len(raw) < 7 {
			continue
		}
		k, err := parseKline(raw)
		if err != nil {
			binanceKlineLog.Warnf("跳过无法解析的 K 线: %v", err)
			continue
		}
		klines = append(klines, k)
	}

	return klines, nil
}

func parseKline(raw []interface{}) (Kline, error) {
	var k Kline

	openTime, ok := raw[0].(float64)
	if !ok {
		return k, fmt.Errorf("open time 类型错误: %T", raw[0])
	}
	closeTime, ok := raw[6].(float64)
	if !ok {
		return k, fmt.Errorf("close time 类型错误: %T", raw[6])
	}
	k.OpenTime = int64(openTime)
	k.CloseTime = int64(closeTime)

	fields := []struct {
		idx int
		dst *float64
	}{
		{1, &k.Open},
		{2, &k.High},
		{3, &k.Low},
		{4, &k.Close},
		{5, &k.Volume},
	}
	for _, f := range fields {
		s, ok := raw[f.idx].(string)
		if !ok {
			return k, fmt.Errorf("字段 %d 类型错误: %T", f.idx, raw[f.idx])
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return k, fmt.Errorf("字段 %d 解析失败: %w", f.idx, err)
		}
		*f.dst = v
	}

	return k, nil
}
