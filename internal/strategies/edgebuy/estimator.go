package edgebuy

import "github.com/bhavesh7662/Polymarket-eth-bot/internal/services"

// EstimateUpProbability 把 K 线窗口映射成 UP 结算概率的估计值（0-100）。
// 纯函数：相同输入永远产生相同输出。
//
// 计算方式：窗口内的涨跌幅（最新收盘相对最早开盘的百分比变化），
// 以 50 为中性基准，每 1% 涨跌幅移动 2 个百分点，最后收敛到 [5, 95]。
// 不足两根 K 线时没有趋势可言，返回中性值 50。
func EstimateUpProbability(klines []services.Kline) float64 {
	if len(klines) < 2 {
		return 50.0
	}

	firstOpen := klines[0].Open
	lastClose := klines[len(klines)-1].Close
	if firstOpen == 0 {
		return 50.0
	}

	pct := (lastClose - firstOpen) / firstOpen * 100.0
	est := 50.0 + 2.0*pct

	if est < 5.0 {
		est = 5.0
	}
	if est > 95.0 {
		est = 95.0
	}
	return est
}
