package edgebuy

import (
	"context"
	"time"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
	"github.com/bhavesh7662/Polymarket-eth-bot/internal/execution"
	"github.com/bhavesh7662/Polymarket-eth-bot/internal/services"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("strategy", ID)

// KlineSource 拉取信号源 K 线窗口。
type KlineSource interface {
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]services.Kline, error)
}

// QuoteReader 读取市场当前报价（0-1 的概率价格）。
// available=false 表示市场暂无流动性，不是错误。
type QuoteReader interface {
	GetPrice(ctx context.Context, tokenID string, side types.Side) (float64, bool, error)
}

// OrderExecutor 执行一笔固定金额的市价买入。
type OrderExecutor interface {
	BuyUp(ctx context.Context, amountUSDC float64) (execution.OrderOutcome, error)
}

// Summary 会话结束时的汇总。
type Summary struct {
	OrdersPlaced int     // 确认接受的订单数
	TotalSpent   float64 // 确认消费总额（USDC）
	Iterations   int     // 完成的轮询次数（含跳过和失败的）
}

// Strategy 时间盒 edge 买入会话。
// 每个轮询周期独立决策；单周期的失败只影响本周期，不中断会话。
type Strategy struct {
	Config `yaml:",inline" json:",inline"`

	Klines   KlineSource
	Quotes   QuoteReader
	Executor OrderExecutor

	budget *BudgetTracker

	// now / sleep 可注入，测试用；为空时用真实时钟
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func (s *Strategy) ID() string   { return ID }
func (s *Strategy) Name() string { return ID }

func (s *Strategy) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Strategy) wait(ctx context.Context, d time.Duration) error {
	if s.sleep != nil {
		return s.sleep(ctx, d)
	}
	return sleepCtx(ctx, d)
}

// Run 运行一次完整会话：从现在起持续 DurationMin 分钟，
// 按固定节奏轮询（不做漂移补偿），到时后返回汇总。
// ctx 取消时在周期边界优雅退出。
func (s *Strategy) Run(ctx context.Context) (Summary, error) {
	if err := s.Config.Validate(); err != nil {
		return Summary{}, err
	}
	s.budget = NewBudgetTracker(s.SpendCeiling)

	var summary Summary
	interval := time.Duration(s.PollIntervalSec) * time.Second
	endTime := s.clock().Add(time.Duration(s.DurationMin) * time.Minute)

	log.Infof("🚀 [%s] 会话开始: 时长=%d分钟 预算=%.2f USDC 单笔=%.2f USDC edge阈值=%.1f 间隔=%ds",
		ID, s.DurationMin, s.SpendCeiling, s.OrderSize, s.EdgeThreshold, s.PollIntervalSec)

	for s.clock().Before(endTime) {
		if err := ctx.Err(); err != nil {
			s.logSummary(summary)
			return summary, err
		}

		if err := s.iterate(ctx, &summary); err != nil {
			// 单周期失败：记录后继续下一轮
			log.Warnf("⚠️ [%s] 本轮出错，跳过: %v", ID, err)
		}
		summary.Iterations++

		if err := s.wait(ctx, interval); err != nil {
			s.logSummary(summary)
			return summary, err
		}
	}

	s.logSummary(summary)
	return summary, nil
}

// iterate 执行一个轮询周期：估计 -> 报价 -> edge 判断 -> 预算判断 -> 下单。
func (s *Strategy) iterate(ctx context.Context, summary *Summary) error {
	klines, err := s.Klines.GetKlines(ctx, s.Symbol, s.Interval, s.Lookback)
	if err != nil {
		return err
	}
	estimate := EstimateUpProbability(klines)

	price, available, err := s.Quotes.GetPrice(ctx, s.TokenID, types.SideBuy)
	if err != nil {
		return err
	}
	if !available {
		log.Infof("💤 [%s] 市场报价不可用，本轮跳过 (估计=%.1f)", ID, estimate)
		return nil
	}

	quote := price * 100.0
	edge := estimate - quote
	log.Infof("📊 [%s] 估计=%.1f 报价=%.1f edge=%.1f 剩余预算=%.2f",
		ID, estimate, quote, edge, s.budget.Remaining())

	if edge <= s.EdgeThreshold {
		return nil
	}
	if !s.budget.CanAfford(s.OrderSize) {
		log.Infof("🚫 [%s] 预算不足，跳过下单 (剩余=%.2f 需要=%.2f)", ID, s.budget.Remaining(), s.OrderSize)
		return nil
	}

	outcome, err := s.Executor.BuyUp(ctx, s.OrderSize)
	if err != nil {
		return err
	}
	if !outcome.Accepted {
		log.Warnf("❌ [%s] 订单被拒绝: status=%s err=%s", ID, outcome.Status, outcome.ErrorMsg)
		return nil
	}

	s.budget.Record(s.OrderSize)
	summary.OrdersPlaced++
	summary.TotalSpent += s.OrderSize
	log.Infof("✅ [%s] 买入成功: id=%s status=%s 金额=%.2f 累计消费=%.2f",
		ID, outcome.OrderID, outcome.Status, s.OrderSize, s.budget.Spent())
	return nil
}

func (s *Strategy) logSummary(summary Summary) {
	log.Infof("🏁 [%s] 会话结束: 轮询=%d 下单=%d 总消费=%.2f USDC",
		ID, summary.Iterations, summary.OrdersPlaced, summary.TotalSpent)
}

// sleepCtx 可被 ctx 打断的固定时长等待。
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
