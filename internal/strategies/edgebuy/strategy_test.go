package edgebuy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
	"github.com/bhavesh7662/Polymarket-eth-bot/internal/execution"
	"github.com/bhavesh7662/Polymarket-eth-bot/internal/services"
)

type fakeKlines struct {
	klines []services.Kline
	errs   []error // 每次调用依次弹出；耗尽后返回 nil 错误
	calls  int
}

func (f *fakeKlines) GetKlines(_ context.Context, _, _ string, _ int) ([]services.Kline, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.klines, nil
}

type fakeQuotes struct {
	price     float64
	available bool
	err       error
	calls     int
}

func (f *fakeQuotes) GetPrice(_ context.Context, _ string, _ types.Side) (float64, bool, error) {
	f.calls++
	return f.price, f.available, f.err
}

type fakeExecutor struct {
	outcome execution.OrderOutcome
	err     error
	calls   int
}

func (f *fakeExecutor) BuyUp(_ context.Context, _ float64) (execution.OrderOutcome, error) {
	f.calls++
	if f.err != nil {
		return execution.OrderOutcome{}, f.err
	}
	return f.outcome, nil
}

// fakeClock：sleep 直接推进虚拟时钟，测试不需要真实等待
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.t = c.t.Add(d)
	return nil
}

func newTestStrategy(cfg Config, klines KlineSource, quotes QuoteReader, exec OrderExecutor) (*Strategy, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := &Strategy{
		Config:   cfg,
		Klines:   klines,
		Quotes:   quotes,
		Executor: exec,
		now:      clock.now,
		sleep:    clock.sleep,
	}
	return s, clock
}

func baseConfig() Config {
	return Config{
		TokenID:         "123456",
		Symbol:          "ETHUSDT",
		Interval:        "1m",
		Lookback:        60,
		OrderSize:       5.0,
		SpendCeiling:    20.0,
		EdgeThreshold:   10.0,
		PollIntervalSec: 20,
		DurationMin:     1, // 1 分钟 / 20s 间隔 = 3 轮
	}
}

// 估计 70（+10% 涨幅），报价 55，edge 15 > 10：每轮都应下单
func TestRun_TradesWhenEdgeExceedsThreshold(t *testing.T) {
	klines := &fakeKlines{klines: candles(1000, 1100)}
	quotes := &fakeQuotes{price: 0.55, available: true}
	exec := &fakeExecutor{outcome: execution.OrderOutcome{Accepted: true, OrderID: "o1", Status: "matched"}}

	s, _ := newTestStrategy(baseConfig(), klines, quotes, exec)
	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Iterations != 3 {
		t.Fatalf("expected 3 iterations, got %d", summary.Iterations)
	}
	if summary.OrdersPlaced != 3 {
		t.Fatalf("expected 3 orders, got %d", summary.OrdersPlaced)
	}
	if summary.TotalSpent != 15.0 {
		t.Fatalf("expected total spent 15.0, got %f", summary.TotalSpent)
	}
	if exec.calls != 3 {
		t.Fatalf("expected 3 executor calls, got %d", exec.calls)
	}
}

// edge 未超过阈值（估计 70，报价 65，edge 5 < 10）：不下单
func TestRun_NoTradeWhenEdgeBelowThreshold(t *testing.T) {
	klines := &fakeKlines{klines: candles(1000, 1100)}
	quotes := &fakeQuotes{price: 0.65, available: true}
	exec := &fakeExecutor{outcome: execution.OrderOutcome{Accepted: true}}

	s, _ := newTestStrategy(baseConfig(), klines, quotes, exec)
	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exec.calls != 0 {
		t.Fatalf("expected 0 executor calls, got %d", exec.calls)
	}
	if summary.OrdersPlaced != 0 || summary.TotalSpent != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

// edge 刚好等于阈值：不下单（必须严格大于）
func TestRun_NoTradeWhenEdgeEqualsThreshold(t *testing.T) {
	// 估计 70，报价 60，edge = 10 = 阈值
	klines := &fakeKlines{klines: candles(1000, 1100)}
	quotes := &fakeQuotes{price: 0.60, available: true}
	exec := &fakeExecutor{outcome: execution.OrderOutcome{Accepted: true}}

	s, _ := newTestStrategy(baseConfig(), klines, quotes, exec)
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.calls != 0 {
		t.Fatalf("expected 0 executor calls, got %d", exec.calls)
	}
}

// 市场报价不可用：跳过本轮，不下单，也不算错误
func TestRun_SkipsWhenQuoteUnavailable(t *testing.T) {
	klines := &fakeKlines{klines: candles(1000, 1100)}
	quotes := &fakeQuotes{available: false}
	exec := &fakeExecutor{outcome: execution.OrderOutcome{Accepted: true}}

	s, _ := newTestStrategy(baseConfig(), klines, quotes, exec)
	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exec.calls != 0 {
		t.Fatalf("expected 0 executor calls, got %d", exec.calls)
	}
	if summary.Iterations != 3 {
		t.Fatalf("expected 3 iterations, got %d", summary.Iterations)
	}
}

// 预算不足时跳过下单：ceiling=20, orderSize=10，3 轮里只能成交前 2 笔
func TestRun_SkipsWhenBudgetInsufficient(t *testing.T) {
	cfg := baseConfig()
	cfg.OrderSize = 10.0

	klines := &fakeKlines{klines: candles(1000, 1100)}
	quotes := &fakeQuotes{price: 0.55, available: true}
	exec := &fakeExecutor{outcome: execution.OrderOutcome{Accepted: true}}

	s, _ := newTestStrategy(cfg, klines, quotes, exec)
	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.OrdersPlaced != 2 {
		t.Fatalf("expected 2 orders, got %d", summary.OrdersPlaced)
	}
	if summary.TotalSpent != 20.0 {
		t.Fatalf("expected total spent 20.0, got %f", summary.TotalSpent)
	}
	if summary.TotalSpent > cfg.SpendCeiling {
		t.Fatalf("spent %f exceeds ceiling %f", summary.TotalSpent, cfg.SpendCeiling)
	}
	if exec.calls != 2 {
		t.Fatalf("expected 2 executor calls (third skipped before executor), got %d", exec.calls)
	}
}

// 会话到时即退出：1 分钟 / 20s = 恰好 3 轮，之后不再轮询
func TestRun_ExitsWhenTimeExpires(t *testing.T) {
	klines := &fakeKlines{klines: candles(1000, 1000)}
	quotes := &fakeQuotes{price: 0.50, available: true}
	exec := &fakeExecutor{}

	s, clock := newTestStrategy(baseConfig(), klines, quotes, exec)
	start := clock.t
	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Iterations != 3 {
		t.Fatalf("expected 3 iterations, got %d", summary.Iterations)
	}
	// 最后一次 sleep 后时钟刚好到达会话结束点
	if clock.t.Sub(start) != time.Minute {
		t.Fatalf("expected clock to advance exactly 1 minute, got %v", clock.t.Sub(start))
	}
}

// 单轮失败（K 线拉取错误）只跳过本轮，会话继续
func TestRun_IterationErrorDoesNotAbortSession(t *testing.T) {
	klines := &fakeKlines{
		klines: candles(1000, 1100),
		errs:   []error{errors.New("binance timeout"), nil, nil},
	}
	quotes := &fakeQuotes{price: 0.55, available: true}
	exec := &fakeExecutor{outcome: execution.OrderOutcome{Accepted: true}}

	s, _ := newTestStrategy(baseConfig(), klines, quotes, exec)
	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Iterations != 3 {
		t.Fatalf("expected 3 iterations, got %d", summary.Iterations)
	}
	// 第一轮失败，后两轮正常下单
	if summary.OrdersPlaced != 2 {
		t.Fatalf("expected 2 orders, got %d", summary.OrdersPlaced)
	}
}

// 交易所拒单：不计消费，不计订单数
func TestRun_RejectedOrderNotCountedAsSpend(t *testing.T) {
	klines := &fakeKlines{klines: candles(1000, 1100)}
	quotes := &fakeQuotes{price: 0.55, available: true}
	exec := &fakeExecutor{outcome: execution.OrderOutcome{Accepted: false, Status: "unmatched", ErrorMsg: "not enough liquidity"}}

	s, _ := newTestStrategy(baseConfig(), klines, quotes, exec)
	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exec.calls != 3 {
		t.Fatalf("expected 3 executor attempts, got %d", exec.calls)
	}
	if summary.OrdersPlaced != 0 || summary.TotalSpent != 0 {
		t.Fatalf("rejected orders must not count as spend, got %+v", summary)
	}
}

// ctx 取消：在周期边界优雅退出
func TestRun_ContextCancelExits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	klines := &fakeKlines{klines: candles(1000, 1100)}
	quotes := &fakeQuotes{price: 0.55, available: true}
	exec := &fakeExecutor{}

	s, _ := newTestStrategy(baseConfig(), klines, quotes, exec)
	summary, err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Iterations != 0 {
		t.Fatalf("expected 0 iterations after cancel, got %d", summary.Iterations)
	}
}

// 无效配置直接拒绝
func TestRun_InvalidConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.TokenID = ""

	s, _ := newTestStrategy(cfg, &fakeKlines{}, &fakeQuotes{}, &fakeExecutor{})
	if _, err := s.Run(context.Background()); err == nil {
		t.Fatalf("expected error for empty tokenID")
	}
}
