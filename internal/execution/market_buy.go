package execution

import (
	"context"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/client"
	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "execution")

// OrderOutcome 一次下单尝试的结构化结果。
// Accepted 表示交易所确认接受订单；只有确认接受的订单才计入消费。
type OrderOutcome struct {
	Accepted bool
	OrderID  string
	Status   string
	ErrorMsg string
}

// MarketBuyExecutor 对指定代币执行 FOK 市价买入。
// dryRun 模式下不发送真实订单，只记录日志并视为接受。
type MarketBuyExecutor struct {
	client  *client.Client
	tokenID string
	negRisk bool
	dryRun  bool
}

func NewMarketBuyExecutor(c *client.Client, tokenID string, negRisk, dryRun bool) *MarketBuyExecutor {
	return &MarketBuyExecutor{
		client:  c,
		tokenID: tokenID,
		negRisk: negRisk,
		dryRun:  dryRun,
	}
}

// BuyUp 按 amountUSDC 金额市价买入（FOK）。
// 返回错误表示下单流程本身失败（签名/网络）；交易所拒单不算错误，
// 体现在 OrderOutcome.Accepted=false 上。
func (e *MarketBuyExecutor) BuyUp(ctx context.Context, amountUSDC float64) (OrderOutcome, error) {
	if amountUSDC <= 0 {
		return OrderOutcome{Status: "skipped"}, nil
	}
	if e.dryRun {
		log.Infof("📝 [dry-run] 模拟买入 %.2f USDC (token=%s)", amountUSDC, e.tokenID)
		return OrderOutcome{Accepted: true, Status: "dry-run"}, nil
	}

	resp, err := e.client.PlaceMarketBuyFOK(ctx, e.tokenID, amountUSDC, &types.CreateOrderOptions{
		TickSize: types.TickSize001,
		NegRisk:  e.negRisk,
	})
	if err != nil {
		return OrderOutcome{}, errors.Wrap(err, "下单失败")
	}

	log.Infof("交易所响应: success=%v status=%s orderID=%s errorMsg=%q taking=%s making=%s",
		resp.Success, resp.Status, resp.OrderID, resp.ErrorMsg, resp.TakingAmount, resp.MakingAmount)

	return OrderOutcome{
		Accepted: resp.Success,
		OrderID:  resp.OrderID,
		Status:   resp.Status,
		ErrorMsg: resp.ErrorMsg,
	}, nil
}
