package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/signing"
	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
)

// PostOrder 提交已签名订单
func (c *Client) PostOrder(ctx context.Context, order *types.SignedOrder, orderType types.OrderType) (*types.OrderResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}

	payload := types.NewOrder{
		Order:     *order,
		Owner:     c.authConfig.Creds.Key,
		OrderType: orderType,
	}

	// L2 签名覆盖请求体，必须与实际发送的 JSON 一致
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化订单载荷失败: %w", err)
	}
	bodyStr := string(bodyBytes)

	headers, err := signing.CreateL2Headers(
		c.authConfig.PrivateKey,
		c.authConfig.Creds,
		&types.L2HeaderArgs{
			Method:      "POST",
			RequestPath: EndpointPostOrder,
			Body:        &bodyStr,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("创建 L2 认证头失败: %w", err)
	}

	resp, err := c.httpClient.post(ctx, EndpointPostOrder, headers.ToMap(), payload)
	if err != nil {
		return nil, fmt.Errorf("提交订单失败: %w", err)
	}

	var orderResp types.OrderResponse
	if err := parseResponse(resp, &orderResp); err != nil {
		return nil, fmt.Errorf("解析订单响应失败: %w", err)
	}

	return &orderResp, nil
}

// PlaceMarketBuyFOK 下 FOK 市价买单
// amountUSDC 为美元金额。先查 BUY 方向盘口价计算 size，再构建、签名并提交订单。
// FOK 语义：全部立即成交，否则整单拒绝（不会部分成交、不会留在订单簿）。
func (c *Client) PlaceMarketBuyFOK(ctx context.Context, tokenID string, amountUSDC float64, options *types.CreateOrderOptions) (*types.OrderResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}

	price, ok, err := c.GetPrice(ctx, tokenID, types.SideBuy)
	if err != nil {
		return nil, fmt.Errorf("获取盘口价失败: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("订单簿无买入方向报价，无法下市价单 (tokenID=%s)", tokenID)
	}

	builder := NewOrderBuilder(c, c.signatureType(), c.funderAddress())
	signedOrder, err := builder.BuildMarketBuy(ctx, tokenID, amountUSDC, price, options)
	if err != nil {
		return nil, fmt.Errorf("创建 FOK 订单失败: %w", err)
	}

	return c.PostOrder(ctx, signedOrder, types.OrderTypeFOK)
}
