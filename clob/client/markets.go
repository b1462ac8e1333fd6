package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
)

// GetPrice 获取指定方向的市场价格（0~1 的小数）
// 市场无该方向挂单时返回 (0, false, nil)：这是正常情况，不是错误。
func (c *Client) GetPrice(ctx context.Context, tokenID string, side types.Side) (float64, bool, error) {
	queryParams := map[string]string{
		"token_id": tokenID,
		"side":     string(side),
	}

	resp, err := c.httpClient.get(ctx, EndpointGetPrice, nil, queryParams)
	if err != nil {
		return 0, false, fmt.Errorf("获取价格失败: %w", err)
	}

	var pr types.PriceResponse
	if err := parseResponse(resp, &pr); err != nil {
		return 0, false, err
	}

	raw := strings.TrimSpace(pr.Price)
	if raw == "" {
		return 0, false, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("解析价格失败: %w (price=%q)", err, pr.Price)
	}
	if price <= 0 {
		return 0, false, nil
	}

	return price, true, nil
}
