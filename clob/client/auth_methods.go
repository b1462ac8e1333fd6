package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/signing"
	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
)

// CreateOrDeriveAPIKey 创建或推导 API 密钥（L1 方法）
// 先尝试推导现有密钥；账户没有密钥时（400）创建新的。
func (c *Client) CreateOrDeriveAPIKey(ctx context.Context, nonce int64) (*types.ApiKeyCreds, error) {
	if err := c.CanL1Auth(); err != nil {
		return nil, err
	}

	headers, err := signing.CreateL1Headers(c.authConfig.PrivateKey, c.authConfig.ChainID, nonce)
	if err != nil {
		return nil, fmt.Errorf("创建 L1 认证头失败: %w", err)
	}
	headerMap := headers.ToMap()

	resp, err := c.httpClient.get(ctx, EndpointDeriveAPIKey, headerMap, nil)
	if err == nil && resp != nil {
		switch {
		case resp.StatusCode == http.StatusOK:
			var raw types.ApiKeyRaw
			if perr := parseResponse(resp, &raw); perr != nil {
				return nil, fmt.Errorf("解析 API 密钥响应失败: %w", perr)
			}
			return &types.ApiKeyCreds{Key: raw.ApiKey, Secret: raw.Secret, Passphrase: raw.Passphrase}, nil
		case resp.StatusCode == http.StatusBadRequest:
			// 400：没有现有 API 密钥，走创建流程
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		default:
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("推导 API 密钥失败: HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		}
	}

	resp, err = c.httpClient.post(ctx, EndpointCreateAPIKey, headerMap, map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("创建 API 密钥失败: %w", err)
	}

	var raw types.ApiKeyRaw
	if err := parseResponse(resp, &raw); err != nil {
		return nil, fmt.Errorf("解析 API 密钥响应失败: %w", err)
	}

	return &types.ApiKeyCreds{Key: raw.ApiKey, Secret: raw.Secret, Passphrase: raw.Passphrase}, nil
}
