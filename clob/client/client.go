package client

import (
	"crypto/ecdsa"
	"strings"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
)

// Client CLOB 客户端
type Client struct {
	host       string
	chainID    types.Chain
	authConfig *AuthConfig
	httpClient *httpClient

	sigType types.SignatureType
	funder  string
}

// NewClient 创建新的 CLOB 客户端
// creds 为 nil 时只能做 L1 认证（推导 API 凭证用）。
func NewClient(
	host string,
	chainID types.Chain,
	privateKey *ecdsa.PrivateKey,
	creds *types.ApiKeyCreds,
) *Client {
	return &Client{
		host:    strings.TrimSuffix(host, "/"),
		chainID: chainID,
		authConfig: &AuthConfig{
			PrivateKey: privateKey,
			ChainID:    chainID,
			Creds:      creds,
		},
		httpClient: newHTTPClient(host),
	}
}

// SetFunder 配置代理钱包（maker 地址与签名类型）
// Magic Link / 邮箱钱包用 SignatureTypeMagic，Gnosis Safe 代理钱包用 SignatureTypeGnosisSafe。
func (c *Client) SetFunder(funderAddress string, sigType types.SignatureType) {
	c.funder = funderAddress
	c.sigType = sigType
}

func (c *Client) signatureType() types.SignatureType { return c.sigType }
func (c *Client) funderAddress() string              { return c.funder }

// GetHost 获取主机地址
func (c *Client) GetHost() string {
	return c.host
}

// GetChainID 获取链 ID
func (c *Client) GetChainID() types.Chain {
	return c.chainID
}
