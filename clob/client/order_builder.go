package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"

	"github.com/bhavesh7662/Polymarket-eth-bot/clob/signing"
	"github.com/bhavesh7662/Polymarket-eth-bot/clob/types"
)

// FOK 市价单精度要求：
//   - Price: 按 tick size（默认 0.01 即 2 位小数）
//   - Size: 4位小数
//   - Maker amount (USDC for buy): 2位小数
const (
	fokSizePlaces   = 4
	fokAmountPlaces = 2

	// MinOrderUSDC 交易所要求的最小下单金额
	MinOrderUSDC = 1.0
)

// tickSizePlaces tick size 对应的价格小数位数
func tickSizePlaces(t types.TickSize) int32 {
	switch t {
	case types.TickSize01:
		return 1
	case types.TickSize0001:
		return 3
	case types.TickSize00001:
		return 4
	default:
		return 2
	}
}

// OrderBuilder 订单构建器
type OrderBuilder struct {
	client        *Client
	signatureType types.SignatureType
	funderAddress string
}

// NewOrderBuilder 创建新的订单构建器
// funderAddress 非空时作为 maker（代理钱包场景），否则 maker = signer。
func NewOrderBuilder(client *Client, signatureType types.SignatureType, funderAddress string) *OrderBuilder {
	return &OrderBuilder{
		client:        client,
		signatureType: signatureType,
		funderAddress: funderAddress,
	}
}

// BuildMarketBuy 构建并签名 FOK 市价买单
// amountUSDC 为美元金额，price 为成交参考价（0~1）。
func (ob *OrderBuilder) BuildMarketBuy(ctx context.Context, tokenID string, amountUSDC, price float64, options *types.CreateOrderOptions) (*types.SignedOrder, error) {
	if ob.client.authConfig.PrivateKey == nil {
		return nil, fmt.Errorf("私钥未设置，无法创建订单")
	}
	if price <= 0 {
		return nil, fmt.Errorf("无效的订单价格: %f", price)
	}

	contractConfig, err := GetContractConfig(ob.client.GetChainID())
	if err != nil {
		return nil, fmt.Errorf("获取合约配置失败: %w", err)
	}

	pricePlaces := int32(2)
	if options != nil && options.TickSize != "" {
		pricePlaces = tickSizePlaces(options.TickSize)
	}

	// FOK 精度：USDC 2位小数，价格按 tick size，size 4位小数
	usdc := decimal.NewFromFloat(amountUSDC).Round(fokAmountPlaces)
	px := decimal.NewFromFloat(price).Round(pricePlaces)
	if px.IsZero() {
		return nil, fmt.Errorf("价格舍入后为 0: %f", price)
	}
	if usdc.LessThan(decimal.NewFromFloat(MinOrderUSDC)) {
		return nil, fmt.Errorf("订单金额 %s 低于最小下单金额 %.1f USDC", usdc, MinOrderUSDC)
	}
	size := usdc.Div(px).RoundDown(fokSizePlaces)

	// 买入：maker 支付 USDC，taker 获得 tokens（均为 6 位链上精度）
	makerAmount := usdc.Shift(CollateralTokenDecimals).BigInt()
	takerAmount := size.Shift(ConditionalTokenDecimals).BigInt()

	signerAddress := crypto.PubkeyToAddress(ob.client.authConfig.PrivateKey.PublicKey)
	maker := signerAddress.Hex()
	if ob.funderAddress != "" {
		maker = ob.funderAddress
	}

	tokenIDBig, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return nil, fmt.Errorf("无效的 tokenID: %s", tokenID)
	}

	exchangeAddress := contractConfig.Exchange
	if options != nil && options.NegRisk {
		exchangeAddress = contractConfig.NegRiskExchange
	}

	salt := time.Now().UnixNano()
	taker := "0x0000000000000000000000000000000000000000"

	orderData := &signing.OrderData{
		Salt:          salt,
		Maker:         maker,
		Signer:        signerAddress.Hex(),
		Taker:         taker,
		TokenID:       tokenIDBig,
		MakerAmount:   makerAmount,
		TakerAmount:   takerAmount,
		Expiration:    big.NewInt(0),
		Nonce:         big.NewInt(0),
		FeeRateBps:    big.NewInt(0),
		Side:          types.SideBuy,
		SignatureType: ob.signatureType,
	}

	signature, err := signing.BuildOrderSignature(
		ob.client.authConfig.PrivateKey,
		ob.client.GetChainID(),
		exchangeAddress,
		orderData,
	)
	if err != nil {
		return nil, fmt.Errorf("签名订单失败: %w", err)
	}

	return &types.SignedOrder{
		Salt:          salt,
		Maker:         maker,
		Signer:        signerAddress.Hex(),
		Taker:         taker,
		TokenID:       tokenID,
		MakerAmount:   makerAmount.String(),
		TakerAmount:   takerAmount.String(),
		Expiration:    "0",
		Nonce:         "0",
		FeeRateBps:    "0",
		Side:          types.SideBuy,
		SignatureType: int(ob.signatureType),
		Signature:     signature,
	}, nil
}
