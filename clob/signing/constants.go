package signing

const (
	// ClobDomainName EIP712 域名名称
	ClobDomainName = "ClobAuthDomain"

	// ClobVersion EIP712 版本
	ClobVersion = "1"

	// MsgToSign 签名消息
	MsgToSign = "This message attests that I control the given wallet"

	// ExchangeDomainName 订单签名的 EIP712 域名名称
	ExchangeDomainName = "Polymarket CTF Exchange"

	// ExchangeVersion 订单签名的 EIP712 版本
	ExchangeVersion = "1"
)
