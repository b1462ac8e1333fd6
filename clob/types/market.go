package types

// PriceResponse /price 端点响应
// price 为字符串形式的小数（0~1），市场无挂单时为空字符串。
type PriceResponse struct {
	Price string `json:"price"`
}
