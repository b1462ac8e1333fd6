package client

// API 端点常量
const (
	EndpointCreateAPIKey = "/auth/api-key"
	EndpointDeriveAPIKey = "/auth/derive-api-key"

	EndpointGetPrice = "/price"

	EndpointPostOrder = "/order"
)
