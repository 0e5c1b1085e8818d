package dto

type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput `json:"items"`
	DeliveryAddress string           `json:"delivery_address"`
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}
