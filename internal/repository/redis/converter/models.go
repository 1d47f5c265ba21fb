package converter

import "time"

// SaleRedisModel — сериализуемое представление чека в кэше.
type SaleRedisModel struct {
	ID             int64                `json:"id"`
	Items          []SaleItemRedisModel `json:"items"`
	TotalAmount    int64                `json:"total_amount"`
	TenderedAmount *int64               `json:"tendered_amount,omitempty"`
	ChangeDue      *int64               `json:"change_due,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

type SaleItemRedisModel struct {
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}
