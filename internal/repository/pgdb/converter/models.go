package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Price     int64      `db:"price"`
	Stock     int64      `db:"stock"`
	Category  string     `db:"category"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// SaleModel представляет запись таблицы sales в PostgreSQL.
type SaleModel struct {
	ID             int64     `db:"id"`
	TotalAmount    int64     `db:"total_amount"`
	TenderedAmount *int64    `db:"tendered_amount"`
	ChangeDue      *int64    `db:"change_due"`
	CreatedAt      time.Time `db:"created_at"`
}

// SaleItemModel представляет запись таблицы sale_items в PostgreSQL.
type SaleItemModel struct {
	ID          int64  `db:"id"`
	SaleID      int64  `db:"sale_id"`
	ProductName string `db:"product_name"`
	UnitPrice   int64  `db:"unit_price"`
	Quantity    int64  `db:"quantity"`
	Subtotal    int64  `db:"subtotal"`
	Position    int32  `db:"position"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	SaleID      int64      `db:"sale_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
