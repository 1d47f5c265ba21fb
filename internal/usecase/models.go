package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/google/uuid"
)

// CHECKOUT USECASE

// CartLine — одна позиция корзины, отправленная кассой.
type CartLine struct {
	ProductID int64
	Quantity  int64
}

// CheckoutReq — запрос на проведение продажи.
// TenderedAmount задаётся только для наличной оплаты.
type CheckoutReq struct {
	Lines          []CartLine
	TenderedAmount *int64
}

type LineStatus string

const (
	LineAccepted LineStatus = "accepted"
	LineSkipped  LineStatus = "skipped"
)

type SkipReason string

const (
	SkipProductNotFound   SkipReason = "product_not_found"
	SkipInsufficientStock SkipReason = "insufficient_stock"
	SkipInvalidQuantity   SkipReason = "invalid_quantity"
)

// LineResult — постатусный итог обработки одной позиции корзины.
// Касса получает явный список пропущенных позиций, а не только общую сумму.
type LineResult struct {
	ProductID int64
	Quantity  int64
	Status    LineStatus
	Reason    SkipReason
}

// CheckoutRes — результат проведённой продажи.
type CheckoutRes struct {
	Sale  *domain.Sale
	Lines []LineResult
}

// CATALOG USECASE

// CreateProductReq — запрос на добавление товара в каталог.
type CreateProductReq struct {
	Name     string
	Price    int64
	Stock    int64
	Category string
}

// UpdateProductReq — запрос на обновление полей товара.
type UpdateProductReq struct {
	ID       int64
	Name     string
	Price    int64
	Stock    int64
	Category string
}

// REPORT USECASE

// SalesTotals — агрегат продаж за период.
type SalesTotals struct {
	Total int64
	Count int64
}

// SalesReportRes — данные страницы отчёта: день, месяц и последние продажи.
type SalesReportRes struct {
	Daily   *SalesTotals
	Monthly *SalesTotals
	History []domain.Sale
}

// ExportRes — готовая выгрузка продаж.
type ExportRes struct {
	FileName string
	Data     []byte
}

// REPOSITORIES

// DecrementStockRes — исход атомарного списания остатка одной позиции.
type DecrementStockRes struct {
	Found       bool
	Decremented bool
	Name        string // снимок на момент списания
	Price       int64
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed"
)

type OutboxEventType string

const SaleCompleted OutboxEventType = "sale.completed"

type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	SaleID      int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// saleCompletedPayload — тело события sale.completed для Kafka.
type saleCompletedPayload struct {
	SaleID      int64             `json:"sale_id"`
	TotalAmount int64             `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []salePayloadItem `json:"items"`
}

type salePayloadItem struct {
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type WriteRawMessageReq struct {
	SaleID  int64
	Payload []byte
}

// MAPPERS

func NewCheckoutReq(lines []CartLine, tendered *int64) *CheckoutReq {
	return &CheckoutReq{
		Lines:          lines,
		TenderedAmount: tendered,
	}
}

func NewCheckoutRes(sale *domain.Sale, lines []LineResult) *CheckoutRes {
	return &CheckoutRes{
		Sale:  sale,
		Lines: lines,
	}
}

func NewCreateProductReq(name string, price, stock int64, category string) *CreateProductReq {
	return &CreateProductReq{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: category,
	}
}

func NewUpdateProductReq(id int64, name string, price, stock int64, category string) *UpdateProductReq {
	return &UpdateProductReq{
		ID:       id,
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: category,
	}
}

func NewSalesTotals(total, count int64) *SalesTotals {
	return &SalesTotals{
		Total: total,
		Count: count,
	}
}

func NewSalesReportRes(daily, monthly *SalesTotals, history []domain.Sale) *SalesReportRes {
	return &SalesReportRes{
		Daily:   daily,
		Monthly: monthly,
		History: history,
	}
}

func NewDecrementStockRes(found, decremented bool, name string, price int64) *DecrementStockRes {
	return &DecrementStockRes{
		Found:       found,
		Decremented: decremented,
		Name:        name,
		Price:       price,
	}
}

func NewWriteRawMessageReq(saleID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		SaleID:  saleID,
		Payload: payload,
	}
}

// NewSaleCompletedEvent собирает запись outbox для завершённой продажи.
func NewSaleCompletedEvent(sale *domain.Sale) (*OutboxEvent, error) {
	items := make([]salePayloadItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, salePayloadItem{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	payload, err := json.Marshal(saleCompletedPayload{
		SaleID:      sale.ID,
		TotalAmount: sale.TotalAmount,
		CreatedAt:   sale.CreatedAt,
		Items:       items,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: SaleCompleted,
		SaleID:    sale.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}
