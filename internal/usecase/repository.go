package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ListAvailable(ctx context.Context) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	// DecrementStock атомарно списывает остаток товара при условии stock >= qty.
	// Выполняется в транзакции чекаута (tx из контекста).
	DecrementStock(ctx context.Context, id int64, qty int64) (*DecrementStockRes, error)
}

type SaleRepository interface {
	// Create сохраняет продажу вместе с позициями в транзакции чекаута.
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)
	TotalsSince(ctx context.Context, since time.Time) (*SalesTotals, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Sale, error)
	ListAll(ctx context.Context) ([]domain.Sale, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	// MarkAsFailed убирает "ядовитое" событие из обработки насовсем.
	MarkAsFailed(ctx context.Context, id int64) error
	// RequeueStale возвращает в pending события, зависшие в processing
	// дольше olderThan (воркер упал между выборкой и публикацией).
	RequeueStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type ExportRepository interface {
	Upload(ctx context.Context, objectKey string, data []byte) (string, error)
}

type ReceiptCache interface {
	// GetSale возвращает чек из кэша либо (nil, nil) при промахе.
	GetSale(ctx context.Context, id int64) (*domain.Sale, error)
	SetSale(ctx context.Context, sale *domain.Sale) error
}
