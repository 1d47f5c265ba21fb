package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
)

type CheckoutUC interface {
	Checkout(ctx context.Context, req *CheckoutReq) (*CheckoutRes, error)
	Receipt(ctx context.Context, saleID int64) (*domain.Sale, error)
}

type CatalogUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListAvailable(ctx context.Context) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
}

type ReportUC interface {
	DailyTotals(ctx context.Context, asOf time.Time) (*SalesTotals, error)
	MonthlyTotals(ctx context.Context, asOf time.Time) (*SalesTotals, error)
	RecentHistory(ctx context.Context, limit int) ([]domain.Sale, error)
	SalesReport(ctx context.Context, asOf time.Time) (*SalesReportRes, error)
	ExportSales(ctx context.Context) (*ExportRes, error)
}
