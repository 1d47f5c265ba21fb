package http

import (
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/internal/usecase"
)

// checkoutRequest — корзина, отправленная кассой.
// Amounts (tendered) передаются строками в десятичной записи ("150.00").
type checkoutRequest struct {
	Items    []checkoutItem `json:"items"`
	Tendered string         `json:"tendered,omitempty"`
}

type checkoutItem struct {
	ProductID int64 `json:"product_id"`
	Qty       int64 `json:"qty"`
}

type checkoutResponse struct {
	SaleID int64        `json:"sale_id"`
	Sale   saleView     `json:"sale"`
	Lines  []lineResult `json:"lines"`
}

type lineResult struct {
	ProductID int64  `json:"product_id"`
	Qty       int64  `json:"qty"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

type saleView struct {
	ID             int64          `json:"id"`
	Items          []saleItemView `json:"items"`
	TotalAmount    int64          `json:"total_amount"`
	TenderedAmount *int64         `json:"tendered_amount,omitempty"`
	ChangeDue      *int64         `json:"change_due,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type saleItemView struct {
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type productView struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Price     int64      `json:"price"`
	Stock     int64      `json:"stock"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type totalsView struct {
	Total int64 `json:"total"`
	Count int64 `json:"count"`
}

type reportView struct {
	Daily   totalsView `json:"daily"`
	Monthly totalsView `json:"monthly"`
	History []saleView `json:"history"`
}

func newSaleView(sale *domain.Sale) saleView {
	items := make([]saleItemView, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, saleItemView{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	return saleView{
		ID:             sale.ID,
		Items:          items,
		TotalAmount:    sale.TotalAmount,
		TenderedAmount: sale.TenderedAmount,
		ChangeDue:      sale.ChangeDue,
		CreatedAt:      sale.CreatedAt,
	}
}

func newSaleViews(sales []domain.Sale) []saleView {
	views := make([]saleView, 0, len(sales))
	for i := range sales {
		views = append(views, newSaleView(&sales[i]))
	}

	return views
}

func newProductView(product *domain.Product) productView {
	return productView{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		Category:  product.Category,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func newProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}

	return views
}

func newLineResults(lines []usecase.LineResult) []lineResult {
	results := make([]lineResult, 0, len(lines))
	for _, line := range lines {
		results = append(results, lineResult{
			ProductID: line.ProductID,
			Qty:       line.Quantity,
			Status:    string(line.Status),
			Reason:    string(line.Reason),
		})
	}

	return results
}
