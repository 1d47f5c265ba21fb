package domain

import "time"

// DefaultCategory — категория по умолчанию для товаров без категории.
const DefaultCategory = "uncategorized"

// Product описывает товар на складе
type Product struct {
	ID        int64
	Name      string
	Price     int64 // Цена хранится в копейках
	Stock     int64 // Остаток на складе, не может быть отрицательным
	Category  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewProduct(name string, price int64, stock int64, category string) *Product {
	if category == "" {
		category = DefaultCategory
	}

	return &Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: category,
	}
}
