package domain

import "time"

// Sale описывает завершённую продажу.
// Запись создаётся чекаутом ровно один раз и далее не изменяется.
type Sale struct {
	ID             int64
	Items          []SaleItem
	TotalAmount    int64  // Сумма в копейках
	TenderedAmount *int64 // Принятая наличная оплата; nil для безналичных продаж
	ChangeDue      *int64 // Сдача; заполняется только вместе с TenderedAmount
	CreatedAt      time.Time
}

// SaleItem — снимок принятой позиции корзины на момент продажи.
// Хранит копию названия и цены товара: последующие правки каталога
// не должны менять исторические чеки.
type SaleItem struct {
	ProductName string
	UnitPrice   int64
	Quantity    int64
	Subtotal    int64
}

func NewSale(items []SaleItem, total int64, tendered *int64) *Sale {
	s := &Sale{
		Items:       items,
		TotalAmount: total,
	}

	if tendered != nil {
		change := *tendered - total
		s.TenderedAmount = tendered
		s.ChangeDue = &change
	}

	return s
}
