package converter

import (
	"github.com/DRSN-tech/pos-backend/internal/domain"
)

// SaleConverter преобразует чеки между domain и моделью кэша.
type SaleConverter interface {
	ToRedisModel(entity *domain.Sale) *SaleRedisModel
	ToEntity(model *SaleRedisModel) *domain.Sale
}

type SaleConverterImpl struct{}

func NewSaleConverterImpl() *SaleConverterImpl {
	return &SaleConverterImpl{}
}

func (c *SaleConverterImpl) ToRedisModel(entity *domain.Sale) *SaleRedisModel {
	items := make([]SaleItemRedisModel, 0, len(entity.Items))
	for _, item := range entity.Items {
		items = append(items, SaleItemRedisModel{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	return &SaleRedisModel{
		ID:             entity.ID,
		Items:          items,
		TotalAmount:    entity.TotalAmount,
		TenderedAmount: entity.TenderedAmount,
		ChangeDue:      entity.ChangeDue,
		CreatedAt:      entity.CreatedAt,
	}
}

func (c *SaleConverterImpl) ToEntity(model *SaleRedisModel) *domain.Sale {
	items := make([]domain.SaleItem, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, domain.SaleItem{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	return &domain.Sale{
		ID:             model.ID,
		Items:          items,
		TotalAmount:    model.TotalAmount,
		TenderedAmount: model.TenderedAmount,
		ChangeDue:      model.ChangeDue,
		CreatedAt:      model.CreatedAt,
	}
}
