package converter

import (
	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// SaleConverter преобразует сущности Sale между domain и моделями PostgreSQL.
type SaleConverter interface {
	ToEntity(model *SaleModel, items []SaleItemModel) *domain.Sale
	ToItemModels(sale *domain.Sale) []SaleItemModel
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:        entity.ID,
		Name:      entity.Name,
		Price:     entity.Price,
		Stock:     entity.Stock,
		Category:  entity.Category,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		Stock:     model.Stock,
		Category:  model.Category,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

type SaleConverterImpl struct{}

func NewSaleConverterImpl() *SaleConverterImpl {
	return &SaleConverterImpl{}
}

func (c *SaleConverterImpl) ToEntity(model *SaleModel, items []SaleItemModel) *domain.Sale {
	saleItems := make([]domain.SaleItem, 0, len(items))
	for _, item := range items {
		saleItems = append(saleItems, domain.SaleItem{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	return &domain.Sale{
		ID:             model.ID,
		Items:          saleItems,
		TotalAmount:    model.TotalAmount,
		TenderedAmount: model.TenderedAmount,
		ChangeDue:      model.ChangeDue,
		CreatedAt:      model.CreatedAt,
	}
}

func (c *SaleConverterImpl) ToItemModels(sale *domain.Sale) []SaleItemModel {
	models := make([]SaleItemModel, 0, len(sale.Items))
	for i, item := range sale.Items {
		models = append(models, SaleItemModel{
			SaleID:      sale.ID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
			Position:    int32(i),
		})
	}

	return models
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		SaleID:      entity.SaleID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		SaleID:      model.SaleID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
