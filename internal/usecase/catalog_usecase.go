package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/pkg/e"
)

// CatalogUseCase реализует административное управление каталогом товаров.
type CatalogUseCase struct {
	productRepo ProductRepository
}

func NewCatalogUC(productRepo ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
	}
}

// CreateProduct добавляет новый товар после валидации полей.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	if err := validateProductFields(req.Name, req.Price, req.Stock); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.productRepo.Create(ctx, domain.NewProduct(req.Name, req.Price, req.Stock, req.Category))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// UpdateProduct обновляет поля товара: имя, цену, остаток, категорию.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	if err := validateProductFields(req.Name, req.Price, req.Stock); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Name, req.Price, req.Stock, req.Category)
	product.ID = req.ID

	updated, err := c.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteProduct удаляет товар из каталога. Ранее созданные чеки хранят
// собственные снимки позиций и от удаления не страдают.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.DeleteProduct"

	if err := c.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ListAvailable возвращает товары с положительным остатком для экрана кассы.
func (c *CatalogUseCase) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListAvailable"

	products, err := c.productRepo.ListAvailable(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// ListAll возвращает весь каталог для административного экрана.
func (c *CatalogUseCase) ListAll(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListAll"

	products, err := c.productRepo.ListAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// validateProductFields проверяет контракт полей товара.
func validateProductFields(name string, price, stock int64) error {
	if strings.TrimSpace(name) == "" {
		return e.ErrProductNameRequired
	}

	if price < 0 {
		return e.ErrPriceMustBePositive
	}

	if stock < 0 {
		return e.ErrStockMustBePositive
	}

	return nil
}
