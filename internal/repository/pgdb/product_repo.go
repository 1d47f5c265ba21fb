package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий каталога товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = "id, name, price, stock, category, created_at, updated_at"

// Create добавляет товар и возвращает созданную запись.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, price, stock, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns

	model, err := p.scanProduct(p.pool.QueryRow(ctx, query, product.Name, product.Price, product.Stock, product.Category))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Update перезаписывает поля товара. Возвращает e.ErrNotFound, если товара нет.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, price = $3, stock = $4, category = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	model, err := p.scanProduct(p.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.Stock, product.Category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Delete удаляет товар. Возвращает e.ErrNotFound, если товара нет.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}

	return nil
}

// GetByID возвращает товар по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	model, err := p.scanProduct(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// ListAvailable возвращает товары с положительным остатком.
func (p *ProductRepo) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock > 0 ORDER BY name`

	return p.queryProducts(ctx, query)
}

// ListAll возвращает весь каталог.
func (p *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`

	return p.queryProducts(ctx, query)
}

// DecrementStock атомарно списывает qty единиц товара при условии достаточного
// остатка. Условие stock >= qty входит в сам UPDATE, поэтому два конкурентных
// чекаута не могут увести остаток в минус: проигравший просто не затронет строку.
// Выполняется в транзакции чекаута (tx из контекста).
func (p *ProductRepo) DecrementStock(ctx context.Context, id int64, qty int64) (*usecase.DecrementStockRes, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
		RETURNING name, price
	`

	var name string
	var price int64
	err = tx.QueryRow(ctx, query, id, qty).Scan(&name, &price)
	if err == nil {
		return usecase.NewDecrementStockRes(true, true, name, price), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// Строка не затронута: различаем отсутствующий товар и нехватку остатка
	err = tx.QueryRow(ctx, `SELECT name, price FROM products WHERE id = $1`, id).Scan(&name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.NewDecrementStockRes(false, false, "", 0), nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewDecrementStockRes(true, false, name, price), nil
}

func (p *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Price, &model.Stock,
			&model.Category, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(&model.ID, &model.Name, &model.Price, &model.Stock,
		&model.Category, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &model, nil
}
