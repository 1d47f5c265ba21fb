package pgdb

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// SaleRepo реализует журнал продаж поверх PostgreSQL.
// Журнал только пополняется: продажи не обновляются и не удаляются.
type SaleRepo struct {
	pool *pgxpool.Pool
	conv converter.SaleConverter
}

func NewSaleRepo(pool *pgxpool.Pool, conv converter.SaleConverter) *SaleRepo {
	return &SaleRepo{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет продажу и её позиции в транзакции чекаута (tx из контекста).
func (s *SaleRepo) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO sales (total_amount, tendered_amount, change_due)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := tx.QueryRow(ctx, query,
		sale.TotalAmount, sale.TenderedAmount, sale.ChangeDue,
	).Scan(&sale.ID, &sale.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_name, unit_price, quantity, subtotal, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, model := range s.conv.ToItemModels(sale) {
		if _, err := tx.Exec(ctx, itemQuery,
			model.SaleID, model.ProductName, model.UnitPrice,
			model.Quantity, model.Subtotal, model.Position,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return sale, nil
}

// GetByID возвращает продажу с позициями. Возвращает e.ErrNotFound, если продажи нет.
func (s *SaleRepo) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	query := `
		SELECT id, total_amount, tendered_amount, change_due, created_at
		FROM sales
		WHERE id = $1
	`

	var model converter.SaleModel
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.TotalAmount, &model.TenderedAmount, &model.ChangeDue, &model.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemsBySale, err := s.loadItems(ctx, []int64{model.ID})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model, itemsBySale[model.ID]), nil
}

// TotalsSince возвращает сумму и число продаж, созданных начиная с since.
// COALESCE гарантирует нулевой агрегат вместо NULL для пустого диапазона.
func (s *SaleRepo) TotalsSince(ctx context.Context, since time.Time) (*usecase.SalesTotals, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales
		WHERE created_at >= $1
	`

	var total, count int64
	if err := s.pool.QueryRow(ctx, query, since).Scan(&total, &count); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewSalesTotals(total, count), nil
}

// ListRecent возвращает limit последних продаж с позициями, новые первыми.
func (s *SaleRepo) ListRecent(ctx context.Context, limit int) ([]domain.Sale, error) {
	query := `
		SELECT id, total_amount, tendered_amount, change_due, created_at
		FROM sales
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	return s.querySales(ctx, query, limit)
}

// ListAll возвращает все продажи с позициями, новые первыми.
func (s *SaleRepo) ListAll(ctx context.Context) ([]domain.Sale, error) {
	query := `
		SELECT id, total_amount, tendered_amount, change_due, created_at
		FROM sales
		ORDER BY created_at DESC, id DESC
	`

	return s.querySales(ctx, query)
}

func (s *SaleRepo) querySales(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.SaleModel, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var model converter.SaleModel
		if err := rows.Scan(&model.ID, &model.TotalAmount, &model.TenderedAmount,
			&model.ChangeDue, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
		ids = append(ids, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemsBySale, err := s.loadItems(ctx, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.Sale, 0, len(models))
	for i := range models {
		result = append(result, *s.conv.ToEntity(&models[i], itemsBySale[models[i].ID]))
	}

	return result, nil
}

// loadItems возвращает позиции указанных продаж, сгруппированные по sale_id
// и упорядоченные так, как их принял чекаут.
func (s *SaleRepo) loadItems(ctx context.Context, saleIDs []int64) (map[int64][]converter.SaleItemModel, error) {
	result := make(map[int64][]converter.SaleItemModel, len(saleIDs))
	if len(saleIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, sale_id, product_name, unit_price, quantity, subtotal, position
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, position
	`

	rows, err := s.pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.SaleItemModel
		if err := rows.Scan(&model.ID, &model.SaleID, &model.ProductName,
			&model.UnitPrice, &model.Quantity, &model.Subtotal, &model.Position); err != nil {
			return nil, err
		}

		result[model.SaleID] = append(result[model.SaleID], model)
	}

	return result, rows.Err()
}
