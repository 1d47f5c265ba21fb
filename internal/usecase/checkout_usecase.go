package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// CheckoutUseCase реализует бизнес-логику проведения продажи.
type CheckoutUseCase struct {
	productRepo  ProductRepository
	saleRepo     SaleRepository
	outboxRepo   OutboxRepository
	dbPool       transaction.Transactional
	receiptCache ReceiptCache
	logger       logger.Logger
}

func NewCheckoutUC(
	productRepo ProductRepository,
	saleRepo SaleRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	receiptCache ReceiptCache,
	logger logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		outboxRepo:   outboxRepo,
		dbPool:       dbPool,
		receiptCache: receiptCache,
		logger:       logger,
	}
}

// Checkout проводит продажу: построчно списывает остатки, фиксирует чек
// и запись outbox в одной транзакции БД.
//
// Списание каждой позиции — атомарный условный UPDATE (stock >= qty), поэтому
// остаток не может уйти в минус даже при конкурентных чекаутах одного товара.
// Пропуск позиции (нет товара, не хватает остатка, некорректное количество)
// не прерывает корзину; при ошибке хранилища откатывается вся продажа целиком.
func (c *CheckoutUseCase) Checkout(ctx context.Context, req *CheckoutReq) (*CheckoutRes, error) {
	const op = "CheckoutUseCase.Checkout"

	// Валидация данных
	var err error
	if err = c.validateCart(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции целиком:
	// ни списаний остатков, ни чека, ни события outbox
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Построчная обработка корзины
	items, lines, err := c.processLines(ctx, req.Lines)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фиксация чека с принятыми позициями
	sale, err := c.createSale(ctx, items, req.TenderedAmount)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Запись события sale.completed в outbox той же транзакцией
	if err = c.enqueueSaleEvent(ctx, sale); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Коммит изменений в бд
	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновый прогрев кэша чеков: чек неизменяем, промах не критичен
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.receiptCache.SetSale(bgCtx, sale); err != nil {
			c.logger.Warnf("Failed to cache receipt in background: %v", e.Wrap(op, err))
		}
	}()

	return NewCheckoutRes(sale, lines), nil
}

// Receipt возвращает чек по идентификатору продажи, сначала из кэша, затем из БД.
func (c *CheckoutUseCase) Receipt(ctx context.Context, saleID int64) (*domain.Sale, error) {
	const op = "CheckoutUseCase.Receipt"

	sale, err := c.receiptCache.GetSale(ctx, saleID)
	if err != nil {
		c.logger.Warnf("Receipt cache lookup failed: %v", e.Wrap(op, err))
	}
	if sale != nil {
		return sale, nil
	}

	sale, err = c.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление чека в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.receiptCache.SetSale(bgCtx, sale); err != nil {
			c.logger.Warnf("Failed to cache receipt in background: %v", e.Wrap(op, err))
		}
	}()

	return sale, nil
}

// processLines атомарно списывает остаток по каждой позиции и собирает
// снимки принятых позиций вместе с постатусным итогом по всем строкам корзины.
func (c *CheckoutUseCase) processLines(ctx context.Context, cart []CartLine) ([]domain.SaleItem, []LineResult, error) {
	items := make([]domain.SaleItem, 0, len(cart))
	lines := make([]LineResult, 0, len(cart))

	for _, line := range cart {
		if line.Quantity <= 0 {
			lines = append(lines, c.skippedLine(line, SkipInvalidQuantity))
			continue
		}

		res, err := c.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case !res.Found:
			lines = append(lines, c.skippedLine(line, SkipProductNotFound))
		case !res.Decremented:
			lines = append(lines, c.skippedLine(line, SkipInsufficientStock))
		default:
			items = append(items, domain.SaleItem{
				ProductName: res.Name,
				UnitPrice:   res.Price,
				Quantity:    line.Quantity,
				Subtotal:    res.Price * line.Quantity,
			})
			lines = append(lines, LineResult{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Status:    LineAccepted,
			})
		}
	}

	return items, lines, nil
}

// createSale вычисляет итоговую сумму и сохраняет чек с позициями.
func (c *CheckoutUseCase) createSale(ctx context.Context, items []domain.SaleItem, tendered *int64) (*domain.Sale, error) {
	var total int64
	for _, item := range items {
		total += item.Subtotal
	}

	return c.saleRepo.Create(ctx, domain.NewSale(items, total, tendered))
}

// enqueueSaleEvent добавляет событие завершённой продажи в outbox.
func (c *CheckoutUseCase) enqueueSaleEvent(ctx context.Context, sale *domain.Sale) error {
	event, err := NewSaleCompletedEvent(sale)
	if err != nil {
		return err
	}

	_, err = c.outboxRepo.Create(ctx, event)
	return err
}

func (c *CheckoutUseCase) skippedLine(line CartLine, reason SkipReason) LineResult {
	return LineResult{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Status:    LineSkipped,
		Reason:    reason,
	}
}

// validateCart проверяет, что корзина не пуста.
func (c *CheckoutUseCase) validateCart(req *CheckoutReq) error {
	if req == nil || len(req.Lines) == 0 {
		return e.ErrEmptyCart
	}

	return nil
}
