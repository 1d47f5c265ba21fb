package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/jackc/pgx/v5"
)

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any)            {}
func (noopLogger) Infof(format string, args ...any)             {}
func (noopLogger) Warnf(format string, args ...any)             {}
func (noopLogger) Errorf(err error, format string, args ...any) {}

// fakeTx подменяет pgx.Tx: нужны только Commit и Rollback.
type fakeTx struct {
	pgx.Tx
	commits   *int
	rollbacks *int
	mu        *sync.Mutex
}

func (t fakeTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	*t.commits++
	return nil
}

func (t fakeTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	*t.rollbacks++
	return nil
}

type fakePool struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (p *fakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{commits: &p.commits, rollbacks: &p.rollbacks, mu: &p.mu}, nil
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.BeginTx(ctx, pgx.TxOptions{})
}

type stockEntry struct {
	name  string
	price int64
	stock int64
}

type mockProductRepo struct {
	ProductRepository
	mu       sync.Mutex
	products map[int64]*stockEntry
	failWith error
}

func newMockProductRepo(products map[int64]*stockEntry) *mockProductRepo {
	return &mockProductRepo{products: products}
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, id, qty int64) (*DecrementStockRes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	entry, ok := m.products[id]
	if !ok {
		return NewDecrementStockRes(false, false, "", 0), nil
	}
	if entry.stock < qty {
		return NewDecrementStockRes(true, false, "", 0), nil
	}

	entry.stock -= qty
	return NewDecrementStockRes(true, true, entry.name, entry.price), nil
}

type mockSaleRepo struct {
	SaleRepository
	mu       sync.Mutex
	nextID   int64
	sales    []*domain.Sale
	failWith error
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	m.nextID++
	sale.ID = m.nextID
	m.sales = append(m.sales, sale)
	return sale, nil
}

func (m *mockSaleRepo) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sale := range m.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, e.ErrNotFound
}

type mockOutboxRepo struct {
	OutboxRepository
	mu     sync.Mutex
	events []*OutboxEvent
}

func (m *mockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	return event, nil
}

type mockReceiptCache struct {
	mu    sync.Mutex
	sales map[int64]*domain.Sale
}

func newMockReceiptCache() *mockReceiptCache {
	return &mockReceiptCache{sales: make(map[int64]*domain.Sale)}
}

func (m *mockReceiptCache) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sales[id], nil
}

func (m *mockReceiptCache) SetSale(ctx context.Context, sale *domain.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func newCheckoutFixture(products map[int64]*stockEntry) (*CheckoutUseCase, *mockProductRepo, *mockSaleRepo, *mockOutboxRepo, *fakePool) {
	productRepo := newMockProductRepo(products)
	saleRepo := &mockSaleRepo{}
	outboxRepo := &mockOutboxRepo{}
	pool := &fakePool{}
	uc := NewCheckoutUC(productRepo, saleRepo, outboxRepo, pool, newMockReceiptCache(), noopLogger{})
	return uc, productRepo, saleRepo, outboxRepo, pool
}

func TestCheckout_EmptyCart(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture(nil)

	_, err := uc.Checkout(context.Background(), NewCheckoutReq(nil, nil))
	if !errors.Is(err, e.ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got: %v", err)
	}
}

func TestCheckout_Success(t *testing.T) {
	uc, productRepo, _, outboxRepo, pool := newCheckoutFixture(map[int64]*stockEntry{
		1: {name: "Coffee", price: 2500, stock: 10},
		2: {name: "Tea", price: 1500, stock: 5},
	})

	tendered := int64(10000)
	res, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, &tendered))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if res.Sale.TotalAmount != 6500 {
		t.Errorf("expected total 6500, got %d", res.Sale.TotalAmount)
	}
	if len(res.Sale.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Sale.Items))
	}
	if res.Sale.Items[0].Subtotal != 5000 {
		t.Errorf("expected first subtotal 5000, got %d", res.Sale.Items[0].Subtotal)
	}
	if res.Sale.ChangeDue == nil || *res.Sale.ChangeDue != 3500 {
		t.Errorf("expected change 3500, got %v", res.Sale.ChangeDue)
	}
	for _, line := range res.Lines {
		if line.Status != LineAccepted {
			t.Errorf("expected line %d accepted, got %s", line.ProductID, line.Status)
		}
	}

	if got := productRepo.products[1].stock; got != 8 {
		t.Errorf("expected stock 8, got %d", got)
	}
	if len(outboxRepo.events) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(outboxRepo.events))
	}
	if outboxRepo.events[0].EventType != SaleCompleted {
		t.Errorf("unexpected event type: %s", outboxRepo.events[0].EventType)
	}
	if pool.commits != 1 {
		t.Errorf("expected 1 commit, got %d", pool.commits)
	}
}

func TestCheckout_SkipsMissingAndInsufficient(t *testing.T) {
	uc, productRepo, _, _, _ := newCheckoutFixture(map[int64]*stockEntry{
		1: {name: "Coffee", price: 2500, stock: 1},
	})

	res, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
		{ProductID: 1, Quantity: 5},
		{ProductID: 99, Quantity: 1},
		{ProductID: 1, Quantity: 1},
	}, nil))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if res.Lines[0].Status != LineSkipped || res.Lines[0].Reason != SkipInsufficientStock {
		t.Errorf("expected insufficient_stock skip, got %+v", res.Lines[0])
	}
	if res.Lines[1].Status != LineSkipped || res.Lines[1].Reason != SkipProductNotFound {
		t.Errorf("expected product_not_found skip, got %+v", res.Lines[1])
	}
	if res.Lines[2].Status != LineAccepted {
		t.Errorf("expected accepted line, got %+v", res.Lines[2])
	}

	if res.Sale.TotalAmount != 2500 {
		t.Errorf("expected total 2500, got %d", res.Sale.TotalAmount)
	}
	if got := productRepo.products[1].stock; got != 0 {
		t.Errorf("expected stock 0, got %d", got)
	}
}

func TestCheckout_InvalidQuantitySkipped(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture(map[int64]*stockEntry{
		1: {name: "Coffee", price: 2500, stock: 10},
	})

	res, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
		{ProductID: 1, Quantity: 0},
		{ProductID: 1, Quantity: -3},
	}, nil))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	for _, line := range res.Lines {
		if line.Status != LineSkipped || line.Reason != SkipInvalidQuantity {
			t.Errorf("expected invalid_quantity skip, got %+v", line)
		}
	}
}

func TestCheckout_AllLinesSkippedStillRecordsSale(t *testing.T) {
	uc, _, saleRepo, _, pool := newCheckoutFixture(map[int64]*stockEntry{})

	res, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
		{ProductID: 42, Quantity: 1},
	}, nil))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if res.Sale.TotalAmount != 0 {
		t.Errorf("expected zero total, got %d", res.Sale.TotalAmount)
	}
	if len(res.Sale.Items) != 0 {
		t.Errorf("expected no items, got %d", len(res.Sale.Items))
	}
	if len(saleRepo.sales) != 1 {
		t.Errorf("expected sale recorded, got %d", len(saleRepo.sales))
	}
	if pool.commits != 1 {
		t.Errorf("expected commit, got %d commits", pool.commits)
	}
}

func TestCheckout_NegativeChangeAllowed(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture(map[int64]*stockEntry{
		1: {name: "Coffee", price: 2500, stock: 10},
	})

	tendered := int64(2000)
	res, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
		{ProductID: 1, Quantity: 1},
	}, &tendered))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if res.Sale.ChangeDue == nil || *res.Sale.ChangeDue != -500 {
		t.Errorf("expected change -500, got %v", res.Sale.ChangeDue)
	}
}

func TestCheckout_StorageErrorRollsBack(t *testing.T) {
	uc, _, saleRepo, outboxRepo, pool := newCheckoutFixture(map[int64]*stockEntry{
		1: {name: "Coffee", price: 2500, stock: 10},
	})
	errInsert := errors.New("insert sale: connection reset")
	saleRepo.failWith = errInsert

	_, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
		{ProductID: 1, Quantity: 1},
	}, nil))
	if !errors.Is(err, errInsert) {
		t.Fatalf("expected storage error, got: %v", err)
	}

	if pool.rollbacks != 1 {
		t.Errorf("expected 1 rollback, got %d", pool.rollbacks)
	}
	if pool.commits != 0 {
		t.Errorf("expected no commits, got %d", pool.commits)
	}
	if len(outboxRepo.events) != 0 {
		t.Errorf("expected no outbox events, got %d", len(outboxRepo.events))
	}
}

func TestCheckout_ConcurrentSameProduct(t *testing.T) {
	const (
		stock  = 5
		buyers = 20
		perBuy = 1
	)

	uc, productRepo, _, _, _ := newCheckoutFixture(map[int64]*stockEntry{
		1: {name: "Coffee", price: 2500, stock: stock},
	})

	var wg sync.WaitGroup
	var accepted, skipped int64
	var mu sync.Mutex

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			res, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
				{ProductID: 1, Quantity: perBuy},
			}, nil))
			if err != nil {
				t.Errorf("checkout failed: %v", err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if res.Lines[0].Status == LineAccepted {
				accepted++
			} else {
				skipped++
			}
		}()
	}
	wg.Wait()

	if accepted != stock {
		t.Errorf("expected %d accepted, got %d", stock, accepted)
	}
	if skipped != buyers-stock {
		t.Errorf("expected %d skipped, got %d", buyers-stock, skipped)
	}
	if got := productRepo.products[1].stock; got != 0 {
		t.Errorf("expected stock 0, got %d", got)
	}
}

func TestReceipt_CacheMissFallsBackToStorage(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture(map[int64]*stockEntry{
		1: {name: "Coffee", price: 2500, stock: 10},
	})

	res, err := uc.Checkout(context.Background(), NewCheckoutReq([]CartLine{
		{ProductID: 1, Quantity: 1},
	}, nil))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	sale, err := uc.Receipt(context.Background(), res.Sale.ID)
	if err != nil {
		t.Fatalf("receipt failed: %v", err)
	}
	if sale.TotalAmount != 2500 {
		t.Errorf("expected total 2500, got %d", sale.TotalAmount)
	}
}

func TestReceipt_NotFound(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture(nil)

	_, err := uc.Receipt(context.Background(), 404)
	if !errors.Is(err, e.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
