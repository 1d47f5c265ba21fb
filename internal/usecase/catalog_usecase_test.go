package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/pkg/e"
)

type mockCatalogRepo struct {
	ProductRepository
	mu       sync.Mutex
	nextID   int64
	products map[int64]*domain.Product
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{products: make(map[int64]*domain.Product)}
}

func (m *mockCatalogRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = product
	return product, nil
}

func (m *mockCatalogRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return nil, e.ErrNotFound
	}
	m.products[product.ID] = product
	return product, nil
}

func (m *mockCatalogRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return e.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockCatalogRepo) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Product
	for _, p := range m.products {
		if p.Stock > 0 {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func TestCreateProduct_Valid(t *testing.T) {
	uc := NewCatalogUC(newMockCatalogRepo())

	product, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Coffee", 2500, 10, ""))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if product.ID == 0 {
		t.Error("expected assigned id")
	}
	if product.Category != domain.DefaultCategory {
		t.Errorf("expected default category, got %q", product.Category)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	uc := NewCatalogUC(newMockCatalogRepo())

	cases := []struct {
		name    string
		req     *CreateProductReq
		wantErr error
	}{
		{"empty name", NewCreateProductReq("   ", 100, 1, ""), e.ErrProductNameRequired},
		{"negative price", NewCreateProductReq("Tea", -1, 1, ""), e.ErrPriceMustBePositive},
		{"negative stock", NewCreateProductReq("Tea", 100, -1, ""), e.ErrStockMustBePositive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateProduct_ZeroPriceAndStockAllowed(t *testing.T) {
	uc := NewCatalogUC(newMockCatalogRepo())

	if _, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Sample", 0, 0, "promo")); err != nil {
		t.Errorf("expected success, got: %v", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockCatalogRepo()
	uc := NewCatalogUC(repo)

	created, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Coffee", 2500, 10, ""))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := uc.UpdateProduct(context.Background(), NewUpdateProductReq(created.ID, "Espresso", 3000, 7, "drinks"))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Name != "Espresso" || updated.Price != 3000 || updated.Stock != 7 {
		t.Errorf("unexpected product after update: %+v", updated)
	}
	if updated.Category != "drinks" {
		t.Errorf("expected category drinks, got %q", updated.Category)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc := NewCatalogUC(newMockCatalogRepo())

	_, err := uc.UpdateProduct(context.Background(), NewUpdateProductReq(404, "Ghost", 100, 1, ""))
	if !errors.Is(err, e.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newMockCatalogRepo()
	uc := NewCatalogUC(repo)

	created, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Coffee", 2500, 10, ""))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := uc.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := uc.DeleteProduct(context.Background(), created.ID); !errors.Is(err, e.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestListAvailable_FiltersOutOfStock(t *testing.T) {
	repo := newMockCatalogRepo()
	uc := NewCatalogUC(repo)

	if _, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Coffee", 2500, 10, "")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Tea", 1500, 0, "")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	available, err := uc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(available) != 1 || available[0].Name != "Coffee" {
		t.Errorf("expected only Coffee, got %+v", available)
	}

	all, err := uc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 products, got %d", len(all))
	}
}
