package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
)

type mockReportSaleRepo struct {
	SaleRepository
	sales []domain.Sale
}

func (m *mockReportSaleRepo) TotalsSince(ctx context.Context, since time.Time) (*SalesTotals, error) {
	totals := &SalesTotals{}
	for _, sale := range m.sales {
		if !sale.CreatedAt.Before(since) {
			totals.Total += sale.TotalAmount
			totals.Count++
		}
	}
	return totals, nil
}

func (m *mockReportSaleRepo) ListRecent(ctx context.Context, limit int) ([]domain.Sale, error) {
	if len(m.sales) <= limit {
		return m.sales, nil
	}
	return m.sales[:limit], nil
}

func (m *mockReportSaleRepo) ListAll(ctx context.Context) ([]domain.Sale, error) {
	return m.sales, nil
}

type mockBuilder struct{}

func (mockBuilder) BuildSalesReport(sales []domain.Sale) ([]byte, error) {
	return []byte("xlsx"), nil
}

type mockArchiver struct {
	mu    sync.Mutex
	files []string
}

func (m *mockArchiver) ArchiveAsync(fileName string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, fileName)
}

func saleAt(t time.Time, total int64) domain.Sale {
	return domain.Sale{TotalAmount: total, CreatedAt: t}
}

func TestSalesReport_Aggregates(t *testing.T) {
	asOf := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)

	// Продажа сегодня, продажа в этом месяце и продажа в прошлом месяце
	repo := &mockReportSaleRepo{sales: []domain.Sale{
		saleAt(asOf.Add(-time.Hour), 5000),
		saleAt(asOf.Add(-48*time.Hour), 3000),
		saleAt(asOf.AddDate(0, -1, 0), 9000),
	}}
	uc := NewReportUC(repo, mockBuilder{}, &mockArchiver{}, noopLogger{})

	report, err := uc.SalesReport(context.Background(), asOf)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if report.Daily.Total != 5000 || report.Daily.Count != 1 {
		t.Errorf("unexpected daily totals: %+v", report.Daily)
	}
	if report.Monthly.Total != 8000 || report.Monthly.Count != 2 {
		t.Errorf("unexpected monthly totals: %+v", report.Monthly)
	}
	if len(report.History) != 3 {
		t.Errorf("expected 3 sales in history, got %d", len(report.History))
	}
}

func TestSalesReport_EmptyLedger(t *testing.T) {
	uc := NewReportUC(&mockReportSaleRepo{}, mockBuilder{}, &mockArchiver{}, noopLogger{})

	report, err := uc.SalesReport(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if report.Daily.Total != 0 || report.Daily.Count != 0 {
		t.Errorf("expected zero daily totals, got %+v", report.Daily)
	}
	if report.Monthly.Total != 0 || report.Monthly.Count != 0 {
		t.Errorf("expected zero monthly totals, got %+v", report.Monthly)
	}
	if len(report.History) != 0 {
		t.Errorf("expected empty history, got %d", len(report.History))
	}
}

func TestRecentHistory_Limit(t *testing.T) {
	sales := make([]domain.Sale, 60)
	for i := range sales {
		sales[i] = saleAt(time.Now().Add(-time.Duration(i)*time.Minute), 100)
	}
	uc := NewReportUC(&mockReportSaleRepo{sales: sales}, mockBuilder{}, &mockArchiver{}, noopLogger{})

	report, err := uc.SalesReport(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(report.History) != recentHistoryLimit {
		t.Errorf("expected %d sales, got %d", recentHistoryLimit, len(report.History))
	}
}

func TestExportSales(t *testing.T) {
	archiver := &mockArchiver{}
	uc := NewReportUC(&mockReportSaleRepo{}, mockBuilder{}, archiver, noopLogger{})

	export, err := uc.ExportSales(context.Background())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if !strings.HasPrefix(export.FileName, "sales-") || !strings.HasSuffix(export.FileName, ".xlsx") {
		t.Errorf("unexpected file name: %s", export.FileName)
	}
	if string(export.Data) != "xlsx" {
		t.Errorf("unexpected payload: %q", export.Data)
	}

	archiver.mu.Lock()
	defer archiver.mu.Unlock()
	if len(archiver.files) != 1 || archiver.files[0] != export.FileName {
		t.Errorf("expected archived copy %s, got %+v", export.FileName, archiver.files)
	}
}

func TestStartOfPeriods(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 14, 30, 45, 0, time.UTC)

	if got := startOfDay(ts); !got.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start of day: %v", got)
	}
	if got := startOfMonth(ts); !got.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start of month: %v", got)
	}
}
