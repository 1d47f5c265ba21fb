package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
)

// recentHistoryLimit — сколько последних продаж попадает на страницу отчёта.
const recentHistoryLimit = 50

// ReportUseCase реализует отчётность по журналу продаж.
// Все операции только читают журнал и могут выполняться параллельно с чекаутами.
type ReportUseCase struct {
	saleRepo SaleRepository
	builder  SpreadsheetBuilder
	archiver ExportArchiver
	logger   logger.Logger
}

func NewReportUC(
	saleRepo SaleRepository,
	builder SpreadsheetBuilder,
	archiver ExportArchiver,
	logger logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		saleRepo: saleRepo,
		builder:  builder,
		archiver: archiver,
		logger:   logger,
	}
}

// DailyTotals возвращает сумму и число продаж с начала суток asOf.
// При отсутствии продаж возвращает нулевой агрегат, а не ошибку.
func (r *ReportUseCase) DailyTotals(ctx context.Context, asOf time.Time) (*SalesTotals, error) {
	const op = "ReportUseCase.DailyTotals"

	totals, err := r.saleRepo.TotalsSince(ctx, startOfDay(asOf))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return totals, nil
}

// MonthlyTotals возвращает сумму и число продаж с начала месяца asOf.
func (r *ReportUseCase) MonthlyTotals(ctx context.Context, asOf time.Time) (*SalesTotals, error) {
	const op = "ReportUseCase.MonthlyTotals"

	totals, err := r.saleRepo.TotalsSince(ctx, startOfMonth(asOf))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return totals, nil
}

// RecentHistory возвращает limit последних продаж, новые первыми.
func (r *ReportUseCase) RecentHistory(ctx context.Context, limit int) ([]domain.Sale, error) {
	const op = "ReportUseCase.RecentHistory"

	sales, err := r.saleRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sales, nil
}

// SalesReport собирает данные страницы отчёта: день, месяц, последние продажи.
func (r *ReportUseCase) SalesReport(ctx context.Context, asOf time.Time) (*SalesReportRes, error) {
	const op = "ReportUseCase.SalesReport"

	daily, err := r.DailyTotals(ctx, asOf)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	monthly, err := r.MonthlyTotals(ctx, asOf)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	history, err := r.RecentHistory(ctx, recentHistoryLimit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSalesReportRes(daily, monthly, history), nil
}

// ExportSales строит xlsx-выгрузку всех продаж (новые первыми) и в фоне
// архивирует копию в объектное хранилище.
func (r *ReportUseCase) ExportSales(ctx context.Context) (*ExportRes, error) {
	const op = "ReportUseCase.ExportSales"

	sales, err := r.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	data, err := r.builder.BuildSalesReport(sales)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	fileName := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("20060102-150405"))
	r.archiver.ArchiveAsync(fileName, data)

	return &ExportRes{FileName: fileName, Data: data}, nil
}

// startOfDay возвращает полночь суток, которым принадлежит t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfMonth возвращает полночь первого числа месяца, которому принадлежит t.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
