package usecase

import (
	"context"

	"github.com/DRSN-tech/pos-backend/internal/domain"
)

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

type SpreadsheetBuilder interface {
	BuildSalesReport(sales []domain.Sale) ([]byte, error)
}

type ExportArchiver interface {
	// ArchiveAsync сохраняет копию выгрузки в объектное хранилище в фоне.
	ArchiveAsync(fileName string, data []byte)
}
