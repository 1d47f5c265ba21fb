package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/cfg"
	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/jitter"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
)

// ExportArchiver асинхронно складывает копии xlsx-выгрузок в MinIO.
// Архивирование не лежит на пути ответа клиенту: выгрузка уже отдана,
// неудачная загрузка в бакет только логируется.
type ExportArchiver struct {
	exportRepo  usecase.ExportRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewExportArchiver(exportRepo usecase.ExportRepository, cfg *cfg.MinIOCfg,
	logger logger.Logger, shutdownCtx context.Context) *ExportArchiver {
	return &ExportArchiver{
		exportRepo:  exportRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// ArchiveAsync запускает фоновую загрузку выгрузки в бакет.
func (a *ExportArchiver) ArchiveAsync(fileName string, data []byte) {
	a.wg.Add(1)
	go a.archive(fileName, data)
}

// WaitForUploads дожидается завершения фоновых загрузок при остановке приложения.
func (a *ExportArchiver) WaitForUploads(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// archive загружает объект с тремя попытками и экспоненциальной задержкой с джиттером.
func (a *ExportArchiver) archive(fileName string, data []byte) {
	defer a.wg.Done()
	const (
		op          = "ExportArchiver.archive"
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 10 * time.Second
	)

	ctx, cancel := context.WithTimeout(a.shutdownCtx, 30*time.Second)
	defer cancel()

	objectKey := fmt.Sprintf("%s/%s", a.cfg.ExportPrefix, fileName)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		key, err := a.exportRepo.Upload(ctx, objectKey, data)
		if err == nil {
			a.logger.Infof("%s: export archived, key: %s", op, key)
			return
		}
		lastErr = err

		select {
		case <-ctx.Done():
			a.logger.Warnf("%s: archiving interrupted by shutdown, key=%s", op, objectKey)
			return
		case <-time.After(jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)):
		}
	}

	a.logger.Warnf("%s: failed to archive export %s after %d attempts: %v", op, objectKey, maxAttempts, lastErr)
}
