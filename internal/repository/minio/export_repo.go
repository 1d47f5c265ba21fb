package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/pos-backend/internal/cfg"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportRepo реализует хранилище архивных выгрузок поверх MinIO.
type ExportRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewExportRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ExportRepo {
	return &ExportRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload сохраняет выгрузку в MinIO и возвращает ключ объекта.
func (r *ExportRepo) Upload(ctx context.Context, objectKey string, data []byte) (string, error) {
	reader := bytes.NewReader(data)

	info, err := r.mc.PutObject(ctx, r.cfg.BucketName, objectKey, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: xlsxContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}
