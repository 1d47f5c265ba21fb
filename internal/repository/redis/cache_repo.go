package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/pos-backend/internal/cfg"
	"github.com/DRSN-tech/pos-backend/internal/domain"
	"github.com/DRSN-tech/pos-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/pos-backend/pkg/clients"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CacheRepo кэширует чеки завершённых продаж.
// Чек неизменяем, поэтому кэш никогда не устаревает по содержимому;
// TTL лишь ограничивает объём занятой памяти.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.SaleConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.SaleConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetSale возвращает чек из кэша либо (nil, nil) при промахе.
func (c *CacheRepo) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	data, err := c.client.Client.Get(ctx, c.saleKey(id)).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.SaleRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(context.Background(), c.saleKey(id)).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // считаем испорченную запись промахом
	}

	if model.ID != id {
		c.logger.Warnf("Cache ID mismatch: key_id: %d, model_id: %d", id, model.ID)
		if err := c.client.Client.Del(context.Background(), c.saleKey(id)).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return c.conv.ToEntity(&model), nil
}

// SetSale кэширует чек с заданным TTL.
func (c *CacheRepo) SetSale(ctx context.Context, sale *domain.Sale) error {
	data, err := json.Marshal(c.conv.ToRedisModel(sale))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.saleKey(sale.ID), data, c.cfg.ReceiptTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// saleKey возвращает Redis-ключ чека.
func (c *CacheRepo) saleKey(id int64) string {
	return fmt.Sprintf("sale:%d", id)
}
