// Package cache guarda en Redis las tasas de impuesto de cada empresa.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// TaxRateSource fuente de verdad de las tasas (el repositorio PostgreSQL).
type TaxRateSource interface {
	ListByCompany(ctx context.Context, companyID string) ([]*entity.TaxRate, error)
}

// TaxRateCache lee las tasas de Redis y, en fallo de caché, de la fuente.
// Con client nil se comporta como un paso directo a la fuente.
// Un error de Redis nunca hace fallar la lectura: se registra y se consulta la fuente.
type TaxRateCache struct {
	client *redis.Client
	source TaxRateSource
	ttl    time.Duration
	log    *logger.Logger
}

// NewTaxRateCache construye la caché. ttl <= 0 guarda sin expiración.
func NewTaxRateCache(client *redis.Client, source TaxRateSource, ttl time.Duration, log *logger.Logger) *TaxRateCache {
	if log == nil {
		log = logger.Nop()
	}
	if ttl < 0 {
		ttl = 0
	}
	return &TaxRateCache{client: client, source: source, ttl: ttl, log: log.WithComponent("cache.tax_rates")}
}

func taxRatesKey(companyID string) string {
	return "panneaux:tax_rates:" + companyID
}

// ListByCompany devuelve las tasas en el mismo orden que la fuente.
func (c *TaxRateCache) ListByCompany(ctx context.Context, companyID string) ([]*entity.TaxRate, error) {
	var cached []*entity.TaxRate
	hit, err := c.getJSON(ctx, taxRatesKey(companyID), &cached)
	if err != nil {
		c.log.Warn().Err(err).Str("company_id", companyID).Msg("lectura de caché fallida")
	}
	if hit {
		return cached, nil
	}

	rates, err := c.source.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := c.setJSON(ctx, taxRatesKey(companyID), rates); err != nil {
		c.log.Warn().Err(err).Str("company_id", companyID).Msg("escritura de caché fallida")
	}
	return rates, nil
}

// Invalidate descarta las tasas cacheadas de la empresa; se llama tras crear o borrar una tasa.
func (c *TaxRateCache) Invalidate(ctx context.Context, companyID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, taxRatesKey(companyID)).Err()
}

func (c *TaxRateCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *TaxRateCache) setJSON(ctx context.Context, key string, v any) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
