package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/infrastructure/cache"
)

type fakeSource struct {
	calls int
	rates []*entity.TaxRate
	err   error
}

func (f *fakeSource) ListByCompany(_ context.Context, _ string) ([]*entity.TaxRate, error) {
	f.calls++
	return f.rates, f.err
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sampleRates() []*entity.TaxRate {
	return []*entity.TaxRate{
		{ID: "r1", CompanyID: "c1", Name: "TVA", Rate: decimal.NewFromInt(18), Position: 0},
		{ID: "r2", CompanyID: "c1", Name: "TSP", Rate: decimal.RequireFromString("2.5"), Position: 1},
	}
}

func TestTaxRateCache_SegundaLecturaNoConsultaFuente(t *testing.T) {
	_, client := newRedis(t)
	src := &fakeSource{rates: sampleRates()}
	c := cache.NewTaxRateCache(client, src, time.Minute, nil)
	ctx := context.Background()

	first, err := c.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	second, err := c.ListByCompany(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.Equal(t, "TSP", second[1].Name, "el orden de aplicación se conserva")
	assert.True(t, second[1].Rate.Equal(decimal.RequireFromString("2.5")))
}

func TestTaxRateCache_InvalidateFuerzaRecarga(t *testing.T) {
	_, client := newRedis(t)
	src := &fakeSource{rates: sampleRates()}
	c := cache.NewTaxRateCache(client, src, time.Minute, nil)
	ctx := context.Background()

	_, err := c.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "c1"))
	_, err = c.ListByCompany(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
}

func TestTaxRateCache_ExpiraConTTL(t *testing.T) {
	mr, client := newRedis(t)
	src := &fakeSource{rates: sampleRates()}
	c := cache.NewTaxRateCache(client, src, time.Minute, nil)
	ctx := context.Background()

	_, err := c.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = c.ListByCompany(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
}

func TestTaxRateCache_RedisCaidoUsaFuente(t *testing.T) {
	mr, client := newRedis(t)
	src := &fakeSource{rates: sampleRates()}
	c := cache.NewTaxRateCache(client, src, time.Minute, nil)
	mr.Close()

	rates, err := c.ListByCompany(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestTaxRateCache_SinClienteEsPasoDirecto(t *testing.T) {
	src := &fakeSource{rates: sampleRates()}
	c := cache.NewTaxRateCache(nil, src, time.Minute, nil)
	ctx := context.Background()

	_, _ = c.ListByCompany(ctx, "c1")
	_, _ = c.ListByCompany(ctx, "c1")
	assert.Equal(t, 2, src.calls)
	assert.NoError(t, c.Invalidate(ctx, "c1"))
}

func TestTaxRateCache_ErrorDeFuenteNoSeCachea(t *testing.T) {
	_, client := newRedis(t)
	src := &fakeSource{err: errors.New("db caída")}
	c := cache.NewTaxRateCache(client, src, time.Minute, nil)

	_, err := c.ListByCompany(context.Background(), "c1")
	require.Error(t, err)

	src.err = nil
	src.rates = sampleRates()
	rates, err := c.ListByCompany(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}
