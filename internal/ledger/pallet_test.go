package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/ledger"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/storage"
)

func tx(kind, action string, qty int, day int) model.PalletTransaction {
	return model.PalletTransaction{
		Date:       time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		PalletType: kind,
		Action:     action,
		Quantity:   qty,
	}
}

func TestStockReplay(t *testing.T) {
	store := storage.NewMemoryStore()
	lg := ledger.New(store)
	ctx := context.Background()

	assert.Nil(t, lg.Append(ctx, tx("1m2", "IN", 10, 1)))
	assert.Nil(t, lg.Append(ctx, tx("1m2", "OUT", 3, 2)))
	assert.Nil(t, lg.Append(ctx, tx("1m6", "IN", 5, 3)))

	stock, err := lg.Stock(ctx)
	assert.Nil(t, err)

	assert.Equal(t, ledger.KindStock{In: 10, Out: 3, Stock: 7}, stock["1m2"])
	assert.Equal(t, ledger.KindStock{In: 5, Out: 0, Stock: 5}, stock["1m6"])
	assert.Equal(t, ledger.KindStock{}, stock["1m9"])
}

func TestStockOrderIndependence(t *testing.T) {
	ctx := context.Background()

	forward := storage.NewMemoryStore()
	lgf := ledger.New(forward)
	assert.Nil(t, lgf.Append(ctx, tx("1m9", "IN", 10, 1)))
	assert.Nil(t, lgf.Append(ctx, tx("1m9", "OUT", 4, 2)))

	// same movements recorded in reverse, backdated
	backward := storage.NewMemoryStore()
	lgb := ledger.New(backward)
	assert.Nil(t, lgb.Append(ctx, tx("1m9", "OUT", 4, 2)))
	assert.Nil(t, lgb.Append(ctx, tx("1m9", "IN", 10, 1)))

	sf, err := lgf.Stock(ctx)
	assert.Nil(t, err)
	sb, err := lgb.Stock(ctx)
	assert.Nil(t, err)

	assert.Equal(t, sf, sb)
	assert.Equal(t, 6, sf["1m9"].Stock)
}

func TestAppendRejectsInvalidEntries(t *testing.T) {
	store := storage.NewMemoryStore()
	lg := ledger.New(store)
	ctx := context.Background()

	assert.NotNil(t, lg.Append(ctx, tx("1m2", "IN", 0, 1)))
	assert.NotNil(t, lg.Append(ctx, tx("1m2", "IN", -5, 1)))
	assert.NotNil(t, lg.Append(ctx, tx("1m2", "MOVE", 5, 1)))
	assert.NotNil(t, lg.Append(ctx, tx("2m0", "IN", 5, 1)))

	assert.Len(t, store.Pallets, 0)
}

func TestHistoryDateFilter(t *testing.T) {
	store := storage.NewMemoryStore()
	lg := ledger.New(store)
	ctx := context.Background()

	assert.Nil(t, lg.Append(ctx, tx("1m2", "IN", 1, 1)))
	assert.Nil(t, lg.Append(ctx, tx("1m2", "IN", 2, 10)))
	assert.Nil(t, lg.Append(ctx, tx("1m2", "IN", 3, 20)))

	from := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	history, err := lg.History(ctx, &from, &to)
	assert.Nil(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, 2, history[0].Quantity)

	// the filter never narrows the replayed stock
	stock, err := lg.Stock(ctx)
	assert.Nil(t, err)
	assert.Equal(t, 6, stock["1m2"].Stock)
}
