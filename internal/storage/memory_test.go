package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/model"
	"go-wms-feed/internal/storage"
)

func TestOpenKeysExcludesClosedLines(t *testing.T) {
	store := storage.NewMemoryStore()
	closed := "DONE"
	store.Shipments = []model.ShipmentRecord{
		{Keycheck: "K1"},
		{Keycheck: "K2", Status: &closed},
	}

	keys, err := store.OpenKeys(context.Background())
	assert.Nil(t, err)
	assert.Len(t, keys, 1)
	assert.Contains(t, keys, "K1")
}

func TestBulkInsertOpenDropsRacedKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Shipments = []model.ShipmentRecord{{Keycheck: "K1"}}

	n, err := store.BulkInsertOpen(context.Background(), []model.ShipmentRecord{
		{Keycheck: "K1"},
		{Keycheck: "K2"},
	})

	assert.Nil(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, store.Shipments, 2)
}

func TestDeleteScansByJobScopedToJob(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_, err := store.BulkInsertScans(ctx, []model.ScanRecord{
		{JobNo: "J1", SSCC: "S1"},
		{JobNo: "J1", SSCC: "S2"},
		{JobNo: "J2", SSCC: "S3"},
	})
	assert.Nil(t, err)

	removed, err := store.DeleteScansByJob(ctx, "J1")
	assert.Nil(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Len(t, store.Scans, 1)
	assert.Equal(t, "J2", store.Scans[0].JobNo)
}

func TestMasterPackBySKU(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Master["SKU1"] = model.MasterItem{
		SKU:        "SKU1",
		CBM:        0.4,
		LooseCase:  "LOOSE",
		KindPallet: "1m9",
	}

	packs, err := store.MasterPackBySKU(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 0.4, packs["SKU1"].CBM)
	assert.Equal(t, "LOOSE", packs["SKU1"].LooseCase)
	assert.Equal(t, "1m9", packs["SKU1"].KindPallet)
}

func TestShipmentSupplierCBMPrefersLatest(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Shipments = []model.ShipmentRecord{
		{Item: "SKU1", Supplier: "OLD", CBM: 0.1},
		{Item: "SKU1", Supplier: "NEW", CBM: 0.2},
	}

	supplier, cbm, found, err := store.ShipmentSupplierCBM(context.Background(), "SKU1")
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "NEW", supplier)
	assert.Equal(t, 0.2, cbm)

	_, _, found, err = store.ShipmentSupplierCBM(context.Background(), "MISSING")
	assert.Nil(t, err)
	assert.False(t, found)
}

func TestAppendPalletAssignsSequence(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	assert.Nil(t, store.AppendPallet(ctx, model.PalletTransaction{PalletType: "1m2"}))
	assert.Nil(t, store.AppendPallet(ctx, model.PalletTransaction{PalletType: "1m6"}))

	all, err := store.AllPallet(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(2), all[1].ID)
}
