package merge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/feed"
	"go-wms-feed/internal/merge"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/storage"
)

func bbrRow(po, item, parentPO, qty string) feed.Row {
	return feed.Row{
		feed.FieldPO:           po,
		feed.FieldItem:         item,
		feed.FieldParentPO:     parentPO,
		feed.FieldOrigin:       "VN",
		feed.FieldDeliveryDate: "2024-05-01",
		feed.FieldQty:          qty,
	}
}

func TestMergeInsertsNewKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	engine := merge.NewEngine(store, store)

	res := engine.Merge(context.Background(), []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "10"),
	}, merge.Meta{Filename: "f.csv", ProcessID: "pid"})

	assert.Nil(t, res.Err)
	assert.Equal(t, int64(1), res.Inserted)
	assert.Equal(t, int64(0), res.Updated)
	assert.Len(t, store.Shipments, 1)

	rec := store.Shipments[0]
	assert.Equal(t, "PO1_IT1_PP1", rec.Keycheck)
	assert.Equal(t, 10.0, rec.Qty)
	assert.Equal(t, "f.csv", rec.CoreFilename)
	assert.NotNil(t, rec.DeliveryDate)
	assert.True(t, rec.Open())
}

func TestMergeUpdatesOpenKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	engine := merge.NewEngine(store, store)
	ctx := context.Background()
	meta := merge.Meta{Filename: "f.csv", ProcessID: "pid"}

	first := engine.Merge(ctx, []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "10"),
	}, meta)
	assert.Equal(t, int64(1), first.Inserted)

	// same key while still open refreshes qty, never duplicates
	second := engine.Merge(ctx, []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "25"),
	}, meta)

	assert.Nil(t, second.Err)
	assert.Equal(t, int64(0), second.Inserted)
	assert.Equal(t, int64(1), second.Updated)
	assert.Len(t, store.Shipments, 1)
	assert.Equal(t, 25.0, store.Shipments[0].Qty)
}

func TestMergeClosedKeyInsertsFresh(t *testing.T) {
	store := storage.NewMemoryStore()
	closed := "DONE"
	store.Shipments = append(store.Shipments, model.ShipmentRecord{
		Keycheck: "PO1_IT1_PP1",
		Qty:      10,
		Status:   &closed,
	})

	engine := merge.NewEngine(store, store)
	res := engine.Merge(context.Background(), []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "5"),
	}, merge.Meta{})

	assert.Nil(t, res.Err)
	assert.Equal(t, int64(1), res.Inserted)
	assert.Len(t, store.Shipments, 2)

	// the closed line is untouched
	assert.Equal(t, 10.0, store.Shipments[0].Qty)
	assert.Equal(t, 5.0, store.Shipments[1].Qty)
	assert.True(t, store.Shipments[1].Open())
}

func TestMergeDuplicateKeyWithinBatch(t *testing.T) {
	store := storage.NewMemoryStore()
	engine := merge.NewEngine(store, store)

	res := engine.Merge(context.Background(), []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "10"),
		bbrRow("PO1", "IT1", "PP1", "30"),
	}, merge.Meta{})

	assert.Nil(t, res.Err)
	assert.Equal(t, int64(1), res.Inserted)
	assert.Equal(t, int64(1), res.Updated)
	assert.Len(t, store.Shipments, 1)
	assert.Equal(t, 30.0, store.Shipments[0].Qty)
}

func TestMergeSkipsRowsWithoutBusinessKey(t *testing.T) {
	store := storage.NewMemoryStore()
	engine := merge.NewEngine(store, store)

	res := engine.Merge(context.Background(), []feed.Row{
		{feed.FieldQty: "10"},
		bbrRow("PO1", "IT1", "PP1", "10"),
	}, merge.Meta{})

	assert.Nil(t, res.Err)
	assert.Equal(t, int64(1), res.Skipped)
	assert.Equal(t, int64(1), res.Inserted)
}

func TestMergeAppliesPackRatio(t *testing.T) {
	store := storage.NewMemoryStore()
	engine := merge.NewEngine(store, store)

	row := bbrRow("PO1", "IT1", "PP1", "100")
	row[feed.FieldPackRatio] = "4"
	row[feed.FieldUnitCBM] = "0.5"

	res := engine.Merge(context.Background(), []feed.Row{row}, merge.Meta{})

	assert.Nil(t, res.Err)
	assert.Equal(t, 25.0, store.Shipments[0].Qty)
	assert.Equal(t, 12.5, store.Shipments[0].TotalCBM)
}

func TestMergeResolvesKindPallet(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Master["IT1"] = model.MasterItem{SKU: "IT1", KindPallet: "1m6"}

	engine := merge.NewEngine(store, store)
	res := engine.Merge(context.Background(), []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "10"),
		bbrRow("PO2", "IT9", "PP2", "10"),
	}, merge.Meta{})

	assert.Nil(t, res.Err)
	assert.NotNil(t, store.Shipments[0].KindPallet)
	assert.Equal(t, "1m6", *store.Shipments[0].KindPallet)
	assert.Nil(t, store.Shipments[1].KindPallet)
}

func TestMergePartialFailureReportsCounts(t *testing.T) {
	store := storage.NewMemoryStore()
	engine := merge.NewEngine(store, store)
	ctx := context.Background()

	seed := engine.Merge(ctx, []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "10"),
	}, merge.Meta{})
	assert.Nil(t, seed.Err)

	store.FailInserts = errors.New("bulk insert refused")

	res := engine.Merge(ctx, []feed.Row{
		bbrRow("PO1", "IT1", "PP1", "20"),
		bbrRow("PO2", "IT2", "PP2", "5"),
	}, merge.Meta{})

	// the update side landed before the insert side failed
	assert.NotNil(t, res.Err)
	assert.Equal(t, int64(1), res.Updated)
	assert.Equal(t, int64(0), res.Inserted)
	assert.Equal(t, 20.0, store.Shipments[0].Qty)
}
