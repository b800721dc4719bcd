package reconcile_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/model"
	"go-wms-feed/internal/reconcile"
	"go-wms-feed/internal/storage"
)

func seedScans(t *testing.T, store *storage.MemoryStore, jobNo, sku, releaseKey string, ssccCount int, tagLabel string) {
	t.Helper()

	var records []model.ScanRecord
	for i := 0; i < ssccCount; i++ {
		records = append(records, model.ScanRecord{
			JobNo:      jobNo,
			SKU:        sku,
			ReleaseKey: releaseKey,
			SSCC:       fmt.Sprintf("%s-%s-%d", sku, releaseKey, i),
			TagLabel:   tagLabel,
		})
	}

	_, err := store.BulkInsertScans(context.Background(), records)
	assert.Nil(t, err)
}

func TestCompareUnionOfSides(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_, err := store.BulkInsertOutbound(ctx, []model.OutboundRecord{
		{JobNo: "J1", SKU: "A", Carton: 10},
	})
	assert.Nil(t, err)

	seedScans(t, store, "J1", "A", "RK1", 8, "Y")
	seedScans(t, store, "J1", "B", "RK1", 2, "Y")

	engine := reconcile.NewEngine(store, store)
	rows, summary, err := engine.Compare(ctx, "J1", "")

	assert.Nil(t, err)
	assert.Len(t, rows, 2)

	// A was ordered but short-scanned
	assert.Equal(t, "A", rows[0].SKU)
	assert.Equal(t, 10.0, rows[0].Ordered)
	assert.Equal(t, 8.0, rows[0].Scanned)
	assert.Equal(t, -2.0, rows[0].Diff)

	// B was never ordered yet appears on the scanned side
	assert.Equal(t, "B", rows[1].SKU)
	assert.Equal(t, 0.0, rows[1].Ordered)
	assert.Equal(t, 2.0, rows[1].Scanned)
	assert.Equal(t, 2.0, rows[1].Diff)

	assert.Equal(t, 10.0, summary.TotalOrdered)
	assert.Equal(t, 10.0, summary.TotalScanned)
	assert.Equal(t, 0.0, summary.Diff)
}

func TestCompareCountsDistinctSSCC(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	// the same carton scanned twice still counts once
	_, err := store.BulkInsertScans(ctx, []model.ScanRecord{
		{JobNo: "J1", SKU: "A", SSCC: "S1", TagLabel: "Y"},
		{JobNo: "J1", SKU: "A", SSCC: "S1", TagLabel: "Y"},
		{JobNo: "J1", SKU: "A", SSCC: "S2", TagLabel: "Y"},
	})
	assert.Nil(t, err)

	engine := reconcile.NewEngine(store, store)
	rows, _, err := engine.Compare(ctx, "J1", "")

	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].Scanned)
}

func TestCompareMismatchCount(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	seedScans(t, store, "J1", "A", "RK1", 3, "N")

	engine := reconcile.NewEngine(store, store)
	rows, _, err := engine.Compare(ctx, "J1", "")

	assert.Nil(t, err)
	assert.Equal(t, 3, rows[0].Mismatch)
	assert.Equal(t, "N", rows[0].TagLabel)
}

func TestCompareSKUFilterScopesSummary(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_, err := store.BulkInsertOutbound(ctx, []model.OutboundRecord{
		{JobNo: "J1", SKU: "A", Carton: 10},
		{JobNo: "J1", SKU: "B", Carton: 4},
	})
	assert.Nil(t, err)

	seedScans(t, store, "J1", "A", "RK1", 10, "Y")

	engine := reconcile.NewEngine(store, store)
	rows, summary, err := engine.Compare(ctx, "J1", "A")

	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].SKU)
	assert.Equal(t, 10.0, summary.TotalOrdered)
	assert.Equal(t, 10.0, summary.TotalScanned)
}

func TestCompareIgnoresOtherJobs(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	seedScans(t, store, "J1", "A", "RK1", 2, "Y")
	seedScans(t, store, "J2", "A", "RK1", 5, "Y")

	engine := reconcile.NewEngine(store, store)
	rows, _, err := engine.Compare(ctx, "J1", "")

	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].Scanned)
}

func TestReleaseKeyBreakdown(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	seedScans(t, store, "J1", "A", "RK2", 3, "Y")
	seedScans(t, store, "J1", "A", "RK1", 2, "Y")
	seedScans(t, store, "J1", "B", "RK9", 1, "Y")

	engine := reconcile.NewEngine(store, store)
	breakdown, err := engine.ReleaseKeyBreakdown(ctx, "J1", "A")

	assert.Nil(t, err)
	assert.Len(t, breakdown, 2)
	assert.Equal(t, "RK1", breakdown[0].ReleaseKey)
	assert.Equal(t, 2, breakdown[0].SSCCCount)
	assert.Equal(t, "RK2", breakdown[1].ReleaseKey)
	assert.Equal(t, 3, breakdown[1].SSCCCount)
}
