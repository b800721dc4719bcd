package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-wms-feed/internal/ledger"
	"go-wms-feed/internal/merge"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/reconcile"
)

// MemoryStore is an in-memory storage collaborator used by the tests
// and dry runs. A single mutex serializes merge application, which is
// enough to keep the open-key insert decision atomic here.
type MemoryStore struct {
	mu sync.Mutex

	Shipments []model.ShipmentRecord
	Master    map[string]model.MasterItem
	Inbounds  []model.InboundRecord
	Outbounds []model.OutboundRecord
	Scans     []model.ScanRecord
	Pallets   []model.PalletTransaction

	palletSeq int64

	// FailInserts/FailUpdates force the corresponding bulk operation
	// to fail so partial-completion reporting can be exercised.
	FailInserts error
	FailUpdates error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Master: map[string]model.MasterItem{},
	}
}

var _ merge.ShipmentStore = (*MemoryStore)(nil)
var _ merge.KindPalletSource = (*MemoryStore)(nil)
var _ reconcile.OutboundSource = (*MemoryStore)(nil)
var _ reconcile.ScanSource = (*MemoryStore)(nil)
var _ ledger.TransactionStore = (*MemoryStore)(nil)

func (m *MemoryStore) OpenKeys(ctx context.Context) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := map[string]struct{}{}
	for _, s := range m.Shipments {
		if s.Open() {
			keys[s.Keycheck] = struct{}{}
		}
	}
	return keys, nil
}

func (m *MemoryStore) BulkUpdateOpen(ctx context.Context, updates []merge.Update) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpdates != nil {
		return 0, m.FailUpdates
	}

	var n int64
	for _, u := range updates {
		for i := range m.Shipments {
			s := &m.Shipments[i]
			if s.Keycheck == u.Keycheck && s.Open() {
				s.DeliveryDate = u.DeliveryDate
				s.Week = u.Week
				s.Qty = u.Qty
				n++
			}
		}
	}
	return n, nil
}

func (m *MemoryStore) BulkInsertOpen(ctx context.Context, records []model.ShipmentRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInserts != nil {
		return 0, m.FailInserts
	}

	var n int64
	for _, r := range records {
		open := false
		for i := range m.Shipments {
			if m.Shipments[i].Keycheck == r.Keycheck && m.Shipments[i].Open() {
				open = true
				break
			}
		}
		if open {
			// lost the race against another batch, dropped
			continue
		}
		m.Shipments = append(m.Shipments, r)
		n++
	}
	return n, nil
}

func (m *MemoryStore) LatestShipmentCBMBySKU(ctx context.Context) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]float64{}
	for _, s := range m.Shipments {
		if s.CBM > 0 {
			out[s.Item] = s.CBM
		}
	}
	return out, nil
}

func (m *MemoryStore) ShipmentSupplierCBM(ctx context.Context, sku string) (string, float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.Shipments) - 1; i >= 0; i-- {
		if m.Shipments[i].Item == sku {
			return m.Shipments[i].Supplier, m.Shipments[i].CBM, true, nil
		}
	}
	return "", 0, false, nil
}

func (m *MemoryStore) KindPalletCBM(ctx context.Context) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]float64{}
	for _, s := range m.Shipments {
		if s.KindPallet != nil {
			out[*s.KindPallet] += s.TotalCBM
		}
	}
	return out, nil
}

func (m *MemoryStore) KindPalletBySKU(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]string{}
	for sku, item := range m.Master {
		if item.KindPallet != "" {
			out[sku] = item.KindPallet
		}
	}
	return out, nil
}

func (m *MemoryStore) RemarksBySKU(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]string{}
	for sku, item := range m.Master {
		if item.Remark != "" {
			out[sku] = item.Remark
		}
	}
	return out, nil
}

func (m *MemoryStore) MasterPackBySKU(ctx context.Context) (map[string]MasterPack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]MasterPack{}
	for sku, item := range m.Master {
		out[sku] = MasterPack{
			CBM:        item.CBM,
			LooseCase:  item.LooseCase,
			KindPallet: item.KindPallet,
		}
	}
	return out, nil
}

func (m *MemoryStore) BulkInsertOutbound(ctx context.Context, records []model.OutboundRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Outbounds = append(m.Outbounds, records...)
	return int64(len(records)), nil
}

func (m *MemoryStore) BulkInsertInbound(ctx context.Context, records []model.InboundRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Inbounds = append(m.Inbounds, records...)
	return int64(len(records)), nil
}

func (m *MemoryStore) OrderedBySKU(ctx context.Context, jobNo string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]float64{}
	for _, o := range m.Outbounds {
		if o.JobNo == jobNo {
			out[o.SKU] += o.Carton
		}
	}
	return out, nil
}

func (m *MemoryStore) BulkInsertScans(ctx context.Context, records []model.ScanRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Scans = append(m.Scans, records...)
	return int64(len(records)), nil
}

func (m *MemoryStore) DeleteScansByJob(ctx context.Context, jobNo string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []model.ScanRecord
	var removed int64
	for _, s := range m.Scans {
		if s.JobNo == jobNo {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.Scans = kept
	return removed, nil
}

func (m *MemoryStore) ScanStatsBySKU(ctx context.Context, jobNo string) (map[string]reconcile.ScanStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sscc := map[string]map[string]struct{}{}
	stats := map[string]reconcile.ScanStat{}

	for _, s := range m.Scans {
		if s.JobNo != jobNo {
			continue
		}

		if sscc[s.SKU] == nil {
			sscc[s.SKU] = map[string]struct{}{}
		}
		sscc[s.SKU][s.SSCC] = struct{}{}

		stat := stats[s.SKU]
		if s.TagLabel == "N" {
			stat.Mismatch++
		}
		if s.TagLabel > stat.TagLabel {
			stat.TagLabel = s.TagLabel
		}
		stats[s.SKU] = stat
	}

	for sku, set := range sscc {
		stat := stats[sku]
		stat.Scanned = float64(len(set))
		stats[sku] = stat
	}
	return stats, nil
}

func (m *MemoryStore) ReleaseKeyCounts(ctx context.Context, jobNo, sku string) ([]reconcile.ReleaseKeyCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[string]int{}
	for _, s := range m.Scans {
		if s.JobNo == jobNo && s.SKU == sku {
			counts[s.ReleaseKey]++
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]reconcile.ReleaseKeyCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, reconcile.ReleaseKeyCount{
			ReleaseKey: k,
			SSCCCount:  counts[k],
		})
	}
	return out, nil
}

func (m *MemoryStore) AppendPallet(ctx context.Context, tx model.PalletTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.palletSeq++
	tx.ID = m.palletSeq
	m.Pallets = append(m.Pallets, tx)
	return nil
}

func (m *MemoryStore) AllPallet(ctx context.Context) ([]model.PalletTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.PalletTransaction, len(m.Pallets))
	copy(out, m.Pallets)
	return out, nil
}

func (m *MemoryStore) PalletBetween(ctx context.Context, from, to *time.Time) ([]model.PalletTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.PalletTransaction
	for _, tx := range m.Pallets {
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && tx.Date.After(*to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (m *MemoryStore) POAggregates(ctx context.Context) ([]POAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	agg := map[string]*POAggregate{}
	var order []string
	for _, s := range m.Shipments {
		if s.ParentPO == "" {
			continue
		}
		a, ok := agg[s.ParentPO]
		if !ok {
			a = &POAggregate{ParentPO: s.ParentPO, SupplierName: s.Supplier}
			agg[s.ParentPO] = a
			order = append(order, s.ParentPO)
		}
		a.TotalQty += s.Qty
		a.TotalCBM += s.TotalCBM
	}

	out := make([]POAggregate, 0, len(order))
	for _, k := range order {
		out = append(out, *agg[k])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalCBM > out[j].TotalCBM
	})
	return out, nil
}

func (m *MemoryStore) OutsourceRows(ctx context.Context, from, to time.Time) ([]OutsourceRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type key struct {
		date      time.Time
		container string
	}
	agg := map[key]*OutsourceRow{}
	for _, in := range m.Inbounds {
		if in.Labour != "Outsource" {
			continue
		}
		if in.DateRcv.Before(from) || in.DateRcv.After(to) {
			continue
		}
		k := key{date: in.DateRcv, container: in.Container}
		r, ok := agg[k]
		if !ok {
			r = &OutsourceRow{DateRcv: in.DateRcv, Container: in.Container}
			agg[k] = r
		}
		r.TotalCarton += in.Carton
		r.TotalCBM += in.CBM
	}

	out := make([]OutsourceRow, 0, len(agg))
	for _, r := range agg {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateRcv.Before(out[j].DateRcv)
	})
	return out, nil
}
