package merge

import (
	"context"
	"errors"
	"time"

	"go-wms-feed/internal/calc"
	"go-wms-feed/internal/feed"
	"go-wms-feed/internal/model"
)

// Update carries the volatile fields refreshed on an already-open
// shipment line. Everything else on the line is frozen at insert time.
type Update struct {
	Keycheck     string
	DeliveryDate *time.Time
	Week         *int
	Qty          float64
}

// ShipmentStore is the slice of the storage collaborator the merge
// engine needs. BulkUpdateOpen must only touch rows still open at
// apply time; BulkInsertOpen must only insert keys that have no open
// row at write time.
type ShipmentStore interface {
	OpenKeys(ctx context.Context) (map[string]struct{}, error)
	BulkUpdateOpen(ctx context.Context, updates []Update) (int64, error)
	BulkInsertOpen(ctx context.Context, records []model.ShipmentRecord) (int64, error)
}

// KindPalletSource resolves the pallet classification for newly
// inserted lines. Unknown SKUs resolve to no classification.
type KindPalletSource interface {
	KindPalletBySKU(ctx context.Context) (map[string]string, error)
}

// Result reports what one merge batch actually did. Partial
// application is a legal outcome: Err may be non-nil while Updated or
// Inserted carry real counts.
type Result struct {
	Updated  int64
	Inserted int64
	Skipped  int64
	Err      error
}

// Meta stamps the audit columns on inserted lines.
type Meta struct {
	Filename  string
	ProcessID string
}

type Engine struct {
	shipments ShipmentStore
	master    KindPalletSource
}

func NewEngine(shipments ShipmentStore, master KindPalletSource) *Engine {
	return &Engine{
		shipments: shipments,
		master:    master,
	}
}

// Merge reconciles a batch of canonical shipment rows against the
// currently open lines: open keys get a volatile-field update, new
// keys get a full insert. Re-submitting a row while its key stays
// open only refreshes date/week/qty, it never duplicates the line.
func (e *Engine) Merge(ctx context.Context, rows []feed.Row, meta Meta) Result {
	var res Result

	openKeys, err := e.shipments.OpenKeys(ctx)
	if err != nil {
		res.Err = err
		return res
	}

	kindBySKU, err := e.master.KindPalletBySKU(ctx)
	if err != nil {
		res.Err = err
		return res
	}

	var updates []Update
	var insertOrder []string
	pending := map[string]*model.ShipmentRecord{}

	for _, row := range rows {
		po := row.Get(feed.FieldPO)
		item := row.Get(feed.FieldItem)
		parentPO := row.Get(feed.FieldParentPO)

		if po == "" && item == "" {
			// no usable business key
			res.Skipped++
			continue
		}

		keycheck := model.Keycheck(po, item, parentPO)
		origin := row.Get(feed.FieldOrigin)

		date, week := calc.ProjectDelivery(row.Get(feed.FieldDeliveryDate), origin)
		qty := calc.PackQty(row.Float(feed.FieldQty, 0), row.Float(feed.FieldPackRatio, 1))

		if _, open := openKeys[keycheck]; open {
			updates = append(updates, Update{
				Keycheck:     keycheck,
				DeliveryDate: date,
				Week:         week,
				Qty:          qty,
			})
			continue
		}

		// A key repeated inside one batch refreshes its own pending
		// insert so the open-key uniqueness invariant holds.
		if prev, ok := pending[keycheck]; ok {
			prev.DeliveryDate = date
			prev.Week = week
			prev.Qty = qty
			res.Updated++
			continue
		}

		unitCBM := row.Float(feed.FieldUnitCBM, 0)

		var kind *string
		if k, ok := kindBySKU[item]; ok {
			kind = &k
		}

		rec := &model.ShipmentRecord{
			Keycheck:        keycheck,
			Origin:          origin,
			PO:              po,
			Item:            item,
			Supplier:        row.Get(feed.FieldSupplier),
			ParentPO:        parentPO,
			DeliveryDate:    date,
			Qty:             qty,
			CBM:             unitCBM,
			Week:            week,
			KindPallet:      kind,
			TotalCBM:        calc.TotalCBM(unitCBM, qty),
			CoreFilename:    meta.Filename,
			CoreProcessID:   meta.ProcessID,
			CoreProcessdate: time.Now(),
		}
		pending[keycheck] = rec
		insertOrder = append(insertOrder, keycheck)
	}

	inserts := make([]model.ShipmentRecord, 0, len(insertOrder))
	for _, k := range insertOrder {
		inserts = append(inserts, *pending[k])
	}

	// Two bulk operations, deliberately not one transaction. Each
	// side reports its own count so partial completion is observable.
	var errs []error

	if len(updates) > 0 {
		n, err := e.shipments.BulkUpdateOpen(ctx, updates)
		res.Updated += n
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(inserts) > 0 {
		n, err := e.shipments.BulkInsertOpen(ctx, inserts)
		res.Inserted += n
		if err != nil {
			errs = append(errs, err)
		}
	}

	res.Err = errors.Join(errs...)
	return res
}
