package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go-wms-feed/internal/calc"
	"go-wms-feed/internal/ledger"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/storage"
)

// Store is the slice of the storage collaborator the exports read from.
type Store interface {
	POAggregates(ctx context.Context) ([]storage.POAggregate, error)
	OutsourceRows(ctx context.Context, from, to time.Time) ([]storage.OutsourceRow, error)
	KindPalletCBM(ctx context.Context) (map[string]float64, error)
}

// Exporter writes the operational CSV exports into a target directory.
type Exporter struct {
	store  Store
	ledger *ledger.Ledger
	dir    string
}

func NewExporter(store Store, lg *ledger.Ledger, dir string) *Exporter {
	return &Exporter{
		store:  store,
		ledger: lg,
		dir:    dir,
	}
}

// ExportPOAggregates writes the parent-PO rollup, largest CBM first.
func (e *Exporter) ExportPOAggregates(ctx context.Context) (string, error) {
	rows, err := e.store.POAggregates(ctx)
	if err != nil {
		return "", err
	}

	path := e.filename("po_summary")
	records := [][]string{{"parent_po", "supplier", "total_qty", "total_cbm"}}
	for _, r := range rows {
		records = append(records, []string{
			r.ParentPO,
			r.SupplierName,
			formatFloat(r.TotalQty),
			formatFloat(r.TotalCBM),
		})
	}

	return path, writeCSV(path, records)
}

// ExportOutsource writes the outsourced-labour billing report for the
// given window and returns the path plus the number of data rows.
func (e *Exporter) ExportOutsource(ctx context.Context, from, to time.Time) (string, int, error) {
	rows, err := e.store.OutsourceRows(ctx, from, to)
	if err != nil {
		return "", 0, err
	}

	path := e.filename("outsource_" + from.Format("20060102") + "_" + to.Format("20060102"))
	records := [][]string{{"date_rcv", "container", "total_carton", "total_cbm"}}
	for _, r := range rows {
		records = append(records, []string{
			r.DateRcv.Format("2006-01-02"),
			r.Container,
			formatFloat(r.TotalCarton),
			formatFloat(r.TotalCBM),
		})
	}

	return path, len(rows), writeCSV(path, records)
}

// ExportPalletHistory writes the ledger entries inside the date range,
// newest first as the store returns them.
func (e *Exporter) ExportPalletHistory(ctx context.Context, from, to *time.Time) (string, error) {
	txs, err := e.ledger.History(ctx, from, to)
	if err != nil {
		return "", err
	}

	path := e.filename("pallet_history")
	records := [][]string{{"date", "pallet_type", "action", "quantity", "remark"}}
	for _, tx := range txs {
		records = append(records, []string{
			tx.Date.Format("2006-01-02"),
			tx.PalletType,
			tx.Action,
			strconv.Itoa(tx.Quantity),
			tx.Remark,
		})
	}

	return path, writeCSV(path, records)
}

// PalletProjection resolves projected pallet demand per kind from the
// open shipment volume.
func (e *Exporter) PalletProjection(ctx context.Context) (map[string]float64, error) {
	bucketCBM, err := e.store.KindPalletCBM(ctx)
	if err != nil {
		return nil, err
	}
	return calc.PalletProjection(bucketCBM), nil
}

// StockLine is one kind of the replayed stock position with its
// low-stock flag.
type StockLine struct {
	Kind     string
	In       int
	Out      int
	Stock    int
	LowStock bool
}

// StockSummary replays the ledger and flags kinds sitting below the
// configured safety threshold.
func (e *Exporter) StockSummary(ctx context.Context, safetyThreshold int) ([]StockLine, error) {
	stock, err := e.ledger.Stock(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]StockLine, 0, len(model.PalletKinds))
	for _, kind := range model.PalletKinds {
		s := stock[kind]
		lines = append(lines, StockLine{
			Kind:     kind,
			In:       s.In,
			Out:      s.Out,
			Stock:    s.Stock,
			LowStock: s.Stock < safetyThreshold,
		})
	}
	return lines, nil
}

func (e *Exporter) filename(prefix string) string {
	return filepath.Join(
		e.dir,
		fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405")),
	)
}

func writeCSV(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
