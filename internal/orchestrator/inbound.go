package orchestrator

import (
	"context"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"go-wms-feed/internal/calc"
	"go-wms-feed/internal/config"
	"go-wms-feed/internal/feed"
	"go-wms-feed/internal/metrics"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/storage"
	"go-wms-feed/internal/utils"
)

// RunInbound loads receiving files. The supplier and unit CBM of each
// SKU come from the latest shipment line referencing it, with the item
// master taking precedence for CBM.
func RunInbound(
	ctx context.Context,
	store *storage.SQLServerStore,
	cfg *config.Config,
	processID string,
) error {

	files, err := filepath.Glob(cfg.FilePath + "/*_INBOUND.csv")
	if err != nil || len(files) == 0 {
		return err
	}

	masterPack, err := store.MasterPackBySKU(ctx)
	if err != nil {
		return err
	}

	metrics.Reset()
	normalizer := &feed.HeaderNormalizer{Aliases: feed.InboundAliases}

	for _, path := range files {
		fileName := filepath.Base(path)

		rows, skipped, err := parseHeaderFile(ctx, normalizer, path)
		atomic.AddInt64(&metrics.SkippedRows, int64(skipped))
		if err != nil {
			_ = utils.MoveFile(path, cfg.FileFailedDir)
			return err
		}

		var records []model.InboundRecord
		for _, row := range rows {
			sku := row.Get(feed.FieldSKU)
			carton := row.Float(feed.FieldCarton, 0)

			if sku == "" || carton <= 0 {
				atomic.AddInt64(&metrics.SkippedRows, 1)
				continue
			}

			supplier, shipCBM, _, err := store.ShipmentSupplierCBM(ctx, sku)
			if err != nil {
				return err
			}

			unitCBM := masterPack[sku].CBM
			if unitCBM <= 0 {
				unitCBM = shipCBM
			}

			records = append(records, model.InboundRecord{
				Supplier:        supplier,
				PO:              row.Get(feed.FieldPO),
				SKU:             sku,
				Carton:          carton,
				Container:       row.Get(feed.FieldContainer),
				DateRcv:         parseDateOrToday(row.Get(feed.FieldDateRcv)),
				CBM:             calc.TotalCBM(unitCBM, carton),
				Labour:          row.Get(feed.FieldLabour),
				PackingListNo:   row.Get(feed.FieldPackingList),
				CoreFilename:    fileName,
				CoreProcessID:   processID,
				CoreProcessdate: time.Now(),
			})
		}

		n, err := store.BulkInsertInbound(ctx, records)
		atomic.AddInt64(&metrics.InsertedRows, n)
		if err != nil {
			_ = utils.MoveFile(path, cfg.FileFailedDir)
			return err
		}

		_ = utils.MoveFile(path, cfg.FileSuccessDir)
		log.Printf("Inbound %s: %d rows loaded\n", fileName, n)
	}

	log.Printf("Inbound rows inserted: %d skipped: %d\n",
		atomic.LoadInt64(&metrics.InsertedRows),
		atomic.LoadInt64(&metrics.SkippedRows),
	)

	return nil
}
