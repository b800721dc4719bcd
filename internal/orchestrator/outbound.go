package orchestrator

import (
	"context"
	"fmt"
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

// OutboundOptions carries the job header the operator keys in for a
// picking load; every line of the file shares it.
type OutboundOptions struct {
	JobNo     string
	Date      string
	Container string
	Seal      string
	Remark    string
	AddMore   bool
}

// RunOutbound loads picking files into a job. Unit CBM per SKU falls
// back from the item master to the latest shipment line and finally to
// zero so an unreferenced SKU still loads.
func RunOutbound(
	ctx context.Context,
	store *storage.SQLServerStore,
	cfg *config.Config,
	processID string,
	opts OutboundOptions,
) error {

	if opts.JobNo == "" {
		return fmt.Errorf("outbound requires a job number")
	}

	files, err := filepath.Glob(cfg.FilePath + "/*_OUTBOUND.csv")
	if err != nil || len(files) == 0 {
		return err
	}

	existing, err := store.OrderedBySKU(ctx, opts.JobNo)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !opts.AddMore {
		return fmt.Errorf("job %s already has outbound lines, rerun with -add-more", opts.JobNo)
	}

	dateRcv := parseDateOrToday(opts.Date)

	masterPack, err := store.MasterPackBySKU(ctx)
	if err != nil {
		return err
	}
	shipmentCBM, err := store.LatestShipmentCBMBySKU(ctx)
	if err != nil {
		return err
	}

	metrics.Reset()
	normalizer := &feed.HeaderNormalizer{Aliases: feed.OutboundAliases}

	for _, path := range files {
		fileName := filepath.Base(path)

		rows, skipped, err := parseHeaderFile(ctx, normalizer, path)
		atomic.AddInt64(&metrics.SkippedRows, int64(skipped))
		if err != nil {
			_ = utils.MoveFile(path, cfg.FileFailedDir)
			return err
		}

		var records []model.OutboundRecord
		for _, row := range rows {
			sku := row.Get(feed.FieldSKU)
			carton := row.Float(feed.FieldCarton, 0)

			if sku == "" || carton <= 0 {
				atomic.AddInt64(&metrics.SkippedRows, 1)
				continue
			}

			pack := masterPack[sku]
			unitCBM := pack.CBM
			if unitCBM <= 0 {
				unitCBM = shipmentCBM[sku]
			}

			childPO := row.Get(feed.FieldChildPO)

			records = append(records, model.OutboundRecord{
				JobNo:           opts.JobNo,
				PO:              row.Get(feed.FieldPO),
				SKU:             sku,
				Carton:          carton,
				DateRcv:         dateRcv,
				CBM:             calc.TotalCBM(unitCBM, carton),
				ChildPO:         childPO,
				FDC:             model.FDCFromChildPO(childPO),
				Container:       opts.Container,
				Seal:            opts.Seal,
				Remark:          opts.Remark,
				LooseCarton:     pack.LooseCase,
				KindPallet:      pack.KindPallet,
				CoreFilename:    fileName,
				CoreProcessID:   processID,
				CoreProcessdate: time.Now(),
			})
		}

		n, err := store.BulkInsertOutbound(ctx, records)
		atomic.AddInt64(&metrics.InsertedRows, n)
		if err != nil {
			_ = utils.MoveFile(path, cfg.FileFailedDir)
			return err
		}

		_ = utils.MoveFile(path, cfg.FileSuccessDir)
		log.Printf("Outbound %s: %d rows loaded into job %s\n", fileName, n, opts.JobNo)
	}

	log.Printf("Outbound rows inserted: %d skipped: %d\n",
		atomic.LoadInt64(&metrics.InsertedRows),
		atomic.LoadInt64(&metrics.SkippedRows),
	)

	return nil
}

func parseDateOrToday(raw string) time.Time {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Now().Truncate(24 * time.Hour)
}
