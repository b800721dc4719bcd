package orchestrator

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go-wms-feed/internal/config"
	"go-wms-feed/internal/feed"
	"go-wms-feed/internal/metrics"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/storage"
	"go-wms-feed/internal/utils"
)

// RunScan loads scanner export files into a job. The export has no
// header row, so parsing is positional. With replace set, the job's
// existing scans are cleared before loading.
func RunScan(
	ctx context.Context,
	store *storage.SQLServerStore,
	cfg *config.Config,
	processID string,
	jobNo string,
	replace bool,
) error {

	if jobNo == "" {
		return fmt.Errorf("scan load requires a job number")
	}

	files, err := filepath.Glob(cfg.FilePath + "/*_SCAN.csv")
	if err != nil || len(files) == 0 {
		return err
	}

	remarks, err := store.RemarksBySKU(ctx)
	if err != nil {
		return err
	}

	if replace {
		removed, err := store.DeleteScansByJob(ctx, jobNo)
		if err != nil {
			return err
		}
		log.Printf("Replaced job %s: %d existing scans removed\n", jobNo, removed)
	}

	metrics.Reset()
	normalizer := &feed.PositionalNormalizer{
		JobNo:         jobNo,
		MasterRemarks: remarks,
	}

	for _, path := range files {
		fileName := filepath.Base(path)

		records, skipped, err := parseScanFile(ctx, normalizer, path)
		atomic.AddInt64(&metrics.SkippedRows, int64(skipped))
		if err != nil {
			_ = utils.MoveFile(path, cfg.FileFailedDir)
			return err
		}

		for i := range records {
			records[i].CoreFilename = fileName
			records[i].CoreProcessID = processID
			records[i].CoreProcessdate = time.Now()
		}

		n, err := store.BulkInsertScans(ctx, records)
		atomic.AddInt64(&metrics.InsertedRows, n)
		if err != nil {
			_ = utils.MoveFile(path, cfg.FileFailedDir)
			return err
		}

		_ = utils.MoveFile(path, cfg.FileSuccessDir)
		log.Printf("Scan %s: %d rows loaded into job %s (%d skipped)\n",
			fileName, n, jobNo, skipped,
		)
	}

	log.Printf("Scan rows inserted: %d skipped: %d\n",
		atomic.LoadInt64(&metrics.InsertedRows),
		atomic.LoadInt64(&metrics.SkippedRows),
	)

	return nil
}

func parseScanFile(
	ctx context.Context,
	n *feed.PositionalNormalizer,
	path string,
) ([]model.ScanRecord, int, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	return n.Parse(ctx, f)
}
