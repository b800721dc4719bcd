package orchestrator

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go-wms-feed/internal/config"
	"go-wms-feed/internal/feed"
	"go-wms-feed/internal/merge"
	"go-wms-feed/internal/metrics"
	"go-wms-feed/internal/storage"
	"go-wms-feed/internal/utils"
)

// RunBBR merges every pending shipment feed file into the open report
// lines. Files land in the success or failed directory afterwards; a
// failed bulk apply still reports the counts that did land.
func RunBBR(
	ctx context.Context,
	store *storage.SQLServerStore,
	cfg *config.Config,
	processID string,
) error {

	files, err := filepath.Glob(cfg.FilePath + "/*_BBR.csv")
	if err != nil || len(files) == 0 {
		return err
	}

	var totalLines int64
	for _, f := range files {
		c, err := utils.CountLines(f)
		if err != nil {
			return err
		}
		totalLines += c
	}

	metrics.Reset()
	atomic.StoreInt64(&metrics.TotalLines, totalLines)

	log.Printf("TOTAL LINES (BBR): %d\n", totalLines)

	fileMetrics := make(chan metrics.FileMetric, 100)
	metricsDone := make(chan struct{})
	go metrics.CollectFileMetrics(fileMetrics, metricsDone)

	progressDone := make(chan struct{})
	go metrics.StartProgressBar(totalLines, progressDone)

	engine := merge.NewEngine(store, store)
	normalizer := &feed.HeaderNormalizer{Aliases: feed.BBRAliases}

	var runErr error

	for _, path := range files {
		start := time.Now()
		fileName := filepath.Base(path)

		rows, skipped, err := parseHeaderFile(ctx, normalizer, path)
		metrics.IncProcessed(int64(len(rows) + skipped))
		atomic.AddInt64(&metrics.SkippedRows, int64(skipped))

		if err != nil {
			_ = utils.MoveFile(path, cfg.FileFailedDir)
			fileMetrics <- fileMetric(fileName, start, len(rows), skipped, "FAILED")
			runErr = err
			break
		}

		res := engine.Merge(ctx, rows, merge.Meta{
			Filename:  fileName,
			ProcessID: processID,
		})

		atomic.AddInt64(&metrics.UpdatedRows, res.Updated)
		atomic.AddInt64(&metrics.InsertedRows, res.Inserted)
		atomic.AddInt64(&metrics.SkippedRows, res.Skipped)

		status := "SUCCESS"
		destDir := cfg.FileSuccessDir

		if res.Err != nil {
			status = "FAILED"
			destDir = cfg.FileFailedDir
			log.Printf(
				"BBR merge failed for %s after updated=%d inserted=%d: %v\n",
				fileName, res.Updated, res.Inserted, res.Err,
			)
			runErr = res.Err
		}

		_ = utils.MoveFile(path, destDir)
		fileMetrics <- fileMetric(fileName, start, len(rows), skipped, status)

		if runErr != nil {
			break
		}
	}

	close(fileMetrics)
	<-metricsDone
	close(progressDone)

	log.Printf("BBR rows updated: %d inserted: %d skipped: %d\n",
		atomic.LoadInt64(&metrics.UpdatedRows),
		atomic.LoadInt64(&metrics.InsertedRows),
		atomic.LoadInt64(&metrics.SkippedRows),
	)

	return runErr
}

func parseHeaderFile(
	ctx context.Context,
	n *feed.HeaderNormalizer,
	path string,
) ([]feed.Row, int, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	return n.Parse(ctx, f)
}

func fileMetric(name string, start time.Time, parsed, skipped int, status string) metrics.FileMetric {
	end := time.Now()
	return metrics.FileMetric{
		FileName:    name,
		StartTime:   start,
		EndTime:     end,
		Duration:    end.Sub(start),
		ParsedRows:  int64(parsed),
		SkippedRows: int64(skipped),
		Status:      status,
	}
}
