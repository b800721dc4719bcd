package main

import (
	"context"
	"flag"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-wms-feed/internal/config"
	"go-wms-feed/internal/db"
	"go-wms-feed/internal/ftp"
	"go-wms-feed/internal/logger"
	"go-wms-feed/internal/orchestrator"
	"go-wms-feed/internal/storage"
	"go-wms-feed/internal/utils"
)

func main() {
	feedID := flag.String("feed", "", "Feed to run ex: BBR")
	jobNo := flag.String("job", "", "Job number for OUTBOUND/SCAN/RECONCILE")
	date := flag.String("date", "", "Receive date yyyy-mm-dd, default today")
	container := flag.String("container", "", "Container number")
	seal := flag.String("seal", "", "Seal number")
	remark := flag.String("remark", "", "Free-form remark")
	addMore := flag.Bool("add-more", false, "Append to a job that already has outbound lines")
	replace := flag.Bool("replace", false, "Clear existing scans for the job before loading")
	sku := flag.String("sku", "", "SKU filter for RECONCILE")
	kind := flag.String("kind", "", "Pallet kind: 1m2, 1m6, 1m9")
	action := flag.String("action", "", "Pallet action: IN or OUT")
	qty := flag.Int("qty", 0, "Pallet quantity")
	sendMail := flag.Bool("mail", false, "Mail the outsource report after exporting")
	flag.Parse()

	feedName := strings.ToUpper(strings.TrimSpace(*feedID))
	if feedName == "" {
		log.Fatalf("No feed specified")
	}

	start := time.Now()

	ctx := context.Background()
	cfg := config.Load()

	if cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(
			ctx,
			time.Duration(cfg.TimeoutSeconds)*time.Second,
		)
		defer cancel()
	}

	for _, dir := range []string{
		cfg.FilePath,
		cfg.FileDir,
		cfg.FileSuccessDir,
		cfg.FileFailedDir,
		cfg.LogsDir,
		cfg.ExportDir,
	} {
		if err := utils.EnsureDir(dir); err != nil {
			log.Fatalf("Failed to create dir %s: %v", dir, err)
		}
	}

	dbConn, err := db.NewSQLServer(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBName,
	)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer dbConn.Close()

	storeLog, err := logger.NewDailyWorkerLogger("storage")
	if err != nil {
		log.Fatalf("Failed to create storage logger: %v", err)
	}
	store := storage.NewSQLServerStore(dbConn, storeLog)

	// FTP pickup only for the file-based feeds.
	if cfg.FTP.Host != "" && isFileFeed(feedName) {
		ftpClient, err := ftp.NewClient(cfg.FTP)
		if err != nil {
			log.Fatalf("Failed to create FTP client: %v", err)
		}
		defer ftpClient.Close()

		log.Println("Starting FTP download...")
		files, err := ftpClient.DownloadFiles(cfg.FilePath)
		if err != nil {
			log.Fatalf("Failed to download files: %v", err)
		}
		log.Printf("Downloaded %d files (files moved/deleted from FTP immediately)", len(files))
	}

	processID := uuid.New().String()
	chain := orchestrator.New()

	log.Printf("Process ID %s\n", processID)

	feeds := map[string][]struct {
		Name string
		Fn   func(context.Context) error
	}{
		"BBR": {
			{
				Name: "MERGE BBR",
				Fn: func(ctx context.Context) error {
					return orchestrator.RunBBR(ctx, store, cfg, processID)
				},
			},
		},
		"OUTBOUND": {
			{
				Name: "LOAD OUTBOUND",
				Fn: func(ctx context.Context) error {
					return orchestrator.RunOutbound(ctx, store, cfg, processID,
						orchestrator.OutboundOptions{
							JobNo:     *jobNo,
							Date:      *date,
							Container: *container,
							Seal:      *seal,
							Remark:    *remark,
							AddMore:   *addMore,
						})
				},
			},
		},
		"INBOUND": {
			{
				Name: "LOAD INBOUND",
				Fn: func(ctx context.Context) error {
					return orchestrator.RunInbound(ctx, store, cfg, processID)
				},
			},
		},
		"SCAN": {
			{
				Name: "LOAD SCAN",
				Fn: func(ctx context.Context) error {
					return orchestrator.RunScan(ctx, store, cfg, processID, *jobNo, *replace)
				},
			},
		},
		"RECONCILE": {
			{
				Name: "RECONCILE JOB",
				Fn: func(ctx context.Context) error {
					return orchestrator.RunReconcile(ctx, store, *jobNo, *sku)
				},
			},
		},
		"PALLET": {
			{
				Name: "PALLET LEDGER",
				Fn: func(ctx context.Context) error {
					if *action == "" {
						return orchestrator.RunPalletStock(ctx, store, cfg)
					}
					return orchestrator.RunPalletAppend(
						ctx, store, cfg,
						*kind, strings.ToUpper(*action), *qty, *remark,
					)
				},
			},
		},
		"REPORT": {
			{
				Name: "EXPORT REPORTS",
				Fn: func(ctx context.Context) error {
					return orchestrator.RunReport(ctx, store, cfg, *sendMail)
				},
			},
		},
	}

	steps, ok := feeds[feedName]
	if !ok {
		log.Fatalf("Unknown feed: %s", feedName)
	}

	log.Printf("Running feed: %s\n", feedName)
	for _, step := range steps {
		chain.Add(step.Name, step.Fn)
	}

	if err := chain.Run(ctx); err != nil {
		log.Fatalf("FEED FAILED: %v", err)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("Alloc=%dMB Sys=%dMB", m.Alloc/1024/1024, m.Sys/1024/1024)
	log.Printf("FEED COMPLETED IN %s\n", time.Since(start))
}

func isFileFeed(name string) bool {
	switch name {
	case "BBR", "OUTBOUND", "INBOUND", "SCAN":
		return true
	}
	return false
}
