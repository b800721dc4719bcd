package orchestrator

import (
	"context"
	"log"
	"time"

	"go-wms-feed/internal/config"
	"go-wms-feed/internal/ledger"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/report"
	"go-wms-feed/internal/storage"
)

// RunPalletAppend records one pallet movement and prints the replayed
// stock position afterwards.
func RunPalletAppend(
	ctx context.Context,
	store *storage.SQLServerStore,
	cfg *config.Config,
	kind string,
	action string,
	qty int,
	remark string,
) error {

	lg := ledger.New(store)

	err := lg.Append(ctx, model.PalletTransaction{
		Date:       time.Now(),
		PalletType: kind,
		Action:     action,
		Quantity:   qty,
		Remark:     remark,
	})
	if err != nil {
		return err
	}

	log.Printf("Pallet %s %s x%d recorded\n", kind, action, qty)

	return printStock(ctx, store, lg, cfg)
}

// RunPalletStock prints the replayed stock position without recording
// anything.
func RunPalletStock(
	ctx context.Context,
	store *storage.SQLServerStore,
	cfg *config.Config,
) error {
	return printStock(ctx, store, ledger.New(store), cfg)
}

func printStock(
	ctx context.Context,
	store *storage.SQLServerStore,
	lg *ledger.Ledger,
	cfg *config.Config,
) error {

	exporter := report.NewExporter(store, lg, cfg.ExportDir)

	lines, err := exporter.StockSummary(ctx, cfg.PalletSafetyThreshold)
	if err != nil {
		return err
	}

	log.Println("PALLET STOCK")
	for _, l := range lines {
		warn := ""
		if l.LowStock {
			warn = "  << LOW STOCK"
		}
		log.Printf("%-4s in=%-6d out=%-6d stock=%-6d%s\n",
			l.Kind, l.In, l.Out, l.Stock, warn,
		)
	}
	return nil
}
