package orchestrator

import (
	"context"
	"fmt"
	"log"

	"go-wms-feed/internal/reconcile"
	"go-wms-feed/internal/storage"
)

// RunReconcile prints the ordered-vs-scanned comparison for a job. A
// non-empty SKU narrows the rows and adds the per-release-key
// breakdown behind that SKU.
func RunReconcile(
	ctx context.Context,
	store *storage.SQLServerStore,
	jobNo string,
	sku string,
) error {

	if jobNo == "" {
		return fmt.Errorf("reconcile requires a job number")
	}

	engine := reconcile.NewEngine(store, store)

	rows, summary, err := engine.Compare(ctx, jobNo, sku)
	if err != nil {
		return err
	}

	log.Printf("RECONCILE JOB %s\n", jobNo)
	log.Printf("%-20s %10s %10s %10s %9s %5s\n",
		"SKU", "ORDERED", "SCANNED", "DIFF", "MISMATCH", "TAG",
	)
	for _, r := range rows {
		log.Printf("%-20s %10.0f %10.0f %+10.0f %9d %5s\n",
			r.SKU, r.Ordered, r.Scanned, r.Diff, r.Mismatch, r.TagLabel,
		)
	}
	log.Printf("TOTAL ordered=%.0f scanned=%.0f diff=%+.0f\n",
		summary.TotalOrdered, summary.TotalScanned, summary.Diff,
	)

	if sku != "" {
		breakdown, err := engine.ReleaseKeyBreakdown(ctx, jobNo, sku)
		if err != nil {
			return err
		}

		log.Printf("RELEASE KEYS FOR %s\n", sku)
		for _, b := range breakdown {
			log.Printf("%-20s %6d sscc\n", b.ReleaseKey, b.SSCCCount)
		}
	}

	return nil
}
