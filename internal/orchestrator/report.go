package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-wms-feed/internal/config"
	"go-wms-feed/internal/ledger"
	"go-wms-feed/internal/mailer"
	"go-wms-feed/internal/report"
	"go-wms-feed/internal/storage"
)

// RunReport writes the operational exports: parent-PO rollup, the
// outsourced-labour billing report for the current window, pallet
// history, and the pallet demand projection. With sendMail set, the
// outsource report goes out to the configured recipients.
func RunReport(
	ctx context.Context,
	store *storage.SQLServerStore,
	cfg *config.Config,
	sendMail bool,
) error {

	exporter := report.NewExporter(store, ledger.New(store), cfg.ExportDir)

	poPath, err := exporter.ExportPOAggregates(ctx)
	if err != nil {
		return err
	}
	log.Printf("PO summary written to %s\n", poPath)

	from, to := report.OutsourceWindow(time.Now())

	outPath, outRows, err := exporter.ExportOutsource(ctx, from, to)
	if err != nil {
		return err
	}
	log.Printf("Outsource report written to %s (%d rows, %s to %s)\n",
		outPath, outRows,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	)

	histPath, err := exporter.ExportPalletHistory(ctx, nil, nil)
	if err != nil {
		return err
	}
	log.Printf("Pallet history written to %s\n", histPath)

	projection, err := exporter.PalletProjection(ctx)
	if err != nil {
		return err
	}
	log.Println("PALLET PROJECTION")
	for kind, demand := range projection {
		log.Printf("%-4s %.2f pallets\n", kind, demand)
	}

	if sendMail {
		m := mailer.New(cfg.Mail)
		subject := fmt.Sprintf(
			"Outsource labour report %s - %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"),
		)
		body := fmt.Sprintf(
			"Attached is the outsourced labour report (%d rows).", outRows,
		)
		if err := m.Send(subject, body, outPath); err != nil {
			return err
		}
		log.Println("Outsource report mailed")
	}

	return nil
}
