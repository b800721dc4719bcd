package storage

import (
	"context"
	"database/sql"
	"time"

	"go-wms-feed/internal/ledger"
	"go-wms-feed/internal/merge"
	"go-wms-feed/internal/model"
	"go-wms-feed/internal/reconcile"

	mssql "github.com/microsoft/go-mssqldb"
)

type Logger interface {
	Printf(string, ...any)
}

// SQLServerStore is the production storage collaborator. Bulk paths
// use the driver's CopyIn; the shipment merge paths stage rows in a
// temp table and apply them with open-only predicates under HOLDLOCK
// so concurrent batches cannot both insert the same open key.
type SQLServerStore struct {
	db  *sql.DB
	log Logger
}

func NewSQLServerStore(db *sql.DB, log Logger) *SQLServerStore {
	return &SQLServerStore{db: db, log: log}
}

var _ merge.ShipmentStore = (*SQLServerStore)(nil)
var _ merge.KindPalletSource = (*SQLServerStore)(nil)
var _ reconcile.OutboundSource = (*SQLServerStore)(nil)
var _ reconcile.ScanSource = (*SQLServerStore)(nil)
var _ ledger.TransactionStore = (*SQLServerStore)(nil)

/* =========================
   SHIPMENT (bbrreport)
========================= */

func (s *SQLServerStore) OpenKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT keycheck FROM bbrreport WHERE Status IS NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := map[string]struct{}{}
	for rows.Next() {
		var key sql.NullString
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		if key.Valid && key.String != "" {
			keys[key.String] = struct{}{}
		}
	}
	return keys, rows.Err()
}

func (s *SQLServerStore) BulkUpdateOpen(ctx context.Context, updates []merge.Update) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE #bbr_update (
			keycheck     NVARCHAR(200),
			deliverydate DATE NULL,
			week         INT NULL,
			qty          FLOAT
		)
	`); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(
		"#bbr_update", mssql.BulkOptions{},
		"keycheck", "deliverydate", "week", "qty",
	))
	if err != nil {
		return 0, err
	}

	for _, u := range updates {
		if _, err := stmt.ExecContext(ctx,
			u.Keycheck, nullTime(u.DeliveryDate), nullInt(u.Week), u.Qty,
		); err != nil {
			stmt.Close()
			return 0, err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, err
	}
	stmt.Close()

	// open-only predicate: a line closed between snapshot and apply
	// is left untouched
	res, err := tx.ExecContext(ctx, `
		UPDATE b
		SET b.deliverydate = u.deliverydate,
			b.week = u.week,
			b.qty = u.qty
		FROM bbrreport b
		JOIN #bbr_update u ON b.keycheck = u.keycheck
		WHERE b.Status IS NULL
	`)
	if err != nil {
		return 0, err
	}

	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.log.Printf("[BULK][bbrreport] updated open rows=%d", n)
	return n, nil
}

func (s *SQLServerStore) BulkInsertOpen(ctx context.Context, records []model.ShipmentRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SET XACT_ABORT ON;`); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE #bbr_insert (
			keycheck         NVARCHAR(200),
			origin           NVARCHAR(50),
			PO               NVARCHAR(100),
			item             NVARCHAR(100),
			supplier         NVARCHAR(100),
			parentpo         NVARCHAR(100),
			deliverydate     DATE NULL,
			qty              FLOAT,
			cbm              FLOAT,
			week             INT NULL,
			kindpallet       NVARCHAR(20) NULL,
			total_cbm        FLOAT,
			core_filename    NVARCHAR(260),
			core_process_id  NVARCHAR(64),
			core_processdate DATETIME2
		)
	`); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(
		"#bbr_insert", mssql.BulkOptions{},
		"keycheck", "origin", "PO", "item", "supplier", "parentpo",
		"deliverydate", "qty", "cbm", "week", "kindpallet", "total_cbm",
		"core_filename", "core_process_id", "core_processdate",
	))
	if err != nil {
		return 0, err
	}

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Keycheck, r.Origin, r.PO, r.Item, r.Supplier, r.ParentPO,
			nullTime(r.DeliveryDate), r.Qty, r.CBM, nullInt(r.Week),
			nullString(r.KindPallet), r.TotalCBM,
			r.CoreFilename, r.CoreProcessID, r.CoreProcessdate,
		); err != nil {
			stmt.Close()
			return 0, err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, err
	}
	stmt.Close()

	// conditional write: only keys without an open row at write time
	res, err := tx.ExecContext(ctx, `
		INSERT INTO bbrreport
			(keycheck, origin, PO, item, supplier, parentpo, deliverydate,
			 qty, cbm, week, kindpallet, total_cbm,
			 core_filename, core_process_id, core_processdate)
		SELECT
			s.keycheck, s.origin, s.PO, s.item, s.supplier, s.parentpo,
			s.deliverydate, s.qty, s.cbm, s.week, s.kindpallet, s.total_cbm,
			s.core_filename, s.core_process_id, s.core_processdate
		FROM #bbr_insert s
		WHERE NOT EXISTS (
			SELECT 1 FROM bbrreport b WITH (HOLDLOCK, UPDLOCK)
			WHERE b.keycheck = s.keycheck AND b.Status IS NULL
		)
	`)
	if err != nil {
		return 0, err
	}

	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.log.Printf("[BULK][bbrreport] inserted rows=%d", n)
	return n, nil
}

// LatestShipmentCBMBySKU maps item to the unit CBM of its most recent
// shipment line, the fallback when masterdata has no entry.
func (s *SQLServerStore) LatestShipmentCBMBySKU(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item, cbm FROM (
			SELECT item, cbm,
				ROW_NUMBER() OVER (PARTITION BY item ORDER BY id DESC) AS rn
			FROM bbrreport
			WHERE cbm IS NOT NULL
		) t
		WHERE t.rn = 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var item string
		var cbm float64
		if err := rows.Scan(&item, &cbm); err != nil {
			return nil, err
		}
		out[item] = cbm
	}
	return out, rows.Err()
}

// ShipmentSupplierCBM resolves supplier and unit CBM for an inbound
// SKU from its latest shipment line.
func (s *SQLServerStore) ShipmentSupplierCBM(ctx context.Context, sku string) (string, float64, bool, error) {
	var supplier sql.NullString
	var cbm sql.NullFloat64

	err := s.db.QueryRowContext(ctx, `
		SELECT TOP 1 supplier, cbm FROM bbrreport
		WHERE item = @sku
		ORDER BY id DESC
	`, sql.Named("sku", sku)).Scan(&supplier, &cbm)
	if err == sql.ErrNoRows {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}
	return supplier.String, cbm.Float64, true, nil
}

// KindPalletCBM aggregates open total CBM per pallet-kind bucket for
// the pallet projection.
func (s *SQLServerStore) KindPalletCBM(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kindpallet, COALESCE(SUM(total_cbm), 0)
		FROM bbrreport
		WHERE kindpallet IS NOT NULL
		GROUP BY kindpallet
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var kind string
		var cbm float64
		if err := rows.Scan(&kind, &cbm); err != nil {
			return nil, err
		}
		out[kind] = cbm
	}
	return out, rows.Err()
}

/* =========================
   MASTERDATA
========================= */

func (s *SQLServerStore) KindPalletBySKU(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, kindpallet FROM masterdata
		WHERE kindpallet IS NOT NULL AND kindpallet != ''
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var sku, kind string
		if err := rows.Scan(&sku, &kind); err != nil {
			return nil, err
		}
		out[sku] = kind
	}
	return out, rows.Err()
}

func (s *SQLServerStore) RemarksBySKU(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, remark FROM masterdata
		WHERE remark IS NOT NULL AND remark != ''
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var sku, remark string
		if err := rows.Scan(&sku, &remark); err != nil {
			return nil, err
		}
		out[sku] = remark
	}
	return out, rows.Err()
}

func (s *SQLServerStore) MasterPackBySKU(ctx context.Context) (map[string]MasterPack, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, COALESCE(cbm, 0), COALESCE(loosecase, ''), COALESCE(kindpallet, '')
		FROM masterdata
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]MasterPack{}
	for rows.Next() {
		var sku string
		var p MasterPack
		if err := rows.Scan(&sku, &p.CBM, &p.LooseCase, &p.KindPallet); err != nil {
			return nil, err
		}
		out[sku] = p
	}
	return out, rows.Err()
}

/* =========================
   OUTBOUND / INBOUND
========================= */

func (s *SQLServerStore) BulkInsertOutbound(ctx context.Context, records []model.OutboundRecord) (int64, error) {
	return s.bulkCopy(ctx, "outbound",
		[]string{
			"jobno", "po", "sku", "carton", "datercv", "cbm", "childpo",
			"fdc", "remark", "loosecarton", "kindpallet", "container",
			"core_filename", "core_process_id", "core_processdate",
		},
		len(records),
		func(i int) []any {
			r := records[i]
			return []any{
				r.JobNo, r.PO, r.SKU, r.Carton, r.DateRcv, r.CBM, r.ChildPO,
				r.FDC, r.Remark, r.LooseCarton, r.KindPallet, r.Container,
				r.CoreFilename, r.CoreProcessID, r.CoreProcessdate,
			}
		},
	)
}

func (s *SQLServerStore) BulkInsertInbound(ctx context.Context, records []model.InboundRecord) (int64, error) {
	return s.bulkCopy(ctx, "inbound",
		[]string{
			"MANCC", "po", "sku", "carton", "contxe", "datercv", "cbm",
			"labour", "PackinglistNo",
			"core_filename", "core_process_id", "core_processdate",
		},
		len(records),
		func(i int) []any {
			r := records[i]
			return []any{
				r.Supplier, r.PO, r.SKU, r.Carton, r.Container, r.DateRcv,
				r.CBM, r.Labour, r.PackingListNo,
				r.CoreFilename, r.CoreProcessID, r.CoreProcessdate,
			}
		},
	)
}

func (s *SQLServerStore) OrderedBySKU(ctx context.Context, jobNo string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, COALESCE(SUM(carton), 0)
		FROM outbound
		WHERE jobno = @job
		GROUP BY sku
	`, sql.Named("job", jobNo))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var sku string
		var qty float64
		if err := rows.Scan(&sku, &qty); err != nil {
			return nil, err
		}
		out[sku] = qty
	}
	return out, rows.Err()
}

/* =========================
   SCANFILE
========================= */

func (s *SQLServerStore) BulkInsertScans(ctx context.Context, records []model.ScanRecord) (int64, error) {
	return s.bulkCopy(ctx, "scanfile",
		[]string{
			"jobno", "release_key", "sscc", "master_delivery", "qty",
			"master_ctl", "master_st_company", "master_add1", "master_add2",
			"master_add3", "master_add4", "ship_to", "st_zip", "barcode",
			"sku", "tag_label", "jobno_type", "time_scan",
			"core_filename", "core_process_id", "core_processdate",
		},
		len(records),
		func(i int) []any {
			r := records[i]
			return []any{
				r.JobNo, r.ReleaseKey, r.SSCC, r.MasterDelivery, r.Qty,
				r.MasterCtl, r.MasterStCompany, r.MasterAdd1, r.MasterAdd2,
				r.MasterAdd3, r.MasterAdd4, r.ShipTo, r.StZip, r.Barcode,
				r.SKU, r.TagLabel, r.JobnoType, r.TimeScan,
				r.CoreFilename, r.CoreProcessID, r.CoreProcessdate,
			}
		},
	)
}

func (s *SQLServerStore) DeleteScansByJob(ctx context.Context, jobNo string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM scanfile WHERE jobno = @job
	`, sql.Named("job", jobNo))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLServerStore) ScanStatsBySKU(ctx context.Context, jobNo string) (map[string]reconcile.ScanStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku,
			COUNT(DISTINCT sscc),
			SUM(CASE WHEN tag_label = 'N' THEN 1 ELSE 0 END),
			MAX(tag_label)
		FROM scanfile
		WHERE jobno = @job
		GROUP BY sku
	`, sql.Named("job", jobNo))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]reconcile.ScanStat{}
	for rows.Next() {
		var sku string
		var stat reconcile.ScanStat
		var tag sql.NullString
		if err := rows.Scan(&sku, &stat.Scanned, &stat.Mismatch, &tag); err != nil {
			return nil, err
		}
		stat.TagLabel = tag.String
		out[sku] = stat
	}
	return out, rows.Err()
}

func (s *SQLServerStore) ReleaseKeyCounts(ctx context.Context, jobNo, sku string) ([]reconcile.ReleaseKeyCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT release_key, COUNT(sscc)
		FROM scanfile
		WHERE jobno = @job AND sku = @sku
		GROUP BY release_key
		ORDER BY release_key
	`, sql.Named("job", jobNo), sql.Named("sku", sku))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reconcile.ReleaseKeyCount
	for rows.Next() {
		var c reconcile.ReleaseKeyCount
		if err := rows.Scan(&c.ReleaseKey, &c.SSCCCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

/* =========================
   PALLET LEDGER
========================= */

func (s *SQLServerStore) AppendPallet(ctx context.Context, tx model.PalletTransaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pallet_management (date, pallet_type, action, quantity, remark)
		VALUES (@date, @kind, @action, @qty, @remark)
	`,
		sql.Named("date", tx.Date),
		sql.Named("kind", tx.PalletType),
		sql.Named("action", tx.Action),
		sql.Named("qty", tx.Quantity),
		sql.Named("remark", tx.Remark),
	)
	return err
}

func (s *SQLServerStore) AllPallet(ctx context.Context) ([]model.PalletTransaction, error) {
	return s.queryPallet(ctx, nil, nil)
}

func (s *SQLServerStore) PalletBetween(ctx context.Context, from, to *time.Time) ([]model.PalletTransaction, error) {
	return s.queryPallet(ctx, from, to)
}

func (s *SQLServerStore) queryPallet(ctx context.Context, from, to *time.Time) ([]model.PalletTransaction, error) {
	q := `SELECT id, date, pallet_type, action, quantity, COALESCE(remark, '') FROM pallet_management`
	var args []any
	var conds []string

	if from != nil {
		conds = append(conds, "date >= @from")
		args = append(args, sql.Named("from", *from))
	}
	if to != nil {
		conds = append(conds, "date <= @to")
		args = append(args, sql.Named("to", *to))
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PalletTransaction
	for rows.Next() {
		var tx model.PalletTransaction
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.PalletType, &tx.Action, &tx.Quantity, &tx.Remark); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

/* =========================
   REPORT QUERIES
========================= */

func (s *SQLServerStore) POAggregates(ctx context.Context) ([]POAggregate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.parentpo, COALESCE(MAX(n.TENNCC), ''),
			COALESCE(SUM(b.qty), 0), COALESCE(SUM(b.total_cbm), 0)
		FROM bbrreport b
		LEFT JOIN nhacungcap n ON b.supplier = n.MANCC
		WHERE b.parentpo IS NOT NULL
		GROUP BY b.parentpo
		ORDER BY SUM(b.total_cbm) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []POAggregate
	for rows.Next() {
		var a POAggregate
		if err := rows.Scan(&a.ParentPO, &a.SupplierName, &a.TotalQty, &a.TotalCBM); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLServerStore) OutsourceRows(ctx context.Context, from, to time.Time) ([]OutsourceRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.datercv, COALESCE(i.contxe, ''),
			COALESCE(SUM(i.carton), 0), COALESCE(SUM(i.cbm), 0)
		FROM inbound i
		WHERE i.labour = 'Outsource'
			AND i.datercv >= @from AND i.datercv <= @to
		GROUP BY i.datercv, i.contxe
		ORDER BY i.datercv ASC
	`, sql.Named("from", from), sql.Named("to", to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutsourceRow
	for rows.Next() {
		var r OutsourceRow
		if err := rows.Scan(&r.DateRcv, &r.Container, &r.TotalCarton, &r.TotalCBM); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

/* =========================
   CORE BULK COPY
========================= */

func (s *SQLServerStore) bulkCopy(
	ctx context.Context,
	table string,
	cols []string,
	count int,
	rowAt func(i int) []any,
) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(table, mssql.BulkOptions{}, cols...))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		if _, err := stmt.ExecContext(ctx, rowAt(i)...); err != nil {
			s.log.Printf("[BULK][%s] exec failed at row #%d: %v", table, i+1, err)
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.log.Printf("[BULK][%s] completed successfully, rows=%d", table, count)
	return int64(count), nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
