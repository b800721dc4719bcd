package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"go-wms-feed/internal/model"
	"go-wms-feed/internal/utils"
)

// scanMinCells is the cell count below which a scan row is skipped
// outright instead of partially inserted.
const scanMinCells = 14

// Scan row positions. Position 0 is unused by the scanner export.
const (
	posReleaseKey     = 1
	posSSCC           = 2
	posMasterDelivery = 3
	posQty            = 4
	posMasterCtl      = 5
	posStCompany      = 6
	posAdd1           = 7
	posAdd2           = 8
	posAdd3           = 9
	posAdd4           = 10
	posShipTo         = 11
	posStZip          = 12
	posBarcode        = 13
	posSKU            = 14
)

// PositionalNormalizer parses scan feeds. The scanner export has no
// usable header; columns are fixed by position.
type PositionalNormalizer struct {
	JobNo string
	// MasterRemarks is the per-SKU reference value scans are labeled
	// against; a missing SKU labels the row "N".
	MasterRemarks map[string]string
}

// Parse reads one scan file into ScanRecords plus a skipped-row count.
func (n *PositionalNormalizer) Parse(ctx context.Context, r io.Reader) ([]model.ScanRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	jobNo := strings.TrimSpace(n.JobNo)

	var records []model.ScanRecord
	var skipped int

	for {
		select {
		case <-ctx.Done():
			return records, skipped, ctx.Err()
		default:
		}

		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		if len(cells) < scanMinCells {
			skipped++
			continue
		}

		releaseKey := safe(cells, posReleaseKey)
		sscc := safe(cells, posSSCC)
		if sscc == "" && releaseKey == "" {
			skipped++
			continue
		}

		sku := safe(cells, posSKU)
		masterDelivery := safe(cells, posMasterDelivery)

		tagLabel := "N"
		if sku != "" && sku == n.MasterRemarks[sku] {
			tagLabel = "Y"
		}

		records = append(records, model.ScanRecord{
			JobNo:           jobNo,
			ReleaseKey:      releaseKey,
			SSCC:            sscc,
			MasterDelivery:  masterDelivery,
			Qty:             utils.ToFloat(safe(cells, posQty), 0),
			MasterCtl:       safe(cells, posMasterCtl),
			MasterStCompany: safe(cells, posStCompany),
			MasterAdd1:      safe(cells, posAdd1),
			MasterAdd2:      safe(cells, posAdd2),
			MasterAdd3:      safe(cells, posAdd3),
			MasterAdd4:      safe(cells, posAdd4),
			ShipTo:          safe(cells, posShipTo),
			StZip:           safe(cells, posStZip),
			Barcode:         safe(cells, posBarcode),
			SKU:             sku,
			TagLabel:        tagLabel,
			JobnoType:       model.JobnoTypeOf(jobNo, masterDelivery),
			TimeScan:        time.Now(),
		})
	}

	return records, skipped, nil
}

func safe(arr []string, idx int) string {
	if idx >= len(arr) {
		return ""
	}
	return strings.TrimSpace(arr[idx])
}
