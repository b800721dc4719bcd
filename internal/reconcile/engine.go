package reconcile

import (
	"context"
	"sort"
)

// ScanStat is the scanned side of one SKU within a job: distinct SSCC
// count, label mismatches, and a representative tag value.
type ScanStat struct {
	Scanned  float64
	Mismatch int
	TagLabel string
}

type ReleaseKeyCount struct {
	ReleaseKey string
	SSCCCount  int
}

// OutboundSource supplies ordered quantities: sum of outbound cartons
// for a job, grouped by SKU.
type OutboundSource interface {
	OrderedBySKU(ctx context.Context, jobNo string) (map[string]float64, error)
}

// ScanSource supplies the physically scanned side of a job.
type ScanSource interface {
	ScanStatsBySKU(ctx context.Context, jobNo string) (map[string]ScanStat, error)
	ReleaseKeyCounts(ctx context.Context, jobNo, sku string) ([]ReleaseKeyCount, error)
}

// Row is one SKU of the ordered-vs-scanned comparison. A SKU missing
// on either side still appears with that side at 0; that gap is the
// signal the comparison exists to expose.
type Row struct {
	SKU      string
	Ordered  float64
	Scanned  float64
	Diff     float64
	Mismatch int
	TagLabel string
}

type Summary struct {
	TotalOrdered float64
	TotalScanned float64
	Diff         float64
}

type Engine struct {
	outbound OutboundSource
	scans    ScanSource
}

func NewEngine(outbound OutboundSource, scans ScanSource) *Engine {
	return &Engine{
		outbound: outbound,
		scans:    scans,
	}
}

// Compare builds the per-SKU comparison for a job over the union of
// SKUs seen on either side, plus job-level totals. skuFilter narrows
// the rows to one SKU when non-empty; the summary always covers the
// filtered rows.
func (e *Engine) Compare(ctx context.Context, jobNo, skuFilter string) ([]Row, Summary, error) {
	var summary Summary

	ordered, err := e.outbound.OrderedBySKU(ctx, jobNo)
	if err != nil {
		return nil, summary, err
	}

	scanned, err := e.scans.ScanStatsBySKU(ctx, jobNo)
	if err != nil {
		return nil, summary, err
	}

	union := make(map[string]struct{}, len(ordered)+len(scanned))
	for sku := range ordered {
		union[sku] = struct{}{}
	}
	for sku := range scanned {
		union[sku] = struct{}{}
	}

	rows := make([]Row, 0, len(union))
	for sku := range union {
		if skuFilter != "" && sku != skuFilter {
			continue
		}

		ord := ordered[sku]
		stat := scanned[sku]

		rows = append(rows, Row{
			SKU:      sku,
			Ordered:  ord,
			Scanned:  stat.Scanned,
			Diff:     stat.Scanned - ord,
			Mismatch: stat.Mismatch,
			TagLabel: stat.TagLabel,
		})

		summary.TotalOrdered += ord
		summary.TotalScanned += stat.Scanned
	}

	summary.Diff = summary.TotalScanned - summary.TotalOrdered

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].SKU < rows[j].SKU
	})

	return rows, summary, nil
}

// ReleaseKeyBreakdown lists per-release-key SSCC counts for one SKU of
// a job, the drill-down behind a comparison row.
func (e *Engine) ReleaseKeyBreakdown(ctx context.Context, jobNo, sku string) ([]ReleaseKeyCount, error) {
	return e.scans.ReleaseKeyCounts(ctx, jobNo, sku)
}
