package model

import "time"

const (
	PalletKind1m2 = "1m2"
	PalletKind1m6 = "1m6"
	PalletKind1m9 = "1m9"

	PalletActionIn  = "IN"
	PalletActionOut = "OUT"
)

// PalletKinds lists the classification buckets in display order.
var PalletKinds = []string{PalletKind1m2, PalletKind1m6, PalletKind1m9}

// PalletTransaction is an append-only ledger entry. Stock is always
// recomputed by full replay, never kept as a running counter.
type PalletTransaction struct {
	ID         int64
	Date       time.Time
	PalletType string
	Action     string
	Quantity   int
	Remark     string
}
