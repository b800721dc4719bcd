package storage

import "time"

// MasterPack is the packing info the outbound run resolves per SKU.
type MasterPack struct {
	CBM        float64
	LooseCase  string
	KindPallet string
}

// POAggregate is one row of the parent-PO export: total cartons and
// CBM per parent order with the supplier display name joined in.
type POAggregate struct {
	ParentPO     string
	SupplierName string
	TotalQty     float64
	TotalCBM     float64
}

// OutsourceRow is one line of the outsourced-labour report, grouped by
// receive date and container.
type OutsourceRow struct {
	DateRcv     time.Time
	Container   string
	TotalCarton float64
	TotalCBM    float64
}
