package model

import "time"

type OutboundRecord struct {
	ID          int64
	JobNo       string
	PO          string
	SKU         string
	Carton      float64
	DateRcv     time.Time
	CBM         float64 // total for the line, unit cbm * carton
	ChildPO     string
	FDC         string
	Container   string
	Seal        string
	Remark      string
	LooseCarton string
	KindPallet  string

	CoreFilename    string
	CoreProcessID   string
	CoreProcessdate time.Time
}

// FDCFromChildPO derives the facility/distribution code from a child
// purchase order number.
func FDCFromChildPO(childPO string) string {
	if len(childPO) < 3 {
		return childPO
	}
	return childPO[:3]
}
