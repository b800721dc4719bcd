package model

import "time"

// ShipmentRecord is one line of the periodic BBR shipment feed.
// Status nil means the line is still open; the merge engine only ever
// touches open lines. Closing is done by an external fulfillment step.
type ShipmentRecord struct {
	Keycheck     string
	Origin       string
	PO           string
	Item         string
	Supplier     string
	ParentPO     string
	DeliveryDate *time.Time
	Qty          float64
	CBM          float64
	Week         *int
	KindPallet   *string
	TotalCBM     float64
	Status       *string

	CoreFilename    string
	CoreProcessID   string
	CoreProcessdate time.Time
}

// Keycheck builds the composite business key identifying a shipment line
// across feed submissions.
func Keycheck(po, item, parentPO string) string {
	return po + "_" + item + "_" + parentPO
}

func (s *ShipmentRecord) Open() bool {
	return s.Status == nil
}
