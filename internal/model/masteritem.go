package model

// MasterItem is read-only reference data for the feed engines.
// Dimensions are millimeters, CBM is derived (l*w*h/1e6) by the CRUD
// forms that own this table.
type MasterItem struct {
	SKU             string
	Supplier        string
	Description     string
	Quantity        float64
	Weight          float64
	Length          float64
	Width           float64
	Height          float64
	CBM             float64
	Refix           string
	LooseCase       string
	KindPallet      string
	CartonPerPallet int
	Remark          string
}
