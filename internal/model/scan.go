package model

import "time"

// ScanRecord is one physically scanned carton. SSCC is the unit of
// count within a job; the table is append-only.
type ScanRecord struct {
	JobNo           string
	ReleaseKey      string
	SSCC            string
	MasterDelivery  string
	Qty             float64
	MasterCtl       string
	MasterStCompany string
	MasterAdd1      string
	MasterAdd2      string
	MasterAdd3      string
	MasterAdd4      string
	ShipTo          string
	StZip           string
	Barcode         string
	SKU             string
	TagLabel        string // "Y" when the SKU matches the master reference value
	JobnoType       string
	TimeScan        time.Time

	CoreFilename    string
	CoreProcessID   string
	CoreProcessdate time.Time
}

// JobnoTypeOf combines the job number with the first characters of the
// delivery code, the grouping the scan floor works with.
func JobnoTypeOf(jobNo, masterDelivery string) string {
	prefix := masterDelivery
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return jobNo + "_" + prefix
}
