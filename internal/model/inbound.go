package model

import "time"

type InboundRecord struct {
	ID            int64
	Supplier      string
	PO            string
	SKU           string
	Carton        float64
	Container     string
	DateRcv       time.Time
	CBM           float64 // total for the line, unit cbm * carton
	Labour        string
	PackingListNo string

	CoreFilename    string
	CoreProcessID   string
	CoreProcessdate time.Time
}
