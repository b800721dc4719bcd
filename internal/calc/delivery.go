package calc

import (
	"strings"
	"time"
)

// The feed carries delivery dates in whichever format the upstream
// system happened to export.
var deliveryLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

const (
	leadTimeDaysVN      = 3
	leadTimeDaysDefault = 14
)

// ProjectDelivery turns the raw feed delivery date into the projected
// warehouse arrival date plus its ISO-8601 week. Origin VN ships by
// truck (+3 days), everything else by sea (+14 days). An unparseable
// date returns nil/nil; the row is still merged without these fields.
func ProjectDelivery(raw, origin string) (*time.Time, *int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var parsed time.Time
	var ok bool
	for _, layout := range deliveryLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			parsed = t
			ok = true
			break
		}
	}
	if !ok {
		return nil, nil
	}

	days := leadTimeDaysDefault
	if strings.EqualFold(strings.TrimSpace(origin), "VN") {
		days = leadTimeDaysVN
	}

	projected := parsed.AddDate(0, 0, days)
	_, week := projected.ISOWeek()
	return &projected, &week
}
