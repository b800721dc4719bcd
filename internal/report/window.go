package report

import "time"

// OutsourceWindow is the billing period the outsourced-labour report
// covers: the 21st of the previous month through the 20th of the
// current month, inclusive. January rolls the start back into December
// of the previous year.
func OutsourceWindow(now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	from := time.Date(now.Year(), now.Month()-1, 21, 0, 0, 0, 0, loc)
	to := time.Date(now.Year(), now.Month(), 20, 23, 59, 59, 0, loc)
	return from, to
}
