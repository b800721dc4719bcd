package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/report"
)

func TestOutsourceWindowMidYear(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	from, to := report.OutsourceWindow(now)

	assert.Equal(t, time.Date(2026, 7, 21, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 2026, to.Year())
	assert.Equal(t, time.August, to.Month())
	assert.Equal(t, 20, to.Day())
}

func TestOutsourceWindowJanuaryRollsBack(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	from, to := report.OutsourceWindow(now)

	assert.Equal(t, time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 2026, to.Year())
	assert.Equal(t, time.January, to.Month())
	assert.Equal(t, 20, to.Day())
}
