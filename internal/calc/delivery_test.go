package calc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/calc"
)

func TestProjectDeliveryVN(t *testing.T) {
	date, week := calc.ProjectDelivery("2024-05-01", "VN")

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), *date)
	assert.Equal(t, 18, *week)
}

func TestProjectDeliverySea(t *testing.T) {
	date, week := calc.ProjectDelivery("2024-05-01", "CN")

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), *date)
	assert.Equal(t, 20, *week)
}

func TestProjectDeliveryOriginCase(t *testing.T) {
	vn, _ := calc.ProjectDelivery("2024-05-01", "vn")
	sea, _ := calc.ProjectDelivery("2024-05-01", "")

	assert.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), *vn)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), *sea)
}

func TestProjectDeliveryAlternateLayouts(t *testing.T) {
	date, _ := calc.ProjectDelivery("01-05-2024", "VN")

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), *date)
}

func TestProjectDeliveryUnparseable(t *testing.T) {
	date, week := calc.ProjectDelivery("not a date", "VN")
	assert.Nil(t, date)
	assert.Nil(t, week)

	date, week = calc.ProjectDelivery("", "VN")
	assert.Nil(t, date)
	assert.Nil(t, week)
}
