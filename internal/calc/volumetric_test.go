package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/calc"
)

func TestUnitCBM(t *testing.T) {
	assert.Equal(t, 0.1, calc.UnitCBM(100, 50, 20))
	assert.Equal(t, 0.0, calc.UnitCBM(0, 50, 20))
	assert.Equal(t, 0.0, calc.UnitCBM(100, -1, 20))
}

func TestPackQty(t *testing.T) {
	assert.Equal(t, 25.0, calc.PackQty(100, 4))

	// missing pack ratio counts as 1
	assert.Equal(t, 10.0, calc.PackQty(10, 0))
	assert.Equal(t, 0.0, calc.PackQty(0, 4))
}

func TestShipmentTotalCBM(t *testing.T) {
	assert.Equal(t, 2.5, calc.ShipmentTotalCBM(0.1, 100, 4))
	assert.Equal(t, 1.0, calc.ShipmentTotalCBM(0.1, 10, 0))
	assert.Equal(t, 0.0, calc.ShipmentTotalCBM(0, 10, 1))
}

func TestTotalCBM(t *testing.T) {
	assert.Equal(t, 5.0, calc.TotalCBM(0.5, 10))
	assert.Equal(t, 0.0, calc.TotalCBM(0.5, 0))
}

func TestRequiredPallets(t *testing.T) {
	// 6.12 cbm on a 3.06 base with the 1.5 slack factor
	assert.Equal(t, 3.0, calc.RequiredPallets("1m2", 6.12))
	assert.Equal(t, 1.5, calc.RequiredPallets("1m6", 4.08))

	// empty buckets and unknown kinds project zero
	assert.Equal(t, 0.0, calc.RequiredPallets("1m2", 0))
	assert.Equal(t, 0.0, calc.RequiredPallets("2m0", 10))
}

func TestPalletProjection(t *testing.T) {
	proj := calc.PalletProjection(map[string]float64{
		"1m2": 6.12,
		"2m0": 99,
	})

	assert.Len(t, proj, 3)
	assert.Equal(t, 3.0, proj["1m2"])
	assert.Equal(t, 0.0, proj["1m6"])
	assert.Equal(t, 0.0, proj["1m9"])
}
