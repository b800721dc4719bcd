package calc

import "github.com/shopspring/decimal"

// Base pallet capacities in cubic meters per kind.
var palletBaseCapacity = map[string]decimal.Decimal{
	"1m2": decimal.NewFromFloat(3.06),
	"1m6": decimal.NewFromFloat(4.08),
	"1m9": decimal.NewFromFloat(4.85),
}

// Loading plans keep half a pallet of slack per projected pallet.
var palletSafetyFactor = decimal.NewFromFloat(1.5)

var cbmDivisor = decimal.NewFromInt(1_000_000)

// UnitCBM computes the cubic meters of a single carton from its
// millimeter dimensions. Malformed (negative) input yields 0.
func UnitCBM(lengthMM, widthMM, heightMM float64) float64 {
	if lengthMM <= 0 || widthMM <= 0 || heightMM <= 0 {
		return 0
	}
	v := decimal.NewFromFloat(lengthMM).
		Mul(decimal.NewFromFloat(widthMM)).
		Mul(decimal.NewFromFloat(heightMM)).
		Div(cbmDivisor)
	f, _ := v.Float64()
	return f
}

// ShipmentTotalCBM is unit cbm times the effective quantity of a
// shipment row. A missing or non-numeric pack ratio counts as 1.
func ShipmentTotalCBM(unitCBM, qty, packRatio float64) float64 {
	if unitCBM <= 0 || qty <= 0 {
		return 0
	}
	if packRatio <= 0 {
		packRatio = 1
	}
	v := decimal.NewFromFloat(unitCBM).
		Mul(decimal.NewFromFloat(qty).Div(decimal.NewFromFloat(packRatio)))
	f, _ := v.Float64()
	return f
}

// PackQty converts a raw feed quantity into cartons using the pack
// ratio (default 1).
func PackQty(qty, packRatio float64) float64 {
	if qty <= 0 {
		return 0
	}
	if packRatio <= 0 {
		packRatio = 1
	}
	v := decimal.NewFromFloat(qty).Div(decimal.NewFromFloat(packRatio))
	f, _ := v.Float64()
	return f
}

// TotalCBM is unit cbm times carton count, used for inbound and
// outbound lines.
func TotalCBM(unitCBM, cartons float64) float64 {
	if unitCBM <= 0 || cartons <= 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(unitCBM).
		Mul(decimal.NewFromFloat(cartons)).
		Float64()
	return f
}

// RequiredPallets projects pallet demand for one kind bucket:
// (aggregate cbm / base capacity) * 1.5. Empty buckets and unknown
// kinds project 0; the division is never attempted on them.
func RequiredPallets(kind string, totalCBM float64) float64 {
	base, ok := palletBaseCapacity[kind]
	if !ok || totalCBM <= 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(totalCBM).
		Div(base).
		Mul(palletSafetyFactor).
		Float64()
	return f
}

// PalletProjection maps every known pallet kind to its projected
// demand given per-kind aggregate CBM.
func PalletProjection(bucketCBM map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(palletBaseCapacity))
	for kind := range palletBaseCapacity {
		out[kind] = RequiredPallets(kind, bucketCBM[kind])
	}
	return out
}
