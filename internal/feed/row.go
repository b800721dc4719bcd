package feed

import "go-wms-feed/internal/utils"

// Row is one canonical feed row: resolved field name -> trimmed cell
// value. Fields that had no matching header are simply absent.
type Row map[string]string

func (r Row) Get(field string) string {
	return r[field]
}

func (r Row) Has(field string) bool {
	v, ok := r[field]
	return ok && v != ""
}

// Float applies the permissive numeric cast: missing or non-numeric
// cells become the fallback, never an error.
func (r Row) Float(field string, fallback float64) float64 {
	v, ok := r[field]
	if !ok || v == "" {
		return fallback
	}
	return utils.ToFloat(v, fallback)
}
