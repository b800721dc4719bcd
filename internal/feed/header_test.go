package feed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-wms-feed/internal/feed"
)

func TestHeaderNormalizerResolvesAliases(t *testing.T) {
	input := strings.Join([]string{
		"PO Number,Item No,Parent PO,Origin,Vndr Cd,Delivery Dt,Qty,Qty per Pck,MC CBM",
		"PO1,IT1,PP1,VN,SUP1,2024-05-01,100,4,0.5",
	}, "\n")

	n := &feed.HeaderNormalizer{Aliases: feed.BBRAliases}
	rows, skipped, err := n.Parse(context.Background(), strings.NewReader(input))

	assert.Nil(t, err)
	assert.Equal(t, 0, skipped)
	assert.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "PO1", row.Get(feed.FieldPO))
	assert.Equal(t, "IT1", row.Get(feed.FieldItem))
	assert.Equal(t, "PP1", row.Get(feed.FieldParentPO))
	assert.Equal(t, "VN", row.Get(feed.FieldOrigin))
	assert.Equal(t, "SUP1", row.Get(feed.FieldSupplier))
	assert.Equal(t, "2024-05-01", row.Get(feed.FieldDeliveryDate))
	assert.Equal(t, 100.0, row.Float(feed.FieldQty, 0))
	assert.Equal(t, 4.0, row.Float(feed.FieldPackRatio, 1))
	assert.Equal(t, 0.5, row.Float(feed.FieldUnitCBM, 0))
}

func TestHeaderNormalizerAlternateSpellings(t *testing.T) {
	input := strings.Join([]string{
		"po,sku,parentpo,quantity",
		"PO2,IT2,PP2,7",
	}, "\n")

	n := &feed.HeaderNormalizer{Aliases: feed.BBRAliases}
	rows, _, err := n.Parse(context.Background(), strings.NewReader(input))

	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "PO2", rows[0].Get(feed.FieldPO))
	assert.Equal(t, "IT2", rows[0].Get(feed.FieldItem))
	assert.Equal(t, 7.0, rows[0].Float(feed.FieldQty, 0))
}

func TestHeaderNormalizerMissingColumnReadsAbsent(t *testing.T) {
	input := strings.Join([]string{
		"po,item",
		"PO3,IT3",
	}, "\n")

	n := &feed.HeaderNormalizer{Aliases: feed.BBRAliases}
	rows, _, err := n.Parse(context.Background(), strings.NewReader(input))

	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.False(t, rows[0].Has(feed.FieldOrigin))

	// absent numeric fields fall back, they never error
	assert.Equal(t, 1.0, rows[0].Float(feed.FieldPackRatio, 1))
}

func TestHeaderNormalizerSkipsEmptyRows(t *testing.T) {
	input := strings.Join([]string{
		"po,item,qty",
		"PO4,IT4,5",
		",,",
		"PO5,IT5,notanumber",
	}, "\n")

	n := &feed.HeaderNormalizer{Aliases: feed.BBRAliases}
	rows, skipped, err := n.Parse(context.Background(), strings.NewReader(input))

	assert.Nil(t, err)
	assert.Equal(t, 1, skipped)
	assert.Len(t, rows, 2)

	// non-numeric cell degrades to the fallback instead of dropping the row
	assert.Equal(t, 0.0, rows[1].Float(feed.FieldQty, 0))
}

func TestHeaderNormalizerEmptyFile(t *testing.T) {
	n := &feed.HeaderNormalizer{Aliases: feed.BBRAliases}
	rows, skipped, err := n.Parse(context.Background(), strings.NewReader(""))

	assert.Nil(t, err)
	assert.Equal(t, 0, skipped)
	assert.Len(t, rows, 0)
}
