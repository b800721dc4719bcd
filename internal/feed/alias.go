package feed

// Canonical field names shared by the header-based feeds.
const (
	FieldPO           = "po"
	FieldItem         = "item"
	FieldParentPO     = "parent_po"
	FieldOrigin       = "origin"
	FieldSupplier     = "supplier"
	FieldDeliveryDate = "delivery_date"
	FieldQty          = "qty"
	FieldPackRatio    = "pack_ratio"
	FieldUnitCBM      = "unit_cbm"
	FieldSKU          = "sku"
	FieldChildPO      = "child_po"
	FieldCarton       = "carton"
	FieldContainer    = "container"
	FieldDateRcv      = "date_rcv"
	FieldLabour       = "labour"
	FieldPackingList  = "packing_list"
)

// AliasTable maps a canonical field to the header spellings the
// upstream exports use for it. Headers are matched after trimming and
// lowercasing; the first alias found in the file wins.
type AliasTable map[string][]string

// BBRAliases covers the periodic bulk shipment feed.
var BBRAliases = AliasTable{
	FieldPO:           {"po number", "po", "ppo"},
	FieldItem:         {"item no", "item", "sku"},
	FieldParentPO:     {"parent po", "parentpo"},
	FieldOrigin:       {"origin"},
	FieldSupplier:     {"vndr cd", "supplier", "mancc"},
	FieldDeliveryDate: {"delivery dt", "delivery date", "deliverydate"},
	FieldQty:          {"qty", "quantity"},
	FieldPackRatio:    {"qty per pck", "qty/pck", "pack ratio"},
	FieldUnitCBM:      {"mc cbm", "cbm"},
}

// OutboundAliases covers the picking/outbound feed.
var OutboundAliases = AliasTable{
	FieldPO:      {"ppo", "po number", "po"},
	FieldSKU:     {"sku", "item", "barcode"},
	FieldChildPO: {"child po", "childpo"},
	FieldCarton:  {"sum of carton", "quantity", "carton", "qty"},
}

// InboundAliases covers the receiving feed.
var InboundAliases = AliasTable{
	FieldPackingList: {"packing list", "packinglistno", "packing"},
	FieldPO:          {"po number", "po", "ppo"},
	FieldSKU:         {"sku", "item", "barcode"},
	FieldCarton:      {"carton", "quantity", "qty"},
	FieldContainer:   {"container", "contxe", "cont"},
	FieldDateRcv:     {"date", "datercv", "date received"},
	FieldLabour:      {"labour", "labor"},
}
