package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize converts a raw upstream record into an InventoryItem. It never
// fails: unparsable or negative numbers become 0, missing strings become
// empty (except Location), and IsActive defaults to true.
func Normalize(raw RawRecord) InventoryItem {
	quantity := intField(raw, KeyQuantity)
	allocated := intField(raw, KeyQuantityAllocated)

	supplier := quantity + allocated
	if _, ok := raw[KeySupplierStockLevel]; ok {
		supplier = intField(raw, KeySupplierStockLevel)
	}

	location := stringField(raw, KeyLocation)
	if location == "" {
		location = DefaultLocation
	}

	return InventoryItem{
		SKU:                stringField(raw, KeySKU),
		ProductName:        stringField(raw, KeyProductName),
		Vendor:             stringField(raw, KeyVendor),
		ProductType:        stringField(raw, KeyProductType),
		Quantity:           quantity,
		QuantityAllocated:  allocated,
		SupplierStockLevel: supplier,
		Price:              floatField(raw, KeyPrice),
		Cost:               floatField(raw, KeyCost),
		Location:           location,
		IsActive:           boolField(raw, KeyIsActive, true),
	}
}

// NormalizeAll normalizes every record, preserving order.
func NormalizeAll(records []RawRecord) []InventoryItem {
	items := make([]InventoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, Normalize(r))
	}
	return items
}

func stringField(raw RawRecord, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func floatField(raw RawRecord, key string) float64 {
	f, ok := toFloat(raw[key])
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func intField(raw RawRecord, key string) int {
	return int(math.Trunc(floatField(raw, key)))
}

func boolField(raw RawRecord, key string, def bool) bool {
	switch v := raw[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// toFloat accepts every numeric kind the JSON and XML decoders can produce, as
// well as numeric strings.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
