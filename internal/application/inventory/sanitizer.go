package inventory

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/marketops/backoffice/internal/domain/inventory"
)

// Query parameter names accepted by the inventory endpoints
const (
	ParamPage        = "page"
	ParamLimit       = "limit"
	ParamOffset      = "offset"
	ParamSearch      = "search"
	ParamVendor      = "vendor"
	ParamProductType = "productType"
	ParamLocation    = "location"
	ParamMinQuantity = "minQuantity"
	ParamMaxQuantity = "maxQuantity"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamSortBy      = "sortBy"
	ParamSortOrder   = "sortOrder"
	ParamIsActive    = "isActive"
)

// SanitizeQuery turns untrusted query parameters into bounded QueryOptions.
// It never fails: each malformed value falls back to its default or is left
// out. The second return value lists the optional filters that ended up set,
// formatted for diagnostics (search: "test", minQuantity: 10).
func SanitizeQuery(params url.Values) (inventory.QueryOptions, []string) {
	opts := inventory.DefaultQueryOptions()

	if page, ok := parseInt(params, ParamPage); ok && page >= 1 {
		opts.Page = page
	}

	if limit, ok := parseInt(params, ParamLimit); ok && limit >= 1 {
		opts.Limit = min(limit, inventory.MaxLimit)
	}

	if offset, ok := parseInt(params, ParamOffset); ok {
		opts.Offset = &offset
	}

	opts.Search = trimmed(params, ParamSearch)
	opts.Vendor = trimmed(params, ParamVendor)
	opts.ProductType = trimmed(params, ParamProductType)
	opts.Location = trimmed(params, ParamLocation)

	opts.MinQuantity = nonNegative(params, ParamMinQuantity)
	opts.MaxQuantity = nonNegative(params, ParamMaxQuantity)
	opts.MinPrice = nonNegative(params, ParamMinPrice)
	opts.MaxPrice = nonNegative(params, ParamMaxPrice)

	if sortBy := params.Get(ParamSortBy); sortBy != "" {
		if _, ok := inventory.LookupSortField(sortBy); ok {
			opts.SortBy = &sortBy
		}
	}

	switch order := inventory.SortOrder(params.Get(ParamSortOrder)); order {
	case inventory.SortAsc, inventory.SortDesc:
		opts.SortOrder = order
	}

	if params.Has(ParamIsActive) {
		active := params.Get(ParamIsActive) == "true"
		opts.IsActive = &active
	}

	return opts, AppliedFilters(opts)
}

// AppliedFilters describes the optional filters set on opts, in a fixed
// field order.
func AppliedFilters(opts inventory.QueryOptions) []string {
	applied := make([]string, 0)

	str := func(name string, v *string) {
		if v != nil {
			applied = append(applied, fmt.Sprintf("%s: %q", name, *v))
		}
	}
	num := func(name string, v *float64) {
		if v != nil {
			applied = append(applied, fmt.Sprintf("%s: %s", name, strconv.FormatFloat(*v, 'f', -1, 64)))
		}
	}

	str(ParamSearch, opts.Search)
	str(ParamVendor, opts.Vendor)
	str(ParamProductType, opts.ProductType)
	str(ParamLocation, opts.Location)
	num(ParamMinQuantity, opts.MinQuantity)
	num(ParamMaxQuantity, opts.MaxQuantity)
	num(ParamMinPrice, opts.MinPrice)
	num(ParamMaxPrice, opts.MaxPrice)
	if opts.IsActive != nil {
		applied = append(applied, fmt.Sprintf("%s: %t", ParamIsActive, *opts.IsActive))
	}

	return applied
}

func parseInt(params url.Values, key string) (int, bool) {
	raw := strings.TrimSpace(params.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func trimmed(params url.Values, key string) *string {
	s := strings.TrimSpace(params.Get(key))
	if s == "" {
		return nil
	}
	return &s
}

func nonNegative(params url.Values, key string) *float64 {
	raw := strings.TrimSpace(params.Get(key))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}
