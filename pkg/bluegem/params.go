package bluegem

import (
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// Int returns a pointer to v, for optional integer options.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for optional float options.
func Float(v float64) *float64 { return &v }

// SearchOptions are the optional parameters of a search. Unset fields are
// not sent, so the API applies its own defaults.
type SearchOptions struct {
	// Currency prices are returned in. API default: USD.
	Currency domain.Currency
	// Type restricts results to normal or StatTrak items. Unset: any.
	Type domain.ItemType
	// Pattern restricts results to one pattern in [0, 1000]. Unset: any.
	Pattern *int
	// PriceMin and PriceMax bound the sale price.
	PriceMin *float64
	PriceMax *float64
	// WearMin and WearMax bound the float, each in (0, 1].
	WearMin *float64
	WearMax *float64
	// Sort selects the sort key. API default: date.
	Sort domain.SortKey
	// Order selects the sort direction. API default: DESC.
	Order domain.Order
	// Origin restricts results to one marketplace. Unset: any.
	Origin domain.Origin
	// DateMin and DateMax bound the sale time. Zero: unbounded.
	DateMin time.Time
	DateMax time.Time
	// Limit caps the number of results. Unset: API limit.
	Limit *int
	// Offset skips results for paging. Unset: 0.
	Offset *int
	// PatternData embeds pattern statistics in each sale when true.
	PatternData bool
	// Filters constrain coverage statistics.
	Filters []domain.Filter
}

// PatternDataOptions are the optional parameters of a pattern data lookup.
type PatternDataOptions struct {
	// Pattern restricts results to one pattern. Unset: all patterns.
	Pattern *int
	// Sort selects the sort key. API default: pattern.
	Sort domain.SortKey
	// Order selects the sort direction. API default: DESC.
	Order domain.Order
	// Quantity includes the number of recorded sales per pattern when true.
	Quantity bool
	// Offset skips results for paging.
	Offset *int
	// Limit caps the number of results.
	Limit *int
	// Filters constrain coverage statistics.
	Filters []domain.Filter
}

// Encode validates the options and returns them as query parameters,
// including the required "skin" parameter for item.
func (o *SearchOptions) Encode(item domain.Item) (url.Values, error) {
	params, err := itemParams(item)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return params, nil
	}

	if o.Currency != "" {
		if !o.Currency.Valid() {
			return nil, badArgument("currency", "unknown currency %q", o.Currency)
		}
		params.Set("currency", string(o.Currency))
	}

	if o.Type != "" {
		if !o.Type.Valid() {
			return nil, badArgument("type", "unknown item type %q", o.Type)
		}
		params.Set("type", string(o.Type))
	}

	if o.Pattern != nil {
		if !domain.ValidPattern(o.Pattern) {
			return nil, badArgument("pattern", "must be %d <= N <= %d, got %d",
				domain.MinPattern, domain.MaxPattern, *o.Pattern)
		}
		params.Set("pattern", strconv.Itoa(*o.Pattern))
	}

	if o.PriceMin != nil && o.PriceMax != nil && *o.PriceMin > *o.PriceMax {
		return nil, badArgument("price_min", "greater than price_max")
	}
	setFloat(params, "price_min", o.PriceMin)
	setFloat(params, "price_max", o.PriceMax)

	if o.WearMin != nil && !domain.ValidWear(*o.WearMin) {
		return nil, badArgument("wear_min", "not in range (0, 1]: %g", *o.WearMin)
	}
	if o.WearMax != nil && !domain.ValidWear(*o.WearMax) {
		return nil, badArgument("wear_max", "not in range (0, 1]: %g", *o.WearMax)
	}
	if o.WearMin != nil && o.WearMax != nil && *o.WearMin > *o.WearMax {
		return nil, badArgument("wear_min", "greater than wear_max")
	}
	setFloat(params, "wear_min", o.WearMin)
	setFloat(params, "wear_max", o.WearMax)

	if err := setSortOrder(params, o.Sort, o.Order); err != nil {
		return nil, err
	}

	if o.Origin != "" {
		if !o.Origin.Valid() {
			return nil, badArgument("origin", "unknown origin %q", o.Origin)
		}
		params.Set("origin", string(o.Origin))
	}

	if !o.DateMin.IsZero() && !o.DateMax.IsZero() && o.DateMin.After(o.DateMax) {
		return nil, badArgument("date_min", "after date_max")
	}
	setTime(params, "date_min", o.DateMin)
	setTime(params, "date_max", o.DateMax)

	setInt(params, "limit", o.Limit)
	setInt(params, "offset", o.Offset)

	if o.PatternData {
		params.Set("pattern_data", "true")
	}

	if err := setFilters(params, o.Filters); err != nil {
		return nil, err
	}

	return params, nil
}

// Encode validates the options and returns them as query parameters,
// including the required "skin" parameter for item.
func (o *PatternDataOptions) Encode(item domain.Item) (url.Values, error) {
	params, err := itemParams(item)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return params, nil
	}

	if o.Pattern != nil {
		if !domain.ValidPattern(o.Pattern) {
			return nil, badArgument("pattern", "must be %d <= N <= %d, got %d",
				domain.MinPattern, domain.MaxPattern, *o.Pattern)
		}
		params.Set("pattern", strconv.Itoa(*o.Pattern))
	}

	if err := setSortOrder(params, o.Sort, o.Order); err != nil {
		return nil, err
	}

	if o.Quantity {
		params.Set("quantity", "true")
	}

	setInt(params, "offset", o.Offset)
	setInt(params, "limit", o.Limit)

	if err := setFilters(params, o.Filters); err != nil {
		return nil, err
	}

	return params, nil
}

// priceCheckParams validates and encodes the arguments of a price check.
func priceCheckParams(item domain.Item, pattern int, wear float64) (url.Values, error) {
	if !domain.ValidPriceCheckPattern(pattern) {
		return nil, badArgument("pattern", "price check pattern must be %d <= N <= %d, got %d",
			domain.MinPattern, domain.MaxPattern, pattern)
	}
	if !domain.ValidWear(wear) {
		return nil, badArgument("wear", "not in range (0, 1]: %g", wear)
	}

	params, err := itemParams(item)
	if err != nil {
		return nil, err
	}
	params.Set("pattern", strconv.Itoa(pattern))
	params.Set("wear", formatFloat(wear))
	return params, nil
}

func itemParams(item domain.Item) (url.Values, error) {
	if !item.Valid() {
		return nil, badArgument("item", "unknown item %q", item)
	}
	params := url.Values{}
	params.Set("skin", string(item))
	return params, nil
}

func setSortOrder(params url.Values, sort domain.SortKey, order domain.Order) error {
	if sort != "" {
		if !sort.Valid() {
			return badArgument("sort", "unknown sort key %q", sort)
		}
		params.Set("sort", string(sort))
	}
	if order != "" {
		if !order.Valid() {
			return badArgument("order", "unknown order %q", order)
		}
		params.Set("order", string(order))
	}
	return nil
}

func setFilters(params url.Values, filters []domain.Filter) error {
	for _, f := range filters {
		if !f.Type.Valid() || !f.Valid() {
			return badArgument("filters", "a provided filter is invalid: %s", f)
		}
		params.Set(string(f.Type)+"_min", formatFloat(f.Min))
		params.Set(string(f.Type)+"_max", formatFloat(f.Max))
	}
	return nil
}

func setInt(params url.Values, key string, v *int) {
	if v != nil {
		params.Set(key, strconv.Itoa(*v))
	}
}

func setFloat(params url.Values, key string, v *float64) {
	if v != nil {
		params.Set(key, formatFloat(*v))
	}
}

func setTime(params url.Values, key string, t time.Time) {
	if !t.IsZero() {
		params.Set(key, strconv.FormatInt(t.Unix(), 10))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
