package bluegem

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

func TestSearchOptions_Encode(t *testing.T) {
	t.Parallel()

	dateMin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dateMax := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		opts    *SearchOptions
		want    url.Values
		wantArg string
	}{
		{
			name: "nil options send only the item",
			opts: nil,
			want: url.Values{"skin": {"Karambit"}},
		},
		{
			name: "empty options send only the item",
			opts: &SearchOptions{},
			want: url.Values{"skin": {"Karambit"}},
		},
		{
			name: "every option",
			opts: &SearchOptions{
				Currency:    domain.EUR,
				Type:        domain.TypeStatTrak,
				Pattern:     Int(661),
				PriceMin:    Float(100),
				PriceMax:    Float(2500.5),
				WearMin:     Float(0.01),
				WearMax:     Float(0.07),
				Sort:        domain.SortPrice,
				Order:       domain.Asc,
				Origin:      domain.OriginCSFloat,
				DateMin:     dateMin,
				DateMax:     dateMax,
				Limit:       Int(25),
				Offset:      Int(0),
				PatternData: true,
				Filters: []domain.Filter{
					{Type: domain.FilterPlaysideBlue, Min: 40, Max: 100},
					{Type: domain.FilterBacksideGold, Min: 0, Max: 5.5},
				},
			},
			want: url.Values{
				"skin":              {"Karambit"},
				"currency":          {"EUR"},
				"type":              {"stattrak"},
				"pattern":           {"661"},
				"price_min":         {"100"},
				"price_max":         {"2500.5"},
				"wear_min":          {"0.01"},
				"wear_max":          {"0.07"},
				"sort":              {"price"},
				"order":             {"ASC"},
				"origin":            {"CSFloat"},
				"date_min":          {"1704067200"},
				"date_max":          {"1719748800"},
				"limit":             {"25"},
				"offset":            {"0"},
				"pattern_data":      {"true"},
				"playside_blue_min": {"40"},
				"playside_blue_max": {"100"},
				"backside_gold_min": {"0"},
				"backside_gold_max": {"5.5"},
			},
		},
		{
			name: "pattern data false is omitted",
			opts: &SearchOptions{PatternData: false, Limit: Int(5)},
			want: url.Values{"skin": {"Karambit"}, "limit": {"5"}},
		},
		{
			name:    "pattern above range",
			opts:    &SearchOptions{Pattern: Int(1001)},
			wantArg: "pattern",
		},
		{
			name:    "negative pattern",
			opts:    &SearchOptions{Pattern: Int(-1)},
			wantArg: "pattern",
		},
		{
			name:    "zero wear min",
			opts:    &SearchOptions{WearMin: Float(0)},
			wantArg: "wear_min",
		},
		{
			name:    "wear max above one",
			opts:    &SearchOptions{WearMax: Float(1.0000001)},
			wantArg: "wear_max",
		},
		{
			name:    "wear min above wear max",
			opts:    &SearchOptions{WearMin: Float(0.5), WearMax: Float(0.2)},
			wantArg: "wear_min",
		},
		{
			name:    "price min above price max",
			opts:    &SearchOptions{PriceMin: Float(50), PriceMax: Float(10)},
			wantArg: "price_min",
		},
		{
			name:    "date min after date max",
			opts:    &SearchOptions{DateMin: dateMax, DateMax: dateMin},
			wantArg: "date_min",
		},
		{
			name:    "unknown currency",
			opts:    &SearchOptions{Currency: "BTC"},
			wantArg: "currency",
		},
		{
			name:    "unknown origin",
			opts:    &SearchOptions{Origin: "Steam"},
			wantArg: "origin",
		},
		{
			name:    "unknown sort key",
			opts:    &SearchOptions{Sort: "rarity"},
			wantArg: "sort",
		},
		{
			name: "invalid filter",
			opts: &SearchOptions{Filters: []domain.Filter{
				{Type: domain.FilterPlaysideBlue, Min: 10, Max: 20},
				{Type: domain.FilterPlaysidePurple, Min: 50, Max: 50},
			}},
			wantArg: "filters",
		},
		{
			name: "filter with unknown type",
			opts: &SearchOptions{Filters: []domain.Filter{
				{Type: "playside_green", Min: 10, Max: 20},
			}},
			wantArg: "filters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.opts.Encode(domain.Karambit)
			if tt.wantArg != "" {
				require.ErrorIs(t, err, ErrBadArgument)
				var argErr *ArgumentError
				require.ErrorAs(t, err, &argErr)
				assert.Equal(t, tt.wantArg, argErr.Argument)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchOptions_Encode_InvalidFilterNamed(t *testing.T) {
	t.Parallel()

	opts := &SearchOptions{Filters: []domain.Filter{
		{Type: domain.FilterBacksideBlue, Min: -1, Max: 50},
	}}
	_, err := opts.Encode(domain.Karambit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Filter(type=backside_blue, min=-1, max=50)")
}

func TestSearchOptions_Encode_UnknownItem(t *testing.T) {
	t.Parallel()

	_, err := (&SearchOptions{}).Encode("Desert Eagle")
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "item", argErr.Argument)
}

// Encoding then reading back the parameters yields exactly the supplied
// values and nothing else.
func TestSearchOptions_Encode_RoundTrip(t *testing.T) {
	t.Parallel()

	opts := &SearchOptions{
		Pattern: Int(0),
		WearMax: Float(1),
		Origin:  domain.OriginBuff,
	}

	got, err := opts.Encode(domain.FiveSeveN)
	require.NoError(t, err)

	decoded, err := url.ParseQuery(got.Encode())
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"skin":     {"Five-SeveN"},
		"pattern":  {"0"},
		"wear_max": {"1"},
		"origin":   {"Buff"},
	}, decoded)
	for _, key := range []string{"currency", "sort", "order", "limit", "offset", "pattern_data"} {
		assert.NotContains(t, decoded, key)
	}
}

func TestPatternDataOptions_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    *PatternDataOptions
		want    url.Values
		wantArg string
	}{
		{
			name: "nil options",
			want: url.Values{"skin": {"Gut Knife"}},
		},
		{
			name: "every option",
			opts: &PatternDataOptions{
				Pattern:  Int(387),
				Sort:     domain.SortPlaysideContourBlue,
				Order:    domain.Desc,
				Quantity: true,
				Offset:   Int(50),
				Limit:    Int(10),
				Filters:  []domain.Filter{{Type: domain.FilterPlaysidePurple, Min: 1, Max: 2}},
			},
			want: url.Values{
				"skin":                {"Gut Knife"},
				"pattern":             {"387"},
				"sort":                {"playside_contour_blue"},
				"order":               {"DESC"},
				"quantity":            {"true"},
				"offset":              {"50"},
				"limit":               {"10"},
				"playside_purple_min": {"1"},
				"playside_purple_max": {"2"},
			},
		},
		{
			name:    "invalid pattern",
			opts:    &PatternDataOptions{Pattern: Int(5000)},
			wantArg: "pattern",
		},
		{
			name:    "unknown order",
			opts:    &PatternDataOptions{Order: "sideways"},
			wantArg: "order",
		},
		{
			name:    "invalid filter",
			opts:    &PatternDataOptions{Filters: []domain.Filter{{Type: domain.FilterBacksideGold, Min: 0, Max: 101}}},
			wantArg: "filters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.opts.Encode(domain.GutKnife)
			if tt.wantArg != "" {
				var argErr *ArgumentError
				require.ErrorAs(t, err, &argErr)
				assert.Equal(t, tt.wantArg, argErr.Argument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceCheckParams(t *testing.T) {
	t.Parallel()

	got, err := priceCheckParams(domain.ClassicKnife, 22, 0.24301231231)
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"skin":    {"Classic Knife"},
		"pattern": {"22"},
		"wear":    {"0.24301231231"},
	}, got)

	_, err = priceCheckParams(domain.ClassicKnife, 1001, 0.5)
	require.ErrorIs(t, err, ErrBadArgument)
	assert.Contains(t, err.Error(), "pattern")

	_, err = priceCheckParams(domain.ClassicKnife, 10, 0)
	require.ErrorIs(t, err, ErrBadArgument)
	assert.Contains(t, err.Error(), "wear")
}
