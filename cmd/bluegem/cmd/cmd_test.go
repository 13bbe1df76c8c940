package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

func TestResolveItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arg     string
		want    domain.Item
		wantErr string
	}{
		{name: "exact", arg: "Karambit", want: domain.Karambit},
		{name: "exact ignores case", arg: "five-seven", want: domain.FiveSeveN},
		{name: "exact wins over fuzzy", arg: "bayonet", want: domain.Bayonet},
		{name: "unique fuzzy prefix", arg: "karam", want: domain.Karambit},
		{name: "unique fuzzy abbreviation", arg: "m9", want: domain.M9Bayonet},
		{name: "no match", arg: "zzz", wantErr: `unknown item "zzz"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveItem(tt.arg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankItems(t *testing.T) {
	t.Parallel()

	ranked := rankItems("knife")
	require.NotEmpty(t, ranked)
	for _, item := range ranked {
		assert.Contains(t, string(item), "Knife")
	}

	assert.Empty(t, rankItems("zzz"))
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    domain.Filter
		wantErr string
	}{
		{
			name: "valid",
			in:   "playside_blue=10:40",
			want: domain.Filter{Type: domain.FilterPlaysideBlue, Min: 10, Max: 40},
		},
		{
			name: "decimals and case",
			in:   "BACKSIDE_GOLD=0.5:99.5",
			want: domain.Filter{Type: domain.FilterBacksideGold, Min: 0.5, Max: 99.5},
		},
		{name: "missing equals", in: "playside_blue", wantErr: "want TYPE=MIN:MAX"},
		{name: "missing colon", in: "playside_blue=10", wantErr: "want TYPE=MIN:MAX"},
		{name: "unknown type", in: "playside_green=1:2", wantErr: "unknown filter type"},
		{name: "bad min", in: "playside_blue=x:2", wantErr: "min:"},
		{name: "bad max", in: "playside_blue=1:y", wantErr: "max:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFilter(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := parseDate("2024-03-15")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	got, err = parseDate("2024-03-15T10:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)))

	_, err = parseDate("15/03/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want YYYY-MM-DD or RFC 3339")
}

func TestSearchOptionsFromFlags(t *testing.T) {
	t.Parallel()

	t.Run("unset flags are not sent", func(t *testing.T) {
		t.Parallel()

		cmd := searchCmd()
		require.NoError(t, cmd.Flags().Parse(nil))

		opts, err := searchOptionsFromFlags(cmd.Flags())
		require.NoError(t, err)
		assert.Nil(t, opts.Pattern)
		assert.Nil(t, opts.Limit)
		assert.Nil(t, opts.WearMin)
		assert.Empty(t, opts.Filters)

		params, err := opts.Encode(domain.Karambit)
		require.NoError(t, err)
		assert.Equal(t, "skin=Karambit", params.Encode())
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		cmd := searchCmd()
		require.NoError(t, cmd.Flags().Parse([]string{
			"--currency", "eur",
			"--type", "stattrak",
			"--pattern", "0",
			"--price-min", "100",
			"--price-max", "2000.5",
			"--wear-min", "0.01",
			"--wear-max", "0.07",
			"--sort", "price",
			"--order", "asc",
			"--origin", "csfloat",
			"--date-min", "2024-01-01",
			"--date-max", "2024-02-01T00:00:00Z",
			"--limit", "5",
			"--offset", "10",
			"--pattern-data",
			"--filter", "playside_blue=10:40",
			"--filter", "backside_gold=0:5",
		}))

		opts, err := searchOptionsFromFlags(cmd.Flags())
		require.NoError(t, err)

		assert.Equal(t, domain.EUR, opts.Currency)
		assert.Equal(t, domain.TypeStatTrak, opts.Type)
		require.NotNil(t, opts.Pattern)
		assert.Equal(t, 0, *opts.Pattern, "an explicit zero pattern is kept")
		assert.InDelta(t, 2000.5, *opts.PriceMax, 1e-9)
		assert.Equal(t, domain.SortPrice, opts.Sort)
		assert.Equal(t, domain.Asc, opts.Order)
		assert.Equal(t, domain.OriginCSFloat, opts.Origin)
		assert.True(t, opts.DateMin.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 5, *opts.Limit)
		assert.Equal(t, 10, *opts.Offset)
		assert.True(t, opts.PatternData)
		assert.Len(t, opts.Filters, 2)

		_, err = opts.Encode(domain.Karambit)
		require.NoError(t, err)
	})

	t.Run("invalid enum", func(t *testing.T) {
		t.Parallel()

		cmd := searchCmd()
		require.NoError(t, cmd.Flags().Parse([]string{"--origin", "steam"}))

		_, err := searchOptionsFromFlags(cmd.Flags())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown origin "steam"`)
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()

		cmd := searchCmd()
		require.NoError(t, cmd.Flags().Parse([]string{"--date-max", "yesterday"}))

		_, err := searchOptionsFromFlags(cmd.Flags())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--date-max")
	})
}

func TestPatternOptionsFromFlags(t *testing.T) {
	t.Parallel()

	cmd := patternsCmd()
	require.NoError(t, cmd.Flags().Parse([]string{
		"--pattern", "387", "--sort", "playside_blue", "--order", "desc", "--quantity", "--limit", "3",
	}))

	opts, err := patternOptionsFromFlags(cmd.Flags())
	require.NoError(t, err)

	params, err := opts.Encode(domain.Karambit)
	require.NoError(t, err)
	assert.Equal(t, "387", params.Get("pattern"))
	assert.Equal(t, "playside_blue", params.Get("sort"))
	assert.Equal(t, "DESC", params.Get("order"))
	assert.Equal(t, "true", params.Get("quantity"))
	assert.Equal(t, "3", params.Get("limit"))
	assert.Empty(t, params.Get("offset"))
}

func TestPrintSalesTable(t *testing.T) {
	t.Parallel()

	resp := &bluegem.SearchResponse{
		Meta: domain.SearchMeta{Size: 2, Total: 40},
		Sales: []domain.Sale{
			{
				Wear:        0.0712,
				Type:        domain.TypeNormal,
				Pattern:     387,
				Price:       decimal.RequireFromString("1234.5"),
				Timestamp:   time.Date(2024, 3, 15, 22, 10, 0, 0, time.UTC),
				Origin:      domain.OriginCSFloat,
				Screenshots: &domain.Screenshots{InspectPlayside: "https://s.csfloat.com/m/1/playside.png"},
				PatternData: &domain.PatternData{PlaysideBlue: 71.234, BacksideBlue: 40},
			},
			{
				Wear:      0.5,
				Type:      domain.TypeStatTrak,
				Pattern:   12,
				Price:     decimal.NewFromInt(99),
				Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Origin:    domain.OriginBuff,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printSalesTable(&buf, resp))

	out := buf.String()
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "2024-03-15")
	assert.Contains(t, out, "1234.50")
	assert.Contains(t, out, "71.23%")
	assert.Contains(t, out, "https://s.csfloat.com/m/1/playside.png")
	assert.Contains(t, out, "99.00")
	assert.Contains(t, out, "Showing 2 of 40 sales")
}

func TestPrintPatternTable(t *testing.T) {
	t.Parallel()

	pattern, quantity := 661, 7
	resp := &bluegem.PatternDataResponse{
		Meta: domain.SearchMeta{Size: 1, Total: 1},
		PatternData: []domain.PatternData{{
			Pattern:             &pattern,
			Quantity:            &quantity,
			PlaysideBlue:        80.5,
			PlaysideContourBlue: 3,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, printPatternTable(&buf, resp))

	out := buf.String()
	assert.Contains(t, out, "661")
	assert.Contains(t, out, "80.50")
	assert.Contains(t, out, "3/0")
	assert.Contains(t, out, "Showing 1 of 1 patterns")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

// TestPriceCheckCommand runs the command tree end to end. It mutates the
// root command and viper, so it does not run in parallel.
func TestPriceCheckCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pricecheck", r.URL.Path)
		assert.Equal(t, "Karambit", r.URL.Query().Get("skin"))
		assert.Equal(t, "387", r.URL.Query().Get("pattern"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("1500"))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetArgs([]string{
		"price-check", "karam",
		"--pattern", "387",
		"--wear", "0.07",
		"--base-url", srv.URL,
		"--log-level", "error",
		"-o", "json",
	})
	t.Cleanup(func() {
		root.SetOut(nil)
		root.SetArgs(nil)
	})

	require.NoError(t, root.ExecuteContext(t.Context()))

	var got priceCheckResult
	require.NoError(t, json.NewDecoder(strings.NewReader(out.String())).Decode(&got))
	assert.Equal(t, priceCheckResult{Item: domain.Karambit, Pattern: 387, Wear: 0.07, Price: 1500}, got)
}
