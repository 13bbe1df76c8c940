package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <item>",
		Short: "Search recorded sales of an item",
		Example: `  bluegem search karambit --pattern 387
  bluegem search "Five-SeveN" --origin csfloat --sort price --order asc
  bluegem search karambit --filter playside_blue=40:100 --pattern-data
  bluegem search karambit --pattern 387 --all --max-pages 5`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	f := cmd.Flags()
	f.String("currency", "", "price currency (USD, EUR, ...)")
	f.String("type", "", "item type (normal, stattrak)")
	f.Int("pattern", 0, "pattern seed (0-1000)")
	f.Float64("price-min", 0, "minimum price")
	f.Float64("price-max", 0, "maximum price")
	f.Float64("wear-min", 0, "minimum wear")
	f.Float64("wear-max", 0, "maximum wear")
	f.String("sort", "", "sort key (date, price, wear, pattern, playside_blue, ...)")
	f.String("order", "", "sort order (asc, desc)")
	f.String("origin", "", "marketplace (buff, csfloat, skinbid, broskins, skinport, c5game)")
	f.String("date-min", "", "earliest sale date (YYYY-MM-DD or RFC 3339)")
	f.String("date-max", "", "latest sale date (YYYY-MM-DD or RFC 3339)")
	f.Int("limit", 0, "maximum number of sales")
	f.Int("offset", 0, "number of sales to skip")
	f.Bool("pattern-data", false, "include pattern statistics for each sale")
	f.StringArray("filter", nil, "coverage filter TYPE=MIN:MAX (repeatable)")
	f.Bool("all", false, "follow pages until results run out (--limit caps the total)")
	f.Int("max-pages", 10, "maximum pages to fetch with --all")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	item, err := resolveItem(args[0])
	if err != nil {
		return err
	}
	opts, err := searchOptionsFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	maxPages, _ := cmd.Flags().GetInt("max-pages")

	return withClient(cmd, func(c *bluegem.Client) error {
		var (
			resp *bluegem.SearchResponse
			err  error
		)
		if all {
			resp, err = searchAll(cmd.Context(), c, item, opts, maxPages)
		} else {
			resp, err = c.Search(cmd.Context(), item, opts)
		}
		if err != nil {
			return err
		}
		if jsonOutput() {
			return outputJSON(cmd.OutOrStdout(), resp)
		}
		return printSalesTable(cmd.OutOrStdout(), resp)
	})
}

func searchAll(
	ctx context.Context,
	api bluegem.API,
	item domain.Item,
	opts *bluegem.SearchOptions,
	maxPages int,
) (*bluegem.SearchResponse, error) {
	res, err := bluegem.NewPaginator(api, bluegem.WithMaxPages(maxPages)).Paginate(ctx, item, opts)
	if err != nil {
		return nil, err
	}
	return &bluegem.SearchResponse{
		Meta:  domain.SearchMeta{Size: len(res.Sales), Total: res.Total},
		Sales: res.Sales,
	}, nil
}

// searchOptionsFromFlags builds options from the flags the user set. Flags
// left at their defaults are not sent.
func searchOptionsFromFlags(f *pflag.FlagSet) (*bluegem.SearchOptions, error) {
	var (
		opts bluegem.SearchOptions
		err  error
	)

	if s, _ := f.GetString("currency"); s != "" {
		if opts.Currency, err = domain.ParseCurrency(s); err != nil {
			return nil, err
		}
	}
	if s, _ := f.GetString("type"); s != "" {
		if opts.Type, err = domain.ParseItemType(s); err != nil {
			return nil, err
		}
	}
	if s, _ := f.GetString("origin"); s != "" {
		if opts.Origin, err = domain.ParseOrigin(s); err != nil {
			return nil, err
		}
	}
	if opts.Sort, opts.Order, err = sortFromFlags(f); err != nil {
		return nil, err
	}

	opts.Pattern = changedInt(f, "pattern")
	opts.Limit = changedInt(f, "limit")
	opts.Offset = changedInt(f, "offset")
	opts.PriceMin = changedFloat(f, "price-min")
	opts.PriceMax = changedFloat(f, "price-max")
	opts.WearMin = changedFloat(f, "wear-min")
	opts.WearMax = changedFloat(f, "wear-max")
	opts.PatternData, _ = f.GetBool("pattern-data")

	if s, _ := f.GetString("date-min"); s != "" {
		if opts.DateMin, err = parseDate(s); err != nil {
			return nil, fmt.Errorf("--date-min: %w", err)
		}
	}
	if s, _ := f.GetString("date-max"); s != "" {
		if opts.DateMax, err = parseDate(s); err != nil {
			return nil, fmt.Errorf("--date-max: %w", err)
		}
	}

	if opts.Filters, err = filtersFromFlags(f); err != nil {
		return nil, err
	}
	return &opts, nil
}

func sortFromFlags(f *pflag.FlagSet) (domain.SortKey, domain.Order, error) {
	var (
		key   domain.SortKey
		order domain.Order
		err   error
	)
	if s, _ := f.GetString("sort"); s != "" {
		if key, err = domain.ParseSortKey(s); err != nil {
			return "", "", err
		}
	}
	if s, _ := f.GetString("order"); s != "" {
		if order, err = domain.ParseOrder(s); err != nil {
			return "", "", err
		}
	}
	return key, order, nil
}

func filtersFromFlags(f *pflag.FlagSet) ([]domain.Filter, error) {
	raw, _ := f.GetStringArray("filter")
	filters := make([]domain.Filter, 0, len(raw))
	for _, s := range raw {
		filter, err := parseFilter(s)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}
	return filters, nil
}

// parseFilter parses "playside_blue=10:40". Range validity is checked by the
// client when the request is built.
func parseFilter(s string) (domain.Filter, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok {
		return domain.Filter{}, fmt.Errorf("filter %q: want TYPE=MIN:MAX", s)
	}
	typ, err := domain.ParseFilterType(name)
	if err != nil {
		return domain.Filter{}, fmt.Errorf("filter %q: %w", s, err)
	}
	lo, hi, ok := strings.Cut(bounds, ":")
	if !ok {
		return domain.Filter{}, fmt.Errorf("filter %q: want TYPE=MIN:MAX", s)
	}
	minV, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return domain.Filter{}, fmt.Errorf("filter %q: min: %w", s, err)
	}
	maxV, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return domain.Filter{}, fmt.Errorf("filter %q: max: %w", s, err)
	}
	return domain.Filter{Type: typ, Min: minV, Max: maxV}, nil
}

// parseDate accepts a calendar day (UTC midnight) or an RFC 3339 time.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

func changedInt(f *pflag.FlagSet, name string) *int {
	if !f.Changed(name) {
		return nil
	}
	v, _ := f.GetInt(name)
	return &v
}

func changedFloat(f *pflag.FlagSet, name string) *float64 {
	if !f.Changed(name) {
		return nil
	}
	v, _ := f.GetFloat64(name)
	return &v
}
