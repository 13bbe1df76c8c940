package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type metaJSON struct {
	Size  int `json:"size"`
	Total int `json:"total"`
}

type searchResponse struct {
	Meta  metaJSON   `json:"meta"`
	Sales []saleJSON `json:"sales"`
}

type patternDataResponse struct {
	Meta metaJSON      `json:"meta"`
	Data []patternJSON `json:"data"`
}

// badRequest mirrors the API's error envelope.
func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": fmt.Sprintf(format, args...)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func newMux(logger *slog.Logger, m *market) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", searchHandler(logger, m))
	mux.HandleFunc("GET /patterndata", patternDataHandler(logger, m))
	mux.HandleFunc("GET /pricecheck", priceCheckHandler(logger, m))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found: " + r.URL.Path})
	})
	return mux
}

// query wraps url.Values with typed, error-collecting accessors.
type query struct {
	v   url.Values
	err error
}

func (q *query) float(key string) *float64 {
	s := q.v.Get(key)
	if s == "" || q.err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		q.err = fmt.Errorf("invalid %s: %q", key, s)
		return nil
	}
	return &f
}

func (q *query) int(key string) *int {
	s := q.v.Get(key)
	if s == "" || q.err != nil {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		q.err = fmt.Errorf("invalid %s: %q", key, s)
		return nil
	}
	return &n
}

func (q *query) item() domain.Item {
	item, err := domain.ParseItem(q.v.Get("skin"))
	if err != nil && q.err == nil {
		q.err = fmt.Errorf("invalid skin: %q", q.v.Get("skin"))
	}
	return item
}

func (q *query) sortOrder(def domain.SortKey) (domain.SortKey, bool) {
	key := def
	if s := q.v.Get("sort"); s != "" {
		k, err := domain.ParseSortKey(s)
		if err != nil && q.err == nil {
			q.err = err
		}
		key = k
	}
	desc := true
	if s := q.v.Get("order"); s != "" {
		o, err := domain.ParseOrder(s)
		if err != nil && q.err == nil {
			q.err = err
		}
		desc = o != domain.Asc
	}
	return key, desc
}

// filters returns the coverage ranges requested as <type>_min/<type>_max.
func (q *query) filters() map[domain.FilterType][2]float64 {
	out := map[domain.FilterType][2]float64{}
	for _, t := range []domain.FilterType{
		domain.FilterPlaysideBlue, domain.FilterPlaysidePurple, domain.FilterPlaysideGold,
		domain.FilterBacksideBlue, domain.FilterBacksidePurple, domain.FilterBacksideGold,
	} {
		lo, hi := q.float(string(t)+"_min"), q.float(string(t)+"_max")
		if lo == nil && hi == nil {
			continue
		}
		r := [2]float64{0, 100}
		if lo != nil {
			r[0] = *lo
		}
		if hi != nil {
			r[1] = *hi
		}
		out[t] = r
	}
	return out
}

func (q *query) page() (offset, limit int) {
	limit = defaultLimit
	if n := q.int("limit"); n != nil && *n > 0 {
		limit = min(*n, maxLimit)
	}
	if n := q.int("offset"); n != nil && *n > 0 {
		offset = *n
	}
	return offset, limit
}

func matchesFilters(p *patternJSON, filters map[domain.FilterType][2]float64) bool {
	for t, r := range filters {
		if v := p.coverage(t); v < r[0] || v > r[1] {
			return false
		}
	}
	return true
}

func paginate[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	return rows[offset:min(offset+limit, len(rows))]
}

func searchHandler(logger *slog.Logger, m *market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := &query{v: r.URL.Query()}
		item := q.item()
		pattern := q.int("pattern")
		wearMin, wearMax := q.float("wear_min"), q.float("wear_max")
		priceMin, priceMax := q.float("price_min"), q.float("price_max")
		dateMin, dateMax := q.int("date_min"), q.int("date_max")
		filters := q.filters()
		key, desc := q.sortOrder(domain.SortDate)
		offset, limit := q.page()
		typ, origin := q.v.Get("type"), q.v.Get("origin")
		withPatternData := q.v.Get("pattern_data") == "true"
		if q.err != nil {
			badRequest(w, "%v", q.err)
			return
		}

		var matched []saleJSON
		for _, s := range m.sales(item) {
			stats := m.pattern(item, s.Pattern)
			switch {
			case pattern != nil && s.Pattern != *pattern,
				typ != "" && s.Type != typ,
				origin != "" && s.Origin != origin,
				wearMin != nil && s.Wear < *wearMin,
				wearMax != nil && s.Wear > *wearMax,
				priceMin != nil && s.Price < *priceMin,
				priceMax != nil && s.Price > *priceMax,
				dateMin != nil && s.Epoch < int64(*dateMin),
				dateMax != nil && s.Epoch > int64(*dateMax),
				!matchesFilters(&stats, filters):
				continue
			}
			if withPatternData {
				s.PatternData = &stats
			}
			matched = append(matched, s)
		}

		slices.SortStableFunc(matched, func(a, b saleJSON) int {
			c := cmp.Compare(saleSortValue(m, item, &a, key), saleSortValue(m, item, &b, key))
			if desc {
				return -c
			}
			return c
		})

		page := paginate(matched, offset, limit)
		writeJSON(w, http.StatusOK, searchResponse{
			Meta:  metaJSON{Size: len(page), Total: len(matched)},
			Sales: page,
		})
		logger.Info("search", "skin", item, "matched", len(matched), "returned", len(page), "offset", offset, "limit", limit)
	}
}

func saleSortValue(m *market, item domain.Item, s *saleJSON, key domain.SortKey) float64 {
	switch key {
	case domain.SortDate:
		return float64(s.Epoch)
	case domain.SortPrice:
		return s.Price
	case domain.SortWear:
		return s.Wear
	case domain.SortPattern:
		return float64(s.Pattern)
	}
	stats := m.pattern(item, s.Pattern)
	return stats.sortValue(key)
}

func patternDataHandler(logger *slog.Logger, m *market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := &query{v: r.URL.Query()}
		item := q.item()
		pattern := q.int("pattern")
		filters := q.filters()
		key, desc := q.sortOrder(domain.SortPattern)
		offset, limit := q.page()
		withQuantity := q.v.Get("quantity") == "true"
		if q.err != nil {
			badRequest(w, "%v", q.err)
			return
		}

		var counts map[int]int
		if withQuantity {
			counts = make(map[int]int)
			for _, s := range m.sales(item) {
				counts[s.Pattern]++
			}
		}

		var rows []patternJSON
		for p := domain.MinPattern; p <= domain.MaxPattern; p++ {
			if pattern != nil && p != *pattern {
				continue
			}
			var quantity *int
			if withQuantity {
				n := counts[p]
				quantity = &n
			}
			row := m.patternEntry(item, p, quantity)
			if !matchesFilters(&row, filters) {
				continue
			}
			rows = append(rows, row)
		}

		slices.SortStableFunc(rows, func(a, b patternJSON) int {
			var c int
			if key == domain.SortPattern {
				c = cmp.Compare(*a.Pattern, *b.Pattern)
			} else {
				c = cmp.Compare(a.sortValue(key), b.sortValue(key))
			}
			if desc {
				return -c
			}
			return c
		})

		page := paginate(rows, offset, limit)
		writeJSON(w, http.StatusOK, patternDataResponse{
			Meta: metaJSON{Size: len(page), Total: len(rows)},
			Data: page,
		})
		logger.Info("pattern data", "skin", item, "matched", len(rows), "returned", len(page))
	}
}

func priceCheckHandler(logger *slog.Logger, m *market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := &query{v: r.URL.Query()}
		item := q.item()
		pattern := q.int("pattern")
		wear := q.float("wear")
		switch {
		case q.err != nil:
			badRequest(w, "%v", q.err)
			return
		case pattern == nil || wear == nil:
			badRequest(w, "pattern and wear are required")
			return
		case *pattern < domain.MinPattern || *pattern > domain.MaxPattern:
			badRequest(w, "pattern out of range: %d", *pattern)
			return
		}

		price := m.priceCheck(item, *pattern, *wear)
		writeJSON(w, http.StatusOK, price)
		logger.Info("price check", "skin", item, "pattern", *pattern, "wear", *wear, "price", price)
	}
}
