package bluegem

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// Bounds of int as float64. math.MaxInt itself rounds up to 2^63 when
// converted, so values at or above it do not fit.
const (
	maxIntFloat = float64(math.MaxInt)
	minIntFloat = float64(math.MinInt)
)

// SearchResponse is the result of a search.
type SearchResponse struct {
	Meta  domain.SearchMeta `json:"meta"`
	Sales []domain.Sale     `json:"sales"`
}

// PatternDataResponse is the result of a pattern data lookup.
type PatternDataResponse struct {
	Meta        domain.SearchMeta    `json:"meta"`
	PatternData []domain.PatternData `json:"data"`
}

// Wire types. Pointers distinguish a missing or null field from a zero value.

type apiMeta struct {
	Size  *int `json:"size"`
	Total *int `json:"total"`
}

type apiSearchResponse struct {
	Meta  *apiMeta   `json:"meta"`
	Sales *[]apiSale `json:"sales"`
}

type apiPatternDataResponse struct {
	Meta *apiMeta          `json:"meta"`
	Data *[]apiPatternData `json:"data"`
}

type apiScreenshots struct {
	Inspect         *string `json:"inspect"`
	InspectPlayside *string `json:"inspect_playside"`
	InspectBackside *string `json:"inspect_backside"`
}

type apiSale struct {
	BuffID           *int64           `json:"buff_id"`
	CSFloat          *string          `json:"csfloat"`
	Wear             *float64         `json:"wear"`
	Type             *string          `json:"type"`
	Pattern          *int             `json:"pattern"`
	Price            *decimal.Decimal `json:"price"`
	Epoch            *float64         `json:"epoch"`
	SteamInspectLink *string          `json:"steam_inspect_link"`
	Origin           *string          `json:"origin"`
	Screenshots      *apiScreenshots  `json:"screenshots"`
	PatternData      *apiPatternData  `json:"pattern_data"`
}

type apiPatternData struct {
	PlaysideBlue          *float64 `json:"playside_blue"`
	PlaysidePurple        *float64 `json:"playside_purple"`
	PlaysideGold          *float64 `json:"playside_gold"`
	PlaysideContourBlue   *float64 `json:"playside_contour_blue"`
	PlaysideContourPurple *float64 `json:"playside_contour_purple"`
	BacksideBlue          *float64 `json:"backside_blue"`
	BacksidePurple        *float64 `json:"backside_purple"`
	BacksideGold          *float64 `json:"backside_gold"`
	BacksideContourBlue   *float64 `json:"backside_contour_blue"`
	BacksideContourPurple *float64 `json:"backside_contour_purple"`

	Pattern     *int                           `json:"pattern"`
	Quantity    *int                           `json:"quantity"`
	Screenshots *domain.PatternDataScreenshots `json:"screenshots"`
	Extra       *domain.PatternDataExtra       `json:"extra"`
}

// required pairs a JSON field name with whether it was present.
type required struct {
	name    string
	present bool
}

func checkRequired(prefix string, fields ...required) error {
	for _, f := range fields {
		if !f.present {
			return &DecodeError{Field: prefix + f.name}
		}
	}
	return nil
}

func decodeSearch(p *payload) (*SearchResponse, error) {
	var raw apiSearchResponse
	if err := unmarshalPayload(p, &raw); err != nil {
		return nil, err
	}
	if err := checkRequired("",
		required{"meta", raw.Meta != nil},
		required{"sales", raw.Sales != nil},
	); err != nil {
		return nil, err
	}

	meta, err := toMeta(raw.Meta)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.Sale, 0, len(*raw.Sales))
	for i := range *raw.Sales {
		s, err := toSale(&(*raw.Sales)[i], fmt.Sprintf("sales[%d].", i))
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}

	return &SearchResponse{Meta: meta, Sales: sales}, nil
}

func decodePatternData(p *payload) (*PatternDataResponse, error) {
	var raw apiPatternDataResponse
	if err := unmarshalPayload(p, &raw); err != nil {
		return nil, err
	}
	if err := checkRequired("",
		required{"meta", raw.Meta != nil},
		required{"data", raw.Data != nil},
	); err != nil {
		return nil, err
	}

	meta, err := toMeta(raw.Meta)
	if err != nil {
		return nil, err
	}

	data := make([]domain.PatternData, 0, len(*raw.Data))
	for i := range *raw.Data {
		pd, err := toPatternData(&(*raw.Data)[i], fmt.Sprintf("data[%d].", i))
		if err != nil {
			return nil, err
		}
		data = append(data, *pd)
	}

	return &PatternDataResponse{Meta: meta, PatternData: data}, nil
}

// decodePriceCheck accepts a bare JSON number or numeric text and truncates
// it to an integer.
func decodePriceCheck(p *payload) (int, error) {
	var (
		v   float64
		err error
	)
	switch p.kind {
	case payloadJSON:
		n, ok := p.json.(json.Number)
		if !ok {
			return 0, &DecodeError{Err: fmt.Errorf("expected a number, got %T", p.json)}
		}
		v, err = n.Float64()
	case payloadText:
		v, err = strconv.ParseFloat(strings.TrimSpace(p.text), 64)
	default:
		return 0, &DecodeError{Err: errors.New("expected a number, got binary data")}
	}
	if err != nil {
		return 0, &DecodeError{Err: fmt.Errorf("parsing price: %w", err)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &DecodeError{Err: fmt.Errorf("price is not finite: %v", v)}
	}
	if v >= maxIntFloat || v < minIntFloat {
		return 0, &DecodeError{Err: fmt.Errorf("price out of range: %g", v)}
	}
	return int(v), nil
}

func unmarshalPayload(p *payload, dst any) error {
	if p.kind != payloadJSON {
		return &DecodeError{Err: errors.New("expected a JSON response")}
	}
	if _, ok := p.json.(map[string]any); !ok {
		return &DecodeError{Err: fmt.Errorf("expected a JSON object, got %T", p.json)}
	}
	if err := json.Unmarshal(p.raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &DecodeError{Field: typeErr.Field, Err: err}
		}
		return &DecodeError{Err: err}
	}
	return nil
}

func toMeta(m *apiMeta) (domain.SearchMeta, error) {
	if err := checkRequired("meta.",
		required{"size", m.Size != nil},
		required{"total", m.Total != nil},
	); err != nil {
		return domain.SearchMeta{}, err
	}
	if *m.Size < 0 || *m.Total < 0 {
		return domain.SearchMeta{}, &DecodeError{Field: "meta", Err: errors.New("negative size or total")}
	}
	if *m.Total < *m.Size {
		return domain.SearchMeta{}, &DecodeError{
			Field: "meta.total",
			Err:   fmt.Errorf("total %d is less than size %d", *m.Total, *m.Size),
		}
	}
	return domain.SearchMeta{Size: *m.Size, Total: *m.Total}, nil
}

func toSale(s *apiSale, prefix string) (domain.Sale, error) {
	if err := checkRequired(prefix,
		required{"buff_id", s.BuffID != nil},
		required{"csfloat", s.CSFloat != nil},
		required{"wear", s.Wear != nil},
		required{"type", s.Type != nil},
		required{"pattern", s.Pattern != nil},
		required{"price", s.Price != nil},
		required{"epoch", s.Epoch != nil},
		required{"steam_inspect_link", s.SteamInspectLink != nil},
		required{"origin", s.Origin != nil},
	); err != nil {
		return domain.Sale{}, err
	}

	itemType, err := domain.ParseItemType(*s.Type)
	if err != nil {
		return domain.Sale{}, &DecodeError{Field: prefix + "type", Err: err}
	}
	origin, err := domain.ParseOrigin(*s.Origin)
	if err != nil {
		return domain.Sale{}, &DecodeError{Field: prefix + "origin", Err: err}
	}
	if !domain.ValidWear(*s.Wear) {
		return domain.Sale{}, &DecodeError{Field: prefix + "wear", Err: fmt.Errorf("out of range: %g", *s.Wear)}
	}
	if !domain.ValidPattern(s.Pattern) {
		return domain.Sale{}, &DecodeError{Field: prefix + "pattern", Err: fmt.Errorf("out of range: %d", *s.Pattern)}
	}

	sale := domain.Sale{
		BuffID:           *s.BuffID,
		CSFloat:          *s.CSFloat,
		Wear:             *s.Wear,
		Type:             itemType,
		Pattern:          *s.Pattern,
		Price:            *s.Price,
		Timestamp:        epochToTime(*s.Epoch),
		SteamInspectLink: *s.SteamInspectLink,
		Origin:           origin,
	}

	if s.Screenshots != nil {
		sale.Screenshots = &domain.Screenshots{
			Inspect:         deref(s.Screenshots.Inspect),
			InspectPlayside: deref(s.Screenshots.InspectPlayside),
			InspectBackside: deref(s.Screenshots.InspectBackside),
		}
	}

	if s.PatternData != nil {
		pd, err := toPatternData(s.PatternData, prefix+"pattern_data.")
		if err != nil {
			return domain.Sale{}, err
		}
		sale.PatternData = pd
	}

	return sale, nil
}

func toPatternData(d *apiPatternData, prefix string) (*domain.PatternData, error) {
	if err := checkRequired(prefix,
		required{"playside_blue", d.PlaysideBlue != nil},
		required{"playside_purple", d.PlaysidePurple != nil},
		required{"playside_gold", d.PlaysideGold != nil},
		required{"playside_contour_blue", d.PlaysideContourBlue != nil},
		required{"playside_contour_purple", d.PlaysideContourPurple != nil},
		required{"backside_blue", d.BacksideBlue != nil},
		required{"backside_purple", d.BacksidePurple != nil},
		required{"backside_gold", d.BacksideGold != nil},
		required{"backside_contour_blue", d.BacksideContourBlue != nil},
		required{"backside_contour_purple", d.BacksideContourPurple != nil},
	); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"playside_blue", *d.PlaysideBlue},
		{"playside_purple", *d.PlaysidePurple},
		{"playside_gold", *d.PlaysideGold},
		{"backside_blue", *d.BacksideBlue},
		{"backside_purple", *d.BacksidePurple},
		{"backside_gold", *d.BacksideGold},
	} {
		if f.v < 0 || f.v > 100 {
			return nil, &DecodeError{Field: prefix + f.name, Err: fmt.Errorf("percentage out of range: %g", f.v)}
		}
	}

	pd := &domain.PatternData{
		PlaysideBlue:   *d.PlaysideBlue,
		PlaysidePurple: *d.PlaysidePurple,
		PlaysideGold:   *d.PlaysideGold,
		BacksideBlue:   *d.BacksideBlue,
		BacksidePurple: *d.BacksidePurple,
		BacksideGold:   *d.BacksideGold,
		Pattern:        d.Pattern,
		Quantity:       d.Quantity,
		Screenshots:    d.Screenshots,
		Extra:          d.Extra,
	}

	for _, f := range []struct {
		name string
		v    float64
		dst  *int
	}{
		{"playside_contour_blue", *d.PlaysideContourBlue, &pd.PlaysideContourBlue},
		{"playside_contour_purple", *d.PlaysideContourPurple, &pd.PlaysideContourPurple},
		{"backside_contour_blue", *d.BacksideContourBlue, &pd.BacksideContourBlue},
		{"backside_contour_purple", *d.BacksideContourPurple, &pd.BacksideContourPurple},
	} {
		n, err := toCount(f.v)
		if err != nil {
			return nil, &DecodeError{Field: prefix + f.name, Err: err}
		}
		*f.dst = n
	}

	return pd, nil
}

// toCount converts a JSON number holding a region count to an int.
func toCount(v float64) (int, error) {
	switch {
	case v < 0:
		return 0, fmt.Errorf("negative count: %g", v)
	case v != math.Trunc(v):
		return 0, fmt.Errorf("count is not a whole number: %g", v)
	case v >= maxIntFloat:
		return 0, fmt.Errorf("count out of range: %g", v)
	}
	return int(v), nil
}

func epochToTime(epoch float64) time.Time {
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
