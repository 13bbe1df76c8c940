package main

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

type screenshotsJSON struct {
	Inspect         *string `json:"inspect"`
	InspectPlayside *string `json:"inspect_playside"`
	InspectBackside *string `json:"inspect_backside"`
}

type patternJSON struct {
	PlaysideBlue          float64 `json:"playside_blue"`
	PlaysidePurple        float64 `json:"playside_purple"`
	PlaysideGold          float64 `json:"playside_gold"`
	PlaysideContourBlue   int     `json:"playside_contour_blue"`
	PlaysideContourPurple int     `json:"playside_contour_purple"`
	BacksideBlue          float64 `json:"backside_blue"`
	BacksidePurple        float64 `json:"backside_purple"`
	BacksideGold          float64 `json:"backside_gold"`
	BacksideContourBlue   int     `json:"backside_contour_blue"`
	BacksideContourPurple int     `json:"backside_contour_purple"`

	Pattern     *int                           `json:"pattern,omitempty"`
	Quantity    *int                           `json:"quantity,omitempty"`
	Screenshots *domain.PatternDataScreenshots `json:"screenshots,omitempty"`
	Extra       *domain.PatternDataExtra       `json:"extra,omitempty"`
}

type saleJSON struct {
	BuffID           int64           `json:"buff_id"`
	CSFloat          string          `json:"csfloat"`
	Wear             float64         `json:"wear"`
	Type             string          `json:"type"`
	Pattern          int             `json:"pattern"`
	Price            float64         `json:"price"`
	Epoch            int64           `json:"epoch"`
	SteamInspectLink string          `json:"steam_inspect_link"`
	Origin           string          `json:"origin"`
	Screenshots      screenshotsJSON `json:"screenshots"`
	PatternData      *patternJSON    `json:"pattern_data,omitempty"`
}

// market generates a deterministic sales history per item. The same seed,
// anchor and size always produce the same data.
type market struct {
	seed    uint64
	anchor  time.Time
	perItem int
}

var origins = []domain.Origin{
	domain.OriginBuff, domain.OriginCSFloat, domain.OriginSkinBid,
	domain.OriginBroSkins, domain.OriginSkinport, domain.OriginC5Game,
}

func itemHash(item domain.Item) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(item))
	return h.Sum64()
}

// sales returns the history of item, newest first.
func (m *market) sales(item domain.Item) []saleJSON {
	r := rand.New(rand.NewPCG(m.seed, itemHash(item)))
	out := make([]saleJSON, m.perItem)

	epoch := m.anchor.Unix()
	for i := range out {
		epoch -= int64(r.IntN(48*60)+1) * 60
		pattern := r.IntN(domain.MaxPattern + 1)
		origin := origins[r.IntN(len(origins))]
		stats := m.pattern(item, pattern)

		typ := domain.TypeNormal
		if r.IntN(10) == 0 {
			typ = domain.TypeStatTrak
		}

		// Bluer patterns sell for more.
		price := 300 + 50*stats.PlaysideBlue*(0.5+r.Float64())
		if typ == domain.TypeStatTrak {
			price *= 1.2
		}

		s := saleJSON{
			BuffID:  int64(r.IntN(1_000_000) + 1),
			CSFloat: fmt.Sprintf("mock-%x", r.Uint32()),
			Wear:    math.Round((0.0001+r.Float64()*0.9998)*1e6) / 1e6,
			Type:    string(typ),
			Pattern: pattern,
			Price:   math.Round(price*100) / 100,
			Epoch:   epoch,
			SteamInspectLink: fmt.Sprintf(
				"steam://rungame/730/76561202255233023/+csgo_econ_action_preview%%20M%dA%dD%d",
				i, r.Uint32(), r.Uint32(),
			),
			Origin: string(origin),
		}
		s.Screenshots = screenshotsFor(origin, item, pattern, i)
		out[i] = s
	}
	return out
}

func screenshotsFor(origin domain.Origin, item domain.Item, pattern, i int) screenshotsJSON {
	link := func(side string) *string {
		s := fmt.Sprintf("https://mock.csbluegem.local/%s/%d/%d_%s.png", itemSlug(item), pattern, i, side)
		return &s
	}
	// CSFloat sales only carry side-specific links.
	if origin == domain.OriginCSFloat {
		return screenshotsJSON{InspectPlayside: link("playside"), InspectBackside: link("backside")}
	}
	return screenshotsJSON{Inspect: link("inspect")}
}

// pattern returns the coverage statistics of one pattern of item.
func (m *market) pattern(item domain.Item, pattern int) patternJSON {
	r := rand.New(rand.NewPCG(m.seed^uint64(pattern), itemHash(item)))

	coverage := func(scale float64) float64 {
		return math.Round(r.Float64()*scale*100) / 100
	}
	return patternJSON{
		PlaysideBlue:          coverage(90),
		PlaysidePurple:        coverage(40),
		PlaysideGold:          coverage(30),
		PlaysideContourBlue:   r.IntN(12),
		PlaysideContourPurple: r.IntN(8),
		BacksideBlue:          coverage(90),
		BacksidePurple:        coverage(40),
		BacksideGold:          coverage(30),
		BacksideContourBlue:   r.IntN(12),
		BacksideContourPurple: r.IntN(8),
	}
}

// patternEntry is a pattern data row with its optional fields filled in.
func (m *market) patternEntry(item domain.Item, pattern int, quantity *int) patternJSON {
	p := m.pattern(item, pattern)
	slug := itemSlug(item)
	p.Pattern = &pattern
	p.Quantity = quantity
	p.Screenshots = &domain.PatternDataScreenshots{
		CSBlueGemScreenshot: fmt.Sprintf("https://mock.csbluegem.local/%s/%d/screenshot.png", slug, pattern),
		AQOiled:             fmt.Sprintf("https://mock.csbluegem.local/%s/%d/aq_oiled.png", slug, pattern),
	}
	p.Extra = &domain.PatternDataExtra{
		SimilarPlayside: fmt.Sprintf("https://mock.csbluegem.local/similar/%s/%d/playside", slug, pattern),
		SimilarBackside: fmt.Sprintf("https://mock.csbluegem.local/similar/%s/%d/backside", slug, pattern),
		CSFloatLink:     fmt.Sprintf("https://csfloat.com/db?name=%s&paintSeed=%d", slug, pattern),
		Search:          fmt.Sprintf("https://mock.csbluegem.local/search?skin=%s&pattern=%d", slug, pattern),
	}
	return p
}

// priceCheck estimates a price from the pattern's blue coverage and wear.
func (m *market) priceCheck(item domain.Item, pattern int, wear float64) int {
	stats := m.pattern(item, pattern)
	return int(300 + 60*stats.PlaysideBlue + 30*stats.BacksideBlue*(1-wear))
}

func itemSlug(item domain.Item) string {
	b := []byte(item)
	for i, c := range b {
		if c == ' ' {
			b[i] = '_'
		}
	}
	return string(b)
}

func (p *patternJSON) coverage(t domain.FilterType) float64 {
	switch t {
	case domain.FilterPlaysideBlue:
		return p.PlaysideBlue
	case domain.FilterPlaysidePurple:
		return p.PlaysidePurple
	case domain.FilterPlaysideGold:
		return p.PlaysideGold
	case domain.FilterBacksideBlue:
		return p.BacksideBlue
	case domain.FilterBacksidePurple:
		return p.BacksidePurple
	case domain.FilterBacksideGold:
		return p.BacksideGold
	}
	return 0
}

// sortValue returns the value a pattern row is ordered by for key.
func (p *patternJSON) sortValue(key domain.SortKey) float64 {
	switch key {
	case domain.SortPlaysideContourBlue:
		return float64(p.PlaysideContourBlue)
	case domain.SortPlaysideContourPurple:
		return float64(p.PlaysideContourPurple)
	case domain.SortBacksideContourBlue:
		return float64(p.BacksideContourBlue)
	case domain.SortBacksideContourPurple:
		return float64(p.BacksideContourPurple)
	}
	return p.coverage(domain.FilterType(key))
}
