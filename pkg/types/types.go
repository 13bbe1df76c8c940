// Package domain defines the value types returned by the CSBlueGem API client:
// sale records, pattern statistics, search metadata and the closed
// enumerations used on the wire.
package domain

import (
	"fmt"
	"strings"
)

// Item identifies an item that can be queried from the API. The value is
// the wire string sent as the "skin" parameter.
type Item string

// Item constants.
const (
	AK47           Item = "AK-47"
	Bayonet        Item = "Bayonet"
	BowieKnife     Item = "Bowie Knife"
	ButterflyKnife Item = "Butterfly Knife"
	ClassicKnife   Item = "Classic Knife"
	FalchionKnife  Item = "Falchion Knife"
	FiveSeveN      Item = "Five-SeveN"
	FlipKnife      Item = "Flip Knife"
	GutKnife       Item = "Gut Knife"
	HuntsmanKnife  Item = "Huntsman Knife"
	HydraGloves    Item = "Hydra Gloves"
	Karambit       Item = "Karambit"
	KukriKnife     Item = "Kukri Knife"
	M9Bayonet      Item = "M9 Bayonet"
	MAC10          Item = "MAC-10"
	NavajaKnife    Item = "Navaja Knife"
	NomadKnife     Item = "Nomad Knife"
	ParacordKnife  Item = "Paracord Knife"
	ShadowDaggers  Item = "Shadow Daggers"
	SkeletonKnife  Item = "Skeleton Knife"
	StilettoKnife  Item = "Stiletto Knife"
	SurvivalKnife  Item = "Survival Knife"
	TalonKnife     Item = "Talon Knife"
	UrsusKnife     Item = "Ursus Knife"
)

var items = []Item{
	AK47, Bayonet, BowieKnife, ButterflyKnife, ClassicKnife, FalchionKnife,
	FiveSeveN, FlipKnife, GutKnife, HuntsmanKnife, HydraGloves, Karambit,
	KukriKnife, M9Bayonet, MAC10, NavajaKnife, NomadKnife, ParacordKnife,
	ShadowDaggers, SkeletonKnife, StilettoKnife, SurvivalKnife, TalonKnife,
	UrsusKnife,
}

// Items returns every queryable item in a stable order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Valid reports whether i is a known item.
func (i Item) Valid() bool {
	for _, it := range items {
		if it == i {
			return true
		}
	}
	return false
}

// ParseItem resolves a wire string to an Item, ignoring case.
func ParseItem(s string) (Item, error) {
	for _, it := range items {
		if strings.EqualFold(string(it), strings.TrimSpace(s)) {
			return it, nil
		}
	}
	return "", fmt.Errorf("unknown item %q", s)
}

// Currency is a currency code accepted by the search endpoint.
type Currency string

// Currency constants.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
	CNY Currency = "CNY"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case USD, EUR, JPY, GBP, CNY, AUD, CAD:
		return true
	}
	return false
}

// ParseCurrency parses a currency code, ignoring case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown currency %q", s)
	}
	return c, nil
}

// SortKey controls how query results are sorted.
type SortKey string

// Sort key constants.
const (
	SortPlaysideBlue          SortKey = "playside_blue"
	SortPlaysidePurple        SortKey = "playside_purple"
	SortPlaysideGold          SortKey = "playside_gold"
	SortBacksideBlue          SortKey = "backside_blue"
	SortBacksidePurple        SortKey = "backside_purple"
	SortBacksideGold          SortKey = "backside_gold"
	SortPlaysideContourBlue   SortKey = "playside_contour_blue"
	SortPlaysideContourPurple SortKey = "playside_contour_purple"
	SortBacksideContourBlue   SortKey = "backside_contour_blue"
	SortBacksideContourPurple SortKey = "backside_contour_purple"
	SortPattern               SortKey = "pattern"
	SortWear                  SortKey = "wear"
	SortDate                  SortKey = "date"
	SortPrice                 SortKey = "price"
)

var sortKeys = []SortKey{
	SortPlaysideBlue, SortPlaysidePurple, SortPlaysideGold,
	SortBacksideBlue, SortBacksidePurple, SortBacksideGold,
	SortPlaysideContourBlue, SortPlaysideContourPurple,
	SortBacksideContourBlue, SortBacksideContourPurple,
	SortPattern, SortWear, SortDate, SortPrice,
}

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	for _, sk := range sortKeys {
		if sk == k {
			return true
		}
	}
	return false
}

// ParseSortKey parses a sort key wire value.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

// Order is the direction results are ordered in.
type Order string

// Order constants.
const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// Valid reports whether o is ASC or DESC.
func (o Order) Valid() bool {
	return o == Asc || o == Desc
}

// ParseOrder parses "asc" or "desc", ignoring case.
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToUpper(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("unknown order %q", s)
	}
	return o, nil
}

// ItemType distinguishes StatTrak items from normal ones.
type ItemType string

// Item type constants.
const (
	TypeNormal   ItemType = "normal"
	TypeStatTrak ItemType = "stattrak"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == TypeNormal || t == TypeStatTrak
}

// ParseItemType parses an item type wire value.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown item type %q", s)
	}
	return t, nil
}

// Origin is the marketplace a sale was recorded on.
type Origin string

// Origin constants.
const (
	OriginBuff     Origin = "Buff"
	OriginCSFloat  Origin = "CSFloat"
	OriginSkinBid  Origin = "SkinBid"
	OriginBroSkins Origin = "BroSkins"
	OriginSkinport Origin = "Skinport"
	OriginC5Game   Origin = "c5game"
)

var origins = []Origin{
	OriginBuff, OriginCSFloat, OriginSkinBid, OriginBroSkins, OriginSkinport, OriginC5Game,
}

// Valid reports whether o is a known marketplace.
func (o Origin) Valid() bool {
	for _, v := range origins {
		if v == o {
			return true
		}
	}
	return false
}

// ParseOrigin resolves a marketplace name, ignoring case.
func ParseOrigin(s string) (Origin, error) {
	for _, v := range origins {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown origin %q", s)
}

// FilterType is the coverage statistic a Filter constrains.
type FilterType string

// Filter type constants.
const (
	FilterPlaysideBlue   FilterType = "playside_blue"
	FilterPlaysidePurple FilterType = "playside_purple"
	FilterPlaysideGold   FilterType = "playside_gold"
	FilterBacksideBlue   FilterType = "backside_blue"
	FilterBacksidePurple FilterType = "backside_purple"
	FilterBacksideGold   FilterType = "backside_gold"
)

// Valid reports whether t is a known filter type.
func (t FilterType) Valid() bool {
	switch t {
	case FilterPlaysideBlue, FilterPlaysidePurple, FilterPlaysideGold,
		FilterBacksideBlue, FilterBacksidePurple, FilterBacksideGold:
		return true
	}
	return false
}

// ParseFilterType parses a filter type wire value.
func ParseFilterType(s string) (FilterType, error) {
	t := FilterType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown filter type %q", s)
	}
	return t, nil
}
