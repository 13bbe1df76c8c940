package domain

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ErrIntegrity is returned when a payload that decoded successfully breaks a
// guarantee the API makes about its contents.
var ErrIntegrity = errors.New("invalid data was received from the API")

// SearchMeta describes the size of a result page.
type SearchMeta struct {
	Size  int `json:"size"`
	Total int `json:"total"`
}

// Screenshots holds the inspect links attached to a Sale. Empty strings mean
// the API did not provide the link.
type Screenshots struct {
	Inspect         string `json:"inspect,omitempty"`
	InspectPlayside string `json:"inspect_playside,omitempty"`
	InspectBackside string `json:"inspect_backside,omitempty"`
}

// InspectLink returns an inspect link regardless of where the sale came from.
// CSFloat sales only carry playside/backside links, so the playside link is
// used when the primary one is missing. If neither is present the API broke
// its own contract and ErrIntegrity is returned.
func (s *Screenshots) InspectLink() (string, error) {
	if s.Inspect != "" {
		return s.Inspect, nil
	}
	if s.InspectPlayside != "" {
		return s.InspectPlayside, nil
	}
	return "", ErrIntegrity
}

// Sale is one historical transaction.
type Sale struct {
	BuffID           int64           `json:"buff_id"`
	CSFloat          string          `json:"csfloat"`
	Wear             float64         `json:"wear"`
	Type             ItemType        `json:"type"`
	Pattern          int             `json:"pattern"`
	Price            decimal.Decimal `json:"price"`
	Timestamp        time.Time       `json:"timestamp"`
	SteamInspectLink string          `json:"steam_inspect_link"`
	Origin           Origin          `json:"origin"`
	Screenshots      *Screenshots    `json:"screenshots,omitempty"`
	PatternData      *PatternData    `json:"pattern_data,omitempty"`
}

// Date returns the UTC calendar day the sale happened on, at midnight.
func (s *Sale) Date() time.Time {
	t := s.Timestamp.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Epoch returns the sale time in Unix seconds.
func (s *Sale) Epoch() int64 {
	return s.Timestamp.Unix()
}

// DaysSince returns the number of whole days elapsed since the sale.
func (s *Sale) DaysSince() int {
	return s.DaysSinceAt(time.Now())
}

// DaysSinceAt returns the number of whole days between the sale and now,
// rounded down.
func (s *Sale) DaysSinceAt(now time.Time) int {
	return int(math.Floor(now.Sub(s.Timestamp).Hours() / 24))
}

// IsStatTrak reports whether the sold item was a StatTrak variant.
func (s *Sale) IsStatTrak() bool {
	return s.Type == TypeStatTrak
}
