// Package watch runs recurring CSBlueGem searches on a cron schedule and
// reports sales that were not seen on the previous run.
package watch

import (
	"fmt"

	"github.com/donaldgifford/bluegem/internal/config"
	"github.com/donaldgifford/bluegem/pkg/bluegem"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// Watch is a named search run on a schedule.
type Watch struct {
	Name     string
	Item     domain.Item
	Schedule string
	Options  bluegem.SearchOptions
}

// FromConfig converts validated watch configuration into Watches. Results
// are always sorted newest first so the first sale is the latest one.
func FromConfig(cfgs []config.WatchConfig) ([]Watch, error) {
	watches := make([]Watch, 0, len(cfgs))
	for i := range cfgs {
		w, err := fromConfig(&cfgs[i])
		if err != nil {
			return nil, fmt.Errorf("watch %q: %w", cfgs[i].Name, err)
		}
		watches = append(watches, w)
	}
	return watches, nil
}

func fromConfig(c *config.WatchConfig) (Watch, error) {
	item, err := domain.ParseItem(c.Item)
	if err != nil {
		return Watch{}, err
	}

	opts := bluegem.SearchOptions{
		Sort:        domain.SortDate,
		Order:       domain.Desc,
		PatternData: c.PatternData,
	}
	if c.Currency != "" {
		cur, err := domain.ParseCurrency(c.Currency)
		if err != nil {
			return Watch{}, err
		}
		opts.Currency = cur
	}
	if c.Pattern != nil {
		opts.Pattern = bluegem.Int(*c.Pattern)
	}
	if c.Limit > 0 {
		opts.Limit = bluegem.Int(c.Limit)
	}

	return Watch{
		Name:     c.Name,
		Item:     item,
		Schedule: c.Schedule,
		Options:  opts,
	}, nil
}
