package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// itemSource implements fuzzy.Source over item names.
type itemSource []domain.Item

func (s itemSource) Len() int { return len(s) }

func (s itemSource) String(i int) string { return strings.ToLower(string(s[i])) }

// rankItems returns the items matching query, best match first.
func rankItems(query string) []domain.Item {
	items := itemSource(domain.Items())
	matches := fuzzy.FindFrom(strings.ToLower(strings.TrimSpace(query)), items)

	ranked := make([]domain.Item, len(matches))
	for i, m := range matches {
		ranked[i] = items[m.Index]
	}
	return ranked
}

// resolveItem maps a user-typed name to an item: an exact (case-insensitive)
// name first, then the single best fuzzy match.
func resolveItem(arg string) (domain.Item, error) {
	if item, err := domain.ParseItem(arg); err == nil {
		return item, nil
	}

	items := itemSource(domain.Items())
	matches := fuzzy.FindFrom(strings.ToLower(strings.TrimSpace(arg)), items)
	switch {
	case len(matches) == 0:
		return "", fmt.Errorf("unknown item %q (run `bluegem items` for the list)", arg)
	case len(matches) == 1 || matches[0].Score > matches[1].Score:
		return items[matches[0].Index], nil
	}

	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Score == matches[0].Score {
			candidates = append(candidates, string(items[m.Index]))
		}
	}
	return "", fmt.Errorf("ambiguous item %q: could be %s", arg, strings.Join(candidates, ", "))
}

func itemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items [query]",
		Short: "List supported items",
		Long:  "Lists every item the API knows. With a query, lists fuzzy matches best first.",
		Example: `  bluegem items
  bluegem items karam`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := domain.Items()
			if len(args) == 1 {
				items = rankItems(args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), items)
			}
			return printItems(cmd.OutOrStdout(), items)
		},
	}
}

func printItems(w io.Writer, items []domain.Item) error {
	tw := newTabWriter(w)
	for _, item := range items {
		tw.writef("%s\n", item)
	}
	return tw.finish()
}
