package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns <item>",
		Aliases: []string{"pattern-data"},
		Short:   "Show pattern statistics of an item",
		Example: `  bluegem patterns karambit --pattern 387
  bluegem patterns karambit --sort playside_blue --limit 10 --quantity`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(args[0])
			if err != nil {
				return err
			}
			opts, err := patternOptionsFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			return withClient(cmd, func(c *bluegem.Client) error {
				resp, err := c.PatternData(cmd.Context(), item, opts)
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), resp)
				}
				return printPatternTable(cmd.OutOrStdout(), resp)
			})
		},
	}

	f := cmd.Flags()
	f.Int("pattern", 0, "pattern seed (0-1000)")
	f.String("sort", "", "sort key (pattern, playside_blue, backside_gold, ...)")
	f.String("order", "", "sort order (asc, desc)")
	f.Bool("quantity", false, "include the number of recorded sales per pattern")
	f.Int("limit", 0, "maximum number of patterns")
	f.Int("offset", 0, "number of patterns to skip")
	f.StringArray("filter", nil, "coverage filter TYPE=MIN:MAX (repeatable)")

	return cmd
}

func patternOptionsFromFlags(f *pflag.FlagSet) (*bluegem.PatternDataOptions, error) {
	var (
		opts bluegem.PatternDataOptions
		err  error
	)
	if opts.Sort, opts.Order, err = sortFromFlags(f); err != nil {
		return nil, err
	}
	if opts.Filters, err = filtersFromFlags(f); err != nil {
		return nil, err
	}
	opts.Pattern = changedInt(f, "pattern")
	opts.Limit = changedInt(f, "limit")
	opts.Offset = changedInt(f, "offset")
	opts.Quantity, _ = f.GetBool("quantity")
	return &opts, nil
}
