package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
)

func priceCheckCmd() *cobra.Command {
	var (
		pattern int
		wear    float64
	)

	cmd := &cobra.Command{
		Use:     "price-check <item>",
		Aliases: []string{"pc"},
		Short:   "Estimate the USD price of an item",
		Example: `  bluegem price-check karambit --pattern 387 --wear 0.07`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(args[0])
			if err != nil {
				return err
			}

			return withClient(cmd, func(c *bluegem.Client) error {
				price, err := c.PriceCheck(cmd.Context(), item, pattern, wear)
				if err != nil {
					return err
				}
				result := priceCheckResult{Item: item, Pattern: pattern, Wear: wear, Price: price}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), result)
				}
				return printPriceCheck(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().IntVar(&pattern, "pattern", 0, "pattern seed (0-1000)")
	cmd.Flags().Float64Var(&wear, "wear", 0, "wear value (0-1]")
	cobra.CheckErr(cmd.MarkFlagRequired("pattern"))
	cobra.CheckErr(cmd.MarkFlagRequired("wear"))

	return cmd
}
