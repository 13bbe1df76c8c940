package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

const dateLayout = "2006-01-02"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSalesTable(w io.Writer, resp *bluegem.SearchResponse) error {
	tw := newTabWriter(w)
	tw.writef("DATE\tPATTERN\tWEAR\tPRICE\tTYPE\tORIGIN\tPLAYSIDE BLUE\tBACKSIDE BLUE\tINSPECT\n")
	for i := range resp.Sales {
		s := &resp.Sales[i]
		psBlue, bsBlue := "-", "-"
		if s.PatternData != nil {
			psBlue = fmt.Sprintf("%.2f%%", s.PatternData.PlaysideBlue)
			bsBlue = fmt.Sprintf("%.2f%%", s.PatternData.BacksideBlue)
		}
		tw.writef("%s\t%d\t%.6f\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Date().Format(dateLayout),
			s.Pattern,
			s.Wear,
			s.Price.StringFixed(2),
			s.Type,
			s.Origin,
			psBlue,
			bsBlue,
			inspectLink(s),
		)
	}
	tw.writef("\nShowing %d of %d sales\n", resp.Meta.Size, resp.Meta.Total)
	return tw.finish()
}

func inspectLink(s *domain.Sale) string {
	if s.Screenshots == nil {
		return "-"
	}
	link, err := s.Screenshots.InspectLink()
	if err != nil {
		return "-"
	}
	return truncate(link, 60)
}

func printPatternTable(w io.Writer, resp *bluegem.PatternDataResponse) error {
	tw := newTabWriter(w)
	tw.writef("PATTERN\tPS BLUE\tPS PURPLE\tPS GOLD\tBS BLUE\tBS PURPLE\tBS GOLD\tPS CONTOURS\tBS CONTOURS\tSALES\n")
	for i := range resp.PatternData {
		d := &resp.PatternData[i]
		tw.writef("%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d/%d\t%d/%d\t%s\n",
			optionalInt(d.Pattern),
			d.PlaysideBlue,
			d.PlaysidePurple,
			d.PlaysideGold,
			d.BacksideBlue,
			d.BacksidePurple,
			d.BacksideGold,
			d.PlaysideContourBlue, d.PlaysideContourPurple,
			d.BacksideContourBlue, d.BacksideContourPurple,
			optionalInt(d.Quantity),
		)
	}
	tw.writef("\nShowing %d of %d patterns\n", resp.Meta.Size, resp.Meta.Total)
	return tw.finish()
}

// priceCheckResult is the JSON shape of a price check.
type priceCheckResult struct {
	Item    domain.Item `json:"item"`
	Pattern int         `json:"pattern"`
	Wear    float64     `json:"wear"`
	Price   int         `json:"price"`
}

func printPriceCheck(w io.Writer, r priceCheckResult) error {
	tw := newTabWriter(w)
	tw.writef("Item:\t%s\n", r.Item)
	tw.writef("Pattern:\t%d\n", r.Pattern)
	tw.writef("Wear:\t%g\n", r.Wear)
	tw.writef("Estimated price:\t$%d\n", r.Price)
	return tw.finish()
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
