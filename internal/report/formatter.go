package report

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"StockDash/internal/dashboard"
	"StockDash/internal/model"
)

const missing = "-"

// FormatSummary renders the descriptive statistics table as aligned text.
func FormatSummary(title string, t *model.SummaryTable) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "\t%s\t\n", strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, len(row.Values))
		for i, v := range row.Values {
			cells[i] = formatStat(row.Stat, t.Columns[i], v)
		}
		fmt.Fprintf(w, "%s\t%s\t\n", row.Stat, strings.Join(cells, "\t"))
	}
	w.Flush()
	return b.String()
}

func formatStat(stat, column string, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	if stat == model.StatCount {
		return humanize.Comma(int64(v))
	}
	if column == model.ColVolume {
		return humanize.CommafWithDigits(v, 0)
	}
	return humanize.FormatFloat("#,###.####", v)
}

// FormatOverview renders at most limit rows of the overview table. A
// non-positive limit prints every row.
func FormatOverview(ov *dashboard.Overview, limit int) string {
	if ov.Table == nil {
		return ov.Advisory + "\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t\n", strings.Join(ov.Table.Columns, "\t"))

	rows := ov.Table.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = formatCell(c)
		}
		fmt.Fprintf(w, "%s\t\n", strings.Join(cells, "\t"))
	}
	w.Flush()

	if hidden := len(ov.Table.Rows) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "... %s more rows\n", humanize.Comma(int64(hidden)))
	}
	return b.String()
}

func formatCell(c any) string {
	switch v := c.(type) {
	case nil:
		return missing
	case string:
		return v
	case int64:
		return humanize.Comma(v)
	case float64:
		return humanize.FormatFloat("#,###.##", v)
	default:
		return fmt.Sprint(v)
	}
}

// FormatDigest renders the latest-day snapshot on one line.
func FormatDigest(dg dashboard.Digest) string {
	if dg.Rows == 0 {
		return fmt.Sprintf("%s: no rows loaded", dg.Symbol)
	}
	last := formatStat("", "", dg.LastClose)
	ma := formatStat("", "", dg.MovingAverage)

	line := fmt.Sprintf("%s %s: close %s | %d day MA %s | %s rows",
		dg.Symbol, dg.LastDate, last, dg.Window, ma, humanize.Comma(int64(dg.Rows)))
	if !math.IsNaN(dg.LastClose) && !math.IsNaN(dg.MovingAverage) && dg.MovingAverage != 0 {
		dev := (dg.LastClose - dg.MovingAverage) / dg.MovingAverage * 100
		line += fmt.Sprintf(" | %+.1f%% vs MA", dev)
	}
	return line
}
