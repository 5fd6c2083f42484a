package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/metric"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4e7")).
			Bold(true)

	meterFillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dd3fc"))

	meterEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3f3f46"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#bbf7d0"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))
)

var printer = message.NewPrinter(language.English)

const meterWidth = 24

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}

// meter renders a horizontal bar filled to percent (0..100).
func meter(percent float64, width int) string {
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(math.Round(percent / 100 * float64(width)))
	return meterFillStyle.Render(strings.Repeat("█", filled)) +
		meterEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// grid lays out a plain text table. Column 0 is left-aligned, the rest
// right-aligned.
func grid(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(c))
			}
		}
	}

	cell := func(i int, s string) string {
		if i == 0 {
			return padRight(s, widths[i])
		}
		return padLeft(s, widths[i])
	}

	var b strings.Builder
	var hs []string
	for i, h := range headers {
		hs = append(hs, cell(i, h))
	}
	b.WriteString("  " + headerStyle.Render(strings.Join(hs, "  ")) + "\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	b.WriteString("  " + sepStyle.Render(strings.Repeat("─", total)) + "\n")

	for _, r := range rows {
		var cs []string
		for i := range widths {
			v := ""
			if i < len(r) {
				v = r[i]
			}
			cs = append(cs, cell(i, v))
		}
		b.WriteString("  " + strings.Join(cs, "  ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RecipeView lists the recipe slots with their shares and readiness.
func RecipeView(fuel domain.FuelType, r domain.Recipe, ready error) string {
	if len(r) == 0 {
		return secondaryStyle.Render("  (empty recipe: the component catalog has not loaded; try `components`)")
	}
	rows := make([][]string, 0, len(r))
	for i, c := range r {
		role := "additive"
		if i == 0 {
			role = "base"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s", i+1, c.Name),
			role,
			printer.Sprintf("%.1f%%", c.Percentage),
			meter(c.Percentage, meterWidth/2),
		})
	}

	var b strings.Builder
	b.WriteString(stepStyle.Render(fmt.Sprintf("  %s blend", fuel.Profile().DisplayName)) + "\n")
	b.WriteString(grid([]string{"Component", "Role", "Share", ""}, rows) + "\n")

	total := printer.Sprintf("  Total: %.1f%%", r.Total())
	if ready == nil {
		b.WriteString(okStyle.Render(total + "  ready to predict"))
	} else {
		b.WriteString(warnStyle.Render(total + "  " + ready.Error()))
	}
	return b.String()
}

// ResultView shows the headline gauges, key metrics, the radar
// fingerprint and the insight texts of a result.
func ResultView(res *domain.BlendResult) string {
	p := res.FuelType.Profile()
	var b strings.Builder
	b.WriteString(stepStyle.Render(fmt.Sprintf("  %s  %s", res.ID, res.Summary())) + "\n\n")

	for _, g := range metric.Gauges(res) {
		value := compare.NotAvailable
		if !g.Missing {
			value = strings.TrimSpace(printer.Sprintf("%.2f %s", g.Value, g.Unit))
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			padRight(g.Label, 16), meter(g.Percent, meterWidth), value))
	}
	b.WriteByte('\n')

	var rows [][]string
	for _, key := range p.KeyMetrics {
		info, _ := domain.LookupProperty(key)
		rows = append(rows, []string{info.Label(), compare.FormatValue(res.Properties, key)})
	}
	b.WriteString(grid([]string{"Key metric", "Value"}, rows) + "\n\n")

	b.WriteString(headerStyle.Render("  Fingerprint") + "\n")
	for _, pt := range metric.Fingerprint(res) {
		suffix := printer.Sprintf("%3.0f%%", pt.Fraction*100)
		if pt.Missing {
			suffix = secondaryStyle.Render("not reported")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", padRight(pt.Label, 20), meter(pt.Fraction*100, meterWidth), suffix))
	}

	if res.Insights.Viability != "" {
		b.WriteString("\n" + chatStyle.Render("  Viability: "+res.Insights.Viability))
	}
	if res.Insights.Summary != "" {
		b.WriteString("\n" + chatStyle.Render("  "+res.Insights.Summary))
	}
	return strings.TrimRight(b.String(), "\n")
}

// TableView renders a comparison table with a recipe footer.
func TableView(t compare.Table) string {
	if t.Empty() {
		return secondaryStyle.Render("  No pinned blends. Use `pin` after a prediction.")
	}
	headers := []string{"Property"}
	for _, c := range t.Columns {
		headers = append(headers, c.Title)
	}
	var rows [][]string
	for _, r := range t.Rows {
		rows = append(rows, append([]string{r.Property.Label()}, r.Cells...))
	}

	footer := 0
	for _, c := range t.Columns {
		footer = max(footer, len(c.Recipe))
	}
	for j := 0; j < footer; j++ {
		label := ""
		if j == 0 {
			label = "Recipe"
		}
		row := []string{label}
		for _, c := range t.Columns {
			v := ""
			if j < len(c.Recipe) {
				v = c.Recipe[j]
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	for _, c := range t.Columns {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("  %s = %s (%s)", c.Title, c.Summary, c.BlendID)) + "\n")
	}
	b.WriteString(grid(headers, rows))
	return b.String()
}

// ComponentTableView renders the per-component breakdown of a result.
func ComponentTableView(t compare.ComponentTable) string {
	if len(t.Rows) == 0 {
		return secondaryStyle.Render("  No component details in this result.")
	}
	return grid(t.Headers, t.Rows)
}

// PinnedView lists the pinned blends with their 1-based positions.
func PinnedView(blends []*domain.BlendResult) string {
	if len(blends) == 0 {
		return secondaryStyle.Render("  Nothing pinned.")
	}
	var b strings.Builder
	for i, r := range blends {
		b.WriteString(fmt.Sprintf("  %d. %s  %s\n", i+1, r.ID, r.Summary()))
	}
	return strings.TrimRight(b.String(), "\n")
}

// CatalogView lists the bases and additives available for a fuel type.
func CatalogView(c *domain.Catalog, fuel domain.FuelType) string {
	if c.Empty() {
		return secondaryStyle.Render("  Catalog unavailable.")
	}
	sec := c.Section(fuel)
	var b strings.Builder
	for _, part := range []struct {
		title  string
		groups []domain.CatalogGroup
	}{{"Bases", sec.Bases}, {"Additives", sec.Additives}} {
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %s %s", fuel.Profile().DisplayName, part.title)) + "\n")
		for _, g := range part.groups {
			for _, e := range g.Entries {
				b.WriteString("    " + padRight(e.Label, 36) + secondaryStyle.Render(detailLine(e.Details)) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func detailLine(bag domain.PropertyBag) string {
	var parts []string
	for _, k := range bag.Keys() {
		v, _ := bag.Get(k)
		parts = append(parts, printer.Sprintf("%s %.2f", k, v))
	}
	return strings.Join(parts, "  ")
}

// HistoryView lists archived results, newest first.
func HistoryView(results []*domain.BlendResult) string {
	if len(results) == 0 {
		return secondaryStyle.Render("  No archived blends yet.")
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.ID,
			r.Summary(),
			compare.FormatValue(r.Properties, domain.ViabilityScore),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return grid([]string{"Blend", "Recipe", "Viability", "Created"}, rows)
}
