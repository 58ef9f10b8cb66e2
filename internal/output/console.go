package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"royalemeta/internal/tier"
)

// ConsoleFormatter renders the tier list as a styled terminal table.
type ConsoleFormatter struct {
	w       io.Writer
	quiet   bool
	verbose bool
	topN    int
}

// NewConsoleFormatter creates a new ConsoleFormatter. topN limits how many
// rows print; zero prints everything.
func NewConsoleFormatter(w io.Writer, quiet, verbose bool, topN int) *ConsoleFormatter {
	return &ConsoleFormatter{
		w:       w,
		quiet:   quiet,
		verbose: verbose,
		topN:    topN,
	}
}

type consoleStyles struct {
	header lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
	tiers  map[tier.Tier]lipgloss.Style
}

func newConsoleStyles() consoleStyles {
	return consoleStyles{
		header: lipgloss.NewStyle().Bold(true),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		tiers: map[tier.Tier]lipgloss.Style{
			tier.TierS: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
			tier.TierA: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			tier.TierB: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			tier.TierC: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			tier.TierD: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			tier.TierF: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		},
	}
}

// Format renders the report. Quiet mode prints only the rows.
func (f *ConsoleFormatter) Format(report *Report) error {
	styles := newConsoleStyles()

	if !f.quiet {
		fmt.Fprintf(f.w, "\n%s\n", styles.header.Render("Battle Royale Meta Rankings"))
		fmt.Fprintf(f.w, "%s\n\n", styles.dim.Render(fmt.Sprintf(
			"%d ranked · policy %s · threats %s",
			len(report.Ranked), report.Policy, joinTypes(report.Threats))))
	}

	rows := report.Ranked
	if f.topN > 0 && f.topN < len(rows) {
		rows = rows[:f.topN]
	}

	nameWidth := len("Pokemon")
	for _, r := range rows {
		if n := len(r.Score.Profile.Name); n > nameWidth {
			nameWidth = n
		}
	}

	fmt.Fprintf(f.w, "%4s  %-4s  %-*s  %7s  %-8s  %s\n",
		"Rank", "Tier", nameWidth, "Pokemon", "Score", "Style", "Notes")
	for _, r := range rows {
		tierStyle, ok := styles.tiers[r.Tier]
		if !ok {
			tierStyle = styles.dim
		}
		fmt.Fprintf(f.w, "%4d  %-4s  %-*s  %7.1f  %-8s  %s\n",
			r.Rank,
			tierStyle.Render(string(r.Tier)),
			nameWidth, r.Score.Profile.Name,
			r.Score.Value,
			r.Score.Style,
			strings.Join(notes(r), ", "))
	}

	if f.quiet {
		return nil
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintf(f.w, "\n%s\n", styles.warn.Render(
			fmt.Sprintf("Skipped %d profile(s):", len(report.Skipped))))
		for _, s := range report.Skipped {
			fmt.Fprintf(f.w, "  %s: %s\n", s.Profile, s.Reason)
		}
	}

	if report.Team != nil && len(report.Team.Members) > 0 {
		fmt.Fprintf(f.w, "\n%s\n", styles.header.Render("Suggested Team"))
		for _, m := range report.Team.Members {
			item := "no item"
			if m.HasItem {
				item = m.Item.Name
			}
			fmt.Fprintf(f.w, "  %s %s (%s) - %s\n",
				styles.tiers[m.Ranked.Tier].Render(string(m.Ranked.Tier)),
				m.Ranked.Score.Profile.Name,
				fmt.Sprintf("%.1f", m.Ranked.Score.Value),
				item)
		}
	}

	fmt.Fprintf(f.w, "\n%s\n", styles.dim.Render(fmt.Sprintf(
		"Analyzed in %v", report.Duration.Round(time.Millisecond))))

	if f.verbose {
		f.printBreakdowns(rows)
	}
	return nil
}

// notes builds the short tag list shown next to each row: AoE coverage,
// threat immunities, and double weaknesses.
func notes(r tier.Ranked) []string {
	var tags []string
	if r.Score.HasAoE {
		tags = append(tags, "AoE")
	}
	for _, t := range r.Score.Immunities {
		tags = append(tags, fmt.Sprintf("immune:%s", t))
	}
	for _, t := range r.Score.QuadWeak {
		tags = append(tags, fmt.Sprintf("4x:%s", t))
	}
	if r.Score.Item != "" {
		tags = append(tags, r.Score.Item)
	}
	return tags
}

func (f *ConsoleFormatter) printBreakdowns(rows []tier.Ranked) {
	fmt.Fprintln(f.w)
	for _, r := range rows {
		b := r.Score.Breakdown
		fmt.Fprintf(f.w, "%s: offense %.1f, aoe %.1f, cast %.1f, size %.1f, immunity %.1f, mobility %.1f, bulk %.1f, item %.1f\n",
			r.Score.Profile.Name,
			b.Offense, b.AoE, b.CastSpeed, b.Size, b.Immunity, b.Mobility, b.Survivability, b.Item)
	}
}
