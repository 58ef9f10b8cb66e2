package output

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders the report as a Markdown document.
type MarkdownFormatter struct {
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{outputFile: outputFile}
}

// Format renders the report as Markdown.
func (f *MarkdownFormatter) Format(report *Report) error {
	var b strings.Builder

	b.WriteString("# Battle Royale Meta Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.Generated.Format("2006-01-02 15:04:05")))
	if report.DataRoot != "" {
		b.WriteString(fmt.Sprintf("**Dataset:** %s\n\n", report.DataRoot))
	}
	b.WriteString(fmt.Sprintf("**Tier policy:** %s\n\n", report.Policy))
	b.WriteString(fmt.Sprintf("**Meta threats:** %s\n\n", joinTypes(report.Threats)))
	b.WriteString(fmt.Sprintf("**Duration:** %v\n\n", report.Duration.Round(time.Millisecond)))
	b.WriteString(strings.Repeat("-", 50) + "\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Ranked | %d |\n", len(report.Ranked)))
	b.WriteString(fmt.Sprintf("| Skipped | %d |\n", len(report.Skipped)))
	counts := tierCounts(report.Ranked)
	for _, t := range []string{"S", "A", "B", "C", "D", "F"} {
		if counts[t] > 0 {
			b.WriteString(fmt.Sprintf("| Tier %s | %d |\n", t, counts[t]))
		}
	}
	b.WriteString("\n")

	b.WriteString("## Rankings\n\n")
	if len(report.Ranked) == 0 {
		b.WriteString("*No profiles ranked.*\n\n")
	} else {
		b.WriteString("| Rank | Tier | Pokemon | Score | Style | Best Move | AoE | Item |\n")
		b.WriteString("|------|------|---------|-------|-------|-----------|-----|------|\n")
		for _, r := range report.Ranked {
			aoe := ""
			if r.Score.HasAoE {
				aoe = "yes"
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %.1f | %s | %s | %s | %s |\n",
				r.Rank, r.Tier, r.Score.Profile.Name, r.Score.Value,
				r.Score.Style, r.Score.BestMove.Name, aoe, r.Score.Item))
		}
		b.WriteString("\n")
	}

	if len(report.Skipped) > 0 {
		b.WriteString("## Skipped Profiles\n\n")
		for _, s := range report.Skipped {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", s.Profile, s.Reason))
		}
		b.WriteString("\n")
	}

	if report.Team != nil && len(report.Team.Members) > 0 {
		b.WriteString("## Suggested Team\n\n")
		b.WriteString("| Slot | Pokemon | Tier | Score | Item |\n")
		b.WriteString("|------|---------|------|-------|------|\n")
		for i, m := range report.Team.Members {
			item := ""
			if m.HasItem {
				item = m.Item.Name
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %.1f | %s |\n",
				i+1, m.Ranked.Score.Profile.Name, m.Ranked.Tier, m.Ranked.Score.Value, item))
		}
		b.WriteString("\n")
	}

	return write(f.outputFile, []byte(b.String()))
}
