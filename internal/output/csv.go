package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter renders the ranking table as CSV for spreadsheet analysis.
type CSVFormatter struct {
	outputFile string
}

// NewCSVFormatter creates a new CSVFormatter.
func NewCSVFormatter(outputFile string) *CSVFormatter {
	return &CSVFormatter{outputFile: outputFile}
}

var csvHeader = []string{
	"Rank", "Tier", "Pokemon", "Legendary", "Score",
	"Type1", "Type2", "Size", "Style", "BestMove", "AoE", "Item",
	"Offense", "AoEBonus", "CastSpeed", "SizeAdj", "Immunity",
	"Mobility", "Survivability", "ItemBonus",
}

// Format renders the report as CSV. The team and skip sections have no
// tabular shape, so only the rankings are exported.
func (f *CSVFormatter) Format(report *Report) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, r := range report.Ranked {
		b := r.Score.Breakdown
		row := []string{
			strconv.Itoa(r.Rank),
			string(r.Tier),
			r.Score.Profile.Name,
			strconv.FormatBool(r.Score.Profile.Legendary),
			num(r.Score.Value),
			string(r.Score.Profile.Types[0]),
			secondType(r.Score.Profile),
			r.Score.Profile.Size.String(),
			r.Score.Style.String(),
			r.Score.BestMove.Name,
			strconv.FormatBool(r.Score.HasAoE),
			r.Score.Item,
			num(b.Offense), num(b.AoE), num(b.CastSpeed), num(b.Size),
			num(b.Immunity), num(b.Mobility), num(b.Survivability), num(b.Item),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row for %s: %w", r.Score.Profile.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error flushing CSV: %w", err)
	}

	return write(f.outputFile, buf.Bytes())
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
