package output

import (
	"encoding/json"
	"fmt"
	"time"

	"royalemeta/internal/scoring"
)

// JSONFormatter renders the report as machine-readable JSON.
type JSONFormatter struct {
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter(indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		indent:     indent,
		outputFile: outputFile,
	}
}

// JSONReport is the top-level JSON document.
type JSONReport struct {
	Header  JSONHeader   `json:"header"`
	Summary JSONSummary  `json:"summary"`
	Results []JSONResult `json:"results"`
	Skipped []JSONSkip   `json:"skipped,omitempty"`
	Team    []JSONMember `json:"team,omitempty"`
}

// JSONHeader identifies the tool and run.
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	DataRoot  string `json:"data_root,omitempty"`
}

// JSONSummary aggregates the run.
type JSONSummary struct {
	Ranked     int            `json:"ranked"`
	Skipped    int            `json:"skipped"`
	TierCounts map[string]int `json:"tier_counts"`
	Policy     string         `json:"policy"`
	Threats    []string       `json:"threats"`
	Duration   string         `json:"duration"`
}

// JSONResult is one ranked profile.
type JSONResult struct {
	Rank       int               `json:"rank"`
	Tier       string            `json:"tier"`
	Name       string            `json:"name"`
	Types      []string          `json:"types"`
	Size       string            `json:"size"`
	Legendary  bool              `json:"legendary,omitempty"`
	Score      float64           `json:"score"`
	Style      string            `json:"style"`
	BestMove   string            `json:"best_move"`
	AoE        bool              `json:"aoe"`
	Item       string            `json:"item,omitempty"`
	Immunities []string          `json:"immunities,omitempty"`
	QuadWeak   []string          `json:"quad_weak,omitempty"`
	Breakdown  scoring.Breakdown `json:"breakdown"`
}

// JSONSkip is one profile the engine refused to score.
type JSONSkip struct {
	Profile string `json:"profile"`
	Reason  string `json:"reason"`
}

// JSONMember is one suggested team slot.
type JSONMember struct {
	Name  string  `json:"name"`
	Tier  string  `json:"tier"`
	Score float64 `json:"score"`
	Item  string  `json:"item,omitempty"`
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(report *Report) error {
	doc := JSONReport{
		Header: JSONHeader{
			Tool:      toolName,
			Version:   toolVersion,
			Timestamp: report.Generated.Format(time.RFC3339),
			DataRoot:  report.DataRoot,
		},
		Summary: JSONSummary{
			Ranked:     len(report.Ranked),
			Skipped:    len(report.Skipped),
			TierCounts: tierCounts(report.Ranked),
			Policy:     report.Policy,
			Threats:    typeNames(report.Threats),
			Duration:   report.Duration.Round(time.Millisecond).String(),
		},
		Results: make([]JSONResult, len(report.Ranked)),
	}

	for i, r := range report.Ranked {
		doc.Results[i] = JSONResult{
			Rank:       r.Rank,
			Tier:       string(r.Tier),
			Name:       r.Score.Profile.Name,
			Types:      typeNames(r.Score.Profile.Types),
			Size:       r.Score.Profile.Size.String(),
			Legendary:  r.Score.Profile.Legendary,
			Score:      r.Score.Value,
			Style:      r.Score.Style.String(),
			BestMove:   r.Score.BestMove.Name,
			AoE:        r.Score.HasAoE,
			Item:       r.Score.Item,
			Immunities: typeNames(r.Score.Immunities),
			QuadWeak:   typeNames(r.Score.QuadWeak),
			Breakdown:  r.Score.Breakdown,
		}
	}

	for _, s := range report.Skipped {
		doc.Skipped = append(doc.Skipped, JSONSkip{Profile: s.Profile, Reason: s.Reason})
	}

	if report.Team != nil {
		for _, m := range report.Team.Members {
			member := JSONMember{
				Name:  m.Ranked.Score.Profile.Name,
				Tier:  string(m.Ranked.Tier),
				Score: m.Ranked.Score.Value,
			}
			if m.HasItem {
				member.Item = m.Item.Name
			}
			doc.Team = append(doc.Team, member)
		}
	}

	var data []byte
	var err error
	if f.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	return write(f.outputFile, append(data, '\n'))
}
