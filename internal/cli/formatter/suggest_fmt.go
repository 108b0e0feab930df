package formatter

import (
	"fmt"
	"strings"

	"github.com/fieldserve/dispatch/internal/contract"
)

// FormatSuggestions renders the ranked technician list for one job as a
// styled report: each candidate with a score badge, point-bearing reasons
// dimmed underneath, and warnings in yellow.
func FormatSuggestions(s *contract.JobSuggestions) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Suggestions for %s", s.JobTitle)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Scheduling for %s", HumanDate(s.Date))))
	b.WriteString("\n\n")

	if len(s.Suggestions) == 0 {
		b.WriteString(Dim("No technicians on the roster."))
		b.WriteString("\n")
		return RenderBox("Technician Ranking", b.String())
	}

	for i, ts := range s.Suggestions {
		line := fmt.Sprintf("%s %s  %s",
			Bold(fmt.Sprintf("%d.", i+1)),
			StyleFg.Render(ts.TechName),
			ScoreBadge(ts.Score, ts.IsRecommended),
		)
		if ts.IsRecommended {
			line += "  " + StyleGreen.Render("RECOMMENDED")
		}
		b.WriteString(line + "\n")

		for _, r := range ts.Reasons {
			if r.Points == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("   %s %s\n",
				StyleBlue.Render(fmt.Sprintf("%+d", r.Points)),
				Dim(r.Message),
			))
		}
		for _, w := range ts.Warnings {
			b.WriteString(fmt.Sprintf("   %s %s\n",
				StyleYellow.Render("▲"),
				StyleYellow.Render(w.Message),
			))
		}
		if i < len(s.Suggestions)-1 {
			b.WriteString("\n")
		}
	}

	if !s.HasGoodMatch {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("No clean match: every candidate carries warnings or a low score."))
		b.WriteString("\n")
	}

	return RenderBox("Technician Ranking", b.String())
}
