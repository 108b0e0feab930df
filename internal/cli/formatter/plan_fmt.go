package formatter

import (
	"fmt"
	"strings"

	"github.com/fieldserve/dispatch/internal/contract"
)

// FormatPlan renders an auto-assignment run as a per-day report with a
// summary footer. Dry runs get an extra notice that nothing was written.
func FormatPlan(resp *contract.AutoAssignResponse) string {
	var b strings.Builder

	for di, day := range resp.Days {
		b.WriteString(Header(HumanDate(day.Date)))
		b.WriteString("\n\n")

		if len(day.Plan.Assignments) == 0 {
			b.WriteString(Dim("Nothing to plan."))
			b.WriteString("\n")
		}
		for _, a := range day.Plan.Assignments {
			if a.Failed {
				b.WriteString(fmt.Sprintf("%s %s\n",
					StyleRed.Render("✖"),
					StyleFg.Render(a.JobTitle),
				))
				for _, w := range a.Warnings {
					b.WriteString(fmt.Sprintf("   %s\n", StyleYellow.Render(w.Message)))
				}
				continue
			}

			slot := ""
			if a.Slot != "" {
				slot = "  " + StyleBlue.Render("@ "+a.Slot)
			}
			b.WriteString(fmt.Sprintf("%s %s %s %s%s  %s\n",
				StyleGreen.Render("✔"),
				StyleFg.Render(a.JobTitle),
				Dim("→"),
				Bold(a.TechName),
				slot,
				ScoreBadge(a.Score, false),
			))
			for _, w := range a.Warnings {
				b.WriteString(fmt.Sprintf("   %s %s\n", StyleYellow.Render("▲"), StyleYellow.Render(w.Message)))
			}
		}
		if di < len(resp.Days)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("Assigned: %d", resp.Summary.Assigned)),
		StyleDim.Render("|"),
		summaryUnassigned(resp.Summary.Unassigned),
	))

	if !resp.Applied {
		b.WriteString(Dim("Dry run: nothing was written."))
		b.WriteString("\n")
	} else if failed := failedWrites(resp.WriteResults); len(failed) > 0 {
		b.WriteString("\n")
		for _, res := range failed {
			b.WriteString(fmt.Sprintf("%s %s: %s\n",
				StyleRed.Render("✖ write failed"),
				TruncID(res.JobID),
				Dim(res.Err),
			))
		}
	}

	return RenderBox("Auto-Assignment Plan", b.String())
}

func summaryUnassigned(n int) string {
	text := fmt.Sprintf("Unassigned: %d", n)
	if n > 0 {
		return StyleYellow.Render(text)
	}
	return StyleDim.Render(text)
}

func failedWrites(results []contract.BulkAssignResult) []contract.BulkAssignResult {
	var out []contract.BulkAssignResult
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}

// FormatBulkResults renders per-item outcomes of a bulk assignment.
func FormatBulkResults(results []contract.BulkAssignResult) string {
	var b strings.Builder
	for _, r := range results {
		if r.OK {
			b.WriteString(fmt.Sprintf("%s %s %s %s\n",
				StyleGreen.Render("✔"), TruncID(r.JobID), Dim("→"), Bold(r.TechName)))
		} else {
			b.WriteString(fmt.Sprintf("%s %s: %s\n",
				StyleRed.Render("✖"), TruncID(r.JobID), Dim(r.Err)))
		}
	}
	return b.String()
}
