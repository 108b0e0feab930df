package formatter

import (
	"fmt"
	"strings"

	"github.com/fieldserve/dispatch/internal/domain"
)

// FormatJobList renders jobs as a table.
func FormatJobList(jobs []*domain.Job) string {
	headers := []string{"TITLE", "STATUS", "WHEN", "TECH", "ID"}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		when := Dim("--")
		if j.ScheduledDate != nil {
			when = StyleFg.Render(RelativeDate(*j.ScheduledDate))
			if j.ScheduledTime != "" {
				when += StyleBlue.Render(" @ " + j.ScheduledTime)
			}
		}
		tech := Dim("unassigned")
		if j.AssignedTechName != "" {
			tech = StyleFg.Render(j.AssignedTechName)
		}
		rows = append(rows, []string{
			Bold(j.Title),
			JobStatusPill(j.Status),
			when,
			tech,
			TruncID(j.ID),
		})
	}
	return RenderTable(headers, rows)
}

// FormatJobDetail renders one job in full.
func FormatJobDetail(j *domain.Job) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s  %s\n", Bold(j.Title), JobStatusPill(j.Status), TruncID(j.ID)))
	if j.Category != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Category:"), j.Category))
	}
	if j.EstimatedDuration != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Duration:"), j.EstimatedDuration))
	}
	if addr := j.Address(); addr != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Address: "), addr))
	}
	if j.Zone != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Zone:    "), j.Zone))
	}
	if j.ScheduledDate != nil {
		when := HumanDate(*j.ScheduledDate)
		if j.ScheduledTime != "" {
			when += " @ " + j.ScheduledTime
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("When:    "), when))
	}
	if j.AssignedTechName != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Tech:    "), j.AssignedTechName))
	}
	if len(j.Crew) > 0 {
		parts := make([]string, 0, len(j.Crew))
		for _, m := range j.Crew {
			id := m.TechID
			if len(id) > 8 {
				id = id[:8]
			}
			parts = append(parts, fmt.Sprintf("%s (%s)", id, m.Role))
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Crew:    "), strings.Join(parts, ", ")))
	}
	if len(j.RequiredCerts) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Certs:   "), strings.Join(j.RequiredCerts, ", ")))
	}
	return b.String()
}

// FormatHistory renders a job's assignment audit trail, oldest first.
func FormatHistory(events []*domain.AssignmentEvent) string {
	if len(events) == 0 {
		return Dim("No assignment history.")
	}
	var b strings.Builder
	for _, e := range events {
		badge := actionBadge(e.Action)
		line := fmt.Sprintf("%s  %s %s  %s",
			Dim(e.CreatedAt.Format("2006-01-02 15:04")),
			badge,
			StyleFg.Render(e.TechName),
			Dim("by "+e.AssignedBy),
		)
		if e.Score != nil {
			line += "  " + StyleBlue.Render(fmt.Sprintf("score %d", *e.Score))
		}
		if e.Note != "" {
			line += "  " + Dim(e.Note)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func actionBadge(a domain.AssignmentAction) string {
	switch a {
	case domain.ActionAssigned:
		return StyleGreen.Render("assigned")
	case domain.ActionCrewAssigned:
		return StylePurple.Render("crew")
	case domain.ActionUnassigned:
		return StyleYellow.Render("unassigned")
	default:
		return Dim(string(a))
	}
}
