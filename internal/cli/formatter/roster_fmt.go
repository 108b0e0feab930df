package formatter

import (
	"fmt"
	"strings"

	"github.com/fieldserve/dispatch/internal/domain"
)

// FormatTechList renders the roster as a table.
func FormatTechList(techs []*domain.Technician) string {
	headers := []string{"", "NAME", "SKILLS", "ZIP", "CAP", "ID"}
	rows := make([][]string, 0, len(techs))
	for _, t := range techs {
		zip := t.HomeZip
		if zip == "" {
			zip = "--"
		}
		rows = append(rows, []string{
			TechBadge(t.Active),
			Bold(t.Name),
			JoinOrDash(t.AllSkills()),
			Dim(zip),
			Dim(fmt.Sprintf("%d/day", t.JobLimit())),
			TruncID(t.ID),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTechDetail renders one technician's full profile.
func FormatTechDetail(t *domain.Technician) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s  %s\n", TechBadge(t.Active), Bold(t.Name), TruncID(t.ID)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Skills:"), JoinOrDash(t.AllSkills())))
	if len(t.Certifications) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Certs: "), strings.Join(t.Certifications, ", ")))
	}
	b.WriteString(fmt.Sprintf("%s %d jobs, %dh, %d min buffer\n",
		Dim("Limits:"), t.JobLimit(), t.HourLimit(), t.BufferMinutes()))
	if t.HomeZip != "" {
		b.WriteString(fmt.Sprintf("%s %s, %d mi radius\n", Dim("Base:  "), t.HomeZip, t.TravelRadius()))
	}
	if len(t.PreferredZones) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Zones: "), strings.Join(t.PreferredZones, ", ")))
	}
	if hours := formatWorkingHours(t.WorkingHours); hours != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Hours: "), hours))
	}
	return b.String()
}

var weekdayOrder = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func formatWorkingHours(h domain.WorkingHours) string {
	if len(h) == 0 {
		return ""
	}
	var parts []string
	for _, day := range weekdayOrder {
		dh, ok := h[day]
		if !ok {
			continue
		}
		short := strings.ToUpper(day[:3])
		if !dh.Enabled {
			parts = append(parts, StyleDim.Render(short+" off"))
			continue
		}
		start, end := dh.Start, dh.End
		if start == "" {
			start = domain.DefaultDayStart
		}
		if end == "" {
			end = domain.DefaultDayEnd
		}
		parts = append(parts, fmt.Sprintf("%s %s-%s", short, start, end))
	}
	return strings.Join(parts, ", ")
}
