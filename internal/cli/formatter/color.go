package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ScoreBadge renders a technician score with recommendation coloring:
// green for a recommended match, yellow for a positive but unremarkable
// score, red for zero or below.
func ScoreBadge(score int, recommended bool) string {
	text := fmt.Sprintf("%+d", score)
	switch {
	case recommended:
		return StyleGreen.Render("★ " + text)
	case score > 0:
		return StyleYellow.Render("● " + text)
	default:
		return StyleRed.Render("● " + text)
	}
}

// SeverityPill returns a colored severity indicator for a conflict.
func SeverityPill(sev contract.ConflictSeverity) string {
	if sev == contract.SeverityError {
		return StyleRed.Render("✖ ERROR")
	}
	return StyleYellow.Render("▲ WARNING")
}

// JobStatusPill returns a colored status indicator for a job.
func JobStatusPill(status domain.JobStatus) string {
	switch status {
	case domain.JobPending:
		return StyleBlue.Render("○ Pending")
	case domain.JobScheduled:
		return StyleGreen.Render("● Scheduled")
	case domain.JobInProgress:
		return StyleYellow.Render("◐ In Progress")
	case domain.JobCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.JobCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// TechBadge renders an active/inactive marker next to a technician name.
func TechBadge(active bool) string {
	if active {
		return StyleGreen.Render("●")
	}
	return StyleDim.Render("○")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
