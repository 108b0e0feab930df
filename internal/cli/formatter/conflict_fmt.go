package formatter

import (
	"fmt"
	"strings"

	"github.com/fieldserve/dispatch/internal/contract"
)

// FormatConflicts renders a conflict report, errors before warnings.
func FormatConflicts(techName string, report *contract.ConflictReport) string {
	if !report.HasConflicts {
		return StyleGreen.Render(fmt.Sprintf("✔ No conflicts for %s.", techName))
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Conflicts for %s", techName)))
	b.WriteString("\n\n")

	write := func(sev contract.ConflictSeverity) {
		for _, c := range report.Conflicts {
			if c.Severity != sev {
				continue
			}
			b.WriteString(fmt.Sprintf("%s  %s %s\n",
				SeverityPill(c.Severity),
				StyleFg.Render(c.Message),
				Dim(fmt.Sprintf("[%s]", c.Code)),
			))
		}
	}
	write(contract.SeverityError)
	write(contract.SeverityWarning)

	if report.HasErrors {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render("This assignment would break a hard constraint."))
	}
	return b.String()
}
