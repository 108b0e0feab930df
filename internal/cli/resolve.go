package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldserve/dispatch/internal/domain"
	"github.com/spf13/pflag"
)

// resolveJob resolves operator input to a job: exact ID first, then unique
// ID prefix, then case-insensitive title match.
func resolveJob(ctx context.Context, app *App, input string) (*domain.Job, error) {
	if input == "" {
		return nil, fmt.Errorf("job ID is required")
	}

	jobs, err := app.Jobs.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, j := range jobs {
		if j.ID == input {
			return j, nil
		}
	}

	var matches []*domain.Job
	for _, j := range jobs {
		if strings.HasPrefix(j.ID, input) {
			matches = append(matches, j)
		}
	}
	if len(matches) == 0 {
		for _, j := range jobs {
			if strings.EqualFold(j.Title, input) {
				matches = append(matches, j)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("job not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("job reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

const dateLayout = "2006-01-02"

// addDateFlag registers the shared --date flag used by scheduling commands.
func addDateFlag(fs *pflag.FlagSet, value *string) {
	fs.StringVar(value, "date", "", "Target date (YYYY-MM-DD, defaults to the job's date)")
}

// parseDateFlag turns an optional --date value into a time pointer.
func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	d = d.UTC()
	return &d, nil
}
