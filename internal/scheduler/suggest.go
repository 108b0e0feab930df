package scheduler

import (
	"sort"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
)

// RankTechnicians scores every roster technician for one job on one day
// and returns them best first. Ties keep roster order, so repeated runs
// over the same inputs always rank identically.
func RankTechnicians(job *domain.Job, roster []*domain.Technician, dayJobs []*domain.Job, date time.Time, skills SkillMapper, distance DistanceEstimator) contract.JobSuggestions {
	ctx := ScoreContext{Date: date, DayJobs: dayJobs, Skills: skills, Distance: distance}

	out := contract.JobSuggestions{
		JobID:    job.ID,
		JobTitle: job.Title,
		Date:     date,
	}
	for _, tech := range roster {
		out.Suggestions = append(out.Suggestions, ScoreTechnician(tech, job, ctx))
	}
	sort.SliceStable(out.Suggestions, func(i, k int) bool {
		return out.Suggestions[i].Score > out.Suggestions[k].Score
	})

	if len(out.Suggestions) > 0 {
		out.TopPick = &out.Suggestions[0]
	}
	for _, s := range out.Suggestions {
		if s.IsRecommended {
			out.HasGoodMatch = true
			break
		}
	}
	return out
}
