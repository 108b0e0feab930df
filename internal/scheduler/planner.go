package scheduler

import (
	"sort"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
)

// PlanInput is everything one greedy planning pass needs for a single day.
// Existing holds the jobs already scheduled on Date; the planner never
// mutates it, working on a private copy it extends as it commits picks.
type PlanInput struct {
	Jobs     []*domain.Job
	Roster   []*domain.Technician
	Existing []*domain.Job
	Date     time.Time
	Skills   SkillMapper
	Distance DistanceEstimator
}

// PlanAssignments runs one greedy pass over the input jobs. Jobs are taken
// longest first so the hardest-to-place work gets first claim on capacity,
// and each committed pick feeds the next decision: once a technician takes
// a job, their load reflects it when the next job is scored.
func PlanAssignments(in PlanInput) contract.PlanResult {
	jobs := make([]*domain.Job, len(in.Jobs))
	copy(jobs, in.Jobs)
	sort.SliceStable(jobs, func(i, k int) bool {
		return ParseDuration(jobs[i].EstimatedDuration) > ParseDuration(jobs[k].EstimatedDuration)
	})

	working := make([]*domain.Job, len(in.Existing))
	copy(working, in.Existing)

	var result contract.PlanResult
	for _, job := range jobs {
		planned := contract.PlannedAssignment{
			JobID:    job.ID,
			JobTitle: job.Title,
			Date:     in.Date,
		}

		ranked := RankTechnicians(job, in.Roster, working, in.Date, in.Skills, in.Distance)
		pick := ranked.TopPick
		if pick == nil || pick.Score <= 0 {
			planned.Failed = true
			planned.Warnings = append(planned.Warnings, contract.ScoreReason{
				Code:    contract.WarnNoSuitableTech,
				Message: "No suitable tech available",
			})
			result.Assignments = append(result.Assignments, planned)
			result.Failed = append(result.Failed, planned)
			continue
		}

		planned.TechID = pick.TechID
		planned.TechName = pick.TechName
		planned.Score = pick.Score
		planned.Reasons = pick.Reasons
		planned.Warnings = pick.Warnings

		tech := findTech(in.Roster, pick.TechID)
		if slot, ok := SuggestTimeSlot(tech, job, working, in.Date); ok {
			planned.Slot = slot
		}

		// Commit the pick into the working set so the next job sees it.
		assigned := *job
		assigned.AssignedTechID = pick.TechID
		assigned.AssignedTechName = pick.TechName
		date := in.Date
		assigned.ScheduledDate = &date
		if planned.Slot != "" {
			assigned.ScheduledTime = planned.Slot
		}
		working = append(working, &assigned)

		result.Assignments = append(result.Assignments, planned)
		result.Successful = append(result.Successful, planned)
	}

	result.Summary = contract.PlanSummary{
		Total:      len(result.Assignments),
		Assigned:   len(result.Successful),
		Unassigned: len(result.Failed),
	}
	return result
}

func findTech(roster []*domain.Technician, id string) *domain.Technician {
	for _, t := range roster {
		if t.ID == id {
			return t
		}
	}
	return nil
}
