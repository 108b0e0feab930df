package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fieldserve/dispatch/internal/contract"
	"github.com/fieldserve/dispatch/internal/domain"
)

// Scoring weights. Points are additive and unclamped: a score is only
// meaningful relative to other scores computed for the same job and day.
const (
	pointsSkillMatch    = 50
	pointsCertMatch     = 30
	pointsDayAvailable  = 40
	pointsDayOff        = -100
	pointsCapacityMax   = 30
	pointsAtCapacity    = -50
	pointsOverHours     = -30
	pointsWorkloadMax   = 20
	pointsWithinRadius  = 25
	pointsClusterBonus  = 15
	pointsPreferredZone = 15

	// beyondRadiusPerMile is the penalty per mile past the travel radius.
	beyondRadiusPerMile = 2

	// clusterMiles is how close an existing stop must be to count as a
	// route cluster.
	clusterMiles = 10

	// recommendThreshold marks a score as a good match when no warnings
	// accompany it.
	recommendThreshold = 80
)

// ScoreContext carries the day state a score is computed against. DayJobs
// must hold every job already scheduled on Date across the whole roster;
// the scorer filters per technician. Nil Skills or Distance fall back to
// the built-in defaults.
type ScoreContext struct {
	Date     time.Time
	DayJobs  []*domain.Job
	Skills   SkillMapper
	Distance DistanceEstimator
}

func (c *ScoreContext) skills() SkillMapper {
	if c.Skills != nil {
		return c.Skills
	}
	return DefaultCategories
}

func (c *ScoreContext) distance() DistanceEstimator {
	if c.Distance != nil {
		return c.Distance
	}
	return ZipPrefixEstimator{}
}

// scoreState is the technician's precomputed load on the target day.
type scoreState struct {
	date      time.Time
	techJobs  []*domain.Job
	jobCount  int
	bookedMin int
	skills    SkillMapper
	distance  DistanceEstimator
}

type scoreFactor func(t *domain.Technician, j *domain.Job, st *scoreState) (points int, reasons, warnings []contract.ScoreReason)

var scoreFactors = []scoreFactor{
	scoreSkills,
	scoreCertifications,
	scoreDayAvailability,
	scoreCapacity,
	scoreHours,
	scoreWorkload,
	scoreProximity,
	scoreZone,
}

// ScoreTechnician rates one technician's fit for one job on one day. Every
// factor contributes independently; the result carries the signed total
// plus per-factor reasons and warnings so a dispatcher can see exactly why
// a technician ranked where they did.
func ScoreTechnician(tech *domain.Technician, job *domain.Job, ctx ScoreContext) contract.TechScore {
	st := &scoreState{
		date:     ctx.Date,
		skills:   ctx.skills(),
		distance: ctx.distance(),
	}
	for _, dj := range ctx.DayJobs {
		if dj.ID == job.ID || !dj.AssignedTo(tech.ID) {
			continue
		}
		st.techJobs = append(st.techJobs, dj)
		st.jobCount++
		st.bookedMin += ParseDuration(dj.EstimatedDuration)
	}

	score := contract.TechScore{TechID: tech.ID, TechName: tech.Name}
	for _, factor := range scoreFactors {
		pts, reasons, warnings := factor(tech, job, st)
		score.Score += pts
		score.Reasons = append(score.Reasons, reasons...)
		score.Warnings = append(score.Warnings, warnings...)
	}
	score.HasWarnings = len(score.Warnings) > 0
	score.IsRecommended = score.Score >= recommendThreshold && !score.HasWarnings
	return score
}

func scoreSkills(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	required := st.skills.RequiredSkills(j.CategoryText())
	if HasSkills(t, required) {
		return pointsSkillMatch, []contract.ScoreReason{{
			Code:    contract.ReasonSkillMatch,
			Message: "Has the skills for this job",
			Points:  pointsSkillMatch,
		}}, nil
	}
	return 0, nil, []contract.ScoreReason{{
		Code:    contract.WarnSkillMismatch,
		Message: fmt.Sprintf("May not have required skills (%s)", strings.Join(required, ", ")),
	}}
}

func scoreCertifications(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	if len(j.RequiredCerts) == 0 {
		return 0, nil, nil
	}
	if HasCertifications(t, j.RequiredCerts) {
		return pointsCertMatch, []contract.ScoreReason{{
			Code:    contract.ReasonCertMatch,
			Message: "Holds all required certifications",
			Points:  pointsCertMatch,
		}}, nil
	}
	return 0, nil, []contract.ScoreReason{{
		Code:    contract.WarnMissingCert,
		Message: fmt.Sprintf("Missing certification (%s)", strings.Join(j.RequiredCerts, ", ")),
	}}
}

func scoreDayAvailability(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	day := st.date.Weekday()
	if t.WorksOn(day) {
		return pointsDayAvailable, []contract.ScoreReason{{
			Code:    contract.ReasonDayAvailable,
			Message: fmt.Sprintf("Works on %ss", day),
			Points:  pointsDayAvailable,
		}}, nil
	}
	return pointsDayOff, nil, []contract.ScoreReason{{
		Code:    contract.WarnDayOff,
		Message: fmt.Sprintf("Not scheduled to work on %ss", day),
		Points:  pointsDayOff,
	}}
}

func scoreCapacity(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	limit := t.JobLimit()
	if st.jobCount >= limit {
		return pointsAtCapacity, nil, []contract.ScoreReason{{
			Code:    contract.WarnAtCapacity,
			Message: fmt.Sprintf("Already at daily job limit (%d)", limit),
			Points:  pointsAtCapacity,
		}}
	}
	remaining := limit - st.jobCount
	pts := int(math.Round(float64(pointsCapacityMax) * float64(remaining) / float64(limit)))
	return pts, []contract.ScoreReason{{
		Code:    contract.ReasonCapacityOpen,
		Message: fmt.Sprintf("Has room for %d more job(s) today", remaining),
		Points:  pts,
	}}, nil
}

func scoreHours(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	dur := ParseDuration(j.EstimatedDuration)
	if st.bookedMin+dur > t.HourLimit()*60 {
		return pointsOverHours, nil, []contract.ScoreReason{{
			Code:    contract.WarnOverHours,
			Message: fmt.Sprintf("Would exceed %dh daily hours", t.HourLimit()),
			Points:  pointsOverHours,
		}}
	}
	return 0, []contract.ScoreReason{{
		Code:    contract.ReasonHoursOK,
		Message: "Fits within daily hours",
	}}, nil
}

func scoreWorkload(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	limit := t.JobLimit()
	pts := int(math.Round(float64(pointsWorkloadMax) * (1 - float64(st.jobCount)/float64(limit))))
	if pts <= 0 {
		return 0, nil, nil
	}
	return pts, []contract.ScoreReason{{
		Code:    contract.ReasonLightWorkload,
		Message: fmt.Sprintf("Light workload (%d job(s) today)", st.jobCount),
		Points:  pts,
	}}, nil
}

func scoreProximity(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	jobZip := ExtractZip(j.Address())
	dist := st.distance.Miles(t.HomeZip, jobZip)
	radius := t.TravelRadius()
	if dist > radius {
		pts := -beyondRadiusPerMile * (dist - radius)
		return pts, nil, []contract.ScoreReason{{
			Code:    contract.WarnBeyondRadius,
			Message: fmt.Sprintf("~%d mi away, beyond %d mi radius", dist, radius),
			Points:  pts,
		}}
	}

	pts := pointsWithinRadius
	reasons := []contract.ScoreReason{{
		Code:    contract.ReasonWithinRadius,
		Message: fmt.Sprintf("~%d mi from home base", dist),
		Points:  pointsWithinRadius,
	}}
	for _, other := range st.techJobs {
		otherZip := ExtractZip(other.Address())
		if jobZip == "" || otherZip == "" {
			continue
		}
		if st.distance.Miles(otherZip, jobZip) <= clusterMiles {
			pts += pointsClusterBonus
			reasons = append(reasons, contract.ScoreReason{
				Code:    contract.ReasonClusterBonus,
				Message: "Near another stop on the route",
				Points:  pointsClusterBonus,
			})
			break
		}
	}
	return pts, reasons, nil
}

func scoreZone(t *domain.Technician, j *domain.Job, st *scoreState) (int, []contract.ScoreReason, []contract.ScoreReason) {
	if !t.PrefersZone(j.Zone) {
		return 0, nil, nil
	}
	return pointsPreferredZone, []contract.ScoreReason{{
		Code:    contract.ReasonPreferredZone,
		Message: fmt.Sprintf("Prefers the %s zone", j.Zone),
		Points:  pointsPreferredZone,
	}}, nil
}
