package contract

// ScoreReasonCode identifies one scoring factor's contribution.
type ScoreReasonCode string

const (
	ReasonSkillMatch    ScoreReasonCode = "SKILL_MATCH"
	ReasonCertMatch     ScoreReasonCode = "CERT_MATCH"
	ReasonDayAvailable  ScoreReasonCode = "DAY_AVAILABLE"
	ReasonCapacityOpen  ScoreReasonCode = "CAPACITY_OPEN"
	ReasonHoursOK       ScoreReasonCode = "HOURS_OK"
	ReasonLightWorkload ScoreReasonCode = "LIGHT_WORKLOAD"
	ReasonWithinRadius  ScoreReasonCode = "WITHIN_RADIUS"
	ReasonClusterBonus  ScoreReasonCode = "CLUSTER_BONUS"
	ReasonPreferredZone ScoreReasonCode = "PREFERRED_ZONE"

	WarnSkillMismatch  ScoreReasonCode = "SKILL_MISMATCH"
	WarnMissingCert    ScoreReasonCode = "MISSING_CERT"
	WarnDayOff         ScoreReasonCode = "DAY_OFF"
	WarnAtCapacity     ScoreReasonCode = "AT_CAPACITY"
	WarnOverHours      ScoreReasonCode = "OVER_HOURS"
	WarnBeyondRadius   ScoreReasonCode = "BEYOND_RADIUS"
	WarnNoSuitableTech ScoreReasonCode = "NO_SUITABLE_TECH"
)

// ScoreReason is one human-readable justification or risk flag attached to
// a technician score. Points records the signed contribution of the factor
// (zero for pure informational entries).
type ScoreReason struct {
	Code    ScoreReasonCode
	Message string
	Points  int
}

// TechScore is the scored fit of one technician for one job on one day.
// Score is a raw signed integer: unclamped, comparable only against other
// scores produced in the same run for the same job and day.
type TechScore struct {
	TechID   string
	TechName string
	Score    int
	Reasons  []ScoreReason
	Warnings []ScoreReason

	IsRecommended bool
	HasWarnings   bool
}

// ConflictCode identifies a discrete assignment conflict.
type ConflictCode string

const (
	ConflictDayOff   ConflictCode = "day_off"
	ConflictMaxJobs  ConflictCode = "max_jobs"
	ConflictMaxHours ConflictCode = "max_hours"
	ConflictSkills   ConflictCode = "skills"
	ConflictTime     ConflictCode = "time_conflict"
)

// ConflictSeverity separates blocking conflicts from advisory ones.
type ConflictSeverity string

const (
	SeverityError   ConflictSeverity = "error"
	SeverityWarning ConflictSeverity = "warning"
)

// Conflict is one severity-tagged reason a candidate assignment would not
// work, produced by the conflict checker for interactive validation.
type Conflict struct {
	Code     ConflictCode
	Severity ConflictSeverity
	Message  string
}

// ConflictReport is the full validation result for one (tech, job, day).
type ConflictReport struct {
	HasConflicts bool
	HasErrors    bool
	HasWarnings  bool
	Conflicts    []Conflict
}
