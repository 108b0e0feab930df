package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobIsAssigned_StaleReferenceCountsAsUnassigned(t *testing.T) {
	job := &Job{ID: "j-1", AssignedTechID: "tech-gone"}
	roster := map[string]bool{"tech-a": true, "tech-b": true}

	assert.False(t, job.IsAssigned(roster), "reference to removed tech must count as unassigned")

	job.AssignedTechID = "tech-a"
	assert.True(t, job.IsAssigned(roster))
}

func TestJobIsAssigned_CrewMemberCounts(t *testing.T) {
	job := &Job{
		ID:   "j-1",
		Crew: []CrewMember{{TechID: "tech-b", Role: CrewHelper}},
	}
	roster := map[string]bool{"tech-b": true}

	assert.True(t, job.IsAssigned(roster))
}

func TestJobAssignedTechIDs_Deduplicates(t *testing.T) {
	job := &Job{
		AssignedTechID: "tech-a",
		Crew: []CrewMember{
			{TechID: "tech-a", Role: CrewLead},
			{TechID: "tech-b", Role: CrewHelper},
		},
	}
	assert.Equal(t, []string{"tech-a", "tech-b"}, job.AssignedTechIDs())
}

func TestTechnicianWorksOn_PermissiveDefault(t *testing.T) {
	tech := &Technician{Name: "A"}
	assert.True(t, tech.WorksOn(time.Monday), "nil working hours means available")

	tech.WorkingHours = WorkingHours{
		"monday": {Enabled: false},
	}
	assert.False(t, tech.WorksOn(time.Monday))
	assert.True(t, tech.WorksOn(time.Tuesday), "missing day config means available")
}

func TestTechnicianDayWindow_Defaults(t *testing.T) {
	tech := &Technician{Name: "A"}
	start, end := tech.DayWindow(time.Wednesday)
	assert.Equal(t, 8*60, start)
	assert.Equal(t, 17*60, end)

	tech.WorkingHours = WorkingHours{
		"wednesday": {Enabled: true, Start: "07:30", End: "16:00"},
	}
	start, end = tech.DayWindow(time.Wednesday)
	assert.Equal(t, 7*60+30, start)
	assert.Equal(t, 16*60, end)
}

func TestTechnicianCapacityDefaults(t *testing.T) {
	tech := &Technician{Name: "A"}
	assert.Equal(t, 4, tech.JobLimit())
	assert.Equal(t, 8, tech.HourLimit())
	assert.Equal(t, 30, tech.BufferMinutes())
	assert.Equal(t, 25, tech.TravelRadius())

	tech.MaxJobsPerDay = 6
	tech.MaxHoursPerDay = 10
	assert.Equal(t, 6, tech.JobLimit())
	assert.Equal(t, 10, tech.HourLimit())
}

func TestTechnicianValidate(t *testing.T) {
	tech := &Technician{Name: "A", WorkingHours: WorkingHours{
		"funday": {Enabled: true},
	}}
	assert.Error(t, tech.Validate())

	tech.WorkingHours = WorkingHours{"monday": {Enabled: true, Start: "25:00"}}
	assert.Error(t, tech.Validate())

	tech.WorkingHours = WorkingHours{"monday": {Enabled: true, Start: "08:00", End: "17:00"}}
	assert.NoError(t, tech.Validate())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:00", FormatClock(480))
	assert.Equal(t, "16:45", FormatClock(16*60+45))
}
