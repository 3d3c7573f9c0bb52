package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingReporter captures everything a run reports, for assertions.
type recordingReporter struct {
	mu            sync.Mutex
	progress      []domain.ProgressEvent
	notifications []domain.Notification
}

func (r *recordingReporter) ReportProgress(event domain.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, event)
}

func (r *recordingReporter) ReportOutcome(notification domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, notification)
}

func TestRunExampleScenario(t *testing.T) {
	// 2 days, each needing 1 Cook and 1 Waiter in the 08:00-16:00 slot;
	// roster has 2 Cooks and 2 Waiters, none absent
	requirements := []domain.ScheduleRequirement{
		{
			Date: day(2025, 6, 2),
			Shifts: []domain.ScheduleRequirementShift{
				{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{
					{RoleID: 1, Quantity: 1},
					{RoleID: 2, Quantity: 1},
				}},
			},
		},
		{
			Date: day(2025, 6, 3),
			Shifts: []domain.ScheduleRequirementShift{
				{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{
					{RoleID: 1, Quantity: 1},
					{RoleID: 2, Quantity: 1},
				}},
			},
		},
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
		{ID: 2, Code: "C2", RoleIDs: []int64{1}},
		{ID: 3, Code: "W1", RoleIDs: []int64{2}},
		{ID: 4, Code: "W2", RoleIDs: []int64{2}},
	}

	s, err := New(testParameters(), requirements, testPredefinedShifts(), testRoles(), employees, nil)
	require.NoError(t, err)

	best := s.Run(context.Background())
	require.GreaterOrEqual(t, best.Fitness(), 0.9)

	decoder := NewDecoder(testPredefinedShifts(), testRoles())
	shifts, err := decoder.Decode(best, day(2025, 5, 1))
	require.NoError(t, err)

	// 2 days x 2 roles = exactly 4 shift records
	require.Len(t, shifts, 4)

	booked := make(map[int64]map[string]bool)
	for _, shift := range shifts {
		d := shift.Start.Format("2006-01-02")
		if booked[shift.EmployeeID] == nil {
			booked[shift.EmployeeID] = make(map[string]bool)
		}
		assert.False(t, booked[shift.EmployeeID][d], "employee %d double-booked on %s", shift.EmployeeID, d)
		booked[shift.EmployeeID][d] = true
		assert.False(t, shift.Published)
	}
}

func TestRunBestFitnessMonotonic(t *testing.T) {
	// two overlapping slots on the same day and a 2-cook roster leave room
	// for double-booked candidates, so the search has something to improve
	requirements := []domain.ScheduleRequirement{
		{
			Date: day(2025, 6, 2),
			Shifts: []domain.ScheduleRequirementShift{
				{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 1}}},
				{PredefinedShiftID: 2, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 1}}},
			},
		},
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
		{ID: 2, Code: "C2", RoleIDs: []int64{1}},
	}

	parameters := testParameters()
	parameters.MaxGenerations = 40
	parameters.FitnessThreshold = 2 // unreachable, run every generation

	reporter := &recordingReporter{}
	s, err := New(parameters, requirements, testPredefinedShifts(), testRoles(), employees, reporter)
	require.NoError(t, err)

	s.Run(context.Background())

	require.Len(t, reporter.progress, 40)
	for i := 1; i < len(reporter.progress); i++ {
		assert.GreaterOrEqual(t, reporter.progress[i].Fitness, reporter.progress[i-1].Fitness,
			"best fitness regressed between generations %d and %d", i-1, i)
		assert.Equal(t, i, reporter.progress[i].Generation)
	}

	for _, event := range reporter.progress {
		assert.GreaterOrEqual(t, event.Fitness, 0.0)
		assert.LessOrEqual(t, event.Fitness, 1.0)
	}
}

func TestRunStopsAtThreshold(t *testing.T) {
	requirements := []domain.ScheduleRequirement{
		singleRoleRequirement(day(2025, 6, 2), 1, 1, 1),
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
	}

	reporter := &recordingReporter{}
	s, err := New(testParameters(), requirements, testPredefinedShifts(), testRoles(), employees, reporter)
	require.NoError(t, err)

	best := s.Run(context.Background())

	// a single fillable slot converges immediately, well before the cap
	assert.Equal(t, 1.0, best.Fitness())
	assert.Less(t, len(reporter.progress), 5)
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	requirements := []domain.ScheduleRequirement{
		singleRoleRequirement(day(2025, 6, 2), 1, 1, 1),
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
	}

	parameters := testParameters()
	parameters.FitnessThreshold = 2 // never satisfied
	parameters.MaxGenerations = 1_000_000

	s, err := New(parameters, requirements, testPredefinedShifts(), testRoles(), employees, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan *Chromosome, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	select {
	case best := <-done:
		require.NotNil(t, best)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after context cancellation")
	}
}
