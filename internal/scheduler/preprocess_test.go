package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParameters() *Parameters {
	return &Parameters{
		PopulationSize:   30,
		MaxGenerations:   100,
		CrossoverRate:    0.8,
		MutationRate:     0.05,
		EliteCount:       2,
		ConflictPenalty:  0.25,
		FitnessThreshold: 0.9,
	}
}

func testRoles() []*domain.Role {
	return []*domain.Role{
		{ID: 1, Name: "Cook"},
		{ID: 2, Name: "Waiter"},
	}
}

func testPredefinedShifts() []*domain.PredefinedShift {
	return []*domain.PredefinedShift{
		{ID: 1, Name: "Day", StartTime: "08:00:00", EndTime: "16:00:00"},
		{ID: 2, Name: "Evening", StartTime: "14:00:00", EndTime: "22:00:00"},
		{ID: 3, Name: "Night", StartTime: "22:00:00", EndTime: "06:00:00"},
	}
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func singleRoleRequirement(date time.Time, shiftID int64, roleID int64, quantity int32) domain.ScheduleRequirement {
	return domain.ScheduleRequirement{
		Date: date,
		Shifts: []domain.ScheduleRequirementShift{
			{
				PredefinedShiftID: shiftID,
				Roles:             []domain.ScheduleRequirementRole{{RoleID: roleID, Quantity: quantity}},
			},
		},
	}
}

func TestFeasibilityGateFailsFast(t *testing.T) {
	// 1 available Waiter, 2 required per day over 3 days: the multiplier is
	// the day count (< 5 days), so capacity is 3 against 6 required
	requirements := []domain.ScheduleRequirement{
		singleRoleRequirement(day(2025, 6, 2), 1, 2, 2),
		singleRoleRequirement(day(2025, 6, 3), 1, 2, 2),
		singleRoleRequirement(day(2025, 6, 4), 1, 2, 2),
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "W1", RoleIDs: []int64{2}},
	}

	_, err := New(testParameters(), requirements, testPredefinedShifts(), testRoles(), employees, nil)
	require.Error(t, err)

	var insufficientErr *InsufficientEmployeesError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, "Waiter", insufficientErr.Role)
	assert.Equal(t, int32(6), insufficientErr.Required)
	assert.Equal(t, int32(3), insufficientErr.Available)
}

func TestFeasibilityWeeklyMultiplier(t *testing.T) {
	// 7 days requested: multiplier = 5 * ceil(7/7) = 5, so one employee can
	// cover 5 units but not 7
	makeWeek := func(quantity int32) []domain.ScheduleRequirement {
		requirements := make([]domain.ScheduleRequirement, 0, 7)
		for i := 0; i < 7; i++ {
			requirements = append(requirements, singleRoleRequirement(day(2025, 6, 2+i), 1, 1, quantity))
		}
		return requirements
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
	}

	_, err := New(testParameters(), makeWeek(1), testPredefinedShifts(), testRoles(), employees, nil)
	require.Error(t, err)

	var insufficientErr *InsufficientEmployeesError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, int32(7), insufficientErr.Required)
	assert.Equal(t, int32(5), insufficientErr.Available)

	// 5 of the 7 days is within the estimated capacity
	requirements := makeWeek(1)[:5]
	requirements = append(requirements, domain.ScheduleRequirement{
		Date:   day(2025, 6, 8),
		Shifts: []domain.ScheduleRequirementShift{{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 0}}}},
	})
	_, err = New(testParameters(), requirements, testPredefinedShifts(), testRoles(), employees, nil)
	require.NoError(t, err)
}

func TestUnknownCatalogReferences(t *testing.T) {
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
	}

	_, err := New(testParameters(), []domain.ScheduleRequirement{
		singleRoleRequirement(day(2025, 6, 2), 99, 1, 1),
	}, testPredefinedShifts(), testRoles(), employees, nil)

	var unknownErr *UnknownReferenceError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "shift", unknownErr.Kind)

	_, err = New(testParameters(), []domain.ScheduleRequirement{
		singleRoleRequirement(day(2025, 6, 2), 1, 99, 1),
	}, testPredefinedShifts(), testRoles(), employees, nil)

	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "role", unknownErr.Kind)
}

func TestPoolPartitionedByRole(t *testing.T) {
	// a worker holding two roles must appear once per role they could be
	// scheduled under
	employees := []*domain.Employee{
		{ID: 1, Code: "CW1", RoleIDs: []int64{1, 2}},
		{ID: 2, Code: "W2", RoleIDs: []int64{2}},
	}

	s, err := New(testParameters(), []domain.ScheduleRequirement{
		singleRoleRequirement(day(2025, 6, 2), 1, 1, 1),
	}, testPredefinedShifts(), testRoles(), employees, nil)
	require.NoError(t, err)

	require.Len(t, s.pool["Cook"], 1)
	require.Len(t, s.pool["Waiter"], 2)
	assert.Equal(t, "CW1", s.pool["Cook"][0].Code)
}

func TestSlotOrderStability(t *testing.T) {
	// two days supplied out of order, each with two slots supplied in
	// reverse start-time order
	requirements := []domain.ScheduleRequirement{
		{
			Date: day(2025, 6, 3),
			Shifts: []domain.ScheduleRequirementShift{
				{PredefinedShiftID: 2, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 1}}},
				{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 1}}},
			},
		},
		{
			Date: day(2025, 6, 2),
			Shifts: []domain.ScheduleRequirementShift{
				{PredefinedShiftID: 3, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 1}}},
				{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 1}}},
			},
		},
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
		{ID: 2, Code: "C2", RoleIDs: []int64{1}},
		{ID: 3, Code: "C3", RoleIDs: []int64{1}},
	}

	s, err := New(testParameters(), requirements, testPredefinedShifts(), testRoles(), employees, nil)
	require.NoError(t, err)
	require.Equal(t, 4, s.Slots())

	type slotKey struct {
		shiftID int64
		day     int32
	}
	canonical := []slotKey{
		{1, int32(day(2025, 6, 2).YearDay())},
		{3, int32(day(2025, 6, 2).YearDay())},
		{1, int32(day(2025, 6, 3).YearDay())},
		{2, int32(day(2025, 6, 3).YearDay())},
	}
	for i, slot := range s.slots {
		assert.Equal(t, canonical[i], slotKey{slot.shiftID, slot.day})
	}

	// every chromosome in a run shares the canonical sequence
	for i := 0; i < 5; i++ {
		ch := s.randomInitChromosome()
		require.Len(t, ch.genes, len(canonical))
		for j, gene := range ch.genes {
			assert.Equal(t, canonical[j], slotKey{gene.shiftID, gene.day})
		}
	}
}
