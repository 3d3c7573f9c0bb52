package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShiftStore stands in for the repository in runner tests.
type fakeShiftStore struct {
	inserted [][]*domain.Shift
	err      error
}

func (f *fakeShiftStore) InsertShifts(shifts []*domain.Shift) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = append(f.inserted, shifts)
	ids := make([]int64, len(shifts))
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids, nil
}

func feasibleScheduler(t *testing.T, reporter Reporter) *Scheduler {
	t.Helper()

	requirements := []domain.ScheduleRequirement{
		singleRoleRequirement(day(2025, 6, 2), 1, 1, 1),
		singleRoleRequirement(day(2025, 6, 3), 1, 1, 1),
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
		{ID: 2, Code: "C2", RoleIDs: []int64{1}},
	}

	s, err := New(testParameters(), requirements, testPredefinedShifts(), testRoles(), employees, reporter)
	require.NoError(t, err)
	return s
}

func TestRunnerPersistsAndRegistersBatch(t *testing.T) {
	reporter := &recordingReporter{}
	store := &fakeShiftStore{}
	batches := NewBatchRegistry(time.Hour)
	handle := uuid.New()

	runner := NewRunner(handle, feasibleScheduler(t, reporter), NewDecoder(testPredefinedShifts(), testRoles()), store, batches, reporter)
	runner.Run(context.Background())

	require.Len(t, store.inserted, 1)
	require.Len(t, store.inserted[0], 2)

	require.Len(t, reporter.notifications, 1)
	assert.True(t, reporter.notifications[0].Outcome.Success)
	assert.Equal(t, handle, reporter.notifications[0].BatchHandle)

	ids, ok := batches.Take(handle)
	require.True(t, ok)
	assert.Len(t, ids, 2)
}

func TestRunnerSoftFailurePersistsNothing(t *testing.T) {
	// one Cook against a slot needing two passes the capacity estimate
	// (2 required over 2 days vs 1 employee x 2 days) but can never be
	// fully covered, so the best fitness stays at 0.5
	requirements := []domain.ScheduleRequirement{
		{
			Date: day(2025, 6, 2),
			Shifts: []domain.ScheduleRequirementShift{
				{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 2}}},
			},
		},
		{
			Date: day(2025, 6, 3),
			Shifts: []domain.ScheduleRequirementShift{
				{PredefinedShiftID: 1, Roles: []domain.ScheduleRequirementRole{{RoleID: 1, Quantity: 0}}},
			},
		},
	}
	employees := []*domain.Employee{
		{ID: 1, Code: "C1", RoleIDs: []int64{1}},
	}

	parameters := testParameters()
	parameters.MaxGenerations = 10

	reporter := &recordingReporter{}
	s, err := New(parameters, requirements, testPredefinedShifts(), testRoles(), employees, reporter)
	require.NoError(t, err)

	store := &fakeShiftStore{}
	batches := NewBatchRegistry(time.Hour)
	handle := uuid.New()

	runner := NewRunner(handle, s, NewDecoder(testPredefinedShifts(), testRoles()), store, batches, reporter)
	runner.Run(context.Background())

	assert.Empty(t, store.inserted)

	require.Len(t, reporter.notifications, 1)
	assert.False(t, reporter.notifications[0].Outcome.Success)
	assert.Contains(t, reporter.notifications[0].Outcome.Message, "try generating again")

	_, ok := batches.Take(handle)
	assert.False(t, ok)
}

func TestRunnerStoreFailureLeavesNoBatch(t *testing.T) {
	reporter := &recordingReporter{}
	store := &fakeShiftStore{err: errors.New("connection lost")}
	batches := NewBatchRegistry(time.Hour)
	handle := uuid.New()

	runner := NewRunner(handle, feasibleScheduler(t, reporter), NewDecoder(testPredefinedShifts(), testRoles()), store, batches, reporter)
	runner.Run(context.Background())

	require.Len(t, reporter.notifications, 1)
	assert.False(t, reporter.notifications[0].Outcome.Success)

	_, ok := batches.Take(handle)
	assert.False(t, ok)
}
