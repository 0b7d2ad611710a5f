package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minkiicoding/task-scheduling/roster"
	"github.com/minkiicoding/task-scheduling/schedule"
	"github.com/minkiicoding/task-scheduling/schedule/store"
)

func day(d int) schedule.Date { return schedule.NewDate(2024, time.June, d) }

func testAssignment(id string, d schedule.Date, employeeIDs ...string) *schedule.Assignment {
	return &schedule.Assignment{
		ID:           id,
		Date:         d,
		StartTime:    schedule.NewClockTime(9, 0),
		EndTime:      schedule.NewClockTime(12, 0),
		EmployeeIDs:  employeeIDs,
		ActivityName: "Training",
		Status:       schedule.AssignmentApproved,
	}
}

// =============================================================================
// ASSIGNMENT ROUNDTRIPS
// =============================================================================

func TestMemory_AssignmentRoundtrip(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.InsertAssignments(ctx, []*schedule.Assignment{testAssignment("a-1", day(13), "emp-1")}))

	got, err := mem.GetAssignment(ctx, "a-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, day(13).String(), got.Date.String())

	missing, err := mem.GetAssignment(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing, "missing records come back nil, not as errors")
}

func TestMemory_GetReturnsCopies(t *testing.T) {
	// Mutating a fetched record must not leak back into the store.
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.InsertAssignments(ctx, []*schedule.Assignment{testAssignment("a-1", day(13), "emp-1")}))

	got, _ := mem.GetAssignment(ctx, "a-1")
	got.ActivityName = "mutated"
	got.EmployeeIDs[0] = "hijacked"

	fresh, _ := mem.GetAssignment(ctx, "a-1")
	assert.Equal(t, "Training", fresh.ActivityName)
	assert.Equal(t, "emp-1", fresh.EmployeeIDs[0])
}

func TestMemory_AssignmentsOnDate_SortedAndFiltered(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	late := testAssignment("a-late", day(13), "emp-1")
	late.StartTime = schedule.NewClockTime(14, 0)
	late.EndTime = schedule.NewClockTime(16, 0)
	other := testAssignment("a-other", day(14), "emp-1")
	early := testAssignment("a-early", day(13), "emp-2")

	require.NoError(t, mem.InsertAssignments(ctx, []*schedule.Assignment{late, other, early}))

	onDay, err := mem.AssignmentsOnDate(ctx, day(13))
	require.NoError(t, err)
	require.Len(t, onDay, 2)
	assert.Equal(t, "a-early", onDay[0].ID, "sorted by start time")
	assert.Equal(t, "a-late", onDay[1].ID)
}

func TestMemory_AssignmentsForEmployee_RangeAndMembership(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.InsertAssignments(ctx, []*schedule.Assignment{
		testAssignment("a-1", day(10), "emp-1", "emp-2"),
		testAssignment("a-2", day(12), "emp-2"),
		testAssignment("a-3", day(20), "emp-1"),
	}))

	got, err := mem.AssignmentsForEmployee(ctx, "emp-1", day(9), day(15))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a-1", got[0].ID)
}

// =============================================================================
// LEAVE QUERIES
// =============================================================================

func TestMemory_LeavesCoveringDate(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.InsertLeave(ctx, &schedule.Leave{
		ID: "l-1", EmployeeID: "emp-1",
		StartDate: day(10), EndDate: day(14),
		Type: schedule.LeaveAnnual, Status: schedule.LeaveApproved,
	}))

	covering, err := mem.LeavesCoveringDate(ctx, day(12))
	require.NoError(t, err)
	assert.Len(t, covering, 1)

	outside, err := mem.LeavesCoveringDate(ctx, day(15))
	require.NoError(t, err)
	assert.Empty(t, outside)
}

// =============================================================================
// DIRECTORY
// =============================================================================

func TestMemory_EmployeeUpsert(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	e := &schedule.Employee{ID: "emp-1", Name: "Ana", Position: roster.PositionA1}
	require.NoError(t, mem.SaveEmployee(ctx, e))

	e.Position = roster.PositionA2
	require.NoError(t, mem.SaveEmployee(ctx, e))

	got, err := mem.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, roster.PositionA2, got.Position)

	all, err := mem.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestMemory_WithTx_RollsBackOnError(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	boom := errors.New("boom")
	err := mem.WithTx(ctx, func(s schedule.RecordStore) error {
		if err := s.InsertAssignments(ctx, []*schedule.Assignment{testAssignment("a-1", day(13), "emp-1")}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := mem.GetAssignment(ctx, "a-1")
	require.NoError(t, err)
	assert.Nil(t, got, "failed transaction leaves no trace")
}

func TestMemory_WithTx_CommitsOnSuccess(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	err := mem.WithTx(ctx, func(s schedule.RecordStore) error {
		return s.InsertAssignments(ctx, []*schedule.Assignment{testAssignment("a-1", day(13), "emp-1")})
	})
	require.NoError(t, err)

	got, err := mem.GetAssignment(ctx, "a-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
