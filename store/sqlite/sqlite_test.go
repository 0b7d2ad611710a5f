package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minkiicoding/task-scheduling/roster"
	"github.com/minkiicoding/task-scheduling/schedule"
	"github.com/minkiicoding/task-scheduling/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func day(d int) schedule.Date { return schedule.NewDate(2024, time.June, d) }

func fullAssignment(id string) *schedule.Assignment {
	cancelledAt := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	return &schedule.Assignment{
		ID:                      id,
		Date:                    day(13),
		StartTime:               schedule.NewClockTime(8, 0),
		EndTime:                 schedule.NewClockTime(17, 0),
		EmployeeIDs:             []string{"emp-1", "emp-2"},
		ClientID:                "client-1",
		JobType:                 "audit",
		Status:                  schedule.AssignmentPending,
		PartnerApprovalRequired: true,
		ApprovedBy:              "emp-9",
		PartnerApprovedBy:       "emp-8",
		CancelledBy:             "emp-7",
		CancelledAt:             &cancelledAt,
		CreatedAt:               time.Date(2024, time.May, 30, 9, 0, 0, 0, time.UTC),
		UpdatedAt:               time.Date(2024, time.May, 31, 9, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func TestSQLite_AssignmentRoundtrip_AllFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	want := fullAssignment("a-1")

	require.NoError(t, s.InsertAssignments(ctx, []*schedule.Assignment{want}))

	got, err := s.GetAssignment(ctx, "a-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.Date.String(), got.Date.String())
	assert.Equal(t, want.StartTime, got.StartTime)
	assert.Equal(t, want.EndTime, got.EndTime)
	assert.Equal(t, want.EmployeeIDs, got.EmployeeIDs)
	assert.Equal(t, want.ClientID, got.ClientID)
	assert.Equal(t, want.JobType, got.JobType)
	assert.Equal(t, want.Status, got.Status)
	assert.True(t, got.PartnerApprovalRequired)
	assert.Equal(t, want.ApprovedBy, got.ApprovedBy)
	assert.Equal(t, want.PartnerApprovedBy, got.PartnerApprovedBy)
	assert.Equal(t, want.CancelledBy, got.CancelledBy)
	require.NotNil(t, got.CancelledAt)
	assert.True(t, want.CancelledAt.Equal(*got.CancelledAt))
}

func TestSQLite_GetAssignment_MissingIsNil(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetAssignment(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_UpdateAssignment_MissingIsNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateAssignment(context.Background(), fullAssignment("ghost"))
	require.Error(t, err)
	assert.True(t, schedule.IsNotFound(err))
}

func TestSQLite_AssignmentsForEmployee_FiltersMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a1 := fullAssignment("a-1")
	a2 := fullAssignment("a-2")
	a2.EmployeeIDs = []string{"emp-3"}
	require.NoError(t, s.InsertAssignments(ctx, []*schedule.Assignment{a1, a2}))

	got, err := s.AssignmentsForEmployee(ctx, "emp-1", day(10), day(15))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a-1", got[0].ID)
}

func TestSQLite_InsertAssignments_BatchIsAtomic(t *testing.T) {
	// A duplicate ID inside the batch fails the whole insert.
	s := newTestStore(t)
	ctx := context.Background()

	err := s.InsertAssignments(ctx, []*schedule.Assignment{
		fullAssignment("a-1"),
		fullAssignment("a-1"),
	})
	require.Error(t, err)

	got, err := s.GetAssignment(ctx, "a-1")
	require.NoError(t, err)
	assert.Nil(t, got, "first row of the failed batch is rolled back")
}

// =============================================================================
// LEAVES
// =============================================================================

func TestSQLite_LeaveRoundtrip_OptionalTimes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	partial := &schedule.Leave{
		ID: "l-1", EmployeeID: "emp-1",
		StartDate: day(13), EndDate: day(13),
		StartTime: schedule.NewClockTime(13, 0).Ptr(),
		EndTime:   schedule.NewClockTime(17, 0).Ptr(),
		Type:      schedule.LeavePersonal,
		Reason:    "appointment",
		Status:    schedule.LeavePending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	fullDay := &schedule.Leave{
		ID: "l-2", EmployeeID: "emp-1",
		StartDate: day(17), EndDate: day(19),
		Type:      schedule.LeaveAnnual,
		Status:    schedule.LeaveApproved,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.InsertLeave(ctx, partial))
	require.NoError(t, s.InsertLeave(ctx, fullDay))

	gotPartial, err := s.GetLeave(ctx, "l-1")
	require.NoError(t, err)
	require.NotNil(t, gotPartial.StartTime)
	assert.Equal(t, "13:00", gotPartial.StartTime.String())
	assert.False(t, gotPartial.IsFullDay())

	gotFull, err := s.GetLeave(ctx, "l-2")
	require.NoError(t, err)
	assert.Nil(t, gotFull.StartTime)
	assert.True(t, gotFull.IsFullDay())
}

func TestSQLite_LeavesCoveringDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertLeave(ctx, &schedule.Leave{
		ID: "l-1", EmployeeID: "emp-1",
		StartDate: day(10), EndDate: day(14),
		Type: schedule.LeaveAnnual, Status: schedule.LeaveApproved,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}))

	covering, err := s.LeavesCoveringDate(ctx, day(12))
	require.NoError(t, err)
	assert.Len(t, covering, 1)

	outside, err := s.LeavesCoveringDate(ctx, day(20))
	require.NoError(t, err)
	assert.Empty(t, outside)
}

// =============================================================================
// DIRECTORY + HOLIDAYS
// =============================================================================

func TestSQLite_EmployeeUpsertAndUniqueCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, &schedule.Employee{
		ID: "emp-1", Name: "Ana", Code: "E001", Position: roster.PositionA1,
	}))
	require.NoError(t, s.SaveEmployee(ctx, &schedule.Employee{
		ID: "emp-1", Name: "Ana Maria", Code: "E001", Position: roster.PositionA2,
	}), "same id upserts")

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, roster.PositionA2, got.Position)

	err = s.SaveEmployee(ctx, &schedule.Employee{
		ID: "emp-2", Name: "Bo", Code: "E001", Position: roster.PositionA1,
	})
	assert.Error(t, err, "employee codes are unique")
}

func TestSQLite_HolidayUniquePerDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveHoliday(ctx, &schedule.Holiday{ID: "h-1", Date: day(12), Name: "Founding Day"}))
	err := s.SaveHoliday(ctx, &schedule.Holiday{ID: "h-2", Date: day(12), Name: "Duplicate"})
	assert.Error(t, err, "one holiday per date")

	list, err := s.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestSQLite_WithTx_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(view schedule.RecordStore) error {
		if err := view.InsertLeave(ctx, &schedule.Leave{
			ID: "l-1", EmployeeID: "emp-1",
			StartDate: day(10), EndDate: day(10),
			Type: schedule.LeaveSick, Status: schedule.LeavePending,
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.GetLeave(ctx, "l-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_WithTx_ReadsSeeUncommittedWrites(t *testing.T) {
	// The conflict-check-then-insert sequence reads its own writes inside
	// the transaction.
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(view schedule.RecordStore) error {
		if err := view.InsertAssignments(ctx, []*schedule.Assignment{fullAssignment("a-1")}); err != nil {
			return err
		}
		got, err := view.GetAssignment(ctx, "a-1")
		if err != nil {
			return err
		}
		require.NotNil(t, got)
		return nil
	})
	require.NoError(t, err)
}
