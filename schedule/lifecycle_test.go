package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minkiicoding/task-scheduling/roster"
	"github.com/minkiicoding/task-scheduling/schedule"
	memstore "github.com/minkiicoding/task-scheduling/schedule/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type recordingSink struct {
	notes []schedule.Notification
}

func (s *recordingSink) Notify(_ context.Context, n schedule.Notification) error {
	s.notes = append(s.notes, n)
	return nil
}

type failingSink struct{}

func (failingSink) Notify(context.Context, schedule.Notification) error {
	return errors.New("webhook unreachable")
}

type engineFixture struct {
	engine *schedule.Manager
	store  *memstore.Memory
	sink   *recordingSink
	roles  *roster.RoleMapping
}

func newEngine(t *testing.T, holidays schedule.HolidayCalendar) *engineFixture {
	t.Helper()
	mem := memstore.NewMemory()
	sink := &recordingSink{}
	f := &engineFixture{
		engine: schedule.NewManager(mem, holidays, sink, nil),
		store:  mem,
		sink:   sink,
		roles:  roster.NewRoleMapping(),
	}

	seed := []*schedule.Employee{
		{ID: "emp-junior", Name: "Ana Junior", Position: roster.PositionA1},
		{ID: "emp-junior2", Name: "Bo Junior", Position: roster.PositionA1},
		{ID: "emp-senior", Name: "Cleo Senior", Position: roster.PositionSenior},
		{ID: "emp-manager", Name: "Dan Manager", Position: roster.PositionManager},
		{ID: "emp-partner", Name: "Eve Partner", Position: roster.PositionPartner},
		{ID: "emp-partner2", Name: "Flo Partner", Position: roster.PositionPartner},
		{ID: "emp-admin", Name: "Gus Admin", Position: roster.PositionAdmin},
	}
	for _, e := range seed {
		require.NoError(t, mem.SaveEmployee(context.Background(), e))
	}
	return f
}

func (f *engineFixture) actor(t *testing.T, id string) roster.Actor {
	t.Helper()
	e, err := f.store.GetEmployee(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, e)
	return roster.NewActor(e.ID, e.Name, e.Position, f.roles)
}

func (f *engineFixture) lastNote(t *testing.T) schedule.Notification {
	t.Helper()
	require.NotEmpty(t, f.sink.notes)
	return f.sink.notes[len(f.sink.notes)-1]
}

func weekday() schedule.Date { return schedule.NewDate(2024, time.June, 13) } // Thursday
func saturday() schedule.Date { return schedule.NewDate(2024, time.June, 15) }

func standardDayInput(employeeIDs ...string) schedule.AssignmentInput {
	return schedule.AssignmentInput{
		StartDate:    weekday(),
		StartTime:    at(8, 0),
		EndTime:      at(17, 0),
		EmployeeIDs:  employeeIDs,
		ActivityName: "Internal training",
	}
}

// =============================================================================
// ASSIGNMENT CREATION
// =============================================================================

func TestAssignments_CreateStandardDay_AutoApproved(t *testing.T) {
	// GIVEN: A weekday assignment inside 08:00-17:00
	// WHEN: A manager creates it
	// THEN: It lands approved, with no partner escalation

	f := newEngine(t, nil)
	created, err := f.engine.CreateAssignment(context.Background(), f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)
	require.Len(t, created, 1)

	a := created[0]
	assert.Equal(t, schedule.AssignmentApproved, a.Status)
	assert.False(t, a.PartnerApprovalRequired)

	note := f.lastNote(t)
	assert.Equal(t, schedule.NotifyCreated, note.Type)
	assert.Equal(t, "assignment", note.Record)
	assert.Equal(t, []string{"Ana Junior"}, note.EmployeeNames)
}

func TestAssignments_CreateWeekend_PendingPartnerApproval(t *testing.T) {
	f := newEngine(t, nil)
	in := standardDayInput("emp-junior")
	in.StartDate = saturday()

	created, err := f.engine.CreateAssignment(context.Background(), f.actor(t, "emp-manager"), in)
	require.NoError(t, err)

	assert.Equal(t, schedule.AssignmentPending, created[0].Status)
	assert.True(t, created[0].PartnerApprovalRequired)
}

func TestAssignments_CreateOnHoliday_Escalates(t *testing.T) {
	f := newEngine(t, schedule.FixedHolidays{"2024-06-13": "Founding Day"})

	created, err := f.engine.CreateAssignment(context.Background(), f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)
	assert.True(t, created[0].PartnerApprovalRequired)
}

func TestAssignments_CreateByViewer_Denied(t *testing.T) {
	f := newEngine(t, nil)
	_, err := f.engine.CreateAssignment(context.Background(), f.actor(t, "emp-junior"), standardDayInput("emp-junior"))
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))
}

func TestAssignments_CreateClientWorkWithoutJobType_Rejected(t *testing.T) {
	f := newEngine(t, nil)
	in := standardDayInput("emp-junior")
	in.ActivityName = ""
	in.ClientID = "client-1"

	_, err := f.engine.CreateAssignment(context.Background(), f.actor(t, "emp-manager"), in)
	require.Error(t, err)
	assert.True(t, schedule.IsValidation(err))
}

// =============================================================================
// MULTI-DAY EXPANSION
// =============================================================================

func TestAssignments_MultiDay_WeekendMixOfStatuses(t *testing.T) {
	// GIVEN: Friday through Monday with the standard window
	// THEN: Four independent records - weekdays approved, weekend pending

	f := newEngine(t, nil)
	in := standardDayInput("emp-junior")
	in.StartDate = schedule.NewDate(2024, time.June, 14) // Friday
	in.EndDate = in.StartDate.AddDays(3)                 // Monday

	created, err := f.engine.CreateAssignment(context.Background(), f.actor(t, "emp-manager"), in)
	require.NoError(t, err)
	require.Len(t, created, 4)

	assert.Equal(t, schedule.AssignmentApproved, created[0].Status, "Friday")
	assert.Equal(t, schedule.AssignmentPending, created[1].Status, "Saturday")
	assert.Equal(t, schedule.AssignmentPending, created[2].Status, "Sunday")
	assert.Equal(t, schedule.AssignmentApproved, created[3].Status, "Monday")

	// One notification for the batch, not four
	assert.Len(t, f.sink.notes, 1)
}

func TestAssignments_MultiDay_NonStandardWindowRejected(t *testing.T) {
	f := newEngine(t, nil)
	in := standardDayInput("emp-junior")
	in.EndDate = in.StartDate.AddDays(1)
	in.EndTime = at(16, 0)

	_, err := f.engine.CreateAssignment(context.Background(), f.actor(t, "emp-manager"), in)
	require.Error(t, err)
	assert.True(t, schedule.IsValidation(err))
}

func TestAssignments_MultiDay_AllOrNothing(t *testing.T) {
	// GIVEN: The last day of the range already has a colliding assignment
	// WHEN: Creating Monday through Wednesday
	// THEN: Nothing at all is written

	f := newEngine(t, nil)
	ctx := context.Background()
	mon := schedule.NewDate(2024, time.June, 10)
	wed := mon.AddDays(2)

	blocker := standardDayInput("emp-junior")
	blocker.StartDate = wed
	_, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), blocker)
	require.NoError(t, err)

	in := standardDayInput("emp-junior")
	in.StartDate = mon
	in.EndDate = wed
	_, err = f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), in)
	require.Error(t, err)
	assert.True(t, schedule.IsConflict(err))

	// Monday and Tuesday stayed clean even though they were conflict-free
	for _, d := range []schedule.Date{mon, mon.AddDays(1)} {
		onDay, err := f.store.AssignmentsOnDate(ctx, d)
		require.NoError(t, err)
		assert.Empty(t, onDay, "no partial batch on %s", d)
	}
}

// =============================================================================
// ASSIGNMENT APPROVAL
// =============================================================================

func TestAssignments_ApproveEscalated_RequiresPartnerPath(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	in := standardDayInput("emp-junior")
	in.StartDate = saturday()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), in)
	require.NoError(t, err)
	id := created[0].ID

	// Regular approval bounces
	_, err = f.engine.ApproveAssignment(ctx, f.actor(t, "emp-manager"), id)
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))

	// Partner approval lands
	a, err := f.engine.PartnerApproveAssignment(ctx, f.actor(t, "emp-partner"), id)
	require.NoError(t, err)
	assert.Equal(t, schedule.AssignmentApproved, a.Status)
	assert.Equal(t, "emp-partner", a.PartnerApprovedBy)
	assert.Equal(t, schedule.NotifyPartnerApproved, f.lastNote(t).Type)
}

func TestAssignments_ApproveTwice_NoSecondTransition(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)

	notesBefore := len(f.sink.notes)
	_, err = f.engine.ApproveAssignment(ctx, f.actor(t, "emp-manager"), created[0].ID)
	assert.ErrorIs(t, err, schedule.ErrAlreadyApproved)
	assert.Len(t, f.sink.notes, notesBefore, "no notification for a refused transition")
}

func TestAssignments_PartnerApproveUnescalated_Refused(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)

	// Force it back to pending first so only the escalation check can fail
	_, err = f.engine.CancelAssignment(ctx, f.actor(t, "emp-manager"), created[0].ID)
	require.NoError(t, err)

	_, err = f.engine.PartnerApproveAssignment(ctx, f.actor(t, "emp-partner"), created[0].ID)
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))
}

// =============================================================================
// ASSIGNMENT CANCEL / DELETE
// =============================================================================

func TestAssignments_CancelReturnsToPending(t *testing.T) {
	// Cancellation is NOT terminal for assignments: the record survives,
	// stamped, back in pending.

	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)
	require.Equal(t, schedule.AssignmentApproved, created[0].Status)

	cancelled, err := f.engine.CancelAssignment(ctx, f.actor(t, "emp-manager"), created[0].ID)
	require.NoError(t, err)

	assert.Equal(t, schedule.AssignmentPending, cancelled.Status)
	assert.Equal(t, "emp-manager", cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)

	// Still in the store, and approvable again
	stored, err := f.store.GetAssignment(ctx, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	reapproved, err := f.engine.ApproveAssignment(ctx, f.actor(t, "emp-manager"), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.AssignmentApproved, reapproved.Status)

	// The cancel notification reports "cancelled" even though the stored
	// status is pending.
	assert.Equal(t, "cancelled", f.sink.notes[1].Status)
}

func TestAssignments_CancelByOwner_Allowed(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)

	_, err = f.engine.CancelAssignment(ctx, f.actor(t, "emp-junior"), created[0].ID)
	assert.NoError(t, err, "assignee cancels their own assignment")
}

func TestAssignments_CancelByUnrelatedPeer_Denied(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)

	_, err = f.engine.CancelAssignment(ctx, f.actor(t, "emp-junior2"), created[0].ID)
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))
}

func TestAssignments_DeleteRemovesRecord(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)

	require.NoError(t, f.engine.DeleteAssignment(ctx, f.actor(t, "emp-manager"), created[0].ID))

	stored, err := f.store.GetAssignment(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

// =============================================================================
// ASSIGNMENT UPDATE
// =============================================================================

func TestAssignments_UpdateExcludesSelfFromConflicts(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)

	in := standardDayInput("emp-junior")
	in.StartTime = at(9, 0)
	in.EndTime = at(16, 0)
	updated, err := f.engine.UpdateAssignment(ctx, f.actor(t, "emp-manager"), created[0].ID, in)
	require.NoError(t, err, "shrinking the same record must not self-conflict")
	assert.Equal(t, at(9, 0), updated.StartTime)
}

func TestAssignments_UpdateRecomputesEscalation(t *testing.T) {
	// Moving an approved weekday assignment onto a Saturday re-escalates it.
	f := newEngine(t, nil)
	ctx := context.Background()
	created, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-junior"))
	require.NoError(t, err)
	require.Equal(t, schedule.AssignmentApproved, created[0].Status)

	in := standardDayInput("emp-junior")
	in.StartDate = saturday()
	updated, err := f.engine.UpdateAssignment(ctx, f.actor(t, "emp-manager"), created[0].ID, in)
	require.NoError(t, err)

	assert.True(t, updated.PartnerApprovalRequired)
	assert.Equal(t, schedule.AssignmentPending, updated.Status)
}

// =============================================================================
// LEAVE LIFECYCLE
// =============================================================================

func leaveInput(employeeID string, start, end schedule.Date) schedule.LeaveInput {
	return schedule.LeaveInput{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Type:       schedule.LeaveAnnual,
		Reason:     "family trip",
	}
}

func TestLeaves_CreateForSelf_Pending(t *testing.T) {
	f := newEngine(t, nil)
	l, err := f.engine.CreateLeave(context.Background(), f.actor(t, "emp-senior"), leaveInput("emp-senior", weekday(), weekday()))
	require.NoError(t, err)

	assert.Equal(t, schedule.LeavePending, l.Status)
	assert.False(t, l.PartnerApprovalRequired)
	assert.Equal(t, schedule.NotifyCreated, f.lastNote(t).Type)
	assert.Equal(t, "leave", f.lastNote(t).Record)
}

func TestLeaves_PartnerOwnLeave_AutoApproved(t *testing.T) {
	f := newEngine(t, nil)
	mon := schedule.NewDate(2024, time.June, 10)
	l, err := f.engine.CreateLeave(context.Background(), f.actor(t, "emp-partner"), leaveInput("emp-partner", mon, mon.AddDays(4)))
	require.NoError(t, err)

	assert.Equal(t, schedule.LeaveApproved, l.Status)
	assert.Equal(t, "emp-partner", l.ApprovedBy)
	assert.False(t, l.PartnerApprovalRequired, "partner tier waives the three-day rule")
}

func TestLeaves_ManagerFilesForJunior_Allowed(t *testing.T) {
	f := newEngine(t, nil)
	l, err := f.engine.CreateLeave(context.Background(), f.actor(t, "emp-manager"), leaveInput("emp-junior", weekday(), weekday()))
	require.NoError(t, err)
	assert.Equal(t, "emp-junior", l.EmployeeID)
	assert.Equal(t, schedule.LeavePending, l.Status, "filed-for leave still starts pending")
}

func TestLeaves_SeniorFilesForPeer_Denied(t *testing.T) {
	f := newEngine(t, nil)
	_, err := f.engine.CreateLeave(context.Background(), f.actor(t, "emp-manager"), leaveInput("emp-partner", weekday(), weekday()))
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))
}

func TestLeaves_EscalatedLeave_PartnerPathOnly(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	mon := schedule.NewDate(2024, time.June, 10)
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-senior"), leaveInput("emp-senior", mon, mon.AddDays(2)))
	require.NoError(t, err)
	require.True(t, l.PartnerApprovalRequired)

	_, err = f.engine.ApproveLeave(ctx, f.actor(t, "emp-manager"), l.ID)
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))

	approved, err := f.engine.PartnerApproveLeave(ctx, f.actor(t, "emp-partner"), l.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.LeaveApproved, approved.Status)
	assert.Equal(t, "emp-partner", approved.PartnerApprovedBy)
}

func TestLeaves_ApproveOwnLeave_Denied(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-manager"), leaveInput("emp-manager", weekday(), weekday()))
	require.NoError(t, err)

	_, err = f.engine.ApproveLeave(ctx, f.actor(t, "emp-manager"), l.ID)
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))
}

func TestLeaves_PartnerApproveOwnLeave_Denied(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	mon := schedule.NewDate(2024, time.June, 10)

	// Filed by the admin on the partner's behalf, so it sits pending
	// instead of auto-approving.
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-admin"), leaveInput("emp-partner", mon, mon.AddDays(2)))
	require.NoError(t, err)
	require.Equal(t, schedule.LeavePending, l.Status)

	_, err = f.engine.PartnerApproveLeave(ctx, f.actor(t, "emp-partner"), l.ID)
	require.Error(t, err, "partner tier never partner-approves its own leave")
	assert.True(t, schedule.IsAuthorization(err))

	// A different partner can.
	approved, err := f.engine.PartnerApproveLeave(ctx, f.actor(t, "emp-partner2"), l.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.LeaveApproved, approved.Status)
}

func TestLeaves_ApproveBySenior_Denied(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-manager"), leaveInput("emp-junior", weekday(), weekday()))
	require.NoError(t, err)

	// Senior has approval rights on assignments but sits below the
	// supervisor whitelist for leaves.
	_, err = f.engine.ApproveLeave(ctx, f.actor(t, "emp-senior"), l.ID)
	require.Error(t, err)
	assert.True(t, schedule.IsAuthorization(err))
}

func TestLeaves_CancelIsTerminal(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-senior"), leaveInput("emp-senior", weekday(), weekday()))
	require.NoError(t, err)

	cancelled, err := f.engine.CancelLeave(ctx, f.actor(t, "emp-senior"), l.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.LeaveCancelled, cancelled.Status)
	assert.Equal(t, "emp-senior", cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)

	// Every further transition bounces off the terminal state
	_, err = f.engine.CancelLeave(ctx, f.actor(t, "emp-senior"), l.ID)
	assert.ErrorIs(t, err, schedule.ErrTerminalStatus)

	_, err = f.engine.ApproveLeave(ctx, f.actor(t, "emp-partner"), l.ID)
	assert.ErrorIs(t, err, schedule.ErrTerminalStatus)

	_, err = f.engine.UpdateLeave(ctx, f.actor(t, "emp-senior"), l.ID, leaveInput("emp-senior", weekday(), weekday()))
	assert.ErrorIs(t, err, schedule.ErrTerminalStatus)
}

func TestLeaves_CancelledLeaveFreesTheDay(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-senior"), leaveInput("emp-senior", weekday(), weekday()))
	require.NoError(t, err)
	_, err = f.engine.CancelLeave(ctx, f.actor(t, "emp-senior"), l.ID)
	require.NoError(t, err)

	_, err = f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), standardDayInput("emp-senior"))
	assert.NoError(t, err, "cancelled leave no longer occupies the day")
}

func TestLeaves_UpdateReclassifiesEscalation(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	mon := schedule.NewDate(2024, time.June, 10)
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-senior"), leaveInput("emp-senior", mon, mon))
	require.NoError(t, err)
	require.False(t, l.PartnerApprovalRequired)

	updated, err := f.engine.UpdateLeave(ctx, f.actor(t, "emp-senior"), l.ID, leaveInput("emp-senior", mon, mon.AddDays(2)))
	require.NoError(t, err)
	assert.True(t, updated.PartnerApprovalRequired, "stretching to three days escalates")
	assert.Equal(t, schedule.LeavePending, updated.Status, "update never flips status")
}

func TestLeaves_ApproveRechecksConflicts(t *testing.T) {
	// GIVEN: A pending leave, then an assignment lands on the same day
	// WHEN: An approver signs off
	// THEN: The approval is refused with a conflict

	f := newEngine(t, nil)
	ctx := context.Background()
	l, err := f.engine.CreateLeave(ctx, f.actor(t, "emp-manager"), leaveInput("emp-junior", weekday(), weekday()))
	require.NoError(t, err)

	// The day fills up while the leave waits: seed directly, bypassing the
	// engine's own conflict refusal.
	seedAssignment(t, f.store, "a-race", "emp-junior", weekday(), at(9, 0), at(12, 0))

	_, err = f.engine.ApproveLeave(ctx, f.actor(t, "emp-manager"), l.ID)
	require.Error(t, err)
	assert.True(t, schedule.IsConflict(err))
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestNotifications_FailureNeverBlocksTheWrite(t *testing.T) {
	mem := memstore.NewMemory()
	engine := schedule.NewManager(mem, nil, failingSink{}, nil)
	roles := roster.NewRoleMapping()
	require.NoError(t, mem.SaveEmployee(context.Background(), &schedule.Employee{
		ID: "emp-manager", Name: "Dan Manager", Position: roster.PositionManager,
	}))
	actor := roster.NewActor("emp-manager", "Dan Manager", roster.PositionManager, roles)

	created, err := engine.CreateAssignment(context.Background(), actor, standardDayInput("emp-manager"))
	require.NoError(t, err, "sink failure is swallowed")

	stored, err := mem.GetAssignment(context.Background(), created[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestNotifications_CarryRecordDetails(t *testing.T) {
	f := newEngine(t, nil)
	ctx := context.Background()
	require.NoError(t, f.store.SaveClient(ctx, &schedule.Client{ID: "client-1", Name: "Acme Corp"}))

	in := standardDayInput("emp-junior")
	in.ActivityName = ""
	in.ClientID = "client-1"
	in.JobType = "audit"
	_, err := f.engine.CreateAssignment(ctx, f.actor(t, "emp-manager"), in)
	require.NoError(t, err)

	note := f.lastNote(t)
	assert.Equal(t, "Acme Corp", note.ClientName)
	assert.Equal(t, "audit", note.JobType)
	assert.Equal(t, "Dan Manager", note.ActionBy)
	assert.Equal(t, "2024-06-13", note.Date)
}

// =============================================================================
// TRANSACTIONAL WRITES
// =============================================================================

// txSpyStore counts WithTx invocations while delegating to the memory store.
type txSpyStore struct {
	*memstore.Memory
	txCalls int
}

func (s *txSpyStore) WithTx(ctx context.Context, fn func(schedule.RecordStore) error) error {
	s.txCalls++
	return s.Memory.WithTx(ctx, fn)
}

func TestCreate_ChecksAndInsertsInOneTransaction(t *testing.T) {
	// GIVEN: An engine over a store that records transaction use
	// WHEN: An assignment and a leave are created
	// THEN: Each create runs its conflict scan and insert inside WithTx

	spy := &txSpyStore{Memory: memstore.NewMemory()}
	engine := schedule.NewManager(spy, nil, schedule.NopSink{}, nil)
	roles := roster.NewRoleMapping()
	ctx := context.Background()
	require.NoError(t, spy.SaveEmployee(ctx, &schedule.Employee{
		ID: "emp-manager", Name: "Dan Manager", Position: roster.PositionManager,
	}))
	require.NoError(t, spy.SaveEmployee(ctx, &schedule.Employee{
		ID: "emp-junior", Name: "Ana Junior", Position: roster.PositionA1,
	}))
	actor := roster.NewActor("emp-manager", "Dan Manager", roster.PositionManager, roles)

	_, err := engine.CreateAssignment(ctx, actor, standardDayInput("emp-junior"))
	require.NoError(t, err)
	assert.Equal(t, 1, spy.txCalls)

	_, err = engine.CreateLeave(ctx, actor, leaveInput("emp-junior", saturday(), saturday()))
	require.NoError(t, err)
	assert.Equal(t, 2, spy.txCalls)
}

func TestCreate_ConflictInsideTransactionWritesNothing(t *testing.T) {
	// GIVEN: An existing assignment occupying the day
	// WHEN: A colliding leave is filed
	// THEN: The transaction surfaces the conflict and stores no leave

	spy := &txSpyStore{Memory: memstore.NewMemory()}
	engine := schedule.NewManager(spy, nil, schedule.NopSink{}, nil)
	roles := roster.NewRoleMapping()
	ctx := context.Background()
	require.NoError(t, spy.SaveEmployee(ctx, &schedule.Employee{
		ID: "emp-manager", Name: "Dan Manager", Position: roster.PositionManager,
	}))
	require.NoError(t, spy.SaveEmployee(ctx, &schedule.Employee{
		ID: "emp-junior", Name: "Ana Junior", Position: roster.PositionA1,
	}))
	actor := roster.NewActor("emp-manager", "Dan Manager", roster.PositionManager, roles)

	_, err := engine.CreateAssignment(ctx, actor, standardDayInput("emp-junior"))
	require.NoError(t, err)

	_, err = engine.CreateLeave(ctx, actor, leaveInput("emp-junior", weekday(), weekday()))
	require.Error(t, err)
	assert.True(t, schedule.IsConflict(err))

	leaves, err := spy.LeavesCoveringDate(ctx, weekday())
	require.NoError(t, err)
	assert.Empty(t, leaves)
}
