/*
lifecycle.go - Create/update/approve/cancel/delete orchestration

PURPOSE:
  The only component that mutates calendar records. Every operation runs
  the same gauntlet: authorization guard, field validation, conflict scan,
  approval classification, then the write, then a fire-and-forget
  notification.

STATE MACHINES:
  Assignment: pending --approve/partnerApprove--> approved
              approved --cancel--> pending (stamps cancelled_by/_at;
                                            NOT a terminal state)
              any --delete--> removed
  Leave:      pending --approve/partnerApprove--> approved
              pending/approved --cancel--> cancelled (terminal)
              any --delete--> removed

MULTI-DAY EXPANSION:
  A create request spanning a date range with exactly the standard
  08:00-17:00 window expands into one independent assignment per day. Every
  day is conflict-checked and classified before ANY record is written; a
  single failing day aborts the whole batch. A range over a weekend yields
  a mix of auto-approved weekdays and partner-pending weekend records.

UPDATE PATH:
  Conflict checks exclude the record being updated from its own conflict
  set, and escalation is recomputed since a changed date or window can
  change it.

SEE ALSO:
  - conflict.go, approval.go: The checks this file sequences
  - roster/guard.go:          The per-action permission rules
*/
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/minkiicoding/task-scheduling/roster"
)

// Manager orchestrates record lifecycles against the store.
type Manager struct {
	Store    TxStore
	Holidays HolidayCalendar
	Sink     NotificationSink
	Logger   *logrus.Logger

	conflicts ConflictChecker
	now       func() time.Time
}

// NewManager wires a Manager. A nil sink disables notifications.
func NewManager(store TxStore, holidays HolidayCalendar, sink NotificationSink, logger *logrus.Logger) *Manager {
	if sink == nil {
		sink = NopSink{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Manager{
		Store:     store,
		Holidays:  holidays,
		Sink:      sink,
		Logger:    logger,
		conflicts: ConflictChecker{Store: store},
		now:       time.Now,
	}
}

// =============================================================================
// ASSIGNMENT INPUTS
// =============================================================================

// AssignmentInput is a validated create/update payload. A zero EndDate
// means a single day; a later EndDate requests multi-day expansion, which
// is only permitted for the standard 08:00-17:00 window.
type AssignmentInput struct {
	StartDate Date
	EndDate   Date
	StartTime ClockTime
	EndTime   ClockTime

	EmployeeIDs  []string
	ClientID     string
	ActivityName string
	JobType      string
}

func (in *AssignmentInput) dates() ([]Date, error) {
	if in.EndDate.IsZero() || in.EndDate.Equal(in.StartDate) {
		return []Date{in.StartDate}, nil
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, newValidationError("end_date", "end date must not be before start date")
	}
	if in.StartTime != StandardDayStart || in.EndTime != StandardDayEnd {
		return nil, newValidationError("end_date", "multi-day requests require the standard 08:00-17:00 window")
	}
	return DatesInclusive(in.StartDate, in.EndDate), nil
}

func (in *AssignmentInput) record(date Date, now time.Time) *Assignment {
	return &Assignment{
		ID:           uuid.NewString(),
		Date:         date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		EmployeeIDs:  append([]string(nil), in.EmployeeIDs...),
		ClientID:     in.ClientID,
		ActivityName: in.ActivityName,
		JobType:      in.JobType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// =============================================================================
// ASSIGNMENT OPERATIONS
// =============================================================================

// CreateAssignment validates, conflict-checks and classifies the request,
// expanding a date range into per-day records. All days are checked before
// any write; the insert is atomic.
func (m *Manager) CreateAssignment(ctx context.Context, actor roster.Actor, in AssignmentInput) ([]*Assignment, error) {
	if !roster.CanCreate(actor) {
		return nil, notAllowed("create assignment", "requires edit rights or a senior position")
	}

	dates, err := in.dates()
	if err != nil {
		return nil, err
	}

	now := m.now()
	records := make([]*Assignment, 0, len(dates))
	for _, date := range dates {
		a := in.record(date, now)
		if err := a.Validate(); err != nil {
			return nil, err
		}
		a.PartnerApprovalRequired = AssignmentRequiresPartnerApproval(date, a.StartTime, a.EndTime, m.Holidays)
		a.Status = InitialAssignmentStatus(a.PartnerApprovalRequired)
		records = append(records, a)
	}

	// Every day is checked before any record is persisted, and check and
	// insert share one transaction so the sequence is serialized against
	// other writers.
	err = m.Store.WithTx(ctx, func(s RecordStore) error {
		checker := ConflictChecker{Store: s}
		for _, a := range records {
			if err := checker.CheckAssignment(ctx, a.EmployeeIDs, a.Date, a.StartTime, a.EndTime, ""); err != nil {
				return err
			}
		}
		if err := s.InsertAssignments(ctx, records); err != nil {
			return fmt.Errorf("insert assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.notifyAssignment(ctx, NotifyCreated, actor, records[0])
	return records, nil
}

// UpdateAssignment re-validates, re-checks conflicts excluding the record
// itself, and recomputes escalation and status from the new date/window.
func (m *Manager) UpdateAssignment(ctx context.Context, actor roster.Actor, id string, in AssignmentInput) (*Assignment, error) {
	if !roster.CanCreate(actor) {
		return nil, notAllowed("update assignment", "requires edit rights or a senior position")
	}

	existing, err := m.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !in.EndDate.IsZero() && !in.EndDate.Equal(in.StartDate) {
		return nil, newValidationError("end_date", "updates apply to a single day")
	}

	a := *existing
	a.Date = in.StartDate
	a.StartTime = in.StartTime
	a.EndTime = in.EndTime
	a.EmployeeIDs = append([]string(nil), in.EmployeeIDs...)
	a.ClientID = in.ClientID
	a.ActivityName = in.ActivityName
	a.JobType = in.JobType
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := m.conflicts.CheckAssignment(ctx, a.EmployeeIDs, a.Date, a.StartTime, a.EndTime, a.ID); err != nil {
		return nil, err
	}

	a.PartnerApprovalRequired = AssignmentRequiresPartnerApproval(a.Date, a.StartTime, a.EndTime, m.Holidays)
	a.Status = InitialAssignmentStatus(a.PartnerApprovalRequired)
	a.UpdatedAt = m.now()

	if err := m.Store.UpdateAssignment(ctx, &a); err != nil {
		return nil, fmt.Errorf("update assignment: %w", err)
	}

	m.notifyAssignment(ctx, NotifyUpdated, actor, &a)
	return &a, nil
}

// ApproveAssignment moves a pending assignment to approved. Escalated
// assignments must go through PartnerApproveAssignment instead. Approving
// an already-approved record is a no-effect error, never a second
// notification.
func (m *Manager) ApproveAssignment(ctx context.Context, actor roster.Actor, id string) (*Assignment, error) {
	if !roster.CanApproveAssignment(actor) {
		return nil, notAllowed("approve assignment", "requires approval rights")
	}

	a, err := m.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == AssignmentApproved {
		return nil, ErrAlreadyApproved
	}
	if a.PartnerApprovalRequired {
		return nil, notAllowed("approve assignment", "requires partner approval")
	}

	a.Status = AssignmentApproved
	a.ApprovedBy = actor.EmployeeID
	a.UpdatedAt = m.now()
	if err := m.Store.UpdateAssignment(ctx, a); err != nil {
		return nil, fmt.Errorf("approve assignment: %w", err)
	}

	m.notifyAssignment(ctx, NotifyApproved, actor, a)
	return a, nil
}

// PartnerApproveAssignment approves an escalated assignment.
func (m *Manager) PartnerApproveAssignment(ctx context.Context, actor roster.Actor, id string) (*Assignment, error) {
	if !roster.CanPartnerApprove(actor) {
		return nil, notAllowed("partner approve assignment", "requires partner tier")
	}

	a, err := m.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == AssignmentApproved {
		return nil, ErrAlreadyApproved
	}
	if !a.PartnerApprovalRequired {
		return nil, notAllowed("partner approve assignment", "assignment does not require partner approval")
	}

	a.Status = AssignmentApproved
	a.PartnerApprovedBy = actor.EmployeeID
	a.UpdatedAt = m.now()
	if err := m.Store.UpdateAssignment(ctx, a); err != nil {
		return nil, fmt.Errorf("partner approve assignment: %w", err)
	}

	m.notifyAssignment(ctx, NotifyPartnerApproved, actor, a)
	return a, nil
}

// CancelAssignment stamps cancelled_by/cancelled_at and returns the record
// to pending. The record is never deleted by cancellation, and pending is
// not a terminal state; this mirrors the observed source behavior.
func (m *Manager) CancelAssignment(ctx context.Context, actor roster.Actor, id string) (*Assignment, error) {
	a, err := m.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	ownerPos, err := m.topAssigneePosition(ctx, a)
	if err != nil {
		return nil, err
	}
	if !m.actorOwnsAssignment(actor, a) && !roster.CanCancel(actor, "", ownerPos) {
		return nil, notAllowed("cancel assignment", "requires ownership, partner tier, or higher position")
	}

	now := m.now()
	a.Status = AssignmentPending
	a.CancelledBy = actor.EmployeeID
	a.CancelledAt = &now
	a.UpdatedAt = now
	if err := m.Store.UpdateAssignment(ctx, a); err != nil {
		return nil, fmt.Errorf("cancel assignment: %w", err)
	}

	m.notifyAssignment(ctx, NotifyCancelled, actor, a)
	return a, nil
}

// DeleteAssignment removes the record entirely.
func (m *Manager) DeleteAssignment(ctx context.Context, actor roster.Actor, id string) error {
	a, err := m.getAssignment(ctx, id)
	if err != nil {
		return err
	}
	ownerPos, err := m.topAssigneePosition(ctx, a)
	if err != nil {
		return err
	}
	ownerID := ""
	if m.actorOwnsAssignment(actor, a) {
		ownerID = actor.EmployeeID
	}
	if !roster.CanDeleteAssignment(actor, ownerID, ownerPos) {
		return notAllowed("delete assignment", "requires ownership or seniority, plus edit rights")
	}

	if err := m.Store.DeleteAssignment(ctx, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (m *Manager) getAssignment(ctx context.Context, id string) (*Assignment, error) {
	a, err := m.Store.GetAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &NotFoundError{Kind: "assignment", ID: id}
	}
	return a, nil
}

func (m *Manager) actorOwnsAssignment(actor roster.Actor, a *Assignment) bool {
	return a.HasEmployee(actor.EmployeeID)
}

// topAssigneePosition resolves the highest ladder position among the
// assignees. Cancelling or deleting over someone's head requires
// outranking the most senior person on the record.
func (m *Manager) topAssigneePosition(ctx context.Context, a *Assignment) (roster.Position, error) {
	top := roster.Position("")
	topLevel := -1
	for _, id := range a.EmployeeIDs {
		e, err := m.Store.GetEmployee(ctx, id)
		if err != nil {
			return "", err
		}
		if e == nil {
			continue
		}
		if lvl := e.Position.Level(); lvl > topLevel {
			top, topLevel = e.Position, lvl
		}
	}
	return top, nil
}

// =============================================================================
// LEAVE INPUTS
// =============================================================================

type LeaveInput struct {
	EmployeeID string
	StartDate  Date
	EndDate    Date
	StartTime  *ClockTime
	EndTime    *ClockTime
	Type       LeaveType
	Reason     string
}

func (in *LeaveInput) record(now time.Time) *Leave {
	return &Leave{
		ID:         uuid.NewString(),
		EmployeeID: in.EmployeeID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Type:       in.Type,
		Reason:     in.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// =============================================================================
// LEAVE OPERATIONS
// =============================================================================

// CreateLeave files a leave for the actor or, for senior-or-above actors,
// for anyone strictly below them on the ladder. A partner-tier requester's
// own leave is approved on the spot.
func (m *Manager) CreateLeave(ctx context.Context, actor roster.Actor, in LeaveInput) (*Leave, error) {
	target, err := m.getEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !roster.CanCreateLeaveFor(actor, target.ID, target.Position) {
		return nil, notAllowed("create leave", "may only file for yourself or employees below your position")
	}

	l := in.record(m.now())
	if err := l.Validate(); err != nil {
		return nil, err
	}

	ClassifyLeave(l, actor.EmployeeID, actor.Capabilities.PartnerTier)

	err = m.Store.WithTx(ctx, func(s RecordStore) error {
		checker := ConflictChecker{Store: s}
		if err := checker.CheckLeave(ctx, l.EmployeeID, l.StartDate, l.EndDate, l.StartTime, l.EndTime, ""); err != nil {
			return err
		}
		if err := s.InsertLeave(ctx, l); err != nil {
			return fmt.Errorf("insert leave: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.notifyLeave(ctx, NotifyCreated, actor, l)
	return l, nil
}

// UpdateLeave rewrites the leave's range/times/type, re-checks conflicts
// excluding the leave itself and recomputes escalation. Status is left
// alone; cancelled leaves are immutable.
func (m *Manager) UpdateLeave(ctx context.Context, actor roster.Actor, id string, in LeaveInput) (*Leave, error) {
	existing, err := m.getLeave(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == LeaveCancelled {
		return nil, ErrTerminalStatus
	}

	owner, err := m.getEmployee(ctx, existing.EmployeeID)
	if err != nil {
		return nil, err
	}
	if actor.EmployeeID != owner.ID && !roster.CanCreateLeaveFor(actor, owner.ID, owner.Position) {
		return nil, notAllowed("update leave", "requires ownership or seniority over the owner")
	}

	l := *existing
	l.EmployeeID = in.EmployeeID
	l.StartDate = in.StartDate
	l.EndDate = in.EndDate
	l.StartTime = in.StartTime
	l.EndTime = in.EndTime
	l.Type = in.Type
	l.Reason = in.Reason
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if err := m.conflicts.CheckLeave(ctx, l.EmployeeID, l.StartDate, l.EndDate, l.StartTime, l.EndTime, l.ID); err != nil {
		return nil, err
	}

	l.PartnerApprovalRequired = LeaveRequiresPartnerApproval(l.StartDate, l.EndDate, actor.Capabilities.PartnerTier)
	l.UpdatedAt = m.now()

	if err := m.Store.UpdateLeave(ctx, &l); err != nil {
		return nil, fmt.Errorf("update leave: %w", err)
	}

	m.notifyLeave(ctx, NotifyUpdated, actor, &l)
	return &l, nil
}

// ApproveLeave performs a regular approval: forbidden on one's own leave,
// on escalated leaves, and on anything not pending. Conflicts are
// re-checked at approval time since assignments may have landed on the
// range while the leave sat pending.
func (m *Manager) ApproveLeave(ctx context.Context, actor roster.Actor, id string) (*Leave, error) {
	l, err := m.getLeave(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := m.getEmployee(ctx, l.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !roster.CanApproveLeave(actor, owner.ID, owner.Position) {
		return nil, notAllowed("approve leave", "cannot approve your own leave; requires partner tier or higher position")
	}
	if l.Status == LeaveApproved {
		return nil, ErrAlreadyApproved
	}
	if l.Status == LeaveCancelled {
		return nil, ErrTerminalStatus
	}
	if l.PartnerApprovalRequired {
		return nil, notAllowed("approve leave", "requires partner approval")
	}

	if err := m.conflicts.CheckLeave(ctx, l.EmployeeID, l.StartDate, l.EndDate, l.StartTime, l.EndTime, l.ID); err != nil {
		return nil, err
	}

	l.Status = LeaveApproved
	l.ApprovedBy = actor.EmployeeID
	l.UpdatedAt = m.now()
	if err := m.Store.UpdateLeave(ctx, l); err != nil {
		return nil, fmt.Errorf("approve leave: %w", err)
	}

	m.notifyLeave(ctx, NotifyApproved, actor, l)
	return l, nil
}

// PartnerApproveLeave approves an escalated leave.
func (m *Manager) PartnerApproveLeave(ctx context.Context, actor roster.Actor, id string) (*Leave, error) {
	if !roster.CanPartnerApprove(actor) {
		return nil, notAllowed("partner approve leave", "requires partner tier")
	}

	l, err := m.getLeave(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.EmployeeID == l.EmployeeID {
		return nil, notAllowed("partner approve leave", "cannot approve your own leave")
	}
	if l.Status == LeaveApproved {
		return nil, ErrAlreadyApproved
	}
	if l.Status == LeaveCancelled {
		return nil, ErrTerminalStatus
	}

	if err := m.conflicts.CheckLeave(ctx, l.EmployeeID, l.StartDate, l.EndDate, l.StartTime, l.EndTime, l.ID); err != nil {
		return nil, err
	}

	l.Status = LeaveApproved
	l.PartnerApprovedBy = actor.EmployeeID
	l.UpdatedAt = m.now()
	if err := m.Store.UpdateLeave(ctx, l); err != nil {
		return nil, fmt.Errorf("partner approve leave: %w", err)
	}

	m.notifyLeave(ctx, NotifyPartnerApproved, actor, l)
	return l, nil
}

// CancelLeave moves a pending or approved leave to cancelled. Unlike
// assignment cancellation, cancelled is terminal for leaves.
func (m *Manager) CancelLeave(ctx context.Context, actor roster.Actor, id string) (*Leave, error) {
	l, err := m.getLeave(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Status == LeaveCancelled {
		return nil, ErrTerminalStatus
	}
	owner, err := m.getEmployee(ctx, l.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !roster.CanCancel(actor, owner.ID, owner.Position) {
		return nil, notAllowed("cancel leave", "requires ownership, partner tier, or higher position")
	}

	now := m.now()
	l.Status = LeaveCancelled
	l.CancelledBy = actor.EmployeeID
	l.CancelledAt = &now
	l.UpdatedAt = now
	if err := m.Store.UpdateLeave(ctx, l); err != nil {
		return nil, fmt.Errorf("cancel leave: %w", err)
	}

	m.notifyLeave(ctx, NotifyCancelled, actor, l)
	return l, nil
}

// DeleteLeave removes the record entirely.
func (m *Manager) DeleteLeave(ctx context.Context, actor roster.Actor, id string) error {
	l, err := m.getLeave(ctx, id)
	if err != nil {
		return err
	}
	owner, err := m.getEmployee(ctx, l.EmployeeID)
	if err != nil {
		return err
	}
	if !roster.CanDeleteLeave(actor, owner.ID, owner.Position) {
		return notAllowed("delete leave", "requires ownership, partner tier, or higher position")
	}

	if err := m.Store.DeleteLeave(ctx, id); err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	return nil
}

func (m *Manager) getLeave(ctx context.Context, id string) (*Leave, error) {
	l, err := m.Store.GetLeave(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, &NotFoundError{Kind: "leave", ID: id}
	}
	return l, nil
}

func (m *Manager) getEmployee(ctx context.Context, id string) (*Employee, error) {
	e, err := m.Store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &NotFoundError{Kind: "employee", ID: id}
	}
	return e, nil
}

// =============================================================================
// NOTIFICATIONS - fire and forget
// =============================================================================

func (m *Manager) notifyAssignment(ctx context.Context, typ NotificationType, actor roster.Actor, a *Assignment) {
	n := Notification{
		Type:         typ,
		Record:       "assignment",
		RecordID:     a.ID,
		ActionBy:     actor.Name,
		Date:         a.Date.String(),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		ActivityName: a.ActivityName,
		JobType:      a.JobType,
		Status:       string(a.Status),
	}
	if typ == NotifyCancelled {
		n.Status = "cancelled"
	}
	for _, id := range a.EmployeeIDs {
		if e, err := m.Store.GetEmployee(ctx, id); err == nil && e != nil {
			n.EmployeeNames = append(n.EmployeeNames, e.Name)
		}
	}
	if a.ClientID != "" {
		if c, err := m.Store.GetClient(ctx, a.ClientID); err == nil && c != nil {
			n.ClientName = c.Name
		}
	}
	m.deliver(ctx, n)
}

func (m *Manager) notifyLeave(ctx context.Context, typ NotificationType, actor roster.Actor, l *Leave) {
	n := Notification{
		Type:      typ,
		Record:    "leave",
		RecordID:  l.ID,
		ActionBy:  actor.Name,
		Date:      l.StartDate.String(),
		EndDate:   l.EndDate.String(),
		LeaveType: string(l.Type),
		Reason:    l.Reason,
		Status:    string(l.Status),
	}
	if l.StartTime != nil {
		n.StartTime = l.StartTime.String()
	}
	if l.EndTime != nil {
		n.EndTime = l.EndTime.String()
	}
	if e, err := m.Store.GetEmployee(ctx, l.EmployeeID); err == nil && e != nil {
		n.EmployeeNames = []string{e.Name}
	}
	m.deliver(ctx, n)
}

// deliver hands the payload to the sink. Failures are logged and swallowed;
// they never surface to the caller or roll back the transition.
func (m *Manager) deliver(ctx context.Context, n Notification) {
	if err := m.Sink.Notify(ctx, n); err != nil {
		m.Logger.WithFields(logrus.Fields{
			"type":      n.Type,
			"record":    n.Record,
			"record_id": n.RecordID,
		}).WithError(err).Warn("notification delivery failed")
	}
}
