/*
types.go - Calendar record types

PURPOSE:
  The records the engine reads and writes: Assignments (work placed on a
  single day with a time window, for one or more employees) and Leaves (an
  inclusive date range, optionally a partial day), plus the referential
  master data around them (employees, clients, holidays).

CORE INVARIANT:
  For a given employee and day, the time intervals occupied by that
  employee's non-cancelled assignments and non-cancelled leaves must be
  pairwise non-overlapping. A full-day leave occupies [00:00, 24:00).

STATUS ASYMMETRY:
  Assignment has no terminal cancelled status: cancelling an approved
  assignment returns it to pending and stamps CancelledBy/CancelledAt.
  Leave cancellation IS terminal. This asymmetry is source behavior and is
  pinned by tests; do not "fix" it here.

SEE ALSO:
  - conflict.go:  Enforces the occupancy invariant
  - lifecycle.go: The only component that mutates these records
*/
package schedule

import (
	"time"

	"github.com/minkiicoding/task-scheduling/roster"
)

// =============================================================================
// MASTER DATA
// =============================================================================

type Employee struct {
	ID       string
	Name     string
	Code     string // optional unique employee code
	Position roster.Position
}

// Client is purely referential; it has no scheduling semantics.
type Client struct {
	ID    string
	Name  string
	Color string
	Code  string
}

type Holiday struct {
	ID   string
	Date Date
	Name string
}

// =============================================================================
// ASSIGNMENT - one day of work for one or more employees
// =============================================================================

type AssignmentStatus string

const (
	AssignmentPending  AssignmentStatus = "pending"
	AssignmentApproved AssignmentStatus = "approved"
)

type Assignment struct {
	ID          string
	Date        Date
	StartTime   ClockTime
	EndTime     ClockTime
	EmployeeIDs []string

	// Exactly one of ClientID / ActivityName is set. Client work carries a
	// JobType description; non-charge activities do not.
	ClientID     string
	ActivityName string
	JobType      string

	Status                  AssignmentStatus
	PartnerApprovalRequired bool
	ApprovedBy              string
	PartnerApprovedBy       string

	// CancelledBy/CancelledAt are stamped by cancellation, which returns
	// the record to pending rather than removing it.
	CancelledBy string
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClientWork reports whether the assignment is billed to a client.
func (a *Assignment) IsClientWork() bool { return a.ClientID != "" }

// HasEmployee reports whether employeeID is among the assignees.
func (a *Assignment) HasEmployee(employeeID string) bool {
	for _, id := range a.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// Validate checks the intrinsic field invariants (no store access).
func (a *Assignment) Validate() error {
	if a.Date.IsZero() {
		return newValidationError("date", "date is required")
	}
	if a.EndTime <= a.StartTime {
		return newValidationError("end_time", "end time must be after start time")
	}
	if len(a.EmployeeIDs) == 0 {
		return newValidationError("employee_ids", "at least one employee is required")
	}
	if a.ClientID != "" && a.ActivityName != "" {
		return newValidationError("client_id", "client and activity are mutually exclusive")
	}
	if a.ClientID == "" && a.ActivityName == "" {
		return newValidationError("client_id", "either a client or an activity is required")
	}
	if a.ClientID != "" && a.JobType == "" {
		return newValidationError("job_type", "job type is required for client work")
	}
	return nil
}

// =============================================================================
// LEAVE - inclusive date range, optionally a partial day
// =============================================================================

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveCancelled LeaveStatus = "cancelled" // terminal
)

type LeaveType string

const (
	LeaveAnnual   LeaveType = "Annual Leave"
	LeavePersonal LeaveType = "Personal Leave"
	LeaveSick     LeaveType = "Sick Leave"
	LeaveCPA      LeaveType = "CPA Leave"
)

var leaveTypes = map[LeaveType]bool{
	LeaveAnnual:   true,
	LeavePersonal: true,
	LeaveSick:     true,
	LeaveCPA:      true,
}

type Leave struct {
	ID         string
	EmployeeID string
	StartDate  Date
	EndDate    Date

	// StartTime/EndTime are set only for a single-day partial leave.
	StartTime *ClockTime
	EndTime   *ClockTime

	Type   LeaveType
	Reason string

	Status                  LeaveStatus
	PartnerApprovalRequired bool
	ApprovedBy              string
	PartnerApprovedBy       string

	CancelledBy string
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFullDay reports whether the leave occupies whole days.
func (l *Leave) IsFullDay() bool { return l.StartTime == nil || l.EndTime == nil }

// Covers reports whether date falls inside the leave's range.
func (l *Leave) Covers(date Date) bool { return date.Within(l.StartDate, l.EndDate) }

// Active reports whether the leave still occupies calendar time.
func (l *Leave) Active() bool { return l.Status != LeaveCancelled }

// Validate checks the intrinsic field invariants (no store access).
func (l *Leave) Validate() error {
	if l.EmployeeID == "" {
		return newValidationError("employee_id", "employee is required")
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return newValidationError("start_date", "start and end dates are required")
	}
	if l.EndDate.Before(l.StartDate) {
		return newValidationError("end_date", "end date must not be before start date")
	}
	if !leaveTypes[l.Type] {
		return newValidationError("leave_type", "unknown leave type")
	}
	if (l.StartTime == nil) != (l.EndTime == nil) {
		return newValidationError("start_time", "partial leave needs both start and end times")
	}
	if l.StartTime != nil {
		if !l.StartDate.Equal(l.EndDate) {
			return newValidationError("start_time", "partial-day times are only valid for a single-day leave")
		}
		if *l.EndTime <= *l.StartTime {
			return newValidationError("end_time", "end time must be after start time")
		}
	}
	return nil
}
