/*
conflict.go - Double-booking detection

PURPOSE:
  Pure read-and-decide checks that a proposed assignment or leave can
  coexist with everything already on the affected employees' calendars.
  A detected conflict is a user-facing validation failure, never silently
  resolved; the caller refuses the write and surfaces the collision.

SCAN RULES:
  Assignment vs assignment: same employee, same day, overlapping half-open
  time windows.
  Assignment vs leave: any approved or pending leave covering the day
  conflicts outright when full-day, or on time overlap when partial.
  Leave vs assignment: symmetric - a full-day leave collides with any
  assignment on any day in range; a partial-day leave only on time overlap
  on its single day.

  The scan is fail-fast: the first collision found is returned with enough
  detail to render a message. It is not an exhaustive report.

SEE ALSO:
  - lifecycle.go: Calls these checks before every create/update/approve
*/
package schedule

import "context"

// ConflictChecker runs the occupancy scans against the record store.
type ConflictChecker struct {
	Store RecordStore
}

// CheckAssignment verifies that a window on date is free for every employee
// in employeeIDs. excludeID skips the record being updated. Returns a
// *ConflictError describing the first collision, or nil.
func (c *ConflictChecker) CheckAssignment(
	ctx context.Context,
	employeeIDs []string,
	date Date,
	start, end ClockTime,
	excludeID string,
) error {
	existing, err := c.Store.AssignmentsOnDate(ctx, date)
	if err != nil {
		return err
	}
	for _, employeeID := range employeeIDs {
		for _, a := range existing {
			if a.ID == excludeID || !a.HasEmployee(employeeID) {
				continue
			}
			if Overlaps(start, end, a.StartTime, a.EndTime) {
				return &ConflictError{
					EmployeeID: employeeID,
					Date:       date,
					Start:      a.StartTime,
					End:        a.EndTime,
					With:       assignmentLabel(a),
					RecordID:   a.ID,
				}
			}
		}
	}

	leaves, err := c.Store.LeavesCoveringDate(ctx, date)
	if err != nil {
		return err
	}
	for _, employeeID := range employeeIDs {
		for _, l := range leaves {
			if !l.Active() || l.EmployeeID != employeeID {
				continue
			}
			if l.IsFullDay() {
				return &ConflictError{
					EmployeeID: employeeID,
					Date:       date,
					FullDay:    true,
					With:       string(l.Type),
					RecordID:   l.ID,
				}
			}
			if Overlaps(start, end, *l.StartTime, *l.EndTime) {
				return &ConflictError{
					EmployeeID: employeeID,
					Date:       date,
					Start:      *l.StartTime,
					End:        *l.EndTime,
					With:       string(l.Type),
					RecordID:   l.ID,
				}
			}
		}
	}
	return nil
}

// CheckLeave verifies that the leave's range is free of assignments for the
// employee. excludeLeaveID skips the leave being updated (leaves do not
// collide with other leaves here; day occupancy against assignments is the
// contract). startTime/endTime are nil for a full-day leave.
func (c *ConflictChecker) CheckLeave(
	ctx context.Context,
	employeeID string,
	startDate, endDate Date,
	startTime, endTime *ClockTime,
	excludeLeaveID string,
) error {
	assignments, err := c.Store.AssignmentsForEmployee(ctx, employeeID, startDate, endDate)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if !a.HasEmployee(employeeID) {
			continue
		}
		if startTime != nil && endTime != nil {
			// Partial-day leave: only a time overlap on its single day.
			if !a.Date.Equal(startDate) {
				continue
			}
			if Overlaps(*startTime, *endTime, a.StartTime, a.EndTime) {
				return &ConflictError{
					EmployeeID: employeeID,
					Date:       a.Date,
					Start:      a.StartTime,
					End:        a.EndTime,
					With:       assignmentLabel(a),
					RecordID:   a.ID,
				}
			}
			continue
		}
		// Full-day leave: any assignment in range collides.
		return &ConflictError{
			EmployeeID: employeeID,
			Date:       a.Date,
			Start:      a.StartTime,
			End:        a.EndTime,
			With:       assignmentLabel(a),
			RecordID:   a.ID,
		}
	}
	return nil
}

func assignmentLabel(a *Assignment) string {
	if a.ActivityName != "" {
		return a.ActivityName
	}
	return "client assignment"
}
