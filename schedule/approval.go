/*
approval.go - Partner-approval classification

PURPOSE:
  Decides whether a record needs escalated (partner-tier) approval and what
  status it starts in. Assignments escalate on WHEN the work happens
  (holiday, weekend, outside 08:00-17:00); leaves escalate on HOW LONG
  (three or more inclusive days), waived when the requester is partner tier.

INITIAL STATUS:
  Assignment: pending when escalated, approved otherwise. This path never
  produces "pending without partner approval required"; that state is still
  representable (manual edits, stale rows) and the lifecycle treats it as a
  generic pending record.
  Leave: a partner-tier requester's own leave is auto-approved with
  themselves as approver; everything else starts pending.
*/
package schedule

// AssignmentRequiresPartnerApproval reports whether a window on date is
// overtime work: a holiday, a weekend, a start before 08:00 or an end after
// 17:00. Ending at exactly 17:00 is not overtime; 17:01 is.
func AssignmentRequiresPartnerApproval(date Date, start, end ClockTime, holidays HolidayCalendar) bool {
	if holidays != nil && holidays.IsHoliday(date) {
		return true
	}
	if date.IsWeekend() {
		return true
	}
	return start < StandardDayStart || end > StandardDayEnd
}

// InitialAssignmentStatus maps the escalation flag to the starting status.
func InitialAssignmentStatus(partnerApprovalRequired bool) AssignmentStatus {
	if partnerApprovalRequired {
		return AssignmentPending
	}
	return AssignmentApproved
}

// LeaveRequiresPartnerApproval reports whether a leave range needs partner
// approval: three or more inclusive days, unless the requester is partner
// tier. Weekends and holidays inside the range still count toward the
// three days.
func LeaveRequiresPartnerApproval(startDate, endDate Date, requesterPartnerTier bool) bool {
	return DaysInclusive(startDate, endDate) >= 3 && !requesterPartnerTier
}

// ClassifyLeave sets the initial status and approver for a new leave. A
// partner-tier requester filing for themselves is auto-approved on the
// spot; everyone else waits in pending.
func ClassifyLeave(l *Leave, requesterID string, requesterPartnerTier bool) {
	l.PartnerApprovalRequired = LeaveRequiresPartnerApproval(l.StartDate, l.EndDate, requesterPartnerTier)
	if requesterPartnerTier && l.EmployeeID == requesterID {
		l.Status = LeaveApproved
		l.ApprovedBy = requesterID
		return
	}
	l.Status = LeavePending
}
