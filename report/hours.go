/*
Package report aggregates scheduled hours for reporting views.

PURPOSE:
  Monthly per-employee totals (client hours, non-charge hours, leave
  hours) and the per-day unassigned-capacity helper used by week views.

FORMULA:
  Monthly aggregates use the flat-deduction formula (one hour off any
  span of four hours or more). UnassignedHours is a calendar-view figure
  and values booked spans with the lunch-overlap formula instead; the two
  intentionally disagree on spans like 13:00-18:00.

LEAVE COUNTING:
  Only approved leaves count. A full-day leave counts 8h per covered day,
  weekends and holidays included. A partial-day leave counts its span
  through the flat-deduction formula.

SEE ALSO:
  - schedule/clock.go: ReportHours vs WorkingHours
*/
package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minkiicoding/task-scheduling/schedule"
)

// FullDayHours is the value of one full day of leave in a report.
var FullDayHours = decimal.NewFromInt(8)

// EmployeeHours is one employee's aggregate for a reporting period.
type EmployeeHours struct {
	EmployeeID   string                     `json:"employee_id"`
	EmployeeName string                     `json:"employee_name"`
	ClientHours  decimal.Decimal            `json:"client_hours"`
	ByClient     map[string]decimal.Decimal `json:"by_client"`
	NonCharge    decimal.Decimal            `json:"non_charge_hours"`
	LeaveHours   decimal.Decimal            `json:"leave_hours"`
	Total        decimal.Decimal            `json:"total_hours"`
}

// Reporter computes hour aggregates from a record store.
type Reporter struct {
	Store    schedule.RecordStore
	Holidays schedule.HolidayCalendar
}

// MonthlyHours aggregates hours for every employee over one calendar month.
// Assignments count whatever their status; only approved leaves count.
func (r *Reporter) MonthlyHours(ctx context.Context, year int, month int) ([]*EmployeeHours, error) {
	from := schedule.NewDate(year, time.Month(month), 1)
	to := from.AddDays(daysInMonth(year, month) - 1)

	employees, err := r.Store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := r.Store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.Name
	}

	var out []*EmployeeHours
	for _, e := range employees {
		agg, err := r.employeeMonth(ctx, e.ID, e.Name, from, to, clientNames)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
	return out, nil
}

func (r *Reporter) employeeMonth(ctx context.Context, employeeID, name string, from, to schedule.Date, clientNames map[string]string) (*EmployeeHours, error) {
	agg := &EmployeeHours{
		EmployeeID:   employeeID,
		EmployeeName: name,
		ByClient:     map[string]decimal.Decimal{},
	}

	assignments, err := r.Store.AssignmentsForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		hours := schedule.ReportHours(a.StartTime, a.EndTime)
		if a.IsClientWork() {
			agg.ClientHours = agg.ClientHours.Add(hours)
			label := clientNames[a.ClientID]
			if label == "" {
				label = a.ClientID
			}
			agg.ByClient[label] = agg.ByClient[label].Add(hours)
		} else {
			agg.NonCharge = agg.NonCharge.Add(hours)
		}
	}

	leaves, err := r.Store.LeavesForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	for _, l := range leaves {
		if l.Status != schedule.LeaveApproved {
			continue
		}
		agg.LeaveHours = agg.LeaveHours.Add(leaveHours(l, from, to))
	}

	agg.Total = agg.ClientHours.Add(agg.NonCharge).Add(agg.LeaveHours)
	return agg, nil
}

// leaveHours counts a leave's contribution clipped to [from, to]. Full-day
// leaves are a raw day count times 8h; weekends and holidays inside the
// range are not skipped.
func leaveHours(l *schedule.Leave, from, to schedule.Date) decimal.Decimal {
	if !l.IsFullDay() {
		if l.StartDate.Within(from, to) {
			return schedule.ReportHours(*l.StartTime, *l.EndTime)
		}
		return decimal.Zero
	}
	total := decimal.Zero
	for _, d := range schedule.DatesInclusive(l.StartDate, l.EndDate) {
		if !d.Within(from, to) {
			continue
		}
		total = total.Add(FullDayHours)
	}
	return total
}

// UnassignedHours is the remaining standard capacity for one employee on
// one day: 8h minus approved assignment hours, valued with the
// lunch-overlap formula like the rest of the calendar views. Weekends,
// holidays and days under an approved full-day leave have zero capacity.
func (r *Reporter) UnassignedHours(ctx context.Context, employeeID string, date schedule.Date) (decimal.Decimal, error) {
	if date.IsWeekend() || r.isHoliday(date) {
		return decimal.Zero, nil
	}

	leaves, err := r.Store.LeavesForEmployee(ctx, employeeID, date, date)
	if err != nil {
		return decimal.Zero, err
	}
	for _, l := range leaves {
		if l.Status == schedule.LeaveApproved && l.IsFullDay() {
			return decimal.Zero, nil
		}
	}

	assignments, err := r.Store.AssignmentsForEmployee(ctx, employeeID, date, date)
	if err != nil {
		return decimal.Zero, err
	}
	booked := decimal.Zero
	for _, a := range assignments {
		if a.Status != schedule.AssignmentApproved {
			continue
		}
		booked = booked.Add(schedule.WorkingHours(a.StartTime, a.EndTime))
	}

	remaining := FullDayHours.Sub(booked)
	if remaining.IsNegative() {
		return decimal.Zero, nil
	}
	return remaining, nil
}

func (r *Reporter) isHoliday(d schedule.Date) bool {
	return r.Holidays != nil && r.Holidays.IsHoliday(d)
}

func daysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
