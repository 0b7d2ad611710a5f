/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

WIRE FORMATS:
  Dates are "2006-01-02", clock times are "15:04", timestamps RFC3339.
  Optional clock times are nullable strings.

VALIDATION:
  Structural validation (parseable dates/times) happens while converting
  to domain inputs; business validation lives in the schedule package.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/types.go: Domain records these mirror
*/
package api

import (
	"time"

	"github.com/minkiicoding/task-scheduling/roster"
	"github.com/minkiicoding/task-scheduling/schedule"
)

// =============================================================================
// ASSIGNMENTS
// =============================================================================

// AssignmentDTO represents an assignment in API responses.
type AssignmentDTO struct {
	ID                      string   `json:"id"`
	Date                    string   `json:"date"`
	StartTime               string   `json:"start_time"`
	EndTime                 string   `json:"end_time"`
	EmployeeIDs             []string `json:"employee_ids"`
	ClientID                string   `json:"client_id,omitempty"`
	ActivityName            string   `json:"activity_name,omitempty"`
	JobType                 string   `json:"job_type,omitempty"`
	Status                  string   `json:"status"`
	PartnerApprovalRequired bool     `json:"partner_approval_required"`
	ApprovedBy              string   `json:"approved_by,omitempty"`
	PartnerApprovedBy       string   `json:"partner_approved_by,omitempty"`
	CancelledBy             string   `json:"cancelled_by,omitempty"`
	CancelledAt             string   `json:"cancelled_at,omitempty"`
	CreatedAt               string   `json:"created_at,omitempty"`
	UpdatedAt               string   `json:"updated_at,omitempty"`
}

func toAssignmentDTO(a *schedule.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:                      a.ID,
		Date:                    a.Date.String(),
		StartTime:               a.StartTime.String(),
		EndTime:                 a.EndTime.String(),
		EmployeeIDs:             a.EmployeeIDs,
		ClientID:                a.ClientID,
		ActivityName:            a.ActivityName,
		JobType:                 a.JobType,
		Status:                  string(a.Status),
		PartnerApprovalRequired: a.PartnerApprovalRequired,
		ApprovedBy:              a.ApprovedBy,
		PartnerApprovedBy:       a.PartnerApprovedBy,
		CancelledBy:             a.CancelledBy,
		CreatedAt:               a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CancelledAt != nil {
		dto.CancelledAt = a.CancelledAt.Format(time.RFC3339)
	}
	return dto
}

func toAssignmentDTOs(assignments []*schedule.Assignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = toAssignmentDTO(a)
	}
	return dtos
}

// CreateAssignmentRequest is the request to create assignments. end_date,
// when set and later than date, requests multi-day expansion.
type CreateAssignmentRequest struct {
	Date         string   `json:"date"`
	EndDate      string   `json:"end_date,omitempty"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	EmployeeIDs  []string `json:"employee_ids"`
	ClientID     string   `json:"client_id,omitempty"`
	ActivityName string   `json:"activity_name,omitempty"`
	JobType      string   `json:"job_type,omitempty"`
}

func (req CreateAssignmentRequest) toInput() (schedule.AssignmentInput, error) {
	var in schedule.AssignmentInput
	var err error
	if in.StartDate, err = schedule.ParseDate(req.Date); err != nil {
		return in, err
	}
	if req.EndDate != "" {
		if in.EndDate, err = schedule.ParseDate(req.EndDate); err != nil {
			return in, err
		}
	}
	if in.StartTime, err = schedule.ParseClockTime(req.StartTime); err != nil {
		return in, err
	}
	if in.EndTime, err = schedule.ParseClockTime(req.EndTime); err != nil {
		return in, err
	}
	in.EmployeeIDs = req.EmployeeIDs
	in.ClientID = req.ClientID
	in.ActivityName = req.ActivityName
	in.JobType = req.JobType
	return in, nil
}

// =============================================================================
// LEAVES
// =============================================================================

// LeaveDTO represents a leave request in API responses.
type LeaveDTO struct {
	ID                      string  `json:"id"`
	EmployeeID              string  `json:"employee_id"`
	StartDate               string  `json:"start_date"`
	EndDate                 string  `json:"end_date"`
	StartTime               *string `json:"start_time,omitempty"`
	EndTime                 *string `json:"end_time,omitempty"`
	Type                    string  `json:"leave_type"`
	Reason                  string  `json:"reason,omitempty"`
	Status                  string  `json:"status"`
	PartnerApprovalRequired bool    `json:"partner_approval_required"`
	ApprovedBy              string  `json:"approved_by,omitempty"`
	PartnerApprovedBy       string  `json:"partner_approved_by,omitempty"`
	CancelledBy             string  `json:"cancelled_by,omitempty"`
	CancelledAt             string  `json:"cancelled_at,omitempty"`
	CreatedAt               string  `json:"created_at,omitempty"`
	UpdatedAt               string  `json:"updated_at,omitempty"`
}

func toLeaveDTO(l *schedule.Leave) LeaveDTO {
	dto := LeaveDTO{
		ID:                      l.ID,
		EmployeeID:              l.EmployeeID,
		StartDate:               l.StartDate.String(),
		EndDate:                 l.EndDate.String(),
		Type:                    string(l.Type),
		Reason:                  l.Reason,
		Status:                  string(l.Status),
		PartnerApprovalRequired: l.PartnerApprovalRequired,
		ApprovedBy:              l.ApprovedBy,
		PartnerApprovedBy:       l.PartnerApprovedBy,
		CancelledBy:             l.CancelledBy,
		CreatedAt:               l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               l.UpdatedAt.Format(time.RFC3339),
	}
	if l.StartTime != nil {
		s := l.StartTime.String()
		dto.StartTime = &s
	}
	if l.EndTime != nil {
		s := l.EndTime.String()
		dto.EndTime = &s
	}
	if l.CancelledAt != nil {
		dto.CancelledAt = l.CancelledAt.Format(time.RFC3339)
	}
	return dto
}

func toLeaveDTOs(leaves []*schedule.Leave) []LeaveDTO {
	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = toLeaveDTO(l)
	}
	return dtos
}

// CreateLeaveRequest is the request to create or update a leave. Omit both
// times for a full-day leave; partial-day leaves are single-day only.
type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	Type       string  `json:"leave_type"`
	Reason     string  `json:"reason,omitempty"`
}

func (req CreateLeaveRequest) toInput() (schedule.LeaveInput, error) {
	var in schedule.LeaveInput
	var err error
	in.EmployeeID = req.EmployeeID
	if in.StartDate, err = schedule.ParseDate(req.StartDate); err != nil {
		return in, err
	}
	if in.EndDate, err = schedule.ParseDate(req.EndDate); err != nil {
		return in, err
	}
	if req.StartTime != nil {
		c, err := schedule.ParseClockTime(*req.StartTime)
		if err != nil {
			return in, err
		}
		in.StartTime = &c
	}
	if req.EndTime != nil {
		c, err := schedule.ParseClockTime(*req.EndTime)
		if err != nil {
			return in, err
		}
		in.EndTime = &c
	}
	in.Type = schedule.LeaveType(req.Type)
	in.Reason = req.Reason
	return in, nil
}

// =============================================================================
// MASTER DATA
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Position string `json:"position"`
	Role     string `json:"role"`
}

func (h *Handler) toEmployeeDTO(e *schedule.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:       e.ID,
		Name:     e.Name,
		Code:     e.Code,
		Position: string(e.Position),
		Role:     string(h.Roles.RoleFor(e.Position)),
	}
}

// SaveEmployeeRequest creates or updates an employee.
type SaveEmployeeRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Position string `json:"position"`
}

// ClientDTO represents a client in API responses.
type ClientDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Code  string `json:"code,omitempty"`
}

// SaveClientRequest creates or updates a client.
type SaveClientRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Code  string `json:"code,omitempty"`
}

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// SaveHolidayRequest creates or updates a holiday.
type SaveHolidayRequest struct {
	ID   string `json:"id,omitempty"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// =============================================================================
// ROLES
// =============================================================================

// RoleMappingDTO is one position-to-role row.
type RoleMappingDTO struct {
	Position string `json:"position"`
	Role     string `json:"role"`
}

func toRoleMappingDTOs(rows []roster.PositionRole) []RoleMappingDTO {
	dtos := make([]RoleMappingDTO, len(rows))
	for i, row := range rows {
		dtos[i] = RoleMappingDTO{Position: string(row.Position), Role: string(row.Role)}
	}
	return dtos
}

// SetRoleRequest changes the role mapped to a position.
type SetRoleRequest struct {
	Position string `json:"position"`
	Role     string `json:"role"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
