/*
handlers.go - HTTP API handlers for the scheduling engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Assignments:
    GET    /api/assignments                 List by date or employee range
    POST   /api/assignments                 Create (multi-day capable)
    PUT    /api/assignments/{id}            Update (single day)
    DELETE /api/assignments/{id}            Delete
    POST   /api/assignments/{id}/approve    Regular approval
    POST   /api/assignments/{id}/partner-approve
    POST   /api/assignments/{id}/cancel     Cancel (returns to pending)

  Leaves:
    GET    /api/leaves                      List by date or employee range
    POST   /api/leaves                      Create
    PUT    /api/leaves/{id}                 Update
    DELETE /api/leaves/{id}                 Delete
    POST   /api/leaves/{id}/approve
    POST   /api/leaves/{id}/partner-approve
    POST   /api/leaves/{id}/cancel          Cancel (terminal)

  Master data:  /api/employees, /api/clients, /api/holidays (CRUD)
  Roles:        GET /api/roles, PUT /api/roles
  Reports:      GET /api/reports/hours, GET /api/reports/unassigned

ACTOR CONTEXT:
  Every mutating request carries the X-Actor-ID header, resolved against
  the employee directory. There is no authentication here; the header is
  trusted as already authenticated upstream.

ERROR HANDLING:
  Domain errors map onto HTTP status by category:
  - 400: validation
  - 403: authorization
  - 404: not found
  - 409: scheduling conflict, redundant approval, terminal status
  - 500: store and everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - schedule/lifecycle.go: The engine these handlers delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/minkiicoding/task-scheduling/report"
	"github.com/minkiicoding/task-scheduling/roster"
	"github.com/minkiicoding/task-scheduling/schedule"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    schedule.TxStore
	Engine   *schedule.Manager
	Roles    *roster.RoleMapping
	Reporter *report.Reporter
	Logger   *logrus.Logger
}

// NewHandler creates a handler over the store and engine.
func NewHandler(store schedule.TxStore, engine *schedule.Manager, roles *roster.RoleMapping, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		Store:    store,
		Engine:   engine,
		Roles:    roles,
		Reporter: &report.Reporter{Store: store, Holidays: engine.Holidays},
		Logger:   logger,
	}
}

// actor resolves the X-Actor-ID header to a directory entry. ok is false
// after an error response has already been written.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (roster.Actor, bool) {
	id := r.Header.Get("X-Actor-ID")
	if id == "" {
		writeError(w, http.StatusUnauthorized, "Missing X-Actor-ID header", nil)
		return roster.Actor{}, false
	}
	e, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve actor", err)
		return roster.Actor{}, false
	}
	if e == nil {
		writeError(w, http.StatusUnauthorized, "Unknown actor", nil)
		return roster.Actor{}, false
	}
	return roster.NewActor(e.ID, e.Name, e.Position, h.Roles), true
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

// ListAssignments returns assignments for ?date=YYYY-MM-DD, or for
// ?employee_id=&from=&to= when an employee filter is given.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if employeeID := q.Get("employee_id"); employeeID != "" {
		from, err := schedule.ParseDate(q.Get("from"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
		to, err := schedule.ParseDate(q.Get("to"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
		assignments, err := h.Store.AssignmentsForEmployee(r.Context(), employeeID, from, to)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
			return
		}
		writeJSON(w, http.StatusOK, toAssignmentDTOs(assignments))
		return
	}

	date, err := schedule.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	assignments, err := h.Store.AssignmentsOnDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentDTOs(assignments))
}

// GetAssignment returns a single assignment.
func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.GetAssignment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load assignment", err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Assignment not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentDTO(a))
}

// CreateAssignment creates one assignment, or one per day for multi-day
// requests. All created records are returned.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date or time", err)
		return
	}
	created, err := h.Engine.CreateAssignment(r.Context(), actor, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentDTOs(created))
}

// UpdateAssignment rewrites a single-day assignment.
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date or time", err)
		return
	}
	updated, err := h.Engine.UpdateAssignment(r.Context(), actor, chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentDTO(updated))
}

// ApproveAssignment applies regular approval.
func (h *Handler) ApproveAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	a, err := h.Engine.ApproveAssignment(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentDTO(a))
}

// PartnerApproveAssignment applies partner approval.
func (h *Handler) PartnerApproveAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	a, err := h.Engine.PartnerApproveAssignment(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentDTO(a))
}

// CancelAssignment returns the assignment to pending.
func (h *Handler) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	a, err := h.Engine.CancelAssignment(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentDTO(a))
}

// DeleteAssignment removes the record entirely.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Engine.DeleteAssignment(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ListLeaves returns leaves covering ?date=, or an employee's leaves
// touching ?from=/?to= when ?employee_id= is given.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if employeeID := q.Get("employee_id"); employeeID != "" {
		from, err := schedule.ParseDate(q.Get("from"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
		to, err := schedule.ParseDate(q.Get("to"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
		leaves, err := h.Store.LeavesForEmployee(r.Context(), employeeID, from, to)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
			return
		}
		writeJSON(w, http.StatusOK, toLeaveDTOs(leaves))
		return
	}

	date, err := schedule.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	leaves, err := h.Store.LeavesCoveringDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTOs(leaves))
}

// GetLeave returns a single leave.
func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	l, err := h.Store.GetLeave(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave", err)
		return
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "Leave not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(l))
}

// CreateLeave files a leave request.
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date or time", err)
		return
	}
	l, err := h.Engine.CreateLeave(r.Context(), actor, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(l))
}

// UpdateLeave rewrites a leave's dates, times, type and reason.
func (h *Handler) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date or time", err)
		return
	}
	l, err := h.Engine.UpdateLeave(r.Context(), actor, chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(l))
}

// ApproveLeave applies regular approval.
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	l, err := h.Engine.ApproveLeave(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(l))
}

// PartnerApproveLeave applies partner approval.
func (h *Handler) PartnerApproveLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	l, err := h.Engine.PartnerApproveLeave(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(l))
}

// CancelLeave moves the leave to its terminal cancelled status.
func (h *Handler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	l, err := h.Engine.CancelLeave(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(l))
}

// DeleteLeave removes the record entirely.
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Engine.DeleteLeave(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// MASTER DATA HANDLERS
// =============================================================================

// ListEmployees returns all employees with their derived roles.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = h.toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.toEmployeeDTO(e))
}

// SaveEmployee creates or updates an employee. Requires an editor.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if !actor.Capabilities.CanEdit {
		writeError(w, http.StatusForbidden, "Editing master data requires edit rights", nil)
		return
	}
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	position := roster.Position(req.Position)
	if req.Name == "" || !position.Valid() {
		writeError(w, http.StatusBadRequest, "Name and a known position are required", nil)
		return
	}
	e := &schedule.Employee{ID: req.ID, Name: req.Name, Code: req.Code, Position: position}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := h.Store.SaveEmployee(r.Context(), e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toEmployeeDTO(e))
}

// DeleteEmployee removes an employee from the directory.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if !actor.Capabilities.CanEdit {
		writeError(w, http.StatusForbidden, "Editing master data requires edit rights", nil)
		return
	}
	if err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListClients returns all clients.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = ClientDTO{ID: c.ID, Name: c.Name, Color: c.Color, Code: c.Code}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveClient creates or updates a client. Requires an editor.
func (h *Handler) SaveClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if !actor.Capabilities.CanEdit {
		writeError(w, http.StatusForbidden, "Editing master data requires edit rights", nil)
		return
	}
	var req SaveClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	c := &schedule.Client{ID: req.ID, Name: req.Name, Color: req.Color, Code: req.Code}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := h.Store.SaveClient(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save client", err)
		return
	}
	writeJSON(w, http.StatusOK, ClientDTO{ID: c.ID, Name: c.Name, Color: c.Color, Code: c.Code})
}

// DeleteClient removes a client.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if !actor.Capabilities.CanEdit {
		writeError(w, http.StatusForbidden, "Editing master data requires edit rights", nil)
		return
	}
	if err := h.Store.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns all holidays.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{ID: hol.ID, Date: hol.Date.String(), Name: hol.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveHoliday creates or updates a holiday. Requires an admin, since
// holidays change approval classification for everyone.
func (h *Handler) SaveHoliday(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if !actor.Capabilities.CanApprove {
		writeError(w, http.StatusForbidden, "Managing holidays requires approval rights", nil)
		return
	}
	var req SaveHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	hol := &schedule.Holiday{ID: req.ID, Date: date, Name: req.Name}
	if hol.ID == "" {
		hol.ID = uuid.NewString()
	}
	if err := h.Store.SaveHoliday(r.Context(), hol); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, HolidayDTO{ID: hol.ID, Date: hol.Date.String(), Name: hol.Name})
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if !actor.Capabilities.CanApprove {
		writeError(w, http.StatusForbidden, "Managing holidays requires approval rights", nil)
		return
	}
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ROLE HANDLERS
// =============================================================================

// ListRoles returns the current position-to-role table.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRoleMappingDTOs(h.Roles.Snapshot()))
}

// SetRole rewrites one row of the role mapping. Super admin only; the
// mapping itself enforces that.
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if actor.Capabilities.Role != roster.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "Editing role mappings requires super_admin", nil)
		return
	}
	if err := h.Roles.Set(actor, roster.Position(req.Position), roster.Role(req.Role)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role mapping", err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleMappingDTOs(h.Roles.Snapshot()))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// MonthlyHours returns per-employee hour aggregates for ?year=&month=.
func (h *Handler) MonthlyHours(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	rows, err := h.Reporter.MonthlyHours(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// UnassignedHours returns one employee's remaining capacity on one day.
func (h *Handler) UnassignedHours(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeID := q.Get("employee_id")
	if employeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}
	date, err := schedule.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	hours, err := h.Reporter.UnassignedHours(r.Context(), employeeID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute capacity", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"employee_id":      employeeID,
		"date":             date.String(),
		"unassigned_hours": hours,
	})
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case schedule.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Validation failed", err)
	case errors.Is(err, schedule.ErrAlreadyApproved), errors.Is(err, schedule.ErrTerminalStatus):
		writeError(w, http.StatusConflict, "Invalid status transition", err)
	case schedule.IsConflict(err):
		writeError(w, http.StatusConflict, "Scheduling conflict", err)
	case schedule.IsAuthorization(err):
		writeError(w, http.StatusForbidden, "Not allowed", err)
	case schedule.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		h.Logger.WithError(err).Error("internal error")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
