/*
Package sqlite provides the SQLite-backed RecordStore.

PURPOSE:
  Production persistence for assignments, leaves and master data. The same
  patterns apply to PostgreSQL; only minor SQL dialect differences.

CONCURRENCY:
  Conflict checking is read-then-write and not atomic on its own. This
  store serializes writes under a mutex; database-level constraints
  (unique employee codes, one holiday per date) back the remaining
  invariants.

WAL MODE:
  SQLite is opened with WAL so readers do not block behind the single
  writer.

SCHEMA NOTES:
  employee_ids on assignments is a JSON array column. Date columns are
  "2006-01-02" strings, clock times are "15:04" strings. Optional times
  and timestamps are NULLs.

USAGE:
  store, err := sqlite.New("./data/schedule.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - schedule/store.go:        Interface definitions
  - schedule/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/minkiicoding/task-scheduling/roster"
	"github.com/minkiicoding/task-scheduling/schedule"
)

// Store implements schedule.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes writes; see package comment
	queries
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds every read/write against a querier, so the same code runs
// against the root connection and inside transactions.
type queries struct {
	q querier
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, queries: queries{q: db}}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		employee_ids TEXT NOT NULL,
		client_id TEXT,
		activity_name TEXT,
		job_type TEXT,
		status TEXT NOT NULL,
		partner_approval_required INTEGER NOT NULL DEFAULT 0,
		approved_by TEXT,
		partner_approved_by TEXT,
		cancelled_by TEXT,
		cancelled_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_date ON assignments(date);

	CREATE TABLE IF NOT EXISTS leaves (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		leave_type TEXT NOT NULL,
		reason TEXT,
		status TEXT NOT NULL,
		partner_approval_required INTEGER NOT NULL DEFAULT 0,
		approved_by TEXT,
		partner_approved_by TEXT,
		cancelled_by TEXT,
		cancelled_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leaves_employee ON leaves(employee_id);
	CREATE INDEX IF NOT EXISTS idx_leaves_range ON leaves(start_date, end_date);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT,
		position TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_code
		ON employees(code) WHERE code IS NOT NULL AND code != '';

	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT,
		code TEXT
	);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// WithTx runs fn inside a database transaction, holding the write lock for
// the duration so check-then-insert sequences are serialized.
func (s *Store) WithTx(ctx context.Context, fn func(schedule.RecordStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	view := &txView{queries: queries{q: tx}}
	if err := fn(view); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// txView exposes the query methods against an open transaction.
type txView struct {
	queries
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

const assignmentColumns = `id, date, start_time, end_time, employee_ids,
	client_id, activity_name, job_type, status, partner_approval_required,
	approved_by, partner_approved_by, cancelled_by, cancelled_at,
	created_at, updated_at`

// InsertAssignments writes the batch inside one transaction when called on
// the root store; inside WithTx the view variant joins the outer one.
func (s *Store) InsertAssignments(ctx context.Context, assignments []*schedule.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	view := queries{q: tx}
	for _, a := range assignments {
		if err := view.insertAssignment(ctx, a); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (v queries) InsertAssignments(ctx context.Context, assignments []*schedule.Assignment) error {
	for _, a := range assignments {
		if err := v.insertAssignment(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (v queries) insertAssignment(ctx context.Context, a *schedule.Assignment) error {
	ids, err := json.Marshal(a.EmployeeIDs)
	if err != nil {
		return fmt.Errorf("marshal employee ids: %w", err)
	}
	_, err = v.q.ExecContext(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Date.String(), a.StartTime.String(), a.EndTime.String(), string(ids),
		nullStr(a.ClientID), nullStr(a.ActivityName), nullStr(a.JobType),
		string(a.Status), boolInt(a.PartnerApprovalRequired),
		nullStr(a.ApprovedBy), nullStr(a.PartnerApprovedBy),
		nullStr(a.CancelledBy), nullTime(a.CancelledAt),
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert assignment %s: %w", a.ID, err)
	}
	return nil
}

func (s *Store) UpdateAssignment(ctx context.Context, a *schedule.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.UpdateAssignment(ctx, a)
}

func (v queries) UpdateAssignment(ctx context.Context, a *schedule.Assignment) error {
	ids, err := json.Marshal(a.EmployeeIDs)
	if err != nil {
		return fmt.Errorf("marshal employee ids: %w", err)
	}
	res, err := v.q.ExecContext(ctx, `
		UPDATE assignments SET
			date = ?, start_time = ?, end_time = ?, employee_ids = ?,
			client_id = ?, activity_name = ?, job_type = ?, status = ?,
			partner_approval_required = ?, approved_by = ?, partner_approved_by = ?,
			cancelled_by = ?, cancelled_at = ?, updated_at = ?
		WHERE id = ?`,
		a.Date.String(), a.StartTime.String(), a.EndTime.String(), string(ids),
		nullStr(a.ClientID), nullStr(a.ActivityName), nullStr(a.JobType),
		string(a.Status), boolInt(a.PartnerApprovalRequired),
		nullStr(a.ApprovedBy), nullStr(a.PartnerApprovedBy),
		nullStr(a.CancelledBy), nullTime(a.CancelledAt),
		a.UpdatedAt.Format(time.RFC3339), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update assignment %s: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &schedule.NotFoundError{Kind: "assignment", ID: a.ID}
	}
	return nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.DeleteAssignment(ctx, id)
}

func (v queries) DeleteAssignment(ctx context.Context, id string) error {
	_, err := v.q.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	return err
}

func (v queries) GetAssignment(ctx context.Context, id string) (*schedule.Assignment, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := scanAssignments(rows)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (v queries) AssignmentsOnDate(ctx context.Context, date schedule.Date) ([]*schedule.Assignment, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE date = ? ORDER BY start_time, id`,
		date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// AssignmentsForEmployee filters the date range in SQL and the employee
// membership in Go, since employee_ids is a JSON column.
func (v queries) AssignmentsForEmployee(ctx context.Context, employeeID string, from, to schedule.Date) ([]*schedule.Assignment, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments
		 WHERE date >= ? AND date <= ? ORDER BY date, start_time, id`,
		from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	all, err := scanAssignments(rows)
	if err != nil {
		return nil, err
	}
	var out []*schedule.Assignment
	for _, a := range all {
		if a.HasEmployee(employeeID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func scanAssignments(rows *sql.Rows) ([]*schedule.Assignment, error) {
	var out []*schedule.Assignment
	for rows.Next() {
		var (
			a                           schedule.Assignment
			dateStr, startStr, endStr   string
			idsJSON, status             string
			clientID, activity, jobType sql.NullString
			approvedBy, partnerApprover sql.NullString
			cancelledBy, cancelledAt    sql.NullString
			partnerRequired             int
			createdAt, updatedAt        string
		)
		if err := rows.Scan(&a.ID, &dateStr, &startStr, &endStr, &idsJSON,
			&clientID, &activity, &jobType, &status, &partnerRequired,
			&approvedBy, &partnerApprover, &cancelledBy, &cancelledAt,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}
		var err error
		if a.Date, err = schedule.ParseDate(dateStr); err != nil {
			return nil, err
		}
		if a.StartTime, err = schedule.ParseClockTime(startStr); err != nil {
			return nil, err
		}
		if a.EndTime, err = schedule.ParseClockTime(endStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(idsJSON), &a.EmployeeIDs); err != nil {
			return nil, fmt.Errorf("unmarshal employee ids for %s: %w", a.ID, err)
		}
		a.ClientID = clientID.String
		a.ActivityName = activity.String
		a.JobType = jobType.String
		a.Status = schedule.AssignmentStatus(status)
		a.PartnerApprovalRequired = partnerRequired != 0
		a.ApprovedBy = approvedBy.String
		a.PartnerApprovedBy = partnerApprover.String
		a.CancelledBy = cancelledBy.String
		if a.CancelledAt, err = parseNullTime(cancelledAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// =============================================================================
// LEAVES
// =============================================================================

const leaveColumns = `id, employee_id, start_date, end_date, start_time,
	end_time, leave_type, reason, status, partner_approval_required,
	approved_by, partner_approved_by, cancelled_by, cancelled_at,
	created_at, updated_at`

func (s *Store) InsertLeave(ctx context.Context, l *schedule.Leave) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.InsertLeave(ctx, l)
}

func (v queries) InsertLeave(ctx context.Context, l *schedule.Leave) error {
	_, err := v.q.ExecContext(ctx, `
		INSERT INTO leaves (`+leaveColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.EmployeeID, l.StartDate.String(), l.EndDate.String(),
		nullClock(l.StartTime), nullClock(l.EndTime),
		string(l.Type), nullStr(l.Reason), string(l.Status),
		boolInt(l.PartnerApprovalRequired),
		nullStr(l.ApprovedBy), nullStr(l.PartnerApprovedBy),
		nullStr(l.CancelledBy), nullTime(l.CancelledAt),
		l.CreatedAt.Format(time.RFC3339), l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert leave %s: %w", l.ID, err)
	}
	return nil
}

func (s *Store) UpdateLeave(ctx context.Context, l *schedule.Leave) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.UpdateLeave(ctx, l)
}

func (v queries) UpdateLeave(ctx context.Context, l *schedule.Leave) error {
	res, err := v.q.ExecContext(ctx, `
		UPDATE leaves SET
			employee_id = ?, start_date = ?, end_date = ?, start_time = ?,
			end_time = ?, leave_type = ?, reason = ?, status = ?,
			partner_approval_required = ?, approved_by = ?, partner_approved_by = ?,
			cancelled_by = ?, cancelled_at = ?, updated_at = ?
		WHERE id = ?`,
		l.EmployeeID, l.StartDate.String(), l.EndDate.String(),
		nullClock(l.StartTime), nullClock(l.EndTime),
		string(l.Type), nullStr(l.Reason), string(l.Status),
		boolInt(l.PartnerApprovalRequired),
		nullStr(l.ApprovedBy), nullStr(l.PartnerApprovedBy),
		nullStr(l.CancelledBy), nullTime(l.CancelledAt),
		l.UpdatedAt.Format(time.RFC3339), l.ID,
	)
	if err != nil {
		return fmt.Errorf("update leave %s: %w", l.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &schedule.NotFoundError{Kind: "leave", ID: l.ID}
	}
	return nil
}

func (s *Store) DeleteLeave(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.DeleteLeave(ctx, id)
}

func (v queries) DeleteLeave(ctx context.Context, id string) error {
	_, err := v.q.ExecContext(ctx, `DELETE FROM leaves WHERE id = ?`, id)
	return err
}

func (v queries) GetLeave(ctx context.Context, id string) (*schedule.Leave, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT `+leaveColumns+` FROM leaves WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := scanLeaves(rows)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (v queries) LeavesCoveringDate(ctx context.Context, date schedule.Date) ([]*schedule.Leave, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT `+leaveColumns+` FROM leaves
		 WHERE start_date <= ? AND end_date >= ? ORDER BY start_date, id`,
		date.String(), date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (v queries) LeavesForEmployee(ctx context.Context, employeeID string, from, to schedule.Date) ([]*schedule.Leave, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT `+leaveColumns+` FROM leaves
		 WHERE employee_id = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY start_date, id`,
		employeeID, to.String(), from.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func scanLeaves(rows *sql.Rows) ([]*schedule.Leave, error) {
	var out []*schedule.Leave
	for rows.Next() {
		var (
			l                           schedule.Leave
			startDate, endDate          string
			startTime, endTime          sql.NullString
			leaveType, status           string
			reason                      sql.NullString
			partnerRequired             int
			approvedBy, partnerApprover sql.NullString
			cancelledBy, cancelledAt    sql.NullString
			createdAt, updatedAt        string
		)
		if err := rows.Scan(&l.ID, &l.EmployeeID, &startDate, &endDate,
			&startTime, &endTime, &leaveType, &reason, &status, &partnerRequired,
			&approvedBy, &partnerApprover, &cancelledBy, &cancelledAt,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}
		var err error
		if l.StartDate, err = schedule.ParseDate(startDate); err != nil {
			return nil, err
		}
		if l.EndDate, err = schedule.ParseDate(endDate); err != nil {
			return nil, err
		}
		if l.StartTime, err = parseNullClock(startTime); err != nil {
			return nil, err
		}
		if l.EndTime, err = parseNullClock(endTime); err != nil {
			return nil, err
		}
		l.Type = schedule.LeaveType(leaveType)
		l.Reason = reason.String
		l.Status = schedule.LeaveStatus(status)
		l.PartnerApprovalRequired = partnerRequired != 0
		l.ApprovedBy = approvedBy.String
		l.PartnerApprovedBy = partnerApprover.String
		l.CancelledBy = cancelledBy.String
		if l.CancelledAt, err = parseNullTime(cancelledAt); err != nil {
			return nil, err
		}
		if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		if l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// =============================================================================
// DIRECTORY
// =============================================================================

func (v queries) GetEmployee(ctx context.Context, id string) (*schedule.Employee, error) {
	row := v.q.QueryRowContext(ctx,
		`SELECT id, name, code, position FROM employees WHERE id = ?`, id)
	var e schedule.Employee
	var code sql.NullString
	var position string
	if err := row.Scan(&e.ID, &e.Name, &code, &position); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.Code = code.String
	e.Position = roster.Position(position)
	return &e, nil
}

func (v queries) ListEmployees(ctx context.Context) ([]*schedule.Employee, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT id, name, code, position FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*schedule.Employee
	for rows.Next() {
		var e schedule.Employee
		var code sql.NullString
		var position string
		if err := rows.Scan(&e.ID, &e.Name, &code, &position); err != nil {
			return nil, err
		}
		e.Code = code.String
		e.Position = roster.Position(position)
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *Store) SaveEmployee(ctx context.Context, e *schedule.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.SaveEmployee(ctx, e)
}

func (v queries) SaveEmployee(ctx context.Context, e *schedule.Employee) error {
	_, err := v.q.ExecContext(ctx, `
		INSERT INTO employees (id, name, code, position) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			code = excluded.code, position = excluded.position`,
		e.ID, e.Name, nullStr(e.Code), string(e.Position))
	return err
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.DeleteEmployee(ctx, id)
}

func (v queries) DeleteEmployee(ctx context.Context, id string) error {
	_, err := v.q.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	return err
}

func (v queries) GetClient(ctx context.Context, id string) (*schedule.Client, error) {
	row := v.q.QueryRowContext(ctx,
		`SELECT id, name, color, code FROM clients WHERE id = ?`, id)
	var c schedule.Client
	var color, code sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &color, &code); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.Color = color.String
	c.Code = code.String
	return &c, nil
}

func (v queries) ListClients(ctx context.Context) ([]*schedule.Client, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT id, name, color, code FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*schedule.Client
	for rows.Next() {
		var c schedule.Client
		var color, code sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &color, &code); err != nil {
			return nil, err
		}
		c.Color = color.String
		c.Code = code.String
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (s *Store) SaveClient(ctx context.Context, c *schedule.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.SaveClient(ctx, c)
}

func (v queries) SaveClient(ctx context.Context, c *schedule.Client) error {
	_, err := v.q.ExecContext(ctx, `
		INSERT INTO clients (id, name, color, code) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			color = excluded.color, code = excluded.code`,
		c.ID, c.Name, nullStr(c.Color), nullStr(c.Code))
	return err
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.DeleteClient(ctx, id)
}

func (v queries) DeleteClient(ctx context.Context, id string) error {
	_, err := v.q.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (v queries) ListHolidays(ctx context.Context) ([]*schedule.Holiday, error) {
	rows, err := v.q.QueryContext(ctx,
		`SELECT id, date, name FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*schedule.Holiday
	for rows.Next() {
		var h schedule.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name); err != nil {
			return nil, err
		}
		if h.Date, err = schedule.ParseDate(dateStr); err != nil {
			return nil, err
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

func (s *Store) SaveHoliday(ctx context.Context, h *schedule.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.SaveHoliday(ctx, h)
}

func (v queries) SaveHoliday(ctx context.Context, h *schedule.Holiday) error {
	_, err := v.q.ExecContext(ctx, `
		INSERT INTO holidays (id, date, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date = excluded.date, name = excluded.name`,
		h.ID, h.Date.String(), h.Name)
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries.DeleteHoliday(ctx, id)
}

func (v queries) DeleteHoliday(ctx context.Context, id string) error {
	_, err := v.q.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	return err
}

// =============================================================================
// NULL HELPERS
// =============================================================================

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullClock(c *schedule.ClockTime) any {
	if c == nil {
		return nil
	}
	return c.String()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseNullClock(s sql.NullString) (*schedule.ClockTime, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	c, err := schedule.ParseClockTime(s.String)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
