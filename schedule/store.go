/*
store.go - Persistence interface for calendar records

PURPOSE:
  The boundary between the engine and the database. The engine only ever
  reads filtered record sets and writes whole records; query planning and
  constraints live behind these interfaces.

READ-THEN-WRITE RACE:
  Conflict checking reads a snapshot and writes afterwards; the sequence is
  not atomic. Implementations are expected to serialize writes as the last
  line of defense. Both shipped stores take a single write mutex; the
  SQLite store additionally enforces unique employee codes and one holiday
  per date at the schema level.

IMPLEMENTATIONS:
  - store/sqlite:        production store
  - schedule/store:      in-memory, for tests and dev

SEE ALSO:
  - lifecycle.go: The only writer
  - conflict.go:  The main reader
*/
package schedule

import "context"

// =============================================================================
// RECORD STORES
// =============================================================================

// AssignmentStore persists assignments. InsertAssignments is atomic: a
// multi-day expansion either lands every per-day record or none.
type AssignmentStore interface {
	InsertAssignments(ctx context.Context, assignments []*Assignment) error
	UpdateAssignment(ctx context.Context, a *Assignment) error
	DeleteAssignment(ctx context.Context, id string) error
	GetAssignment(ctx context.Context, id string) (*Assignment, error)

	// AssignmentsOnDate returns every assignment on the given day,
	// regardless of status.
	AssignmentsOnDate(ctx context.Context, date Date) ([]*Assignment, error)

	// AssignmentsForEmployee returns the employee's assignments with dates
	// in the inclusive range [from, to].
	AssignmentsForEmployee(ctx context.Context, employeeID string, from, to Date) ([]*Assignment, error)
}

// LeaveStore persists leaves.
type LeaveStore interface {
	InsertLeave(ctx context.Context, l *Leave) error
	UpdateLeave(ctx context.Context, l *Leave) error
	DeleteLeave(ctx context.Context, id string) error
	GetLeave(ctx context.Context, id string) (*Leave, error)

	// LeavesCoveringDate returns every leave whose range contains date,
	// regardless of status or employee.
	LeavesCoveringDate(ctx context.Context, date Date) ([]*Leave, error)

	// LeavesForEmployee returns the employee's leaves whose range
	// intersects [from, to].
	LeavesForEmployee(ctx context.Context, employeeID string, from, to Date) ([]*Leave, error)
}

// DirectoryStore holds the referential master data.
type DirectoryStore interface {
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	SaveEmployee(ctx context.Context, e *Employee) error
	DeleteEmployee(ctx context.Context, id string) error

	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	SaveClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id string) error
}

// HolidayStore holds the holiday calendar.
type HolidayStore interface {
	ListHolidays(ctx context.Context) ([]*Holiday, error)
	SaveHoliday(ctx context.Context, h *Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
}

// RecordStore is the full persistence surface the engine needs.
type RecordStore interface {
	AssignmentStore
	LeaveStore
	DirectoryStore
	HolidayStore
}

// TxStore wraps RecordStore with transaction support for multi-record
// writes that must be all-or-nothing.
type TxStore interface {
	RecordStore

	// WithTx executes fn within a transaction; fn's error rolls back.
	WithTx(ctx context.Context, fn func(RecordStore) error) error
}
