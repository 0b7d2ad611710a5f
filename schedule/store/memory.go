// Package store provides an in-memory RecordStore for tests and dev.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/minkiicoding/task-scheduling/schedule"
)

// =============================================================================
// MEMORY STORE - serializes all writes under one lock, which doubles as the
// per-(employee, date) write serialization the conflict checker relies on
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	assignments map[string]*schedule.Assignment
	leaves      map[string]*schedule.Leave
	employees   map[string]*schedule.Employee
	clients     map[string]*schedule.Client
	holidays    map[string]*schedule.Holiday
}

func NewMemory() *Memory {
	return &Memory{
		assignments: make(map[string]*schedule.Assignment),
		leaves:      make(map[string]*schedule.Leave),
		employees:   make(map[string]*schedule.Employee),
		clients:     make(map[string]*schedule.Client),
		holidays:    make(map[string]*schedule.Holiday),
	}
}

// -----------------------------------------------------------------------------
// Assignments
// -----------------------------------------------------------------------------

// InsertAssignments is atomic: the lock is held across the whole batch.
func (m *Memory) InsertAssignments(_ context.Context, assignments []*schedule.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range assignments {
		cp := cloneAssignment(a)
		m.assignments[cp.ID] = cp
	}
	return nil
}

func (m *Memory) UpdateAssignment(_ context.Context, a *schedule.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[a.ID]; !ok {
		return &schedule.NotFoundError{Kind: "assignment", ID: a.ID}
	}
	m.assignments[a.ID] = cloneAssignment(a)
	return nil
}

func (m *Memory) DeleteAssignment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assignments, id)
	return nil
}

func (m *Memory) GetAssignment(_ context.Context, id string) (*schedule.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assignments[id]
	if !ok {
		return nil, nil
	}
	return cloneAssignment(a), nil
}

func (m *Memory) AssignmentsOnDate(_ context.Context, date schedule.Date) ([]*schedule.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*schedule.Assignment
	for _, a := range m.assignments {
		if a.Date.Equal(date) {
			out = append(out, cloneAssignment(a))
		}
	}
	sortAssignments(out)
	return out, nil
}

func (m *Memory) AssignmentsForEmployee(_ context.Context, employeeID string, from, to schedule.Date) ([]*schedule.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*schedule.Assignment
	for _, a := range m.assignments {
		if a.HasEmployee(employeeID) && a.Date.Within(from, to) {
			out = append(out, cloneAssignment(a))
		}
	}
	sortAssignments(out)
	return out, nil
}

// -----------------------------------------------------------------------------
// Leaves
// -----------------------------------------------------------------------------

func (m *Memory) InsertLeave(_ context.Context, l *schedule.Leave) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves[l.ID] = cloneLeave(l)
	return nil
}

func (m *Memory) UpdateLeave(_ context.Context, l *schedule.Leave) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leaves[l.ID]; !ok {
		return &schedule.NotFoundError{Kind: "leave", ID: l.ID}
	}
	m.leaves[l.ID] = cloneLeave(l)
	return nil
}

func (m *Memory) DeleteLeave(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.leaves, id)
	return nil
}

func (m *Memory) GetLeave(_ context.Context, id string) (*schedule.Leave, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leaves[id]
	if !ok {
		return nil, nil
	}
	return cloneLeave(l), nil
}

func (m *Memory) LeavesCoveringDate(_ context.Context, date schedule.Date) ([]*schedule.Leave, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*schedule.Leave
	for _, l := range m.leaves {
		if l.Covers(date) {
			out = append(out, cloneLeave(l))
		}
	}
	sortLeaves(out)
	return out, nil
}

func (m *Memory) LeavesForEmployee(_ context.Context, employeeID string, from, to schedule.Date) ([]*schedule.Leave, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*schedule.Leave
	for _, l := range m.leaves {
		if l.EmployeeID == employeeID && !l.StartDate.After(to) && !l.EndDate.Before(from) {
			out = append(out, cloneLeave(l))
		}
	}
	sortLeaves(out)
	return out, nil
}

// -----------------------------------------------------------------------------
// Directory
// -----------------------------------------------------------------------------

func (m *Memory) GetEmployee(_ context.Context, id string) (*schedule.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]*schedule.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*schedule.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) SaveEmployee(_ context.Context, e *schedule.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.employees[cp.ID] = &cp
	return nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.employees, id)
	return nil
}

func (m *Memory) GetClient(_ context.Context, id string) (*schedule.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *Memory) ListClients(_ context.Context) ([]*schedule.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*schedule.Client, 0, len(m.clients))
	for _, c := range m.clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) SaveClient(_ context.Context, c *schedule.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.clients[cp.ID] = &cp
	return nil
}

func (m *Memory) DeleteClient(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, id)
	return nil
}

// -----------------------------------------------------------------------------
// Holidays
// -----------------------------------------------------------------------------

func (m *Memory) ListHolidays(_ context.Context) ([]*schedule.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*schedule.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) SaveHoliday(_ context.Context, h *schedule.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *h
	m.holidays[cp.ID] = &cp
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holidays, id)
	return nil
}

// -----------------------------------------------------------------------------
// Transactions - snapshot + rollback on error
// -----------------------------------------------------------------------------

// WithTx executes fn against the store, restoring a snapshot if fn fails.
func (m *Memory) WithTx(_ context.Context, fn func(schedule.RecordStore) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	assignments map[string]*schedule.Assignment
	leaves      map[string]*schedule.Leave
}

func (m *Memory) snapshot() memorySnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := memorySnapshot{
		assignments: make(map[string]*schedule.Assignment, len(m.assignments)),
		leaves:      make(map[string]*schedule.Leave, len(m.leaves)),
	}
	for id, a := range m.assignments {
		s.assignments[id] = cloneAssignment(a)
	}
	for id, l := range m.leaves {
		s.leaves[id] = cloneLeave(l)
	}
	return s
}

func (m *Memory) restore(s memorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = s.assignments
	m.leaves = s.leaves
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func cloneAssignment(a *schedule.Assignment) *schedule.Assignment {
	cp := *a
	cp.EmployeeIDs = append([]string(nil), a.EmployeeIDs...)
	if a.CancelledAt != nil {
		t := *a.CancelledAt
		cp.CancelledAt = &t
	}
	return &cp
}

func cloneLeave(l *schedule.Leave) *schedule.Leave {
	cp := *l
	if l.StartTime != nil {
		t := *l.StartTime
		cp.StartTime = &t
	}
	if l.EndTime != nil {
		t := *l.EndTime
		cp.EndTime = &t
	}
	if l.CancelledAt != nil {
		t := *l.CancelledAt
		cp.CancelledAt = &t
	}
	return &cp
}

func sortAssignments(list []*schedule.Assignment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		if list[i].StartTime != list[j].StartTime {
			return list[i].StartTime < list[j].StartTime
		}
		return list[i].ID < list[j].ID
	})
}

func sortLeaves(list []*schedule.Leave) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].StartDate.Equal(list[j].StartDate) {
			return list[i].StartDate.Before(list[j].StartDate)
		}
		return list[i].ID < list[j].ID
	})
}
