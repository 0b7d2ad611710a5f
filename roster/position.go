/*
Package roster models the organizational ladder and what each actor is
allowed to do.

PURPOSE:
  Positions form a fixed, totally ordered ladder (A1 at the bottom, Admin at
  the top). The permission role of an actor is derived from their position
  via a runtime-editable mapping table, NOT hardcoded per employee. On top of
  the role system sits an independent position whitelist (Senior and above)
  that acts as a fallback capability source.

TWO CAPABILITY SOURCES:
  1. Role-derived: position -> role (viewer/editor/admin/super_admin) via the
     mapping table. Grants CanEdit/CanApprove/PartnerTier.
  2. Position whitelist: SeniorOrAbove(position). Grants a parallel set of
     edit/create rights regardless of the mapping table.

  Call sites combine the two with OR. They are intentionally NOT collapsed:
  a misconfigured mapping table must not lock a Senior-position actor out.

KEY TYPES:
  Position:     One rung of the ladder
  Role:         Permission role
  RoleMapping:  The mutable position -> role table
  Capabilities: Per-actor capability set, computed once per request

SEE ALSO:
  - guard.go: Per-record authorization decisions built on Capabilities
*/
package roster

import (
	"fmt"
	"sync"
)

// =============================================================================
// POSITION LADDER - fixed total order, used for seniority comparisons
// =============================================================================

type Position string

const (
	PositionA1               Position = "A1"
	PositionA2               Position = "A2"
	PositionSemiSenior       Position = "Semi-Senior"
	PositionSenior           Position = "Senior"
	PositionSupervisor       Position = "Supervisor"
	PositionAssistantManager Position = "Assistant Manager"
	PositionManager          Position = "Manager"
	PositionSeniorManager    Position = "Senior Manager"
	PositionDirector         Position = "Director"
	PositionPartner          Position = "Partner"
	PositionAdmin            Position = "Admin"
)

// Positions lists the ladder from most junior to most senior.
// Index in this slice is the position level.
var Positions = []Position{
	PositionA1,
	PositionA2,
	PositionSemiSenior,
	PositionSenior,
	PositionSupervisor,
	PositionAssistantManager,
	PositionManager,
	PositionSeniorManager,
	PositionDirector,
	PositionPartner,
	PositionAdmin,
}

var positionLevels = func() map[Position]int {
	m := make(map[Position]int, len(Positions))
	for i, p := range Positions {
		m[p] = i
	}
	return m
}()

// Level returns the index of p in the ladder, or -1 for an unknown position.
func (p Position) Level() int {
	if lvl, ok := positionLevels[p]; ok {
		return lvl
	}
	return -1
}

// Valid reports whether p is one of the known ladder positions.
func (p Position) Valid() bool {
	_, ok := positionLevels[p]
	return ok
}

// Above reports whether p is strictly higher on the ladder than other.
// Unknown positions never outrank anything.
func (p Position) Above(other Position) bool {
	pl, ol := p.Level(), other.Level()
	return pl >= 0 && ol >= 0 && pl > ol
}

// seniorWhitelist is the fixed membership set behind SeniorOrAbove. It is a
// direct whitelist, not a level comparison: it exists independently of the
// role mapping and of the ladder ordering.
var seniorWhitelist = map[Position]bool{
	PositionSenior:           true,
	PositionSupervisor:       true,
	PositionAssistantManager: true,
	PositionManager:          true,
	PositionSeniorManager:    true,
	PositionPartner:          true,
	PositionAdmin:            true,
}

// SeniorOrAbove reports whether position is in the fixed senior whitelist.
// Note Director is absent from the whitelist even though it sits above
// Senior Manager on the ladder; the set is preserved as-is.
func SeniorOrAbove(position Position) bool {
	return seniorWhitelist[position]
}

// supervisorOrAbove is the stricter whitelist used for leave approval.
var supervisorWhitelist = map[Position]bool{
	PositionSupervisor:       true,
	PositionAssistantManager: true,
	PositionManager:          true,
	PositionSeniorManager:    true,
	PositionDirector:         true,
	PositionPartner:          true,
	PositionAdmin:            true,
}

// SupervisorOrAbove reports whether position may act as a leave approver
// (subject to the strict-seniority check in the guard).
func SupervisorOrAbove(position Position) bool {
	return supervisorWhitelist[position]
}

// =============================================================================
// ROLES - derived from position via the mapping table
// =============================================================================

type Role string

const (
	RoleViewer     Role = "viewer"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// DefaultRoleMapping returns the shipped position -> role table.
func DefaultRoleMapping() map[Position]Role {
	return map[Position]Role{
		PositionAdmin:            RoleSuperAdmin,
		PositionPartner:          RoleAdmin,
		PositionSeniorManager:    RoleAdmin,
		PositionManager:          RoleEditor,
		PositionAssistantManager: RoleEditor,
		PositionSupervisor:       RoleEditor,
		PositionSenior:           RoleEditor,
		PositionDirector:         RoleViewer,
		PositionSemiSenior:       RoleViewer,
		PositionA2:               RoleViewer,
		PositionA1:               RoleViewer,
	}
}

// RoleMapping is the runtime-mutable position -> role table. It is designed
// to be edited while the system runs (by a super_admin), so it is shared
// state behind a lock rather than a compile-time constant.
type RoleMapping struct {
	mu    sync.RWMutex
	table map[Position]Role
}

// NewRoleMapping creates a mapping seeded with the default table.
func NewRoleMapping() *RoleMapping {
	return &RoleMapping{table: DefaultRoleMapping()}
}

// RoleFor resolves the role for a position. Unmapped positions fall back to
// viewer so a missing row can only ever reduce privileges.
func (m *RoleMapping) RoleFor(position Position) Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if role, ok := m.table[position]; ok {
		return role
	}
	return RoleViewer
}

// Set updates the role for a position. The caller must have verified the
// actor is a super_admin; this is enforced again here as a last check.
func (m *RoleMapping) Set(actor Actor, position Position, role Role) error {
	if actor.Capabilities.Role != RoleSuperAdmin {
		return fmt.Errorf("only super_admin may edit role mappings")
	}
	if !position.Valid() {
		return fmt.Errorf("unknown position %q", position)
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table[position] = role
	return nil
}

// Snapshot returns a copy of the current table, ordered by the ladder.
func (m *RoleMapping) Snapshot() []PositionRole {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PositionRole, 0, len(Positions))
	for _, p := range Positions {
		role := RoleViewer
		if r, ok := m.table[p]; ok {
			role = r
		}
		out = append(out, PositionRole{Position: p, Role: role})
	}
	return out
}

type PositionRole struct {
	Position Position `json:"position"`
	Role     Role     `json:"role"`
}

// =============================================================================
// CAPABILITIES + ACTOR - computed once per request, consulted everywhere
// =============================================================================

// Capabilities is the per-actor capability set. Both capability sources are
// kept visible on the struct so call sites can OR them explicitly.
type Capabilities struct {
	Role          Role
	CanEdit       bool // role is editor or above
	CanApprove    bool // same set as CanEdit; regular approval rights
	PartnerTier   bool // role is admin or super_admin; escalated approvals
	SeniorOrAbove bool // independent position whitelist
}

// CapabilitiesFor computes the capability set for a position against the
// current mapping table.
func CapabilitiesFor(position Position, mapping *RoleMapping) Capabilities {
	role := mapping.RoleFor(position)
	canEdit := role == RoleEditor || role == RoleAdmin || role == RoleSuperAdmin
	return Capabilities{
		Role:          role,
		CanEdit:       canEdit,
		CanApprove:    canEdit,
		PartnerTier:   role == RoleAdmin || role == RoleSuperAdmin,
		SeniorOrAbove: SeniorOrAbove(position),
	}
}

// Actor is an already-authenticated caller: identity, ladder position and
// the capability set computed from the current mapping table.
type Actor struct {
	EmployeeID   string
	Name         string
	Position     Position
	Capabilities Capabilities
}

// NewActor builds an Actor, resolving capabilities from mapping.
func NewActor(employeeID, name string, position Position, mapping *RoleMapping) Actor {
	return Actor{
		EmployeeID:   employeeID,
		Name:         name,
		Position:     position,
		Capabilities: CapabilitiesFor(position, mapping),
	}
}
