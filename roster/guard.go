package roster

// Guard answers "may this actor perform this action on this record". It is
// deliberately free of record-type knowledge beyond ownership and the
// owner's ladder position; the lifecycle layer feeds it those two facts.
//
// Every decision ORs the two capability sources (role-derived, position
// whitelist). See the package comment for why they stay separate.

// CanView reports whether actor may view a record owned by ownerID.
// Owners always see their own records.
func CanView(actor Actor, ownerID string) bool {
	if actor.EmployeeID == ownerID {
		return true
	}
	c := actor.Capabilities
	return c.CanEdit || c.PartnerTier || c.SeniorOrAbove
}

// CanCreate reports whether actor may create schedule records at all.
func CanCreate(actor Actor) bool {
	c := actor.Capabilities
	return c.CanEdit || c.PartnerTier || c.SeniorOrAbove
}

// CanCreateLeaveFor reports whether actor may file a leave on behalf of an
// employee at targetPosition. Everyone may file for themselves; a
// senior-or-above actor may additionally file for anyone strictly below
// them on the ladder.
func CanCreateLeaveFor(actor Actor, targetEmployeeID string, targetPosition Position) bool {
	if !CanCreate(actor) {
		return false
	}
	if actor.EmployeeID == targetEmployeeID {
		return true
	}
	return actor.Capabilities.SeniorOrAbove && actor.Position.Above(targetPosition)
}

// CanApproveLeave reports whether actor may approve a leave owned by
// ownerID at ownerPosition. Self-approval is always denied; otherwise
// partner tier suffices, or a supervisor-or-above actor strictly higher on
// the ladder than the owner.
func CanApproveLeave(actor Actor, ownerID string, ownerPosition Position) bool {
	if actor.EmployeeID == ownerID {
		return false
	}
	if actor.Capabilities.PartnerTier {
		return true
	}
	return SupervisorOrAbove(actor.Position) && actor.Position.Above(ownerPosition)
}

// CanApproveAssignment reports whether actor holds regular approval rights.
// Whether the assignment instead needs partner approval is the lifecycle
// manager's check, not the guard's.
func CanApproveAssignment(actor Actor) bool {
	return actor.Capabilities.CanApprove
}

// CanPartnerApprove reports whether actor holds escalated approval rights.
func CanPartnerApprove(actor Actor) bool {
	return actor.Capabilities.PartnerTier
}

// CanCancel reports whether actor may cancel a record owned by ownerID at
// ownerPosition: the owner, partner tier, or anyone strictly higher on the
// ladder.
func CanCancel(actor Actor, ownerID string, ownerPosition Position) bool {
	if actor.EmployeeID == ownerID {
		return true
	}
	if actor.Capabilities.PartnerTier {
		return true
	}
	return actor.Position.Above(ownerPosition)
}

// CanDeleteLeave follows the same rule as cancellation.
func CanDeleteLeave(actor Actor, ownerID string, ownerPosition Position) bool {
	return CanCancel(actor, ownerID, ownerPosition)
}

// CanDeleteAssignment requires the cancellation rule plus edit rights from
// either capability source.
func CanDeleteAssignment(actor Actor, ownerID string, ownerPosition Position) bool {
	if !CanCancel(actor, ownerID, ownerPosition) {
		return false
	}
	c := actor.Capabilities
	return c.CanEdit || c.SeniorOrAbove
}
