// Package taskpolicy decides who may change a task and how.
//
// Updates are resolved by an ordered rule table: the first row whose
// variant and predicate match wins, and no match means the caller is denied.
package taskpolicy

import "attendance-tasks/domain/models"

// Relation is the set of ways a caller relates to one task.
type Relation uint8

const (
	Owner Relation = 1 << iota
	Coordinator
	GroupLeader // leads the task's group
	GroupMember // on the roster of the task's group
	Assignee
	Assigner
)

func (r Relation) Has(flag Relation) bool {
	return r&flag == flag
}

func (r Relation) Any(flags Relation) bool {
	return r&flags != 0
}

// Subject is the state of the task being decided on.
type Subject struct {
	Variant           models.TaskVariant
	IsConfirmed       bool
	PendingCompletion bool
	Completed         bool
}

func SubjectOf(t *models.Task) Subject {
	return Subject{
		Variant:           t.Variant,
		IsConfirmed:       t.IsConfirmed,
		PendingCompletion: t.PendingCompletion,
		Completed:         t.Completed,
	}
}

// Change is a partial update. Nil fields are left alone.
type Change struct {
	Completed   *bool
	Description *string
	IsConfirmed *bool
}

// onlyCompletion reports whether the change touches nothing but completed,
// set to want.
func (c Change) onlyCompletion(want bool) bool {
	return c.Completed != nil && *c.Completed == want && c.Description == nil && c.IsConfirmed == nil
}

type Effect int

const (
	Deny Effect = iota
	// FreeEdit applies the change as given.
	FreeEdit
	// FreeEditClearPending applies the change and drops any completion request.
	FreeEditClearPending
	// RequestCompletion only raises pending_completion.
	RequestCompletion
	// WithdrawRequest only clears pending_completion.
	WithdrawRequest
)

func (e Effect) String() string {
	switch e {
	case FreeEdit:
		return "free_edit"
	case FreeEditClearPending:
		return "free_edit_clear_pending"
	case RequestCompletion:
		return "request_completion"
	case WithdrawRequest:
		return "withdraw_request"
	default:
		return "deny"
	}
}

type Decision struct {
	Effect Effect
	Rule   string
}

func (d Decision) Allowed() bool {
	return d.Effect != Deny
}

type rule struct {
	name    string
	variant models.TaskVariant
	match   func(rel Relation, s Subject, c Change) bool
	effect  Effect
}

var updateRules = []rule{
	{
		name:    "personal/owner",
		variant: models.TaskVariantPersonal,
		match:   func(rel Relation, _ Subject, _ Change) bool { return rel.Has(Owner) },
		effect:  FreeEdit,
	},
	{
		name:    "global/coordinator",
		variant: models.TaskVariantGlobal,
		match:   func(rel Relation, _ Subject, _ Change) bool { return rel.Has(Coordinator) },
		effect:  FreeEdit,
	},
	{
		name:    "group/leader-or-coordinator",
		variant: models.TaskVariantGroup,
		match:   func(rel Relation, _ Subject, _ Change) bool { return rel.Any(GroupLeader | Coordinator) },
		effect:  FreeEditClearPending,
	},
	{
		name:    "group/member-request",
		variant: models.TaskVariantGroup,
		match: func(rel Relation, s Subject, c Change) bool {
			return rel.Has(GroupMember) && s.IsConfirmed && !s.Completed && c.onlyCompletion(true)
		},
		effect: RequestCompletion,
	},
	{
		name:    "group/member-withdraw",
		variant: models.TaskVariantGroup,
		match: func(rel Relation, _ Subject, c Change) bool {
			return rel.Has(GroupMember) && c.onlyCompletion(false)
		},
		effect: WithdrawRequest,
	},
	{
		name:    "assigned/self",
		variant: models.TaskVariantAssigned,
		match:   func(rel Relation, _ Subject, _ Change) bool { return rel.Has(Assignee | Assigner) },
		effect:  FreeEdit,
	},
	{
		name:    "assigned/assigner-or-coordinator",
		variant: models.TaskVariantAssigned,
		match:   func(rel Relation, _ Subject, _ Change) bool { return rel.Any(Assigner | Coordinator) },
		effect:  FreeEditClearPending,
	},
	{
		name:    "assigned/assignee-request",
		variant: models.TaskVariantAssigned,
		match: func(rel Relation, s Subject, c Change) bool {
			return rel.Has(Assignee) && !s.Completed && c.onlyCompletion(true)
		},
		effect: RequestCompletion,
	},
	{
		name:    "assigned/assignee-withdraw",
		variant: models.TaskVariantAssigned,
		match: func(rel Relation, _ Subject, c Change) bool {
			return rel.Has(Assignee) && c.onlyCompletion(false)
		},
		effect: WithdrawRequest,
	},
}

// DecideUpdate returns the first matching rule for the update.
func DecideUpdate(s Subject, rel Relation, c Change) Decision {
	for _, r := range updateRules {
		if r.variant == s.Variant && r.match(rel, s, c) {
			return Decision{Effect: r.effect, Rule: r.name}
		}
	}
	return Decision{Effect: Deny}
}

// CanResolveCompletion reports whether the caller may approve or reject a
// completion request.
func CanResolveCompletion(v models.TaskVariant, rel Relation) bool {
	if rel.Has(Coordinator) {
		return true
	}
	switch v {
	case models.TaskVariantAssigned:
		return rel.Has(Assigner)
	case models.TaskVariantGroup:
		return rel.Has(GroupLeader)
	}
	return false
}

// CanDelete mirrors who may edit each variant.
func CanDelete(v models.TaskVariant, rel Relation) bool {
	switch v {
	case models.TaskVariantPersonal:
		return rel.Has(Owner)
	case models.TaskVariantGlobal:
		return rel.Has(Coordinator)
	case models.TaskVariantGroup:
		return rel.Any(GroupLeader | Coordinator)
	case models.TaskVariantAssigned:
		return rel.Any(Assigner | Coordinator)
	}
	return false
}

// CanConfirm reports whether the caller may confirm a group suggestion.
func CanConfirm(v models.TaskVariant, rel Relation) bool {
	return v == models.TaskVariantGroup && rel.Has(GroupLeader)
}
