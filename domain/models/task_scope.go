package models

import "github.com/google/uuid"

// TaskScope is the variant payload of a task. Exactly one implementation
// applies to a task at a time.
type TaskScope interface {
	Variant() TaskVariant
	isTaskScope()
}

type PersonalScope struct{}

type GlobalScope struct{}

type GroupScope struct {
	GroupID uuid.UUID
	// SuggesterID is set when a non-leader proposed the task.
	SuggesterID *uuid.UUID
}

type AssignedScope struct {
	AssigneeID  uuid.UUID
	AssignerID  uuid.UUID
	SuggesterID *uuid.UUID
}

func (PersonalScope) Variant() TaskVariant { return TaskVariantPersonal }
func (GlobalScope) Variant() TaskVariant   { return TaskVariantGlobal }
func (GroupScope) Variant() TaskVariant    { return TaskVariantGroup }
func (AssignedScope) Variant() TaskVariant { return TaskVariantAssigned }

func (PersonalScope) isTaskScope() {}
func (GlobalScope) isTaskScope()   {}
func (GroupScope) isTaskScope()    {}
func (AssignedScope) isTaskScope() {}

// IsSelfAssigned reports whether the assigner gave the task to themself.
func (s AssignedScope) IsSelfAssigned() bool {
	return s.AssigneeID == s.AssignerID
}

// Scope reads the variant payload back out of the row.
func (t *Task) Scope() TaskScope {
	switch t.Variant {
	case TaskVariantGlobal:
		return GlobalScope{}
	case TaskVariantGroup:
		return GroupScope{
			GroupID:     derefID(t.GroupID),
			SuggesterID: copyID(t.SuggesterID),
		}
	case TaskVariantAssigned:
		return AssignedScope{
			AssigneeID:  derefID(t.AssigneeID),
			AssignerID:  derefID(t.AssignerID),
			SuggesterID: copyID(t.SuggesterID),
		}
	default:
		return PersonalScope{}
	}
}

// ApplyScope sets the variant and its payload, clearing every field that
// belongs to another variant.
func (t *Task) ApplyScope(scope TaskScope) {
	t.Variant = scope.Variant()
	t.GroupID, t.AssigneeID, t.AssignerID, t.SuggesterID = nil, nil, nil, nil
	t.Group, t.Assignee, t.Assigner, t.Suggester = nil, nil, nil, nil

	switch s := scope.(type) {
	case GroupScope:
		t.GroupID = copyID(&s.GroupID)
		t.SuggesterID = copyID(s.SuggesterID)
	case AssignedScope:
		t.AssigneeID = copyID(&s.AssigneeID)
		t.AssignerID = copyID(&s.AssignerID)
		t.SuggesterID = copyID(s.SuggesterID)
	}
}

// ScopeColumns is ApplyScope expressed as a column map for conditional updates.
func ScopeColumns(scope TaskScope) map[string]any {
	cols := map[string]any{
		"variant":      scope.Variant(),
		"group_id":     nil,
		"assignee_id":  nil,
		"assigner_id":  nil,
		"suggester_id": nil,
	}

	switch s := scope.(type) {
	case GroupScope:
		cols["group_id"] = s.GroupID
		cols["suggester_id"] = columnID(s.SuggesterID)
	case AssignedScope:
		cols["assignee_id"] = s.AssigneeID
		cols["assigner_id"] = s.AssignerID
		cols["suggester_id"] = columnID(s.SuggesterID)
	}
	return cols
}

func derefID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// columnID returns an untyped nil for a missing id so the driver writes NULL.
func columnID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
