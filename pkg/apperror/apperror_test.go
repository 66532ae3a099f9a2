package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"bad request", BadRequest("description is required"), ErrBadRequest},
		{"forbidden", Forbidden("only coordinators may create global tasks"), ErrForbidden},
		{"not found", NotFound("task %s not found", "x"), ErrNotFound},
		{"invalid state", InvalidState("task is not awaiting completion approval"), ErrInvalidState},
		{"wrapped", fmt.Errorf("update task: %w", Forbidden("nope")), ErrForbidden},
		{"infrastructure", errors.New("connection refused"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFound("task %d not found", 7))
	if got := Message(err); got != "task 7 not found" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(errors.New("boom")); got != "boom" {
		t.Errorf("Message() = %q", got)
	}
}
