package errors

import (
	"fmt"
	"testing"
)

func TestIsSkip(t *testing.T) {
	skip := &SkipMessageError{Reason: "duplicate"}
	if !IsSkip(skip) {
		t.Error("SkipMessageError should be recognized")
	}
	if !IsSkip(fmt.Errorf("wrapped: %w", skip)) {
		t.Error("wrapped SkipMessageError should be recognized")
	}
	if IsSkip(fmt.Errorf("plain failure")) {
		t.Error("plain error should not be skip")
	}
	if IsSkip(nil) {
		t.Error("nil should not be skip")
	}
}

func TestGet(t *testing.T) {
	if got := Get("HABIT_NOT_FOUND"); got != HabitNotFound {
		t.Errorf("Get(HABIT_NOT_FOUND) = %+v", got)
	}
	got := Get("NO_SUCH_CODE")
	if got.Code != "NO_SUCH_CODE" || got.Message != "Unexpected error" {
		t.Errorf("unknown code lookup = %+v", got)
	}
}

func TestDefinitionError(t *testing.T) {
	if TaskNotFound.Error() != TaskNotFound.Message {
		t.Error("Definition.Error should return the message")
	}
}
