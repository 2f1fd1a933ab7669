package clierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	t.Parallel()
	if got := New(InternalError, "boom").ExitCode(); got != 2 {
		t.Errorf("Expected exit code 2 for internal errors, got %d", got)
	}
	if got := New(TaskNotFound, "missing").ExitCode(); got != 1 {
		t.Errorf("Expected exit code 1, got %d", got)
	}
}

func TestHasCodeUnwraps(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("saving: %w", Storage("zenta-tasks"))
	if !HasCode(err, StorageError) {
		t.Error("Expected wrapped STORAGE_ERROR to match")
	}
	if HasCode(err, TaskNotFound) {
		t.Error("Expected TASK_NOT_FOUND not to match")
	}
	if HasCode(errors.New("plain"), StorageError) {
		t.Error("Expected plain error not to match")
	}
}

func TestStorageDetails(t *testing.T) {
	t.Parallel()
	e := Storage("task-lists")
	if e.Details["key"] != "task-lists" {
		t.Errorf("Expected key detail task-lists, got %v", e.Details["key"])
	}
	if e.Error() != e.Message {
		t.Errorf("Expected Error() to return the message, got %q", e.Error())
	}
}
