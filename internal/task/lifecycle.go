package task

import "time"

// Stamp sets CreatedAt on first save and UpdatedAt on every save.
func Stamp(t *Task, now time.Time) {
	if t.CreatedAt == nil {
		created := now
		t.CreatedAt = &created
	}
	t.UpdatedAt = &now
}

// SetCompleted returns a copy of t with the completion flag set. No other
// field changes, so board projections that compare copies stay consistent.
func SetCompleted(t Task, done bool) Task {
	t.Completed = done
	return t
}

// Expired reports whether a trashed task is older than retention.
// A non-positive retention keeps tombstones forever.
func Expired(t Task, now time.Time, retention time.Duration) bool {
	if retention <= 0 || t.DeletedAt == nil {
		return false
	}
	return now.Sub(*t.DeletedAt) > retention
}
