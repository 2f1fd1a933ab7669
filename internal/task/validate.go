package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
)

// ValidatePriority checks that a priority is one of Priorities.
func ValidatePriority(p Priority) error {
	if p.Rank() >= 0 {
		return nil
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", p).
		WithDetails(map[string]any{
			"priority": p,
			"allowed":  Priorities,
		})
}

// ValidateCategory accepts the empty category or one of Categories.
func ValidateCategory(c Category) error {
	if c == CategoryNone {
		return nil
	}
	for _, v := range Categories {
		if v == c {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidCategory, "invalid category %q", c).
		WithDetails(map[string]any{
			"category": c,
			"allowed":  Categories,
		})
}

// ValidateEstimate rejects negative estimates.
func ValidateEstimate(minutes int) error {
	if minutes >= 0 {
		return nil
	}
	return clierr.Newf(clierr.InvalidEstimate, "estimated time must be >= 0 minutes, got %d", minutes).
		WithDetails(map[string]any{"estimatedTime": minutes})
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// NotFound returns the TASK_NOT_FOUND error for id.
func NotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", id).
		WithDetails(map[string]any{"id": id})
}

// Validate checks the user-editable fields of t.
func Validate(t Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return clierr.New(clierr.InvalidInput, "title must not be empty")
	}
	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}
	if err := ValidateCategory(t.Category); err != nil {
		return err
	}
	return ValidateEstimate(t.EstimatedTime)
}
