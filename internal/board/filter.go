package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/zenta/internal/date"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	ListID     string
	Priorities []task.Priority
	Categories []task.Category
	Completed  *bool  // nil=no filter
	Search     string // case-insensitive substring match across title and description
	Overdue    bool   // only open tasks due before Today
	Today      date.Date
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []task.Task, opts FilterOptions) []task.Task {
	result := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t task.Task, opts FilterOptions) bool {
	if opts.ListID != "" && t.ListID != opts.ListID {
		return false
	}
	if len(opts.Priorities) > 0 && !contains(opts.Priorities, t.Priority) {
		return false
	}
	if len(opts.Categories) > 0 && !contains(opts.Categories, t.Category) {
		return false
	}
	if opts.Completed != nil && t.Completed != *opts.Completed {
		return false
	}
	if opts.Overdue && !t.Overdue(opts.Today) {
		return false
	}
	return opts.Search == "" || matchesSearch(t, opts.Search)
}

// matchesSearch performs case-insensitive substring matching across title and description.
func matchesSearch(t task.Task, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

func contains[T comparable](slice []T, item T) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
