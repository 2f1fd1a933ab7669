package board

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// Sort fields accepted by Sort.
const (
	SortTitle    = "title"
	SortPriority = "priority"
	SortDue      = "due"
	SortEstimate = "estimate"
	SortCreated  = "created"
)

// ValidSortFields returns the accepted --sort values.
func ValidSortFields() []string {
	return []string{SortTitle, SortPriority, SortDue, SortEstimate, SortCreated}
}

// Sort sorts tasks in place by the given field. Priority sorts high first;
// tasks without a due date or creation time sort last. Unknown fields keep
// store order.
func Sort(tasks []task.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if reverse {
			return compareTasks(tasks[j], tasks[i], field)
		}
		return compareTasks(tasks[i], tasks[j], field)
	})
}

func compareTasks(a, b task.Task, field string) bool {
	switch field {
	case SortTitle:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case SortPriority:
		return a.Priority.Rank() > b.Priority.Rank()
	case SortDue:
		return compareDue(a, b)
	case SortEstimate:
		return a.EstimatedTime < b.EstimatedTime
	case SortCreated:
		if a.CreatedAt == nil || b.CreatedAt == nil {
			return a.CreatedAt != nil
		}
		return a.CreatedAt.Before(*b.CreatedAt)
	default:
		return false
	}
}

func compareDue(a, b task.Task) bool {
	if a.DueDate == nil || b.DueDate == nil {
		return a.DueDate != nil // nil sorts last
	}
	return a.DueDate.Before(b.DueDate.Time)
}
