package board

import (
	"sort"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// Group fields accepted by GroupBy.
const (
	GroupList     = "list"
	GroupPriority = "priority"
	GroupCategory = "category"
	GroupStatus   = "status"
)

const (
	statusOpen   = "open"
	statusDone   = "done"
	noCategory   = "(none)"
	unknownGroup = "(unknown list)"
)

// GroupedSummary holds tasks grouped by a field.
type GroupedSummary struct {
	Field  string         `json:"field"`
	Groups []GroupSummary `json:"groups"`
}

// GroupSummary is one group within a grouped view.
type GroupSummary struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Minutes   int    `json:"estimated_minutes"`
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{GroupList, GroupPriority, GroupCategory, GroupStatus}
}

// ValidateGroupBy checks a --group-by value.
func ValidateGroupBy(field string) error {
	if contains(ValidGroupByFields(), field) {
		return nil
	}
	return clierr.Newf(clierr.InvalidGroupBy, "invalid group-by field %q", field).
		WithDetails(map[string]any{
			"field":   field,
			"allowed": ValidGroupByFields(),
		})
}

// GroupBy groups tasks by the specified field. Lists label the list groups
// and fix their order; tasks pointing at a missing list are grouped under
// their raw ID.
func GroupBy(tasks []task.Task, field string, lists []list.List) GroupedSummary {
	groups := make(map[string]*GroupSummary)
	for _, t := range tasks {
		key := groupKey(t, field)
		g, ok := groups[key]
		if !ok {
			g = &GroupSummary{Key: key, Label: groupLabel(key, field, lists)}
			groups[key] = g
		}
		g.Total++
		g.Minutes += t.EstimatedTime
		if t.Completed {
			g.Completed++
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := groupRank(keys[i], field, lists), groupRank(keys[j], field, lists)
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	result := GroupedSummary{Field: field, Groups: make([]GroupSummary, 0, len(keys))}
	for _, k := range keys {
		result.Groups = append(result.Groups, *groups[k])
	}
	return result
}

func groupKey(t task.Task, field string) string {
	switch field {
	case GroupList:
		return t.ListID
	case GroupPriority:
		return string(t.Priority)
	case GroupCategory:
		if t.Category == task.CategoryNone {
			return noCategory
		}
		return string(t.Category)
	case GroupStatus:
		if t.Completed {
			return statusDone
		}
		return statusOpen
	default:
		return "(all)"
	}
}

func groupLabel(key, field string, lists []list.List) string {
	if field != GroupList {
		return key
	}
	if l, ok := list.Find(lists, key); ok {
		return l.Title
	}
	return unknownGroup
}

// groupRank orders groups: lists by list order, priorities high first,
// categories in declaration order, open before done. Unknown keys go last.
func groupRank(key, field string, lists []list.List) int {
	const last = 1 << 20
	switch field {
	case GroupList:
		for i, l := range lists {
			if l.ID == key {
				return i
			}
		}
	case GroupPriority:
		if r := task.Priority(key).Rank(); r >= 0 {
			return len(task.Priorities) - r
		}
	case GroupCategory:
		for i, c := range task.Categories {
			if string(c) == key {
				return i
			}
		}
	case GroupStatus:
		if key == statusOpen {
			return 0
		}
		return 1
	}
	return last
}
